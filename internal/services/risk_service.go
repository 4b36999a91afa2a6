package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/epeers/investdash/internal/models"
	"github.com/epeers/investdash/internal/repository"
)

const (
	minAnswerWeight = 1
	maxAnswerWeight = 5
)

// riskThresholds are inclusive upper bounds of each tier, in tier order.
// Scores above the last bound are VeryAggressive.
var riskThresholds = []struct {
	max  int
	tier models.RiskTier
}{
	{15, models.RiskVeryConservative},
	{25, models.RiskConservative},
	{35, models.RiskModerate},
	{45, models.RiskAggressive},
}

// TierForScore maps a questionnaire total to its tier.
func TierForScore(total int) models.RiskTier {
	for _, th := range riskThresholds {
		if total <= th.max {
			return th.tier
		}
	}
	return models.RiskVeryAggressive
}

// ScoreRisk sums the answers to questions 0..questionCount-1 and returns the
// total and its tier. Unanswered questions count as 0.
func ScoreRisk(answers models.RiskAnswers, questionCount int) (int, models.RiskTier) {
	total := 0
	for i := 0; i < questionCount; i++ {
		total += answers[i]
	}
	return total, TierForScore(total)
}

// RiskService scores the risk-profile questionnaire
type RiskService struct {
	refRepo *repository.ReferenceRepository
}

// NewRiskService creates a new RiskService
func NewRiskService(refRepo *repository.ReferenceRepository) *RiskService {
	return &RiskService{refRepo: refRepo}
}

// Questions returns the questionnaire
func (s *RiskService) Questions() []models.RiskQuestion {
	return s.refRepo.Questions()
}

// ValidateAnswers checks that every given answer refers to an existing
// question and carries a weight the question offers.
func (s *RiskService) ValidateAnswers(answers models.RiskAnswers) error {
	n := s.refRepo.QuestionCount()
	for idx, w := range answers {
		if idx < 0 || idx >= n {
			return &ValidationError{Field: "answers", Message: fmt.Sprintf("question %d does not exist", idx), Cause: ErrInvalidAnswer}
		}
		if w < minAnswerWeight || w > maxAnswerWeight {
			return &ValidationError{
				Field:   "answers",
				Message: fmt.Sprintf("answer to question %d must be between %d and %d", idx, minAnswerWeight, maxAnswerWeight),
				Cause:   ErrInvalidAnswer,
			}
		}
	}
	return nil
}

// Evaluate validates and scores answers. Unanswered questions still score 0,
// and are reported as a W3001 warning on ctx.
func (s *RiskService) Evaluate(ctx context.Context, answers models.RiskAnswers) (*models.RiskAssessment, error) {
	if err := s.ValidateAnswers(answers); err != nil {
		return nil, err
	}

	n := s.refRepo.QuestionCount()
	total, tier := ScoreRisk(answers, n)

	var unanswered []int
	for i := 0; i < n; i++ {
		if _, ok := answers[i]; !ok {
			unanswered = append(unanswered, i)
		}
	}
	sort.Ints(unanswered)
	if len(unanswered) > 0 {
		nums := make([]string, len(unanswered))
		for i, q := range unanswered {
			nums[i] = strconv.Itoa(q + 1)
		}
		AddWarning(ctx, models.WarnUnansweredQuestions,
			"%d of %d questions unanswered (%s), scored as 0", len(unanswered), n, strings.Join(nums, ", "))
	}

	return &models.RiskAssessment{
		Total:      total,
		Tier:       tier,
		TierLabel:  tier.Label(),
		Unanswered: unanswered,
	}, nil
}
