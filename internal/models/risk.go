package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RiskTier is the ordered risk-appetite category assigned to a user.
// Larger values mean a larger appetite for risk.
type RiskTier int

const (
	RiskVeryConservative RiskTier = iota
	RiskConservative
	RiskModerate
	RiskAggressive
	RiskVeryAggressive
)

// DefaultRiskTier is assigned to users who have not completed the questionnaire.
const DefaultRiskTier = RiskModerate

var riskTierNames = [...]string{
	RiskVeryConservative: "Very Conservative",
	RiskConservative:     "Conservative",
	RiskModerate:         "Moderate",
	RiskAggressive:       "Aggressive",
	RiskVeryAggressive:   "Very Aggressive",
}

var riskTierLabels = [...]string{
	RiskVeryConservative: "Sangat Konservatif",
	RiskConservative:     "Konservatif",
	RiskModerate:         "Moderat",
	RiskAggressive:       "Agresif",
	RiskVeryAggressive:   "Sangat Agresif",
}

func (t RiskTier) valid() bool { return t >= RiskVeryConservative && t <= RiskVeryAggressive }

func (t RiskTier) String() string {
	if !t.valid() {
		return fmt.Sprintf("RiskTier(%d)", int(t))
	}
	return riskTierNames[t]
}

// Label is the localized name shown to users and used in AI prompts.
func (t RiskTier) Label() string {
	if !t.valid() {
		return riskTierLabels[DefaultRiskTier]
	}
	return riskTierLabels[t]
}

// ParseRiskTier accepts either the English name or the localized label.
func ParseRiskTier(s string) (RiskTier, error) {
	for i := range riskTierNames {
		if strings.EqualFold(s, riskTierNames[i]) || strings.EqualFold(s, riskTierLabels[i]) {
			return RiskTier(i), nil
		}
	}
	return 0, fmt.Errorf("unknown risk tier %q", s)
}

func (t RiskTier) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *RiskTier) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseRiskTier(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// RiskAnswers maps a question index to the weight of the selected option.
// An absent key means the question was not answered.
type RiskAnswers map[int]int

// RiskOption is one weighted choice of a questionnaire item.
type RiskOption struct {
	Text   string `json:"text"`
	Weight int    `json:"weight"`
}

// RiskQuestion is a questionnaire item with its options.
type RiskQuestion struct {
	Question string       `json:"question"`
	Options  []RiskOption `json:"options"`
}

// RiskAssessment is the outcome of scoring a questionnaire.
type RiskAssessment struct {
	Total      int      `json:"total"`
	Tier       RiskTier `json:"tier"`
	TierLabel  string   `json:"tier_label"`
	Unanswered []int    `json:"unanswered,omitempty"`
}
