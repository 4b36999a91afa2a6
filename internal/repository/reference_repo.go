package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/epeers/investdash/internal/models"
	"github.com/shopspring/decimal"
)

var (
	ErrAssetNotFound   = errors.New("asset not found")
	ErrChartNotFound   = errors.New("chart data not found")
	ErrModelNotFound   = errors.New("analysis model not found")
	ErrArticleNotFound = errors.New("news article not found")
)

// ReferenceRepository serves the static market tables. It is read-only and safe
// for concurrent use; every returned slice is a copy.
type ReferenceRepository struct {
	assets map[models.AssetClass]map[string]assetRow
	codes  map[models.AssetClass][]string
	charts map[models.AssetClass]map[string]models.ChartSeries
}

// NewReferenceRepository creates a new ReferenceRepository over the built-in tables
func NewReferenceRepository() *ReferenceRepository {
	return &ReferenceRepository{
		assets: map[models.AssetClass]map[string]assetRow{
			models.AssetClassEquity: equityTable,
			models.AssetClassCrypto: cryptoTable,
		},
		codes: map[models.AssetClass][]string{
			models.AssetClassEquity: equityCodes,
			models.AssetClassCrypto: cryptoCodes,
		},
		charts: map[models.AssetClass]map[string]models.ChartSeries{
			models.AssetClassEquity: equityCharts,
			models.AssetClassCrypto: cryptoCharts,
		},
	}
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// LookupAsset retrieves an asset of the given class by code
func (r *ReferenceRepository) LookupAsset(class models.AssetClass, code string) (*models.AssetDetails, error) {
	code = normalizeCode(code)
	row, ok := r.assets[class][code]
	if !ok {
		return nil, fmt.Errorf("%w: %s %s", ErrAssetNotFound, class, code)
	}
	return toDetails(class, code, row), nil
}

// FindAsset retrieves an asset by code regardless of class
func (r *ReferenceRepository) FindAsset(code string) (*models.AssetDetails, error) {
	for _, class := range []models.AssetClass{models.AssetClassEquity, models.AssetClassCrypto} {
		if d, err := r.LookupAsset(class, code); err == nil {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, normalizeCode(code))
}

// ListAssets returns every asset of a class in table order
func (r *ReferenceRepository) ListAssets(class models.AssetClass) []models.AssetDetails {
	codes := r.codes[class]
	result := make([]models.AssetDetails, 0, len(codes))
	for _, code := range codes {
		result = append(result, *toDetails(class, code, r.assets[class][code]))
	}
	return result
}

func toDetails(class models.AssetClass, code string, row assetRow) *models.AssetDetails {
	fundamentals := make([]models.Fundamental, len(row.fundamentals))
	copy(fundamentals, row.fundamentals)
	return &models.AssetDetails{
		AssetClass:   class,
		Code:         code,
		DisplayName:  row.name,
		CurrentPrice: row.price,
		Fundamentals: fundamentals,
	}
}

// Chart returns the price series for an asset. A miss in the requested class
// falls back to the other class before failing.
func (r *ReferenceRepository) Chart(class models.AssetClass, code string) (*models.ChartSeries, error) {
	code = normalizeCode(code)
	if c, ok := r.charts[class][code]; ok {
		return copySeries(c), nil
	}
	for _, charts := range r.charts {
		if c, ok := charts[code]; ok {
			return copySeries(c), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrChartNotFound, code)
}

func copySeries(c models.ChartSeries) *models.ChartSeries {
	return &models.ChartSeries{
		TimeLabels:  append([]string(nil), c.TimeLabels...),
		Prices:      append([]float64(nil), c.Prices...),
		Volumes:     append([]float64(nil), c.Volumes...),
		StochasticK: append([]float64(nil), c.StochasticK...),
		StochasticD: append([]float64(nil), c.StochasticD...),
	}
}

// Questions returns the risk questionnaire
func (r *ReferenceRepository) Questions() []models.RiskQuestion {
	result := make([]models.RiskQuestion, len(riskQuestions))
	for i, q := range riskQuestions {
		result[i] = models.RiskQuestion{
			Question: q.Question,
			Options:  append([]models.RiskOption(nil), q.Options...),
		}
	}
	return result
}

// QuestionCount is the number of questionnaire items
func (r *ReferenceRepository) QuestionCount() int {
	return len(riskQuestions)
}

// AnalysisModels returns the forecasting model descriptors
func (r *ReferenceRepository) AnalysisModels() []models.AnalysisModel {
	return append([]models.AnalysisModel(nil), analysisModels...)
}

// AnalysisModel retrieves a model descriptor by ID
func (r *ReferenceRepository) AnalysisModel(id string) (*models.AnalysisModel, error) {
	for _, m := range analysisModels {
		if m.ID == id {
			m := m
			return &m, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrModelNotFound, id)
}

// News returns every news article
func (r *ReferenceRepository) News() []models.NewsArticle {
	return append([]models.NewsArticle(nil), newsArticles...)
}

// Article retrieves a news article by its list position
func (r *ReferenceRepository) Article(index int) (*models.NewsArticle, error) {
	if index < 0 || index >= len(newsArticles) {
		return nil, fmt.Errorf("%w: index %d", ErrArticleNotFound, index)
	}
	a := newsArticles[index]
	return &a, nil
}

// InitialHoldings returns the demo portfolio a new process starts with
func (r *ReferenceRepository) InitialHoldings() []models.Holding {
	result := make([]models.Holding, 0, len(initialPortfolio))
	for _, s := range initialPortfolio {
		row := r.assets[s.class][s.code]
		result = append(result, models.Holding{
			AssetClass:   s.class,
			Code:         s.code,
			DisplayName:  row.name,
			Quantity:     decimal.RequireFromString(s.quantity),
			AverageCost:  decimal.RequireFromString(s.avgCost),
			CurrentPrice: decimal.NewFromFloat(row.price),
		})
	}
	return result
}

// ValueHistory returns the simulated dashboard value history and its labels
func (r *ReferenceRepository) ValueHistory() ([]string, []float64) {
	return append([]string(nil), monthLabels...), append([]float64(nil), portfolioValueHistory...)
}
