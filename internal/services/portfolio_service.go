package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/epeers/investdash/internal/metrics"
	"github.com/epeers/investdash/internal/models"
	"github.com/epeers/investdash/internal/repository"
	"github.com/epeers/investdash/internal/state"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var hundred = decimal.NewFromInt(100)

// PortfolioService handles the portfolio ledger
type PortfolioService struct {
	store   *state.Store
	refRepo *repository.ReferenceRepository
	metrics *metrics.Metrics
}

// NewPortfolioService creates a new PortfolioService
func NewPortfolioService(store *state.Store, refRepo *repository.ReferenceRepository, m *metrics.Metrics) *PortfolioService {
	return &PortfolioService{
		store:   store,
		refRepo: refRepo,
		metrics: m,
	}
}

// validateAdd checks an add request field by field and returns the first failure.
func (s *PortfolioService) validateAdd(req models.AddHoldingRequest) (*models.AssetDetails, error) {
	class, err := models.ParseAssetClass(req.AssetClass)
	if err != nil {
		return nil, invalid("asset_class", "must be equity or crypto")
	}
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, invalid("code", "is required")
	}
	if !req.Quantity.IsPositive() {
		return nil, invalid("quantity", "must be greater than 0")
	}
	if !req.AverageCost.IsPositive() {
		return nil, invalid("average_cost", "must be greater than 0")
	}
	asset, err := s.refRepo.LookupAsset(class, code)
	if err != nil {
		if errors.Is(err, repository.ErrAssetNotFound) {
			return nil, invalid("code", "%s is not a known %s code", strings.ToUpper(code), class)
		}
		return nil, err
	}
	return asset, nil
}

// Add appends a new holding priced from the reference table.
// Nothing is added unless every field is valid.
func (s *PortfolioService) Add(ctx context.Context, req models.AddHoldingRequest) (*models.Holding, error) {
	asset, err := s.validateAdd(req)
	if err != nil {
		return nil, err
	}

	h := models.Holding{
		AssetClass:   asset.AssetClass,
		Code:         asset.Code,
		DisplayName:  asset.DisplayName,
		Quantity:     req.Quantity,
		AverageCost:  req.AverageCost,
		CurrentPrice: decimal.NewFromFloat(asset.CurrentPrice),
	}

	var count int
	err = s.store.Update(func(st *state.AppState, em *state.Emitter) error {
		st.Holdings = append(st.Holdings, h)
		count = len(st.Holdings)
		em.Emit(models.EventPortfolio, append([]models.Holding(nil), st.Holdings...))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.Holdings.Set(float64(count))
	log.Infof("Added holding %s %s x%s (%d holdings)", h.AssetClass, h.Code, h.Quantity, count)
	return &h, nil
}

// Remove deletes the holding at index. Out of range is ErrHoldingNotFound and changes nothing.
func (s *PortfolioService) Remove(ctx context.Context, index int) (*models.Holding, error) {
	var removed models.Holding
	var count int
	err := s.store.Update(func(st *state.AppState, em *state.Emitter) error {
		if index < 0 || index >= len(st.Holdings) {
			return ErrHoldingNotFound
		}
		removed = st.Holdings[index]
		next := make([]models.Holding, 0, len(st.Holdings)-1)
		next = append(next, st.Holdings[:index]...)
		next = append(next, st.Holdings[index+1:]...)
		st.Holdings = next
		count = len(next)
		em.Emit(models.EventPortfolio, append([]models.Holding(nil), next...))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.Holdings.Set(float64(count))
	log.Infof("Removed holding %d (%s), %d holdings left", index, removed.Code, count)
	return &removed, nil
}

// Holdings returns a copy of the ledger in insertion order.
func (s *PortfolioService) Holdings() []models.Holding {
	var out []models.Holding
	s.store.View(func(st *state.AppState) {
		out = append([]models.Holding{}, st.Holdings...)
	})
	return out
}

// View aggregates the current ledger.
func (s *PortfolioService) View() models.PortfolioView {
	return Aggregate(s.Holdings())
}

// Summary returns the totals of the current ledger.
func (s *PortfolioService) Summary() models.PortfolioSummary {
	return Aggregate(s.Holdings()).Summary
}

// Aggregate values every holding and totals them. It is recomputed from the
// holdings on every call and never cached.
func Aggregate(holdings []models.Holding) models.PortfolioView {
	view := models.PortfolioView{
		Holdings:   make([]models.HoldingLine, 0, len(holdings)),
		Allocation: make([]models.AllocationSlice, 0, len(holdings)),
	}

	totalValue := decimal.Zero
	totalCost := decimal.Zero
	for i, h := range holdings {
		value := h.Value()
		cost := h.Cost()
		pl := value.Sub(cost)
		pct := decimal.Zero
		if !cost.IsZero() {
			pct = pl.Div(cost).Mul(hundred).Round(2)
		}

		view.Holdings = append(view.Holdings, models.HoldingLine{
			Index:             i,
			Holding:           h,
			Value:             value,
			Cost:              cost,
			ProfitLoss:        pl,
			ProfitLossPct:     pct,
			ValueDisplay:      FormatIDR(value),
			ProfitLossDisplay: FormatIDR(pl),
		})
		view.Allocation = append(view.Allocation, models.AllocationSlice{Code: h.Code, Value: value})

		totalValue = totalValue.Add(value)
		totalCost = totalCost.Add(cost)
	}

	totalPL := totalValue.Sub(totalCost)
	view.Summary = models.PortfolioSummary{
		TotalValue:             totalValue,
		TotalCost:              totalCost,
		TotalProfitLoss:        totalPL,
		TotalValueDisplay:      FormatIDR(totalValue),
		TotalProfitLossDisplay: FormatIDR(totalPL),
	}
	return view
}

// FormatIDR renders an amount in rupiah, e.g. Rp9.750.000,00.
func FormatIDR(amount decimal.Decimal) string {
	cur := money.New(0, money.IDR).Currency()
	return cur.Formatter().Format(amount.Shift(int32(cur.Fraction)).Round(0).IntPart())
}
