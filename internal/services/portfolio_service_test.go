package services

import (
	"context"
	"errors"
	"testing"

	"github.com/epeers/investdash/internal/models"
	"github.com/epeers/investdash/internal/repository"
	"github.com/epeers/investdash/internal/state"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_InitialPortfolio(t *testing.T) {
	_, ref := newTestStore(t)
	view := Aggregate(ref.InitialHoldings())

	require.Len(t, view.Holdings, 3)
	assert.True(t, view.Holdings[0].Value.Equal(d("9750000")), "BBCA value %s", view.Holdings[0].Value)
	assert.True(t, view.Holdings[0].Cost.Equal(d("9250000")))
	assert.True(t, view.Holdings[1].ProfitLoss.Equal(d("-3500000")), "TLKM P/L %s", view.Holdings[1].ProfitLoss)
	assert.True(t, view.Holdings[2].Value.Equal(d("55000000")), "BTC value %s", view.Holdings[2].Value)

	assert.True(t, view.Summary.TotalValue.Equal(d("80250000")), "total %s", view.Summary.TotalValue)
	assert.True(t, view.Summary.TotalCost.Equal(d("78250000")))
	assert.True(t, view.Summary.TotalProfitLoss.Equal(d("2000000")))
	assert.Contains(t, view.Summary.TotalValueDisplay, "80.250.000")

	require.Len(t, view.Allocation, 3)
	assert.Equal(t, "BBCA", view.Allocation[0].Code)
}

func TestAggregate_Empty(t *testing.T) {
	view := Aggregate(nil)
	assert.Empty(t, view.Holdings)
	assert.True(t, view.Summary.TotalValue.IsZero())
	assert.True(t, view.Summary.TotalProfitLoss.IsZero())
}

func TestAggregate_ProfitLossPercent(t *testing.T) {
	view := Aggregate([]models.Holding{{
		AssetClass:   models.AssetClassCrypto,
		Code:         "ETH",
		Quantity:     d("2"),
		AverageCost:  d("40000000"),
		CurrentPrice: d("50000000"),
	}})
	assert.True(t, view.Holdings[0].ProfitLossPct.Equal(d("25")), "pct %s", view.Holdings[0].ProfitLossPct)
}

func TestFormatIDR(t *testing.T) {
	assert.Contains(t, FormatIDR(d("9750000")), "9.750.000")
	assert.Contains(t, FormatIDR(d("-3500000")), "3.500.000")
	assert.Contains(t, FormatIDR(d("-3500000")), "-")
}

func TestPortfolioService_Add(t *testing.T) {
	store, ref := newTestStore(t)
	m := newTestMetrics()
	svc := NewPortfolioService(store, ref, m)

	h, err := svc.Add(context.Background(), models.AddHoldingRequest{
		AssetClass:  "stock",
		Code:        "goto",
		Quantity:    d("100"),
		AverageCost: d("60"),
	})
	require.NoError(t, err)
	assert.Equal(t, "GOTO", h.Code)
	assert.Equal(t, models.AssetClassEquity, h.AssetClass)
	assert.Equal(t, "GoTo Gojek Tokopedia Tbk.", h.DisplayName)
	assert.True(t, h.CurrentPrice.Equal(d("55")))

	holdings := svc.Holdings()
	require.Len(t, holdings, 4)
	assert.Equal(t, "GOTO", holdings[3].Code)
	assert.Equal(t, float64(4), testutil.ToFloat64(m.Holdings))

	// GOTO adds 55*100*100 to the total
	assert.True(t, svc.Summary().TotalValue.Equal(d("80800000")))
}

func TestPortfolioService_AddAllowsDuplicates(t *testing.T) {
	store, ref := newTestStore(t)
	svc := NewPortfolioService(store, ref, newTestMetrics())

	req := models.AddHoldingRequest{AssetClass: "equity", Code: "BBCA", Quantity: d("1"), AverageCost: d("9000")}
	_, err := svc.Add(context.Background(), req)
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, svc.Holdings(), 5)
}

func TestPortfolioService_AddValidationOrder(t *testing.T) {
	store, ref := newTestStore(t)
	svc := NewPortfolioService(store, ref, newTestMetrics())

	testCases := []struct {
		name  string
		req   models.AddHoldingRequest
		field string
	}{
		{"bad class wins over everything", models.AddHoldingRequest{AssetClass: "bond"}, "asset_class"},
		{"missing code", models.AddHoldingRequest{AssetClass: "equity", Quantity: d("-1")}, "code"},
		{"zero quantity", models.AddHoldingRequest{AssetClass: "equity", Code: "BBCA", AverageCost: d("-1")}, "quantity"},
		{"negative quantity", models.AddHoldingRequest{AssetClass: "equity", Code: "BBCA", Quantity: d("-2"), AverageCost: d("1")}, "quantity"},
		{"zero cost", models.AddHoldingRequest{AssetClass: "equity", Code: "XXXX", Quantity: d("1")}, "average_cost"},
		{"unknown code", models.AddHoldingRequest{AssetClass: "equity", Code: "XXXX", Quantity: d("1"), AverageCost: d("1")}, "code"},
		{"code of other class", models.AddHoldingRequest{AssetClass: "crypto", Code: "BBCA", Quantity: d("1"), AverageCost: d("1")}, "code"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Add(context.Background(), tc.req)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tc.field, verr.Field)
			assert.True(t, errors.Is(err, ErrValidation))
		})
	}
	assert.Len(t, svc.Holdings(), 3, "failed adds must not change the ledger")
}

func TestPortfolioService_Remove(t *testing.T) {
	store, ref := newTestStore(t)
	m := newTestMetrics()
	svc := NewPortfolioService(store, ref, m)

	removed, err := svc.Remove(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "TLKM", removed.Code)

	holdings := svc.Holdings()
	require.Len(t, holdings, 2)
	assert.Equal(t, "BBCA", holdings[0].Code)
	assert.Equal(t, "BTC", holdings[1].Code)
	assert.Equal(t, float64(2), testutil.ToFloat64(m.Holdings))
}

func TestPortfolioService_RemoveOutOfRange(t *testing.T) {
	store, ref := newTestStore(t)
	svc := NewPortfolioService(store, ref, newTestMetrics())

	for _, idx := range []int{-1, 3, 99} {
		_, err := svc.Remove(context.Background(), idx)
		assert.ErrorIs(t, err, ErrHoldingNotFound)
	}
	assert.Len(t, svc.Holdings(), 3)
}

func TestPortfolioService_EmitsEvents(t *testing.T) {
	store, ref := newTestStore(t)
	svc := NewPortfolioService(store, ref, newTestMetrics())
	events, cancel := store.Subscribe(4)
	defer cancel()

	_, err := svc.Add(context.Background(), models.AddHoldingRequest{
		AssetClass: "crypto", Code: "ETH", Quantity: decimal.NewFromFloat(0.5), AverageCost: d("50000000"),
	})
	require.NoError(t, err)

	ev := <-events
	assert.Equal(t, models.EventPortfolio, ev.Kind)
	holdings, ok := ev.Payload.([]models.Holding)
	require.True(t, ok)
	assert.Len(t, holdings, 4)
}

func TestPortfolioService_EmptyLedgerAddThenRemove(t *testing.T) {
	store := state.NewStore(state.AppState{})
	svc := NewPortfolioService(store, repository.NewReferenceRepository(), newTestMetrics())

	_, err := svc.Add(context.Background(), models.AddHoldingRequest{
		AssetClass:  "stock",
		Code:        "BBCA",
		Quantity:    d("10"),
		AverageCost: d("9250"),
	})
	require.NoError(t, err)

	sum := svc.Summary()
	assert.True(t, sum.TotalValue.Equal(d("9750000")), "total %s", sum.TotalValue)
	assert.True(t, sum.TotalProfitLoss.Equal(d("500000")), "P/L %s", sum.TotalProfitLoss)

	_, err = svc.Remove(context.Background(), 0)
	require.NoError(t, err)

	assert.Empty(t, svc.Holdings())
	sum = svc.Summary()
	assert.True(t, sum.TotalValue.IsZero(), "total %s", sum.TotalValue)
	assert.True(t, sum.TotalProfitLoss.IsZero(), "P/L %s", sum.TotalProfitLoss)
}

func TestPortfolioService_AddShiftsTotalsByHoldingValue(t *testing.T) {
	store, ref := newTestStore(t)
	svc := NewPortfolioService(store, ref, newTestMetrics())
	before := svc.Summary()

	h, err := svc.Add(context.Background(), models.AddHoldingRequest{
		AssetClass:  "crypto",
		Code:        "ETH",
		Quantity:    d("0.5"),
		AverageCost: d("45000000"),
	})
	require.NoError(t, err)
	after := svc.Summary()

	line := Aggregate([]models.Holding{*h}).Holdings[0]
	assert.True(t, after.TotalValue.Sub(before.TotalValue).Equal(line.Value), "value delta %s", after.TotalValue.Sub(before.TotalValue))
	assert.True(t, after.TotalProfitLoss.Sub(before.TotalProfitLoss).Equal(line.Value.Sub(line.Cost)))
}
