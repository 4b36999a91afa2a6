package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AssetClass distinguishes equities (traded in lots) from crypto units.
type AssetClass string

const (
	AssetClassEquity AssetClass = "equity"
	AssetClassCrypto AssetClass = "crypto"
)

// ParseAssetClass normalizes an asset class name. "stock" is accepted as an alias for equity.
func ParseAssetClass(s string) (AssetClass, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "equity", "stock":
		return AssetClassEquity, nil
	case "crypto":
		return AssetClassCrypto, nil
	}
	return "", fmt.Errorf("unknown asset class %q", s)
}

// Multiplier converts a quantity into monetary units: one equity lot is 100 shares.
func (c AssetClass) Multiplier() decimal.Decimal {
	if c == AssetClassEquity {
		return decimal.NewFromInt(100)
	}
	return decimal.NewFromInt(1)
}

// UnitName is the localized quantity unit used in AI prompts.
func (c AssetClass) UnitName() string {
	if c == AssetClassEquity {
		return "lot saham"
	}
	return "unit crypto"
}

// Holding is a single portfolio line item. Holdings are replaced, never edited in place.
type Holding struct {
	AssetClass   AssetClass      `json:"asset_class"`
	Code         string          `json:"code"`
	DisplayName  string          `json:"display_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	AverageCost  decimal.Decimal `json:"average_cost"`
	CurrentPrice decimal.Decimal `json:"current_price"`
}

// Value is currentPrice x quantity x multiplier.
func (h Holding) Value() decimal.Decimal {
	return h.CurrentPrice.Mul(h.Quantity).Mul(h.AssetClass.Multiplier())
}

// Cost is averageCost x quantity x multiplier.
func (h Holding) Cost() decimal.Decimal {
	return h.AverageCost.Mul(h.Quantity).Mul(h.AssetClass.Multiplier())
}

// HoldingLine is a holding with its derived valuation.
type HoldingLine struct {
	Index int `json:"index"`
	Holding
	Value             decimal.Decimal `json:"value"`
	Cost              decimal.Decimal `json:"cost"`
	ProfitLoss        decimal.Decimal `json:"profit_loss"`
	ProfitLossPct     decimal.Decimal `json:"profit_loss_pct"`
	ValueDisplay      string          `json:"value_display"`
	ProfitLossDisplay string          `json:"profit_loss_display"`
}

// PortfolioSummary aggregates a ledger.
type PortfolioSummary struct {
	TotalValue             decimal.Decimal `json:"total_value"`
	TotalCost              decimal.Decimal `json:"total_cost"`
	TotalProfitLoss        decimal.Decimal `json:"total_profit_loss"`
	TotalValueDisplay      string          `json:"total_value_display"`
	TotalProfitLossDisplay string          `json:"total_profit_loss_display"`
}

// AllocationSlice is one holding's share of the portfolio, by value.
type AllocationSlice struct {
	Code  string          `json:"code"`
	Value decimal.Decimal `json:"value"`
}

// PortfolioView is the full ledger as shown on the portfolio screen.
type PortfolioView struct {
	Holdings   []HoldingLine     `json:"holdings"`
	Summary    PortfolioSummary  `json:"summary"`
	Allocation []AllocationSlice `json:"allocation"`
}

// AddHoldingRequest represents the request body for adding a holding
type AddHoldingRequest struct {
	AssetClass  string          `json:"asset_class"`
	Code        string          `json:"code"`
	Quantity    decimal.Decimal `json:"quantity"`
	AverageCost decimal.Decimal `json:"average_cost"`
}
