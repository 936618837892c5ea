package model

import (
	"github.com/shopspring/decimal"
)

// AssetType categorizes a holding for allocation breakdowns.
type AssetType string

const (
	AssetTypeEquity       AssetType = "Equity"
	AssetTypeREIT         AssetType = "REIT"
	AssetTypeTreasuryBond AssetType = "TreasuryBond"
	AssetTypeCash         AssetType = "CashOrFixedIncome"
	AssetTypeCrypto       AssetType = "Crypto"
	AssetTypeOther        AssetType = "Other"
)

// ValidAssetTypes contains the allowed asset type values.
var ValidAssetTypes = map[AssetType]bool{
	AssetTypeEquity:       true,
	AssetTypeREIT:         true,
	AssetTypeTreasuryBond: true,
	AssetTypeCash:         true,
	AssetTypeCrypto:       true,
	AssetTypeOther:        true,
}

// Asset represents one portfolio holding. The ticker is the natural identity
// within the portfolio; the synthetic ID exists for URL and UI stability.
//
// Quantity and AveragePrice describe the position (cost basis per unit,
// weighted-average method). CurrentPrice is the last known market price and
// is only ever touched by price updates, never by trades.
type Asset struct {
	ID           string          `json:"id"`
	Ticker       string          `json:"ticker"`
	Name         string          `json:"name"`
	Type         AssetType       `json:"type"`
	Quantity     decimal.Decimal `json:"quantity"`
	AveragePrice decimal.Decimal `json:"averagePrice"`
	CurrentPrice decimal.Decimal `json:"currentPrice"`
}

// MarketValue returns quantity * currentPrice.
func (a Asset) MarketValue() decimal.Decimal {
	return a.Quantity.Mul(a.CurrentPrice)
}
