package request

import "github.com/shopspring/decimal"

// CreateAssetRequest is the payload for adding a holding manually.
// CurrentPrice may be omitted; it then starts at the average price the same
// way imported assets do.
type CreateAssetRequest struct {
	Ticker       string           `json:"ticker"`
	Name         string           `json:"name"`
	Type         string           `json:"type"`
	Quantity     decimal.Decimal  `json:"quantity"`
	AveragePrice decimal.Decimal  `json:"averagePrice"`
	CurrentPrice *decimal.Decimal `json:"currentPrice,omitempty"`
}

// UpdateAssetRequest is the payload for editing a holding. All fields are
// optional; absent fields keep their current value.
type UpdateAssetRequest struct {
	Name         *string          `json:"name,omitempty"`
	Type         *string          `json:"type,omitempty"`
	Quantity     *decimal.Decimal `json:"quantity,omitempty"`
	AveragePrice *decimal.Decimal `json:"averagePrice,omitempty"`
	CurrentPrice *decimal.Decimal `json:"currentPrice,omitempty"`
}
