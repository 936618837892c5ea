package request

import "github.com/shopspring/decimal"

// CreateDividendRequest is the payload for recording a dividend payment manually.
type CreateDividendRequest struct {
	Ticker      string          `json:"ticker"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Description string          `json:"description,omitempty"`
}
