package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dividend is the immutable record of one dividend payment.
// Dividends reference assets by ticker only; removing the asset leaves
// its dividend history intact.
type Dividend struct {
	ID          string          `json:"id"`
	Ticker      string          `json:"ticker"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"createdAt,omitempty"`
}
