package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the direction of an executed trade.
type TransactionType string

const (
	TransactionTypeBuy  TransactionType = "buy"
	TransactionTypeSell TransactionType = "sell"
)

// ValidTransactionTypes contains the allowed transaction type values.
var ValidTransactionTypes = map[TransactionType]bool{
	TransactionTypeBuy:  true,
	TransactionTypeSell: true,
}

// Transaction is the immutable record of one executed trade.
//
// Total is computed once at creation as quantity * price and never
// recomputed; later changes to the asset do not touch it. AssetID is an
// optional back-reference and may point to an asset that has since been
// removed (dangling references are allowed by design).
type Transaction struct {
	ID        string          `json:"id"`
	AssetID   string          `json:"assetId,omitempty"`
	Ticker    string          `json:"ticker"`
	Type      TransactionType `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Total     decimal.Decimal `json:"total"`
	Date      time.Time       `json:"date"`
	CreatedAt time.Time       `json:"createdAt,omitempty"`
}
