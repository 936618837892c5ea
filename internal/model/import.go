package model

import "github.com/shopspring/decimal"

// The candidate types below represent externally-parsed rows where any field
// may be absent. Pointer fields distinguish "not provided" from zero values;
// the reconciler fills defaults deterministically before merging.

// AssetCandidate is a partial asset row from an import source.
type AssetCandidate struct {
	Ticker       *string          `json:"ticker,omitempty"`
	Name         *string          `json:"name,omitempty"`
	Type         *AssetType       `json:"type,omitempty"`
	Quantity     *decimal.Decimal `json:"quantity,omitempty"`
	AveragePrice *decimal.Decimal `json:"averagePrice,omitempty"`
}

// DividendCandidate is a partial dividend row from an import source.
type DividendCandidate struct {
	Ticker      *string          `json:"ticker,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Date        *string          `json:"date,omitempty"`
	Description *string          `json:"description,omitempty"`
}

// TransactionCandidate is a partial transaction row from an import source.
type TransactionCandidate struct {
	Ticker   *string          `json:"ticker,omitempty"`
	Type     *TransactionType `json:"type,omitempty"`
	Quantity *decimal.Decimal `json:"quantity,omitempty"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Date     *string          `json:"date,omitempty"`
}

// ImportBatch groups the three candidate lists produced by one parse of an
// external spreadsheet, pasted text, or image. The three lists are merged
// independently; any of them may be empty.
type ImportBatch struct {
	Assets       []AssetCandidate       `json:"assets"`
	Dividends    []DividendCandidate    `json:"dividends"`
	Transactions []TransactionCandidate `json:"transactions"`
}

// Empty reports whether the batch carries no usable rows at all.
func (b ImportBatch) Empty() bool {
	return len(b.Assets) == 0 && len(b.Dividends) == 0 && len(b.Transactions) == 0
}
