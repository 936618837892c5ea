package request

import "github.com/shopspring/decimal"

// TradeRequest is the payload for recording a buy or sell against an asset.
type TradeRequest struct {
	Type     string          `json:"type"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Date     string          `json:"date"`
}
