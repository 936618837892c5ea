package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/investiai/portfolio-backend/internal/apperrors"
	"github.com/investiai/portfolio-backend/internal/model"
)

// RecordTrade applies a single buy or sell against one asset and produces
// the updated asset plus the immutable transaction record, without mutating
// the input. Quantity and price must be strictly positive; violations are
// rejected before any state is produced.
//
// Buy: the new average price is the quantity-weighted mean of the old
// position and the trade, so a sequence of buys yields the same average
// regardless of order.
//
// Sell: quantity is clamped at zero (an over-sell discards the excess) and
// the average price is left unchanged. No realized gain/loss is recorded.
func RecordTrade(
	asset model.Asset,
	tradeType model.TransactionType,
	quantity, price decimal.Decimal,
	date time.Time,
) (model.Asset, model.Transaction, error) {

	if !quantity.IsPositive() {
		return model.Asset{}, model.Transaction{}, apperrors.ErrInvalidQuantity
	}
	if !price.IsPositive() {
		return model.Asset{}, model.Transaction{}, apperrors.ErrInvalidPrice
	}

	transaction := model.Transaction{
		ID:       uuid.New().String(),
		AssetID:  asset.ID,
		Ticker:   asset.Ticker,
		Type:     tradeType,
		Quantity: quantity,
		Price:    price,
		Total:    quantity.Mul(price),
		Date:     date,
	}

	updated := asset

	switch tradeType {
	case model.TransactionTypeBuy:
		oldTotal := asset.Quantity.Mul(asset.AveragePrice)
		tradeTotal := quantity.Mul(price)
		newQuantity := asset.Quantity.Add(quantity)

		updated.Quantity = newQuantity
		updated.AveragePrice = oldTotal.Add(tradeTotal).Div(newQuantity)

	case model.TransactionTypeSell:
		newQuantity := asset.Quantity.Sub(quantity)
		if newQuantity.IsNegative() {
			newQuantity = decimal.Zero
		}
		updated.Quantity = newQuantity

	default:
		return model.Asset{}, model.Transaction{}, apperrors.ErrInvalidTransactionType
	}

	return updated, transaction, nil
}
