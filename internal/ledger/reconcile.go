package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/investiai/portfolio-backend/internal/model"
)

// ReconcileResult is the outcome of merging one import batch into the
// current asset list. Assets is the full post-merge asset list (a new
// slice, inputs untouched); Transactions and Dividends are the records to
// append. Created and Updated count the asset upserts for user feedback.
type ReconcileResult struct {
	Assets       []model.Asset
	Transactions []model.Transaction
	Dividends    []model.Dividend
	Created      int
	Updated      int
}

// Reconcile merges a batch of externally-sourced candidate rows into the
// ledger using ticker-based matching. The three sub-merges are independent:
// a batch may carry transactions or dividends with no accompanying asset
// snapshot, or vice versa.
//
// Transactions and dividends are default-filled and appended verbatim.
// There is no deduplication against existing history; re-importing the
// same batch twice doubles it.
//
// Asset candidates are upserts against the current list. A candidate whose
// ticker matches an existing asset overwrites quantity and averagePrice
// only for the fields present; this is a direct position snapshot ("this is
// now the true position"), not an incremental trade, so it bypasses the
// weighted-average formula. Unseen tickers create a new asset whose
// currentPrice starts at the imported averagePrice until the next refresh.
func Reconcile(assets []model.Asset, batch model.ImportBatch, now time.Time) ReconcileResult {
	result := ReconcileResult{
		Transactions: make([]model.Transaction, 0, len(batch.Transactions)),
		Dividends:    make([]model.Dividend, 0, len(batch.Dividends)),
	}

	for _, candidate := range batch.Transactions {
		quantity := decimalOrZero(candidate.Quantity)
		price := decimalOrZero(candidate.Price)

		result.Transactions = append(result.Transactions, model.Transaction{
			ID:       uuid.New().String(),
			Ticker:   tickerOrUnknown(candidate.Ticker),
			Type:     transactionTypeOrBuy(candidate.Type),
			Quantity: quantity,
			Price:    price,
			Total:    quantity.Mul(price),
			Date:     dateOrNow(candidate.Date, now),
		})
	}

	for _, candidate := range batch.Dividends {
		description := "Imported"
		if candidate.Description != nil && *candidate.Description != "" {
			description = *candidate.Description
		}

		result.Dividends = append(result.Dividends, model.Dividend{
			ID:          uuid.New().String(),
			Ticker:      tickerOrUnknown(candidate.Ticker),
			Amount:      decimalOrZero(candidate.Amount),
			Date:        dateOrNow(candidate.Date, now),
			Description: description,
		})
	}

	result.Assets = make([]model.Asset, len(assets))
	copy(result.Assets, assets)

	for _, candidate := range batch.Assets {
		ticker := tickerOrUnknown(candidate.Ticker)

		existingIndex := -1
		for i, asset := range result.Assets {
			if asset.Ticker == ticker {
				existingIndex = i
				break
			}
		}

		if existingIndex >= 0 {
			// Present fields overwrite, absent fields keep the existing value.
			if candidate.Quantity != nil {
				result.Assets[existingIndex].Quantity = *candidate.Quantity
			}
			if candidate.AveragePrice != nil {
				result.Assets[existingIndex].AveragePrice = *candidate.AveragePrice
			}
			result.Updated++
			continue
		}

		averagePrice := decimalOrZero(candidate.AveragePrice)

		name := ticker
		if candidate.Name != nil && *candidate.Name != "" {
			name = *candidate.Name
		}

		assetType := model.AssetTypeOther
		if candidate.Type != nil && model.ValidAssetTypes[*candidate.Type] {
			assetType = *candidate.Type
		}

		result.Assets = append(result.Assets, model.Asset{
			ID:           uuid.New().String(),
			Ticker:       ticker,
			Name:         name,
			Type:         assetType,
			Quantity:     decimalOrZero(candidate.Quantity),
			AveragePrice: averagePrice,
			CurrentPrice: averagePrice,
		})
		result.Created++
	}

	return result
}

func tickerOrUnknown(ticker *string) string {
	if ticker == nil || NormalizeTicker(*ticker) == "" {
		return "UNKNOWN"
	}
	return NormalizeTicker(*ticker)
}

func decimalOrZero(value *decimal.Decimal) decimal.Decimal {
	if value == nil {
		return decimal.Zero
	}
	return *value
}

func transactionTypeOrBuy(t *model.TransactionType) model.TransactionType {
	if t == nil || !model.ValidTransactionTypes[*t] {
		return model.TransactionTypeBuy
	}
	return *t
}

func dateOrNow(date *string, now time.Time) time.Time {
	if date != nil {
		if parsed, err := time.Parse("2006-01-02", *date); err == nil {
			return parsed.UTC()
		}
	}
	return now.UTC().Truncate(24 * time.Hour)
}
