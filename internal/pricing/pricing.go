// Package pricing implements the price feed consumed by the ledger. Every
// source follows the same contract: given the current asset list it returns
// a list of the same identities with currentPrice replaced where a price
// was resolved and left untouched otherwise. Sources never alter quantity
// or averagePrice, and a total failure returns an error with no partial
// result so the ledger keeps its previous prices.
package pricing

import (
	"context"
	"log"

	"github.com/shopspring/decimal"

	"github.com/investiai/portfolio-backend/internal/ledger"
	"github.com/investiai/portfolio-backend/internal/model"
)

// Source resolves fresh market prices for a set of assets.
type Source interface {
	FetchLatestPrices(ctx context.Context, assets []model.Asset) ([]model.Asset, error)
}

// FallbackSource tries the primary source and falls back to the secondary
// when the primary fails entirely. Partial coverage from the primary is not
// topped up by the secondary; unmatched tickers simply keep their prices.
type FallbackSource struct {
	Primary   Source
	Secondary Source
}

// NewFallbackSource creates a FallbackSource.
func NewFallbackSource(primary, secondary Source) *FallbackSource {
	return &FallbackSource{Primary: primary, Secondary: secondary}
}

// FetchLatestPrices implements Source.
func (s *FallbackSource) FetchLatestPrices(ctx context.Context, assets []model.Asset) ([]model.Asset, error) {
	updated, err := s.Primary.FetchLatestPrices(ctx, assets)
	if err == nil {
		return updated, nil
	}

	log.Printf("primary price source failed, using fallback: %v", err)
	return s.Secondary.FetchLatestPrices(ctx, assets)
}

// applyPrices returns a copy of assets with currentPrice replaced for every
// ticker present in prices. Non-positive resolved prices are ignored so a
// bad feed row can never push a price negative.
func applyPrices(assets []model.Asset, prices map[string]decimal.Decimal) []model.Asset {
	updated := make([]model.Asset, len(assets))
	copy(updated, assets)

	for i, asset := range updated {
		if price, ok := prices[ledger.NormalizeTicker(asset.Ticker)]; ok && price.IsPositive() {
			updated[i].CurrentPrice = price
		}
	}
	return updated
}
