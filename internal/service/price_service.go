package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/investiai/portfolio-backend/internal/apperrors"
	"github.com/investiai/portfolio-backend/internal/pricing"
)

// PriceService refreshes market prices from the configured feed. A refresh
// that fails or times out leaves the ledger exactly as it was; prices only
// move on a successful fetch.
type PriceService struct {
	portfolio *PortfolioService
	source    pricing.Source
	timeout   time.Duration
}

// NewPriceService creates a new PriceService.
func NewPriceService(portfolio *PortfolioService, source pricing.Source, timeout time.Duration) *PriceService {
	return &PriceService{portfolio: portfolio, source: source, timeout: timeout}
}

// Refresh fetches the latest prices for every held asset and merges them in
// by ticker. Positions recorded while the fetch was in flight keep their
// price until the next refresh; the merge never touches quantity or
// average price.
func (s *PriceService) Refresh(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	assets, err := s.portfolio.ListAssets()
	if err != nil {
		return err
	}
	if len(assets) == 0 {
		return nil
	}

	priced, err := s.source.FetchLatestPrices(ctx, assets)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPriceSource, err)
	}

	if err := s.portfolio.ApplyPriceUpdate(priced); err != nil {
		return err
	}

	log.Printf("Refreshed prices for %d assets", len(priced))
	return nil
}

// RefreshInBackground runs Refresh and logs instead of propagating the
// error. Used by the scheduler, where there is no caller to report to.
func (s *PriceService) RefreshInBackground() {
	if err := s.Refresh(context.Background()); err != nil {
		log.Printf("Scheduled price refresh failed: %v", err)
	}
}
