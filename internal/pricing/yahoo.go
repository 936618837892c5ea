package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/investiai/portfolio-backend/internal/apperrors"
	"github.com/investiai/portfolio-backend/internal/ledger"
	"github.com/investiai/portfolio-backend/internal/model"
)

const yahooChartURL = "https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1d&range=1d"

// maxConcurrentQuotes bounds the per-ticker fan-out against the quote API.
const maxConcurrentQuotes = 4

// YahooSource resolves the latest regular market price per ticker from the
// Yahoo Finance chart API. Tickers are fetched concurrently; tickers the
// API does not know are skipped and keep their previous price. The source
// only fails as a whole when no ticker resolves at all.
type YahooSource struct {
	httpClient *http.Client
	baseURL    string
}

// NewYahooSource creates a Yahoo Finance quote source with default HTTP settings.
func NewYahooSource() *YahooSource {
	return &YahooSource{
		httpClient: &http.Client{},
		baseURL:    yahooChartURL,
	}
}

// chartResponse is the subset of the Yahoo chart payload we read.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
		} `json:"result"`
	} `json:"chart"`
}

// FetchLatestPrices implements Source.
func (s *YahooSource) FetchLatestPrices(ctx context.Context, assets []model.Asset) ([]model.Asset, error) {
	if len(assets) == 0 {
		return []model.Asset{}, nil
	}

	var mu sync.Mutex
	prices := make(map[string]decimal.Decimal)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrentQuotes)

	for _, asset := range assets {
		ticker := ledger.NormalizeTicker(asset.Ticker)
		group.Go(func() error {
			price, err := s.fetchQuote(groupCtx, ticker)
			if err != nil {
				// Partial coverage is fine; unmatched tickers keep
				// their previous price.
				return nil
			}

			mu.Lock()
			prices[ticker] = price
			mu.Unlock()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPriceSource, err)
	}

	if len(prices) == 0 {
		return nil, fmt.Errorf("%w: no ticker resolved", apperrors.ErrPriceSource)
	}

	return applyPrices(assets, prices), nil
}

func (s *YahooSource) fetchQuote(ctx context.Context, ticker string) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf(s.baseURL, ticker), nil)
	if err != nil {
		return decimal.Decimal{}, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return decimal.Decimal{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Decimal{}, fmt.Errorf("quote API returned status %d", resp.StatusCode)
	}

	var chart chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&chart); err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to decode quote response: %w", err)
	}

	if len(chart.Chart.Result) == 0 {
		return decimal.Decimal{}, fmt.Errorf("no price data returned for %s", ticker)
	}

	price := decimal.NewFromFloat(chart.Chart.Result[0].Meta.RegularMarketPrice)
	if !price.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("non-positive price for %s", ticker)
	}
	return price, nil
}
