package pricing

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/investiai/portfolio-backend/internal/apperrors"
	"github.com/investiai/portfolio-backend/internal/ledger"
	"github.com/investiai/portfolio-backend/internal/model"
)

// SheetSource reads quotes from a published spreadsheet's CSV export.
// Column A is the ticker, column B the price. The sheet must be shared as
// "anyone with the link" for the export URL to work.
type SheetSource struct {
	httpClient *http.Client
	url        string
}

// NewSheetSource creates a SheetSource for the given CSV export URL.
func NewSheetSource(url string) *SheetSource {
	return &SheetSource{
		httpClient: &http.Client{},
		url:        url,
	}
}

// FetchLatestPrices implements Source.
func (s *SheetSource) FetchLatestPrices(ctx context.Context, assets []model.Asset) ([]model.Asset, error) {
	if len(assets) == 0 {
		return []model.Asset{}, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPriceSource, err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPriceSource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: sheet returned status %d", apperrors.ErrPriceSource, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPriceSource, err)
	}

	prices := parseSheetCSV(string(body))
	if len(prices) == 0 {
		return nil, fmt.Errorf("%w: no parsable quotes in sheet", apperrors.ErrPriceSource)
	}

	return applyPrices(assets, prices), nil
}

// parseSheetCSV extracts ticker/price pairs from the sheet export. Prices
// may arrive in pt-BR format ("3.500,00"); thousands separators are
// stripped and the decimal comma converted before parsing. Unparsable rows
// are skipped.
func parseSheetCSV(csvText string) map[string]decimal.Decimal {
	prices := make(map[string]decimal.Decimal)

	for _, row := range strings.Split(csvText, "\n") {
		row = strings.TrimRight(row, "\r")
		columns := strings.Split(row, ",")
		if len(columns) < 2 {
			continue
		}

		ticker := ledger.NormalizeTicker(strings.Trim(columns[0], `"' `))
		if ticker == "" {
			continue
		}

		priceString := strings.Trim(strings.Join(columns[1:], ","), `"' `)
		if strings.Contains(priceString, ",") {
			priceString = strings.ReplaceAll(priceString, ".", "")
			priceString = strings.Replace(priceString, ",", ".", 1)
		}

		price, err := decimal.NewFromString(priceString)
		if err != nil {
			continue
		}
		prices[ticker] = price
	}

	return prices
}
