package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/investiai/portfolio-backend/internal/gemini"
	"github.com/investiai/portfolio-backend/internal/ledger"
	"github.com/investiai/portfolio-backend/internal/model"
)

// AdvisorService answers free-form portfolio questions through Gemini with
// the current ledger state as context. The Gemini client is built per call
// so a key stored through the settings endpoint takes effect immediately.
type AdvisorService struct {
	portfolio *PortfolioService
	settings  *SettingsService
	model     string
}

// NewAdvisorService creates a new AdvisorService.
func NewAdvisorService(portfolio *PortfolioService, settings *SettingsService, model string) *AdvisorService {
	return &AdvisorService{portfolio: portfolio, settings: settings, model: model}
}

// Advise answers the user's question against the current portfolio.
func (s *AdvisorService) Advise(ctx context.Context, message string) (string, error) {
	key, err := s.settings.GeminiAPIKey()
	if err != nil {
		return "", err
	}

	client, err := gemini.NewClient(ctx, key, s.model)
	if err != nil {
		return "", err
	}

	snapshot, err := s.portfolio.Snapshot()
	if err != nil {
		return "", err
	}

	return client.Advise(ctx, summarizePortfolio(snapshot), message)
}

// summarizePortfolio renders the snapshot as compact text for the model
// context window. Full history is omitted; totals and positions are enough
// for advisory questions.
func summarizePortfolio(snapshot model.Snapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Total balance: %s\n", ledger.TotalBalance(snapshot.Assets).StringFixed(2))
	fmt.Fprintf(&b, "Total dividends received: %s\n", ledger.TotalDividends(snapshot.Dividends).StringFixed(2))

	b.WriteString("Positions:\n")
	for _, asset := range snapshot.Assets {
		fmt.Fprintf(&b, "- %s (%s, %s): quantity %s, average price %s, current price %s\n",
			asset.Ticker, asset.Name, asset.Type,
			asset.Quantity, asset.AveragePrice, asset.CurrentPrice)
	}

	if len(snapshot.Assets) == 0 {
		b.WriteString("- none\n")
	}

	b.WriteString("Allocation by type:\n")
	for _, entry := range ledger.AllocationByType(snapshot.Assets) {
		fmt.Fprintf(&b, "- %s: %s\n", entry.Name, entry.Value.StringFixed(2))
	}

	return b.String()
}

// GeminiParser adapts the Gemini client to the ImportParser interface,
// resolving the effective API key at call time.
type GeminiParser struct {
	settings *SettingsService
	model    string
}

// NewGeminiParser creates a new GeminiParser.
func NewGeminiParser(settings *SettingsService, model string) *GeminiParser {
	return &GeminiParser{settings: settings, model: model}
}

// ParseImportData implements ImportParser.
func (p *GeminiParser) ParseImportData(ctx context.Context, text, mimeType string, fileData []byte) (model.ImportBatch, error) {
	key, err := p.settings.GeminiAPIKey()
	if err != nil {
		return model.ImportBatch{}, err
	}

	client, err := gemini.NewClient(ctx, key, p.model)
	if err != nil {
		return model.ImportBatch{}, err
	}

	return client.ParseImportData(ctx, text, mimeType, fileData)
}
