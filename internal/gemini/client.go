// Package gemini wraps the Gemini API for the two AI features: extracting
// portfolio records from pasted text or uploaded documents, and the advisor
// chat. All calls are best-effort; callers degrade gracefully when the API
// is unreachable or no key is configured.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"google.golang.org/genai"

	"github.com/investiai/portfolio-backend/internal/apperrors"
	"github.com/investiai/portfolio-backend/internal/model"
)

// Client talks to the Gemini API with a fixed model.
type Client struct {
	genaiClient *genai.Client
	model       string
}

// NewClient creates a Gemini client for the given API key. Returns
// ErrAPIKeyNotConfigured when the key is empty.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, apperrors.ErrAPIKeyNotConfigured
	}

	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Client{genaiClient: genaiClient, model: model}, nil
}

const extractionPrompt = `You are a financial data extraction engine. Extract every asset position,
dividend payment and buy/sell transaction you can find in the provided
content. Content may be a brokerage statement, a spreadsheet export or
free-form notes, possibly in Portuguese.

Rules:
- ticker: the trading symbol, uppercase. Omit when truly absent.
- type must be one of: Equity, REIT, TreasuryBond, CashOrFixedIncome, Crypto, Other.
- transaction type must be "buy" or "sell".
- dates in YYYY-MM-DD format.
- numbers as plain decimals, no currency symbols or thousands separators.
- Omit any field you cannot determine; never invent values.`

// extractionSchema constrains the model output to the import batch shape.
// Every field is optional; the reconciler fills defaults downstream.
func extractionSchema() *genai.Schema {
	optionalString := &genai.Schema{Type: genai.TypeString}
	optionalNumber := &genai.Schema{Type: genai.TypeNumber}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"assets": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"ticker":       optionalString,
						"name":         optionalString,
						"type":         {Type: genai.TypeString, Enum: []string{"Equity", "REIT", "TreasuryBond", "CashOrFixedIncome", "Crypto", "Other"}},
						"quantity":     optionalNumber,
						"averagePrice": optionalNumber,
					},
				},
			},
			"dividends": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"ticker":      optionalString,
						"amount":      optionalNumber,
						"date":        optionalString,
						"description": optionalString,
					},
				},
			},
			"transactions": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"ticker":   optionalString,
						"type":     {Type: genai.TypeString, Enum: []string{"buy", "sell"}},
						"quantity": optionalNumber,
						"price":    optionalNumber,
						"date":     optionalString,
					},
				},
			},
		},
	}
}

// extractionPayload mirrors the JSON shape the schema enforces. Numbers
// arrive as float64 and are converted to candidate pointers afterwards.
type extractionPayload struct {
	Assets []struct {
		Ticker       *string  `json:"ticker"`
		Name         *string  `json:"name"`
		Type         *string  `json:"type"`
		Quantity     *float64 `json:"quantity"`
		AveragePrice *float64 `json:"averagePrice"`
	} `json:"assets"`
	Dividends []struct {
		Ticker      *string  `json:"ticker"`
		Amount      *float64 `json:"amount"`
		Date        *string  `json:"date"`
		Description *string  `json:"description"`
	} `json:"dividends"`
	Transactions []struct {
		Ticker   *string  `json:"ticker"`
		Type     *string  `json:"type"`
		Quantity *float64 `json:"quantity"`
		Price    *float64 `json:"price"`
		Date     *string  `json:"date"`
	} `json:"transactions"`
}

// ParseImportData extracts an import batch from free-form text and/or an
// uploaded file. Either text or fileData may be empty, not both.
func (c *Client) ParseImportData(ctx context.Context, text, mimeType string, fileData []byte) (model.ImportBatch, error) {
	parts := []*genai.Part{genai.NewPartFromText(extractionPrompt)}
	if len(fileData) > 0 {
		parts = append(parts, genai.NewPartFromBytes(fileData, mimeType))
	}
	if strings.TrimSpace(text) != "" {
		parts = append(parts, genai.NewPartFromText("Content:\n"+text))
	}

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   extractionSchema(),
	}

	result, err := c.genaiClient.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return model.ImportBatch{}, fmt.Errorf("gemini extraction failed: %w", err)
	}

	var payload extractionPayload
	if err := json.Unmarshal([]byte(result.Text()), &payload); err != nil {
		return model.ImportBatch{}, fmt.Errorf("failed to parse gemini extraction response: %w", err)
	}

	return payloadToBatch(payload), nil
}

func payloadToBatch(payload extractionPayload) model.ImportBatch {
	var batch model.ImportBatch

	for _, a := range payload.Assets {
		candidate := model.AssetCandidate{
			Ticker:       a.Ticker,
			Name:         a.Name,
			Quantity:     floatToDecimal(a.Quantity),
			AveragePrice: floatToDecimal(a.AveragePrice),
		}
		if a.Type != nil {
			assetType := model.AssetType(*a.Type)
			if model.ValidAssetTypes[assetType] {
				candidate.Type = &assetType
			}
		}
		batch.Assets = append(batch.Assets, candidate)
	}

	for _, d := range payload.Dividends {
		batch.Dividends = append(batch.Dividends, model.DividendCandidate{
			Ticker:      d.Ticker,
			Amount:      floatToDecimal(d.Amount),
			Date:        d.Date,
			Description: d.Description,
		})
	}

	for _, t := range payload.Transactions {
		candidate := model.TransactionCandidate{
			Ticker:   t.Ticker,
			Quantity: floatToDecimal(t.Quantity),
			Price:    floatToDecimal(t.Price),
			Date:     t.Date,
		}
		if t.Type != nil {
			txType := model.TransactionType(*t.Type)
			if model.ValidTransactionTypes[txType] {
				candidate.Type = &txType
			}
		}
		batch.Transactions = append(batch.Transactions, candidate)
	}

	return batch
}

func floatToDecimal(value *float64) *decimal.Decimal {
	if value == nil {
		return nil
	}
	d := decimal.NewFromFloat(*value)
	return &d
}

const advisorPrompt = `You are an investment advisor assistant for a personal portfolio tracker.
Answer in the user's language, concisely. Base your answer on the portfolio
summary provided. Do not give guarantees about future returns; frame
suggestions as considerations, not instructions.`

// Advise answers a free-form question with the portfolio summary as context.
func (c *Client) Advise(ctx context.Context, portfolioSummary, message string) (string, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(advisorPrompt),
		genai.NewPartFromText("Portfolio summary:\n" + portfolioSummary),
		genai.NewPartFromText("Question:\n" + message),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	result, err := c.genaiClient.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrAdvisorUnavailable, err)
	}

	answer := strings.TrimSpace(result.Text())
	if answer == "" {
		return "", fmt.Errorf("%w: empty response", apperrors.ErrAdvisorUnavailable)
	}
	return answer, nil
}
