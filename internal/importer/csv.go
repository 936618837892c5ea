// Package importer turns raw import input into candidate rows for the
// ledger reconciler. The rule-based parser here handles the documented
// spreadsheet format; anything it cannot read is handed to the Gemini
// structured-extraction client by the import service.
package importer

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/investiai/portfolio-backend/internal/ledger"
	"github.com/investiai/portfolio-backend/internal/model"
)

// ParseCSV parses the fixed four-column import format, one asset per line:
//
//	TICKER; TYPE; QUANTITY; AVERAGE_PRICE
//
// separated by ";" or ",". Blank lines, "#" comments and header lines are
// skipped; rows with unparsable numbers are dropped. Only asset candidates
// come out of this path; transactions and dividends need the AI parser.
func ParseCSV(text string) model.ImportBatch {
	var assets []model.AssetCandidate

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(strings.ToUpper(trimmed), "TICKER") {
			continue
		}

		parts := strings.FieldsFunc(trimmed, func(r rune) bool { return r == ';' || r == ',' })
		if len(parts) < 4 {
			continue
		}
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		ticker := ledger.NormalizeTicker(parts[0])
		if ticker == "" {
			continue
		}

		quantity, err := decimal.NewFromString(parts[2])
		if err != nil {
			continue
		}
		price, err := decimal.NewFromString(parts[3])
		if err != nil {
			continue
		}

		assetType := MapAssetType(parts[1])
		name := ticker // fallback name

		assets = append(assets, model.AssetCandidate{
			Ticker:       &ticker,
			Name:         &name,
			Type:         &assetType,
			Quantity:     &quantity,
			AveragePrice: &price,
		})
	}

	return model.ImportBatch{Assets: assets}
}

// MapAssetType maps a free-text type column onto the asset type enum.
// Keywords follow the source spreadsheets (Brazilian broker exports) with
// English aliases; anything unrecognized lands in Other.
func MapAssetType(raw string) model.AssetType {
	upper := strings.ToUpper(strings.TrimSpace(raw))

	switch {
	case strings.Contains(upper, "ACAO"), strings.Contains(upper, "AÇÃO"),
		strings.Contains(upper, "EQUITY"), strings.Contains(upper, "STOCK"):
		return model.AssetTypeEquity
	case strings.Contains(upper, "FII"), strings.Contains(upper, "REIT"):
		return model.AssetTypeREIT
	case strings.Contains(upper, "TESOURO"), strings.Contains(upper, "TREASURY"),
		strings.Contains(upper, "BOND"):
		return model.AssetTypeTreasuryBond
	case strings.Contains(upper, "CAIXA"), strings.Contains(upper, "FIXA"),
		strings.Contains(upper, "CASH"), strings.Contains(upper, "CDB"):
		return model.AssetTypeCash
	case strings.Contains(upper, "CRIPTO"), strings.Contains(upper, "CRYPTO"):
		return model.AssetTypeCrypto
	default:
		return model.AssetTypeOther
	}
}
