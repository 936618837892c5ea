package importer

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/investiai/portfolio-backend/internal/model"
)

func TestParseCSV(t *testing.T) {
	input := "# comment line\n" +
		"Ticker;Tipo;Qtd;Preco\n" +
		"PETR4; ACAO; 100; 32.50\n" +
		"hglg11, FII, 15, 160.00\n" +
		"\n" +
		"BAD; ACAO; not-a-number; 10\n" +
		"SHORT; ACAO; 1\n" +
		"CDB INTER; CAIXA; 1; 5000\n"

	batch := ParseCSV(input)

	if len(batch.Transactions) != 0 || len(batch.Dividends) != 0 {
		t.Fatal("CSV path must only produce asset candidates")
	}
	if len(batch.Assets) != 3 {
		t.Fatalf("expected 3 parsed assets, got %d", len(batch.Assets))
	}

	first := batch.Assets[0]
	if *first.Ticker != "PETR4" || *first.Type != model.AssetTypeEquity {
		t.Errorf("unexpected first row: %+v", first)
	}
	if !first.Quantity.Equal(decimal.RequireFromString("100")) ||
		!first.AveragePrice.Equal(decimal.RequireFromString("32.50")) {
		t.Errorf("unexpected numbers: qty=%s price=%s", first.Quantity, first.AveragePrice)
	}

	second := batch.Assets[1]
	if *second.Ticker != "HGLG11" {
		t.Errorf("tickers must be uppercased, got %s", *second.Ticker)
	}
	if *second.Type != model.AssetTypeREIT {
		t.Errorf("expected REIT, got %s", *second.Type)
	}

	third := batch.Assets[2]
	if *third.Type != model.AssetTypeCash {
		t.Errorf("expected CashOrFixedIncome, got %s", *third.Type)
	}
}

func TestParseCSVEmptyInput(t *testing.T) {
	if !ParseCSV("").Empty() {
		t.Error("empty input must yield an empty batch")
	}
	if !ParseCSV("just some prose\nwith no columns").Empty() {
		t.Error("prose input must yield an empty batch")
	}
}

func TestMapAssetType(t *testing.T) {
	tests := []struct {
		raw  string
		want model.AssetType
	}{
		{"ACAO", model.AssetTypeEquity},
		{"ação ordinária", model.AssetTypeEquity},
		{"FII", model.AssetTypeREIT},
		{"Tesouro Direto", model.AssetTypeTreasuryBond},
		{"Renda Fixa", model.AssetTypeCash},
		{"CRIPTO", model.AssetTypeCrypto},
		{"crypto", model.AssetTypeCrypto},
		{"ETF", model.AssetTypeOther},
		{"", model.AssetTypeOther},
	}

	for _, tt := range tests {
		if got := MapAssetType(tt.raw); got != tt.want {
			t.Errorf("MapAssetType(%q) = %s, want %s", tt.raw, got, tt.want)
		}
	}
}
