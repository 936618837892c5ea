package ledger

import (
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/investiai/portfolio-backend/internal/model"
)

func viewAssets() []model.Asset {
	return []model.Asset{
		{Ticker: "PETR4", Type: model.AssetTypeEquity,
			Quantity:     decimal.RequireFromString("100"),
			CurrentPrice: decimal.RequireFromString("38.90")},
		{Ticker: "HGLG11", Type: model.AssetTypeREIT,
			Quantity:     decimal.RequireFromString("15"),
			CurrentPrice: decimal.RequireFromString("165.50")},
		{Ticker: "BTC", Type: model.AssetTypeCrypto,
			Quantity:     decimal.RequireFromString("0.05"),
			CurrentPrice: decimal.RequireFromString("350000")},
		{Ticker: "VALE3", Type: model.AssetTypeEquity,
			Quantity:     decimal.RequireFromString("10"),
			CurrentPrice: decimal.RequireFromString("60.00")},
	}
}

func TestTotalBalance(t *testing.T) {
	// 100*38.90 + 15*165.50 + 0.05*350000 + 10*60 = 3890 + 2482.50 + 17500 + 600
	want := decimal.RequireFromString("24472.50")
	if got := TotalBalance(viewAssets()); !got.Equal(want) {
		t.Errorf("expected %s, got %s", want, got)
	}
	if !TotalBalance(nil).IsZero() {
		t.Error("empty portfolio must have zero balance")
	}
}

func TestAllocationByType(t *testing.T) {
	entries := AllocationByType(viewAssets())

	wantOrder := []string{"Crypto", "Equity", "REIT"}
	gotOrder := make([]string, len(entries))
	for i, e := range entries {
		gotOrder[i] = e.Name
	}
	if !reflect.DeepEqual(gotOrder, wantOrder) {
		t.Fatalf("expected order %v, got %v", wantOrder, gotOrder)
	}

	// Both equities group under one entry.
	if !entries[1].Value.Equal(decimal.RequireFromString("4490.00")) {
		t.Errorf("expected Equity value 4490.00, got %s", entries[1].Value)
	}
}

func TestAllocationByAssetFilteredTotal(t *testing.T) {
	filter := model.AssetTypeEquity
	entries, total := AllocationByAsset(viewAssets(), &filter)

	if len(entries) != 2 {
		t.Fatalf("expected 2 equity entries, got %d", len(entries))
	}
	if entries[0].Name != "PETR4" || entries[1].Name != "VALE3" {
		t.Errorf("expected descending order PETR4, VALE3; got %s, %s", entries[0].Name, entries[1].Name)
	}
	// Percentages are computed against the filtered total, not the
	// portfolio total.
	if !total.Equal(decimal.RequireFromString("4490.00")) {
		t.Errorf("expected filtered total 4490.00, got %s", total)
	}

	entries, total = AllocationByAsset(viewAssets(), nil)
	if len(entries) != 4 {
		t.Fatalf("expected 4 unfiltered entries, got %d", len(entries))
	}
	if !total.Equal(decimal.RequireFromString("24472.50")) {
		t.Errorf("expected unfiltered total 24472.50, got %s", total)
	}
}

func TestGroupDividendsByMonth(t *testing.T) {
	date := func(s string) time.Time {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			t.Fatalf("bad test date %s: %v", s, err)
		}
		return parsed
	}

	dividends := []model.Dividend{
		{ID: "1", Ticker: "HGLG11", Amount: decimal.RequireFromString("16.50"), Date: date("2023-11-15")},
		{ID: "2", Ticker: "PETR4", Amount: decimal.RequireFromString("120.50"), Date: date("2023-11-20")},
		{ID: "3", Ticker: "PETR4", Amount: decimal.RequireFromString("80.00"), Date: date("2023-12-05")},
	}

	groups := GroupDividendsByMonth(dividends)

	if len(groups) != 2 {
		t.Fatalf("expected 2 month groups, got %d", len(groups))
	}
	if groups[0].Month != "2023-12" || groups[1].Month != "2023-11" {
		t.Fatalf("expected months [2023-12 2023-11], got [%s %s]", groups[0].Month, groups[1].Month)
	}

	november := groups[1]
	if !november.Total.Equal(decimal.RequireFromString("137.00")) {
		t.Errorf("expected november total 137.00, got %s", november.Total)
	}
	if november.Items[0].ID != "2" || november.Items[1].ID != "1" {
		t.Errorf("items must be sorted descending by date, got %s then %s",
			november.Items[0].ID, november.Items[1].ID)
	}
}

func TestViewsArePure(t *testing.T) {
	assets := viewAssets()

	first := AllocationByType(assets)
	second := AllocationByType(assets)
	if !reflect.DeepEqual(first, second) {
		t.Error("AllocationByType must be deterministic on an unchanged snapshot")
	}

	balanceBefore := TotalBalance(assets)
	AllocationByAsset(assets, nil)
	GroupDividendsByMonth(nil)
	if !TotalBalance(assets).Equal(balanceBefore) {
		t.Error("views must not mutate the snapshot")
	}
}
