package service

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/investiai/portfolio-backend/internal/apperrors"
	"github.com/investiai/portfolio-backend/internal/api/request"
	"github.com/investiai/portfolio-backend/internal/model"
	"github.com/investiai/portfolio-backend/internal/repository"
	"github.com/investiai/portfolio-backend/internal/testutil"
)

func newTestPortfolioService(t *testing.T) (*PortfolioService, *sql.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	service := NewPortfolioService(
		db,
		repository.NewAssetRepository(db),
		repository.NewTransactionRepository(db),
		repository.NewDividendRepository(db),
	)
	return service, db
}

func TestCreateAssetDefaultsCurrentPrice(t *testing.T) {
	service, _ := newTestPortfolioService(t)

	asset, err := service.CreateAsset(request.CreateAssetRequest{
		Ticker:       "  ivvb11 ",
		Name:         "iShares S&P 500",
		Type:         "Equity",
		Quantity:     decimal.RequireFromString("5"),
		AveragePrice: decimal.RequireFromString("280.00"),
	})
	if err != nil {
		t.Fatalf("CreateAsset failed: %v", err)
	}

	if asset.Ticker != "IVVB11" {
		t.Errorf("expected normalized ticker IVVB11, got %s", asset.Ticker)
	}
	if !asset.CurrentPrice.Equal(asset.AveragePrice) {
		t.Errorf("expected currentPrice to start at averagePrice, got %s", asset.CurrentPrice)
	}

	stored, err := service.GetAsset(asset.ID)
	if err != nil {
		t.Fatalf("GetAsset failed: %v", err)
	}
	if !stored.Quantity.Equal(decimal.RequireFromString("5")) {
		t.Errorf("stored quantity mismatch: %s", stored.Quantity)
	}
}

func TestCreateAssetRejectsDuplicateTicker(t *testing.T) {
	service, db := newTestPortfolioService(t)

	testutil.NewAsset().WithTicker("PETR4").Insert(t, db)

	_, err := service.CreateAsset(request.CreateAssetRequest{
		Ticker:       " petr4 ",
		Type:         "Equity",
		Quantity:     decimal.RequireFromString("1"),
		AveragePrice: decimal.RequireFromString("30.00"),
	})
	if !errors.Is(err, apperrors.ErrDuplicateTicker) {
		t.Errorf("expected ErrDuplicateTicker, got %v", err)
	}
}

func TestRecordTradePersistsAssetAndHistory(t *testing.T) {
	service, db := newTestPortfolioService(t)

	asset := testutil.NewAsset().
		WithTicker("PETR4").
		WithQuantity("100").
		WithAveragePrice("32.50").
		WithCurrentPrice("38.90").
		Insert(t, db)

	updated, transaction, err := service.RecordTrade(asset.ID, request.TradeRequest{
		Type:     "buy",
		Quantity: decimal.RequireFromString("50"),
		Price:    decimal.RequireFromString("40.00"),
		Date:     "2024-11-03",
	})
	if err != nil {
		t.Fatalf("RecordTrade failed: %v", err)
	}

	if !updated.Quantity.Equal(decimal.RequireFromString("150")) {
		t.Errorf("expected quantity 150, got %s", updated.Quantity)
	}
	if !updated.AveragePrice.Equal(decimal.RequireFromString("35")) {
		t.Errorf("expected average price 35, got %s", updated.AveragePrice)
	}
	if !transaction.Total.Equal(decimal.RequireFromString("2000")) {
		t.Errorf("expected total 2000, got %s", transaction.Total)
	}

	// Both writes must be visible after commit.
	stored, err := service.GetAsset(asset.ID)
	if err != nil {
		t.Fatalf("GetAsset failed: %v", err)
	}
	if !stored.AveragePrice.Equal(decimal.RequireFromString("35")) {
		t.Errorf("stored average price mismatch: %s", stored.AveragePrice)
	}
	testutil.AssertRowCount(t, db, "transaction", 1)
}

func TestRecordTradeRejectionLeavesLedgerUntouched(t *testing.T) {
	service, db := newTestPortfolioService(t)

	asset := testutil.NewAsset().WithTicker("PETR4").WithQuantity("100").Insert(t, db)

	_, _, err := service.RecordTrade(asset.ID, request.TradeRequest{
		Type:     "buy",
		Quantity: decimal.Zero,
		Price:    decimal.RequireFromString("40.00"),
		Date:     "2024-11-03",
	})
	if !errors.Is(err, apperrors.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}

	stored, err := service.GetAsset(asset.ID)
	if err != nil {
		t.Fatalf("GetAsset failed: %v", err)
	}
	if !stored.Quantity.Equal(decimal.RequireFromString("100")) {
		t.Errorf("rejected trade must not change the position, got %s", stored.Quantity)
	}
	testutil.AssertRowCount(t, db, "transaction", 0)
}

func TestDeleteAssetKeepsHistory(t *testing.T) {
	service, db := newTestPortfolioService(t)

	asset := testutil.NewAsset().WithTicker("HGLG11").Insert(t, db)
	testutil.NewTransaction().WithTicker("HGLG11").WithAssetID(asset.ID).Insert(t, db)
	testutil.NewDividend().WithTicker("HGLG11").Insert(t, db)

	if err := service.DeleteAsset(asset.ID); err != nil {
		t.Fatalf("DeleteAsset failed: %v", err)
	}

	testutil.AssertRowCount(t, db, "asset", 0)
	testutil.AssertRowCount(t, db, "transaction", 1)
	testutil.AssertRowCount(t, db, "dividend", 1)

	// Deleting again is a no-op, not an error.
	if err := service.DeleteAsset(asset.ID); err != nil {
		t.Errorf("deleting an absent asset must not fail: %v", err)
	}
}

func TestSnapshotIsConsistentUnderConcurrentTrades(t *testing.T) {
	service, db := newTestPortfolioService(t)

	asset := testutil.NewAsset().
		WithTicker("PETR4").
		WithQuantity("0").
		WithAveragePrice("0").
		WithCurrentPrice("1.00").
		Insert(t, db)

	const trades = 200
	done := make(chan struct{})

	go func() {
		defer close(done)
		for i := 0; i < trades; i++ {
			_, _, err := service.RecordTrade(asset.ID, request.TradeRequest{
				Type:     "buy",
				Quantity: decimal.RequireFromString("1"),
				Price:    decimal.RequireFromString("1.00"),
				Date:     "2024-11-03",
			})
			if err != nil {
				t.Errorf("RecordTrade failed: %v", err)
				return
			}
		}
	}()

	// Every buy adds quantity 1 and appends one transaction, so in any
	// consistent snapshot the position equals the history length.
	for {
		snapshot, err := service.Snapshot()
		if err != nil {
			t.Fatalf("Snapshot failed: %v", err)
		}
		if len(snapshot.Assets) != 1 {
			t.Fatalf("expected 1 asset, got %d", len(snapshot.Assets))
		}

		quantity := snapshot.Assets[0].Quantity
		if !quantity.Equal(decimal.NewFromInt(int64(len(snapshot.Transactions)))) {
			t.Fatalf("mixed snapshot: quantity %s with %d transactions",
				quantity, len(snapshot.Transactions))
		}

		select {
		case <-done:
			final, err := service.Snapshot()
			if err != nil {
				t.Fatalf("Snapshot failed: %v", err)
			}
			if !final.Assets[0].Quantity.Equal(decimal.NewFromInt(trades)) {
				t.Errorf("expected final quantity %d, got %s", trades, final.Assets[0].Quantity)
			}
			return
		default:
		}
	}
}

func TestMergeImportRejectsEmptyBatch(t *testing.T) {
	service, db := newTestPortfolioService(t)

	_, err := service.MergeImport(model.ImportBatch{})
	if !errors.Is(err, apperrors.ErrEmptyImport) {
		t.Fatalf("expected ErrEmptyImport, got %v", err)
	}
	testutil.AssertRowCount(t, db, "asset", 0)
}

func TestMergeImportUpsertsAndAppends(t *testing.T) {
	service, db := newTestPortfolioService(t)

	testutil.NewAsset().
		WithTicker("PETR4").
		WithQuantity("100").
		WithAveragePrice("32.50").
		WithCurrentPrice("38.90").
		Insert(t, db)

	ticker := "petr4"
	newTicker := "VALE3"
	quantity := decimal.RequireFromString("120")
	averagePrice := decimal.RequireFromString("60.00")
	amount := decimal.RequireFromString("55.00")

	summary, err := service.MergeImport(model.ImportBatch{
		Assets: []model.AssetCandidate{
			{Ticker: &ticker, Quantity: &quantity},
			{Ticker: &newTicker, AveragePrice: &averagePrice},
		},
		Dividends: []model.DividendCandidate{
			{Ticker: &ticker, Amount: &amount},
		},
		Transactions: []model.TransactionCandidate{
			{Ticker: &ticker, Quantity: &quantity, Price: &averagePrice},
		},
	})
	if err != nil {
		t.Fatalf("MergeImport failed: %v", err)
	}

	if summary.AssetsCreated != 1 || summary.AssetsUpdated != 1 {
		t.Errorf("expected 1 created and 1 updated, got %+v", summary)
	}
	if summary.TransactionsAdded != 1 || summary.DividendsAdded != 1 {
		t.Errorf("expected 1 transaction and 1 dividend, got %+v", summary)
	}

	assets, err := service.ListAssets()
	if err != nil {
		t.Fatalf("ListAssets failed: %v", err)
	}
	if len(assets) != 2 {
		t.Fatalf("expected 2 assets after merge, got %d", len(assets))
	}

	// Matched asset: present field overwritten, absent fields kept.
	if !assets[0].Quantity.Equal(decimal.RequireFromString("120")) {
		t.Errorf("expected PETR4 quantity 120, got %s", assets[0].Quantity)
	}
	if !assets[0].AveragePrice.Equal(decimal.RequireFromString("32.50")) {
		t.Errorf("absent averagePrice must keep its value, got %s", assets[0].AveragePrice)
	}

	// New asset starts valued at its average price.
	if !assets[1].CurrentPrice.Equal(decimal.RequireFromString("60.00")) {
		t.Errorf("expected VALE3 currentPrice 60.00, got %s", assets[1].CurrentPrice)
	}
}

func TestMergeImportDoesNotDeduplicate(t *testing.T) {
	service, db := newTestPortfolioService(t)

	ticker := "PETR4"
	amount := decimal.RequireFromString("10.00")
	batch := model.ImportBatch{
		Dividends: []model.DividendCandidate{{Ticker: &ticker, Amount: &amount}},
	}

	for i := 0; i < 2; i++ {
		if _, err := service.MergeImport(batch); err != nil {
			t.Fatalf("MergeImport failed: %v", err)
		}
	}

	testutil.AssertRowCount(t, db, "dividend", 2)

	dividends, err := service.ListDividends()
	if err != nil {
		t.Fatalf("ListDividends failed: %v", err)
	}
	if !totalAmount(dividends).Equal(decimal.RequireFromString("20.00")) {
		t.Errorf("re-import must double the total, got %s", totalAmount(dividends))
	}
}

// totalAmount sums dividend amounts; only tests need it.
func totalAmount(dividends []model.Dividend) decimal.Decimal {
	total := decimal.Zero
	for _, dividend := range dividends {
		total = total.Add(dividend.Amount)
	}
	return total
}

func TestApplyPriceUpdateMergesByTicker(t *testing.T) {
	service, db := newTestPortfolioService(t)

	testutil.NewAsset().WithTicker("PETR4").WithCurrentPrice("38.90").Insert(t, db)
	testutil.NewAsset().WithTicker("HGLG11").WithCurrentPrice("165.50").Insert(t, db)

	err := service.ApplyPriceUpdate([]model.Asset{
		{Ticker: "petr4", CurrentPrice: decimal.RequireFromString("41.20")},
		{Ticker: "GONE99", CurrentPrice: decimal.RequireFromString("10.00")},
		{Ticker: "HGLG11", CurrentPrice: decimal.Zero},
	})
	if err != nil {
		t.Fatalf("ApplyPriceUpdate failed: %v", err)
	}

	assets, err := service.ListAssets()
	if err != nil {
		t.Fatalf("ListAssets failed: %v", err)
	}

	if !assets[0].CurrentPrice.Equal(decimal.RequireFromString("41.20")) {
		t.Errorf("expected PETR4 repriced to 41.20, got %s", assets[0].CurrentPrice)
	}
	if !assets[1].CurrentPrice.Equal(decimal.RequireFromString("165.50")) {
		t.Errorf("non-positive price must be skipped, got %s", assets[1].CurrentPrice)
	}
}

func TestGetDashboardWithTypeFilter(t *testing.T) {
	service, db := newTestPortfolioService(t)

	testutil.NewAsset().WithTicker("PETR4").WithType(model.AssetTypeEquity).
		WithQuantity("100").WithCurrentPrice("40.00").Insert(t, db)
	testutil.NewAsset().WithTicker("HGLG11").WithType(model.AssetTypeREIT).
		WithQuantity("10").WithCurrentPrice("160.00").Insert(t, db)
	testutil.NewDividend().WithTicker("PETR4").WithAmount("112.00").Insert(t, db)

	equity := model.AssetTypeEquity
	dashboard, err := service.GetDashboard(&equity)
	if err != nil {
		t.Fatalf("GetDashboard failed: %v", err)
	}

	// Totals always cover the whole portfolio regardless of the filter.
	if !dashboard.TotalBalance.Equal(decimal.RequireFromString("5600")) {
		t.Errorf("expected total balance 5600, got %s", dashboard.TotalBalance)
	}
	if !dashboard.TotalDividends.Equal(decimal.RequireFromString("112.00")) {
		t.Errorf("expected total dividends 112.00, got %s", dashboard.TotalDividends)
	}

	// The filter narrows the per-asset breakdown and its percentage base.
	if len(dashboard.AllocationByAsset) != 1 || dashboard.AllocationByAsset[0].Name != "PETR4" {
		t.Fatalf("expected only PETR4 in the filtered breakdown, got %+v", dashboard.AllocationByAsset)
	}
	if !dashboard.FilteredTotal.Equal(decimal.RequireFromString("4000")) {
		t.Errorf("expected filtered total 4000, got %s", dashboard.FilteredTotal)
	}

	if len(dashboard.AllocationByType) != 2 {
		t.Errorf("expected both types in the type breakdown, got %+v", dashboard.AllocationByType)
	}
	if len(dashboard.DividendsByMonth) != 1 {
		t.Errorf("expected one dividend month group, got %d", len(dashboard.DividendsByMonth))
	}
}
