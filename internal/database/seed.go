package database

import (
	"database/sql"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/investiai/portfolio-backend/internal/model"
	"github.com/investiai/portfolio-backend/internal/repository"
)

// SeedDemoData populates an empty ledger with a small demo portfolio.
// A non-empty asset table is left untouched so restarts with a persistent
// database do not duplicate the seed.
func SeedDemoData(db *sql.DB) error {
	assetRepo := repository.NewAssetRepository(db)

	existing, err := assetRepo.ListAssets()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	d := decimal.RequireFromString

	assets := []model.Asset{
		{ID: uuid.New().String(), Ticker: "PETR4", Name: "Petrobras PN", Type: model.AssetTypeEquity,
			Quantity: d("100"), AveragePrice: d("32.50"), CurrentPrice: d("38.90")},
		{ID: uuid.New().String(), Ticker: "HGLG11", Name: "CSHG Logistica", Type: model.AssetTypeREIT,
			Quantity: d("15"), AveragePrice: d("160.00"), CurrentPrice: d("165.50")},
		{ID: uuid.New().String(), Ticker: "BTC", Name: "Bitcoin", Type: model.AssetTypeCrypto,
			Quantity: d("0.05"), AveragePrice: d("250000"), CurrentPrice: d("340000")},
		{ID: uuid.New().String(), Ticker: "CDB INTER", Name: "CDB Banco Inter", Type: model.AssetTypeCash,
			Quantity: d("1"), AveragePrice: d("5000"), CurrentPrice: d("5325.80")},
	}
	for _, asset := range assets {
		if err := assetRepo.InsertAsset(asset); err != nil {
			return err
		}
	}

	dividendRepo := repository.NewDividendRepository(db)
	dividends := []model.Dividend{
		{ID: uuid.New().String(), Ticker: "PETR4", Amount: d("112.00"),
			Date: time.Date(2024, 11, 21, 0, 0, 0, 0, time.UTC), Description: "Dividendos"},
		{ID: uuid.New().String(), Ticker: "HGLG11", Amount: d("16.50"),
			Date: time.Date(2024, 11, 14, 0, 0, 0, 0, time.UTC), Description: "Rendimento mensal"},
		{ID: uuid.New().String(), Ticker: "HGLG11", Amount: d("16.50"),
			Date: time.Date(2024, 10, 14, 0, 0, 0, 0, time.UTC), Description: "Rendimento mensal"},
	}
	for _, dividend := range dividends {
		if err := dividendRepo.InsertDividend(dividend); err != nil {
			return err
		}
	}

	log.Printf("Seeded demo portfolio: %d assets, %d dividends", len(assets), len(dividends))
	return nil
}
