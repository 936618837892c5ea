package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/investiai/portfolio-backend/internal/model"
	"github.com/investiai/portfolio-backend/internal/repository"
)

// AssetBuilder builds test assets with sensible defaults.
//
// Example usage:
//
//	asset := testutil.NewAsset().
//	    WithTicker("PETR4").
//	    WithQuantity("100").
//	    Insert(t, db)
type AssetBuilder struct {
	asset model.Asset
}

// NewAsset creates an AssetBuilder with default values.
func NewAsset() *AssetBuilder {
	return &AssetBuilder{
		asset: model.Asset{
			ID:           uuid.New().String(),
			Ticker:       "TEST11",
			Name:         "Test Asset",
			Type:         model.AssetTypeEquity,
			Quantity:     decimal.RequireFromString("10"),
			AveragePrice: decimal.RequireFromString("100.00"),
			CurrentPrice: decimal.RequireFromString("110.00"),
		},
	}
}

// WithTicker sets the ticker.
func (b *AssetBuilder) WithTicker(ticker string) *AssetBuilder {
	b.asset.Ticker = ticker
	return b
}

// WithName sets the display name.
func (b *AssetBuilder) WithName(name string) *AssetBuilder {
	b.asset.Name = name
	return b
}

// WithType sets the asset type.
func (b *AssetBuilder) WithType(assetType model.AssetType) *AssetBuilder {
	b.asset.Type = assetType
	return b
}

// WithQuantity sets the quantity from a decimal string.
func (b *AssetBuilder) WithQuantity(quantity string) *AssetBuilder {
	b.asset.Quantity = decimal.RequireFromString(quantity)
	return b
}

// WithAveragePrice sets the average price from a decimal string.
func (b *AssetBuilder) WithAveragePrice(price string) *AssetBuilder {
	b.asset.AveragePrice = decimal.RequireFromString(price)
	return b
}

// WithCurrentPrice sets the current price from a decimal string.
func (b *AssetBuilder) WithCurrentPrice(price string) *AssetBuilder {
	b.asset.CurrentPrice = decimal.RequireFromString(price)
	return b
}

// Build returns the asset without persisting it.
func (b *AssetBuilder) Build() model.Asset {
	return b.asset
}

// Insert persists the asset and returns it.
func (b *AssetBuilder) Insert(t *testing.T, db *sql.DB) model.Asset {
	t.Helper()

	if err := repository.NewAssetRepository(db).InsertAsset(b.asset); err != nil {
		t.Fatalf("Failed to insert test asset: %v", err)
	}
	return b.asset
}

// DividendBuilder builds test dividends with sensible defaults.
type DividendBuilder struct {
	dividend model.Dividend
}

// NewDividend creates a DividendBuilder with default values.
func NewDividend() *DividendBuilder {
	return &DividendBuilder{
		dividend: model.Dividend{
			ID:          uuid.New().String(),
			Ticker:      "TEST11",
			Amount:      decimal.RequireFromString("25.00"),
			Date:        time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
			Description: "Test dividend",
		},
	}
}

// WithTicker sets the ticker.
func (b *DividendBuilder) WithTicker(ticker string) *DividendBuilder {
	b.dividend.Ticker = ticker
	return b
}

// WithAmount sets the amount from a decimal string.
func (b *DividendBuilder) WithAmount(amount string) *DividendBuilder {
	b.dividend.Amount = decimal.RequireFromString(amount)
	return b
}

// WithDate sets the payment date.
func (b *DividendBuilder) WithDate(date time.Time) *DividendBuilder {
	b.dividend.Date = date
	return b
}

// Build returns the dividend without persisting it.
func (b *DividendBuilder) Build() model.Dividend {
	return b.dividend
}

// Insert persists the dividend and returns it.
func (b *DividendBuilder) Insert(t *testing.T, db *sql.DB) model.Dividend {
	t.Helper()

	if err := repository.NewDividendRepository(db).InsertDividend(b.dividend); err != nil {
		t.Fatalf("Failed to insert test dividend: %v", err)
	}
	return b.dividend
}

// TransactionBuilder builds test transactions with sensible defaults.
type TransactionBuilder struct {
	transaction model.Transaction
}

// NewTransaction creates a TransactionBuilder with default values.
func NewTransaction() *TransactionBuilder {
	quantity := decimal.RequireFromString("10")
	price := decimal.RequireFromString("100.00")

	return &TransactionBuilder{
		transaction: model.Transaction{
			ID:       uuid.New().String(),
			Ticker:   "TEST11",
			Type:     model.TransactionTypeBuy,
			Quantity: quantity,
			Price:    price,
			Total:    quantity.Mul(price),
			Date:     time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		},
	}
}

// WithTicker sets the ticker.
func (b *TransactionBuilder) WithTicker(ticker string) *TransactionBuilder {
	b.transaction.Ticker = ticker
	return b
}

// WithAssetID links the transaction to an asset row.
func (b *TransactionBuilder) WithAssetID(assetID string) *TransactionBuilder {
	b.transaction.AssetID = assetID
	return b
}

// WithType sets the transaction type.
func (b *TransactionBuilder) WithType(transactionType model.TransactionType) *TransactionBuilder {
	b.transaction.Type = transactionType
	return b
}

// WithTrade sets quantity, price and the derived total from decimal strings.
func (b *TransactionBuilder) WithTrade(quantity, price string) *TransactionBuilder {
	b.transaction.Quantity = decimal.RequireFromString(quantity)
	b.transaction.Price = decimal.RequireFromString(price)
	b.transaction.Total = b.transaction.Quantity.Mul(b.transaction.Price)
	return b
}

// WithDate sets the trade date.
func (b *TransactionBuilder) WithDate(date time.Time) *TransactionBuilder {
	b.transaction.Date = date
	return b
}

// Build returns the transaction without persisting it.
func (b *TransactionBuilder) Build() model.Transaction {
	return b.transaction
}

// Insert persists the transaction and returns it.
func (b *TransactionBuilder) Insert(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	if err := repository.NewTransactionRepository(db).InsertTransaction(b.transaction); err != nil {
		t.Fatalf("Failed to insert test transaction: %v", err)
	}
	return b.transaction
}
