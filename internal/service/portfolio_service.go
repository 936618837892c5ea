package service

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/investiai/portfolio-backend/internal/apperrors"
	"github.com/investiai/portfolio-backend/internal/api/request"
	"github.com/investiai/portfolio-backend/internal/ledger"
	"github.com/investiai/portfolio-backend/internal/model"
	"github.com/investiai/portfolio-backend/internal/repository"
)

// PortfolioService is the single writer over the ledger. All mutating
// operations take the service mutex and run inside one database
// transaction, so concurrent requests observe the ledger only between
// complete operations, never mid-merge.
type PortfolioService struct {
	mu           sync.Mutex
	db           *sql.DB
	assets       *repository.AssetRepository
	transactions *repository.TransactionRepository
	dividends    *repository.DividendRepository
}

// NewPortfolioService creates a new PortfolioService.
func NewPortfolioService(
	db *sql.DB,
	assets *repository.AssetRepository,
	transactions *repository.TransactionRepository,
	dividends *repository.DividendRepository,
) *PortfolioService {
	return &PortfolioService{
		db:           db,
		assets:       assets,
		transactions: transactions,
		dividends:    dividends,
	}
}

// Snapshot returns the full ledger state in one read. It holds the writer
// mutex across all three queries so a command committing mid-read can never
// produce a snapshot with the transaction visible but not the position
// change it caused.
func (s *PortfolioService) Snapshot() (model.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	assets, err := s.assets.ListAssets()
	if err != nil {
		return model.Snapshot{}, err
	}
	dividends, err := s.dividends.ListDividends()
	if err != nil {
		return model.Snapshot{}, err
	}
	transactions, err := s.transactions.ListTransactions("")
	if err != nil {
		return model.Snapshot{}, err
	}

	return model.Snapshot{
		Assets:       assets,
		Dividends:    dividends,
		Transactions: transactions,
	}, nil
}

// ListAssets returns all holdings.
func (s *PortfolioService) ListAssets() ([]model.Asset, error) {
	return s.assets.ListAssets()
}

// GetAsset returns one holding by ID.
func (s *PortfolioService) GetAsset(id string) (model.Asset, error) {
	return s.assets.GetAsset(id)
}

// CreateAsset adds a holding manually. The ticker is normalized and must
// not collide with an existing holding. When no current price is given the
// asset starts valued at its average price.
func (s *PortfolioService) CreateAsset(req request.CreateAssetRequest) (model.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticker := ledger.NormalizeTicker(req.Ticker)

	if _, err := s.assets.GetAssetByTicker(ticker); err == nil {
		return model.Asset{}, apperrors.ErrDuplicateTicker
	} else if err != apperrors.ErrAssetNotFound {
		return model.Asset{}, err
	}

	currentPrice := req.AveragePrice
	if req.CurrentPrice != nil {
		currentPrice = *req.CurrentPrice
	}

	name := req.Name
	if name == "" {
		name = ticker
	}

	asset := model.Asset{
		ID:           uuid.New().String(),
		Ticker:       ticker,
		Name:         name,
		Type:         model.AssetType(req.Type),
		Quantity:     req.Quantity,
		AveragePrice: req.AveragePrice,
		CurrentPrice: currentPrice,
	}

	if err := s.assets.InsertAsset(asset); err != nil {
		return model.Asset{}, err
	}

	log.Printf("Created asset %s (%s)", asset.Ticker, asset.ID)
	return asset, nil
}

// UpdateAsset edits a holding. Absent fields keep their current value; the
// ticker itself is immutable once created.
func (s *PortfolioService) UpdateAsset(id string, req request.UpdateAssetRequest) (model.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	asset, err := s.assets.GetAsset(id)
	if err != nil {
		return model.Asset{}, err
	}

	if req.Name != nil && *req.Name != "" {
		asset.Name = *req.Name
	}
	if req.Type != nil {
		asset.Type = model.AssetType(*req.Type)
	}
	if req.Quantity != nil {
		asset.Quantity = *req.Quantity
	}
	if req.AveragePrice != nil {
		asset.AveragePrice = *req.AveragePrice
	}
	if req.CurrentPrice != nil {
		asset.CurrentPrice = *req.CurrentPrice
	}

	if err := s.assets.UpdateAsset(asset); err != nil {
		return model.Asset{}, err
	}
	return asset, nil
}

// DeleteAsset removes a holding. Transaction and dividend history for its
// ticker is deliberately left in place; history outlives the position.
func (s *PortfolioService) DeleteAsset(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.assets.DeleteAsset(id)
}

// RecordTrade applies a validated buy or sell to the identified asset and
// appends the transaction record. Both writes commit atomically.
func (s *PortfolioService) RecordTrade(assetID string, req request.TradeRequest) (model.Asset, model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		date = time.Now().UTC().Truncate(24 * time.Hour)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return model.Asset{}, model.Transaction{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	asset, err := s.assets.WithTx(tx).GetAsset(assetID)
	if err != nil {
		return model.Asset{}, model.Transaction{}, err
	}

	updated, transaction, err := ledger.RecordTrade(asset, model.TransactionType(req.Type), req.Quantity, req.Price, date)
	if err != nil {
		return model.Asset{}, model.Transaction{}, err
	}

	if err := s.assets.WithTx(tx).UpdateAsset(updated); err != nil {
		return model.Asset{}, model.Transaction{}, err
	}
	if err := s.transactions.WithTx(tx).InsertTransaction(transaction); err != nil {
		return model.Asset{}, model.Transaction{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Asset{}, model.Transaction{}, fmt.Errorf("failed to commit trade: %w", err)
	}

	log.Printf("Recorded %s of %s %s @ %s", transaction.Type, transaction.Quantity, transaction.Ticker, transaction.Price)
	return updated, transaction, nil
}

// ListTransactions returns the trade history, optionally narrowed to one ticker.
func (s *PortfolioService) ListTransactions(ticker string) ([]model.Transaction, error) {
	return s.transactions.ListTransactions(ledger.NormalizeTicker(ticker))
}

// DeleteTransaction removes a history record without rolling back the
// position change it caused.
func (s *PortfolioService) DeleteTransaction(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.transactions.DeleteTransaction(id)
}

// ListDividends returns all dividend records.
func (s *PortfolioService) ListDividends() ([]model.Dividend, error) {
	return s.dividends.ListDividends()
}

// CreateDividend records a dividend payment manually.
func (s *PortfolioService) CreateDividend(req request.CreateDividendRequest) (model.Dividend, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		date = time.Now().UTC().Truncate(24 * time.Hour)
	}

	dividend := model.Dividend{
		ID:          uuid.New().String(),
		Ticker:      ledger.NormalizeTicker(req.Ticker),
		Amount:      req.Amount,
		Date:        date,
		Description: req.Description,
	}

	if err := s.dividends.InsertDividend(dividend); err != nil {
		return model.Dividend{}, err
	}
	return dividend, nil
}

// DeleteDividend removes a dividend record.
func (s *PortfolioService) DeleteDividend(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.dividends.DeleteDividend(id)
}

// ImportSummary reports what one import merge did to the ledger.
type ImportSummary struct {
	AssetsCreated     int `json:"assetsCreated"`
	AssetsUpdated     int `json:"assetsUpdated"`
	TransactionsAdded int `json:"transactionsAdded"`
	DividendsAdded    int `json:"dividendsAdded"`
}

// MergeImport reconciles a parsed import batch into the ledger atomically.
// An empty batch is rejected before any transaction starts.
func (s *PortfolioService) MergeImport(batch model.ImportBatch) (ImportSummary, error) {
	if batch.Empty() {
		return ImportSummary{}, apperrors.ErrEmptyImport
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return ImportSummary{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	assetRepo := s.assets.WithTx(tx)

	assets, err := assetRepo.ListAssets()
	if err != nil {
		return ImportSummary{}, err
	}

	result := ledger.Reconcile(assets, batch, time.Now())

	existing := make(map[string]bool, len(assets))
	for _, asset := range assets {
		existing[asset.ID] = true
	}
	for _, asset := range result.Assets {
		if existing[asset.ID] {
			if err := assetRepo.UpdateAsset(asset); err != nil {
				return ImportSummary{}, err
			}
		} else {
			if err := assetRepo.InsertAsset(asset); err != nil {
				return ImportSummary{}, err
			}
		}
	}

	transactionRepo := s.transactions.WithTx(tx)
	for _, transaction := range result.Transactions {
		if err := transactionRepo.InsertTransaction(transaction); err != nil {
			return ImportSummary{}, err
		}
	}

	dividendRepo := s.dividends.WithTx(tx)
	for _, dividend := range result.Dividends {
		if err := dividendRepo.InsertDividend(dividend); err != nil {
			return ImportSummary{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return ImportSummary{}, fmt.Errorf("failed to commit import: %w", err)
	}

	summary := ImportSummary{
		AssetsCreated:     result.Created,
		AssetsUpdated:     result.Updated,
		TransactionsAdded: len(result.Transactions),
		DividendsAdded:    len(result.Dividends),
	}
	log.Printf("Merged import: %d assets created, %d updated, %d transactions, %d dividends",
		summary.AssetsCreated, summary.AssetsUpdated, summary.TransactionsAdded, summary.DividendsAdded)
	return summary, nil
}

// ApplyPriceUpdate merges resolved prices into the ledger by ticker.
// Tickers not present in the ledger are ignored and non-positive prices are
// skipped, so a stale or partial feed result can never corrupt a position.
func (s *PortfolioService) ApplyPriceUpdate(priced []model.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	assetRepo := s.assets.WithTx(tx)
	for _, asset := range priced {
		if !asset.CurrentPrice.IsPositive() {
			continue
		}
		if err := assetRepo.UpdateCurrentPrice(ledger.NormalizeTicker(asset.Ticker), asset.CurrentPrice); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit price update: %w", err)
	}
	return nil
}

// Dashboard is the aggregated read model backing the overview screen.
type Dashboard struct {
	TotalBalance      decimal.Decimal             `json:"totalBalance"`
	TotalDividends    decimal.Decimal             `json:"totalDividends"`
	AllocationByType  []ledger.AllocationEntry    `json:"allocationByType"`
	AllocationByAsset []ledger.AllocationEntry    `json:"allocationByAsset"`
	FilteredTotal     decimal.Decimal             `json:"filteredTotal"`
	DividendsByMonth  []ledger.DividendMonthGroup `json:"dividendsByMonth"`
}

// GetDashboard computes all aggregation views over one consistent snapshot.
// TotalBalance and AllocationByType always cover the whole portfolio; the
// optional type filter narrows AllocationByAsset only, and FilteredTotal is
// the base for percentages over that breakdown.
func (s *PortfolioService) GetDashboard(typeFilter *model.AssetType) (Dashboard, error) {
	snapshot, err := s.Snapshot()
	if err != nil {
		return Dashboard{}, err
	}

	byAsset, filteredTotal := ledger.AllocationByAsset(snapshot.Assets, typeFilter)

	return Dashboard{
		TotalBalance:      ledger.TotalBalance(snapshot.Assets),
		TotalDividends:    ledger.TotalDividends(snapshot.Dividends),
		AllocationByType:  ledger.AllocationByType(snapshot.Assets),
		AllocationByAsset: byAsset,
		FilteredTotal:     filteredTotal,
		DividendsByMonth:  ledger.GroupDividendsByMonth(snapshot.Dividends),
	}, nil
}
