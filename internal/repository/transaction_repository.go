package repository

import (
	"database/sql"
	"fmt"

	"github.com/investiai/portfolio-backend/internal/apperrors"
	"github.com/investiai/portfolio-backend/internal/model"
)

// TransactionRepository provides data access methods for the transaction table.
// Transactions are append-only: there is no update method by design.
type TransactionRepository struct {
	db DBTX
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db DBTX) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *TransactionRepository) WithTx(tx *sql.Tx) *TransactionRepository {
	return &TransactionRepository{db: tx}
}

// ListTransactions retrieves the full trade history in insertion order.
// The optional ticker narrows the result to one instrument.
func (r *TransactionRepository) ListTransactions(ticker string) ([]model.Transaction, error) {
	query := `
		SELECT id, asset_id, ticker, type, quantity, price, total, date, created_at
		FROM "transaction"
	`
	var args []any
	if ticker != "" {
		query += ` WHERE ticker = ?`
		args = append(args, ticker)
	}
	query += ` ORDER BY rowid ASC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		var t model.Transaction
		var assetID sql.NullString
		var transactionType, quantityStr, priceStr, totalStr, dateStr, createdAtStr string

		err := rows.Scan(&t.ID, &assetID, &t.Ticker, &transactionType,
			&quantityStr, &priceStr, &totalStr, &dateStr, &createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction table results: %w", err)
		}

		if assetID.Valid {
			t.AssetID = assetID.String
		}
		t.Type = model.TransactionType(transactionType)
		if t.Quantity, err = ParseDecimal(quantityStr); err != nil {
			return nil, err
		}
		if t.Price, err = ParseDecimal(priceStr); err != nil {
			return nil, err
		}
		if t.Total, err = ParseDecimal(totalStr); err != nil {
			return nil, err
		}
		if t.Date, err = ParseTime(dateStr); err != nil {
			return nil, err
		}
		if t.CreatedAt, err = ParseTime(createdAtStr); err != nil {
			t.CreatedAt = t.Date
		}

		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}

// InsertTransaction appends one immutable trade record. Total is stored as
// computed at creation and never recomputed.
func (r *TransactionRepository) InsertTransaction(t model.Transaction) error {
	var assetID any
	if t.AssetID != "" {
		assetID = t.AssetID
	}

	_, err := r.db.Exec(`
		INSERT INTO "transaction" (id, asset_id, ticker, type, quantity, price, total, date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, assetID, t.Ticker, string(t.Type),
		t.Quantity.String(), t.Price.String(), t.Total.String(),
		t.Date.Format("2006-01-02"),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// DeleteTransaction removes a transaction record. Deleting a transaction
// does not roll back the position change it caused.
func (r *TransactionRepository) DeleteTransaction(id string) error {
	result, err := r.db.Exec(`DELETE FROM "transaction" WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}
