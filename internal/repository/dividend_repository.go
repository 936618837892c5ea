package repository

import (
	"database/sql"
	"fmt"

	"github.com/investiai/portfolio-backend/internal/apperrors"
	"github.com/investiai/portfolio-backend/internal/model"
)

// DividendRepository provides data access methods for the dividend table.
type DividendRepository struct {
	db DBTX
}

// NewDividendRepository creates a new DividendRepository with the provided database connection.
func NewDividendRepository(db DBTX) *DividendRepository {
	return &DividendRepository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *DividendRepository) WithTx(tx *sql.Tx) *DividendRepository {
	return &DividendRepository{db: tx}
}

// ListDividends retrieves all dividend records in insertion order.
func (r *DividendRepository) ListDividends() ([]model.Dividend, error) {
	rows, err := r.db.Query(`
		SELECT id, ticker, amount, date, description, created_at
		FROM dividend
		ORDER BY rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query dividend table: %w", err)
	}
	defer rows.Close()

	dividends := []model.Dividend{}
	for rows.Next() {
		var d model.Dividend
		var description sql.NullString
		var amountStr, dateStr, createdAtStr string

		err := rows.Scan(&d.ID, &d.Ticker, &amountStr, &dateStr, &description, &createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dividend table results: %w", err)
		}

		if description.Valid {
			d.Description = description.String
		}
		if d.Amount, err = ParseDecimal(amountStr); err != nil {
			return nil, err
		}
		if d.Date, err = ParseTime(dateStr); err != nil {
			return nil, err
		}
		if d.CreatedAt, err = ParseTime(createdAtStr); err != nil {
			d.CreatedAt = d.Date
		}

		dividends = append(dividends, d)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dividend table: %w", err)
	}

	return dividends, nil
}

// InsertDividend appends one immutable dividend record.
func (r *DividendRepository) InsertDividend(d model.Dividend) error {
	_, err := r.db.Exec(`
		INSERT INTO dividend (id, ticker, amount, date, description)
		VALUES (?, ?, ?, ?, ?)`,
		d.ID, d.Ticker, d.Amount.String(), d.Date.Format("2006-01-02"), d.Description,
	)
	if err != nil {
		return fmt.Errorf("failed to insert dividend: %w", err)
	}
	return nil
}

// DeleteDividend removes a dividend record.
func (r *DividendRepository) DeleteDividend(id string) error {
	result, err := r.db.Exec(`DELETE FROM dividend WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete dividend: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrDividendNotFound
	}
	return nil
}
