package repository

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/investiai/portfolio-backend/internal/apperrors"
	"github.com/investiai/portfolio-backend/internal/model"
)

// AssetRepository provides data access methods for the asset table.
type AssetRepository struct {
	db DBTX
}

// NewAssetRepository creates a new AssetRepository with the provided database connection.
func NewAssetRepository(db DBTX) *AssetRepository {
	return &AssetRepository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *AssetRepository) WithTx(tx *sql.Tx) *AssetRepository {
	return &AssetRepository{db: tx}
}

const assetColumns = `id, ticker, name, type, quantity, average_price, current_price`

// ListAssets retrieves all assets in insertion order.
func (r *AssetRepository) ListAssets() ([]model.Asset, error) {
	rows, err := r.db.Query(`SELECT ` + assetColumns + ` FROM asset ORDER BY rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset table: %w", err)
	}
	defer rows.Close()

	assets := []model.Asset{}
	for rows.Next() {
		asset, err := scanAsset(rows.Scan)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset table: %w", err)
	}

	return assets, nil
}

// GetAsset retrieves a single asset by ID. Returns apperrors.ErrAssetNotFound
// if no row exists.
func (r *AssetRepository) GetAsset(id string) (model.Asset, error) {
	row := r.db.QueryRow(`SELECT `+assetColumns+` FROM asset WHERE id = ?`, id)

	asset, err := scanAsset(row.Scan)
	if err == sql.ErrNoRows {
		return model.Asset{}, apperrors.ErrAssetNotFound
	}
	if err != nil {
		return model.Asset{}, err
	}
	return asset, nil
}

// GetAssetByTicker retrieves a single asset by its normalized ticker.
func (r *AssetRepository) GetAssetByTicker(ticker string) (model.Asset, error) {
	row := r.db.QueryRow(`SELECT `+assetColumns+` FROM asset WHERE ticker = ?`, ticker)

	asset, err := scanAsset(row.Scan)
	if err == sql.ErrNoRows {
		return model.Asset{}, apperrors.ErrAssetNotFound
	}
	if err != nil {
		return model.Asset{}, err
	}
	return asset, nil
}

// InsertAsset inserts a new asset row.
func (r *AssetRepository) InsertAsset(asset model.Asset) error {
	_, err := r.db.Exec(`
		INSERT INTO asset (id, ticker, name, type, quantity, average_price, current_price)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		asset.ID, asset.Ticker, asset.Name, string(asset.Type),
		asset.Quantity.String(), asset.AveragePrice.String(), asset.CurrentPrice.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert asset: %w", err)
	}
	return nil
}

// UpdateAsset overwrites all mutable fields of an asset row.
func (r *AssetRepository) UpdateAsset(asset model.Asset) error {
	result, err := r.db.Exec(`
		UPDATE asset
		SET ticker = ?, name = ?, type = ?, quantity = ?, average_price = ?, current_price = ?
		WHERE id = ?`,
		asset.Ticker, asset.Name, string(asset.Type),
		asset.Quantity.String(), asset.AveragePrice.String(), asset.CurrentPrice.String(),
		asset.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update asset: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrAssetNotFound
	}
	return nil
}

// UpdateCurrentPrice replaces only the current_price of the asset matching
// the ticker. Position fields are never touched by price updates.
func (r *AssetRepository) UpdateCurrentPrice(ticker string, price decimal.Decimal) error {
	_, err := r.db.Exec(`UPDATE asset SET current_price = ? WHERE ticker = ?`, price.String(), ticker)
	if err != nil {
		return fmt.Errorf("failed to update current price: %w", err)
	}
	return nil
}

// DeleteAsset removes an asset row. Removal is unconditional: deleting an
// absent ID is a no-op, and history referencing the ticker stays in place.
func (r *AssetRepository) DeleteAsset(id string) error {
	if _, err := r.db.Exec(`DELETE FROM asset WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	return nil
}

func scanAsset(scan func(dest ...any) error) (model.Asset, error) {
	var asset model.Asset
	var assetType, quantityStr, averageStr, currentStr string

	err := scan(&asset.ID, &asset.Ticker, &asset.Name, &assetType, &quantityStr, &averageStr, &currentStr)
	if err == sql.ErrNoRows {
		return model.Asset{}, err
	}
	if err != nil {
		return model.Asset{}, fmt.Errorf("failed to scan asset table results: %w", err)
	}

	asset.Type = model.AssetType(assetType)
	if asset.Quantity, err = ParseDecimal(quantityStr); err != nil {
		return model.Asset{}, err
	}
	if asset.AveragePrice, err = ParseDecimal(averageStr); err != nil {
		return model.Asset{}, err
	}
	if asset.CurrentPrice, err = ParseDecimal(currentStr); err != nil {
		return model.Asset{}, err
	}

	return asset, nil
}
