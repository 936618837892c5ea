package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrAssetNotFound indicates that an asset with the given ID does not exist.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrDividendNotFound indicates that a dividend record with the given ID does not exist.
	ErrDividendNotFound = errors.New("dividend not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidQuantity indicates a trade was submitted with a quantity <= 0.
	// Trades are rejected before any mutation takes place.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrInvalidPrice indicates a trade was submitted with a price <= 0.
	ErrInvalidPrice = errors.New("price must be positive")

	// ErrInvalidTransactionType indicates a trade type other than buy or sell.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrDuplicateTicker indicates an asset with the same ticker already exists.
	ErrDuplicateTicker = errors.New("asset with this ticker already exists")
)

// Import and price feed errors. Both are recoverable at the command
// boundary: a failed import or price refresh leaves the ledger unchanged.
var (
	// ErrEmptyImport indicates the import source returned zero usable rows
	// across assets, dividends and transactions. The reconciler is never
	// invoked in this case.
	ErrEmptyImport = errors.New("no usable rows found in import data")

	// ErrPriceSource indicates the price adapter failed or returned
	// unparsable data; previous prices are kept.
	ErrPriceSource = errors.New("price source unavailable")

	// ErrAdvisorUnavailable indicates the advisory backend is not configured
	// or failed to answer.
	ErrAdvisorUnavailable = errors.New("advisor unavailable")

	// ErrAPIKeyNotConfigured indicates no Gemini API key has been provided
	// via environment or the settings endpoint.
	ErrAPIKeyNotConfigured = errors.New("gemini api key not configured")
)
