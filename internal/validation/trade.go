package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/investiai/portfolio-backend/internal/api/request"
	"github.com/investiai/portfolio-backend/internal/model"
)

// ValidateTrade validates a trade request before it reaches the ledger.
// Non-positive quantity or price is rejected here, before any mutation.
//
// Required fields:
//   - type: buy or sell
//   - date: YYYY-MM-DD
//   - quantity, price: strictly positive
func ValidateTrade(req request.TradeRequest) error {
	errors := make(map[string]string)

	if !model.ValidTransactionTypes[model.TransactionType(req.Type)] {
		errors["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		errors["date"] = err.Error()
	}

	if !req.Quantity.IsPositive() {
		errors["quantity"] = "quantity must be positive"
	}
	if !req.Price.IsPositive() {
		errors["price"] = "price must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
