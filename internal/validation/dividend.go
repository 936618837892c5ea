package validation

import (
	"strings"
	"time"

	"github.com/investiai/portfolio-backend/internal/api/request"
)

// ValidateCreateDividend validates a manual dividend entry.
//
// Required fields:
//   - ticker: non-empty after trimming
//   - date: YYYY-MM-DD
//   - amount: must not be negative
func ValidateCreateDividend(req request.CreateDividendRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Ticker) == "" {
		errors["ticker"] = "ticker is required"
	}

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		errors["date"] = err.Error()
	}

	if req.Amount.IsNegative() {
		errors["amount"] = "amount cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
