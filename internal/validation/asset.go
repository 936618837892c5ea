package validation

import (
	"fmt"
	"strings"

	"github.com/investiai/portfolio-backend/internal/api/request"
	"github.com/investiai/portfolio-backend/internal/model"
)

// ValidateCreateAsset validates an asset creation request.
//
// Required fields:
//   - ticker: non-empty after trimming
//   - type: one of the known asset types
//   - quantity, averagePrice, currentPrice: must not be negative
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateAsset(req request.CreateAssetRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Ticker) == "" {
		errors["ticker"] = "ticker is required"
	}

	if !model.ValidAssetTypes[model.AssetType(req.Type)] {
		errors["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	if req.Quantity.IsNegative() {
		errors["quantity"] = "quantity cannot be negative"
	}
	if req.AveragePrice.IsNegative() {
		errors["averagePrice"] = "averagePrice cannot be negative"
	}
	if req.CurrentPrice != nil && req.CurrentPrice.IsNegative() {
		errors["currentPrice"] = "currentPrice cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateUpdateAsset validates an asset update request. All fields are
// optional but present fields must hold valid values.
func ValidateUpdateAsset(req request.UpdateAssetRequest) error {
	errors := make(map[string]string)

	if req.Type != nil && !model.ValidAssetTypes[model.AssetType(*req.Type)] {
		errors["type"] = fmt.Sprintf("invalid type: %s", *req.Type)
	}
	if req.Quantity != nil && req.Quantity.IsNegative() {
		errors["quantity"] = "quantity cannot be negative"
	}
	if req.AveragePrice != nil && req.AveragePrice.IsNegative() {
		errors["averagePrice"] = "averagePrice cannot be negative"
	}
	if req.CurrentPrice != nil && req.CurrentPrice.IsNegative() {
		errors["currentPrice"] = "currentPrice cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
