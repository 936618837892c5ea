package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/investiai/portfolio-backend/internal/api/request"
	"github.com/investiai/portfolio-backend/internal/ledger"
	"github.com/investiai/portfolio-backend/internal/service"
	"github.com/investiai/portfolio-backend/internal/validation"
)

// DividendHandler handles dividend-related HTTP requests
type DividendHandler struct {
	portfolioService *service.PortfolioService
}

// NewDividendHandler creates a new DividendHandler
func NewDividendHandler(portfolioService *service.PortfolioService) *DividendHandler {
	return &DividendHandler{portfolioService: portfolioService}
}

// List handles GET requests to retrieve all dividend records.
//
// Endpoint: GET /api/dividend
// Response: 200 OK with an array of dividends
func (h *DividendHandler) List(w http.ResponseWriter, r *http.Request) {
	dividends, err := h.portfolioService.ListDividends()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dividends)
}

// ByMonth handles GET requests for the dividend history grouped by month,
// most recent month first, with per-group totals.
//
// Endpoint: GET /api/dividend/by-month
// Response: 200 OK with an array of month groups
func (h *DividendHandler) ByMonth(w http.ResponseWriter, r *http.Request) {
	dividends, err := h.portfolioService.ListDividends()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ledger.GroupDividendsByMonth(dividends))
}

// Create handles POST requests to record a dividend payment manually.
//
// Endpoint: POST /api/dividend
// Request: CreateDividendRequest
// Response: 201 Created with the new dividend
// Error: 400 Bad Request on validation failure
func (h *DividendHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateDividendRequest
	if !parseJSON(w, r, &req) {
		return
	}

	if err := validation.ValidateCreateDividend(req); err != nil {
		respondServiceError(w, err)
		return
	}

	dividend, err := h.portfolioService.CreateDividend(req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, dividend)
}

// Delete handles DELETE requests to remove a dividend record.
//
// Endpoint: DELETE /api/dividend/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if no dividend exists with the given ID
func (h *DividendHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.portfolioService.DeleteDividend(chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
