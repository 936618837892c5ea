package handlers

import (
	"fmt"
	"net/http"

	"github.com/investiai/portfolio-backend/internal/api/response"
	"github.com/investiai/portfolio-backend/internal/model"
	"github.com/investiai/portfolio-backend/internal/service"
)

// DashboardHandler handles aggregated portfolio view requests
type DashboardHandler struct {
	portfolioService *service.PortfolioService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(portfolioService *service.PortfolioService) *DashboardHandler {
	return &DashboardHandler{portfolioService: portfolioService}
}

// Get handles GET requests for the aggregated overview: total balance,
// total dividends, allocation breakdowns and the monthly dividend history.
// The optional type query parameter narrows the per-asset allocation to one
// asset type; filteredTotal is then the base for relative percentages.
//
// Endpoint: GET /api/dashboard?type=Equity
// Response: 200 OK with the dashboard view
// Error: 400 Bad Request if the type filter is not a known asset type
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	var typeFilter *model.AssetType
	if raw := r.URL.Query().Get("type"); raw != "" {
		assetType := model.AssetType(raw)
		if !model.ValidAssetTypes[assetType] {
			response.RespondError(w, http.StatusBadRequest, fmt.Sprintf("invalid type filter: %s", raw), "")
			return
		}
		typeFilter = &assetType
	}

	dashboard, err := h.portfolioService.GetDashboard(typeFilter)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dashboard)
}
