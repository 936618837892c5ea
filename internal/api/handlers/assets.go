package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/investiai/portfolio-backend/internal/api/request"
	"github.com/investiai/portfolio-backend/internal/model"
	"github.com/investiai/portfolio-backend/internal/service"
	"github.com/investiai/portfolio-backend/internal/validation"
)

// AssetHandler handles asset-related HTTP requests
type AssetHandler struct {
	portfolioService *service.PortfolioService
	priceService     *service.PriceService
}

// NewAssetHandler creates a new AssetHandler
func NewAssetHandler(portfolioService *service.PortfolioService, priceService *service.PriceService) *AssetHandler {
	return &AssetHandler{
		portfolioService: portfolioService,
		priceService:     priceService,
	}
}

// List handles GET requests to retrieve all holdings.
//
// Endpoint: GET /api/asset
// Response: 200 OK with an array of assets
// Error: 500 Internal Server Error if retrieval fails
func (h *AssetHandler) List(w http.ResponseWriter, r *http.Request) {
	assets, err := h.portfolioService.ListAssets()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, assets)
}

// Get handles GET requests to retrieve a single holding by ID.
//
// Endpoint: GET /api/asset/{uuid}
// Response: 200 OK with the asset
// Error: 404 Not Found if no asset exists with the given ID
func (h *AssetHandler) Get(w http.ResponseWriter, r *http.Request) {
	asset, err := h.portfolioService.GetAsset(chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, asset)
}

// Create handles POST requests to add a holding manually.
//
// Endpoint: POST /api/asset
// Request: CreateAssetRequest
// Response: 201 Created with the new asset
// Error: 400 Bad Request on validation failure
// Error: 409 Conflict if the normalized ticker is already held
func (h *AssetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateAssetRequest
	if !parseJSON(w, r, &req) {
		return
	}

	if err := validation.ValidateCreateAsset(req); err != nil {
		respondServiceError(w, err)
		return
	}

	asset, err := h.portfolioService.CreateAsset(req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, asset)
}

// Update handles PUT requests to edit a holding. Absent fields keep their
// current value; the ticker cannot be changed.
//
// Endpoint: PUT /api/asset/{uuid}
// Request: UpdateAssetRequest
// Response: 200 OK with the updated asset
// Error: 400 Bad Request on validation failure
// Error: 404 Not Found if no asset exists with the given ID
func (h *AssetHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateAssetRequest
	if !parseJSON(w, r, &req) {
		return
	}

	if err := validation.ValidateUpdateAsset(req); err != nil {
		respondServiceError(w, err)
		return
	}

	asset, err := h.portfolioService.UpdateAsset(chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, asset)
}

// Delete handles DELETE requests to remove a holding. Transaction and
// dividend history for the ticker is not removed.
//
// Endpoint: DELETE /api/asset/{uuid}
// Response: 204 No Content
func (h *AssetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.portfolioService.DeleteAsset(chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// TradeResponse is the result of recording a trade: the updated position
// and the appended history record.
type TradeResponse struct {
	Asset       model.Asset       `json:"asset"`
	Transaction model.Transaction `json:"transaction"`
}

// Trade handles POST requests to record a buy or sell against a holding.
//
// Endpoint: POST /api/asset/{uuid}/trade
// Request: TradeRequest
// Response: 200 OK with TradeResponse
// Error: 400 Bad Request on validation failure
// Error: 404 Not Found if no asset exists with the given ID
func (h *AssetHandler) Trade(w http.ResponseWriter, r *http.Request) {
	var req request.TradeRequest
	if !parseJSON(w, r, &req) {
		return
	}

	if err := validation.ValidateTrade(req); err != nil {
		respondServiceError(w, err)
		return
	}

	asset, transaction, err := h.portfolioService.RecordTrade(chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, TradeResponse{Asset: asset, Transaction: transaction})
}

// RefreshPrices handles POST requests to refresh market prices from the
// configured feed. A failed refresh leaves all prices unchanged.
//
// Endpoint: POST /api/asset/refresh-prices
// Response: 200 OK with the repriced asset list
// Error: 502 Bad Gateway if the price feed fails entirely
func (h *AssetHandler) RefreshPrices(w http.ResponseWriter, r *http.Request) {
	if err := h.priceService.Refresh(r.Context()); err != nil {
		respondServiceError(w, err)
		return
	}

	assets, err := h.portfolioService.ListAssets()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, assets)
}
