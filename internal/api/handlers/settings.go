package handlers

import (
	"net/http"
	"strings"

	"github.com/investiai/portfolio-backend/internal/api/request"
	"github.com/investiai/portfolio-backend/internal/api/response"
	"github.com/investiai/portfolio-backend/internal/service"
)

// SettingsHandler handles runtime settings HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// SetGeminiKey handles POST requests to store the Gemini API key. The key
// is encrypted at rest and takes precedence over the environment key. It is
// never returned by any endpoint.
//
// Endpoint: POST /api/settings/gemini-key
// Request: GeminiKeyRequest
// Response: 204 No Content
// Error: 400 Bad Request if the key is empty
// Error: 503 Service Unavailable if no encryption key is configured
func (h *SettingsHandler) SetGeminiKey(w http.ResponseWriter, r *http.Request) {
	var req request.GeminiKeyRequest
	if !parseJSON(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.APIKey) == "" {
		response.RespondError(w, http.StatusBadRequest, "apiKey is required", "")
		return
	}

	if err := h.settingsService.SetGeminiAPIKey(req.APIKey); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
