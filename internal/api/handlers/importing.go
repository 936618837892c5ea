package handlers

import (
	"net/http"

	"github.com/investiai/portfolio-backend/internal/api/request"
	"github.com/investiai/portfolio-backend/internal/service"
	"github.com/investiai/portfolio-backend/internal/validation"
)

// ImportHandler handles bulk import HTTP requests
type ImportHandler struct {
	importService *service.ImportService
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(importService *service.ImportService) *ImportHandler {
	return &ImportHandler{importService: importService}
}

// Import handles POST requests to bulk-import assets, transactions and
// dividends from pasted text or an uploaded file. Structured CSV text is
// parsed directly; everything else goes through AI extraction. The whole
// batch merges atomically or not at all.
//
// Endpoint: POST /api/import
// Request: ImportRequest
// Response: 200 OK with an ImportSummary
// Error: 400 Bad Request on validation failure
// Error: 422 Unprocessable Entity if no records could be extracted
// Error: 503 Service Unavailable if AI extraction is needed but no API key is configured
func (h *ImportHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req request.ImportRequest
	if !parseJSON(w, r, &req) {
		return
	}

	if err := validation.ValidateImport(req); err != nil {
		respondServiceError(w, err)
		return
	}

	summary, err := h.importService.Import(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
