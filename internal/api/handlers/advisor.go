package handlers

import (
	"net/http"
	"strings"

	"github.com/investiai/portfolio-backend/internal/api/request"
	"github.com/investiai/portfolio-backend/internal/api/response"
	"github.com/investiai/portfolio-backend/internal/service"
)

// AdvisorHandler handles advisory chat HTTP requests
type AdvisorHandler struct {
	advisorService *service.AdvisorService
}

// NewAdvisorHandler creates a new AdvisorHandler
func NewAdvisorHandler(advisorService *service.AdvisorService) *AdvisorHandler {
	return &AdvisorHandler{advisorService: advisorService}
}

// AdvisorResponse is one advisory answer.
type AdvisorResponse struct {
	Answer string `json:"answer"`
}

// Ask handles POST requests to the advisory chat. The current portfolio
// state is attached as context automatically.
//
// Endpoint: POST /api/advisor
// Request: AdvisorRequest
// Response: 200 OK with AdvisorResponse
// Error: 400 Bad Request if the message is empty
// Error: 503 Service Unavailable if no API key is configured or the model is unreachable
func (h *AdvisorHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req request.AdvisorRequest
	if !parseJSON(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		response.RespondError(w, http.StatusBadRequest, "message is required", "")
		return
	}

	answer, err := h.advisorService.Advise(r.Context(), req.Message)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, AdvisorResponse{Answer: answer})
}
