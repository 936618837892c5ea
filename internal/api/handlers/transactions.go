package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/investiai/portfolio-backend/internal/service"
)

// TransactionHandler handles transaction-related HTTP requests. The trade
// history is append-only; records are created through the asset trade
// endpoint and can only be listed or deleted here.
type TransactionHandler struct {
	portfolioService *service.PortfolioService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(portfolioService *service.PortfolioService) *TransactionHandler {
	return &TransactionHandler{portfolioService: portfolioService}
}

// List handles GET requests to retrieve the trade history. The optional
// ticker query parameter narrows the result to one instrument.
//
// Endpoint: GET /api/transaction?ticker=PETR4
// Response: 200 OK with an array of transactions
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.portfolioService.ListTransactions(r.URL.Query().Get("ticker"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, transactions)
}

// Delete handles DELETE requests to remove a history record. The position
// change the trade caused is not rolled back.
//
// Endpoint: DELETE /api/transaction/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if no transaction exists with the given ID
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.portfolioService.DeleteTransaction(chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
