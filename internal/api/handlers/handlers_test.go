package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/investiai/portfolio-backend/internal/model"
	"github.com/investiai/portfolio-backend/internal/repository"
	"github.com/investiai/portfolio-backend/internal/service"
	"github.com/investiai/portfolio-backend/internal/testutil"
)

func newTestHandlers(t *testing.T) (*AssetHandler, *DashboardHandler, *service.PortfolioService, *sql.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	portfolioService := service.NewPortfolioService(
		db,
		repository.NewAssetRepository(db),
		repository.NewTransactionRepository(db),
		repository.NewDividendRepository(db),
	)
	return NewAssetHandler(portfolioService, nil), NewDashboardHandler(portfolioService), portfolioService, db
}

// newJSONRequest builds a request with a JSON body and optional chi URL parameters.
func newJSONRequest(t *testing.T, method, path string, body interface{}, params map[string]string) *http.Request {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal request body: %v", err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for key, value := range params {
			rctx.URLParams.Add(key, value)
		}
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	return req
}

func TestCreateAssetHandlerReturns201(t *testing.T) {
	assetHandler, _, _, _ := newTestHandlers(t)

	req := newJSONRequest(t, http.MethodPost, "/api/asset", map[string]interface{}{
		"ticker":       "PETR4",
		"name":         "Petrobras PN",
		"type":         "Equity",
		"quantity":     "100",
		"averagePrice": "32.50",
	}, nil)
	rec := httptest.NewRecorder()

	assetHandler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var asset model.Asset
	if err := json.Unmarshal(rec.Body.Bytes(), &asset); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if asset.Ticker != "PETR4" || asset.ID == "" {
		t.Errorf("unexpected asset in response: %+v", asset)
	}
}

func TestCreateAssetHandlerValidation(t *testing.T) {
	assetHandler, _, _, _ := newTestHandlers(t)

	req := newJSONRequest(t, http.MethodPost, "/api/asset", map[string]interface{}{
		"ticker":       "",
		"type":         "Spaceship",
		"quantity":     "-1",
		"averagePrice": "10",
	}, nil)
	rec := httptest.NewRecorder()

	assetHandler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var body struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	for _, field := range []string{"ticker", "type", "quantity"} {
		if body.Details[field] == "" {
			t.Errorf("expected a validation message for %q, got %+v", field, body.Details)
		}
	}
}

func TestTradeHandlerRejectsInvalidTrade(t *testing.T) {
	assetHandler, _, _, db := newTestHandlers(t)

	asset := testutil.NewAsset().WithTicker("PETR4").Insert(t, db)

	req := newJSONRequest(t, http.MethodPost, "/api/asset/"+asset.ID+"/trade", map[string]interface{}{
		"type":     "sell",
		"quantity": "0",
		"price":    "40.00",
		"date":     "2024-11-03",
	}, map[string]string{"uuid": asset.ID})
	rec := httptest.NewRecorder()

	assetHandler.Trade(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	testutil.AssertRowCount(t, db, "transaction", 0)
}

func TestTradeHandlerRecordsTrade(t *testing.T) {
	assetHandler, _, _, db := newTestHandlers(t)

	asset := testutil.NewAsset().
		WithTicker("PETR4").
		WithQuantity("100").
		WithAveragePrice("32.50").
		Insert(t, db)

	req := newJSONRequest(t, http.MethodPost, "/api/asset/"+asset.ID+"/trade", map[string]interface{}{
		"type":     "buy",
		"quantity": "50",
		"price":    "40.00",
		"date":     "2024-11-03",
	}, map[string]string{"uuid": asset.ID})
	rec := httptest.NewRecorder()

	assetHandler.Trade(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	testutil.AssertRowCount(t, db, "transaction", 1)
}

func TestGetAssetHandlerNotFound(t *testing.T) {
	assetHandler, _, _, _ := newTestHandlers(t)

	req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/asset/missing",
		map[string]string{"uuid": "11111111-1111-1111-1111-111111111111"})
	rec := httptest.NewRecorder()

	assetHandler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestDashboardHandler(t *testing.T) {
	_, dashboardHandler, _, db := newTestHandlers(t)

	testutil.NewAsset().WithTicker("PETR4").WithType(model.AssetTypeEquity).
		WithQuantity("100").WithCurrentPrice("40.00").Insert(t, db)
	testutil.NewAsset().WithTicker("HGLG11").WithType(model.AssetTypeREIT).
		WithQuantity("10").WithCurrentPrice("160.00").Insert(t, db)

	req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/dashboard", nil)
	rec := httptest.NewRecorder()

	dashboardHandler.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var dashboard service.Dashboard
	if err := json.Unmarshal(rec.Body.Bytes(), &dashboard); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !dashboard.TotalBalance.Equal(decimal.RequireFromString("5600")) {
		t.Errorf("expected total balance 5600, got %s", dashboard.TotalBalance)
	}
}

func TestDashboardHandlerRejectsUnknownTypeFilter(t *testing.T) {
	_, dashboardHandler, _, _ := newTestHandlers(t)

	req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/dashboard",
		map[string]string{"type": "Spaceship"})
	rec := httptest.NewRecorder()

	dashboardHandler.Get(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
