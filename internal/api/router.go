package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/investiai/portfolio-backend/internal/api/handlers"
	custommiddleware "github.com/investiai/portfolio-backend/internal/api/middleware"
	"github.com/investiai/portfolio-backend/internal/config"
	"github.com/investiai/portfolio-backend/internal/service"
)

// Services bundles everything the router wires into handlers.
type Services struct {
	System    *service.SystemService
	Portfolio *service.PortfolioService
	Price     *service.PriceService
	Import    *service.ImportService
	Advisor   *service.AdvisorService
	Settings  *service.SettingsService
}

// NewRouter creates and configures the HTTP router
func NewRouter(services Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(services.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/asset", func(r chi.Router) {
			assetHandler := handlers.NewAssetHandler(services.Portfolio, services.Price)
			r.Get("/", assetHandler.List)
			r.Post("/", assetHandler.Create)
			r.Post("/refresh-prices", assetHandler.RefreshPrices)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", assetHandler.Get)
				r.Put("/", assetHandler.Update)
				r.Delete("/", assetHandler.Delete)
				r.Post("/trade", assetHandler.Trade)
			})
		})

		r.Route("/transaction", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(services.Portfolio)
			r.Get("/", transactionHandler.List)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Delete("/", transactionHandler.Delete)
			})
		})

		r.Route("/dividend", func(r chi.Router) {
			dividendHandler := handlers.NewDividendHandler(services.Portfolio)
			r.Get("/", dividendHandler.List)
			r.Get("/by-month", dividendHandler.ByMonth)
			r.Post("/", dividendHandler.Create)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Delete("/", dividendHandler.Delete)
			})
		})

		dashboardHandler := handlers.NewDashboardHandler(services.Portfolio)
		r.Get("/dashboard", dashboardHandler.Get)

		importHandler := handlers.NewImportHandler(services.Import)
		r.Post("/import", importHandler.Import)

		advisorHandler := handlers.NewAdvisorHandler(services.Advisor)
		r.Post("/advisor", advisorHandler.Ask)

		settingsHandler := handlers.NewSettingsHandler(services.Settings)
		r.Post("/settings/gemini-key", settingsHandler.SetGeminiKey)
	})

	return r
}
