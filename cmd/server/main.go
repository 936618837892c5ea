package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/investiai/portfolio-backend/internal/api"
	"github.com/investiai/portfolio-backend/internal/config"
	"github.com/investiai/portfolio-backend/internal/database"
	"github.com/investiai/portfolio-backend/internal/pricing"
	"github.com/investiai/portfolio-backend/internal/repository"
	"github.com/investiai/portfolio-backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if cfg.SeedDemo {
		if err := database.SeedDemoData(db); err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
	}

	// Create repositories
	assetRepo := repository.NewAssetRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	dividendRepo := repository.NewDividendRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	portfolioService := service.NewPortfolioService(db, assetRepo, transactionRepo, dividendRepo)

	settingsService, err := service.NewSettingsService(settingsRepo, cfg.Secrets.FernetKey, cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("Failed to create settings service: %v", err)
	}

	priceService := service.NewPriceService(portfolioService, newPriceSource(cfg), cfg.Pricing.Timeout)
	importService := service.NewImportService(portfolioService, service.NewGeminiParser(settingsService, cfg.Gemini.Model))
	advisorService := service.NewAdvisorService(portfolioService, settingsService, cfg.Gemini.Model)

	// Create router
	router := api.NewRouter(api.Services{
		System:    systemService,
		Portfolio: portfolioService,
		Price:     priceService,
		Import:    importService,
		Advisor:   advisorService,
		Settings:  settingsService,
	}, cfg)

	// Scheduled price refreshes
	var scheduler *cron.Cron
	if cfg.Pricing.Schedule != "" {
		scheduler = cron.New()
		if _, err := scheduler.AddFunc(cfg.Pricing.Schedule, priceService.RefreshInBackground); err != nil {
			log.Fatalf("Invalid price refresh schedule %q: %v", cfg.Pricing.Schedule, err)
		}
		scheduler.Start()
		log.Printf("Scheduled price refresh: %s", cfg.Pricing.Schedule)
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	if scheduler != nil {
		scheduler.Stop()
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// newPriceSource builds the price feed: the sheet feed when a URL is
// configured, otherwise the Yahoo chart API, with the simulated walk as the
// fallback in both cases.
func newPriceSource(cfg *config.Config) pricing.Source {
	var primary pricing.Source
	if cfg.Pricing.SheetURL != "" {
		primary = pricing.NewSheetSource(cfg.Pricing.SheetURL)
	} else {
		primary = pricing.NewYahooSource()
	}
	return pricing.NewFallbackSource(primary, pricing.NewSimulatedSource())
}
