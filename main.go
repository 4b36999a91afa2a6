package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/epeers/investdash/config"
	_ "github.com/epeers/investdash/docs"
	"github.com/epeers/investdash/internal/cache"
	"github.com/epeers/investdash/internal/gemini"
	"github.com/epeers/investdash/internal/handlers"
	"github.com/epeers/investdash/internal/metrics"
	"github.com/epeers/investdash/internal/models"
	"github.com/epeers/investdash/internal/repository"
	"github.com/epeers/investdash/internal/services"
	"github.com/epeers/investdash/internal/state"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// @title investdash API
// @version 1.0
// @description Personal finance dashboard: portfolio ledger, risk profile, premium AI analysis.
// @BasePath /
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.SetLevel(cfg.LogLevel)
	decimal.MarshalJSONWithoutQuotes = true

	// Background jobs live until shutdown starts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	aiClient, err := gemini.NewClient(ctx, cfg.GeminiKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("Failed to create Gemini client: %v", err)
	}
	log.WithFields(log.Fields{
		"gemini_key":    cfg.MaskedGeminiKey(),
		"gemini_model":  aiClient.Model(),
		"ai_configured": aiClient.Configured(),
		"max_inflight":  cfg.AIMaxInFlight,
	}).Info("Configuration loaded")

	// Reference data and the process state
	refRepo := repository.NewReferenceRepository()
	store := state.NewStore(state.AppState{
		Session:    models.NewUserSession(),
		Navigation: models.NavigationState{ActiveView: models.ViewLogin},
		Holdings:   refRepo.InitialHoldings(),
		Forms:      models.FormState{LoginUsername: models.DefaultLoginUsername},
		Chat:       services.InitialChat(),
	})

	m := metrics.New()
	m.Holdings.Set(float64(len(refRepo.InitialHoldings())))
	slots := cache.NewSlotCache(time.Now)
	jobs := services.NewJobRunner(ctx, cfg.AIMaxInFlight)

	// Initialize services
	riskSvc := services.NewRiskService(refRepo)
	sessionSvc := services.NewSessionService(store, riskSvc, time.Now)
	navSvc := services.NewNavigationService(store, time.Now, m)
	portfolioSvc := services.NewPortfolioService(store, refRepo, m)

	// Event streams end as soon as shutdown starts, or Shutdown would wait on them
	streamsCtx, stopStreams := context.WithCancel(context.Background())
	defer stopStreams()

	router := handlers.NewRouter(handlers.Deps{
		Store:        store,
		Slots:        slots,
		Metrics:      m,
		Risk:         riskSvc,
		Session:      sessionSvc,
		Navigation:   navSvc,
		Subscription: services.NewSubscriptionService(store, time.Now, m),
		Portfolio:    portfolioSvc,
		Dashboard:    services.NewDashboardService(sessionSvc, portfolioSvc, refRepo),
		Market:       services.NewMarketService(store, refRepo),
		AI:           services.NewAIService(store, refRepo, aiClient, slots, jobs, navSvc, m, time.Now),
		Analysis:     services.NewAnalysisService(store, refRepo, slots, jobs, navSvc, m, cfg.AnalysisDelay, nil),
		CORSOrigins:  cfg.CORSOrigins,
		StreamsDone:  streamsCtx.Done(),
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}
	srv.RegisterOnShutdown(stopStreams)

	// Start server in goroutine
	go func() {
		log.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Give outstanding requests 5 seconds to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	// Abandon in-flight AI calls; their results would be dropped anyway
	cancel()
	jobs.Wait()

	log.Info("Server exited")
}
