// Package main is the entry point for the AgriNexus farm twin server.
// It only handles dependency injection and server initialization.
// NO business logic belongs here.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agrinexus/farm-twin/internal/api"
	"github.com/agrinexus/farm-twin/internal/config"
	"github.com/agrinexus/farm-twin/internal/domain/crop"
	"github.com/agrinexus/farm-twin/internal/engine"
	"github.com/agrinexus/farm-twin/internal/infra/ai"
	"github.com/agrinexus/farm-twin/internal/infra/storage"
	"github.com/agrinexus/farm-twin/internal/network"
	"github.com/agrinexus/farm-twin/internal/platform/logger"
	"github.com/agrinexus/farm-twin/internal/services/geo"
	"github.com/agrinexus/farm-twin/internal/services/research"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (optional)")
	flag.Parse()

	log.Println("[FARM-SERVER] Initializing AgriNexus farm twin server...")

	appLogger := logger.NewLogger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		appLogger.Error("Failed to load configuration: " + err.Error())
		os.Exit(1)
	}

	appLogger.Info("Initializing SQLite database '" + cfg.Storage.DBPath + "'...")
	db, err := storage.InitSQLite(cfg.Storage.DBPath)
	if err != nil {
		appLogger.Error("Failed to initialize SQLite: " + err.Error())
		os.Exit(1)
	}
	defer db.Close()

	sensorRepo := storage.NewSQLiteSensorRepository(db)
	alertRepo := storage.NewSQLiteAlertRepository(db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appLogger.Info("Bootstrapping tick persister...")
	persister := storage.NewTickPersister(sensorRepo, alertRepo, cfg.Storage.PersistEveryTicks, appLogger)
	go persister.Run(ctx)

	appLogger.Info("Bootstrapping WebSocket hub...")
	hub := network.NewHub(appLogger)
	go hub.Run(ctx)

	appLogger.Info("Bootstrapping simulation registry...")
	registry, err := engine.NewRegistry(ctx, cfg.Simulation, engine.RegistryOptions{
		TickInterval: cfg.TickInterval.Std(),
		Broadcaster:  hub,
		Persister:    persister,
	}, appLogger)
	if err != nil {
		appLogger.Error("Failed to build registry: " + err.Error())
		os.Exit(1)
	}
	defer registry.StopAll()

	// The default farm starts ticking immediately so the stream has
	// data before any client-created farm exists.
	if _, err := registry.Get("default"); err != nil {
		appLogger.Error("Failed to start default farm: " + err.Error())
		os.Exit(1)
	}

	appLogger.Info("Bootstrapping AI assistant...")
	budgetGate := ai.NewBudgetGate(cfg.AI.DailyBudgetUSD, cfg.AI.MonthlyBudgetUSD)
	llmProvider := ai.NewGeminiProvider(budgetGate)
	if llmProvider.IsAvailable() {
		appLogger.Info("Assistant provider ready: " + llmProvider.Name())
	} else {
		appLogger.Warn("GEMINI_API_KEY not set; chat runs in fallback mode")
	}

	geoSvc := geo.NewService(cfg.GeoBaseURL, appLogger)
	researchSvc := research.NewService(geoSvc, crop.NewEngine(), registry, appLogger)

	server := api.NewServer(cfg, registry, hub, sensorRepo, alertRepo, geoSvc, researchSvc, llmProvider, appLogger)

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: server.Router(),
	}

	go func() {
		log.Printf("[FARM-SERVER] HTTP API & WS server listening on %s", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	log.Println("[FARM-SERVER] Server running. Press Ctrl+C to exit.")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[FARM-SERVER] Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Graceful shutdown failed: " + err.Error())
	}
	registry.StopAll()
	cancel()
}
