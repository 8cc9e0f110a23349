package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/flashdeck/internal/api"
	"github.com/vytor/flashdeck/internal/config"
	"github.com/vytor/flashdeck/internal/db"
	"github.com/vytor/flashdeck/internal/deck"
	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/repository"
	"github.com/vytor/flashdeck/internal/repository/memory"
	"github.com/vytor/flashdeck/internal/repository/sqlite"
	"github.com/vytor/flashdeck/internal/services"
	"github.com/vytor/flashdeck/internal/session"
	"github.com/vytor/flashdeck/internal/stats"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Flashdeck Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("decks_path=%s", cfg.DecksPath)
	log.Debug("stats_key=%s", cfg.StatsKey)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("reveal_delay_ms=%d", cfg.RevealDelayMS)
	log.Debug("shuffle_counts_as_view=%t", cfg.ShuffleCountsAsView)

	// Load decks
	catalog, err := deck.LoadCatalog(cfg.DecksPath)
	if err != nil {
		log.Error("failed to load deck catalog: %v", err)
		os.Exit(1)
	}
	log.Info("loaded %d decks, default %s", len(catalog.IDs()), catalog.DefaultID())

	// Open stats storage
	var (
		kv    repository.KVRepository
		store api.HealthChecker
	)
	if cfg.UsesMemoryStore() {
		log.Warn("DB_PATH is empty, stats will not survive a restart")
		kv = memory.NewKVRepository()
	} else {
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			log.Error("failed to open database: %v", err)
			os.Exit(1)
		}
		defer func() {
			log.Debug("closing database connection")
			database.Close()
		}()
		kv = sqlite.NewKVRepository(database.DB)
		store = database
	}

	// Load templates
	log.Debug("loading templates")
	tmpl, err := api.LoadTemplates()
	if err != nil {
		log.Error("failed to load templates: %v", err)
		os.Exit(1)
	}
	log.Debug("templates loaded successfully")

	// Initialize session and services
	ctx := logger.NewContext(context.Background(), log)
	manager := session.New(ctx, catalog, stats.NewStore(kv, cfg.StatsKey),
		session.WithShuffleCountsAsView(cfg.ShuffleCountsAsView),
	)
	studyService := services.NewStudyService(manager, catalog, cfg.RevealDelayMS)

	srv := &api.Server{
		StudyService: studyService,
		Templates:    tmpl,
		Store:        store,
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("Flashdeck Server Stopped")
	log.Info("===========================================")
}
