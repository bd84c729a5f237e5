package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/tmarler/formsight/internal/analysis"
	"github.com/tmarler/formsight/internal/api"
	"github.com/tmarler/formsight/internal/classify"
	"github.com/tmarler/formsight/internal/config"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Best effort; a missing .env just means env vars come from elsewhere.
	godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	classifier, err := classify.LoadRules(cfg.RulesPath)
	if err != nil {
		log.Error("load classifier rules", "error", err)
		os.Exit(1)
	}

	analyzer := analysis.NewClient(cfg.AnalysisURL, cfg.AnalysisAPIKey, cfg.AnalysisTimeout)

	// Fail fast before serving if we can't authenticate to the analysis
	// service.
	verifyCtx, verifyCancel := context.WithTimeout(context.Background(), 15*time.Second)
	identity, err := analyzer.VerifyIdentity(verifyCtx)
	verifyCancel()
	if err != nil {
		log.Error("analysis service credential check failed", "error", err)
		os.Exit(1)
	}
	log.Info("verified analysis service credentials", "account", identity.Account)

	srv := api.NewServer(analyzer, classifier, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		analyzer.Close()
	}()

	log.Info("starting formsight", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
