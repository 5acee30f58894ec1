package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/globenews/globe-news/app/api"
	"github.com/globenews/globe-news/app/cfg"
	"github.com/globenews/globe-news/app/database"
	"github.com/globenews/globe-news/app/feed"
	"github.com/globenews/globe-news/app/fetcher"
	"github.com/globenews/globe-news/app/preview"
	"github.com/globenews/globe-news/app/scheduler"
	"github.com/globenews/globe-news/app/sources"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting Globe News server", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBHost, appCfg.DBPort, appCfg.DBUser,
		appCfg.DBPassword, appCfg.DBName)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	registry := sources.NewRegistry()
	if appCfg.SourcesFile != "" {
		registry, err = sources.NewRegistryFromFile(appCfg.SourcesFile)
		if err != nil {
			slog.Error("Failed to load sources file", "path", appCfg.SourcesFile, "error", err)
			os.Exit(1)
		}
	}
	slog.Info("Feed sources loaded", "count", registry.Count(), "categories", registry.Categories())

	articleRepo := database.NewArticleRepository(db)
	categoryRepo := database.NewCategoryRepository(db)

	articleClient := &http.Client{Timeout: time.Duration(appCfg.ArticleTimeout) * time.Second}
	orchestrator := fetcher.NewOrchestrator(
		registry,
		feed.NewParser(appCfg.PerFeedLimit),
		feed.NewExtractor(articleClient, appCfg.UserAgent),
		preview.NewAnalyzer(nil),
		preview.NewBuilder(),
		articleRepo,
		categoryRepo,
		fetcher.Options{
			WorkerCount:   appCfg.WorkerCount,
			RunArticleCap: appCfg.RunArticleCap,
			UserAgent:     appCfg.UserAgent,
			FeedTimeout:   time.Duration(appCfg.FeedTimeout) * time.Second,
		},
	)

	fetchScheduler := scheduler.NewScheduler(orchestrator, time.Duration(appCfg.FetchInterval)*time.Second)
	fetchScheduler.Start()
	defer fetchScheduler.Stop()
	slog.Info("Background scheduler started", "workers", appCfg.WorkerCount, "interval_seconds", appCfg.FetchInterval)

	apiHandler := api.NewHandler(articleRepo, categoryRepo, registry, fetchScheduler,
		preview.NewAnalyzer(nil), preview.NewBuilder())
	server := api.NewServer(apiHandler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}
