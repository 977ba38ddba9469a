package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/javaBin/speechrank/internal/adapters/api"
	"github.com/javaBin/speechrank/internal/adapters/auth"
	"github.com/javaBin/speechrank/internal/adapters/elasticsearch"
	webAdapter "github.com/javaBin/speechrank/internal/adapters/web"
	"github.com/javaBin/speechrank/internal/adapters/web/handlers"
	"github.com/javaBin/speechrank/internal/adapters/youtube"
	"github.com/javaBin/speechrank/internal/app"
	"github.com/javaBin/speechrank/internal/config"
	"github.com/javaBin/speechrank/internal/ports"
)

func main() {
	// Load configuration first to determine logging mode
	cfg := config.MustLoad()

	logger := config.NewLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = config.WithConfig(ctx, cfg)

	logger.Info("configuration loaded",
		"mode", cfg.Mode,
		"httpAddr", cfg.Http.Addr(),
		"youtubeURL", cfg.YouTube.URL,
		"youtubeAPIKey", cfg.YouTube.HasAPIKey(),
		"supportedYears", cfg.Catalog.SupportedYears,
		"search", cfg.Elasticsearch.Enabled,
	)

	bootstrap, err := config.LoadBootstrap(cfg.Catalog.BootstrapFile)
	if err != nil {
		logger.Error("failed to load bootstrap table", "error", err)
		os.Exit(1)
	}

	youtubeClient, err := youtube.New(ctx)
	if err != nil {
		logger.Error("failed to create youtube client", "error", err)
		os.Exit(1)
	}
	if !cfg.YouTube.HasAPIKey() {
		logger.Warn("no YouTube API key configured, playlist imports will likely be rejected")
	}

	importer := app.NewImporter(ctx, youtubeClient)
	repository := app.NewRepository(ctx, importer, bootstrap)
	logger.Info("conference repository initialized", "bootstrapImports", len(bootstrap))

	var indexer ports.Indexer
	if cfg.Elasticsearch.Enabled {
		esClient, err := elasticsearch.New(ctx)
		if err != nil {
			logger.Error("failed to create elasticsearch client", "error", err)
			os.Exit(1)
		}
		indexer = app.NewIndexerService(ctx, repository, esClient, elasticsearch.PresentationIndexMapping)
		logger.Info("indexer service initialized", "index", cfg.Index.Name)
	} else {
		logger.Info("search indexing disabled")
	}

	if cfg.Catalog.ImportOnStartup {
		importCatalog(ctx, logger, repository, indexer)
	}

	authAdapter, err := auth.New(ctx)
	if err != nil {
		logger.Error("failed to set up authentication", "error", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()
	authAdapter.RegisterRoutes(mux)
	api.New(ctx, repository, indexer).RegisterRoutes(mux, authAdapter.Middleware())
	webAdapter.RegisterRoutes(mux, handlers.NewHandler(repository))

	server := &http.Server{
		Addr:         cfg.Http.Addr(),
		Handler:      mux,
		ReadTimeout:  cfg.Http.ReadTimeout,
		WriteTimeout: cfg.Http.WriteTimeout, // Longer for imports and reindex operations
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// importCatalog runs the bootstrap imports and publishes the result to the search index.
// Failed imports are logged; the server starts with whatever was imported.
func importCatalog(ctx context.Context, logger *slog.Logger, repository *app.Repository, indexer ports.Indexer) {
	results := repository.ImportAll(ctx)
	for _, result := range results {
		if result.Failed() {
			logger.Warn("bootstrap import incomplete",
				"conferenceID", result.Conference.ID,
				"year", result.Year,
				"error", result.Err,
			)
		}
	}

	if indexer == nil {
		return
	}
	if err := indexer.ReindexAll(ctx); err != nil {
		logger.Error("initial reindex failed", "error", err)
	}
}
