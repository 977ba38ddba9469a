package api

import (
	"context"
	"log/slog"

	"github.com/javaBin/speechrank/internal/config"
	"github.com/javaBin/speechrank/internal/ports"
)

// Adapter holds the HTTP API dependencies.
// indexer is nil when search indexing is disabled.
type Adapter struct {
	cfg     *config.Config
	catalog ports.Catalog
	indexer ports.Indexer
	logger  *slog.Logger
}

// New creates a new API adapter, receiving context as first parameter to retrieve configuration
func New(ctx context.Context, catalog ports.Catalog, indexer ports.Indexer) *Adapter {
	return &Adapter{
		cfg:     config.GetConfig(ctx),
		catalog: catalog,
		indexer: indexer,
		logger:  slog.Default().With("component", "api"),
	}
}

// searchEnabled reports whether changes are published to the search index
func (a *Adapter) searchEnabled() bool {
	return a.indexer != nil
}

// reindexPresentation refreshes one presentation in the search index.
// Failures are logged; the catalog change they follow has already succeeded.
func (a *Adapter) reindexPresentation(ctx context.Context, presentationID string) {
	if !a.searchEnabled() {
		return
	}
	if err := a.indexer.ReindexPresentation(ctx, presentationID); err != nil {
		a.logger.Error("failed to reindex presentation", "presentationID", presentationID, "error", err)
	}
}

// reindexConference refreshes every presentation of one conference in the search index
func (a *Adapter) reindexConference(ctx context.Context, conferenceID string) {
	if !a.searchEnabled() {
		return
	}
	if err := a.indexer.ReindexConference(ctx, conferenceID); err != nil {
		a.logger.Error("failed to reindex conference", "conferenceID", conferenceID, "error", err)
	}
}
