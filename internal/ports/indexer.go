package ports

import (
	"context"

	"github.com/javaBin/speechrank/internal/domain"
)

// SearchIndex defines the interface for search index operations
type SearchIndex interface {
	BulkIndex(ctx context.Context, indexName string, docs []domain.PresentationDocument) error
	DeleteIndex(ctx context.Context, indexName string) error
	CreateIndex(ctx context.Context, indexName string, mapping string) error
	IndexExists(ctx context.Context, indexName string) (bool, error)
}

// Indexer defines the interface for publishing the catalog to the search index.
// This is implemented by the app layer IndexerService.
type Indexer interface {
	// ReindexAll recreates the index from every presentation in the catalog
	ReindexAll(ctx context.Context) error

	// ReindexConference upserts every presentation of one conference
	ReindexConference(ctx context.Context, conferenceID string) error

	// ReindexPresentation upserts one presentation
	ReindexPresentation(ctx context.Context, presentationID string) error
}
