package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/javaBin/speechrank/internal/config"
	"github.com/javaBin/speechrank/internal/domain"
	"github.com/javaBin/speechrank/internal/ports"
)

// IndexerService publishes the conference catalog to the search index
type IndexerService struct {
	catalog      ports.CatalogReader
	searchIndex  ports.SearchIndex
	indexName    string
	indexMapping string
	logger       *slog.Logger
}

// NewIndexerService creates a new IndexerService, receiving context as first parameter
// to retrieve configuration, along with the required port dependencies.
func NewIndexerService(
	ctx context.Context,
	catalog ports.CatalogReader,
	searchIndex ports.SearchIndex,
	indexMapping string,
) *IndexerService {
	cfg := config.GetConfig(ctx)
	return NewIndexerServiceWithConfig(catalog, searchIndex, cfg.Index.Name, indexMapping)
}

// NewIndexerServiceWithConfig creates a new IndexerService with explicit configuration.
// This constructor is primarily intended for testing purposes.
func NewIndexerServiceWithConfig(
	catalog ports.CatalogReader,
	searchIndex ports.SearchIndex,
	indexName string,
	indexMapping string,
) *IndexerService {
	return &IndexerService{
		catalog:      catalog,
		searchIndex:  searchIndex,
		indexName:    indexName,
		indexMapping: indexMapping,
		logger:       slog.Default().With("component", "indexer"),
	}
}

// ReindexAll recreates the index and fills it with every presentation of every conference
func (s *IndexerService) ReindexAll(ctx context.Context) error {
	s.logger.Info("starting full reindex of the catalog")

	conferences := s.catalog.Conferences()
	s.logger.Info("collected conferences", "count", len(conferences))

	if err := s.recreateIndex(ctx); err != nil {
		return fmt.Errorf("failed to recreate index: %w", err)
	}

	var docs []domain.PresentationDocument
	for i := range conferences {
		docs = append(docs, s.documentsFor(&conferences[i])...)
	}

	if len(docs) == 0 {
		s.logger.Warn("no presentations found to index")
		return nil
	}

	if err := s.searchIndex.BulkIndex(ctx, s.indexName, docs); err != nil {
		return fmt.Errorf("failed to index presentations: %w", err)
	}

	s.logger.Info("full reindex completed successfully",
		"conferences", len(conferences),
		"presentations", len(docs),
	)

	return nil
}

// ReindexConference upserts every presentation of one conference
func (s *IndexerService) ReindexConference(ctx context.Context, conferenceID string) error {
	s.logger.Info("starting reindex for conference", "conferenceID", conferenceID)

	conf, err := s.catalog.Conference(conferenceID)
	if err != nil {
		return fmt.Errorf("failed to find conference: %w", err)
	}

	docs := s.documentsFor(&conf)
	if len(docs) == 0 {
		s.logger.Info("conference has no presentations to index", "conferenceID", conferenceID)
		return nil
	}

	if err := s.ensureIndexExists(ctx); err != nil {
		return fmt.Errorf("failed to ensure index exists: %w", err)
	}

	if err := s.searchIndex.BulkIndex(ctx, s.indexName, docs); err != nil {
		return fmt.Errorf("failed to index conference %s: %w", conferenceID, err)
	}

	s.logger.Info("conference reindex completed successfully",
		"conferenceID", conferenceID,
		"presentations", len(docs),
	)

	return nil
}

// ReindexPresentation upserts one presentation, picking up its latest rates and comments
func (s *IndexerService) ReindexPresentation(ctx context.Context, presentationID string) error {
	doc, err := s.catalog.PresentationDocument(presentationID)
	if err != nil {
		return fmt.Errorf("failed to find presentation: %w", err)
	}

	if err := s.ensureIndexExists(ctx); err != nil {
		return fmt.Errorf("failed to ensure index exists: %w", err)
	}

	if err := s.searchIndex.BulkIndex(ctx, s.indexName, []domain.PresentationDocument{doc}); err != nil {
		return fmt.Errorf("failed to index presentation %s: %w", presentationID, err)
	}

	s.logger.Debug("presentation reindexed",
		"presentationID", presentationID,
		"rateCount", doc.RateCount,
		"commentCount", doc.CommentCount,
	)

	return nil
}

// recreateIndex deletes and recreates the index with its mapping
func (s *IndexerService) recreateIndex(ctx context.Context) error {
	if err := s.searchIndex.DeleteIndex(ctx, s.indexName); err != nil {
		return fmt.Errorf("failed to delete index %s: %w", s.indexName, err)
	}

	if err := s.searchIndex.CreateIndex(ctx, s.indexName, s.indexMapping); err != nil {
		return fmt.Errorf("failed to create index %s: %w", s.indexName, err)
	}

	return nil
}

// ensureIndexExists creates the index if it doesn't exist
func (s *IndexerService) ensureIndexExists(ctx context.Context) error {
	exists, err := s.searchIndex.IndexExists(ctx, s.indexName)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}

	if !exists {
		if err := s.searchIndex.CreateIndex(ctx, s.indexName, s.indexMapping); err != nil {
			return fmt.Errorf("failed to create index %s: %w", s.indexName, err)
		}
	}

	return nil
}

// documentsFor flattens a conference into search documents
func (s *IndexerService) documentsFor(conf *domain.Conference) []domain.PresentationDocument {
	year, _ := s.catalog.YearOf(conf.ID)
	docs := make([]domain.PresentationDocument, 0, len(conf.Presentations))
	for _, p := range conf.Presentations {
		docs = append(docs, domain.NewPresentationDocument(year, conf, p))
	}
	return docs
}
