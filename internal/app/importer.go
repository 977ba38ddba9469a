package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/javaBin/speechrank/internal/config"
	"github.com/javaBin/speechrank/internal/domain"
	"github.com/javaBin/speechrank/internal/ports"
)

// Importer turns playlists into conferences and folds them into a ConferenceStore
type Importer struct {
	source      ports.VideoSource
	concurrency int
	logger      *slog.Logger
}

// NewImporter creates a new Importer, receiving context as first parameter
// to retrieve configuration, along with the video source port.
func NewImporter(ctx context.Context, source ports.VideoSource) *Importer {
	cfg := config.GetConfig(ctx)
	return NewImporterWithConfig(source, cfg.Catalog.ImportConcurrency)
}

// NewImporterWithConfig creates a new Importer with an explicit fetch concurrency.
// This constructor is primarily intended for testing purposes.
func NewImporterWithConfig(source ports.VideoSource, concurrency int) *Importer {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Importer{
		source:      source,
		concurrency: concurrency,
		logger:      slog.Default().With("component", "importer"),
	}
}

// Build fetches the playlist of a job and constructs its conference.
// When the source fails the conference is built without presentations and
// the failure is returned in result.Err.
func (i *Importer) Build(ctx context.Context, job domain.ImportJob) domain.ImportResult {
	result := domain.ImportResult{Year: job.Year}

	videos, err := i.source.FetchPlaylist(ctx, job.PlaylistID)
	if err != nil {
		i.logger.Error("failed to fetch playlist, importing conference without presentations",
			"conferenceID", job.ConferenceID,
			"conferenceName", job.Name,
			"playlistID", job.PlaylistID,
			"error", err,
		)
		result.Err = fmt.Errorf("failed to import playlist %s for conference %s: %w", job.PlaylistID, job.ConferenceID, err)
		videos = nil
	}

	videos, result.Dropped = i.dedupe(job, videos)
	result.Conference = domain.NewConference(job.ConferenceID, job.Name, videos)

	i.logger.Info("built conference from playlist",
		"conferenceID", job.ConferenceID,
		"conferenceName", job.Name,
		"playlistID", job.PlaylistID,
		"count", len(result.Conference.Presentations),
	)

	return result
}

// Import builds the conference of one job and adds it to store
func (i *Importer) Import(ctx context.Context, store ports.ConferenceStore, job domain.ImportJob) domain.ImportResult {
	result := i.Build(ctx, job)
	i.add(store, &result)
	return result
}

// ImportAll fetches every job's playlist concurrently, then adds the conferences
// to store in job order. Each job fails on its own.
func (i *Importer) ImportAll(ctx context.Context, store ports.ConferenceStore, jobs []domain.ImportJob) []domain.ImportResult {
	i.logger.Info("starting bootstrap import", "count", len(jobs))

	results := make([]domain.ImportResult, len(jobs))

	var g errgroup.Group
	g.SetLimit(i.concurrency)
	for idx, job := range jobs {
		g.Go(func() error {
			results[idx] = i.Build(ctx, job)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for idx := range results {
		i.add(store, &results[idx])
		if results[idx].Failed() {
			failed++
		}
	}

	i.logger.Info("bootstrap import completed",
		"count", len(jobs),
		"failed", failed,
	)

	return results
}

func (i *Importer) add(store ports.ConferenceStore, result *domain.ImportResult) {
	assigned, dropped, err := store.AddImportedConference(result.Year, result.Conference)
	if err != nil {
		i.logger.Error("failed to add imported conference",
			"conferenceID", result.Conference.ID,
			"error", err,
		)
		result.Err = errors.Join(result.Err, fmt.Errorf("failed to add conference %s: %w", result.Conference.ID, err))
		return
	}
	result.Added = true
	result.YearAssigned = assigned

	if len(dropped) > 0 {
		result.Conference = result.Conference.Without(dropped...)
		result.Dropped = append(result.Dropped, dropped...)
	}
}

// dedupe drops repeated video ids, keeping the first occurrence
func (i *Importer) dedupe(job domain.ImportJob, videos []domain.VideoRecord) ([]domain.VideoRecord, []string) {
	seen := make(map[string]struct{}, len(videos))
	out := make([]domain.VideoRecord, 0, len(videos))
	var repeated []string
	for _, v := range videos {
		if _, dup := seen[v.VideoID]; dup {
			i.logger.Warn("skipping repeated video in playlist",
				"playlistID", job.PlaylistID,
				"videoID", v.VideoID,
			)
			repeated = append(repeated, v.VideoID)
			continue
		}
		seen[v.VideoID] = struct{}{}
		out = append(out, v)
	}
	return out, repeated
}
