package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/javaBin/speechrank/internal/config"
	"github.com/javaBin/speechrank/internal/domain"
)

// Repository is the in-memory conference catalog.
// A single lock guards the conference list, the year index and both lookup maps,
// so appending a conference and indexing it happen as one step.
type Repository struct {
	mu            sync.RWMutex
	conferences   []*domain.Conference
	byID          map[string]*domain.Conference
	presentations map[string]presentationRef
	years         *domain.YearIndex

	importer  *Importer
	bootstrap []domain.ImportJob

	newID  func() string
	now    func() time.Time
	logger *slog.Logger
}

// presentationRef points into a conference owned by the repository
type presentationRef struct {
	conference   *domain.Conference
	presentation *domain.Presentation
}

// NewRepository creates a Repository, receiving context as first parameter
// to retrieve the supported years from configuration.
func NewRepository(ctx context.Context, importer *Importer, bootstrap []domain.ImportJob) *Repository {
	cfg := config.GetConfig(ctx)
	return NewRepositoryWithConfig(importer, cfg.Catalog.SupportedYears, bootstrap)
}

// NewRepositoryWithConfig creates a Repository with explicit supported years.
// This constructor is primarily intended for testing purposes.
func NewRepositoryWithConfig(importer *Importer, supportedYears []string, bootstrap []domain.ImportJob) *Repository {
	return &Repository{
		conferences:   []*domain.Conference{},
		byID:          make(map[string]*domain.Conference),
		presentations: make(map[string]presentationRef),
		years:         domain.NewYearIndex(supportedYears...),
		importer:      importer,
		bootstrap:     bootstrap,
		newID:         func() string { return uuid.New().String() },
		now:           time.Now,
		logger:        slog.Default().With("component", "repository"),
	}
}

// AddConference stores a copy of the conference and assigns it to year.
// It reports whether the year is supported; an unsupported year is not an error,
// the conference is kept without a year grouping. A presentation id that is already
// held, or repeated within the conference, rejects the whole conference.
func (r *Repository) AddConference(year string, conference *domain.Conference) (bool, error) {
	assigned, _, err := r.insert(year, conference, false)
	return assigned, err
}

// AddImportedConference stores a conference built from a playlist. Presentations
// already held by another conference are left out and their ids returned, the
// rest of the conference is kept.
func (r *Repository) AddImportedConference(year string, conference *domain.Conference) (bool, []string, error) {
	return r.insert(year, conference, true)
}

func (r *Repository) insert(year string, conference *domain.Conference, dropTaken bool) (bool, []string, error) {
	if conference == nil {
		return false, nil, fmt.Errorf("%w: conference is nil", domain.ErrInvalidInput)
	}

	conf := conference.Clone()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[conf.ID]; exists {
		return false, nil, fmt.Errorf("%w: %s", domain.ErrConferenceExists, conf.ID)
	}

	var dropped []string
	kept := make([]*domain.Presentation, 0, len(conf.Presentations))
	seen := make(map[string]struct{}, len(conf.Presentations))
	for _, p := range conf.Presentations {
		_, repeated := seen[p.ID]
		ref, taken := r.presentations[p.ID]
		if !repeated && !taken {
			seen[p.ID] = struct{}{}
			kept = append(kept, p)
			continue
		}
		if !dropTaken {
			if repeated {
				return false, nil, fmt.Errorf("%w: %s appears twice in conference %s", domain.ErrDuplicatePresentation, p.ID, conf.ID)
			}
			return false, nil, fmt.Errorf("%w: %s already belongs to conference %s", domain.ErrDuplicatePresentation, p.ID, ref.conference.ID)
		}
		dropped = append(dropped, p.ID)
	}
	conf.Presentations = kept

	r.conferences = append(r.conferences, conf)
	r.byID[conf.ID] = conf
	for _, p := range conf.Presentations {
		r.presentations[p.ID] = presentationRef{conference: conf, presentation: p}
	}

	assigned := r.years.Assign(year, conf)
	if !assigned {
		r.logger.Warn("conference year not supported, kept without year grouping",
			"conferenceID", conf.ID,
			"year", year,
			"error", domain.ErrYearNotSupported,
		)
	}

	if len(dropped) > 0 {
		r.logger.Warn("left out presentations already in the catalog",
			"conferenceID", conf.ID,
			"presentationIDs", dropped,
		)
	}

	r.logger.Info("conference added",
		"conferenceID", conf.ID,
		"name", conf.Name,
		"year", year,
		"presentations", len(conf.Presentations),
	)

	return assigned, dropped, nil
}

// AddRate attaches a rate to the presentation it references
func (r *Repository) AddRate(rate domain.Rate) error {
	if err := domain.Validate(rate); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ref, ok := r.presentations[rate.PresentationID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrPresentationNotFound, rate.PresentationID)
	}
	ref.presentation.AddRate(rate)

	r.logger.Info("rate added",
		"presentationID", rate.PresentationID,
		"value", rate.Value,
	)
	return nil
}

// AddComment attaches a comment to the presentation it references.
// A comment without a timestamp is stamped with the current time.
func (r *Repository) AddComment(comment domain.Comment) error {
	if err := domain.Validate(comment); err != nil {
		return err
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = r.now().UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ref, ok := r.presentations[comment.PresentationID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrPresentationNotFound, comment.PresentationID)
	}
	ref.presentation.AddComment(comment)

	r.logger.Info("comment added",
		"presentationID", comment.PresentationID,
		"author", comment.Author,
	)
	return nil
}

// Conferences returns a copy of every conference in insertion order
func (r *Repository) Conferences() []domain.Conference {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Conference, 0, len(r.conferences))
	for _, c := range r.conferences {
		out = append(out, *c.Clone())
	}
	return out
}

// Years returns a copy of the year index with the conferences assigned to each year
func (r *Repository) Years() []domain.YearView {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.years.Views()
}

// SupportedYears returns the year strings conferences can be grouped under
func (r *Repository) SupportedYears() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.years.Years()
}

// YearOf returns the year a conference is grouped under
func (r *Repository) YearOf(conferenceID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.years.YearOf(conferenceID)
}

// Conference returns a copy of the conference with the given id
func (r *Repository) Conference(id string) (domain.Conference, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return domain.Conference{}, fmt.Errorf("%w: %s", domain.ErrConferenceNotFound, id)
	}
	return *c.Clone(), nil
}

// Presentation returns a copy of the presentation with the given id
func (r *Repository) Presentation(id string) (domain.Presentation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ref, ok := r.presentations[id]
	if !ok {
		return domain.Presentation{}, fmt.Errorf("%w: %s", domain.ErrPresentationNotFound, id)
	}
	return *ref.presentation.Clone(), nil
}

// PresentationDocument returns the search document for one presentation
func (r *Repository) PresentationDocument(id string) (domain.PresentationDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ref, ok := r.presentations[id]
	if !ok {
		return domain.PresentationDocument{}, fmt.Errorf("%w: %s", domain.ErrPresentationNotFound, id)
	}
	year, _ := r.years.YearOf(ref.conference.ID)
	return domain.NewPresentationDocument(year, ref.conference, ref.presentation), nil
}

// ImportAll runs the bootstrap import table given at construction.
// A failing import never stops the others.
func (r *Repository) ImportAll(ctx context.Context) []domain.ImportResult {
	return r.importer.ImportAll(ctx, r, r.bootstrap)
}

// ImportOne imports a playlist as a new conference with a generated id.
// A source failure still adds an empty conference and is reported through result.Err
// with a nil error; the error is set when the request is invalid or the conference
// could not be added.
func (r *Repository) ImportOne(ctx context.Context, request domain.ImportRequest) (domain.ImportResult, error) {
	if err := domain.Validate(request); err != nil {
		return domain.ImportResult{}, err
	}

	job := domain.ImportJob{
		Year:         request.Year,
		ConferenceID: r.newID(),
		Name:         request.Name,
		PlaylistID:   domain.ParsePlaylistID(request.PlaylistLink),
	}

	result := r.importer.Import(ctx, r, job)
	if !result.Added {
		return result, result.Err
	}
	return result, nil
}
