package ports

import (
	"context"

	"github.com/javaBin/speechrank/internal/domain"
)

// ConferenceStore is the write side the import pipeline folds conferences into
type ConferenceStore interface {
	// AddImportedConference stores the conference and groups it under year.
	// Presentations another conference already holds are left out and their ids returned.
	// It reports whether a year entry matched.
	AddImportedConference(year string, conference *domain.Conference) (bool, []string, error)
}

// CatalogReader is the read side of the conference repository
type CatalogReader interface {
	Conferences() []domain.Conference
	Years() []domain.YearView
	Conference(id string) (domain.Conference, error)
	Presentation(id string) (domain.Presentation, error)
	PresentationDocument(id string) (domain.PresentationDocument, error)
	YearOf(conferenceID string) (string, bool)
}

// Catalog defines every operation the outer adapters use on the conference repository
type Catalog interface {
	CatalogReader

	// AddConference stores the conference and groups it under year.
	// Any presentation id already in the catalog rejects the whole conference.
	AddConference(year string, conference *domain.Conference) (bool, error)

	// AddRate attaches a rate to the presentation it references
	AddRate(rate domain.Rate) error

	// AddComment attaches a comment to the presentation it references
	AddComment(comment domain.Comment) error

	// ImportAll runs every bootstrap import, isolating failures per import
	ImportAll(ctx context.Context) []domain.ImportResult

	// ImportOne imports a single playlist under a freshly generated conference id
	ImportOne(ctx context.Context, request domain.ImportRequest) (domain.ImportResult, error)
}
