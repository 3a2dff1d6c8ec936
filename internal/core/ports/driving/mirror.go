package driving

import (
	"context"

	"github.com/custodia-labs/rosetta-mirror/internal/core/domain"
)

// MirrorService keeps the local mirror in step with the wiki.
type MirrorService interface {
	// Run replays recent edits onto initialised categories, then
	// initialises categories that have no tally yet.
	Run(ctx context.Context) (*domain.SyncReport, error)

	// Status reports the persisted state of every configured category
	// and the last processed timestamp (empty before the first run).
	Status(ctx context.Context) ([]domain.CategoryStatus, string, error)

	// ExtractPage writes the code blocks of a single page into category
	// without touching state or version control.
	ExtractPage(ctx context.Context, category string, pageID uint64) ([]string, error)

	// ExtractText writes the code blocks of local wikitext under root.
	// Languages resolve from the built-in table only.
	ExtractText(ctx context.Context, root, title, wikitext string) ([]string, error)

	// ResolveLanguage resolves a raw language tag against the wiki's
	// language list.
	ResolveLanguage(ctx context.Context, raw string) (domain.Language, error)
}
