package driven

import (
	"context"

	"github.com/custodia-labs/rosetta-mirror/internal/core/domain"
)

// WikiClient reads from a MediaWiki query API.
// Every listing operation follows continuation until the wiki reports
// no further batches.
type WikiClient interface {
	// CategoryMembers lists every page of a category.
	// The category is given without its namespace prefix.
	CategoryMembers(ctx context.Context, category string) ([]domain.CategoryMember, error)

	// RecentChanges lists every edit at or after since, oldest first.
	// since is an ISO-8601 timestamp as returned by the wiki.
	RecentChanges(ctx context.Context, since string) ([]domain.RevisionChange, error)

	// Page fetches the latest revision of a page.
	Page(ctx context.Context, pageID uint64) (*domain.PageRevision, error)

	// Revision fetches a page at a specific revision.
	Revision(ctx context.Context, pageID, revisionID uint64) (*domain.PageRevision, error)
}
