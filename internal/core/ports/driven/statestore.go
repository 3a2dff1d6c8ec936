package driven

import (
	"context"

	"github.com/custodia-labs/rosetta-mirror/internal/core/domain"
)

// StateStore persists synchronisation state between runs.
type StateStore interface {
	// Tally loads the tally of a category.
	// Returns domain.ErrNotFound when the category has never been initialised.
	Tally(ctx context.Context, category string) (*domain.Tally, error)

	// SaveTally replaces the tally of a category.
	SaveTally(ctx context.Context, category string, tally *domain.Tally) error

	// Timestamp loads the last processed recent-changes timestamp.
	// Returns domain.ErrNotFound before the first run.
	Timestamp(ctx context.Context) (string, error)

	// SaveTimestamp replaces the last processed timestamp.
	SaveTimestamp(ctx context.Context, timestamp string) error

	// Close releases any resources held by the store.
	Close() error
}
