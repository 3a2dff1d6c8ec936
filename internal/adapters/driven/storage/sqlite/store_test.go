package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/rosetta-mirror/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})

	return store, dir
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	store, dir := setupTestStore(t)

	assert.FileExists(t, store.Path())
	assert.Contains(t, store.Path(), dir)
}

func TestNewStore_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.SaveTimestamp(ctx, "2024-03-01T00:00:00Z"))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	ts, err := reopened.Timestamp(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01T00:00:00Z", ts)

	var count int
	require.NoError(t, reopened.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestStore_TallyNotFound(t *testing.T) {
	store, _ := setupTestStore(t)

	_, err := store.Tally(context.Background(), "Simple")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_TallyRoundTrip(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()
	tally := domain.NewTally(
		domain.MirroredTask{PageID: 5, RevisionID: 100},
		domain.MirroredTask{PageID: 7, RevisionID: 200},
	)

	require.NoError(t, store.SaveTally(ctx, "Programming_Tasks", tally))

	loaded, err := store.Tally(ctx, "Programming_Tasks")
	require.NoError(t, err)
	assert.Equal(t, tally.Tasks(), loaded.Tasks())
}

func TestStore_SaveTallyReplaces(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveTally(ctx, "Simple", domain.NewTally(
		domain.MirroredTask{PageID: 5, RevisionID: 100},
		domain.MirroredTask{PageID: 6, RevisionID: 100},
	)))
	require.NoError(t, store.SaveTally(ctx, "Simple", domain.NewTally(
		domain.MirroredTask{PageID: 5, RevisionID: 101},
	)))

	loaded, err := store.Tally(ctx, "Simple")
	require.NoError(t, err)
	assert.Equal(t, []domain.MirroredTask{{PageID: 5, RevisionID: 101}}, loaded.Tasks())
}

func TestStore_CategoriesAreIndependent(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveTally(ctx, "Simple", domain.NewTally(domain.MirroredTask{PageID: 1, RevisionID: 1})))
	require.NoError(t, store.SaveTally(ctx, "Programming_Tasks", domain.NewTally(domain.MirroredTask{PageID: 1, RevisionID: 9})))

	simple, err := store.Tally(ctx, "Simple")
	require.NoError(t, err)
	assert.True(t, simple.Has(1, 1))

	tasks, err := store.Tally(ctx, "Programming_Tasks")
	require.NoError(t, err)
	assert.True(t, tasks.Has(1, 9))
}

func TestStore_EmptyTallyIsInitialized(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveTally(ctx, "Simple", domain.NewTally()))

	loaded, err := store.Tally(ctx, "Simple")
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Len())
}

func TestStore_Timestamp(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	_, err := store.Timestamp(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.SaveTimestamp(ctx, "a"))
	require.NoError(t, store.SaveTimestamp(ctx, "b"))

	ts, err := store.Timestamp(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b", ts)
}
