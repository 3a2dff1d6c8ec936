package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/rosetta-mirror/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/rosetta-mirror/internal/core/domain"
	"github.com/custodia-labs/rosetta-mirror/internal/core/ports/driven"
)

const (
	dbFile       = "state.db"
	timestampKey = "revision_timestamp"
)

// Store is a SQLite-backed state store.
type Store struct {
	db   *sql.DB
	path string
}

var _ driven.StateStore = (*Store)(nil)

// NewStore opens or creates the database in dir.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// Tally loads the tally of a category.
func (s *Store) Tally(ctx context.Context, category string) (*domain.Tally, error) {
	var name string
	err := s.db.QueryRowContext(ctx, "SELECT name FROM categories WHERE name = ?", category).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading category %s: %w", category, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT page_id, revision_id FROM mirrored_tasks
		WHERE category = ? ORDER BY page_id
	`, category)
	if err != nil {
		return nil, fmt.Errorf("loading tally %s: %w", category, err)
	}
	defer rows.Close()

	tally := domain.NewTally()
	for rows.Next() {
		var pageID, revisionID int64
		if err := rows.Scan(&pageID, &revisionID); err != nil {
			return nil, fmt.Errorf("scanning tally %s: %w", category, err)
		}
		tally.Set(uint64(pageID), uint64(revisionID))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("loading tally %s: %w", category, err)
	}
	return tally, nil
}

// SaveTally replaces the tally of a category in one transaction.
func (s *Store) SaveTally(ctx context.Context, category string, tally *domain.Tally) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("saving tally %s: %w", category, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO categories (name, updated_at) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET updated_at = excluded.updated_at
	`, category, now); err != nil {
		return fmt.Errorf("saving category %s: %w", category, err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM mirrored_tasks WHERE category = ?", category); err != nil {
		return fmt.Errorf("clearing tally %s: %w", category, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO mirrored_tasks (category, page_id, revision_id) VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing tally insert: %w", err)
	}
	defer stmt.Close()

	for _, task := range tally.Tasks() {
		if _, err := stmt.ExecContext(ctx, category, int64(task.PageID), int64(task.RevisionID)); err != nil {
			return fmt.Errorf("saving task %d: %w", task.PageID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing tally %s: %w", category, err)
	}
	return nil
}

// Timestamp loads the last processed timestamp.
func (s *Store) Timestamp(ctx context.Context) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM sync_state WHERE key = ?", timestampKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("loading timestamp: %w", err)
	}
	return value, nil
}

// SaveTimestamp replaces the last processed timestamp.
func (s *Store) SaveTimestamp(ctx context.Context, timestamp string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sync_state (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, timestampKey, timestamp, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("saving timestamp: %w", err)
	}
	return nil
}
