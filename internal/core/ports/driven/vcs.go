package driven

import "context"

// VersionControl records snapshots of the mirror tree.
// Paths are relative to the repository root.
type VersionControl interface {
	// Init creates the repository if it does not exist yet.
	Init(ctx context.Context) error

	// Stage adds paths, including deletions, to the index.
	Stage(ctx context.Context, paths ...string) error

	// DiffStagedNames lists staged paths beneath scope.
	DiffStagedNames(ctx context.Context, scope string) ([]string, error)

	// Commit records the index. allowEmpty permits a commit without changes.
	Commit(ctx context.Context, message string, allowEmpty bool) error
}
