package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/rosetta-mirror/internal/core/domain"
	"github.com/custodia-labs/rosetta-mirror/internal/core/ports/driven"
	"github.com/custodia-labs/rosetta-mirror/internal/logger"
)

// Repository is a git working tree rooted at a directory.
type Repository struct {
	root        string
	authorName  string
	authorEmail string
}

// Ensure Repository implements the interface.
var _ driven.VersionControl = (*Repository)(nil)

// NewRepository returns a repository for root. Commits are authored by
// name and email when both are set.
func NewRepository(root, name, email string) *Repository {
	return &Repository{
		root:        root,
		authorName:  name,
		authorEmail: email,
	}
}

// Root returns the working tree root.
func (r *Repository) Root() string {
	return r.root
}

// Init creates the root directory and a repository in it if needed.
func (r *Repository) Init(ctx context.Context) error {
	if err := os.MkdirAll(r.root, 0o755); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrVersionControl, err)
	}
	if _, err := os.Stat(filepath.Join(r.root, ".git")); err == nil {
		return nil
	}
	_, err := r.run(ctx, "init", "-q")
	return err
}

// Stage adds paths, including deletions, to the index.
// Paths that do not exist on disk are ignored.
func (r *Repository) Stage(ctx context.Context, paths ...string) error {
	existing := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, err := os.Stat(filepath.Join(r.root, p)); errors.Is(err, fs.ErrNotExist) {
			logger.Debug("git: nothing to stage at %s", p)
			continue
		}
		existing = append(existing, p)
	}
	if len(existing) == 0 {
		return nil
	}

	_, err := r.run(ctx, append([]string{"add", "-A", "--"}, existing...)...)
	return err
}

// DiffStagedNames lists staged paths beneath scope, unquoted.
func (r *Repository) DiffStagedNames(ctx context.Context, scope string) ([]string, error) {
	out, err := r.run(ctx, "-c", "core.quotePath=false", "diff", "--cached", "--name-only", "--", scope)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, line := range strings.Split(string(out), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			names = append(names, line)
		}
	}
	return names, nil
}

// Commit records the index.
func (r *Repository) Commit(ctx context.Context, message string, allowEmpty bool) error {
	args := []string{"-c", "commit.gpgsign=false"}
	if r.authorName != "" && r.authorEmail != "" {
		args = append(args, "-c", "user.name="+r.authorName, "-c", "user.email="+r.authorEmail)
	}
	args = append(args, "commit", "-q", "--no-verify", "-m", message)
	if allowEmpty {
		args = append(args, "--allow-empty")
	}

	_, err := r.run(ctx, args...)
	return err
}

func (r *Repository) run(ctx context.Context, args ...string) ([]byte, error) {
	root := strings.TrimSpace(r.root)
	if root == "" {
		return nil, fmt.Errorf("%w: missing repository root", domain.ErrVersionControl)
	}

	logger.Debug("git: %s", strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", root}, args...)...)

	// Only stdout is returned; warnings on stderr are not command output.
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = strings.TrimSpace(stdout.String())
		}
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("%w: git %s failed: %s", domain.ErrVersionControl, strings.Join(args, " "), msg)
	}
	if stderr.Len() > 0 {
		logger.Debug("git: %s", strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
