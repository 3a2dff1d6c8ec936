package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/rosetta-mirror/internal/core/domain"
	"github.com/custodia-labs/rosetta-mirror/internal/core/ports/driven"
	"github.com/custodia-labs/rosetta-mirror/internal/core/ports/driving"
	"github.com/custodia-labs/rosetta-mirror/internal/logger"
)

// Ensure MirrorService implements the interface.
var _ driving.MirrorService = (*MirrorService)(nil)

// MirrorConfig describes the mirror tree.
type MirrorConfig struct {
	// Root is the mirror directory. Each category is a subdirectory.
	Root string

	// Categories are the task categories to mirror, in processing order.
	Categories []string

	// LanguageCategory lists the wiki's language pages.
	LanguageCategory string
}

// MirrorService synchronises the mirror tree with the wiki.
type MirrorService struct {
	wiki      driven.WikiClient
	catalog   driven.LanguageCatalog
	extractor driven.Extractor
	state     driven.StateStore
	vcs       driven.VersionControl
	cfg       MirrorConfig
	now       func() time.Time
}

// NewMirrorService creates a new mirror service.
// vcs is optional: when nil, files and state are written but nothing is
// committed.
func NewMirrorService(
	wiki driven.WikiClient,
	catalog driven.LanguageCatalog,
	extractor driven.Extractor,
	state driven.StateStore,
	vcs driven.VersionControl,
	cfg MirrorConfig,
) *MirrorService {
	return &MirrorService{
		wiki:      wiki,
		catalog:   catalog,
		extractor: extractor,
		state:     state,
		vcs:       vcs,
		cfg:       cfg,
		now:       time.Now,
	}
}

// categoryRun is the working state of one category during a run.
type categoryRun struct {
	name   string
	tally  *domain.Tally
	report *domain.CategoryReport
}

// Run replays recent edits onto initialised categories, then initialises
// the categories that have no tally yet.
func (s *MirrorService) Run(ctx context.Context) (*domain.SyncReport, error) {
	report := &domain.SyncReport{
		ID:         uuid.NewString(),
		StartedAt:  s.now(),
		Categories: make([]domain.CategoryReport, len(s.cfg.Categories)),
	}

	langs, err := s.languages(ctx)
	if err != nil {
		return report, err
	}

	if s.vcs != nil {
		if err := s.vcs.Init(ctx); err != nil {
			return report, fmt.Errorf("init repository: %w", err)
		}
	}

	var initialized, pending []*categoryRun
	for i, name := range s.cfg.Categories {
		report.Categories[i].Category = name
		run := &categoryRun{name: name, report: &report.Categories[i]}

		tally, err := s.state.Tally(ctx, name)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			pending = append(pending, run)
		case err != nil:
			return report, fmt.Errorf("load tally: %w", err)
		default:
			run.tally = tally
			initialized = append(initialized, run)
		}
	}

	// Updates come first so the timestamp is settled before a new
	// category is crawled.
	if err := s.update(ctx, langs, initialized, report); err != nil {
		return report, err
	}

	for _, run := range pending {
		if err := s.initialize(ctx, langs, run); err != nil {
			return report, err
		}
	}

	report.FinishedAt = s.now()
	logger.Info("sync %s: %d change(s), %d skipped page(s)", report.ID, report.Changes, report.SkippedCount())
	return report, nil
}

// update replays the recent-changes feed onto initialised categories.
func (s *MirrorService) update(ctx context.Context, langs driven.LanguageDirectory, runs []*categoryRun, report *domain.SyncReport) error {
	logger.Section("Update")

	since, err := s.state.Timestamp(ctx)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("load timestamp: %w", err)
	}

	changes, err := s.wiki.RecentChanges(ctx, since)
	if err != nil {
		return fmt.Errorf("fetch recent changes: %w", err)
	}
	domain.SortChanges(changes)
	report.Changes = len(changes)
	logger.Info("%d change(s) since %q", len(changes), since)

	for _, change := range changes {
		for _, run := range runs {
			if err := s.apply(ctx, langs, run, change); err != nil {
				return err
			}
		}
	}

	if len(changes) > 0 {
		last := changes[len(changes)-1].Timestamp
		if err := s.state.SaveTimestamp(ctx, last); err != nil {
			return fmt.Errorf("save timestamp: %w", err)
		}
		report.Timestamp = last
	} else {
		report.Timestamp = since
	}
	return nil
}

// apply replays one change onto one category.
// Changes to pages the category does not hold at the old revision, and
// changes already applied, are ignored.
func (s *MirrorService) apply(ctx context.Context, langs driven.LanguageDirectory, run *categoryRun, change domain.RevisionChange) error {
	if !run.tally.Has(change.PageID, change.OldRevisionID) || run.tally.Has(change.PageID, change.RevisionID) {
		return nil
	}

	rev, err := s.wiki.Revision(ctx, change.PageID, change.RevisionID)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		// The saved timestamp must not pass an edit that was never fetched,
		// or every later edit to the page would be ignored.
		if errors.Is(err, domain.ErrTransport) {
			return fmt.Errorf("fetch %q revision %d: %w", change.Title, change.RevisionID, err)
		}
		s.skip(run, change.PageID, change.Title, err)
		return nil
	}

	if _, err := s.extractor.Extract(langs, s.categoryDir(run.name), rev.Title, rev.Content); err != nil {
		if errors.Is(err, domain.ErrFilesystem) {
			return fmt.Errorf("extract %q: %w", rev.Title, err)
		}
		s.skip(run, change.PageID, rev.Title, err)
		return nil
	}

	run.tally.Advance(change.PageID, change.OldRevisionID, change.RevisionID)
	run.report.Applied++
	logger.Info("%s: %q %d -> %d", run.name, rev.Title, change.OldRevisionID, change.RevisionID)

	var modified []string
	if s.vcs != nil {
		if err := s.vcs.Stage(ctx, run.name); err != nil {
			return fmt.Errorf("stage %s: %w", run.name, err)
		}
		if modified, err = s.vcs.DiffStagedNames(ctx, run.name); err != nil {
			return fmt.Errorf("diff %s: %w", run.name, err)
		}
	}

	// The tally advances even when the edit changed no file.
	if err := s.state.SaveTally(ctx, run.name, run.tally); err != nil {
		return fmt.Errorf("save tally: %w", err)
	}
	if err := s.state.SaveTimestamp(ctx, change.Timestamp); err != nil {
		return fmt.Errorf("save timestamp: %w", err)
	}

	if len(modified) == 0 {
		logger.Debug("%s: %q changed no file", run.name, rev.Title)
		return nil
	}
	if err := s.vcs.Commit(ctx, CommitMessage(rev, modified), false); err != nil {
		return fmt.Errorf("commit %q: %w", rev.Title, err)
	}
	run.report.Commits++
	return nil
}

// initialize crawls every member of a category and records the baseline.
func (s *MirrorService) initialize(ctx context.Context, langs driven.LanguageDirectory, run *categoryRun) error {
	logger.Section("Initialise " + run.name)
	run.report.Initialized = true

	members, err := s.wiki.CategoryMembers(ctx, run.name)
	if err != nil {
		return fmt.Errorf("list %s: %w", run.name, err)
	}
	logger.Info("%s: %d member(s)", run.name, len(members))

	root := s.categoryDir(run.name)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrFilesystem, err)
	}

	tally := domain.NewTally()
	for _, member := range members {
		page, err := s.wiki.Page(ctx, member.PageID)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.skip(run, member.PageID, member.Title, err)
			continue
		}

		if _, err := s.extractor.Extract(langs, root, page.Title, page.Content); err != nil {
			if errors.Is(err, domain.ErrFilesystem) {
				return fmt.Errorf("extract %q: %w", page.Title, err)
			}
			s.skip(run, member.PageID, page.Title, err)
			continue
		}

		tally.Set(page.PageID, page.RevisionID)
		run.report.Extracted++
	}
	run.tally = tally

	if err := s.state.SaveTally(ctx, run.name, tally); err != nil {
		return fmt.Errorf("save tally: %w", err)
	}

	if s.vcs == nil {
		return nil
	}
	if err := s.vcs.Stage(ctx, run.name); err != nil {
		return fmt.Errorf("stage %s: %w", run.name, err)
	}
	if err := s.vcs.Commit(ctx, BaselineMessage(run.name), true); err != nil {
		return fmt.Errorf("commit %s baseline: %w", run.name, err)
	}
	run.report.Commits++
	return nil
}

func (s *MirrorService) skip(run *categoryRun, pageID uint64, title string, err error) {
	logger.Warn("%s: skipping %q (page %d): %v", run.name, title, pageID, err)
	run.report.Skipped = append(run.report.Skipped, domain.SkippedPage{
		PageID: pageID,
		Title:  title,
		Reason: err.Error(),
	})
}

// Status reports the persisted state of every configured category.
func (s *MirrorService) Status(ctx context.Context) ([]domain.CategoryStatus, string, error) {
	statuses := make([]domain.CategoryStatus, 0, len(s.cfg.Categories))
	for _, name := range s.cfg.Categories {
		status := domain.CategoryStatus{Category: name}
		tally, err := s.state.Tally(ctx, name)
		switch {
		case errors.Is(err, domain.ErrNotFound):
		case err != nil:
			return nil, "", fmt.Errorf("load tally: %w", err)
		default:
			status.Initialized = true
			status.Tasks = tally.Len()
		}
		statuses = append(statuses, status)
	}

	ts, err := s.state.Timestamp(ctx)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, "", fmt.Errorf("load timestamp: %w", err)
	}
	return statuses, ts, nil
}

// ExtractPage writes the latest revision of one page into a category
// directory. State and version control are left alone.
func (s *MirrorService) ExtractPage(ctx context.Context, category string, pageID uint64) ([]string, error) {
	if !s.configured(category) {
		return nil, fmt.Errorf("%w: category %q is not mirrored", domain.ErrInvalidInput, category)
	}

	langs, err := s.languages(ctx)
	if err != nil {
		return nil, err
	}

	page, err := s.wiki.Page(ctx, pageID)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}

	root := s.categoryDir(category)
	written, err := s.extractor.Extract(langs, root, page.Title, page.Content)
	paths := make([]string, 0, len(written))
	for _, p := range written {
		paths = append(paths, filepath.Join(root, p))
	}
	return paths, err
}

// configured reports whether category is one of the mirrored categories.
func (s *MirrorService) configured(category string) bool {
	for _, name := range s.cfg.Categories {
		if name == category {
			return true
		}
	}
	return false
}

// ExtractText writes the code blocks of local wikitext under root.
// The wiki is not contacted, so only the built-in language table applies.
func (s *MirrorService) ExtractText(_ context.Context, root, title, wikitext string) ([]string, error) {
	written, err := s.extractor.Extract(s.catalog.Directory(nil), root, title, wikitext)
	paths := make([]string, 0, len(written))
	for _, p := range written {
		paths = append(paths, filepath.Join(root, p))
	}
	return paths, err
}

// ResolveLanguage resolves a header label against the wiki's languages.
func (s *MirrorService) ResolveLanguage(ctx context.Context, raw string) (domain.Language, error) {
	langs, err := s.languages(ctx)
	if err != nil {
		return domain.Language{}, err
	}
	return langs.Resolve(raw), nil
}

func (s *MirrorService) languages(ctx context.Context) (driven.LanguageDirectory, error) {
	members, err := s.wiki.CategoryMembers(ctx, s.cfg.LanguageCategory)
	if err != nil {
		return nil, fmt.Errorf("list languages: %w", err)
	}
	logger.Debug("%d language page(s)", len(members))
	return s.catalog.Directory(members), nil
}

func (s *MirrorService) categoryDir(category string) string {
	return filepath.Join(s.cfg.Root, category)
}

// CommitMessage describes one replayed edit.
func CommitMessage(rev *domain.PageRevision, modified []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "task: %s\n", rev.Title)
	fmt.Fprintf(&b, "user: %s\n", rev.User)
	fmt.Fprintf(&b, "comment: %s\n", rev.Comment)
	fmt.Fprintf(&b, "timestamp: %s\n", rev.Timestamp)
	fmt.Fprintf(&b, "modified: %s\n", strings.Join(modified, "\n"))
	return b.String()
}

// BaselineMessage is the message of a category's first commit.
func BaselineMessage(category string) string {
	return category + ": initial commit"
}
