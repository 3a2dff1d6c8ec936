package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/rosetta-mirror/internal/core/domain"
	"github.com/custodia-labs/rosetta-mirror/internal/core/ports/driving"
	"github.com/custodia-labs/rosetta-mirror/internal/core/services"
)

// mockMirrorService implements driving.MirrorService for testing.
type mockMirrorService struct {
	report   *domain.SyncReport
	runErr   error
	statuses []domain.CategoryStatus
	stamp    string

	extracted   []string
	extractErr  error
	extractArgs []string
	langs       map[string]domain.Language
	onRun       func()
}

func (m *mockMirrorService) Run(_ context.Context) (*domain.SyncReport, error) {
	if m.onRun != nil {
		m.onRun()
	}
	return m.report, m.runErr
}

func (m *mockMirrorService) Status(_ context.Context) ([]domain.CategoryStatus, string, error) {
	return m.statuses, m.stamp, nil
}

func (m *mockMirrorService) ExtractPage(_ context.Context, category string, _ uint64) ([]string, error) {
	m.extractArgs = []string{category}
	return m.extracted, m.extractErr
}

func (m *mockMirrorService) ExtractText(_ context.Context, root, title, wikitext string) ([]string, error) {
	m.extractArgs = []string{root, title, wikitext}
	return m.extracted, m.extractErr
}

func (m *mockMirrorService) ResolveLanguage(_ context.Context, raw string) (domain.Language, error) {
	lang, ok := m.langs[raw]
	if !ok {
		return domain.Language{}, errors.New("wiki unavailable")
	}
	return lang, nil
}

func setupMirrorTest(svc driving.MirrorService) func() {
	oldMirror := mirrorService
	mirrorService = svc
	return func() {
		mirrorService = oldMirror
	}
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestSyncCmd_Use(t *testing.T) {
	assert.Equal(t, "sync", syncCmd.Use)
}

func TestSyncCmd_Long(t *testing.T) {
	assert.Contains(t, syncCmd.Long, "recent wiki edits")
	assert.Contains(t, syncCmd.Long, "baseline")
}

func TestSyncCmd_PrintsReport(t *testing.T) {
	cleanup := setupMirrorTest(&mockMirrorService{
		report: &domain.SyncReport{
			ID:        "run-1",
			Changes:   3,
			Timestamp: "2024-01-02T00:00:00Z",
			Categories: []domain.CategoryReport{
				{Category: "Programming_Tasks", Applied: 2, Commits: 1},
				{
					Category:    "Simple",
					Initialized: true,
					Extracted:   4,
					Commits:     1,
					Skipped:     []domain.SkippedPage{{PageID: 9, Title: "Broken", Reason: "malformed page"}},
				},
			},
		},
	})
	defer cleanup()

	out, err := execute(t, "sync")

	require.NoError(t, err)
	assert.Contains(t, out, "Synchronising mirror...")
	assert.Contains(t, out, "Run run-1: 3 recent change(s)")
	assert.Contains(t, out, "Programming_Tasks: 2 edit(s) applied, 1 commit(s)")
	assert.Contains(t, out, "Simple: initialised, 4 page(s) extracted, 1 commit(s)")
	assert.Contains(t, out, `skipped "Broken" (page 9): malformed page`)
	assert.Contains(t, out, "Last change: 2024-01-02T00:00:00Z")
	assert.Contains(t, out, "Mirror synchronised successfully.")
}

func TestSyncCmd_ServiceError(t *testing.T) {
	cleanup := setupMirrorTest(&mockMirrorService{
		report: &domain.SyncReport{ID: "run-2"},
		runErr: domain.ErrVersionControl,
	})
	defer cleanup()

	out, err := execute(t, "sync")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrVersionControl)
	assert.Contains(t, err.Error(), "sync failed")
	assert.Contains(t, out, "Run run-2")
	assert.NotContains(t, out, "successfully")
}

func TestSyncCmd_ServiceNotConfigured(t *testing.T) {
	cleanup := setupMirrorTest(nil)
	defer cleanup()
	oldFactory := newMirrorService
	newMirrorService = nil
	defer func() { newMirrorService = oldFactory }()

	_, err := execute(t, "sync")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "mirror service not configured")
}

func TestSyncCmd_RejectsArgs(t *testing.T) {
	cleanup := setupMirrorTest(&mockMirrorService{})
	defer cleanup()

	_, err := execute(t, "sync", "extra")

	assert.Error(t, err)
}

func TestSyncCmd_Watch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc := &mockMirrorService{
		report: &domain.SyncReport{ID: "run-3"},
		onRun:  cancel,
	}
	cleanup := setupMirrorTest(svc)
	defer cleanup()
	defer func() {
		syncWatch = false
		syncInterval = services.DefaultWatchInterval
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"sync", "--watch", "--interval", "1h"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetContext(context.Background())
	}()

	err := rootCmd.ExecuteContext(ctx)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "every 1h0m0s")
	assert.Contains(t, buf.String(), "Run run-3")
	assert.Contains(t, buf.String(), "Stopped watching.")
}
