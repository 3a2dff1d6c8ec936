package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/rosetta-mirror/internal/core/domain"
)

// watchMockMirror counts runs and fails the ones listed in failOn.
type watchMockMirror struct {
	mu     sync.Mutex
	runs   int
	failOn map[int]error
}

func (m *watchMockMirror) Run(_ context.Context) (*domain.SyncReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs++
	return &domain.SyncReport{ID: "run"}, m.failOn[m.runs]
}

func (m *watchMockMirror) Status(_ context.Context) ([]domain.CategoryStatus, string, error) {
	return nil, "", nil
}

func (m *watchMockMirror) ExtractPage(_ context.Context, _ string, _ uint64) ([]string, error) {
	return nil, nil
}

func (m *watchMockMirror) ExtractText(_ context.Context, _, _, _ string) ([]string, error) {
	return nil, nil
}

func (m *watchMockMirror) ResolveLanguage(_ context.Context, _ string) (domain.Language, error) {
	return domain.Language{}, nil
}

func (m *watchMockMirror) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runs
}

func TestNewWatcher_DefaultInterval(t *testing.T) {
	w := NewWatcher(&watchMockMirror{}, 0, nil)

	assert.Equal(t, DefaultWatchInterval, w.Interval())
}

func TestWatcher_RunsUntilStopped(t *testing.T) {
	mirror := &watchMockMirror{}
	var w *Watcher
	var errs []error
	w = NewWatcher(mirror, time.Millisecond, func(_ *domain.SyncReport, err error) {
		errs = append(errs, err)
		if len(errs) == 3 {
			w.Stop()
		}
	})

	err := w.Start(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, mirror.count())
	assert.Equal(t, []error{nil, nil, nil}, errs)
}

func TestWatcher_ContinuesAfterFailure(t *testing.T) {
	mirror := &watchMockMirror{failOn: map[int]error{1: domain.ErrTransport}}
	var w *Watcher
	var errs []error
	w = NewWatcher(mirror, time.Millisecond, func(_ *domain.SyncReport, err error) {
		errs = append(errs, err)
		if len(errs) == 2 {
			w.Stop()
		}
	})

	err := w.Start(context.Background())

	require.NoError(t, err)
	require.Len(t, errs, 2)
	assert.ErrorIs(t, errs[0], domain.ErrTransport)
	assert.NoError(t, errs[1])
}

func TestWatcher_StopsOnCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	mirror := &watchMockMirror{}
	w := NewWatcher(mirror, time.Hour, func(*domain.SyncReport, error) {
		cancel()
	})

	err := w.Start(ctx)

	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 1, mirror.count())
}

func TestWatcher_StopWhenIdle(t *testing.T) {
	w := NewWatcher(&watchMockMirror{}, time.Hour, nil)

	assert.NotPanics(t, w.Stop)
}
