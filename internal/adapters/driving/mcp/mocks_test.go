package mcp

import (
	"context"

	"github.com/custodia-labs/rosetta-mirror/internal/core/domain"
)

// mockMirrorService is a mock implementation of driving.MirrorService.
type mockMirrorService struct {
	statuses []domain.CategoryStatus
	stamp    string
	paths    []string
	langs    map[string]domain.Language
	err      error

	extractCategory string
	extractPageID   uint64
}

func (m *mockMirrorService) Run(_ context.Context) (*domain.SyncReport, error) {
	return nil, m.err
}

func (m *mockMirrorService) Status(_ context.Context) ([]domain.CategoryStatus, string, error) {
	return m.statuses, m.stamp, m.err
}

func (m *mockMirrorService) ExtractPage(_ context.Context, category string, pageID uint64) ([]string, error) {
	m.extractCategory = category
	m.extractPageID = pageID
	return m.paths, m.err
}

func (m *mockMirrorService) ExtractText(_ context.Context, _, _, _ string) ([]string, error) {
	return m.paths, m.err
}

func (m *mockMirrorService) ResolveLanguage(_ context.Context, raw string) (domain.Language, error) {
	if m.err != nil {
		return domain.Language{}, m.err
	}
	return m.langs[raw], nil
}
