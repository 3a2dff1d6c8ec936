package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortChanges_Ascending(t *testing.T) {
	changes := []RevisionChange{
		{PageID: 1, RevisionID: 3, Timestamp: "2024-03-01T10:00:02Z"},
		{PageID: 1, RevisionID: 1, Timestamp: "2024-03-01T10:00:00Z"},
		{PageID: 1, RevisionID: 2, Timestamp: "2024-03-01T10:00:01Z"},
	}

	SortChanges(changes)

	assert.Equal(t, uint64(1), changes[0].RevisionID)
	assert.Equal(t, uint64(2), changes[1].RevisionID)
	assert.Equal(t, uint64(3), changes[2].RevisionID)
}

func TestSortChanges_StableForEqualTimestamps(t *testing.T) {
	changes := []RevisionChange{
		{PageID: 1, RevisionID: 10, Timestamp: "2024-03-01T10:00:00Z"},
		{PageID: 2, RevisionID: 20, Timestamp: "2024-03-01T10:00:00Z"},
		{PageID: 3, RevisionID: 30, Timestamp: "2024-02-01T10:00:00Z"},
	}

	SortChanges(changes)

	assert.Equal(t, []uint64{3, 1, 2}, []uint64{changes[0].PageID, changes[1].PageID, changes[2].PageID})
}

func TestStripCategoryPrefix(t *testing.T) {
	assert.Equal(t, "Python", StripCategoryPrefix("Category:Python"))
	assert.Equal(t, "Python", StripCategoryPrefix("Python"))
	assert.Equal(t, "", StripCategoryPrefix("Category:"))
}

func TestSyncReport_SkippedCount(t *testing.T) {
	report := SyncReport{
		Categories: []CategoryReport{
			{Category: "Simple", Skipped: []SkippedPage{{PageID: 1}, {PageID: 2}}},
			{Category: "Programming_Tasks"},
			{Category: "Draft_Programming_Tasks", Skipped: []SkippedPage{{PageID: 3}}},
		},
	}

	assert.Equal(t, 3, report.SkippedCount())
}
