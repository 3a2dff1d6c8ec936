package domain

import "time"

// SkippedPage is a page whose extraction failed during a run.
// The run continues; the page is reported instead of silently dropped.
type SkippedPage struct {
	PageID uint64
	Title  string
	Reason string
}

// CategoryReport summarises the work done for one category in a run.
type CategoryReport struct {
	Category string

	// Initialized is true when this run performed the category's full crawl.
	Initialized bool

	// Extracted is the number of pages written during a full crawl.
	Extracted int

	// Applied is the number of edits replayed onto the tally.
	Applied int

	// Commits is the number of commits recorded.
	Commits int

	Skipped []SkippedPage
}

// SyncReport summarises a whole run.
type SyncReport struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time

	// Changes is the number of recent-changes entries fetched.
	Changes int

	// Timestamp is the last recent-changes timestamp persisted.
	Timestamp string

	Categories []CategoryReport
}

// SkippedCount returns the number of skipped pages across categories.
func (r *SyncReport) SkippedCount() int {
	n := 0
	for _, c := range r.Categories {
		n += len(c.Skipped)
	}
	return n
}

// CategoryStatus describes the persisted state of one category.
type CategoryStatus struct {
	Category    string
	Initialized bool
	Tasks       int
}
