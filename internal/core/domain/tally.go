package domain

import (
	"encoding/json"
	"sort"
)

// MirroredTask records that a page, at a revision, has been fully
// extracted to disk.
type MirroredTask struct {
	PageID     uint64 `json:"pageid"`
	RevisionID uint64 `json:"revid"`
}

// Tally is the set of mirrored tasks of one category.
//
// It is keyed by page so that a page has at most one live revision.
// Advance replaces the revision of a page in a single step.
type Tally struct {
	revisions map[uint64]uint64
}

// NewTally creates a tally holding the given tasks.
// When a page appears more than once, the last entry wins.
func NewTally(tasks ...MirroredTask) *Tally {
	t := &Tally{revisions: make(map[uint64]uint64, len(tasks))}
	for _, task := range tasks {
		t.revisions[task.PageID] = task.RevisionID
	}
	return t
}

// Has reports whether the tally holds exactly (pageID, revisionID).
func (t *Tally) Has(pageID, revisionID uint64) bool {
	rev, ok := t.revisions[pageID]
	return ok && rev == revisionID
}

// Revision returns the mirrored revision of a page.
func (t *Tally) Revision(pageID uint64) (uint64, bool) {
	rev, ok := t.revisions[pageID]
	return rev, ok
}

// Set records the revision of a page, replacing any previous one.
// The zero Tally is empty and ready to use.
func (t *Tally) Set(pageID, revisionID uint64) {
	if t.revisions == nil {
		t.revisions = make(map[uint64]uint64)
	}
	t.revisions[pageID] = revisionID
}

// Advance moves a page from oldRevisionID to revisionID.
// It returns false and leaves the tally untouched when the page is not
// currently mirrored at oldRevisionID.
func (t *Tally) Advance(pageID, oldRevisionID, revisionID uint64) bool {
	if !t.Has(pageID, oldRevisionID) {
		return false
	}
	t.Set(pageID, revisionID)
	return true
}

// Len returns the number of mirrored pages.
func (t *Tally) Len() int {
	return len(t.revisions)
}

// Tasks returns the mirrored tasks ordered by page ID.
func (t *Tally) Tasks() []MirroredTask {
	tasks := make([]MirroredTask, 0, len(t.revisions))
	for page, rev := range t.revisions {
		tasks = append(tasks, MirroredTask{PageID: page, RevisionID: rev})
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].PageID < tasks[j].PageID
	})
	return tasks
}

// Clone returns an independent copy of the tally.
func (t *Tally) Clone() *Tally {
	return NewTally(t.Tasks()...)
}

// MarshalJSON encodes the tally as a list of {pageid, revid} objects.
func (t *Tally) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Tasks())
}

// UnmarshalJSON decodes a list of {pageid, revid} objects.
func (t *Tally) UnmarshalJSON(data []byte) error {
	var tasks []MirroredTask
	if err := json.Unmarshal(data, &tasks); err != nil {
		return err
	}
	*t = *NewTally(tasks...)
	return nil
}
