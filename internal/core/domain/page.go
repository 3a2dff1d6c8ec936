package domain

import (
	"sort"
	"strings"
)

// CategoryMember identifies a wiki page belonging to a category.
type CategoryMember struct {
	// PageID is the wiki's stable page identifier.
	PageID uint64 `json:"pageid"`

	// Title is the page title, including any namespace prefix.
	Title string `json:"title"`
}

// RevisionChange is one entry of the recent-changes feed.
// It represents the transition of a page from OldRevisionID to RevisionID.
type RevisionChange struct {
	PageID        uint64 `json:"pageid"`
	OldRevisionID uint64 `json:"old_revid"`
	RevisionID    uint64 `json:"revid"`

	// Timestamp is the ISO-8601 time of the edit as emitted by the wiki.
	Timestamp string `json:"timestamp"`

	Title string `json:"title"`
}

// SortChanges orders changes by ascending timestamp.
// Edits with the same timestamp keep their feed order.
func SortChanges(changes []RevisionChange) {
	sort.SliceStable(changes, func(i, j int) bool {
		return changes[i].Timestamp < changes[j].Timestamp
	})
}

// PageRevision is the content of one page at one revision.
type PageRevision struct {
	PageID     uint64
	RevisionID uint64
	Title      string
	Timestamp  string

	// User is the editor who produced this revision.
	User string

	// Comment is the edit summary.
	Comment string

	// Content is the raw wikitext.
	Content string
}

// CategoryPrefix is the namespace prefix of category pages.
const CategoryPrefix = "Category:"

// StripCategoryPrefix removes the category namespace from a page title.
func StripCategoryPrefix(title string) string {
	return strings.TrimPrefix(title, CategoryPrefix)
}
