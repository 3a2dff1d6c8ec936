package mediawiki

import (
	"encoding/json"

	"github.com/custodia-labs/rosetta-mirror/internal/core/domain"
)

// envelope is the top level of every API response.
type envelope struct {
	Query    json.RawMessage `json:"query"`
	Continue json.RawMessage `json:"continue"`
	Error    *struct {
		Code string `json:"code"`
		Info string `json:"info"`
	} `json:"error"`
}

// CategoryMembersResult is the result of list=categorymembers.
type CategoryMembersResult struct {
	Members []domain.CategoryMember `json:"categorymembers"`
}

// Merge implements Batch.
func (r CategoryMembersResult) Merge(next CategoryMembersResult) CategoryMembersResult {
	r.Members = append(r.Members, next.Members...)
	return r
}

// RecentChangesResult is the result of list=recentchanges.
type RecentChangesResult struct {
	Changes []domain.RevisionChange `json:"recentchanges"`
}

// Merge implements Batch.
func (r RecentChangesResult) Merge(next RecentChangesResult) RecentChangesResult {
	r.Changes = append(r.Changes, next.Changes...)
	return r
}

// PagesResult is the result of prop=revisions.
type PagesResult struct {
	Pages []Page `json:"pages"`
}

// Merge implements Batch.
func (r PagesResult) Merge(next PagesResult) PagesResult {
	r.Pages = append(r.Pages, next.Pages...)
	return r
}

// Page is one entry of query.pages.
type Page struct {
	PageID    uint64     `json:"pageid"`
	Title     string     `json:"title"`
	Missing   bool       `json:"missing"`
	Revisions []Revision `json:"revisions"`
}

// Revision is one entry of a page's revisions.
type Revision struct {
	RevID     uint64 `json:"revid"`
	Timestamp string `json:"timestamp"`
	User      string `json:"user"`
	Comment   string `json:"comment"`
	Content   string `json:"content"`
	Slots     struct {
		Main struct {
			Content string `json:"content"`
		} `json:"main"`
	} `json:"slots"`
}

// Text returns the wikitext of the revision, with or without slots.
func (r Revision) Text() string {
	if r.Content != "" {
		return r.Content
	}
	return r.Slots.Main.Content
}
