// Package mediawiki provides a client for the MediaWiki query API.
//
// # Pagination
//
// List queries are paginated by the server. Each response may carry a
// "continue" object whose keys and values must be echoed verbatim on the
// next request; the client never interprets them. Query drives this loop
// for any result type implementing Batch and merges every page into one
// value. The loop ends when a response carries no continuation.
//
// # Rate Limiting
//
// Requests are paced by a token bucket. Responses with status 429 or 503,
// and "maxlag" API errors, are retried after the server's Retry-After
// delay up to MaxRetries times.
//
// # Queries
//
//   - CategoryMembers: every page of a category (cmlimit=200)
//   - RecentChanges: every edit since a timestamp (rclimit=500, rcdir=newer)
//   - Page: latest revision content of a page
//   - Revision: content of a page at a given revision (rvstartid, rvlimit=1)
package mediawiki
