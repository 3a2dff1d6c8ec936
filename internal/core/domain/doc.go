// Package domain defines the core business entities for rosetta-mirror.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - CategoryMember: A wiki page listed in a tracked category
//   - RevisionChange: One entry of the recent-changes feed
//   - PageRevision: The content of one page at one revision
//   - Tally: The set of (page, revision) pairs already mirrored
//   - Language: A resolved language header (name, slug, extension)
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
