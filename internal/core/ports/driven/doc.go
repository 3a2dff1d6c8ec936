// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - WikiClient: Reads category members, recent changes and page revisions
//   - LanguageCatalog: Builds a LanguageDirectory from the wiki's language list
//   - LanguageDirectory: Resolves raw language tags to a slug and extension
//   - Extractor: Writes the code blocks of one task page to disk
//   - StateStore: Tally and recent-changes timestamp persistence
//   - VersionControl: Staging, diffing and committing the mirror tree
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or extractor package
package driven
