// Package git implements driven.VersionControl by running the git binary.
//
// Every command runs with "-C <root>" so the process working directory
// does not matter. The author identity is passed with "-c" options and
// never written to the repository configuration.
package git
