// Package languages resolves the language labels found in task pages.
//
// A Table is parsed once from the embedded languages.yaml and never
// modified. A Directory combines a Table with the wiki's list of language
// pages, which supplies display names. Resolution never fails: a label
// unknown to both falls back to its own slug as the file extension.
package languages
