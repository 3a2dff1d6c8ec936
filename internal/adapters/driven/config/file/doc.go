// Package file provides a TOML file implementation of driven.ConfigStore.
//
// Values are addressed by dotted keys ("api.url") and stored as nested
// tables:
//
//	[api]
//	url = "https://rosettacode.org/w/api.php"
//
//	[git]
//	enabled = true
package file
