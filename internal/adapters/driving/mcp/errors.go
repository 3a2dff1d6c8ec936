// Package mcp provides an MCP (Model Context Protocol) server adapter for
// the mirror. It lets AI assistants inspect the mirror, resolve language
// names and extract single pages.
package mcp

import "errors"

// ErrMissingMirrorService is returned when the mirror service is not provided.
var ErrMissingMirrorService = errors.New("mcp: mirror service is required")
