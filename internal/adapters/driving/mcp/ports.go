package mcp

import (
	"github.com/custodia-labs/rosetta-mirror/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Mirror reads mirror state and extracts pages.
	Mirror driving.MirrorService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Mirror == nil {
		return ErrMissingMirrorService
	}
	return nil
}
