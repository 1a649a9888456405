package mcp

import (
	"github.com/custodia-labs/prospector/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Discovery runs prospect discovery.
	Discovery driving.DiscoveryService

	// Selector ranks sources for an ICP.
	Selector driving.SourceSelector

	// Source manages source configurations. Optional.
	Source driving.SourceService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Discovery == nil {
		return ErrMissingDiscoveryService
	}
	if p.Selector == nil {
		return ErrMissingSelector
	}
	return nil
}
