// Package mcp provides an MCP (Model Context Protocol) server adapter for prospector.
// It lets AI assistants run prospect discovery and inspect source configuration.
package mcp

import "errors"

// ErrMissingDiscoveryService is returned when the discovery service is not provided.
var ErrMissingDiscoveryService = errors.New("mcp: discovery service is required")

// ErrMissingSelector is returned when the source selector is not provided.
var ErrMissingSelector = errors.New("mcp: source selector is required")
