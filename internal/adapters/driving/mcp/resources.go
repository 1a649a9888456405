package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for prospector resources.
const uriScheme = "prospector://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "sources",
		Name:        "sources",
		Description: "Configuration of every platform source",
		MIMEType:    "application/json",
	}, s.handleSourcesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "sources/{platform}",
		Name:        "source",
		Description: "Configuration of one platform, including its search parameters",
		MIMEType:    "application/json",
	}, s.handleSourceResource)
}

// handleSourcesResource returns every source configuration.
func (s *Server) handleSourcesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	sources, err := s.sourceOutputs(ctx)
	if err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, sources)
}

// handleSourceResource returns the full configuration of one platform.
func (s *Server) handleSourceResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Source == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	platform := extractPlatform(req.Params.URI)
	if platform == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	cfg, err := s.ports.Source.Get(ctx, platform)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return jsonResource(req.Params.URI, cfg)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractPlatform extracts the platform from a URI like prospector://sources/{platform}.
func extractPlatform(uri string) string {
	const prefix = uriScheme + "sources/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	platform := strings.TrimPrefix(uri, prefix)
	if strings.Contains(platform, "/") {
		return ""
	}
	return platform
}
