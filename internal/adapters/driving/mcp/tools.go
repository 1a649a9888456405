package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/prospector/internal/core/domain"
)

// defaultDiscoverLimit caps prospects returned by discover_prospects.
const defaultDiscoverLimit = 25

// ICPInput is the input schema shared by the ICP tools.
type ICPInput struct {
	ICP   map[string]any `json:"icp" jsonschema:"ideal customer profile, e.g. target_roles, industries, company_size, pain_points, technologies"`
	Limit int            `json:"limit,omitempty" jsonschema:"maximum number of prospects to return (default 25)"`
}

// DiscoverOutput is the output schema for the discover_prospects tool.
type DiscoverOutput struct {
	RunID             string           `json:"run_id"`
	Prospects         []ProspectOutput `json:"prospects"`
	Count             int              `json:"count"`
	SuccessfulSources []string         `json:"successful_sources"`
	FailedSources     []string         `json:"failed_sources"`
	SkippedSources    []string         `json:"skipped_sources,omitempty"`
	ExecutionTime     float64          `json:"execution_time_seconds"`
}

// ProspectOutput is a single prospect.
type ProspectOutput struct {
	Name           string  `json:"name"`
	Title          string  `json:"title,omitempty"`
	Company        string  `json:"company,omitempty"`
	Email          string  `json:"email,omitempty"`
	Website        string  `json:"website,omitempty"`
	Location       string  `json:"location,omitempty"`
	Platform       string  `json:"platform"`
	SourceURL      string  `json:"source_url"`
	RelevanceScore float64 `json:"relevance_score"`
}

// SelectOutput is the output schema for the select_sources tool.
type SelectOutput struct {
	Sources []SelectedSource `json:"sources"`
}

// SelectedSource is one ranked platform and its query plan.
type SelectedSource struct {
	Platform        string   `json:"platform"`
	Priority        int      `json:"priority"`
	MaxResults      int      `json:"max_results"`
	PrimaryQueries  []string `json:"primary_queries"`
	FallbackQueries []string `json:"fallback_queries,omitempty"`
}

// ListSourcesInput takes no arguments.
type ListSourcesInput struct{}

// ListSourcesOutput is the output schema for the list_sources tool.
type ListSourcesOutput struct {
	Sources []SourceOutput `json:"sources"`
}

// SourceOutput is one platform's configuration.
type SourceOutput struct {
	Platform       string  `json:"platform"`
	Enabled        bool    `json:"enabled"`
	Priority       int     `json:"priority"`
	MaxResults     int     `json:"max_results"`
	RateLimitDelay float64 `json:"rate_limit_delay"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "discover_prospects",
		Description: "Search the best-matching platforms for prospects that fit an ideal customer profile",
	}, s.handleDiscover)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "select_sources",
		Description: "Rank platforms for an ideal customer profile and show the queries each would run",
	}, s.handleSelect)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_sources",
		Description: "List per-platform source configuration",
	}, s.handleListSources)
}

func (s *Server) handleDiscover(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ICPInput,
) (*mcp.CallToolResult, DiscoverOutput, error) {
	if len(input.ICP) == 0 {
		return nil, DiscoverOutput{}, fmt.Errorf("%w: icp is required", domain.ErrInvalidInput)
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultDiscoverLimit
	}

	result, err := s.ports.Discovery.Discover(ctx, domain.ICP(input.ICP))
	if err != nil {
		return nil, DiscoverOutput{}, err
	}

	prospects := result.Prospects
	if len(prospects) > limit {
		prospects = prospects[:limit]
	}

	output := DiscoverOutput{
		RunID:             result.RunID,
		Prospects:         make([]ProspectOutput, len(prospects)),
		Count:             len(prospects),
		SuccessfulSources: platformNames(result.SuccessfulSources),
		FailedSources:     platformNames(result.FailedSources),
		SkippedSources:    platformNames(result.SkippedSources),
		ExecutionTime:     result.TotalExecutionTime,
	}
	for i := range prospects {
		p := &prospects[i]
		output.Prospects[i] = ProspectOutput{
			Name:           p.Name,
			Title:          p.Title,
			Company:        p.Company,
			Email:          p.Email,
			Website:        p.Website,
			Location:       p.Location,
			Platform:       string(p.SourcePlatform),
			SourceURL:      p.SourceURL,
			RelevanceScore: p.RelevanceScore,
		}
	}

	return nil, output, nil
}

func (s *Server) handleSelect(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ICPInput,
) (*mcp.CallToolResult, SelectOutput, error) {
	if len(input.ICP) == 0 {
		return nil, SelectOutput{}, fmt.Errorf("%w: icp is required", domain.ErrInvalidInput)
	}
	icp := domain.ICP(input.ICP)

	configs := s.ports.Selector.AnalyzeICP(icp)
	platforms := make([]domain.Platform, len(configs))
	for i, cfg := range configs {
		platforms[i] = cfg.Platform
	}
	strategies := s.ports.Selector.Strategies(platforms, icp)

	output := SelectOutput{Sources: make([]SelectedSource, len(configs))}
	for i, cfg := range configs {
		strategy := strategies[cfg.Platform]
		output.Sources[i] = SelectedSource{
			Platform:        string(cfg.Platform),
			Priority:        cfg.Priority,
			MaxResults:      cfg.MaxResults,
			PrimaryQueries:  strategy.PrimaryQueries,
			FallbackQueries: strategy.FallbackQueries,
		}
	}

	return nil, output, nil
}

func (s *Server) handleListSources(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListSourcesInput,
) (*mcp.CallToolResult, ListSourcesOutput, error) {
	sources, err := s.sourceOutputs(ctx)
	if err != nil {
		return nil, ListSourcesOutput{}, err
	}
	return nil, ListSourcesOutput{Sources: sources}, nil
}

// sourceOutputs lists configured sources; no source service means none.
func (s *Server) sourceOutputs(ctx context.Context) ([]SourceOutput, error) {
	if s.ports.Source == nil {
		return []SourceOutput{}, nil
	}

	configs, err := s.ports.Source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sources: %w", err)
	}

	out := make([]SourceOutput, len(configs))
	for i, cfg := range configs {
		out[i] = SourceOutput{
			Platform:       string(cfg.Platform),
			Enabled:        cfg.Enabled,
			Priority:       cfg.Priority,
			MaxResults:     cfg.MaxResults,
			RateLimitDelay: cfg.RateLimitDelay,
		}
	}
	return out, nil
}

func platformNames(platforms []domain.Platform) []string {
	names := make([]string, len(platforms))
	for i, p := range platforms {
		names[i] = string(p)
	}
	return names
}
