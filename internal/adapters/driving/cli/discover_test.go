package cli

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/prospector/internal/core/domain"
)

const testICP = `{"target_roles": ["CTO"], "industries": ["saas"], "technologies": ["kubernetes"]}`

func writeICP(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "icp.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func sampleRun() *domain.MultiSourceResult {
	return &domain.MultiSourceResult{
		RunID: "run-42",
		Prospects: []domain.Prospect{
			{Name: "Ada Lovelace", Title: "CTO", Company: "Engines", SourcePlatform: domain.PlatformGitHub,
				SourceURL: "https://github.com/ada", RelevanceScore: 0.91},
			{Name: "Grace Hopper", Company: "Navy", SourcePlatform: domain.PlatformReddit,
				SourceURL: "https://reddit.com/u/grace", RelevanceScore: 0.72},
			{Name: "Linus", SourcePlatform: domain.PlatformHackerNews,
				SourceURL: "https://news.ycombinator.com/user?id=linus", RelevanceScore: 0.4},
		},
		SuccessfulSources:  []domain.Platform{domain.PlatformGitHub, domain.PlatformReddit},
		FailedSources:      []domain.Platform{domain.PlatformTwitter},
		SkippedSources:     []domain.Platform{domain.PlatformMeetup},
		TotalExecutionTime: 2.25,
	}
}

func TestDiscoverCmd_Flags(t *testing.T) {
	for _, name := range []string{"icp", "json", "limit", "enrich"} {
		assert.NotNil(t, discoverCmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, "25", discoverCmd.Flags().Lookup("limit").DefValue)
}

func TestDiscoverCmd_RequiresICP(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, nil, "discover")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--icp is required")
}

func TestDiscoverCmd_ServiceNotConfigured(t *testing.T) {
	_, err := execute(t, nil, "discover", "--icp", writeICP(t, testICP))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "discovery service not configured")
}

func TestDiscoverCmd_PrintsTable(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.discovery.result = sampleRun()

	out, err := execute(t, nil, "discover", "--icp", writeICP(t, testICP))

	require.NoError(t, err)
	assert.Contains(t, out, "Run run-42")
	assert.Contains(t, out, "github, reddit")
	assert.Contains(t, out, "twitter")
	assert.Contains(t, out, "meetup")
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "0.91")
	assert.NotContains(t, out, "\x1b[", "no ANSI codes when not writing to a terminal")
	assert.Equal(t, []string{"CTO"}, ts.discovery.icp.Strings("target_roles"))
}

func TestDiscoverCmd_ReadsStdin(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, strings.NewReader(testICP), "discover", "--icp", "-")

	require.NoError(t, err)
	assert.Equal(t, []string{"saas"}, ts.discovery.icp.Strings("industries"))
}

func TestDiscoverCmd_InvalidICP(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
		want string
	}{
		{name: "missing file", path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.json") }, want: "read ICP"},
		{name: "not json", path: func(t *testing.T) string { return writeICP(t, "roles: CTO") }, want: "parse ICP"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, cleanup := setupTestServices()
			defer cleanup()

			_, err := execute(t, nil, "discover", "--icp", tt.path(t))

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDiscoverCmd_Limit(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.discovery.result = sampleRun()

	out, err := execute(t, nil, "discover", "--icp", writeICP(t, testICP), "--limit", "1")

	require.NoError(t, err)
	assert.Contains(t, out, "Ada Lovelace")
	assert.NotContains(t, out, "Grace Hopper")
}

func TestDiscoverCmd_JSON(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.discovery.result = sampleRun()

	out, err := execute(t, nil, "discover", "--icp", writeICP(t, testICP), "--json")

	require.NoError(t, err)
	var doc struct {
		Run struct {
			RunID     string            `json:"run_id"`
			Prospects []domain.Prospect `json:"prospects"`
		} `json:"run"`
		Enrichment *domain.EnrichmentResult `json:"enrichment"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "run-42", doc.Run.RunID)
	assert.Len(t, doc.Run.Prospects, 3)
	assert.Nil(t, doc.Enrichment)
}

func TestDiscoverCmd_NoProspects(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, nil, "discover", "--icp", writeICP(t, testICP))

	require.NoError(t, err)
	assert.Contains(t, out, "No prospects found.")
}

func TestDiscoverCmd_DiscoveryError(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.discovery.err = domain.ErrNoUsableSources

	_, err := execute(t, nil, "discover", "--icp", writeICP(t, testICP))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoUsableSources)
}

func TestDiscoverCmd_Enrich(t *testing.T) {
	t.Run("prints outreach", func(t *testing.T) {
		ts, cleanup := setupTestServices()
		defer cleanup()
		ts.discovery.result = sampleRun()
		ts.enrichment.result = &domain.EnrichmentResult{
			Enriched: []domain.EnrichedProspect{{Prospect: sampleRun().Prospects[0], URL: "https://ada.dev"}},
			Outreach: []domain.Outreach{{ProspectName: "Ada Lovelace", Subject: "Faster builds", Message: "Hi Ada, ..."}},
			Excluded: []string{"https://reddit.com/u/grace"},
		}

		out, err := execute(t, nil, "discover", "--icp", writeICP(t, testICP), "--enrich", "--limit", "2")

		require.NoError(t, err)
		assert.Len(t, ts.enrichment.got, 2)
		assert.Contains(t, out, "Enriched 1 prospects")
		assert.Contains(t, out, "excluded: https://reddit.com/u/grace")
		assert.Contains(t, out, "To: Ada Lovelace")
		assert.Contains(t, out, "Subject: Faster builds")
		assert.Contains(t, out, "Hi Ada, ...")
	})

	t.Run("partial result is still printed", func(t *testing.T) {
		ts, cleanup := setupTestServices()
		defer cleanup()
		ts.discovery.result = sampleRun()
		ts.enrichment.result = &domain.EnrichmentResult{
			Enriched: []domain.EnrichedProspect{{Prospect: sampleRun().Prospects[0]}},
		}
		ts.enrichment.err = errors.New("generate outreach: quota")

		out, err := execute(t, nil, "discover", "--icp", writeICP(t, testICP), "--enrich")

		require.NoError(t, err)
		assert.Contains(t, out, "Enriched 1 prospects")
	})

	t.Run("hard failure", func(t *testing.T) {
		ts, cleanup := setupTestServices()
		defer cleanup()
		ts.discovery.result = sampleRun()
		ts.enrichment.err = domain.ErrScraperUnavailable

		_, err := execute(t, nil, "discover", "--icp", writeICP(t, testICP), "--enrich")

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrScraperUnavailable)
	})

	t.Run("not configured", func(t *testing.T) {
		_, cleanup := setupTestServices()
		defer cleanup()
		enrichmentService = nil

		_, err := execute(t, nil, "discover", "--icp", writeICP(t, testICP), "--enrich")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "enrichment service not configured")
	})
}

func TestClip(t *testing.T) {
	assert.Equal(t, "short", clip("short", 10))
	assert.Equal(t, "abcd…", clip("abcdefgh", 5))
}
