package websearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/custodia-labs/prospector/internal/connectors/ratelimit"
	"github.com/custodia-labs/prospector/internal/core/domain"
	"github.com/custodia-labs/prospector/internal/core/ports/driven"
)

type mockCredentials map[string]string

func (m mockCredentials) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok && v != ""
}

var validCreds = mockCredentials{APIKeyEnv: "key", EngineIDEnv: "engine"}

const itemsPayload = `{"items": [
  {"title": "Jane Doe - CTO - Acme | LinkedIn", "link": "https://www.linkedin.com/in/janedoe", "snippet": "Jane leads engineering."},
  {"title": "10 best SaaS tools for 2024", "link": "https://blog.example.com/tools", "snippet": "A list."},
  {"title": "John Smith - Globex", "link": "https://johnsmith.dev/about", "snippet": "VP Sales at Globex"}
]}`

func newTestAdapter(t *testing.T, handler http.HandlerFunc) *Adapter {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	a, err := newAdapter(context.Background(), domain.NewSourceConfig(domain.PlatformGoogleSearch), validCreds, DefaultTimeout,
		option.WithEndpoint(server.URL+"/"), option.WithHTTPClient(server.Client()))
	require.NoError(t, err)
	a.throttle = ratelimit.NewThrottle(domain.PlatformGoogleSearch, 0, RequestsPerMinute, RequestsPerDay)
	a.client.throttle = a.throttle
	return a
}

func TestNew(t *testing.T) {
	t.Run("missing credentials", func(t *testing.T) {
		a, err := New(domain.NewSourceConfig(domain.PlatformGoogleSearch), mockCredentials{APIKeyEnv: "key"})
		require.NoError(t, err)

		assert.Equal(t, domain.PlatformGoogleSearch, a.Platform())
		assert.False(t, a.Authenticate(context.Background()))
		assert.Nil(t, a.Search(context.Background(), "anything", nil))
		assert.Equal(t, 1, a.Metrics().ErrorCount)
	})

	t.Run("configured", func(t *testing.T) {
		a, err := New(domain.NewSourceConfig(domain.PlatformGoogleSearch), validCreds)
		require.NoError(t, err)
		assert.True(t, a.Authenticate(context.Background()))
	})

	t.Run("implements PlatformAdapter interface", func(t *testing.T) {
		var _ driven.PlatformAdapter = &Adapter{}
	})
}

func TestAdapter_Search(t *testing.T) {
	var query url.Values
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(itemsPayload))
	})

	results := a.Search(context.Background(), `"cto" "saas"`, map[string]any{
		"site":                   "linkedin.com",
		domain.FilterResultLimit: 2,
	})

	require.Len(t, results, 2)
	assert.Equal(t, `"cto" "saas" site:linkedin.com`, query.Get("q"))
	assert.Equal(t, "engine", query.Get("cx"))
	assert.Equal(t, "2", query.Get("num"))
	assert.Equal(t, "https://www.linkedin.com/in/janedoe", results[0].Str("link"))

	m := a.Metrics()
	assert.Equal(t, 1, m.SuccessfulQueries)
	assert.Equal(t, 2, m.TotalProspects)
	assert.Equal(t, 1, a.RateLimits().CurrentUsage)
}

func TestAdapter_SearchPageSizeCapped(t *testing.T) {
	var num string
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		num = r.URL.Query().Get("num")
		_, _ = w.Write([]byte(`{"items": []}`))
	})

	a.Search(context.Background(), "founders", nil)
	assert.Equal(t, "10", num)
}

func TestNewClient_SendsAPIKey(t *testing.T) {
	var key, cx string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key = r.URL.Query().Get("key")
		cx = r.URL.Query().Get("cx")
		_, _ = w.Write([]byte(`{"items": []}`))
	}))
	defer server.Close()

	throttle := ratelimit.NewThrottle(domain.PlatformGoogleSearch, 0, RequestsPerMinute, RequestsPerDay)
	client, err := NewClient(context.Background(), "secret-key", "engine-1", throttle, 0,
		option.WithEndpoint(server.URL+"/"))
	require.NoError(t, err)

	_, err = client.Search(context.Background(), "founders", 5)
	require.NoError(t, err)
	assert.Equal(t, "secret-key", key)
	assert.Equal(t, "engine-1", cx)
}

func TestAdapter_SearchQuotaExceeded(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"Quota exceeded","errors":[{"reason":"rateLimitExceeded"}]}}`))
	})

	results := a.Search(context.Background(), "founders", nil)

	assert.Empty(t, results)
	assert.Equal(t, 1, a.Metrics().ErrorCount)
	assert.Equal(t, 0, a.throttle.Remaining())
}

func TestClassify(t *testing.T) {
	t.Run("forbidden quota reason", func(t *testing.T) {
		a := newTestAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":{"code":403,"message":"Daily Limit Exceeded","errors":[{"reason":"dailyLimitExceeded"}]}}`))
		})
		_, err := a.client.Search(context.Background(), "q", 5)
		assert.True(t, ratelimit.IsRateLimited(err))
	})

	t.Run("bad key", func(t *testing.T) {
		a := newTestAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":400,"message":"API key not valid","errors":[{"reason":"badRequest"}]}}`))
		})
		_, err := a.client.Search(context.Background(), "q", 5)

		var apiErr *ratelimit.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.False(t, ratelimit.IsRateLimited(err))
	})
}

func TestParseTitle(t *testing.T) {
	tests := []struct {
		title   string
		name    string
		role    string
		company string
	}{
		{"Jane Doe - CTO - Acme | LinkedIn", "Jane Doe", "CTO", "Acme"},
		{"Jane Doe – Head of Growth – Acme Corp – LinkedIn", "Jane Doe", "Head of Growth", "Acme Corp"},
		{"John Smith - Globex", "John Smith", "", "Globex"},
		{"John Smith - Founder", "John Smith", "Founder", ""},
		{"María José", "María José", "", ""},
		{"10 best SaaS tools", "", "", ""},
		{"how to hire a CTO", "", "", ""},
		{"", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			name, role, company := ParseTitle(tt.title)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.role, role)
			assert.Equal(t, tt.company, company)
		})
	}
}

func TestAdapter_ExtractProspects(t *testing.T) {
	a := &Adapter{}
	raw := []domain.RawResult{
		{"title": "Jane Doe - CTO - Acme | LinkedIn", "link": "https://www.linkedin.com/in/janedoe", "snippet": "Jane leads engineering."},
		{"title": "10 best SaaS tools for 2024", "link": "https://blog.example.com/tools"},
		{"title": "John Smith - Globex", "link": "https://johnsmith.dev/about", "snippet": "VP Sales at Globex"},
	}

	prospects := a.ExtractProspects(raw)
	require.Len(t, prospects, 2)

	jane := prospects[0]
	assert.Equal(t, "Jane Doe", jane.Name)
	assert.Equal(t, "CTO", jane.Title)
	assert.Equal(t, "Acme", jane.Company)
	assert.Equal(t, "https://www.linkedin.com/in/janedoe", jane.LinkedInURL)
	assert.Equal(t, 0.5, jane.EngagementScore)
	assert.Equal(t, domain.PlatformGoogleSearch, jane.SourcePlatform)

	john := prospects[1]
	assert.Equal(t, "Globex", john.Company)
	assert.Equal(t, "VP Sales", john.Title)
	assert.Empty(t, john.LinkedInURL)
	assert.Equal(t, 0.3, john.EngagementScore)
	assert.Equal(t, "johnsmith.dev", john.AdditionalData["domain"])
}
