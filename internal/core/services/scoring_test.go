package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/prospector/internal/core/domain"
)

type fixedICPMatcher float64

func (f fixedICPMatcher) ICPMatch(*domain.Prospect, domain.ICP) float64 { return float64(f) }

type fixedAccessibility float64

func (f fixedAccessibility) Accessibility(*domain.Prospect) float64 { return float64(f) }

type fixedBuyingSignal float64

func (f fixedBuyingSignal) BuyingSignal(*domain.Prospect, domain.ICP) float64 { return float64(f) }

func founderProspect() domain.Prospect {
	return domain.Prospect{
		Name:            "Ada Founder",
		Title:           "Founder & CEO",
		Company:         "Acme SaaS",
		Bio:             "Building cloud tools; hiring engineers, raised seed",
		Email:           "ada@acme.test",
		LinkedInURL:     "https://linkedin.com/in/ada",
		Location:        "Berlin, Germany",
		SourcePlatform:  domain.PlatformTwitter,
		SourceURL:       "https://twitter.com/ada",
		EngagementScore: 0.8,
		AdditionalData:  map[string]any{"followers": 1200},
	}
}

func TestLeadScoringEngine_OverallScoreBounds(t *testing.T) {
	tests := []struct {
		name     string
		sub      float64
		expected float64
	}{
		{"all sub-scores at 1", 1, 1.0},
		{"all sub-scores at 0", 0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewLeadScoringEngine(domain.DefaultScoringWeights(),
				WithICPMatcher(fixedICPMatcher(tt.sub)),
				WithAccessibilityEstimator(fixedAccessibility(tt.sub)),
				WithBuyingSignalDetector(fixedBuyingSignal(tt.sub)),
			)
			p := domain.Prospect{Name: "Ada", EngagementScore: tt.sub}

			assert.Equal(t, tt.expected, e.OverallScore(&p, domain.ICP{}))
		})
	}
}

func TestLeadScoringEngine_OverallScore(t *testing.T) {
	t.Run("default weights", func(t *testing.T) {
		e := NewLeadScoringEngine(domain.DefaultScoringWeights())
		p := founderProspect()

		// 0.40*1.0 + 0.25*0.8 + 0.20*0.6 + 0.15*0.5
		assert.InDelta(t, 0.795, e.OverallScore(&p, saasFounderICP()), 1e-9)
	})

	t.Run("sub-scores are clamped", func(t *testing.T) {
		e := NewLeadScoringEngine(
			domain.ScoringWeights{ICP: 1},
			WithICPMatcher(fixedICPMatcher(5)),
		)
		p := founderProspect()
		assert.Equal(t, 1.0, e.OverallScore(&p, domain.ICP{}))

		e = NewLeadScoringEngine(domain.ScoringWeights{ICP: 1}, WithICPMatcher(fixedICPMatcher(-2)))
		assert.Equal(t, 0.0, e.OverallScore(&p, domain.ICP{}))
	})

	t.Run("engagement out of range", func(t *testing.T) {
		e := NewLeadScoringEngine(domain.ScoringWeights{Engagement: 1})
		p := domain.Prospect{Name: "x", EngagementScore: 3}
		assert.Equal(t, 1.0, e.OverallScore(&p, domain.ICP{}))
	})

	t.Run("empty prospect and ICP", func(t *testing.T) {
		e := NewLeadScoringEngine(domain.DefaultScoringWeights())
		p := domain.Prospect{Name: "nobody"}
		assert.Equal(t, 0.0, e.OverallScore(&p, domain.ICP{}))
	})
}

func TestLeadScoringEngine_ScoreAll(t *testing.T) {
	e := NewLeadScoringEngine(domain.DefaultScoringWeights())
	in := []domain.Prospect{founderProspect(), {Name: "quiet", SourceURL: "https://example.com/q"}}

	out := e.ScoreAll(in, saasFounderICP())

	require.Len(t, out, 2)
	assert.InDelta(t, 0.795, out[0].RelevanceScore, 1e-9)
	assert.Equal(t, 0.0, out[1].RelevanceScore)

	assert.Equal(t, 0.0, in[0].RelevanceScore, "input is not mutated")
	out[0].AdditionalData["followers"] = 0
	assert.Equal(t, 1200, in[0].AdditionalData["followers"])
}

func TestKeywordICPMatcher(t *testing.T) {
	m := NewKeywordICPMatcher(DefaultSelectionTables())

	tests := []struct {
		name     string
		prospect domain.Prospect
		icp      domain.ICP
		expected float64
	}{
		{
			name:     "industry and role without geography",
			prospect: founderProspect(),
			icp:      saasFounderICP(),
			expected: 1.0,
		},
		{
			name:     "synonym in bio",
			prospect: domain.Prospect{Name: "x", Bio: "cloud infrastructure nerd", Title: "Engineer"},
			icp:      saasFounderICP(),
			expected: 0.5,
		},
		{
			name:     "role synonym in title",
			prospect: domain.Prospect{Name: "x", Title: "Serial Entrepreneur"},
			icp:      saasFounderICP(),
			expected: 0.5,
		},
		{
			name:     "geography matched",
			prospect: founderProspect(),
			icp:      domain.ICP{"industry": "saas", "roles": []any{"founder"}, "geography": []any{"Berlin"}},
			expected: 1.0,
		},
		{
			name: "geography missed",
			prospect: func() domain.Prospect {
				p := founderProspect()
				p.Location = "Paris"
				return p
			}(),
			icp:      domain.ICP{"industry": "saas", "roles": []any{"founder"}, "geography": []any{"Berlin"}},
			expected: 0.8,
		},
		{
			name:     "nothing to match",
			prospect: founderProspect(),
			icp:      domain.ICP{},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, m.ICPMatch(&tt.prospect, tt.icp), 1e-9)
		})
	}
}

func TestContactAccessibility(t *testing.T) {
	tests := []struct {
		name     string
		prospect domain.Prospect
		expected float64
	}{
		{"none", domain.Prospect{}, 0},
		{"email only", domain.Prospect{Email: "a@b.c"}, 0.4},
		{"social", domain.Prospect{TwitterURL: "t", GitHubURL: "g"}, 0.25},
		{"everything", domain.Prospect{
			Email: "e", LinkedInURL: "l", TwitterURL: "t", Website: "w", GitHubURL: "g",
		}, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ContactAccessibility{}.Accessibility(&tt.prospect), 1e-9)
		})
	}
}

func TestKeywordBuyingSignals(t *testing.T) {
	d := KeywordBuyingSignals{}

	t.Run("vocabulary hits", func(t *testing.T) {
		p := domain.Prospect{Bio: "We are Hiring and Scaling fast"}
		assert.Equal(t, 0.5, d.BuyingSignal(&p, domain.ICP{}))
	})

	t.Run("capped", func(t *testing.T) {
		p := domain.Prospect{Bio: "hiring, scaling, raised funding, launching and migrating"}
		assert.Equal(t, 1.0, d.BuyingSignal(&p, domain.ICP{}))
	})

	t.Run("persona triggers", func(t *testing.T) {
		icp := domain.ICP{"key_personas": []any{
			map[string]any{"title": "CISO", "buying_triggers": []any{"SOC 2 audit"}},
		}}
		p := domain.Prospect{Bio: "Prepping for a SOC 2 audit this quarter"}
		assert.Equal(t, 0.25, d.BuyingSignal(&p, icp))
	})

	t.Run("empty bio", func(t *testing.T) {
		assert.Equal(t, 0.0, d.BuyingSignal(&domain.Prospect{}, domain.ICP{}))
	})
}
