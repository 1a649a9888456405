package domain

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProspect_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		p := Prospect{Name: "Jane Doe"}
		assert.NoError(t, p.Validate())
	})

	t.Run("empty name", func(t *testing.T) {
		p := Prospect{Company: "Acme"}
		assert.ErrorIs(t, p.Validate(), ErrInvalidInput)
	})
}

func TestClamp01(t *testing.T) {
	tests := []struct {
		name     string
		in       float64
		expected float64
	}{
		{"below zero", -0.5, 0},
		{"zero", 0, 0},
		{"inside", 0.42, 0.42},
		{"one", 1, 1},
		{"above one", 3.7, 1},
		{"nan", math.NaN(), 0},
		{"inf", math.Inf(1), 1},
		{"negative inf", math.Inf(-1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Clamp01(tt.in))
		})
	}
}

func TestProspect_ClampScores(t *testing.T) {
	p := Prospect{Name: "x", EngagementScore: 1.8, RelevanceScore: -2}
	p.ClampScores()

	assert.Equal(t, 1.0, p.EngagementScore)
	assert.Equal(t, 0.0, p.RelevanceScore)
}

func TestProspect_Clone(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	p := Prospect{
		Name:           "Jane",
		LastActivity:   &ts,
		AdditionalData: map[string]any{"followers": 10},
	}

	c := p.Clone()
	c.AdditionalData["followers"] = 99
	*c.LastActivity = ts.Add(time.Hour)

	assert.Equal(t, 10, p.AdditionalData["followers"])
	assert.Equal(t, ts, *p.LastActivity)
}

func TestProspect_PopulatedFields(t *testing.T) {
	p := Prospect{Name: "Jane", Title: "CTO", Email: "j@acme.io"}
	assert.Equal(t, 2, p.PopulatedFields())
}

func TestProspect_JSON(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	p := Prospect{
		Name:           "Jane Doe",
		SourcePlatform: PlatformGitHub,
		SourceURL:      "https://github.com/jane",
		LastActivity:   &ts,
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "github", raw["source_platform"])
	assert.Equal(t, "2024-05-01T12:00:00Z", raw["last_activity"])
	assert.NotContains(t, raw, "email")
}
