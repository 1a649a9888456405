package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestICP_String(t *testing.T) {
	icp := ICP{
		"industry": "",
		"sector":   "Fintech",
		"market":   []any{"Payments"},
		"count":    3,
	}

	assert.Equal(t, "Fintech", icp.String("industry", "sector"))
	assert.Equal(t, "Payments", icp.String("market"))
	assert.Equal(t, "", icp.String("count"))
	assert.Equal(t, "", icp.String("missing"))
}

func TestICP_Strings(t *testing.T) {
	icp := ICP{
		"roles":  []any{"CTO", 42, " ", "VP Engineering"},
		"titles": "Founder",
	}

	assert.Equal(t, []string{"CTO", "VP Engineering", "Founder"}, icp.Strings("roles", "titles", "absent"))
}

func TestICP_Nested(t *testing.T) {
	icp := ICP{
		"firmographics": map[string]any{
			"industries": []any{"SaaS"},
		},
	}

	assert.Equal(t, []any{"SaaS"}, icp.Nested("firmographics", "industries"))
	assert.Nil(t, icp.Nested("firmographics", "geography"))
	assert.Nil(t, icp.Nested("firmographics", "industries", "deeper"))
}

func TestICP_Objects(t *testing.T) {
	icp := ICP{
		"key_personas": []any{
			map[string]any{"title": "Head of Sales"},
			"not an object",
		},
	}

	personas := icp.Objects("key_personas")
	require.Len(t, personas, 1)
	assert.Equal(t, "Head of Sales", personas[0]["title"])
	assert.Nil(t, icp.Objects("absent"))
}

func TestICP_Description(t *testing.T) {
	assert.Equal(t, "a", ICP{"description": "a", "summary": "b"}.Description())
	assert.Equal(t, "b", ICP{"summary": "b"}.Description())
}

func TestParseICP(t *testing.T) {
	t.Run("plain json", func(t *testing.T) {
		icp, err := ParseICP([]byte(`{"industry":"technology"}`))
		require.NoError(t, err)
		assert.Equal(t, "technology", icp.String("industry"))
	})

	t.Run("fenced json", func(t *testing.T) {
		icp, err := ParseICP([]byte("```json\n{\"roles\":[\"developer\"]}\n```"))
		require.NoError(t, err)
		assert.Equal(t, []string{"developer"}, icp.Strings("roles"))
	})

	t.Run("empty", func(t *testing.T) {
		_, err := ParseICP([]byte("  "))
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("not an object", func(t *testing.T) {
		_, err := ParseICP([]byte(`null`))
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := ParseICP([]byte(`{"industry":`))
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
