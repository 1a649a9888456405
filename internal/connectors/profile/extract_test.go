package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/prospector/internal/core/domain"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		keywords []string
		expected string
	}{
		{"qualified engineer", "Senior Software Engineer building awesome things", DeveloperTitles, "Senior Software Engineer"},
		{"hyphenated qualifier", "Full-stack developer passionate about React", DeveloperTitles, "Full-stack developer"},
		{"co-founder", "Co-founder of StartupXYZ", BusinessTitles, "Co-founder"},
		{"stops at preposition", "CEO at TechCorp", BusinessTitles, "CEO"},
		{"capitalised trailing words", "VP Engineering at Acme", BusinessTitles, "VP Engineering"},
		{"stopwords before keyword", "I am a backend engineer", DeveloperTitles, "backend engineer"},
		{"clause boundary", "Python, engineer", DeveloperTitles, "engineer"},
		{"plural", "We are founders", BusinessTitles, "founders"},
		{"no keyword", "Just here for the memes", BusinessTitles, ""},
		{"empty", "", BusinessTitles, ""},
		{"director is not cto", "Director of Sales", BusinessTitles, "Director"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Title(tt.text, tt.keywords))
		})
	}
}

func TestCompany(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"at", "CEO at TechCorp", "TechCorp"},
		{"working at", "Software Engineer working at Google", "Google"},
		{"founder of with separator", "Founder of StartupXYZ | Building the future", "StartupXYZ"},
		{"handle", "Software Engineer @Google", "Google"},
		{"three word cap", "Engineer at The Home Depot Supply Co", "The Home Depot"},
		{"stops at stopword", "Engineer at Stripe and part-time DJ", "Stripe"},
		{"sentence end", "Working at Acme. Opinions my own", "Acme"},
		{"at the moment", "Busy at the moment", ""},
		{"email is not handle", "mail jane@acme.io", ""},
		{"substring at ignored", "Great engineer", ""},
		{"earliest indicator wins", "Founder of Alpha, previously at Beta", "Alpha"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Company(tt.text))
		})
	}
}

func TestURL(t *testing.T) {
	assert.Equal(t, "https://twitter.com/jack", URL(domain.PlatformTwitter, "@jack"))
	assert.Equal(t, "https://github.com/octocat", URL(domain.PlatformGitHub, "octocat"))
	assert.Equal(t, "https://www.reddit.com/user/spez", URL(domain.PlatformReddit, "spez"))
	assert.Equal(t, "", URL(domain.PlatformGitHub, " "))
	assert.Equal(t, "", URL(domain.PlatformMedium, "someone"))
}

func TestWebsite(t *testing.T) {
	assert.Equal(t, "https://example.com", Website("example.com"))
	assert.Equal(t, "http://example.com", Website("http://example.com"))
	assert.Equal(t, "", Website("  "))
}
