package services

import (
	"strings"

	"github.com/custodia-labs/prospector/internal/core/domain"
)

// Company size buckets.
const (
	SizeStartup    = "startup"
	SizeSmall      = "small"
	SizeEnterprise = "enterprise"
)

// Employee-count upper bounds for the size buckets.
const (
	startupMaxEmployees = 50
	smallMaxEmployees   = 500
)

// ICPSignals are the characteristics of an ICP that drive source selection,
// query generation and scoring.
type ICPSignals struct {
	// Industry is the lowercase primary industry, or "".
	Industry string

	// Roles are lowercase target roles, deduplicated in order.
	Roles []string

	// CompanySize is one of the Size* buckets, or "".
	CompanySize string

	// Geography lists target locations.
	Geography []string

	// BuyingTriggers are persona buying triggers.
	BuyingTriggers []string
}

// vocabulary maps description words onto canonical values. Each rule is
// checked in order; the first hit wins for industries.
type vocabulary []struct {
	words []string
	value string
}

var industryVocabulary = vocabulary{
	{[]string{"software", "saas"}, "software"},
	{[]string{"tech"}, "technology"},
	{[]string{"ecommerce", "e-commerce"}, "ecommerce"},
}

var roleVocabulary = vocabulary{
	{[]string{"developer", "engineer"}, "developer"},
	{[]string{"founder", "ceo"}, "founder"},
	{[]string{"cto"}, "cto"},
}

var sizeVocabulary = vocabulary{
	{[]string{"startup", "early"}, SizeStartup},
	{[]string{"small", "medium"}, SizeSmall},
	{[]string{"enterprise", "large"}, SizeEnterprise},
}

// first returns the value of the first rule with a word contained in text.
func (v vocabulary) first(text string) string {
	for _, rule := range v {
		for _, w := range rule.words {
			if strings.Contains(text, w) {
				return rule.value
			}
		}
	}
	return ""
}

// all returns the values of every rule with a word contained in text.
func (v vocabulary) all(text string) []string {
	var out []string
	for _, rule := range v {
		for _, w := range rule.words {
			if strings.Contains(text, w) {
				out = append(out, rule.value)
				break
			}
		}
	}
	return out
}

// ExtractSignals reads the selection signals from an ICP. Flat keys win
// over the nested firmographics/key_personas layout; the free-text
// description is the last resort.
func ExtractSignals(icp domain.ICP) ICPSignals {
	description := strings.ToLower(icp.Description())

	return ICPSignals{
		Industry:       extractIndustry(icp, description),
		Roles:          extractRoles(icp, description),
		CompanySize:    extractCompanySize(icp, description),
		Geography:      extractGeography(icp),
		BuyingTriggers: extractBuyingTriggers(icp),
	}
}

func extractIndustry(icp domain.ICP, description string) string {
	if s := icp.String("industry", "sector", "vertical", "market"); s != "" {
		return strings.ToLower(s)
	}
	if s := domain.ToStrings(icp.Nested("firmographics", "industries")); len(s) > 0 {
		return strings.ToLower(s[0])
	}
	return industryVocabulary.first(description)
}

func extractRoles(icp domain.ICP, description string) []string {
	var roles []string
	for _, r := range icp.Strings("roles", "titles", "job_titles", "target_roles") {
		roles = append(roles, strings.ToLower(r))
	}
	for _, persona := range icp.Objects("key_personas") {
		if title, ok := persona["title"].(string); ok && strings.TrimSpace(title) != "" {
			title = strings.ToLower(strings.TrimSpace(title))
			roles = append(roles, title)
			roles = append(roles, roleVocabulary.all(title)...)
		}
	}
	roles = append(roles, roleVocabulary.all(description)...)
	return dedupeStrings(roles)
}

func extractCompanySize(icp domain.ICP, description string) string {
	if s := icp.String("company_size"); s != "" {
		return sizeVocabulary.first(strings.ToLower(s))
	}

	switch v := icp.Nested("firmographics", "company_size_employees").(type) {
	case []any:
		if n, ok := upperBound(v); ok {
			return sizeForEmployees(n)
		}
	case string:
		return sizeVocabulary.first(strings.ToLower(v))
	case float64:
		return sizeForEmployees(v)
	}

	return sizeVocabulary.first(description)
}

// upperBound returns the last numeric element of a [min, max] range.
func upperBound(v []any) (float64, bool) {
	for i := len(v) - 1; i >= 0; i-- {
		if n, ok := v[i].(float64); ok {
			return n, true
		}
	}
	return 0, false
}

func sizeForEmployees(n float64) string {
	switch {
	case n <= 0:
		return ""
	case n <= startupMaxEmployees:
		return SizeStartup
	case n <= smallMaxEmployees:
		return SizeSmall
	default:
		return SizeEnterprise
	}
}

func extractGeography(icp domain.ICP) []string {
	geo := icp.Strings("geography", "location", "locations", "regions", "countries")
	geo = append(geo, domain.ToStrings(icp.Nested("firmographics", "geography"))...)
	return dedupeStrings(geo)
}

func extractBuyingTriggers(icp domain.ICP) []string {
	var triggers []string
	for _, persona := range icp.Objects("key_personas") {
		triggers = append(triggers, domain.ToStrings(persona["buying_triggers"])...)
	}
	return triggers
}

// dedupeStrings drops repeated values, keeping first occurrences in order.
func dedupeStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
