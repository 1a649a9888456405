package services

import (
	"strings"

	"github.com/custodia-labs/prospector/internal/core/domain"
	"github.com/custodia-labs/prospector/internal/core/ports/driven"
	"github.com/custodia-labs/prospector/internal/core/ports/driving"
)

// Ensure LeadScoringEngine implements the interface.
var _ driving.LeadScorer = (*LeadScoringEngine)(nil)

// LeadScoringEngine combines ICP fit, engagement, accessibility and buying
// signals into a single relevance score.
type LeadScoringEngine struct {
	weights       domain.ScoringWeights
	icpMatcher    driven.ICPMatcher
	accessibility driven.AccessibilityEstimator
	buyingSignals driven.BuyingSignalDetector
}

// ScoringOption configures a LeadScoringEngine.
type ScoringOption func(*LeadScoringEngine)

// WithICPMatcher replaces the keyword ICP matcher.
func WithICPMatcher(m driven.ICPMatcher) ScoringOption {
	return func(e *LeadScoringEngine) { e.icpMatcher = m }
}

// WithAccessibilityEstimator replaces the contact-field estimator.
func WithAccessibilityEstimator(a driven.AccessibilityEstimator) ScoringOption {
	return func(e *LeadScoringEngine) { e.accessibility = a }
}

// WithBuyingSignalDetector replaces the keyword buying-signal detector.
func WithBuyingSignalDetector(d driven.BuyingSignalDetector) ScoringOption {
	return func(e *LeadScoringEngine) { e.buyingSignals = d }
}

// NewLeadScoringEngine creates a scorer with the given weights and the
// keyword-based sub-scorers.
func NewLeadScoringEngine(weights domain.ScoringWeights, opts ...ScoringOption) *LeadScoringEngine {
	e := &LeadScoringEngine{
		weights:       weights,
		icpMatcher:    NewKeywordICPMatcher(DefaultSelectionTables()),
		accessibility: ContactAccessibility{},
		buyingSignals: KeywordBuyingSignals{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Weights returns the configured weights.
func (e *LeadScoringEngine) Weights() domain.ScoringWeights {
	return e.weights
}

// OverallScore returns the weighted sum of the clamped sub-scores.
func (e *LeadScoringEngine) OverallScore(p *domain.Prospect, icp domain.ICP) float64 {
	icpScore := domain.Clamp01(e.icpMatcher.ICPMatch(p, icp))
	engagement := domain.Clamp01(p.EngagementScore)
	access := domain.Clamp01(e.accessibility.Accessibility(p))
	buying := domain.Clamp01(e.buyingSignals.BuyingSignal(p, icp))

	return domain.Clamp01(e.weights.ICP*icpScore +
		e.weights.Engagement*engagement +
		e.weights.Accessibility*access +
		e.weights.BuyingSignal*buying)
}

// ScoreAll returns copies of prospects with RelevanceScore set.
func (e *LeadScoringEngine) ScoreAll(prospects []domain.Prospect, icp domain.ICP) []domain.Prospect {
	out := make([]domain.Prospect, len(prospects))
	for i := range prospects {
		p := prospects[i].Clone()
		p.RelevanceScore = e.OverallScore(&p, icp)
		out[i] = p
	}
	return out
}

// ICP match dimension weights.
const (
	industryMatchWeight = 0.4
	roleMatchWeight     = 0.4
	geoMatchWeight      = 0.2
)

// KeywordICPMatcher scores ICP fit by substring matching. Dimensions the
// ICP does not name are left out and their weight is shared among the rest.
type KeywordICPMatcher struct {
	tables SelectionTables
}

// NewKeywordICPMatcher creates a matcher that expands terms with the
// synonyms in tables.
func NewKeywordICPMatcher(tables SelectionTables) KeywordICPMatcher {
	return KeywordICPMatcher{tables: tables}
}

// ICPMatch implements driven.ICPMatcher.
func (m KeywordICPMatcher) ICPMatch(p *domain.Prospect, icp domain.ICP) float64 {
	signals := ExtractSignals(icp)

	var total, matched float64
	dimension := func(weight float64, terms []string, text string) {
		if len(terms) == 0 {
			return
		}
		total += weight
		if containsAny(text, terms) {
			matched += weight
		}
	}

	var industryTerms []string
	if signals.Industry != "" {
		industryTerms = append([]string{signals.Industry}, m.tables.IndustrySynonyms[signals.Industry]...)
	}
	dimension(industryMatchWeight, industryTerms,
		lowerJoin(p.Industry, p.Company, p.Bio, p.Title))

	var roleTerms []string
	for _, role := range signals.Roles {
		roleTerms = append(roleTerms, role)
		roleTerms = append(roleTerms, m.tables.RoleSynonyms[role]...)
	}
	dimension(roleMatchWeight, roleTerms, strings.ToLower(p.Title))

	var geoTerms []string
	for _, g := range signals.Geography {
		geoTerms = append(geoTerms, strings.ToLower(g))
	}
	dimension(geoMatchWeight, geoTerms, strings.ToLower(p.Location))

	if total == 0 {
		return 0
	}
	return matched / total
}

// Contact field weights.
const (
	emailWeight    = 0.4
	linkedInWeight = 0.2
	twitterWeight  = 0.15
	websiteWeight  = 0.15
	githubWeight   = 0.1
)

// ContactAccessibility scores reachability from the populated contact fields.
type ContactAccessibility struct{}

// Accessibility implements driven.AccessibilityEstimator.
func (ContactAccessibility) Accessibility(p *domain.Prospect) float64 {
	var score float64
	for _, f := range []struct {
		value  string
		weight float64
	}{
		{p.Email, emailWeight},
		{p.LinkedInURL, linkedInWeight},
		{p.TwitterURL, twitterWeight},
		{p.Website, websiteWeight},
		{p.GitHubURL, githubWeight},
	} {
		if f.value != "" {
			score += f.weight
		}
	}
	return domain.Clamp01(score)
}

// BuyingSignalVocabulary are bio phrases that suggest an organisation is in
// a buying window.
var BuyingSignalVocabulary = []string{
	"hiring", "scaling", "raised", "funding",
	"launching", "migrating", "looking for", "evaluating",
}

const buyingSignalStep = 0.25

// KeywordBuyingSignals counts buying-signal phrases and ICP buying triggers
// in the prospect's bio.
type KeywordBuyingSignals struct{}

// BuyingSignal implements driven.BuyingSignalDetector.
func (KeywordBuyingSignals) BuyingSignal(p *domain.Prospect, icp domain.ICP) float64 {
	bio := strings.ToLower(p.Bio)
	if bio == "" {
		return 0
	}

	phrases := append([]string{}, BuyingSignalVocabulary...)
	for _, trigger := range ExtractSignals(icp).BuyingTriggers {
		phrases = append(phrases, strings.ToLower(trigger))
	}

	var score float64
	for _, phrase := range dedupeStrings(phrases) {
		if strings.Contains(bio, phrase) {
			score += buyingSignalStep
		}
	}
	return domain.Clamp01(score)
}

func containsAny(text string, terms []string) bool {
	if text == "" {
		return false
	}
	for _, t := range terms {
		if t != "" && strings.Contains(text, t) {
			return true
		}
	}
	return false
}

func lowerJoin(parts ...string) string {
	return strings.ToLower(strings.Join(parts, " "))
}
