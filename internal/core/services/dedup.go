package services

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/prospector/internal/core/domain"
	"github.com/custodia-labs/prospector/internal/core/ports/driven"
	"github.com/custodia-labs/prospector/internal/core/ports/driving"
	"github.com/custodia-labs/prospector/internal/logger"
)

// Ensure DeduplicationEngine implements the interface.
var _ driving.Deduplicator = (*DeduplicationEngine)(nil)

// MergedFromKey is the AdditionalData key listing the platforms a merged
// prospect was built from.
const MergedFromKey = "merged_from"

// DeduplicationEngine collapses prospects that refer to the same person.
type DeduplicationEngine struct {
	matcher driven.DuplicateMatcher
	merger  driven.ProspectMerger
}

// DedupOption configures a DeduplicationEngine.
type DedupOption func(*DeduplicationEngine)

// WithDuplicateMatcher replaces the source-URL matcher.
func WithDuplicateMatcher(m driven.DuplicateMatcher) DedupOption {
	return func(e *DeduplicationEngine) { e.matcher = m }
}

// WithProspectMerger replaces the relevance-preferring merger.
func WithProspectMerger(m driven.ProspectMerger) DedupOption {
	return func(e *DeduplicationEngine) { e.merger = m }
}

// NewDeduplicationEngine creates an engine matching on source URL.
func NewDeduplicationEngine(opts ...DedupOption) *DeduplicationEngine {
	e := &DeduplicationEngine{
		matcher: URLMatcher{},
		merger:  PreferRelevanceMerger{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FindDuplicates returns groups of indices judged identical.
func (e *DeduplicationEngine) FindDuplicates(prospects []domain.Prospect) [][]int {
	return e.matcher.FindDuplicates(prospects)
}

// MergeProspects combines one duplicate group into a single record.
func (e *DeduplicationEngine) MergeProspects(group []domain.Prospect) domain.Prospect {
	return e.merger.Merge(group)
}

// Deduplicate merges each duplicate group once, in group order, then
// appends every prospect that was not merged. A group overlapping one that
// was already merged is dropped.
func (e *DeduplicationEngine) Deduplicate(prospects []domain.Prospect) []domain.Prospect {
	processed := make(map[int]bool)
	out := make([]domain.Prospect, 0, len(prospects))

	for _, group := range e.FindDuplicates(prospects) {
		group, ok := validGroup(group, len(prospects), processed)
		if !ok {
			continue
		}
		members := make([]domain.Prospect, len(group))
		for i, idx := range group {
			members[i] = prospects[idx]
			processed[idx] = true
		}
		out = append(out, e.MergeProspects(members))
	}

	for i, p := range prospects {
		if !processed[i] {
			out = append(out, p)
		}
	}

	if removed := len(prospects) - len(out); removed > 0 {
		logger.Debug("dedup: %d prospects -> %d (%d merged away)", len(prospects), len(out), removed)
	}
	return out
}

// validGroup drops repeated indices and rejects groups that reference a
// processed or out-of-range index or have fewer than two members.
func validGroup(group []int, n int, processed map[int]bool) ([]int, bool) {
	seen := make(map[int]bool, len(group))
	unique := make([]int, 0, len(group))
	for _, idx := range group {
		if idx < 0 || idx >= n || processed[idx] {
			return nil, false
		}
		if !seen[idx] {
			seen[idx] = true
			unique = append(unique, idx)
		}
	}
	return unique, len(unique) >= 2
}

// groupByKey groups indices sharing a non-empty key. Groups are ordered by
// first appearance and only those with two or more members are returned.
func groupByKey(prospects []domain.Prospect, key func(*domain.Prospect) string) [][]int {
	index := make(map[string]int)
	var groups [][]int
	for i := range prospects {
		k := key(&prospects[i])
		if k == "" {
			continue
		}
		if g, ok := index[k]; ok {
			groups[g] = append(groups[g], i)
			continue
		}
		index[k] = len(groups)
		groups = append(groups, []int{i})
	}

	out := groups[:0]
	for _, g := range groups {
		if len(g) >= 2 {
			out = append(out, g)
		}
	}
	return out
}

// URLMatcher matches prospects with the same normalised source URL.
type URLMatcher struct{}

// FindDuplicates implements driven.DuplicateMatcher.
func (URLMatcher) FindDuplicates(prospects []domain.Prospect) [][]int {
	return groupByKey(prospects, func(p *domain.Prospect) string {
		return NormalizeURL(p.SourceURL)
	})
}

// NormalizeURL canonicalises a URL for comparison: lowercase scheme and
// host without "www.", no fragment or trailing slash, sorted query keys.
// Unparseable input is trimmed and lowercased.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return strings.TrimSuffix(strings.ToLower(raw), "/")
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	u.Fragment = ""
	u.RawFragment = ""
	u.ForceQuery = false
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = u.Query().Encode()
	return u.String()
}

// NameCompanyMatcher matches prospects with the same name and company,
// compared case-insensitively after Unicode NFKC normalisation.
type NameCompanyMatcher struct{}

// FindDuplicates implements driven.DuplicateMatcher.
func (NameCompanyMatcher) FindDuplicates(prospects []domain.Prospect) [][]int {
	return groupByKey(prospects, func(p *domain.Prospect) string {
		name := foldName(p.Name)
		if name == "" {
			return ""
		}
		return name + "|" + foldName(p.Company)
	})
}

func foldName(s string) string {
	s = norm.NFKC.String(s)
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// PreferRelevanceMerger keeps the strongest record of a group and fills its
// gaps from the others. The result does not depend on input order.
type PreferRelevanceMerger struct{}

// Merge implements driven.ProspectMerger.
func (PreferRelevanceMerger) Merge(group []domain.Prospect) domain.Prospect {
	if len(group) == 0 {
		return domain.Prospect{}
	}

	ranked := make([]domain.Prospect, len(group))
	copy(ranked, group)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranksBefore(&ranked[i], &ranked[j])
	})

	merged := ranked[0].Clone()
	for i := 1; i < len(ranked); i++ {
		fillEmpty(&merged, &ranked[i])
		other := &ranked[i]
		if other.EngagementScore > merged.EngagementScore {
			merged.EngagementScore = other.EngagementScore
		}
		if other.RelevanceScore > merged.RelevanceScore {
			merged.RelevanceScore = other.RelevanceScore
		}
		if other.LastActivity != nil && (merged.LastActivity == nil || other.LastActivity.After(*merged.LastActivity)) {
			t := *other.LastActivity
			merged.LastActivity = &t
		}
	}

	data := make(map[string]any)
	for i := len(ranked) - 1; i >= 0; i-- {
		for k, v := range ranked[i].AdditionalData {
			data[k] = v
		}
	}
	data[MergedFromKey] = mergedFrom(group)
	merged.AdditionalData = data

	return merged
}

// ranksBefore orders by relevance, then populated fields, then
// "platform|name", then source URL, then the remaining field values.
func ranksBefore(a, b *domain.Prospect) bool {
	if a.RelevanceScore != b.RelevanceScore {
		return a.RelevanceScore > b.RelevanceScore
	}
	if fa, fb := a.PopulatedFields(), b.PopulatedFields(); fa != fb {
		return fa > fb
	}
	if ka, kb := string(a.SourcePlatform)+"|"+a.Name, string(b.SourcePlatform)+"|"+b.Name; ka != kb {
		return ka < kb
	}
	if a.SourceURL != b.SourceURL {
		return a.SourceURL < b.SourceURL
	}
	return contentKey(a) < contentKey(b)
}

// contentKey renders the fields a representative contributes. fmt prints
// map keys sorted, so the key is stable.
func contentKey(p *domain.Prospect) string {
	return strings.Join([]string{
		p.Title, p.Company, p.Email, p.LinkedInURL, p.TwitterURL, p.GitHubURL,
		p.Website, p.Bio, p.Location, p.Industry, fmt.Sprint(p.AdditionalData),
	}, "\x00")
}

func fillEmpty(dst, src *domain.Prospect) {
	for _, f := range []struct {
		dst *string
		src string
	}{
		{&dst.Title, src.Title},
		{&dst.Company, src.Company},
		{&dst.Email, src.Email},
		{&dst.LinkedInURL, src.LinkedInURL},
		{&dst.TwitterURL, src.TwitterURL},
		{&dst.GitHubURL, src.GitHubURL},
		{&dst.Website, src.Website},
		{&dst.Bio, src.Bio},
		{&dst.Location, src.Location},
		{&dst.Industry, src.Industry},
	} {
		if *f.dst == "" {
			*f.dst = f.src
		}
	}
}

func mergedFrom(group []domain.Prospect) []string {
	var platforms []string
	for _, p := range group {
		platforms = append(platforms, string(p.SourcePlatform))
	}
	sort.Strings(platforms)
	return dedupeStrings(platforms)
}
