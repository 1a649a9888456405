package profile

import (
	"regexp"
	"strings"
	"unicode"
)

// Keyword lists used by the connectors. Order does not matter; the first
// matching word in the text wins.
var (
	// DeveloperTitles suits developer-centric bios (GitHub).
	DeveloperTitles = []string{
		"engineer", "developer", "architect", "lead", "senior", "principal",
		"manager", "director", "cto", "ceo", "founder", "consultant",
		"freelancer", "student", "researcher",
	}

	// BusinessTitles suits social bios (Twitter, Reddit).
	BusinessTitles = []string{
		"ceo", "founder", "cto", "cmo", "vp", "director", "manager", "lead",
		"head", "engineer", "developer",
	}
)

var stopwords = map[string]bool{
	"a": true, "an": true, "the": true, "i": true, "im": true, "am": true,
	"is": true, "are": true, "was": true, "and": true, "or": true, "of": true,
	"at": true, "for": true, "with": true, "as": true, "in": true, "on": true,
	"to": true, "by": true, "from": true, "my": true, "our": true,
}

// Title returns the role phrase around the first word matching one of
// keywords: up to two leading qualifiers, the keyword word, and up to two
// capitalised trailing words ("VP Engineering").
func Title(text string, keywords []string) string {
	words := strings.Fields(text)
	for i, w := range words {
		if !matchesAny(normalizeWord(w), keywords) {
			continue
		}

		start := i
		for j := i - 1; j >= 0 && i-j <= 2; j-- {
			if endsClause(words[j]) {
				break
			}
			n := normalizeWord(words[j])
			if n == "" || stopwords[n] {
				break
			}
			start = j
		}

		end := i
		for j := i + 1; j < len(words) && j-i <= 2 && !endsClause(words[j-1]); j++ {
			n := normalizeWord(words[j])
			if n == "" || stopwords[n] || !startsUpper(trimWord(words[j])) {
				break
			}
			end = j
		}

		parts := make([]string, 0, end-start+1)
		for _, part := range words[start : end+1] {
			if t := trimWord(part); t != "" {
				parts = append(parts, t)
			}
		}
		return strings.Join(parts, " ")
	}
	return ""
}

var companyIndicators = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:co-?founder|founder|ceo|cto) of\s+`),
	regexp.MustCompile(`(?i)\b(?:working|works|work) at\s+`),
	regexp.MustCompile(`(?i)\bat\s+`),
}

var handlePattern = regexp.MustCompile(`(?:^|[\s(,])@(\w+)`)

var clauseSeparators = regexp.MustCompile(`[|,;·•()\n]|\s-\s|\.(?:\s|$)`)

// Company returns the organisation named after the earliest indicator phrase
// ("founder of", "working at", "at ", "@handle"), limited to three words.
func Company(text string) string {
	bestPos := -1
	best := ""

	for _, re := range companyIndicators {
		loc := re.FindStringIndex(text)
		if loc == nil || (bestPos >= 0 && loc[0] >= bestPos) {
			continue
		}
		if name := leadingName(text[loc[1]:]); name != "" {
			bestPos, best = loc[0], name
		}
	}

	if m := handlePattern.FindStringSubmatchIndex(text); m != nil {
		if bestPos < 0 || m[2] < bestPos {
			best = text[m[2]:m[3]]
		}
	}

	return best
}

// leadingName takes up to three words from the start of tail, stopping at
// clause separators and lowercase stopwords.
func leadingName(tail string) string {
	if loc := clauseSeparators.FindStringIndex(tail); loc != nil {
		tail = tail[:loc[0]]
	}

	var parts []string
	for _, w := range strings.Fields(tail) {
		if len(parts) == 3 {
			break
		}
		t := strings.TrimLeft(trimWord(w), "@")
		if t == "" {
			break
		}
		if t == strings.ToLower(t) && stopwords[t] {
			break
		}
		parts = append(parts, t)
	}
	return strings.Join(parts, " ")
}

// matchesAny reports whether word is, or inflects, one of keywords.
func matchesAny(word string, keywords []string) bool {
	if word == "" {
		return false
	}
	for _, kw := range keywords {
		switch {
		case word == kw:
			return true
		case strings.HasSuffix(word, "-"+kw):
			return true
		case word == kw+"s", word == kw+"ing":
			return true
		}
	}
	return false
}

func normalizeWord(w string) string {
	return strings.ToLower(trimWord(w))
}

// trimWord strips surrounding punctuation, keeping inner hyphens and
// ampersands.
func trimWord(w string) string {
	return strings.TrimFunc(w, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '@' && r != '+' && r != '#'
	})
}

func endsClause(w string) bool {
	return strings.HasSuffix(w, ",") || strings.HasSuffix(w, "|") ||
		strings.HasSuffix(w, ";") || strings.HasSuffix(w, ".") || w == "-"
}

func startsUpper(w string) bool {
	for _, r := range w {
		return unicode.IsUpper(r)
	}
	return false
}
