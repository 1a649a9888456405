package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ICP is an Ideal Customer Profile as produced by the external ICP generator.
// The schema is soft: absent or oddly typed fields degrade to empty values.
type ICP map[string]any

// String returns the first non-empty string value among keys.
// A list value contributes its first string element.
func (icp ICP) String(keys ...string) string {
	for _, key := range keys {
		if s := firstString(icp[key]); s != "" {
			return s
		}
	}
	return ""
}

// Strings flattens list- or scalar-valued fields under keys into one slice,
// preserving order. Empty strings are dropped.
func (icp ICP) Strings(keys ...string) []string {
	var out []string
	for _, key := range keys {
		out = append(out, toStrings(icp[key])...)
	}
	return out
}

// Nested walks a path of object keys and returns the value found, or nil.
func (icp ICP) Nested(path ...string) any {
	var cur any = map[string]any(icp)
	for _, key := range path {
		m, ok := asMap(cur)
		if !ok {
			return nil
		}
		cur = m[key]
	}
	return cur
}

// Objects returns the elements of the list at key that are JSON objects.
func (icp ICP) Objects(key string) []map[string]any {
	list, ok := icp[key].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if m, ok := asMap(item); ok {
			out = append(out, m)
		}
	}
	return out
}

// Description returns the free-text description of the profile.
func (icp ICP) Description() string {
	return icp.String("description", "summary", "product_description")
}

// ParseICP decodes an ICP from JSON. Markdown code fences around the
// document, as commonly emitted by language models, are removed first.
func ParseICP(data []byte) (ICP, error) {
	cleaned := StripCodeFences(string(data))
	if cleaned == "" {
		return nil, fmt.Errorf("%w: empty ICP document", ErrInvalidInput)
	}

	var icp ICP
	if err := json.Unmarshal([]byte(cleaned), &icp); err != nil {
		return nil, fmt.Errorf("%w: decode ICP: %v", ErrInvalidInput, err)
	}
	if icp == nil {
		return nil, fmt.Errorf("%w: ICP must be a JSON object", ErrInvalidInput)
	}
	return icp, nil
}

// StripCodeFences removes ```json and ``` markers and surrounding whitespace.
func StripCodeFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

// ToStrings converts a scalar or list value into a slice of trimmed,
// non-empty strings. Non-string elements are skipped.
func ToStrings(v any) []string {
	return toStrings(v)
}

func toStrings(v any) []string {
	switch val := v.(type) {
	case string:
		if s := strings.TrimSpace(val); s != "" {
			return []string{s}
		}
	case []string:
		out := make([]string, 0, len(val))
		for _, s := range val {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
		}
		return out
	}
	return nil
}

func firstString(v any) string {
	if s := toStrings(v); len(s) > 0 {
		return s[0]
	}
	return ""
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case ICP:
		return m, true
	default:
		return nil, false
	}
}
