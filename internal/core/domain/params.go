package domain

import (
	"math"
	"strconv"
	"strings"
)

// Helpers for reading the open-ended filter and search_parameters maps.
// Values may arrive as Go types or as decoded JSON (float64, []any), and
// the CLI passes strings; all are accepted.

// ParamInt returns m[key] as an int, or def when absent or not numeric.
func ParamInt(m map[string]any, key string, def int) int {
	switch v := m[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return def
		}
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

// ParamString returns m[key] as a trimmed string, or def.
func ParamString(m map[string]any, key, def string) string {
	if s, ok := m[key].(string); ok && strings.TrimSpace(s) != "" {
		return strings.TrimSpace(s)
	}
	return def
}

// ParamBool returns m[key] as a bool, or def.
func ParamBool(m map[string]any, key string, def bool) bool {
	switch v := m[key].(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return def
}

// ParamStrings returns m[key] as a string slice. A comma-separated string
// is split.
func ParamStrings(m map[string]any, key string) []string {
	if s, ok := m[key].(string); ok {
		var out []string
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}
	return toStrings(m[key])
}

// MergeParams returns a new map holding base overlaid with override.
func MergeParams(base, override map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}
