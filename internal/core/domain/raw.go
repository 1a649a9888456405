package domain

// RawResult is one platform-native record returned by an adapter's search,
// before extraction into a Prospect.
type RawResult map[string]any

// Str returns the string at key, or "".
func (r RawResult) Str(key string) string {
	s, _ := r[key].(string)
	return s
}

// Num returns the numeric value at key as float64, or 0.
// JSON numbers, Go integers and floats are all accepted.
func (r RawResult) Num(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case int32:
		return float64(v)
	default:
		return 0
	}
}

// Bool returns the boolean at key, or false.
func (r RawResult) Bool(key string) bool {
	b, _ := r[key].(bool)
	return b
}

// Map returns the nested object at key, or nil.
func (r RawResult) Map(key string) RawResult {
	switch v := r[key].(type) {
	case RawResult:
		return v
	case map[string]any:
		return RawResult(v)
	default:
		return nil
	}
}
