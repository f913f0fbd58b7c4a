package docstore

import (
	"encoding/json"
	"maps"
	"strconv"
)

// Fields is the body of a document.
type Fields map[string]any

// Clone returns a shallow copy of f.
func (f Fields) Clone() Fields {
	if f == nil {
		return Fields{}
	}
	return maps.Clone(f)
}

// Merge returns a copy of f with every key of patch written over it.
func (f Fields) Merge(patch Fields) Fields {
	merged := f.Clone()
	for k, v := range patch {
		merged[k] = v
	}
	return merged
}

// String returns the string stored under key, or "" when absent or not a string.
func (f Fields) String(key string) string {
	if s, ok := f[key].(string); ok {
		return s
	}
	return ""
}

// Int returns the integer stored under key. Numbers decoded from JSON arrive
// as float64 or json.Number depending on the decoder, so both are accepted.
func (f Fields) Int(key string) int {
	switch v := f[key].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i)
		}
		if fl, err := v.Float64(); err == nil {
			return int(fl)
		}
	case string:
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return 0
}
