package dataset

import (
	"strconv"
	"strings"

	"github.com/DeafMist/job-radar/internal/processing"
)

// Record is one loosely-typed row of a JSON dataset. Accessors report false
// when the key is missing or null.
type Record map[string]any

// Has reports whether key is present with a non-null value.
func (r Record) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

// String returns the value under key as normalized text.
func (r Record) String(key string) (string, bool) {
	if !r.Has(key) {
		return "", false
	}
	return processing.Stringify(r[key]), true
}

// List coerces the value under key into a list.
func (r Record) List(key string) ([]string, bool) {
	if !r.Has(key) {
		return nil, false
	}
	items := processing.ToList(r[key])
	if items == nil {
		items = []string{}
	}
	return items, true
}

// Float reads a number, accepting numeric strings.
func (r Record) Float(key string) (float64, bool) {
	if !r.Has(key) {
		return 0, false
	}
	switch v := r[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Int reads a whole number, truncating fractions.
func (r Record) Int(key string) (int, bool) {
	f, ok := r.Float(key)
	return int(f), ok
}

// Object returns a nested object under key.
func (r Record) Object(key string) (Record, bool) {
	obj, ok := r[key].(map[string]any)
	return Record(obj), ok
}

// HasColumn reports whether any record carries key, even as null.
func HasColumn(records []map[string]any, key string) bool {
	for _, r := range records {
		if _, ok := r[key]; ok {
			return true
		}
	}
	return false
}
