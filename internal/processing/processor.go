// Package processing holds the text normalization primitives every stage shares.
package processing

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var (
	whitespace    = regexp.MustCompile(`[\s\p{Zs}]+`)
	listDelimiter = regexp.MustCompile(`[,;|]`)
	quotedItem    = regexp.MustCompile(`'([^']+)'|"([^"]+)"`)
)

// NormalizeText applies NFC composition, turns non-breaking spaces into plain
// spaces, collapses whitespace runs and trims the ends.
func NormalizeText(input string) string {
	if input == "" {
		return ""
	}
	s := norm.NFC.String(input)
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Stringify renders a decoded JSON value as normalized text. Nil becomes "".
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return NormalizeText(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case []any:
		return strings.Join(ToList(val), ", ")
	default:
		return NormalizeText(fmt.Sprint(val))
	}
}

// ToList coerces a string, a list or nil into a list of normalized, non-empty strings.
// Bracketed strings are parsed as list literals before falling back to splitting
// on comma, semicolon or pipe.
func ToList(v any) []string {
	switch val := v.(type) {
	case nil:
		return nil
	case []string:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s := NormalizeText(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s := Stringify(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		return splitList(NormalizeText(val))
	default:
		return splitList(Stringify(val))
	}
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		if items, ok := parseListLiteral(s); ok {
			return items
		}
	}

	parts := listDelimiter.Split(s, -1)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseListLiteral(s string) ([]string, bool) {
	var decoded []any
	if err := json.Unmarshal([]byte(s), &decoded); err == nil {
		return ToList(decoded), true
	}

	matches := quotedItem.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		inner := strings.TrimSpace(s[1 : len(s)-1])
		if inner == "" {
			return nil, true
		}
		return nil, false
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		item := m[1]
		if item == "" {
			item = m[2]
		}
		if item = NormalizeText(item); item != "" {
			out = append(out, item)
		}
	}
	return out, true
}

// DedupeFold drops case-insensitive duplicates, keeping the first spelling and order.
func DedupeFold(items []string) []string {
	if len(items) == 0 {
		return items
	}
	fold := cases.Fold()
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		key := fold.String(item)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

// TitleCase upper-cases the first letter of every word and lower-cases the rest.
func TitleCase(s string) string {
	return cases.Title(language.Und).String(s)
}

// JoinList joins list items with "; ", the separator used for flattened location columns.
func JoinList(items []string) string {
	return strings.Join(items, "; ")
}

// Items coerces a string or list into its raw items without splitting strings.
// Non-string list elements are stringified.
func Items(v any) []string {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		return []string{val}
	case []string:
		return append([]string(nil), val...)
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
				continue
			}
			out = append(out, Stringify(item))
		}
		return out
	default:
		return []string{Stringify(val)}
	}
}
