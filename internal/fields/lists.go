package fields

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/DeafMist/job-radar/internal/processing"
)

// benefitRepairs insert the separators that the crawler drops when it
// concatenates adjacent benefit labels.
var benefitRepairs = []struct {
	pattern *regexp.Regexp
	repl    string
}{
	{regexp.MustCompile(`(Healthcare)(benefit)`), "$1 $2"},
	{regexp.MustCompile(`(performance bonus)(Healthcare)`), "$1; $2"},
	{regexp.MustCompile(`(benefit)(Allowances?)`), "$1; $2"},
	{regexp.MustCompile(`(\p{Ll})(Allowances?|Healthcare|Sport|Training|Laptop)\b`), "$1; $2"},
}

// ParseBenefits splits a benefits field (a string or a list of strings) into
// distinct entries. "label: detail" fragments become two entries.
func ParseBenefits(v any) []string {
	text := strings.Join(processing.Items(v), "\n")
	for _, r := range benefitRepairs {
		text = r.pattern.ReplaceAllString(text, r.repl)
	}

	var out []string
	for _, part := range splitBenefits(text) {
		part = strings.Trim(processing.NormalizeText(part), " -•")
		if part == "" {
			continue
		}
		label, detail, found := strings.Cut(part, ":")
		if !found {
			out = append(out, part)
			continue
		}
		if label = strings.TrimSpace(label); label != "" {
			out = append(out, label)
		}
		if detail = strings.TrimSpace(detail); detail != "" {
			out = append(out, detail)
		}
	}
	return processing.DedupeFold(out)
}

// splitBenefits cuts on ; • | and newlines, and on a comma only when the next
// non-space rune is upper case.
func splitBenefits(s string) []string {
	runes := []rune(s)
	var parts []string
	start := 0
	for i, r := range runes {
		cut := false
		switch r {
		case ';', '•', '|', '\n':
			cut = true
		case ',':
			j := i + 1
			for j < len(runes) && unicode.IsSpace(runes[j]) {
				j++
			}
			cut = j < len(runes) && unicode.IsUpper(runes[j])
		}
		if cut {
			parts = append(parts, string(runes[start:i]))
			start = i + 1
		}
	}
	return append(parts, string(runes[start:]))
}

var skillDelimiter = regexp.MustCompile(`[,;|]`)

// SplitSkills splits a skills string on comma, semicolon or pipe and drops
// case-insensitive duplicates.
func SplitSkills(raw string) []string {
	s := processing.NormalizeText(raw)
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range skillDelimiter.Split(s, -1) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return processing.DedupeFold(out)
}

// SplitCareer splits "Main > Sub" into its two levels. Sub is empty when absent.
func SplitCareer(raw string) (main, sub string) {
	s := processing.NormalizeText(raw)
	if s == "" {
		return "", ""
	}
	parts := strings.Split(s, ">")
	main = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		sub = strings.TrimSpace(parts[1])
	}
	return main, sub
}
