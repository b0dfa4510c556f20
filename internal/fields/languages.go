package fields

import (
	"regexp"
	"strings"
)

var (
	languageArtifacts = regexp.MustCompile(`[\[\]'"]`)
	englishLevel      = regexp.MustCompile(`(?i)(English).*?(A1|A2|B1|B2|C1|C2)`)
)

var languageJunk = map[string]struct{}{
	"":      {},
	"none":  {},
	"na":    {},
	"n/a":   {},
	"other": {},
}

var languageRewrites = strings.NewReplacer(
	"English (fluent)", "English Fluent",
	"English B2+", "English B2",
	"Good Writing and Speaking English", "English",
)

// NormalizeLanguage canonicalizes a language requirement. Junk values yield ""
// marked Defaulted, meaning the requirement is absent.
func NormalizeLanguage(raw string) Result[string] {
	s := strings.TrimSpace(languageArtifacts.ReplaceAllString(raw, ""))
	if _, junk := languageJunk[strings.ToLower(s)]; junk {
		return Default("")
	}

	s = languageRewrites.Replace(s)
	if m := englishLevel.FindStringSubmatch(s); m != nil {
		return Parsed("English " + strings.ToUpper(m[2]))
	}

	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "english"):
		return Parsed("English")
	case strings.Contains(lower, "vietnamese"):
		return Parsed("Vietnamese")
	default:
		return Parsed(s)
	}
}
