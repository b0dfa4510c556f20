package linker

import (
	"strings"

	"github.com/DeafMist/job-radar/internal/fields"
	"github.com/DeafMist/job-radar/internal/processing"
)

var keyStripper = strings.NewReplacer(
	"“", "", "”", "", `"`, "", "'", "", "’", "", "‘", "",
	"-", "", "–", "", "—", "",
)

// NameKey derives the join key of a posting name: normalized, lower-cased, with
// quote and dash characters removed. NameKey(NameKey(s)) == NameKey(s).
func NameKey(name string) string {
	s := strings.ToLower(processing.NormalizeText(name))
	return processing.NormalizeText(keyStripper.Replace(s))
}

type aliasRule struct {
	alias  string
	family string
}

// roleAliases maps lower-cased role text to a family. Exact matches only.
var roleAliases = []aliasRule{
	{"operational", "Operations"},
	{"operation", "Operations"},
	{"ops", "Operations"},
	{"engineering", "Engineering"},
	{"dev ops", "DevOps"},
	{"dev-ops", "DevOps"},
	{"devop", "DevOps"},
	{"sw", "Software"},
	{"software engineering", "Software"},
	{"qa", "QA"},
	{"quality assurance", "QA"},
	{"hr", "HR"},
}

// NormalizeRoleFamily maps a known alias to its role family. Other text is
// returned normalized and marked as defaulted.
func NormalizeRoleFamily(raw string) fields.Result[string] {
	s := processing.NormalizeText(raw)
	key := strings.ToLower(s)
	for _, rule := range roleAliases {
		if key == rule.alias {
			return fields.Parsed(rule.family)
		}
	}
	return fields.Default(s)
}

// Seniorities is the closed set of seniority levels.
var Seniorities = []string{"Intern", "Junior", "Mid", "Senior", "Lead", "Manager", "Director"}

// DefaultSeniority is used when no seniority keyword is found.
const DefaultSeniority = "Mid"

// seniorityRules is checked in order; manager outranks lead and so on.
var seniorityRules = []aliasRule{
	{"manager", "Manager"},
	{"lead", "Lead"},
	{"senior", "Senior"},
	{"junior", "Junior"},
	{"intern", "Intern"},
	{"director", "Director"},
}

// NormalizeSeniority keeps members of Seniorities and reduces anything else by
// keyword, falling back to DefaultSeniority.
func NormalizeSeniority(raw string) fields.Result[string] {
	s := processing.NormalizeText(raw)
	for _, level := range Seniorities {
		if s == level {
			return fields.Parsed(s)
		}
	}
	lower := strings.ToLower(s)
	for _, rule := range seniorityRules {
		if strings.Contains(lower, rule.alias) {
			return fields.Parsed(rule.family)
		}
	}
	return fields.Default(DefaultSeniority)
}
