package fields

import "strings"

const EmploymentUnknown = "Unknown"

// employmentRules are checked top to bottom and the first rule whose keywords
// all occur wins. Combined keywords come first so "full-time manager" is
// Full-time rather than Managerial.
var employmentRules = []struct {
	keywords []string
	label    string
}{
	{[]string{"full", "time"}, "Full-time"},
	{[]string{"part", "time"}, "Part-time"},
	{[]string{"contract"}, "Contract"},
	{[]string{"intern"}, "Internship"},
	{[]string{"temporary"}, "Temporary"},
	{[]string{"manager"}, "Managerial"},
	{[]string{"permanent"}, "Permanent"},
	{[]string{"shift"}, "Shift work"},
}

// ClassifyEmploymentType maps free text to a canonical employment type.
// Text carrying bracket characters is treated as leaked markup and yields Unknown.
func ClassifyEmploymentType(raw string) Result[string] {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" || strings.ContainsAny(s, "{[<") {
		return Default(EmploymentUnknown)
	}

	for _, rule := range employmentRules {
		if containsAll(s, rule.keywords) {
			return Parsed(rule.label)
		}
	}
	return Default(EmploymentUnknown)
}

func containsAll(s string, needles []string) bool {
	for _, n := range needles {
		if !strings.Contains(s, n) {
			return false
		}
	}
	return true
}
