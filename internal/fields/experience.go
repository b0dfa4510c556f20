package fields

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/DeafMist/job-radar/internal/processing"
)

// Years is an experience requirement in whole years. Either bound may be unknown.
type Years struct {
	Min *int
	Max *int
}

var (
	noExperience = regexp.MustCompile(`(?i)không yêu cầu|no\s+experience`)
	minimumRe    = regexp.MustCompile(`(?i)tối thiểu|min`)
	integerRe    = regexp.MustCompile(`\d+`)
)

// ParseExperience reads an experience requirement such as "2-5 years",
// "Tối thiểu 3 năm" or "Không yêu cầu kinh nghiệm".
func ParseExperience(raw string) Result[Years] {
	s := processing.NormalizeText(raw)
	if s == "" {
		return Default(Years{})
	}
	if noExperience.MatchString(s) {
		return Parsed(Years{Min: intPtr(0), Max: intPtr(0)})
	}

	nums := Integers(s)
	if len(nums) == 0 {
		return Default(Years{})
	}

	switch {
	case strings.ContainsAny(s, "-–"):
		out := Years{Min: intPtr(nums[0])}
		if len(nums) > 1 {
			out.Max = intPtr(nums[1])
		}
		return Parsed(out)
	case minimumRe.MatchString(s):
		return Parsed(Years{Min: intPtr(nums[0])})
	case len(nums) == 1:
		return Parsed(Years{Min: intPtr(nums[0]), Max: intPtr(nums[0])})
	default:
		return Parsed(Years{Min: intPtr(nums[0]), Max: intPtr(nums[1])})
	}
}

// Integers returns every run of digits in s, in order.
func Integers(s string) []int {
	matches := integerRe.FindAllString(s, -1)
	out := make([]int, 0, len(matches))
	for _, m := range matches {
		n, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	return out
}
