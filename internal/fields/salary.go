package fields

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/DeafMist/job-radar/internal/processing"
)

type Currency string

const (
	CurrencyNone Currency = ""
	CurrencyVND  Currency = "VND"
	CurrencyUSD  Currency = "USD"
	CurrencyEUR  Currency = "EUR"
)

type Period string

const (
	PeriodNone  Period = ""
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// Salary is a salary range in a single currency unit. Min and Max are either
// both nil or both set with *Max >= *Min.
type Salary struct {
	Currency Currency
	Min      *int64
	Max      *int64
	Period   Period
}

// currencyTokens is scanned in order: codes, then symbols, then the bare "đ"
// which also occurs inside ordinary Vietnamese words.
var currencyTokens = []struct {
	token    string
	currency Currency
}{
	{"vnđ", CurrencyVND},
	{"vnd", CurrencyVND},
	{"usd", CurrencyUSD},
	{"eur", CurrencyEUR},
	{"₫", CurrencyVND},
	{"$", CurrencyUSD},
	{"€", CurrencyEUR},
	{"đ", CurrencyVND},
}

var vndHints = []string{"đ", "vnd", "₫", "triệu", "tr"}

var (
	negotiable  = regexp.MustCompile(`(?i)thỏa thuận|thoả thuận|tho[aâ]? thu[aâ]n|thương lượng|negotiable|competitive`)
	millionWord = regexp.MustCompile(`(?i)(?:^|[^\p{L}_])(?:triệu|tr|million)(?:$|[^\p{L}\p{N}_])`)
	thousandRe  = regexp.MustCompile(`(?i)(?:^|[^A-Za-z])k(?:$|[^\p{L}\p{N}_])|nghìn|ngàn|ngan`)
	numberRe    = regexp.MustCompile(`\d[\d,.]*`)
	monthlyRe   = regexp.MustCompile(`(?i)/\s*(?:mo|month)|per month|theo tháng|/\s*tháng`)
	yearlyRe    = regexp.MustCompile(`(?i)/\s*(?:yr|year)|per year|/\s*năm|theo năm`)
)

// SalaryParser parses salary strings. MillionMin and MillionMax bound the
// unscaled VND values that are read as millions when no scale word is present.
type SalaryParser struct {
	MillionMin int64
	MillionMax int64
}

// DefaultSalaryParser reads bare VND values in [1, 300] as millions.
var DefaultSalaryParser = SalaryParser{MillionMin: 1, MillionMax: 300}

// ParseSalary parses with DefaultSalaryParser.
func ParseSalary(raw string) Result[Salary] {
	return DefaultSalaryParser.Parse(raw)
}

// Parse returns the salary range expressed in raw. Negotiable or empty input
// yields an empty Salary; input without numbers yields currency and period only.
// Both cases are marked Defaulted.
func (p SalaryParser) Parse(raw string) Result[Salary] {
	s := processing.NormalizeText(raw)
	if s == "" || negotiable.MatchString(s) {
		return Default(Salary{})
	}

	lower := strings.ToLower(s)
	out := Salary{
		Currency: detectCurrency(lower),
		Period:   detectPeriod(s),
	}

	nums := extractNumbers(s)
	if len(nums) == 0 {
		return Default(out)
	}

	lo, hi := nums[0], nums[0]
	for _, n := range nums[1:] {
		lo = min(lo, n)
		hi = max(hi, n)
	}

	var scale int64 = 1
	switch {
	case millionWord.MatchString(s):
		scale = 1_000_000
	case thousandRe.MatchString(s):
		scale = 1_000
	case out.Currency == CurrencyVND && lo >= p.MillionMin && hi <= p.MillionMax && containsAny(lower, vndHints):
		scale = 1_000_000
	}

	if hi > math.MaxInt64/scale {
		return Default(out)
	}
	out.Min = int64Ptr(lo * scale)
	out.Max = int64Ptr(hi * scale)
	return Parsed(out)
}

func detectCurrency(lower string) Currency {
	for _, c := range currencyTokens {
		if strings.Contains(lower, c.token) {
			return c.currency
		}
	}
	return CurrencyVND
}

func detectPeriod(s string) Period {
	switch {
	case monthlyRe.MatchString(s):
		return PeriodMonth
	case yearlyRe.MatchString(s):
		return PeriodYear
	default:
		return PeriodMonth
	}
}

// extractNumbers treats commas and dots as thousands separators.
func extractNumbers(s string) []int64 {
	matches := numberRe.FindAllString(s, -1)
	out := make([]int64, 0, len(matches))
	for _, m := range matches {
		digits := strings.NewReplacer(",", "", ".", "").Replace(m)
		n, err := strconv.ParseInt(digits, 10, 64)
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	return out
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
