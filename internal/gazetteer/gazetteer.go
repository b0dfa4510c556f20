// Package gazetteer resolves free-text locations to canonical Vietnamese
// first-level administrative units.
package gazetteer

import (
	"regexp"
	"strings"

	"github.com/hbollon/go-edlib"
	"github.com/mozillazg/go-unidecode"

	"github.com/DeafMist/job-radar/internal/processing"
)

// DefaultThreshold is the minimum similarity (0-100) for a fuzzy match.
const DefaultThreshold = 80

// Provinces lists the 63 first-level administrative units.
var Provinces = []string{
	"Hà Nội", "Hồ Chí Minh", "Hải Phòng", "Đà Nẵng", "Cần Thơ", "An Giang",
	"Bà Rịa - Vũng Tàu", "Bắc Giang", "Bắc Kạn", "Bạc Liêu", "Bắc Ninh",
	"Bến Tre", "Bình Định", "Bình Dương", "Bình Phước", "Bình Thuận",
	"Cà Mau", "Cao Bằng", "Đắk Lắk", "Đắk Nông", "Điện Biên", "Đồng Nai",
	"Đồng Tháp", "Gia Lai", "Hà Giang", "Hà Nam", "Hà Tĩnh", "Hải Dương",
	"Hậu Giang", "Hòa Bình", "Hưng Yên", "Khánh Hòa", "Kiên Giang", "Kon Tum",
	"Lai Châu", "Lâm Đồng", "Lạng Sơn", "Lào Cai", "Long An", "Nam Định",
	"Nghệ An", "Ninh Bình", "Ninh Thuận", "Phú Thọ", "Phú Yên", "Quảng Bình",
	"Quảng Nam", "Quảng Ngãi", "Quảng Ninh", "Quảng Trị", "Sóc Trăng",
	"Sơn La", "Tây Ninh", "Thái Bình", "Thái Nguyên", "Thanh Hóa",
	"Thừa Thiên Huế", "Tiền Giang", "Trà Vinh", "Tuyên Quang", "Vĩnh Long",
	"Vĩnh Phúc", "Yên Bái",
}

// Alias maps a canonical city to spellings and districts that imply it.
type Alias struct {
	City     string
	Variants []string
}

// Aliases is scanned in order; the first city with a matching variant wins.
var Aliases = []Alias{
	{City: "Hồ Chí Minh", Variants: []string{
		"Hồ Chí Minh", "TP HCM", "TP.HCM", "TP. HCM", "Ho Chi Minh", "Tp Hồ Chí Minh",
		"Thủ Đức", "Quận 1", "Quận 3", "Bình Thạnh", "Tân Bình", "Gò Vấp", "Phú Nhuận",
	}},
	{City: "Hà Nội", Variants: []string{
		"Hà Nội", "Ha Noi", "Hanoi", "Cầu Giấy", "Đống Đa", "Ba Đình", "Thanh Xuân",
		"Hoàng Mai", "Hà Đông", "Long Biên", "Nam Từ Liêm", "Bắc Từ Liêm",
	}},
	{City: "Đà Nẵng", Variants: []string{
		"Đà Nẵng", "Da Nang", "Hải Châu", "Sơn Trà", "Liên Chiểu", "Ngũ Hành Sơn", "Thanh Khê",
	}},
	{City: "Bình Dương", Variants: []string{"Bình Dương", "Binh Duong"}},
	{City: "Đồng Nai", Variants: []string{"Đồng Nai", "Dong Nai"}},
	{City: "Hải Phòng", Variants: []string{"Hải Phòng", "Hai Phong", "Ngô Quyền"}},
	{City: "Cần Thơ", Variants: []string{"Cần Thơ", "Can Tho"}},
}

var countryMarkers = []string{"việt nam", "vietnam"}

var placeholders = map[string]struct{}{
	"":        {},
	"unknown": {},
	"n/a":     {},
	"na":      {},
	"none":    {},
}

var candidateSeparator = regexp.MustCompile(`[;,]`)

type reference struct {
	name  string
	ascii string
}

// Matcher resolves locations against the alias table and the province list.
type Matcher struct {
	threshold float64
	refs      []reference
}

// New builds a Matcher. A non-positive threshold falls back to DefaultThreshold.
func New(threshold float64) *Matcher {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	refs := make([]reference, 0, len(Provinces))
	for _, p := range Provinces {
		refs = append(refs, reference{name: p, ascii: transliterate(p)})
	}
	return &Matcher{threshold: threshold, refs: refs}
}

// Threshold returns the minimum accepted similarity.
func (m *Matcher) Threshold() float64 {
	return m.threshold
}

// GuessCity scans the alias table for the first city whose variant appears in
// location. Failing that, a location naming the country yields its
// second-to-last comma segment, kept only when it fuzzy-matches a province.
func (m *Matcher) GuessCity(location string) string {
	s := processing.NormalizeText(location)
	if s == "" {
		return ""
	}
	lower := strings.ToLower(s)
	for _, a := range Aliases {
		for _, v := range a.Variants {
			if strings.Contains(lower, strings.ToLower(v)) {
				return a.City
			}
		}
	}

	for _, marker := range countryMarkers {
		if !strings.Contains(lower, marker) {
			continue
		}
		parts := strings.Split(s, ",")
		if len(parts) < 2 {
			return ""
		}
		if city, ok := m.bestMatch(strings.TrimSpace(parts[len(parts)-2])); ok {
			return city
		}
		return ""
	}
	return ""
}

// Resolve splits location on commas and semicolons and resolves every
// candidate to a province. Candidates scoring below the threshold are kept as
// title-cased text; placeholders are skipped.
func (m *Matcher) Resolve(location string) []string {
	var out []string
	for _, part := range candidateSeparator.Split(location, -1) {
		part = processing.NormalizeText(part)
		if part == "" {
			continue
		}
		if _, skip := placeholders[transliterate(part)]; skip {
			continue
		}
		if city, ok := m.bestMatch(part); ok {
			out = append(out, city)
			continue
		}
		out = append(out, processing.TitleCase(part))
	}
	return out
}

// Score returns the similarity of a and b after transliteration, 0-100.
func Score(a, b string) float64 {
	return ratio(transliterate(a), transliterate(b))
}

func (m *Matcher) bestMatch(candidate string) (string, bool) {
	ascii := transliterate(candidate)
	best, bestScore := -1, -1.0
	for i, ref := range m.refs {
		if score := ratio(ascii, ref.ascii); score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 || bestScore < m.threshold {
		return "", false
	}
	return m.refs[best].name, true
}

func transliterate(s string) string {
	return strings.ToLower(strings.TrimSpace(unidecode.Unidecode(s)))
}

// ratio is the normalized indel similarity: 200 * LCS / (len(a) + len(b)).
func ratio(a, b string) float64 {
	total := len([]rune(a)) + len([]rune(b))
	if total == 0 {
		return 100
	}
	return 200 * float64(edlib.LCS(a, b)) / float64(total)
}
