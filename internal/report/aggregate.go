package report

import (
	"cmp"
	"math"
	"slices"

	"github.com/DeafMist/job-radar/internal/fields"
)

// LowConfidenceThreshold marks classifications worth a manual look.
const LowConfidenceThreshold = 0.5

type Overview struct {
	Jobs        int      `json:"jobs"`
	Industries  int      `json:"industries"`
	Companies   int      `json:"companies"`
	Cities      int      `json:"cities"`
	AvgYearsMin *float64 `json:"avg_years_min"`
	AvgYearsMax *float64 `json:"avg_years_max"`
}

type IndustryStats struct {
	Industry    string   `json:"industry"`
	Posts       int      `json:"posts"`
	AvgYearsMin *float64 `json:"avg_exp_min,omitempty"`
	AvgYearsMax *float64 `json:"avg_exp_max,omitempty"`
}

// Pivot counts postings per industry (rows) and category (columns). Rows are
// ordered by their total, largest first.
type Pivot struct {
	Rows    []string `json:"rows"`
	Columns []string `json:"columns"`
	Counts  [][]int  `json:"counts"`
}

// Count is how often a value occurs within an industry.
type Count struct {
	Industry string `json:"industry"`
	Value    string `json:"value"`
	Count    int    `json:"count"`
}

type LowConfidence struct {
	Name       string  `json:"name"`
	Company    string  `json:"company"`
	Industry   string  `json:"industry"`
	RoleFamily string  `json:"role_family"`
	Seniority  string  `json:"seniority"`
	Confidence float64 `json:"confidence"`
	Summary    string  `json:"summary"`
}

type Share struct {
	EmploymentType string  `json:"employment_type"`
	Percent        float64 `json:"percent"`
}

// Report holds every aggregate. Sections whose source columns were missing are nil.
type Report struct {
	Overview        Overview        `json:"overview"`
	Dropped         Dropped         `json:"dropped"`
	ByIndustry      []IndustryStats `json:"by_industry,omitempty"`
	SeniorityPivot  *Pivot          `json:"seniority_pivot,omitempty"`
	CityPivot       *Pivot          `json:"city_pivot,omitempty"`
	TopSkills       []Count         `json:"top_skills,omitempty"`
	Languages       []Count         `json:"languages,omitempty"`
	LowConfidence   []LowConfidence `json:"low_confidence,omitempty"`
	EmploymentTypes []Share         `json:"employment_types,omitempty"`
}

// Build computes the aggregates over a prepared dataset. Counts are per record,
// except the city pivot which counts each record once per resolved city.
func Build(d Dataset) Report {
	r := Report{Dropped: d.Dropped}
	jobs := d.Jobs

	r.Overview = Overview{
		Jobs:      len(jobs),
		Companies: distinct(jobs, func(j Job) []string { return []string{j.Company} }),
	}
	if d.Has(ColIndustry) {
		r.Overview.Industries = distinct(jobs, func(j Job) []string { return []string{j.Industry} })
	}
	if d.Has(ColCityGuess) {
		r.Overview.Cities = distinct(jobs, func(j Job) []string { return j.Cities })
	}
	if d.Has(ColYearsMin) {
		r.Overview.AvgYearsMin = mean(jobs, func(j Job) *float64 { return j.YearsMin })
	}
	if d.Has(ColYearsMax) {
		r.Overview.AvgYearsMax = mean(jobs, func(j Job) *float64 { return j.YearsMax })
	}

	if d.Has(ColIndustry) {
		r.ByIndustry = byIndustry(d)
		if d.Has(ColSeniority) {
			r.SeniorityPivot = pivot(jobs, func(j Job) []string { return []string{j.Seniority} })
		}
		if d.Has(ColCityGuess) {
			r.CityPivot = pivot(jobs, func(j Job) []string { return j.Cities })
		}
		if d.Has(ColCoreSkills) {
			r.TopSkills = countWithin(jobs, func(j Job) []string { return j.Skills })
		}
		if d.Has(ColLanguagesRequired) {
			r.Languages = countWithin(jobs, func(j Job) []string { return j.Languages })
		}
	}

	if d.Has(ColConfidence) {
		r.LowConfidence = lowConfidence(jobs)
	}
	if d.Has(ColEmploymentType) {
		r.EmploymentTypes = employmentShares(jobs)
	}
	return r
}

func byIndustry(d Dataset) []IndustryStats {
	groups := make(map[string][]Job)
	for _, j := range d.Jobs {
		groups[j.Industry] = append(groups[j.Industry], j)
	}

	out := make([]IndustryStats, 0, len(groups))
	for industry, jobs := range groups {
		s := IndustryStats{Industry: industry, Posts: len(jobs)}
		if d.Has(ColYearsMin) {
			s.AvgYearsMin = mean(jobs, func(j Job) *float64 { return j.YearsMin })
		}
		if d.Has(ColYearsMax) {
			s.AvgYearsMax = mean(jobs, func(j Job) *float64 { return j.YearsMax })
		}
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b IndustryStats) int {
		return cmp.Or(cmp.Compare(b.Posts, a.Posts), cmp.Compare(a.Industry, b.Industry))
	})
	return out
}

func pivot(jobs []Job, category func(Job) []string) *Pivot {
	counts := make(map[string]map[string]int)
	totals := make(map[string]int)
	colSet := make(map[string]struct{})
	for _, j := range jobs {
		for _, c := range category(j) {
			if counts[j.Industry] == nil {
				counts[j.Industry] = make(map[string]int)
			}
			counts[j.Industry][c]++
			totals[j.Industry]++
			colSet[c] = struct{}{}
		}
	}

	p := &Pivot{}
	for industry := range counts {
		p.Rows = append(p.Rows, industry)
	}
	slices.SortFunc(p.Rows, func(a, b string) int {
		return cmp.Or(cmp.Compare(totals[b], totals[a]), cmp.Compare(a, b))
	})
	for c := range colSet {
		p.Columns = append(p.Columns, c)
	}
	slices.Sort(p.Columns)

	for _, industry := range p.Rows {
		row := make([]int, len(p.Columns))
		for i, c := range p.Columns {
			row[i] = counts[industry][c]
		}
		p.Counts = append(p.Counts, row)
	}
	return p
}

// countWithin counts values per industry, sorted by industry then count descending.
func countWithin(jobs []Job, values func(Job) []string) []Count {
	type key struct{ industry, value string }
	counts := make(map[key]int)
	for _, j := range jobs {
		for _, v := range values(j) {
			if v == "" {
				continue
			}
			counts[key{j.Industry, v}]++
		}
	}

	out := make([]Count, 0, len(counts))
	for k, n := range counts {
		out = append(out, Count{Industry: k.industry, Value: k.value, Count: n})
	}
	slices.SortFunc(out, func(a, b Count) int {
		return cmp.Or(
			cmp.Compare(a.Industry, b.Industry),
			cmp.Compare(b.Count, a.Count),
			cmp.Compare(a.Value, b.Value),
		)
	})
	return out
}

func lowConfidence(jobs []Job) []LowConfidence {
	var out []LowConfidence
	for _, j := range jobs {
		if j.Confidence == nil || *j.Confidence >= LowConfidenceThreshold {
			continue
		}
		out = append(out, LowConfidence{
			Name:       j.Name,
			Company:    j.Company,
			Industry:   j.Industry,
			RoleFamily: j.RoleFamily,
			Seniority:  j.Seniority,
			Confidence: *j.Confidence,
			Summary:    j.Summary,
		})
	}
	return out
}

func employmentShares(jobs []Job) []Share {
	if len(jobs) == 0 {
		return nil
	}
	counts := make(map[string]int)
	for _, j := range jobs {
		counts[fields.ClassifyEmploymentType(j.EmploymentType).Value]++
	}

	out := make([]Share, 0, len(counts))
	for t, n := range counts {
		pct := math.Round(float64(n)*100/float64(len(jobs))*100) / 100
		out = append(out, Share{EmploymentType: t, Percent: pct})
	}
	slices.SortFunc(out, func(a, b Share) int {
		return cmp.Or(cmp.Compare(b.Percent, a.Percent), cmp.Compare(a.EmploymentType, b.EmploymentType))
	})
	return out
}

func distinct(jobs []Job, values func(Job) []string) int {
	seen := make(map[string]struct{})
	for _, j := range jobs {
		for _, v := range values(j) {
			seen[v] = struct{}{}
		}
	}
	return len(seen)
}

func mean(jobs []Job, value func(Job) *float64) *float64 {
	sum, n := 0.0, 0
	for _, j := range jobs {
		if v := value(j); v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}
