// Package report prepares merged records for analysis and computes the
// industry hiring aggregates.
//
// Every aggregate depends on one or more columns. When a column is absent from
// the whole dataset the aggregates that need it are omitted, never failed.
package report

import (
	"github.com/DeafMist/job-radar/internal/dataset"
	"github.com/DeafMist/job-radar/internal/fields"
	"github.com/DeafMist/job-radar/internal/gazetteer"
	"github.com/DeafMist/job-radar/internal/models"
)

// Column names the report reads.
const (
	ColName              = "name"
	ColCompany           = "company"
	ColIndustry          = "industry"
	ColRoleFamily        = "role_family"
	ColSeniority         = "seniority"
	ColEmploymentType    = "employment_type"
	ColYearsMin          = "years_min"
	ColYearsMax          = "years_max"
	ColLanguagesRequired = "languages_required"
	ColCoreSkills        = "core_skills"
	ColCityGuess         = "city_guess"
	ColConfidence        = "confidence"
	ColSummary           = "summary"
)

var columns = []string{
	ColName, ColCompany, ColIndustry, ColRoleFamily, ColSeniority, ColEmploymentType,
	ColYearsMin, ColYearsMax, ColLanguagesRequired, ColCoreSkills, ColCityGuess,
	ColConfidence, ColSummary,
}

// badIndustries are placeholder values that carry no industry.
var badIndustries = map[string]struct{}{
	"#Other":       {},
	"<--OTHER-->":  {},
	"<career>":     {},
	"Others":       {},
	models.Unknown: {},
}

// Job is one merged record after preparation. It appears once per record;
// Cities holds every city the record resolved to.
type Job struct {
	Name           string
	Company        string
	Industry       string
	RoleFamily     string
	Seniority      string
	EmploymentType string
	Summary        string
	YearsMin       *float64
	YearsMax       *float64
	Confidence     *float64
	Languages      []string
	Skills         []string
	Cities         []string
}

// Dropped counts the records removed during preparation, by reason.
type Dropped struct {
	BadIndustry int `json:"bad_industry"`
	NoLanguage  int `json:"no_language"`
	NoCity      int `json:"no_city"`
}

// Dataset is the prepared input of Build.
type Dataset struct {
	Jobs    []Job
	Dropped Dropped
	present map[string]bool
}

// Has reports whether the input carried column.
func (d Dataset) Has(column string) bool {
	return d.present[column]
}

// Prepare filters and normalizes merged records.
func Prepare(records []map[string]any, matcher *gazetteer.Matcher) Dataset {
	if matcher == nil {
		matcher = gazetteer.New(gazetteer.DefaultThreshold)
	}
	d := Dataset{present: make(map[string]bool, len(columns))}
	for _, c := range columns {
		d.present[c] = dataset.HasColumn(records, c)
	}

	for _, row := range records {
		r := dataset.Record(row)

		job := Job{
			Name:           orUnknown(r, ColName),
			Company:        orUnknown(r, ColCompany),
			RoleFamily:     orUnknown(r, ColRoleFamily),
			Seniority:      orUnknown(r, ColSeniority),
			EmploymentType: orUnknown(r, ColEmploymentType),
			YearsMin:       optFloat(r, ColYearsMin),
			YearsMax:       optFloat(r, ColYearsMax),
			Confidence:     optFloat(r, ColConfidence),
		}
		job.Summary, _ = r.String(ColSummary)

		if d.Has(ColIndustry) {
			industry, ok := r.String(ColIndustry)
			if _, bad := badIndustries[industry]; !ok || bad || industry == "" {
				d.Dropped.BadIndustry++
				continue
			}
			job.Industry = industry
		}

		if d.Has(ColLanguagesRequired) {
			job.Languages = normalizeLanguages(r)
			if len(job.Languages) == 0 {
				d.Dropped.NoLanguage++
				continue
			}
		}

		job.Skills, _ = r.List(ColCoreSkills)

		if d.Has(ColCityGuess) {
			raw, _ := r.String(ColCityGuess)
			job.Cities = matcher.Resolve(raw)
			if len(job.Cities) == 0 {
				d.Dropped.NoCity++
				continue
			}
		}

		d.Jobs = append(d.Jobs, job)
	}
	return d
}

func normalizeLanguages(r dataset.Record) []string {
	items, _ := r.List(ColLanguagesRequired)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if lang := fields.NormalizeLanguage(item); !lang.Defaulted {
			out = append(out, lang.Value)
		}
	}
	return out
}

func orUnknown(r dataset.Record, key string) string {
	if s, ok := r.String(key); ok && s != "" {
		return s
	}
	return models.Unknown
}

func optFloat(r dataset.Record, key string) *float64 {
	f, ok := r.Float(key)
	if !ok {
		return nil
	}
	return &f
}
