package loosejson

import (
	"strconv"
	"strings"

	"github.com/DeafMist/job-radar/internal/fields"
	"github.com/DeafMist/job-radar/internal/models"
	"github.com/DeafMist/job-radar/internal/processing"
)

// DefaultConfidence is used when the answer carries no usable confidence.
const DefaultConfidence = 0.6

// String returns the first non-empty string stored under any of keys, in order.
// Numbers are returned as written; lists and objects as their source text.
func String(doc *Document, keys ...string) fields.Result[string] {
	for _, key := range keys {
		v, ok := doc.Find(key)
		if !ok {
			continue
		}
		var s string
		if v.Kind == KindString {
			s = processing.NormalizeText(v.Str)
		} else {
			s = processing.NormalizeText(v.Raw)
		}
		if s != "" {
			return fields.Parsed(s)
		}
	}
	return fields.Default("")
}

// List returns the first non-empty list stored under any of keys. A bracket
// expression that does not parse yields an empty list. A plain string is split
// the way list columns are split elsewhere.
func List(doc *Document, keys ...string) fields.Result[[]string] {
	for _, key := range keys {
		v, ok := doc.Find(key)
		if !ok {
			continue
		}
		var items []string
		switch v.Kind {
		case KindList:
			if v.Broken {
				continue
			}
			items = listItems(v)
		case KindString:
			items = processing.ToList(v.Str)
		default:
			continue
		}
		if len(items) > 0 {
			return fields.Parsed(items)
		}
	}
	return fields.Default([]string{})
}

func listItems(v Value) []string {
	out := make([]string, 0, len(v.Items))
	for _, item := range v.Items {
		s := item.Raw
		if item.Kind == KindString {
			s = item.Str
		}
		if s = processing.NormalizeText(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Number reads a numeric field. Quoted numbers are accepted; anything else is 0.
func Number(doc *Document, key string) fields.Result[float64] {
	v, ok := doc.Find(key)
	if !ok {
		return fields.Default(0.0)
	}
	text := strings.TrimSpace(v.Str)
	if v.Kind != KindNumber && v.Kind != KindString {
		return fields.Default(0.0)
	}
	if strings.Contains(text, ".") {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return fields.Default(0.0)
		}
		return fields.Parsed(f)
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return fields.Default(0.0)
	}
	return fields.Parsed(float64(n))
}

// Confidence reads the confidence field, clamped to [0, 1].
func Confidence(doc *Document) fields.Result[float64] {
	r := Number(doc, "confidence")
	if r.Defaulted {
		return fields.Default(DefaultConfidence)
	}
	switch {
	case r.Value < 0:
		r.Value = 0
	case r.Value > 1:
		r.Value = 1
	}
	return r
}

// Experience collects the integers anywhere inside the experience_years value:
// two or more give (first, second), one gives (first, unknown).
func Experience(doc *Document) fields.Result[models.ExperienceYears] {
	v, ok := doc.Find("experience_years")
	if !ok {
		return fields.Default(models.ExperienceYears{})
	}
	nums := fields.Integers(v.Raw)
	switch len(nums) {
	case 0:
		return fields.Default(models.ExperienceYears{})
	case 1:
		return fields.Parsed(models.ExperienceYears{Min: &nums[0]})
	default:
		return fields.Parsed(models.ExperienceYears{Min: &nums[0], Max: &nums[1]})
	}
}

// Extraction is every classification field recovered from one answer.
type Extraction struct {
	Industry          fields.Result[string]
	RoleFamily        fields.Result[string]
	Seniority         fields.Result[string]
	EducationRequired fields.Result[string]
	EmploymentType    fields.Result[string]
	LanguagesRequired fields.Result[[]string]
	CoreSkills        fields.Result[[]string]
	ExperienceYears   fields.Result[models.ExperienceYears]
	Confidence        fields.Result[float64]
}

// Extract applies each field rule to text.
func Extract(text string) Extraction {
	doc := NewDocument(text)
	return Extraction{
		Industry:          String(doc, "industry"),
		RoleFamily:        String(doc, "role_family"),
		Seniority:         String(doc, "seniority"),
		EducationRequired: String(doc, "education_required", "education_level_applicant"),
		EmploymentType:    String(doc, "employment_type"),
		LanguagesRequired: List(doc, "languages_required", "languages"),
		CoreSkills:        List(doc, "core_skills", "required_specific_skills"),
		ExperienceYears:   Experience(doc),
		Confidence:        Confidence(doc),
	}
}

// Record builds the classification record for the posting called name. Text
// fields that were not found are recorded as models.Unknown.
func (e Extraction) Record(name string) models.ClassificationRecord {
	return models.ClassificationRecord{
		Name:              name,
		Industry:          e.Industry.OrElse(models.Unknown),
		RoleFamily:        e.RoleFamily.OrElse(models.Unknown),
		Seniority:         e.Seniority.OrElse(models.Unknown),
		CoreSkills:        e.CoreSkills.Value,
		EducationRequired: e.EducationRequired.OrElse(models.Unknown),
		LanguagesRequired: e.LanguagesRequired.Value,
		EmploymentType:    e.EmploymentType.OrElse(models.Unknown),
		ExperienceYears:   e.ExperienceYears.Value,
		Confidence:        e.Confidence.Value,
	}
}
