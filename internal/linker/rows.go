package linker

import (
	"strings"

	"github.com/DeafMist/job-radar/internal/dataset"
	"github.com/DeafMist/job-radar/internal/gazetteer"
	"github.com/DeafMist/job-radar/internal/processing"
)

// Classification is a classification row after normalization. Pointer fields
// are nil when the source row lacks the column.
type Classification struct {
	Name              string
	Key               string
	Industry          *string
	RoleFamily        *string
	Seniority         *string
	EmploymentType    *string
	EducationRequired *string
	LanguagesRequired []string
	CoreSkills        []string
	YearsMin          *int
	YearsMax          *int
	Confidence        float64
}

// Summary is a summary row after normalization.
type Summary struct {
	Name            string
	Key             string
	Company         string
	Summary         string
	Locations       []string
	LocationsJoined string
	CityGuess       string
	Skills          []string
}

// NormalizeClassification reads a classification row. The role family may
// also arrive as "role" or "role_type".
func NormalizeClassification(row map[string]any) Classification {
	r := dataset.Record(row)
	name, _ := r.String("name")
	c := Classification{Name: name, Key: NameKey(name)}

	c.Industry = optString(r, "industry")
	c.EmploymentType = optString(r, "employment_type")
	c.EducationRequired = optString(r, "education_required")

	for _, key := range []string{"role_family", "role", "role_type"} {
		if role, ok := r.String(key); ok && role != "" {
			family := NormalizeRoleFamily(role).Value
			c.RoleFamily = &family
			break
		}
	}
	if sen, ok := r.String("seniority"); ok && sen != "" {
		level := NormalizeSeniority(sen).Value
		c.Seniority = &level
	}

	c.CoreSkills = listOrEmpty(r, "core_skills")
	c.LanguagesRequired = listOrEmpty(r, "languages_required")

	if exp, ok := r.Object("experience_years"); ok {
		if v, ok := exp.Int("min"); ok {
			c.YearsMin = &v
		}
		if v, ok := exp.Int("max"); ok {
			c.YearsMax = &v
		}
	}

	if conf, ok := r.Float("confidence"); ok {
		c.Confidence = conf
	}
	return c
}

// NormalizeSummary reads a summary row and derives its location columns.
func NormalizeSummary(row map[string]any, matcher *gazetteer.Matcher) Summary {
	r := dataset.Record(row)
	s := Summary{}
	s.Name, _ = r.String("name")
	s.Key = NameKey(s.Name)
	s.Company, _ = r.String("company")
	if raw, ok := row["summary"].(string); ok {
		s.Summary = strings.TrimSpace(raw)
	}
	s.Locations = listOrEmpty(r, "location")
	s.LocationsJoined = processing.JoinList(s.Locations)
	s.CityGuess = matcher.GuessCity(s.LocationsJoined)
	s.Skills = listOrEmpty(r, "skills")
	return s
}

func optString(r dataset.Record, key string) *string {
	s, ok := r.String(key)
	if !ok {
		return nil
	}
	return &s
}

func listOrEmpty(r dataset.Record, key string) []string {
	items, ok := r.List(key)
	if !ok {
		return []string{}
	}
	return items
}
