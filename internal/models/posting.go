package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Text is a scalar field that tolerates numbers and null in crawler output.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*t = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	case len(data) > 0 && data[0] == '[':
		var l Lines
		if err := l.UnmarshalJSON(data); err != nil {
			return err
		}
		*t = Text(strings.Join(l, ", "))
	default:
		*t = Text(data)
	}
	return nil
}

// Lines is a list field that the crawler sometimes emits as a single string.
type Lines []string

func (l *Lines) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var raw []any
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		out := make(Lines, 0, len(raw))
		for _, item := range raw {
			switch v := item.(type) {
			case nil:
			case string:
				out = append(out, v)
			case float64:
				out = append(out, strconv.FormatFloat(v, 'f', -1, 64))
			default:
				b, _ := json.Marshal(v)
				out = append(out, string(b))
			}
		}
		*l = out
		return nil
	}
	var t Text
	if err := t.UnmarshalJSON(data); err != nil {
		return err
	}
	*l = Lines{string(t)}
	return nil
}

// RawPosting is one scraped job advertisement as produced by the crawler.
type RawPosting struct {
	Name                     Text  `json:"name"`
	Salary                   Text  `json:"salary"`
	UploadDate               Text  `json:"upload_date"`
	ExpirationDate           Text  `json:"expiration_date"`
	Locations                Lines `json:"locations"`
	Skill                    Text  `json:"skill"`
	Career                   Text  `json:"career"`
	Company                  Text  `json:"company"`
	JobPosition              Text  `json:"job_position"`
	Field                    Text  `json:"field"`
	LanguageCV               Text  `json:"language_cv"`
	MinimumYearsOfExperience Text  `json:"minimum_years_of_experience"`
	Benefits                 Lines `json:"benefits"`
	Description              Text  `json:"description"`
	Requirements             Text  `json:"requirements"`
	LinkJob                  Text  `json:"link_job"`
}

// CleanedPosting is a RawPosting with typed fields extracted. Field order is
// the export column order.
type CleanedPosting struct {
	ID                       string   `json:"id" parquet:"id"`
	Name                     string   `json:"name" parquet:"name"`
	Company                  string   `json:"company" parquet:"company"`
	Field                    string   `json:"field" parquet:"field"`
	Career                   string   `json:"career" parquet:"career"`
	CareerMain               string   `json:"career_main" parquet:"career_main"`
	CareerSub                string   `json:"career_sub" parquet:"career_sub"`
	JobPosition              string   `json:"job_position" parquet:"job_position"`
	LanguageCV               string   `json:"language_cv" parquet:"language_cv"`
	MinimumYearsOfExperience string   `json:"minimum_years_of_experience" parquet:"minimum_years_of_experience"`
	YearsMin                 *int     `json:"years_min" parquet:"years_min,optional"`
	YearsMax                 *int     `json:"years_max" parquet:"years_max,optional"`
	Salary                   string   `json:"salary" parquet:"salary"`
	Currency                 string   `json:"currency" parquet:"currency"`
	Min                      *int64   `json:"min" parquet:"min,optional"`
	Max                      *int64   `json:"max" parquet:"max,optional"`
	Period                   string   `json:"period" parquet:"period"`
	UploadDate               string   `json:"upload_date" parquet:"upload_date"`
	UploadDateISO            string   `json:"upload_date_iso" parquet:"upload_date_iso"`
	ExpirationDate           string   `json:"expiration_date" parquet:"expiration_date"`
	ExpirationDateISO        string   `json:"expiration_date_iso" parquet:"expiration_date_iso"`
	Locations                []string `json:"locations" parquet:"locations,list"`
	LocationsJoined          string   `json:"locations_joined" parquet:"locations_joined"`
	CityGuess                string   `json:"city_guess" parquet:"city_guess"`
	Skills                   []string `json:"skills" parquet:"skills,list"`
	BenefitsList             []string `json:"benefits_list" parquet:"benefits_list,list"`
	Description              string   `json:"description" parquet:"description"`
	Requirements             string   `json:"requirements" parquet:"requirements"`
	LinkJob                  string   `json:"link_job" parquet:"link_job"`
}

// CleanedColumns is the header row of the cleaned CSV export.
var CleanedColumns = []string{
	"id", "name", "company", "field", "career", "career_main", "career_sub",
	"job_position", "language_cv", "minimum_years_of_experience", "years_min", "years_max",
	"salary", "currency", "min", "max", "period",
	"upload_date", "upload_date_iso", "expiration_date", "expiration_date_iso",
	"locations", "locations_joined", "city_guess", "skills", "benefits_list",
	"description", "requirements", "link_job",
}

// CSVRow renders the posting in CleanedColumns order.
func (p CleanedPosting) CSVRow() []string {
	return []string{
		p.ID, p.Name, p.Company, p.Field, p.Career, p.CareerMain, p.CareerSub,
		p.JobPosition, p.LanguageCV, p.MinimumYearsOfExperience, formatInt(p.YearsMin), formatInt(p.YearsMax),
		p.Salary, p.Currency, formatInt64(p.Min), formatInt64(p.Max), p.Period,
		p.UploadDate, p.UploadDateISO, p.ExpirationDate, p.ExpirationDateISO,
		formatList(p.Locations), p.LocationsJoined, p.CityGuess, formatList(p.Skills), formatList(p.BenefitsList),
		p.Description, p.Requirements, p.LinkJob,
	}
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatInt64(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// formatList renders a list as a JSON array so it parses back as a list literal.
func formatList(items []string) string {
	if items == nil {
		return ""
	}
	b, err := json.Marshal(items)
	if err != nil {
		return ""
	}
	return string(b)
}
