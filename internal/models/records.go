package models

// SummaryRecord is the bullet-point digest of one posting plus its identity fields.
// Location and Skills are copied from the posting as-is, so either may arrive
// as a string or a list.
type SummaryRecord struct {
	Name            string `json:"name"`
	Company         string `json:"company"`
	Location        Lines  `json:"location"`
	Skills          Text   `json:"skills"`
	Summary         string `json:"summary"`
	LocationsJoined string `json:"locations_joined"`
	CityGuess       string `json:"city_guess"`
}

// ExperienceYears is an experience range; either bound may be unknown.
type ExperienceYears struct {
	Min *int `json:"min"`
	Max *int `json:"max"`
}

// Unknown fills classification text fields that could not be determined.
const Unknown = "Unknown"

// ClassificationRecord is the structured judgment extracted from a model answer.
type ClassificationRecord struct {
	Name              string          `json:"name"`
	Industry          string          `json:"industry"`
	RoleFamily        string          `json:"role_family"`
	Seniority         string          `json:"seniority"`
	CoreSkills        []string        `json:"core_skills"`
	EducationRequired string          `json:"education_required"`
	LanguagesRequired []string        `json:"languages_required"`
	EmploymentType    string          `json:"employment_type"`
	ExperienceYears   ExperienceYears `json:"experience_years"`
	Confidence        float64         `json:"confidence"`
	Backend           string          `json:"backend,omitempty"`
}

// DefaultClassification is recorded for a posting no backend produced text for.
func DefaultClassification(name string) ClassificationRecord {
	return ClassificationRecord{
		Name:              name,
		Industry:          Unknown,
		RoleFamily:        Unknown,
		Seniority:         Unknown,
		CoreSkills:        []string{},
		EducationRequired: Unknown,
		LanguagesRequired: []string{},
		EmploymentType:    Unknown,
	}
}

// MergedRecord is a summary row left-joined with its classification. The
// classification fields are nil when the join found no match.
type MergedRecord struct {
	ID                string   `json:"-" parquet:"-"`
	Name              string   `json:"name" parquet:"name"`
	Company           string   `json:"company" parquet:"company"`
	LocationsJoined   string   `json:"locations_joined" parquet:"locations_joined"`
	CityGuess         string   `json:"city_guess" parquet:"city_guess"`
	Industry          *string  `json:"industry" parquet:"industry,optional"`
	RoleFamily        *string  `json:"role_family" parquet:"role_family,optional"`
	Seniority         *string  `json:"seniority" parquet:"seniority,optional"`
	EmploymentType    *string  `json:"employment_type" parquet:"employment_type,optional"`
	YearsMin          *int     `json:"years_min" parquet:"years_min,optional"`
	YearsMax          *int     `json:"years_max" parquet:"years_max,optional"`
	EducationRequired *string  `json:"education_required" parquet:"education_required,optional"`
	LanguagesRequired []string `json:"languages_required" parquet:"languages_required,list"`
	CoreSkills        []string `json:"core_skills" parquet:"core_skills,list"`
	Summary           string   `json:"summary" parquet:"summary"`
	Confidence        *float64 `json:"confidence" parquet:"confidence,optional"`
	NameKey           string   `json:"name_key" parquet:"name_key"`
}

// MergedColumns is the fixed reporting projection, in order.
var MergedColumns = []string{
	"name", "company", "locations_joined", "city_guess", "industry", "role_family",
	"seniority", "employment_type", "years_min", "years_max", "education_required",
	"languages_required", "core_skills", "summary", "confidence", "name_key",
}

// Matched reports whether a classification was joined onto the record.
func (m MergedRecord) Matched() bool {
	return m.Industry != nil
}

// CSVRow renders the record in MergedColumns order.
func (m MergedRecord) CSVRow() []string {
	return []string{
		m.Name, m.Company, m.LocationsJoined, m.CityGuess,
		formatString(m.Industry), formatString(m.RoleFamily), formatString(m.Seniority), formatString(m.EmploymentType),
		formatInt(m.YearsMin), formatInt(m.YearsMax), formatString(m.EducationRequired),
		formatList(m.LanguagesRequired), formatList(m.CoreSkills), m.Summary,
		formatFloat(m.Confidence), m.NameKey,
	}
}
