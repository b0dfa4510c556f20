package fields_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/DeafMist/job-radar/internal/fields"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "day month year", input: "15/03/2024", want: "2024-03-15"},
		{name: "two digit year", input: "5/3/24", want: "2024-03-05"},
		{name: "iso", input: "2024-03-15", want: "2024-03-15"},
		{name: "dashed", input: "15-03-2024", want: "2024-03-15"},
		{name: "surrounding space", input: " 01/12/2023 ", want: "2023-12-01"},
		{name: "empty", input: "", want: ""},
		{name: "impossible day", input: "31/02/2024", want: ""},
		{name: "prose", input: "next week", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fields.ParseDate(tt.input)
			require.Equal(t, tt.want, fields.ISODate(got))
			require.Equal(t, tt.want == "", got.Defaulted)
		})
	}

	require.Equal(t, time.March, fields.ParseDate("15/03/2024").Value.Month())
}

func TestParseExperience(t *testing.T) {
	n := func(v int) *int { return &v }
	tests := []struct {
		name     string
		input    string
		min, max *int
	}{
		{name: "minimum", input: "Tối thiểu 3 năm", min: n(3)},
		{name: "range", input: "2-5 years", min: n(2), max: n(5)},
		{name: "en dash range", input: "1 – 3 năm", min: n(1), max: n(3)},
		{name: "open range", input: "3- năm", min: n(3)},
		{name: "exact", input: "3 năm", min: n(3), max: n(3)},
		{name: "no experience vi", input: "Không yêu cầu kinh nghiệm", min: n(0), max: n(0)},
		{name: "no experience en", input: "No  experience needed", min: n(0), max: n(0)},
		{name: "two numbers", input: "from 2 to 4 years", min: n(2), max: n(4)},
		{name: "empty", input: ""},
		{name: "no numbers", input: "some years"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fields.ParseExperience(tt.input)
			require.Equal(t, tt.min, got.Value.Min)
			require.Equal(t, tt.max, got.Value.Max)
		})
	}

	require.True(t, fields.ParseExperience("").Defaulted)
	require.False(t, fields.ParseExperience("2-5 years").Defaulted)
}

func TestClassifyEmploymentType(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "Full time", want: "Full-time"},
		{input: "full-time manager", want: "Full-time"},
		{input: "Part-time", want: "Part-time"},
		{input: "Fixed-term contract", want: "Contract"},
		{input: "Internship", want: "Internship"},
		{input: "Temporary", want: "Temporary"},
		{input: "Store Manager", want: "Managerial"},
		{input: "Permanent", want: "Permanent"},
		{input: "Night shift", want: "Shift work"},
		{input: "{full time}", want: "Unknown"},
		{input: "[Full time]", want: "Unknown"},
		{input: "<b>full time</b>", want: "Unknown"},
		{input: "freelance", want: "Unknown"},
		{input: "", want: "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := fields.ClassifyEmploymentType(tt.input)
			require.Equal(t, tt.want, got.Value)
			require.Equal(t, tt.want == "Unknown", got.Defaulted)
		})
	}
}

func TestParseBenefits(t *testing.T) {
	got := fields.ParseBenefits([]any{
		"Healthcarebenefit",
		"Laptop: MacBook Pro provided",
		"Annual leave; Team building • Bonus",
		"annual leave",
	})
	require.Equal(t, []string{
		"Healthcare benefit",
		"Laptop",
		"MacBook Pro provided",
		"Annual leave",
		"Team building",
		"Bonus",
	}, got)
}

func TestParseBenefitsCommaRule(t *testing.T) {
	got := fields.ParseBenefits("Lunch allowance, Health insurance, salary review twice a year, including bonus")
	require.Equal(t, []string{
		"Lunch allowance",
		"Health insurance, salary review twice a year, including bonus",
	}, got)

	require.Equal(t, []string{"performance bonus", "Healthcare"}, fields.ParseBenefits("performance bonusHealthcare"))
	require.Empty(t, fields.ParseBenefits(nil))
	require.Empty(t, fields.ParseBenefits(" - "))
}

func TestSplitSkills(t *testing.T) {
	require.Equal(t, []string{"Python", "SQL", "Docker"}, fields.SplitSkills("Python, SQL; python | Docker"))
	require.Empty(t, fields.SplitSkills("  "))
}

func TestSplitCareer(t *testing.T) {
	main, sub := fields.SplitCareer("IT > Software")
	require.Equal(t, "IT", main)
	require.Equal(t, "Software", sub)

	main, sub = fields.SplitCareer("Marketing")
	require.Equal(t, "Marketing", main)
	require.Empty(t, sub)

	main, sub = fields.SplitCareer("")
	require.Empty(t, main)
	require.Empty(t, sub)
}

func TestNormalizeLanguage(t *testing.T) {
	tests := []struct {
		input     string
		want      string
		defaulted bool
	}{
		{input: "['English B2+']", want: "English B2"},
		{input: "good english, level c1", want: "English C1"},
		{input: "English (fluent)", want: "English"},
		{input: "english intermediate", want: "English"},
		{input: "Vietnamese (native)", want: "Vietnamese"},
		{input: "Japanese N2", want: "Japanese N2"},
		{input: "none", defaulted: true},
		{input: "N/A", defaulted: true},
		{input: "['Other']", defaulted: true},
		{input: "", defaulted: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := fields.NormalizeLanguage(tt.input)
			require.Equal(t, tt.want, got.Value)
			require.Equal(t, tt.defaulted, got.Defaulted)
		})
	}
}
