package report

import (
	"fmt"
	"io"
)

// topIndustries is how many industries the text summary lists.
const topIndustries = 5

// WriteText renders the plain-text summary of r.
func WriteText(w io.Writer, r Report) error {
	lines := []string{
		"=== INDUSTRY HIRING REPORT SUMMARY ===",
		fmt.Sprintf("Total jobs: %d", r.Overview.Jobs),
		fmt.Sprintf("Industries: %d", r.Overview.Industries),
		fmt.Sprintf("Companies: %d", r.Overview.Companies),
	}
	if r.Overview.AvgYearsMin != nil {
		lines = append(lines, fmt.Sprintf("Avg years min: %.2f", *r.Overview.AvgYearsMin))
	}
	if r.Overview.AvgYearsMax != nil {
		lines = append(lines, fmt.Sprintf("Avg years max: %.2f", *r.Overview.AvgYearsMax))
	}
	if r.ByIndustry != nil {
		lines = append(lines, "", "Top industries by posts:")
		for _, s := range r.ByIndustry[:min(topIndustries, len(r.ByIndustry))] {
			lines = append(lines, fmt.Sprintf(" - %s: %d", s.Industry, s.Posts))
		}
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	return nil
}
