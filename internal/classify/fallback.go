package classify

import "strings"

// Others is the catch-all industry the fallback classifier replaces.
const Others = "Others"

// FallbackConfidence is the minimum confidence of a record whose industry was
// replaced by the keyword classifier.
const FallbackConfidence = 0.7

type industryKeywords struct {
	industry string
	keywords []string
}

// industryTable is ordered; earlier industries win ties.
var industryTable = []industryKeywords{
	{"Manufacturing", []string{"lubricant", "distributor", "manufacturing", "factory", "production", "industrial", "engineering", "assembly line", "quality control", "technical sales", "b2b", "supply chain"}},
	{"IT", []string{"software", "developer", "engineer", "programming", "python", "java", "javascript", "it infrastructure", "devops", "qa", "data"}},
	{"Finance", []string{"finance", "accounting", "audit", "banking", "investment", "tax", "financial analysis", "budgeting"}},
	{"Marketing", []string{"marketing", "seo", "sem", "content", "brand", "advertising", "campaign", "social media", "digital marketing"}},
	{"HR", []string{"human resources", "recruitment", "talent acquisition", "employee relations", "payroll", "training"}},
	{"Sales", []string{"sales", "customer", "account management", "client", "business development", "crm", "territory"}},
	{"Education", []string{"teaching", "curriculum", "education", "trainer", "training", "lesson plan", "student"}},
	{"Healthcare", []string{"nurse", "doctor", "healthcare", "medical", "patient", "clinic", "pharmaceutical", "hospital"}},
	{"Logistics", []string{"logistics", "warehouse", "supply chain", "distribution", "freight", "shipping", "transportation"}},
	{"Retail", []string{"retail", "store", "merchandise", "inventory", "cashier", "sales floor"}},
}

// GuessIndustry scores every industry by how many of its keywords occur in the
// summary and returns the best one, or Others when nothing matched.
func GuessIndustry(summary string) string {
	text := strings.ToLower(summary)
	best, bestCount := Others, 0
	for _, row := range industryTable {
		count := 0
		for _, kw := range row.keywords {
			if strings.Contains(text, kw) {
				count++
			}
		}
		if count > bestCount {
			best, bestCount = row.industry, count
		}
	}
	return best
}
