package classify

import (
	"fmt"

	"github.com/DeafMist/job-radar/internal/models"
)

const promptTemplate = `You are a recruitment analytics expert.

Task: Read the job posting (Vietnamese or English) and return ONLY a compact JSON object that classifies the role and extracts key attributes.
Follow the taxonomy strictly. If you're uncertain, choose the most likely category from the list and lower the confidence score accordingly.
Only use "Others" if absolutely nothing fits.

Output schema (JSON only, no extra text):
{
  "industry": "<one_of: IT (technology-related) | Finance (banking, accounting) | Marketing (advertising, digital) | HR (human resources) | Sales (B2B, B2C) | Manufacturing (production, factory) | Education (teaching, training) | Healthcare (medical, hospital) | Logistics (supply chain, transport) | Retail (store, consumer) | Others>",
  "role_family": "<one_of: Data | Software | QA | DevOps | Marketing | Sales | Operations | HR | Finance | Product | Design | Support | Others>",
  "seniority": "<one_of: Intern | Junior | Mid | Senior | Lead | Manager | Director>",
  "core_skills": ["skill1","skill2","..."],
  "education_required": "<one_of: No requirement | College | Bachelor | Master | PhD>",
  "languages_required": ["English B1","Vietnamese","..."],
  "employment_type": "<one_of: Full-time | Part-time | Contract | Internship | Unknown>",
  "experience_years": {"min": null, "max": null},
  "confidence": <float 0..1>
}

Guidelines:
- Rely more on responsibilities and requirements than general company descriptions.
- core_skills: 5-10 normalized keywords (e.g., "Excel", "SQL", "Python", "Ecommerce Operations").
- Only extract experience_years if explicitly stated. Otherwise use: {"min": null, "max": null}.
- If the posting is ambiguous, pick the closest industry/role_family based on available keywords.

Examples:

Input: Software Engineer - Develop backend systems in Python, requires knowledge of SQL and cloud platforms.
Output:
{
  "industry": "IT",
  "role_family": "Software",
  "seniority": "Mid",
  "core_skills": ["Python", "SQL", "AWS", "Backend Development"],
  "education_required": "Bachelor",
  "languages_required": ["English B2"],
  "employment_type": "Full-time",
  "experience_years": {"min": 2, "max": 4},
  "confidence": 0.85
}

Input: Nhân viên kế toán - quản lý sổ sách kế toán, hỗ trợ báo cáo tài chính.
Output:
{
  "industry": "Finance",
  "role_family": "Finance",
  "seniority": "Junior",
  "core_skills": ["Kế toán", "Excel", "Lập báo cáo tài chính"],
  "education_required": "Bachelor",
  "languages_required": ["Vietnamese"],
  "employment_type": "Full-time",
  "experience_years": {"min": null, "max": null},
  "confidence": 0.75
}

JOB INPUT
Name: %s
Summary:
%s
Skills (optional): %s
`

// Prompt builds the classification request for one summarized posting.
func Prompt(s models.SummaryRecord) string {
	return fmt.Sprintf(promptTemplate, s.Name, s.Summary, s.Skills)
}
