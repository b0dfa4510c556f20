// Package cleaning turns crawled postings into typed, de-duplicated records.
package cleaning

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DeafMist/job-radar/internal/dedupe"
	"github.com/DeafMist/job-radar/internal/fields"
	"github.com/DeafMist/job-radar/internal/gazetteer"
	"github.com/DeafMist/job-radar/internal/models"
	"github.com/DeafMist/job-radar/internal/processing"
)

// Stats counts what a Clean call did.
type Stats struct {
	Input      int
	Duplicates int
	Output     int
}

// Cleaner applies the field parsers and the gazetteer to raw postings.
type Cleaner struct {
	salary    fields.SalaryParser
	gazetteer *gazetteer.Matcher
	log       *zap.Logger
}

// New creates a Cleaner.
func New(salary fields.SalaryParser, matcher *gazetteer.Matcher, log *zap.Logger) *Cleaner {
	if log == nil {
		log = zap.NewNop()
	}
	if matcher == nil {
		matcher = gazetteer.New(gazetteer.DefaultThreshold)
	}
	return &Cleaner{salary: salary, gazetteer: matcher, log: log}
}

// Clean converts every posting, dropping later postings whose link was already seen.
func (c *Cleaner) Clean(jobs []models.RawPosting) ([]models.CleanedPosting, Stats) {
	stats := Stats{Input: len(jobs)}
	seen := dedupe.NewSet()
	out := make([]models.CleanedPosting, 0, len(jobs))

	for _, job := range jobs {
		p := c.CleanPosting(job)
		if p.LinkJob != "" && !seen.Add(p.LinkJob) {
			stats.Duplicates++
			c.log.Debug("duplicate posting", zap.String("link_job", p.LinkJob))
			continue
		}
		out = append(out, p)
	}

	stats.Output = len(out)
	return out, stats
}

// CleanPosting converts a single posting.
func (c *Cleaner) CleanPosting(raw models.RawPosting) models.CleanedPosting {
	p := models.CleanedPosting{
		Name:                     text(raw.Name),
		Company:                  text(raw.Company),
		Field:                    text(raw.Field),
		Career:                   text(raw.Career),
		JobPosition:              text(raw.JobPosition),
		LanguageCV:               text(raw.LanguageCV),
		MinimumYearsOfExperience: text(raw.MinimumYearsOfExperience),
		Salary:                   text(raw.Salary),
		UploadDate:               text(raw.UploadDate),
		ExpirationDate:           text(raw.ExpirationDate),
		Description:              text(raw.Description),
		Requirements:             text(raw.Requirements),
		LinkJob:                  text(raw.LinkJob),
	}

	p.CareerMain, p.CareerSub = fields.SplitCareer(p.Career)

	exp := fields.ParseExperience(p.MinimumYearsOfExperience).Value
	p.YearsMin, p.YearsMax = exp.Min, exp.Max

	salary := c.salary.Parse(p.Salary).Value
	p.Currency = string(salary.Currency)
	p.Min, p.Max = salary.Min, salary.Max
	p.Period = string(salary.Period)

	p.UploadDateISO = fields.ISODate(fields.ParseDate(p.UploadDate))
	p.ExpirationDateISO = fields.ISODate(fields.ParseDate(p.ExpirationDate))

	p.Locations = processing.ToList([]string(raw.Locations))
	p.LocationsJoined = processing.JoinList(p.Locations)
	p.CityGuess = c.gazetteer.GuessCity(p.LocationsJoined)

	p.Skills = fields.SplitSkills(string(raw.Skill))
	p.BenefitsList = fields.ParseBenefits([]string(raw.Benefits))

	p.ID = PostingID(p)
	return p
}

// PostingID derives a stable id from the posting link, or from name and company
// when the link is missing.
func PostingID(p models.CleanedPosting) string {
	key := p.LinkJob
	if key == "" {
		key = p.Name + "|" + p.Company + "|" + p.LocationsJoined
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String()
}

func text(t models.Text) string {
	return processing.NormalizeText(string(t))
}
