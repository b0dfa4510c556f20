// Package linker joins summaries with classifications on a normalized name key.
//
// The join is a left outer join: every summary yields one merged record and
// classifications without a summary are dropped. When several classifications
// share a key the first one wins.
package linker

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DeafMist/job-radar/internal/gazetteer"
	"github.com/DeafMist/job-radar/internal/models"
)

// Stats counts what a Merge call did.
type Stats struct {
	Summaries       int
	Classifications int
	Matched         int
}

// Linker merges the two datasets.
type Linker struct {
	gazetteer *gazetteer.Matcher
	log       *zap.Logger
}

func New(matcher *gazetteer.Matcher, log *zap.Logger) *Linker {
	if matcher == nil {
		matcher = gazetteer.New(gazetteer.DefaultThreshold)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Linker{gazetteer: matcher, log: log}
}

// Merge left-joins summaries with classifications.
func (l *Linker) Merge(summaries, classifications []map[string]any) ([]models.MergedRecord, Stats) {
	stats := Stats{Summaries: len(summaries), Classifications: len(classifications)}

	byKey := make(map[string]Classification, len(classifications))
	for _, row := range classifications {
		c := NormalizeClassification(row)
		if _, dup := byKey[c.Key]; dup {
			l.log.Debug("duplicate classification key", zap.String("name_key", c.Key))
			continue
		}
		byKey[c.Key] = c
	}

	out := make([]models.MergedRecord, 0, len(summaries))
	for i, row := range summaries {
		s := NormalizeSummary(row, l.gazetteer)
		rec := models.MergedRecord{
			Name:            s.Name,
			Company:         s.Company,
			LocationsJoined: s.LocationsJoined,
			CityGuess:       s.CityGuess,
			Summary:         s.Summary,
			NameKey:         s.Key,
		}
		if c, ok := byKey[s.Key]; ok {
			project(&rec, c)
			stats.Matched++
		}
		rec.ID = RecordID(i, rec)
		out = append(out, rec)
	}
	return out, stats
}

// project copies classification fields onto rec. Industry is always set on a
// match so MergedRecord.Matched holds.
func project(rec *models.MergedRecord, c Classification) {
	industry := ""
	if c.Industry != nil {
		industry = *c.Industry
	}
	confidence := c.Confidence

	rec.Industry = &industry
	rec.RoleFamily = c.RoleFamily
	rec.Seniority = c.Seniority
	rec.EmploymentType = c.EmploymentType
	rec.EducationRequired = c.EducationRequired
	rec.YearsMin = c.YearsMin
	rec.YearsMax = c.YearsMax
	rec.LanguagesRequired = c.LanguagesRequired
	rec.CoreSkills = c.CoreSkills
	rec.Confidence = &confidence
}

// RecordID derives a stable document id from the record's position and identity.
func RecordID(index int, rec models.MergedRecord) string {
	key := fmt.Sprintf("%d|%s|%s|%s", index, rec.NameKey, rec.Company, rec.LocationsJoined)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String()
}
