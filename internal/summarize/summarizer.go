// Package summarize condenses cleaned postings into bullet-point summaries.
package summarize

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	domainerrors "github.com/DeafMist/job-radar/internal/errors"
	"github.com/DeafMist/job-radar/internal/gazetteer"
	"github.com/DeafMist/job-radar/internal/llm"
	"github.com/DeafMist/job-radar/internal/models"
	"github.com/DeafMist/job-radar/internal/processing"
)

const promptTemplate = `Summarize the following job posting into 6-10 bullet points focusing ONLY on:
- Core responsibilities
- Required skills/tools/technologies
- Required years of experience
- Required education/certifications
- Required languages
- Any employment type info

Do NOT include company marketing/introduction text.
Return bullets only (no prose before/after).

TEXT:
%s`

// Prompt builds the summary request over the posting description and requirements.
func Prompt(p models.CleanedPosting) string {
	return fmt.Sprintf(promptTemplate, p.Description+"\n\n"+p.Requirements)
}

// Generator is satisfied by *llm.Pool.
type Generator interface {
	Generate(ctx context.Context, prompt string) (llm.Answer, error)
}

// Stats counts what a Summarize call did.
type Stats struct {
	Total      int
	Summarized int
	Skipped    int
}

// Summarizer runs postings through the generator concurrently.
type Summarizer struct {
	gen         Generator
	gazetteer   *gazetteer.Matcher
	concurrency int
	log         *zap.Logger
}

func New(gen Generator, matcher *gazetteer.Matcher, concurrency int, log *zap.Logger) *Summarizer {
	if matcher == nil {
		matcher = gazetteer.New(gazetteer.DefaultThreshold)
	}
	if concurrency <= 0 {
		concurrency = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Summarizer{gen: gen, gazetteer: matcher, concurrency: concurrency, log: log}
}

// Summarize returns one record per posting a backend answered for, in input
// order. Postings nobody answered are skipped and counted.
func (s *Summarizer) Summarize(ctx context.Context, postings []models.CleanedPosting) ([]models.SummaryRecord, Stats, error) {
	results := make([]*models.SummaryRecord, len(postings))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, p := range postings {
		g.Go(func() error {
			rec, err := s.summarize(gctx, p)
			if err != nil {
				return fmt.Errorf("summarize %q: %w", p.Name, err)
			}
			results[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Stats{}, err
	}

	stats := Stats{Total: len(postings)}
	out := make([]models.SummaryRecord, 0, len(postings))
	for _, rec := range results {
		if rec == nil {
			stats.Skipped++
			continue
		}
		out = append(out, *rec)
	}
	stats.Summarized = len(out)
	return out, stats, nil
}

func (s *Summarizer) summarize(ctx context.Context, p models.CleanedPosting) (*models.SummaryRecord, error) {
	ans, err := s.gen.Generate(ctx, Prompt(p))
	if err != nil {
		if domainerrors.IsType(err, domainerrors.ErrTypeUnavailable) {
			s.log.Warn("posting not summarized", zap.String("name", p.Name))
			return nil, nil
		}
		return nil, err
	}

	rec := Record(p, strings.TrimSpace(ans.Text))
	rec.CityGuess = s.gazetteer.GuessCity(rec.LocationsJoined)
	return &rec, nil
}

// Record carries the identity fields of p over to a summary.
func Record(p models.CleanedPosting, summary string) models.SummaryRecord {
	locations := p.Locations
	if locations == nil {
		locations = []string{}
	}
	return models.SummaryRecord{
		Name:            p.Name,
		Company:         p.Company,
		Location:        models.Lines(locations),
		Skills:          models.Text(strings.Join(p.Skills, ", ")),
		Summary:         summary,
		LocationsJoined: processing.JoinList(locations),
	}
}
