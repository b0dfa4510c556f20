// Package classify turns summarized postings into classification records by
// asking a text-generation backend and recovering fields from its answer.
package classify

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	domainerrors "github.com/DeafMist/job-radar/internal/errors"
	"github.com/DeafMist/job-radar/internal/llm"
	"github.com/DeafMist/job-radar/internal/loosejson"
	"github.com/DeafMist/job-radar/internal/models"
)

// Generator is satisfied by *llm.Pool.
type Generator interface {
	Generate(ctx context.Context, prompt string) (llm.Answer, error)
}

// Stats counts what a Classify call did.
type Stats struct {
	Total       int
	Extracted   int
	Defaulted   int
	FallbackHit int
}

// Classifier runs postings through the generator concurrently.
type Classifier struct {
	gen         Generator
	concurrency int
	log         *zap.Logger
}

func New(gen Generator, concurrency int, log *zap.Logger) *Classifier {
	if concurrency <= 0 {
		concurrency = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Classifier{gen: gen, concurrency: concurrency, log: log}
}

type outcome struct {
	record   models.ClassificationRecord
	answered bool
	fallback bool
}

// Classify returns one record per summary, in input order. Postings no backend
// answered get models.DefaultClassification.
func (c *Classifier) Classify(ctx context.Context, summaries []models.SummaryRecord) ([]models.ClassificationRecord, Stats, error) {
	results := make([]outcome, len(summaries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, s := range summaries {
		g.Go(func() error {
			out, err := c.classify(gctx, s)
			if err != nil {
				return fmt.Errorf("classify %q: %w", s.Name, err)
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Stats{}, err
	}

	stats := Stats{Total: len(summaries)}
	records := make([]models.ClassificationRecord, 0, len(results))
	for _, r := range results {
		if r.answered {
			stats.Extracted++
		} else {
			stats.Defaulted++
		}
		if r.fallback {
			stats.FallbackHit++
		}
		records = append(records, r.record)
	}
	return records, stats, nil
}

func (c *Classifier) classify(ctx context.Context, s models.SummaryRecord) (outcome, error) {
	ans, err := c.gen.Generate(ctx, Prompt(s))
	if err != nil {
		if domainerrors.IsType(err, domainerrors.ErrTypeUnavailable) {
			c.log.Warn("no backend answered", zap.String("name", s.Name))
			return outcome{record: models.DefaultClassification(s.Name)}, nil
		}
		return outcome{}, err
	}

	rec := loosejson.Extract(ans.Text).Record(s.Name)
	rec.Backend = ans.Backend
	fallback := ApplyFallback(&rec, s.Summary)
	if fallback {
		c.log.Debug("industry from keywords", zap.String("name", s.Name), zap.String("industry", rec.Industry))
	}
	return outcome{record: rec, answered: true, fallback: fallback}, nil
}

// ApplyFallback replaces an Others industry with the keyword guess over the
// summary, raising confidence to at least FallbackConfidence. It reports
// whether the record changed.
func ApplyFallback(rec *models.ClassificationRecord, summary string) bool {
	if !strings.EqualFold(strings.TrimSpace(rec.Industry), Others) {
		return false
	}
	guess := GuessIndustry(summary)
	if guess == Others {
		return false
	}
	rec.Industry = guess
	rec.Confidence = max(rec.Confidence, FallbackConfidence)
	return true
}
