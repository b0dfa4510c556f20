package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/DeafMist/job-radar/internal/config"
	"github.com/DeafMist/job-radar/internal/dataset"
	domainerrors "github.com/DeafMist/job-radar/internal/errors"
	"github.com/DeafMist/job-radar/internal/gazetteer"
	"github.com/DeafMist/job-radar/internal/logger"
	"github.com/DeafMist/job-radar/internal/report"
)

func main() {
	in := flag.String("merged", "merged_jobs.json", "merged records JSON")
	out := flag.String("out", "industry_report", "output path; .json and .txt are written next to it")
	flag.Parse()

	log := logger.New("report")
	defer log.Sync()

	cfg, err := config.LoadReport()
	if err != nil {
		fatal(log, "load config", err)
	}

	records, err := dataset.ReadRecords(*in)
	if err != nil {
		fatal(log, "read input", err)
	}

	prepared := report.Prepare(records, gazetteer.New(cfg.FuzzyThreshold))
	r := report.Build(prepared)

	if err := dataset.WriteJSON(dataset.WithSuffix(*out, ".json"), r); err != nil {
		fatal(log, "write report", err)
	}
	if err := writeText(dataset.WithSuffix(*out, ".txt"), r); err != nil {
		fatal(log, "write summary", err)
	}

	log.Info("report finished",
		zap.Int("input", len(records)),
		zap.Int("jobs", r.Overview.Jobs),
		zap.Int("dropped_industry", r.Dropped.BadIndustry),
		zap.Int("dropped_language", r.Dropped.NoLanguage),
		zap.Int("dropped_city", r.Dropped.NoCity),
	)
	fmt.Printf("Report written for %d jobs across %d industries.\n", r.Overview.Jobs, r.Overview.Industries)
}

func writeText(path string, r report.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := report.WriteText(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func fatal(log *zap.Logger, msg string, err error) {
	log.Error(msg, zap.Error(err))
	_ = log.Sync()
	fmt.Fprintln(os.Stderr, domainerrors.ExitMessage(msg, err))
	os.Exit(1)
}
