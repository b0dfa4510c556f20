package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/DeafMist/job-radar/internal/cleaning"
	"github.com/DeafMist/job-radar/internal/config"
	"github.com/DeafMist/job-radar/internal/dataset"
	domainerrors "github.com/DeafMist/job-radar/internal/errors"
	"github.com/DeafMist/job-radar/internal/fields"
	"github.com/DeafMist/job-radar/internal/gazetteer"
	"github.com/DeafMist/job-radar/internal/logger"
	"github.com/DeafMist/job-radar/internal/models"
)

func main() {
	in := flag.String("in", "jobs.json", "crawler output ({\"jobs\": [...]} or an array)")
	out := flag.String("out", "cleaned_jobs", "output path; .json, .csv and .parquet are written next to it")
	flag.Parse()

	log := logger.New("clean")
	defer log.Sync()

	cfg, err := config.LoadClean()
	if err != nil {
		fatal(log, "load config", err)
	}

	jobs, err := dataset.ReadJobs(*in)
	if err != nil {
		fatal(log, "read input", err)
	}

	salary := fields.SalaryParser{MillionMin: cfg.MillionMin, MillionMax: cfg.MillionMax}
	cleaner := cleaning.New(salary, gazetteer.New(cfg.FuzzyThreshold), log)
	cleaned, stats := cleaner.Clean(jobs)

	paths, err := dataset.WriteAll(*out, models.CleanedColumns, cleaned)
	if err != nil {
		fatal(log, "write output", err)
	}

	log.Info("clean finished",
		zap.Int("input", stats.Input),
		zap.Int("duplicates", stats.Duplicates),
		zap.Int("output", stats.Output),
		zap.Strings("files", paths),
	)
	fmt.Printf("Cleaned %d jobs, dropped %d duplicates.\n", stats.Output, stats.Duplicates)
}

func fatal(log *zap.Logger, msg string, err error) {
	log.Error(msg, zap.Error(err))
	_ = log.Sync()
	fmt.Fprintln(os.Stderr, domainerrors.ExitMessage(msg, err))
	os.Exit(1)
}
