package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/DeafMist/job-radar/internal/classify"
	"github.com/DeafMist/job-radar/internal/config"
	"github.com/DeafMist/job-radar/internal/dataset"
	domainerrors "github.com/DeafMist/job-radar/internal/errors"
	"github.com/DeafMist/job-radar/internal/llm"
	"github.com/DeafMist/job-radar/internal/logger"
	"github.com/DeafMist/job-radar/internal/models"
)

func main() {
	in := flag.String("in", "job_summaries.json", "summary JSON")
	out := flag.String("out", "job_classified.json", "classification JSON output")
	flag.Parse()

	log := logger.New("classify")
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	cfg, err := config.LoadGeneration()
	if err != nil {
		fatal(log, "load config", err)
	}

	summaries, err := dataset.ReadAs[models.SummaryRecord](*in)
	if err != nil {
		fatal(log, "read input", err)
	}

	pool, c, err := llm.Open(ctx, cfg, log)
	if err != nil {
		fatal(log, "init backends", err)
	}
	defer c.Close()

	records, stats, err := classify.New(pool, cfg.Concurrency, log).Classify(ctx, summaries)
	if err != nil {
		fatal(log, "classify", err)
	}

	if err := dataset.WriteJSON(*out, records); err != nil {
		fatal(log, "write output", err)
	}

	log.Info("classify finished",
		zap.Int("total", stats.Total),
		zap.Int("extracted", stats.Extracted),
		zap.Int("defaulted", stats.Defaulted),
		zap.Int("fallback_industry", stats.FallbackHit),
		zap.Strings("unavailable", pool.Unavailable()),
	)
	fmt.Printf("Classified %d jobs, %d without a model answer.\n", stats.Total, stats.Defaulted)
}

func fatal(log *zap.Logger, msg string, err error) {
	log.Error(msg, zap.Error(err))
	_ = log.Sync()
	fmt.Fprintln(os.Stderr, domainerrors.ExitMessage(msg, err))
	os.Exit(1)
}
