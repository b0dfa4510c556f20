package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/DeafMist/job-radar/internal/config"
	"github.com/DeafMist/job-radar/internal/dataset"
	domainerrors "github.com/DeafMist/job-radar/internal/errors"
	"github.com/DeafMist/job-radar/internal/gazetteer"
	"github.com/DeafMist/job-radar/internal/llm"
	"github.com/DeafMist/job-radar/internal/logger"
	"github.com/DeafMist/job-radar/internal/models"
	"github.com/DeafMist/job-radar/internal/summarize"
)

func main() {
	in := flag.String("in", "cleaned_jobs.json", "cleaned postings JSON")
	out := flag.String("out", "job_summaries.json", "summary JSON output")
	flag.Parse()

	log := logger.New("summarize")
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	cfg, err := config.LoadGeneration()
	if err != nil {
		fatal(log, "load config", err)
	}

	postings, err := dataset.ReadAs[models.CleanedPosting](*in)
	if err != nil {
		fatal(log, "read input", err)
	}

	pool, c, err := llm.Open(ctx, cfg, log)
	if err != nil {
		fatal(log, "init backends", err)
	}
	defer c.Close()

	s := summarize.New(pool, gazetteer.New(gazetteer.DefaultThreshold), cfg.Concurrency, log)
	summaries, stats, err := s.Summarize(ctx, postings)
	if err != nil {
		fatal(log, "summarize", err)
	}

	if err := dataset.WriteJSON(*out, summaries); err != nil {
		fatal(log, "write output", err)
	}

	log.Info("summarize finished",
		zap.Int("total", stats.Total),
		zap.Int("summarized", stats.Summarized),
		zap.Int("skipped", stats.Skipped),
		zap.Strings("unavailable", pool.Unavailable()),
	)
	fmt.Printf("Summarized %d jobs, skipped %d.\n", stats.Summarized, stats.Skipped)
}

func fatal(log *zap.Logger, msg string, err error) {
	log.Error(msg, zap.Error(err))
	_ = log.Sync()
	fmt.Fprintln(os.Stderr, domainerrors.ExitMessage(msg, err))
	os.Exit(1)
}
