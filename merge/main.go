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
	"github.com/DeafMist/job-radar/internal/elasticsearch"
	domainerrors "github.com/DeafMist/job-radar/internal/errors"
	"github.com/DeafMist/job-radar/internal/gazetteer"
	"github.com/DeafMist/job-radar/internal/linker"
	"github.com/DeafMist/job-radar/internal/logger"
	"github.com/DeafMist/job-radar/internal/models"
	"github.com/DeafMist/job-radar/internal/publish"
)

type indexer interface {
	Replace(ctx context.Context, records []models.MergedRecord) (int, error)
}

type publisher interface {
	Publish(ctx context.Context, records []models.MergedRecord) (int, error)
}

func main() {
	summaries := flag.String("summaries", "job_summaries.json", "summary JSON")
	classified := flag.String("classified", "job_classified.json", "classification JSON")
	out := flag.String("out", "merged_jobs", "output path; .json, .csv and .parquet are written next to it")
	flag.Parse()

	log := logger.New("merge")
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	cfg, err := config.LoadMerge()
	if err != nil {
		fatal(log, "load config", err)
	}

	summaryRows, err := dataset.ReadRecords(*summaries)
	if err != nil {
		fatal(log, "read summaries", err)
	}
	classRows, err := dataset.ReadRecords(*classified)
	if err != nil {
		fatal(log, "read classifications", err)
	}

	merged, stats := linker.New(gazetteer.New(cfg.FuzzyThreshold), log).Merge(summaryRows, classRows)

	paths, err := dataset.WriteAll(*out, models.MergedColumns, merged)
	if err != nil {
		fatal(log, "write output", err)
	}
	log.Info("merge finished",
		zap.Int("summaries", stats.Summaries),
		zap.Int("classifications", stats.Classifications),
		zap.Int("matched", stats.Matched),
		zap.Strings("files", paths),
	)

	var idx indexer
	if cfg.ElasticsearchAddr != "" {
		es, err := elasticsearch.New(cfg.ElasticsearchAddr, cfg.ElasticsearchIndex, log)
		if err != nil {
			log.Error("init elasticsearch", zap.Error(err))
		} else {
			idx = es
		}
	}

	var pub publisher
	if len(cfg.KafkaBrokers) > 0 {
		p := publish.NewKafka(cfg.KafkaBrokers, cfg.KafkaTopic, log,
			publish.WithRetry(cfg.PublishAttempts, cfg.PublishBackoff))
		defer p.Close()
		pub = p
	}

	runSinks(ctx, log, idx, pub, merged)

	fmt.Printf("Merged %d jobs. LLM fields matched: %d.\n", len(merged), stats.Matched)
}

// runSinks pushes records to the optional sinks. Failures are logged only: the
// files on disk are the stage's result.
func runSinks(ctx context.Context, log *zap.Logger, idx indexer, pub publisher, records []models.MergedRecord) {
	if idx != nil {
		n, err := idx.Replace(ctx, records)
		if err != nil {
			log.Error("index merged records", zap.Error(err), zap.Int("indexed", n))
		} else {
			log.Info("indexed merged records", zap.Int("count", n))
		}
	}

	if pub != nil {
		n, err := pub.Publish(ctx, records)
		if err != nil {
			log.Error("publish merged records", zap.Error(err))
		} else {
			log.Info("published merged records", zap.Int("count", n))
		}
	}
}

func fatal(log *zap.Logger, msg string, err error) {
	log.Error(msg, zap.Error(err))
	_ = log.Sync()
	fmt.Fprintln(os.Stderr, domainerrors.ExitMessage(msg, err))
	os.Exit(1)
}
