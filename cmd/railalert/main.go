package main

import (
	"context"
	"errors"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/hamed0406/railalert/internal/config"
	"github.com/hamed0406/railalert/internal/feed"
	"github.com/hamed0406/railalert/internal/logging"
	"github.com/hamed0406/railalert/internal/normalize"
	"github.com/hamed0406/railalert/internal/notify"
	"github.com/hamed0406/railalert/internal/repo"
	"github.com/hamed0406/railalert/internal/repo/memory"
	"github.com/hamed0406/railalert/internal/repo/postgres"
	"github.com/hamed0406/railalert/internal/run"
)

func main() {
	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx := context.Background()

	var store repo.IncidentStore
	if cfg.DatabaseURL != "" {
		pg, err := postgres.New(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			logger.Error("store_open_failed", zap.Error(err))
			os.Exit(1)
		}
		defer pg.Close()
		if err := pg.EnsureSchema(ctx); err != nil {
			logger.Error("store_schema_failed", zap.Error(err))
			os.Exit(1)
		}
		store = pg
	} else {
		logger.Warn("memory_store_in_use", zap.String("note", "no DATABASE_URL; every run re-notifies"))
		store = memory.New()
	}

	var source feed.Source
	if cfg.FeedURL != "" {
		source = feed.NewHTTPSource(cfg.FeedURL, cfg.FeedAPIKey, cfg.HTTPTimeout)
	} else {
		source = feed.FileSource{Path: cfg.FeedFile}
	}

	normalizer, err := normalize.New(cfg.FeedTimezone, cfg.FeedLayout)
	if err != nil {
		logger.Error("normalizer_init_failed", zap.Error(err))
		os.Exit(1)
	}

	mailer, err := notify.NewMailer(notify.MailerConfig{
		Relay:    cfg.SMTPRelay,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
		To:       cfg.MailTo,
	})
	if err != nil {
		logger.Error("mailer_init_failed", zap.Error(err))
		os.Exit(1)
	}

	runner := &run.Runner{
		Source:     source,
		Normalizer: normalizer,
		Store:      store,
		Notifier:   mailer,
		Logger:     logger,
	}

	res, err := runner.Run(ctx)
	if err != nil {
		var se *run.StageError
		stage := "unknown"
		if errors.As(err, &se) {
			stage = string(se.Stage)
		}
		logger.Error("run_failed", zap.String("stage", stage), zap.Error(err))
		os.Exit(1)
	}

	logger.Info("run_done",
		zap.Int("fetched", res.Fetched),
		zap.Int("notified", res.Notified),
		zap.Bool("committed", res.Committed),
	)
}
