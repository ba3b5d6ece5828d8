// cmd/preflight/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/railalert/internal/config"
	"github.com/hamed0406/railalert/internal/notify"
	"github.com/hamed0406/railalert/internal/repo/postgres"
)

// Checks the environment before the first scheduled run: required variables,
// a live dial of the watermark store, and a live dial of the SMTP relay.
func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	cfg := config.FromEnv()

	if err := cfg.Validate(); err != nil {
		fail(err.Error())
	}
	ok("SMTP_RELAY=" + cfg.SMTPRelay)

	if cfg.FeedURL == "" {
		warn("FEED_URL empty — incidents will be read from " + cfg.FeedFile)
	} else {
		ok("FEED_URL=" + cfg.FeedURL)
		if cfg.FeedAPIKey == "" {
			warn("FEED_API_KEY empty — most feeds reject unauthenticated requests")
		}
	}
	if strings.Contains(cfg.MailTo, ",") {
		warn("MAIL_TO contains a comma; this tool notifies exactly one recipient")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if cfg.DatabaseURL == "" {
		warn("DATABASE_URL empty — in-memory watermark, every run re-notifies")
	} else {
		store, err := postgres.New(ctx, cfg.DatabaseURL, zap.NewNop())
		if err != nil {
			fail("store dial failed: " + err.Error())
		}
		store.Close()
		ok("incident store reachable")
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
		fail("mailer init failed: " + err.Error())
	}
	if err := mailer.Verify(ctx); err != nil {
		fail("SMTP dial failed: " + err.Error())
	}
	ok("SMTP relay reachable")

	ok("preflight passed")
}
