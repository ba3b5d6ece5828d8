package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	LogDir string // logs directory

	// Feed source. FEED_URL selects the HTTP source; otherwise FEED_FILE is
	// read ("-" or empty means stdin).
	FeedURL      string
	FeedAPIKey   string
	FeedFile     string
	FeedTimezone string        // IANA name of the feed's home timezone
	FeedLayout   string        // Go layout of the feed's timestamps; empty uses the default
	HTTPTimeout  time.Duration // feed request timeout

	// Watermark store (empty means in-memory; every run re-notifies).
	DatabaseURL string

	// Mail transport.
	SMTPRelay    string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string
	MailTo       string
}

func FromEnv() Config {
	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}

	tz := os.Getenv("FEED_TIMEZONE")
	if tz == "" {
		tz = "America/New_York"
	}

	feedFile := os.Getenv("FEED_FILE")
	if feedFile == "" {
		feedFile = "-"
	}

	timeout := 10 * time.Second
	if v := os.Getenv("HTTP_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			timeout = time.Duration(ms) * time.Millisecond
		}
	}

	port := 0
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			port = n
		}
	}

	return Config{
		LogDir:       logDir,
		FeedURL:      os.Getenv("FEED_URL"),
		FeedAPIKey:   os.Getenv("FEED_API_KEY"),
		FeedFile:     feedFile,
		FeedTimezone: tz,
		FeedLayout:   os.Getenv("FEED_TIME_LAYOUT"),
		HTTPTimeout:  timeout,
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		SMTPRelay:    os.Getenv("SMTP_RELAY"),
		SMTPPort:     port,
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		MailFrom:     os.Getenv("MAIL_FROM"),
		MailTo:       os.Getenv("MAIL_TO"),
	}
}

// Validate checks the fields a run cannot proceed without.
func (c Config) Validate() error {
	var missing []string
	if c.SMTPRelay == "" {
		missing = append(missing, "SMTP_RELAY")
	}
	if c.MailFrom == "" {
		missing = append(missing, "MAIL_FROM")
	}
	if c.MailTo == "" {
		missing = append(missing, "MAIL_TO")
	}
	if len(missing) > 0 {
		return errors.New("missing required config: " + strings.Join(missing, ", "))
	}
	return nil
}
