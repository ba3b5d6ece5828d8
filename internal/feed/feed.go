package feed

import "context"

// RawIncident is one record exactly as the feed reports it: a free-text
// description and the update time as a wall-clock string in the feed's home
// timezone. No ordering or dedup guarantee is assumed from the feed.
type RawIncident struct {
	Timestamp   string `json:"timestamp"`
	Description string `json:"description"`
}

// Source produces one batch of raw incident records per call, in feed order.
type Source interface {
	Fetch(ctx context.Context) ([]RawIncident, error)
}
