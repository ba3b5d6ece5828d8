package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Incident is one transit-incident report after normalization: the feed's
// local wall-clock timestamp resolved to UTC plus the free-text description.
// Immutable once built; a changed report is a new incident.
type Incident struct {
	OccurredAt  time.Time `json:"occurred_at"`
	Description string    `json:"description"`
}

// Identity is the stable key used to test novelty across runs.
type Identity string

// Identity hashes the two canonical fields. The feed exposes no stable
// incident ID, so the key is derived by value: same (occurred_at, description)
// pair, same key, in every run and every process.
func (i Incident) Identity() Identity {
	h := sha256.New()
	h.Write([]byte(i.OccurredAt.UTC().Format(time.RFC3339Nano)))
	h.Write([]byte{0}) // field separator so ("a","b") and ("ab","") differ
	h.Write([]byte(i.Description))
	return Identity(hex.EncodeToString(h.Sum(nil)))
}
