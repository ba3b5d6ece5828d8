package repo

import (
	"context"
	"errors"

	"github.com/hamed0406/railalert/internal/domain"
)

var (
	// ErrUnavailable means the backing store cannot be reached. Fatal for the
	// run; the next scheduled invocation retries.
	ErrUnavailable = errors.New("incident store unavailable")

	// ErrDuplicateIdentity means a commit would insert an identity the store
	// already holds. The whole commit is rolled back.
	ErrDuplicateIdentity = errors.New("duplicate incident identity")
)

// IncidentStore is the durable watermark: every incident already notified
// about, keyed by identity. Grows monotonically; pruning is external policy.
type IncidentStore interface {
	// KnownIdentities returns every identity previously committed.
	KnownIdentities(ctx context.Context) (map[domain.Identity]struct{}, error)

	// Commit inserts all given incidents in one transaction. Any uniqueness
	// violation fails the whole commit with ErrDuplicateIdentity and leaves
	// no partial write observable.
	Commit(ctx context.Context, incidents []domain.Incident) error
}
