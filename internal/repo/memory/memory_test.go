package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hamed0406/railalert/internal/domain"
	"github.com/hamed0406/railalert/internal/repo"
)

func inc(at time.Time, desc string) domain.Incident {
	return domain.Incident{OccurredAt: at, Description: desc}
}

func TestStore_CommitThenKnown(t *testing.T) {
	ctx := context.Background()
	s := New()

	at := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	a := inc(at, "Delay on Line 1")
	b := inc(at.Add(time.Hour), "Delay on Line 2")

	if err := s.Commit(ctx, []domain.Incident{a, b}); err != nil {
		t.Fatalf("commit: %v", err)
	}

	known, err := s.KnownIdentities(ctx)
	if err != nil {
		t.Fatalf("known: %v", err)
	}
	if len(known) != 2 {
		t.Fatalf("want 2 identities, got %d", len(known))
	}
	if _, ok := known[a.Identity()]; !ok {
		t.Fatal("missing identity for first incident")
	}
}

func TestStore_DuplicateCommitIsAtomic(t *testing.T) {
	ctx := context.Background()
	s := New()

	at := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	a := inc(at, "Delay on Line 1")
	if err := s.Commit(ctx, []domain.Incident{a}); err != nil {
		t.Fatalf("seed commit: %v", err)
	}

	fresh := inc(at.Add(time.Hour), "Delay on Line 2")
	err := s.Commit(ctx, []domain.Incident{fresh, a})
	if !errors.Is(err, repo.ErrDuplicateIdentity) {
		t.Fatalf("want ErrDuplicateIdentity, got %v", err)
	}

	// The fresh incident must not have leaked in.
	known, _ := s.KnownIdentities(ctx)
	if len(known) != 1 {
		t.Fatalf("store changed by failed commit: %d identities", len(known))
	}
	if _, ok := known[fresh.Identity()]; ok {
		t.Fatal("partial write observable after failed commit")
	}
}

func TestStore_DuplicateWithinBatch(t *testing.T) {
	ctx := context.Background()
	s := New()

	at := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	a := inc(at, "Delay on Line 1")
	err := s.Commit(ctx, []domain.Incident{a, a})
	if !errors.Is(err, repo.ErrDuplicateIdentity) {
		t.Fatalf("want ErrDuplicateIdentity, got %v", err)
	}
	known, _ := s.KnownIdentities(ctx)
	if len(known) != 0 {
		t.Fatalf("store must stay empty, got %d", len(known))
	}
}

func TestStore_EmptyCommitIsNoop(t *testing.T) {
	s := New()
	if err := s.Commit(context.Background(), nil); err != nil {
		t.Fatalf("empty commit: %v", err)
	}
}
