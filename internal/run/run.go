package run

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hamed0406/railalert/internal/feed"
	"github.com/hamed0406/railalert/internal/normalize"
	"github.com/hamed0406/railalert/internal/notify"
	"github.com/hamed0406/railalert/internal/reconcile"
	"github.com/hamed0406/railalert/internal/repo"
)

// Stage names the step a run was in when it failed.
type Stage string

const (
	StageFetch     Stage = "fetch"
	StageNormalize Stage = "normalize"
	StageLoad      Stage = "load"
	StageNotify    Stage = "notify"
	StageCommit    Stage = "commit"
)

// StageError is the terminal Failed(reason) of a run: which step broke and why.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s: %v", e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

func fail(stage Stage, err error) (Result, error) {
	return Result{}, &StageError{Stage: stage, Err: err}
}

// Runner sequences one reconciliation pass:
// fetch -> normalize -> load -> reconcile -> notify -> commit.
//
// The store is committed only after the notifier reports success. That
// ordering is deliberate: a crash between send and commit means the next run
// re-detects and re-sends the same incidents. A duplicate alert is acceptable;
// a silently lost one is not. Reversing the order would create exactly that
// silent-loss mode.
type Runner struct {
	Source     feed.Source
	Normalizer *normalize.Normalizer
	Store      repo.IncidentStore
	Notifier   notify.Notifier
	Logger     *zap.Logger
}

// Result reports what one completed pass did.
type Result struct {
	Fetched   int  // raw records from the feed
	Notified  int  // incidents in the outgoing message; 0 means nothing was sent
	Committed bool // watermark advanced
}

// Run executes a single pass. A nil error means Done, whether or not a
// notification went out. No step retries internally; the external scheduler
// owns retry-on-next-invocation.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	raw, err := r.Source.Fetch(ctx)
	if err != nil {
		return fail(StageFetch, err)
	}
	r.Logger.Debug("fetched", zap.Int("records", len(raw)))

	incidents, err := r.Normalizer.NormalizeAll(raw)
	if err != nil {
		return fail(StageNormalize, err)
	}

	known, err := r.Store.KnownIdentities(ctx)
	if err != nil {
		return fail(StageLoad, err)
	}

	batch := reconcile.New(incidents, known)
	if len(batch) == 0 {
		r.Logger.Info("no_new_incidents", zap.Int("fetched", len(raw)), zap.Int("known", len(known)))
		return Result{Fetched: len(raw)}, nil
	}

	subject, body := notify.Render(batch)
	if err := r.Notifier.Send(ctx, subject, body); err != nil {
		return fail(StageNotify, err)
	}
	r.Logger.Info("notification_sent", zap.Int("incidents", len(batch)), zap.String("subject", subject))

	if err := r.Store.Commit(ctx, batch); err != nil {
		// The mail is already out. The watermark did not advance, so the next
		// run will re-notify these incidents. Say so explicitly rather than
		// hiding the window.
		r.Logger.Error("commit_failed_after_send",
			zap.Int("incidents", len(batch)),
			zap.Error(err),
		)
		return fail(StageCommit, err)
	}

	return Result{Fetched: len(raw), Notified: len(batch), Committed: true}, nil
}
