package notify

import (
	"context"
	"errors"
)

// ErrDeliveryFailed covers every way the outbound message can fail: bad
// credentials, unreachable relay, rejection. All equally fatal for the run;
// retry policy belongs to the scheduler that invokes us.
var ErrDeliveryFailed = errors.New("delivery failed")

// Notifier submits one fully rendered message. The call is atomic from the
// engine's point of view: either the relay accepted the whole message or the
// run failed.
type Notifier interface {
	Send(ctx context.Context, subject, body string) error
}
