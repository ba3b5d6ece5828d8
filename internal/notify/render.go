package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/hamed0406/railalert/internal/reconcile"
)

// Render turns a batch into the outgoing subject and plain-text body: one line
// per incident, UTC timestamp then description, in batch order. Deterministic
// so the same batch always produces the same message.
func Render(batch reconcile.Batch) (subject, body string) {
	noun := "incidents"
	if len(batch) == 1 {
		noun = "incident"
	}
	subject = fmt.Sprintf("%d new transit %s", len(batch), noun)

	var b strings.Builder
	for _, inc := range batch {
		b.WriteString(inc.OccurredAt.UTC().Format(time.RFC3339))
		b.WriteString("  ")
		b.WriteString(inc.Description)
		b.WriteString("\n")
	}
	return subject, b.String()
}
