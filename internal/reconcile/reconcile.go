package reconcile

import "github.com/hamed0406/railalert/internal/domain"

// Batch is the ordered set of incidents one run will notify about. Derived,
// never persisted itself; its members land in the store at commit time.
type Batch []domain.Incident

// New selects the incidents to notify about: the subsequence of incoming whose
// identity is not in known, in input order, with repeats inside the same batch
// collapsed to their first occurrence. Pure function; same inputs, same batch.
func New(incoming []domain.Incident, known map[domain.Identity]struct{}) Batch {
	seen := make(map[domain.Identity]struct{}, len(incoming))
	var out Batch
	for _, inc := range incoming {
		id := inc.Identity()
		if _, ok := known[id]; ok {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, inc)
	}
	return out
}
