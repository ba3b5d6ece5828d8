package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/hamed0406/railalert/internal/domain"
	"github.com/hamed0406/railalert/internal/repo"
)

var _ repo.IncidentStore = (*Store)(nil)

// Store keeps the watermark in memory. Used by tests and by storeless dev
// runs; every incident re-notifies on the next process start.
type Store struct {
	mu        sync.RWMutex
	incidents map[domain.Identity]domain.Incident
}

func New() *Store {
	return &Store{incidents: make(map[domain.Identity]domain.Incident)}
}

func (m *Store) KnownIdentities(ctx context.Context) (map[domain.Identity]struct{}, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[domain.Identity]struct{}, len(m.incidents))
	for id := range m.incidents {
		out[id] = struct{}{}
	}
	return out, nil
}

func (m *Store) Commit(ctx context.Context, incidents []domain.Incident) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Validate the whole batch before writing anything, so a duplicate
	// anywhere leaves the store untouched.
	staged := make(map[domain.Identity]domain.Incident, len(incidents))
	for _, inc := range incidents {
		id := inc.Identity()
		if _, ok := m.incidents[id]; ok {
			return fmt.Errorf("%w: %s", repo.ErrDuplicateIdentity, id)
		}
		if _, ok := staged[id]; ok {
			return fmt.Errorf("%w: %s", repo.ErrDuplicateIdentity, id)
		}
		staged[id] = inc
	}
	for id, inc := range staged {
		m.incidents[id] = inc
	}
	return nil
}
