package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/eurouni/eurostudy/internal/models"
	"github.com/eurouni/eurostudy/internal/utils"
)

// MemoryStore is an ephemeral, process-local store. It round-trips through
// JSON so callers see the same copy semantics as the durable backends.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte

	// Writes counts PersistAll calls; tests use it to assert that the
	// auto-save ticker skips clean states.
	Writes int

	// FailNext makes the next PersistAll fail with a storage error.
	FailNext bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) ListAll(_ context.Context, ownerID string) ([]models.Resume, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.data[ownerID]
	if !ok {
		return []models.Resume{}, nil
	}
	var resumes []models.Resume
	if err := json.Unmarshal(b, &resumes); err != nil {
		return nil, utils.E(utils.CodeInternal, "store.MemoryStore.ListAll", "corrupt resume collection", err)
	}
	return resumes, nil
}

func (s *MemoryStore) PersistAll(_ context.Context, ownerID string, resumes []models.Resume) error {
	const op = "store.MemoryStore.PersistAll"

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailNext {
		s.FailNext = false
		return utils.E(utils.CodeUnavailable, op, "resume storage unavailable", nil)
	}
	if resumes == nil {
		resumes = []models.Resume{}
	}
	b, err := json.Marshal(resumes)
	if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to encode resume collection", err)
	}
	s.data[ownerID] = b
	s.Writes++
	return nil
}
