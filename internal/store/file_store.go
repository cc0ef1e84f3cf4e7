package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/eurouni/eurostudy/internal/models"
	"github.com/eurouni/eurostudy/internal/utils"
)

// FileStore keeps one JSON file per owner under dir. Used for offline and
// development runs where no Redis is available. A mutex serializes the
// read-modify-write cycle within this process; other processes writing the
// same file are last-writer-wins.
type FileStore struct {
	mu       sync.Mutex
	dir      string
	maxBytes int
}

func NewFileStore(dir string, maxBytes int) (*FileStore, error) {
	const op = "store.NewFileStore"
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to create store directory", err)
	}
	return &FileStore{dir: dir, maxBytes: maxBytes}, nil
}

var safeOwnerID = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// path maps ownerID to a file inside dir. Owner ids are uuids in practice;
// anything else (including path separators or dot segments) is hashed so a
// crafted id cannot escape the data directory.
func (s *FileStore) path(ownerID string) string {
	name := ownerID
	if !safeOwnerID.MatchString(name) {
		sum := sha256.Sum256([]byte(ownerID))
		name = hex.EncodeToString(sum[:])
	}
	return filepath.Join(s.dir, name+".json")
}

func (s *FileStore) ListAll(_ context.Context, ownerID string) ([]models.Resume, error) {
	const op = "store.FileStore.ListAll"

	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path(ownerID))
	if errors.Is(err, os.ErrNotExist) {
		return []models.Resume{}, nil
	}
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "resume storage unavailable", err)
	}

	var resumes []models.Resume
	if err := json.Unmarshal(b, &resumes); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "corrupt resume collection", err)
	}
	return resumes, nil
}

func (s *FileStore) PersistAll(_ context.Context, ownerID string, resumes []models.Resume) error {
	const op = "store.FileStore.PersistAll"

	if resumes == nil {
		resumes = []models.Resume{}
	}
	b, err := json.Marshal(resumes)
	if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to encode resume collection", err)
	}
	if len(b) > s.maxBytes {
		return utils.E(utils.CodeUnavailable, op, "resume collection exceeds storage capacity", nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// write-then-rename keeps the previous collection intact on failure
	tmp := s.path(ownerID) + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return utils.E(utils.CodeUnavailable, op, "resume storage unavailable", err)
	}
	if err := os.Rename(tmp, s.path(ownerID)); err != nil {
		return utils.E(utils.CodeUnavailable, op, "resume storage unavailable", err)
	}
	return nil
}
