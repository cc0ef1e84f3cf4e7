package store

import (
	"context"

	"github.com/eurouni/eurostudy/internal/models"
)

// ResumeStore persists each owner's resume collection as a single
// serialization unit: every mutation reads and rewrites the whole list.
// There is no cross-process coordination; concurrent writers from other
// instances are last-writer-wins by design.
//
// Failures surface as UNAVAILABLE app errors and are recoverable: callers
// keep their in-memory state and may retry.
type ResumeStore interface {
	ListAll(ctx context.Context, ownerID string) ([]models.Resume, error)
	PersistAll(ctx context.Context, ownerID string, resumes []models.Resume) error
}

// DefaultMaxBytes caps one owner's serialized collection. Persists beyond
// the cap fail like a full medium would.
const DefaultMaxBytes = 1 << 20
