package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Save-status values of an editor session. Transitions:
// saved -> unsaved (section update), unsaved -> saving -> saved|error.
const (
	SaveStatusSaved   = "saved"
	SaveStatusUnsaved = "unsaved"
	SaveStatusSaving  = "saving"
	SaveStatusError   = "error"
)

// EditSession is the persisted record of one resume editing session.
type EditSession struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID string             `bson:"session_id" json:"session_id"` // uuid v4
	UserID    string             `bson:"user_id" json:"user_id"`
	ResumeID  string             `bson:"resume_id" json:"resume_id"`

	LastStatus string `bson:"last_status" json:"last_status"` // saved|unsaved|saving|error
	SaveCount  int64  `bson:"save_count" json:"save_count"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	ClosedAt  *time.Time `bson:"closed_at,omitempty" json:"closed_at,omitempty"`
}

// EditSnapshot is one auto-save (or manual save) snapshot taken during a
// session, kept for a short window so an interrupted edit can be inspected.
type EditSnapshot struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID string             `bson:"session_id" json:"session_id"`
	ResumeID  string             `bson:"resume_id" json:"resume_id"`
	Seq       int64              `bson:"seq" json:"seq"`
	Resume    Resume             `bson:"resume" json:"resume"`
	Auto      bool               `bson:"auto" json:"auto"` // true when taken by the auto-save ticker
	TakenAt   time.Time          `bson:"taken_at" json:"taken_at"`
	ExpiresAt time.Time          `bson:"expires_at" json:"expires_at"` // TTL index target
}
