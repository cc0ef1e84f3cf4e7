package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/eurouni/eurostudy/internal/models"
	"github.com/eurouni/eurostudy/internal/utils"
)

type EditSessionRepository interface {
	Create(ctx context.Context, s *models.EditSession) error
	GetBySessionID(ctx context.Context, sessionID string) (*models.EditSession, error)
	SetStatus(ctx context.Context, sessionID, status string) error
	RecordSave(ctx context.Context, sessionID string, status string) error
	Close(ctx context.Context, sessionID string, closedAt time.Time) error
	InsertSnapshot(ctx context.Context, snap *models.EditSnapshot) error
}

type editSessionRepo struct {
	sessions  *mongo.Collection
	snapshots *mongo.Collection
}

func NewEditSessionRepo(db *mongo.Database) EditSessionRepository {
	return &editSessionRepo{
		sessions:  db.Collection("edit_sessions"),
		snapshots: db.Collection("edit_snapshots"),
	}
}

func (r *editSessionRepo) Create(ctx context.Context, s *models.EditSession) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	_, err := r.sessions.InsertOne(ctx, s)
	return err
}

func (r *editSessionRepo) GetBySessionID(ctx context.Context, sessionID string) (*models.EditSession, error) {
	var s models.EditSession
	err := r.sessions.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	return &s, err
}

func (r *editSessionRepo) SetStatus(ctx context.Context, sessionID, status string) error {
	_, err := r.sessions.UpdateOne(ctx,
		bson.M{"session_id": sessionID},
		bson.M{"$set": bson.M{"last_status": status}},
	)
	return err
}

func (r *editSessionRepo) RecordSave(ctx context.Context, sessionID string, status string) error {
	_, err := r.sessions.UpdateOne(ctx,
		bson.M{"session_id": sessionID},
		bson.M{
			"$set": bson.M{"last_status": status},
			"$inc": bson.M{"save_count": 1},
		},
	)
	return err
}

func (r *editSessionRepo) Close(ctx context.Context, sessionID string, closedAt time.Time) error {
	_, err := r.sessions.UpdateOne(ctx,
		bson.M{"session_id": sessionID},
		bson.M{"$set": bson.M{"closed_at": closedAt.UTC()}},
	)
	return err
}

func (r *editSessionRepo) InsertSnapshot(ctx context.Context, snap *models.EditSnapshot) error {
	if snap.TakenAt.IsZero() {
		snap.TakenAt = time.Now().UTC()
	}
	_, err := r.snapshots.InsertOne(ctx, snap)
	return err
}
