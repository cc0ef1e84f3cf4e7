package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/eurouni/eurostudy/internal/models"
	"github.com/eurouni/eurostudy/internal/utils"
)

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.StudentProfile, error)
	Upsert(ctx context.Context, p *models.StudentProfile) error
}

type profileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) GetByUserID(ctx context.Context, userID string) (*models.StudentProfile, error) {
	var p models.StudentProfile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &p, err
}

func (r *profileRepo) Upsert(ctx context.Context, p *models.StudentProfile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"gpa", "ielts", "budget", "country", "field", "preferences", "updated_at"}),
		}).
		Create(p).Error
}
