package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/eurouni/eurostudy/internal/models"
	"github.com/eurouni/eurostudy/internal/utils"
)

type VisaProgressRepository interface {
	Get(ctx context.Context, userID, countryCode string) (*models.VisaProgress, error)
	Upsert(ctx context.Context, p *models.VisaProgress) error
}

type visaProgressRepo struct {
	db *gorm.DB
}

func NewVisaProgressRepo(db *gorm.DB) VisaProgressRepository {
	return &visaProgressRepo{db: db}
}

func (r *visaProgressRepo) Get(ctx context.Context, userID, countryCode string) (*models.VisaProgress, error) {
	var p models.VisaProgress
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND country_code = ?", userID, countryCode).
		Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &p, err
}

func (r *visaProgressRepo) Upsert(ctx context.Context, p *models.VisaProgress) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "country_code"}},
			DoUpdates: clause.AssignmentColumns([]string{"checked_ids", "updated_at"}),
		}).
		Create(p).Error
}
