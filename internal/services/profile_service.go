package services

import (
	"context"
	"errors"
	"time"

	"github.com/eurouni/eurostudy/internal/cache"
	"github.com/eurouni/eurostudy/internal/models"
	pgrepo "github.com/eurouni/eurostudy/internal/repositories/postgres"
	"github.com/eurouni/eurostudy/internal/utils"
)

const profileCacheTTL = 5 * time.Minute

// ProfileService is the single read/write contract for the shared student
// profile context. Pages no longer pass profile fields around ad hoc; they
// go through here.
type ProfileService interface {
	GetMe(ctx context.Context, userID string) (*models.StudentProfile, error)
	Upsert(ctx context.Context, p *models.StudentProfile) error
}

type profileService struct {
	profiles pgrepo.ProfileRepository
	cache    cache.Cache // optional read-through cache
}

func NewProfileService(profiles pgrepo.ProfileRepository, c cache.Cache) ProfileService {
	return &profileService{profiles: profiles, cache: c}
}

func profileCacheKey(userID string) string { return "profile:" + userID }

func (s *profileService) GetMe(ctx context.Context, userID string) (*models.StudentProfile, error) {
	const op = "ProfileService.GetMe"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	if s.cache != nil {
		var cached models.StudentProfile
		if hit, err := s.cache.GetJSON(ctx, profileCacheKey(userID), &cached); err == nil && hit {
			return &cached, nil
		}
	}

	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "profile not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get profile", err)
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, profileCacheKey(userID), p, profileCacheTTL)
	}
	return p, nil
}

func (s *profileService) Upsert(ctx context.Context, p *models.StudentProfile) error {
	const op = "ProfileService.Upsert"

	if p == nil || p.UserID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "profile.user_id is required", nil)
	}
	if p.GPA < 0 || p.GPA > 4 {
		return utils.E(utils.CodeInvalidArgument, op, "gpa must be between 0 and 4", nil)
	}
	if p.IELTS < 0 || p.IELTS > 9 {
		return utils.E(utils.CodeInvalidArgument, op, "ielts must be between 0 and 9", nil)
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}
	if err := s.profiles.Upsert(ctx, p); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to upsert profile", err)
	}

	if s.cache != nil {
		_ = s.cache.Del(ctx, profileCacheKey(p.UserID))
	}
	return nil
}
