package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/eurouni/eurostudy/internal/models"
	pgrepo "github.com/eurouni/eurostudy/internal/repositories/postgres"
	"github.com/eurouni/eurostudy/internal/utils"
)

type UserService interface {
	Register(ctx context.Context, email, password, fullName string) (*models.User, error)
	Login(ctx context.Context, email, password string) (token string, user *models.User, err error)
}

type userService struct {
	users     pgrepo.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewUserService(users pgrepo.UserRepository, jwtSecret string, tokenTTL time.Duration) UserService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &userService{users: users, jwtSecret: []byte(jwtSecret), tokenTTL: tokenTTL}
}

func (s *userService) Register(ctx context.Context, email, password, fullName string) (*models.User, error) {
	const op = "UserService.Register"

	if email == "" || password == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "email and password are required", nil)
	}
	if len(password) < 8 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "password must be at least 8 characters", nil)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, utils.E(utils.CodeConflict, op, "email already registered", nil)
	} else if !errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeInternal, op, "failed to check email", err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to hash password", err)
	}

	u := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		Role:         models.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	const op = "UserService.Login"

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return "", nil, utils.E(utils.CodeUnauthorized, op, "invalid credentials", nil)
		}
		return "", nil, utils.E(utils.CodeInternal, op, "failed to load user", err)
	}
	if err := utils.CheckPassword(u.PasswordHash, password); err != nil {
		return "", nil, utils.E(utils.CodeUnauthorized, op, "invalid credentials", nil)
	}

	now := time.Now().UTC()
	claims := struct {
		jwt.RegisteredClaims
		Role string `json:"role,omitempty"`
	}{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		Role: string(u.Role),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, utils.E(utils.CodeInternal, op, "failed to sign token", err)
	}

	if err := s.users.TouchSignIn(ctx, u.ID, now); err != nil {
		// non-fatal; login still succeeds
		return token, u, nil
	}
	u.LastSignInAt = now
	return token, u, nil
}
