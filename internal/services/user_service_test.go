package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eurouni/eurostudy/internal/models"
	"github.com/eurouni/eurostudy/internal/utils"
)

type memUserRepo struct {
	byEmail map[string]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: make(map[string]*models.User)}
}

func (r *memUserRepo) Create(_ context.Context, u *models.User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return utils.E(utils.CodeConflict, "memUserRepo.Create", "email already registered", nil)
	}
	cp := *u
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *memUserRepo) TouchSignIn(_ context.Context, id string, at time.Time) error {
	for _, u := range r.byEmail {
		if u.ID == id {
			u.LastSignInAt = at
			return nil
		}
	}
	return utils.ErrNotFound
}

func TestRegister(t *testing.T) {
	svc := NewUserService(newMemUserRepo(), "test-secret", time.Hour)
	ctx := context.Background()

	u, err := svc.Register(ctx, "ana@example.org", "s3cretpass", "Ana Petrova")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, models.RoleUser, u.Role)
	// the hash must not be the plaintext
	assert.NotEqual(t, "s3cretpass", u.PasswordHash)
	require.NoError(t, utils.CheckPassword(u.PasswordHash, "s3cretpass"))

	_, err = svc.Register(ctx, "ana@example.org", "otherpass1", "")
	assert.True(t, utils.IsCode(err, utils.CodeConflict))
}

func TestRegisterValidation(t *testing.T) {
	svc := NewUserService(newMemUserRepo(), "test-secret", time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "s3cretpass", "")
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	_, err = svc.Register(ctx, "ana@example.org", "short", "")
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestLogin(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewUserService(repo, "test-secret", time.Hour)
	ctx := context.Background()

	u, err := svc.Register(ctx, "ana@example.org", "s3cretpass", "Ana")
	require.NoError(t, err)

	token, got, err := svc.Login(ctx, "ana@example.org", "s3cretpass")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.False(t, got.LastSignInAt.IsZero())

	// the token carries the user id as subject
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(tk *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(*jwt.RegisteredClaims)
	assert.Equal(t, u.ID, claims.Subject)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestLoginBadCredentials(t *testing.T) {
	svc := NewUserService(newMemUserRepo(), "test-secret", time.Hour)
	ctx := context.Background()

	_, _, err := svc.Login(ctx, "nobody@example.org", "whatever1")
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))

	_, err = svc.Register(ctx, "ana@example.org", "s3cretpass", "")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "ana@example.org", "wrongpass1")
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))
}
