package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eurouni/eurostudy/internal/models"
	"github.com/eurouni/eurostudy/internal/utils"
)

type memVisaProgressRepo struct {
	data map[string]*models.VisaProgress
}

func newMemVisaProgressRepo() *memVisaProgressRepo {
	return &memVisaProgressRepo{data: make(map[string]*models.VisaProgress)}
}

func (r *memVisaProgressRepo) Get(_ context.Context, userID, countryCode string) (*models.VisaProgress, error) {
	p, ok := r.data[userID+"/"+countryCode]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memVisaProgressRepo) Upsert(_ context.Context, p *models.VisaProgress) error {
	cp := *p
	r.data[p.UserID+"/"+p.CountryCode] = &cp
	return nil
}

func TestVisaCountriesSorted(t *testing.T) {
	svc := NewVisaService(newMemVisaProgressRepo())

	countries := svc.Countries()
	require.NotEmpty(t, countries)
	for i := 1; i < len(countries); i++ {
		assert.LessOrEqual(t, countries[i-1].Name, countries[i].Name)
	}
}

func TestVisaRequirements(t *testing.T) {
	svc := NewVisaService(newMemVisaProgressRepo())

	req, err := svc.Requirements("germany")
	require.NoError(t, err)
	assert.Equal(t, "Germany", req.CountryName)
	assert.NotEmpty(t, req.Categories)

	_, err = svc.Requirements("ATLANTIS")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestVisaProgressDefaultsEmpty(t *testing.T) {
	svc := NewVisaService(newMemVisaProgressRepo())

	p, err := svc.Progress(context.Background(), "u1", "FRANCE")
	require.NoError(t, err)
	assert.Equal(t, "FRANCE", p.CountryCode)
	require.NotNil(t, p.CheckedIDs)
	assert.Empty(t, p.CheckedIDs)
}

func TestVisaSetChecked(t *testing.T) {
	svc := NewVisaService(newMemVisaProgressRepo())
	ctx := context.Background()

	p, err := svc.SetChecked(ctx, "u1", "GERMANY", "passport", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"passport"}, []string(p.CheckedIDs))

	// setting the same state again is idempotent
	p, err = svc.SetChecked(ctx, "u1", "GERMANY", "passport", true)
	require.NoError(t, err)
	assert.Len(t, p.CheckedIDs, 1)

	p, err = svc.SetChecked(ctx, "u1", "GERMANY", "blocked_account", true)
	require.NoError(t, err)
	assert.Len(t, p.CheckedIDs, 2)

	p, err = svc.SetChecked(ctx, "u1", "GERMANY", "passport", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"blocked_account"}, []string(p.CheckedIDs))
}

func TestVisaSetCheckedUnknownItem(t *testing.T) {
	svc := NewVisaService(newMemVisaProgressRepo())

	_, err := svc.SetChecked(context.Background(), "u1", "GERMANY", "submarine", true)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	_, err = svc.SetChecked(context.Background(), "u1", "ATLANTIS", "passport", true)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}
