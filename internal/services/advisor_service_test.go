package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eurouni/eurostudy/internal/advisor"
	"github.com/eurouni/eurostudy/internal/models"
	"github.com/eurouni/eurostudy/internal/utils"
)

type fakeAdvisorAPI struct {
	lastProfile advisor.StudentProfileRequest
	lastCost    advisor.CostAnalysisRequest
	lastQuery   advisor.QueryRequest
	lastSOP     advisor.SOPRequest
	lastFilter  advisor.ScholarshipFilter
	lastCountry string
}

func (f *fakeAdvisorAPI) Predict(_ context.Context, req advisor.StudentProfileRequest) (json.RawMessage, error) {
	f.lastProfile = req
	return json.RawMessage(`{"status":"success"}`), nil
}

func (f *fakeAdvisorAPI) Recommend(_ context.Context, req advisor.StudentProfileRequest) (json.RawMessage, error) {
	f.lastProfile = req
	return json.RawMessage(`{"status":"success"}`), nil
}

func (f *fakeAdvisorAPI) CostAnalysis(_ context.Context, req advisor.CostAnalysisRequest) (json.RawMessage, error) {
	f.lastCost = req
	return json.RawMessage(`{"status":"success"}`), nil
}

func (f *fakeAdvisorAPI) Scholarships(_ context.Context, _ advisor.ScholarshipRequest) (json.RawMessage, error) {
	return json.RawMessage(`{"status":"success"}`), nil
}

func (f *fakeAdvisorAPI) Universities(_ context.Context) (json.RawMessage, error) {
	return json.RawMessage(`{"status":"success"}`), nil
}

func (f *fakeAdvisorAPI) ScholarshipList(_ context.Context) (json.RawMessage, error) {
	return json.RawMessage(`{"status":"success"}`), nil
}

func (f *fakeAdvisorAPI) FindAffordable(_ context.Context, req advisor.StudentProfileRequest) (json.RawMessage, error) {
	f.lastProfile = req
	return json.RawMessage(`{"status":"success"}`), nil
}

func (f *fakeAdvisorAPI) Query(_ context.Context, req advisor.QueryRequest) (json.RawMessage, error) {
	f.lastQuery = req
	return json.RawMessage(`{"status":"success","answer":"ok"}`), nil
}

func (f *fakeAdvisorAPI) GenerateSOP(_ context.Context, req advisor.SOPRequest) (json.RawMessage, error) {
	f.lastSOP = req
	return json.RawMessage(`{"status":"success"}`), nil
}

func (f *fakeAdvisorAPI) ScholarshipsByCountry(_ context.Context, country string) (json.RawMessage, error) {
	f.lastCountry = country
	return json.RawMessage(`{"status":"success"}`), nil
}

func (f *fakeAdvisorAPI) ScholarshipStatistics(_ context.Context) (json.RawMessage, error) {
	return json.RawMessage(`{"status":"success"}`), nil
}

func (f *fakeAdvisorAPI) FilterScholarships(_ context.Context, filter advisor.ScholarshipFilter) (json.RawMessage, error) {
	f.lastFilter = filter
	return json.RawMessage(`{"status":"success"}`), nil
}

type fakeProfiles struct {
	profile *models.StudentProfile
}

func (f *fakeProfiles) GetMe(_ context.Context, userID string) (*models.StudentProfile, error) {
	if f.profile == nil {
		return nil, utils.E(utils.CodeNotFound, "ProfileService.GetMe", "profile not found", utils.ErrNotFound)
	}
	return f.profile, nil
}

func (f *fakeProfiles) Upsert(_ context.Context, p *models.StudentProfile) error {
	f.profile = p
	return nil
}

func TestPredictFillsZeroFieldsFromProfile(t *testing.T) {
	api := &fakeAdvisorAPI{}
	svc := NewAdvisorService(api, &fakeProfiles{profile: &models.StudentProfile{
		UserID: "u1", GPA: 3.4, IELTS: 6.5, Budget: 15000, Country: "Germany", Field: "CS",
	}})

	_, err := svc.Predict(context.Background(), "u1", advisor.StudentProfileRequest{GPA: 3.9})
	require.NoError(t, err)

	// explicit override wins, everything else comes from the profile
	assert.Equal(t, 3.9, api.lastProfile.GPA)
	assert.Equal(t, 6.5, api.lastProfile.IELTS)
	assert.Equal(t, 15000.0, api.lastProfile.Budget)
	assert.Equal(t, "Germany", api.lastProfile.Country)
}

func TestPredictWithoutStoredProfile(t *testing.T) {
	api := &fakeAdvisorAPI{}
	svc := NewAdvisorService(api, &fakeProfiles{})

	_, err := svc.Predict(context.Background(), "u1", advisor.StudentProfileRequest{GPA: 3.0, IELTS: 7.0})
	require.NoError(t, err)
	assert.Equal(t, 3.0, api.lastProfile.GPA)
}

func TestCostAnalysisValidation(t *testing.T) {
	api := &fakeAdvisorAPI{}
	svc := NewAdvisorService(api, &fakeProfiles{})
	ctx := context.Background()

	_, err := svc.CostAnalysis(ctx, advisor.CostAnalysisRequest{Country: "France"})
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	_, err = svc.CostAnalysis(ctx, advisor.CostAnalysisRequest{TuitionFee: 8000, Country: "France"})
	require.NoError(t, err)
	// duration defaults to the typical master's length
	assert.Equal(t, 2, api.lastCost.DurationYears)
}

func TestScholarshipsRequiresCountry(t *testing.T) {
	svc := NewAdvisorService(&fakeAdvisorAPI{}, &fakeProfiles{})

	_, err := svc.Scholarships(context.Background(), advisor.ScholarshipRequest{})
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestFindAffordableUsesProfileBudget(t *testing.T) {
	api := &fakeAdvisorAPI{}
	svc := NewAdvisorService(api, &fakeProfiles{profile: &models.StudentProfile{
		UserID: "u1", GPA: 3.2, Budget: 12000,
	}})
	ctx := context.Background()

	_, err := svc.FindAffordable(ctx, "u1", advisor.StudentProfileRequest{})
	require.NoError(t, err)
	assert.Equal(t, 12000.0, api.lastProfile.Budget)

	// no stored profile and no override budget is rejected before the call
	svcNoProfile := NewAdvisorService(api, &fakeProfiles{})
	_, err = svcNoProfile.FindAffordable(ctx, "u1", advisor.StudentProfileRequest{GPA: 3.0})
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestQueryRequiresQuestion(t *testing.T) {
	api := &fakeAdvisorAPI{}
	svc := NewAdvisorService(api, &fakeProfiles{})
	ctx := context.Background()

	_, err := svc.Query(ctx, "   ")
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	_, err = svc.Query(ctx, "Do I need IELTS for France?")
	require.NoError(t, err)
	assert.Equal(t, "Do I need IELTS for France?", api.lastQuery.Query)
}

func TestGenerateSOPDefaultsTone(t *testing.T) {
	api := &fakeAdvisorAPI{}
	svc := NewAdvisorService(api, &fakeProfiles{})
	ctx := context.Background()

	_, err := svc.GenerateSOP(ctx, advisor.SOPRequest{CourseName: "Data Science"})
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	_, err = svc.GenerateSOP(ctx, advisor.SOPRequest{
		UniversityName: "TU Delft",
		CourseName:     "Data Science",
	})
	require.NoError(t, err)
	assert.Equal(t, "Professional", api.lastSOP.Tone)

	_, err = svc.GenerateSOP(ctx, advisor.SOPRequest{
		UniversityName: "TU Delft",
		CourseName:     "Data Science",
		Tone:           "Academic",
	})
	require.NoError(t, err)
	assert.Equal(t, "Academic", api.lastSOP.Tone)
}

func TestScholarshipsByCountryRequiresCountry(t *testing.T) {
	api := &fakeAdvisorAPI{}
	svc := NewAdvisorService(api, &fakeProfiles{})
	ctx := context.Background()

	_, err := svc.ScholarshipsByCountry(ctx, " ")
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	_, err = svc.ScholarshipsByCountry(ctx, "Netherlands")
	require.NoError(t, err)
	assert.Equal(t, "Netherlands", api.lastCountry)
}

func TestFilterScholarshipsValidatesRange(t *testing.T) {
	api := &fakeAdvisorAPI{}
	svc := NewAdvisorService(api, &fakeProfiles{})
	ctx := context.Background()

	_, err := svc.FilterScholarships(ctx, advisor.ScholarshipFilter{MinAmount: 9000, MaxAmount: 1000})
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	_, err = svc.FilterScholarships(ctx, advisor.ScholarshipFilter{Country: "France", Coverage: "full"})
	require.NoError(t, err)
	assert.Equal(t, "France", api.lastFilter.Country)
	assert.Equal(t, "full", api.lastFilter.Coverage)
}
