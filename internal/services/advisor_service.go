package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/eurouni/eurostudy/internal/advisor"
	"github.com/eurouni/eurostudy/internal/utils"
)

// advisorAPI is the slice of the advisor client this service uses.
type advisorAPI interface {
	Predict(ctx context.Context, req advisor.StudentProfileRequest) (json.RawMessage, error)
	Recommend(ctx context.Context, req advisor.StudentProfileRequest) (json.RawMessage, error)
	CostAnalysis(ctx context.Context, req advisor.CostAnalysisRequest) (json.RawMessage, error)
	Scholarships(ctx context.Context, req advisor.ScholarshipRequest) (json.RawMessage, error)
	FindAffordable(ctx context.Context, req advisor.StudentProfileRequest) (json.RawMessage, error)
	Query(ctx context.Context, req advisor.QueryRequest) (json.RawMessage, error)
	GenerateSOP(ctx context.Context, req advisor.SOPRequest) (json.RawMessage, error)
	Universities(ctx context.Context) (json.RawMessage, error)
	ScholarshipList(ctx context.Context) (json.RawMessage, error)
	ScholarshipsByCountry(ctx context.Context, country string) (json.RawMessage, error)
	ScholarshipStatistics(ctx context.Context) (json.RawMessage, error)
	FilterScholarships(ctx context.Context, f advisor.ScholarshipFilter) (json.RawMessage, error)
}

// AdvisorService fronts the external analytics backend. Profile-shaped
// requests fall back to the stored student profile for any field the
// caller leaves zero, so dashboards work without re-entering the basics.
type AdvisorService interface {
	Predict(ctx context.Context, userID string, override advisor.StudentProfileRequest) (json.RawMessage, error)
	Recommend(ctx context.Context, userID string, override advisor.StudentProfileRequest) (json.RawMessage, error)
	FindAffordable(ctx context.Context, userID string, override advisor.StudentProfileRequest) (json.RawMessage, error)
	CostAnalysis(ctx context.Context, req advisor.CostAnalysisRequest) (json.RawMessage, error)
	Scholarships(ctx context.Context, req advisor.ScholarshipRequest) (json.RawMessage, error)
	Query(ctx context.Context, question string) (json.RawMessage, error)
	GenerateSOP(ctx context.Context, req advisor.SOPRequest) (json.RawMessage, error)
	Universities(ctx context.Context) (json.RawMessage, error)
	ScholarshipList(ctx context.Context) (json.RawMessage, error)
	ScholarshipsByCountry(ctx context.Context, country string) (json.RawMessage, error)
	ScholarshipStatistics(ctx context.Context) (json.RawMessage, error)
	FilterScholarships(ctx context.Context, f advisor.ScholarshipFilter) (json.RawMessage, error)
}

type advisorService struct {
	client   advisorAPI
	profiles ProfileService
}

func NewAdvisorService(client advisorAPI, profiles ProfileService) AdvisorService {
	return &advisorService{client: client, profiles: profiles}
}

// withProfile fills zero fields of the override from the stored profile.
// A missing profile is fine: the override is sent as-is.
func (s *advisorService) withProfile(ctx context.Context, userID string, override advisor.StudentProfileRequest) (advisor.StudentProfileRequest, error) {
	p, err := s.profiles.GetMe(ctx, userID)
	if err != nil {
		if utils.IsCode(err, utils.CodeNotFound) || errors.Is(err, utils.ErrNotFound) {
			return override, nil
		}
		return override, err
	}
	if override.GPA == 0 {
		override.GPA = p.GPA
	}
	if override.IELTS == 0 {
		override.IELTS = p.IELTS
	}
	if override.Budget == 0 {
		override.Budget = p.Budget
	}
	if override.Country == "" {
		override.Country = p.Country
	}
	if override.Field == "" {
		override.Field = p.Field
	}
	return override, nil
}

func (s *advisorService) Predict(ctx context.Context, userID string, override advisor.StudentProfileRequest) (json.RawMessage, error) {
	req, err := s.withProfile(ctx, userID, override)
	if err != nil {
		return nil, err
	}
	return s.client.Predict(ctx, req)
}

func (s *advisorService) Recommend(ctx context.Context, userID string, override advisor.StudentProfileRequest) (json.RawMessage, error) {
	req, err := s.withProfile(ctx, userID, override)
	if err != nil {
		return nil, err
	}
	return s.client.Recommend(ctx, req)
}

func (s *advisorService) CostAnalysis(ctx context.Context, req advisor.CostAnalysisRequest) (json.RawMessage, error) {
	const op = "AdvisorService.CostAnalysis"
	if req.TuitionFee <= 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "tuition_fee must be positive", nil)
	}
	if req.DurationYears <= 0 {
		req.DurationYears = 2
	}
	return s.client.CostAnalysis(ctx, req)
}

func (s *advisorService) Scholarships(ctx context.Context, req advisor.ScholarshipRequest) (json.RawMessage, error) {
	const op = "AdvisorService.Scholarships"
	if req.Country == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "country is required", nil)
	}
	return s.client.Scholarships(ctx, req)
}

func (s *advisorService) FindAffordable(ctx context.Context, userID string, override advisor.StudentProfileRequest) (json.RawMessage, error) {
	const op = "AdvisorService.FindAffordable"
	req, err := s.withProfile(ctx, userID, override)
	if err != nil {
		return nil, err
	}
	if req.Budget <= 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "budget must be positive", nil)
	}
	return s.client.FindAffordable(ctx, req)
}

func (s *advisorService) Query(ctx context.Context, question string) (json.RawMessage, error) {
	const op = "AdvisorService.Query"
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "query is required", nil)
	}
	return s.client.Query(ctx, advisor.QueryRequest{Query: question})
}

func (s *advisorService) GenerateSOP(ctx context.Context, req advisor.SOPRequest) (json.RawMessage, error) {
	const op = "AdvisorService.GenerateSOP"
	if req.UniversityName == "" || req.CourseName == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "university and course are required", nil)
	}
	if req.Tone == "" {
		req.Tone = "Professional"
	}
	return s.client.GenerateSOP(ctx, req)
}

func (s *advisorService) Universities(ctx context.Context) (json.RawMessage, error) {
	return s.client.Universities(ctx)
}

func (s *advisorService) ScholarshipList(ctx context.Context) (json.RawMessage, error) {
	return s.client.ScholarshipList(ctx)
}

func (s *advisorService) ScholarshipsByCountry(ctx context.Context, country string) (json.RawMessage, error) {
	const op = "AdvisorService.ScholarshipsByCountry"
	if strings.TrimSpace(country) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "country is required", nil)
	}
	return s.client.ScholarshipsByCountry(ctx, country)
}

func (s *advisorService) ScholarshipStatistics(ctx context.Context) (json.RawMessage, error) {
	return s.client.ScholarshipStatistics(ctx)
}

func (s *advisorService) FilterScholarships(ctx context.Context, f advisor.ScholarshipFilter) (json.RawMessage, error) {
	const op = "AdvisorService.FilterScholarships"
	if f.MinAmount > 0 && f.MaxAmount > 0 && f.MinAmount > f.MaxAmount {
		return nil, utils.E(utils.CodeInvalidArgument, op, "min_amount exceeds max_amount", nil)
	}
	return s.client.FilterScholarships(ctx, f)
}
