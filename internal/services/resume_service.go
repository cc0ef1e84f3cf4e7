package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/eurouni/eurostudy/internal/advisor"
	"github.com/eurouni/eurostudy/internal/models"
	"github.com/eurouni/eurostudy/internal/resume"
	"github.com/eurouni/eurostudy/internal/store"
	"github.com/eurouni/eurostudy/internal/utils"
)

// ResumeService owns the resume collection lifecycle: creation from the
// default template, lookups, shallow-merge saves, atomic deletes and the
// per-section entry operations. Every mutation rewrites the owner's whole
// collection through the store.
type ResumeService interface {
	CreateNew(ctx context.Context, ownerID, name string) (*models.Resume, error)
	ListAll(ctx context.Context, ownerID string) ([]models.Resume, error)
	GetByID(ctx context.Context, ownerID, id string) (*models.Resume, error)
	Save(ctx context.Context, ownerID, id string, patch resume.Patch) (*models.Resume, error)
	Delete(ctx context.Context, ownerID, id string) error

	AddEducation(ctx context.Context, ownerID, id string, in resume.EducationInput) (*models.Resume, error)
	UpdateEducation(ctx context.Context, ownerID, id, entryID string, in resume.EducationInput) (*models.Resume, error)
	DeleteEducation(ctx context.Context, ownerID, id, entryID string) (*models.Resume, error)

	AddExperience(ctx context.Context, ownerID, id string, in resume.ExperienceInput) (*models.Resume, error)
	UpdateExperience(ctx context.Context, ownerID, id, entryID string, in resume.ExperienceInput) (*models.Resume, error)
	DeleteExperience(ctx context.Context, ownerID, id, entryID string) (*models.Resume, error)

	AddLanguage(ctx context.Context, ownerID, id string, in resume.LanguageInput) (*models.Resume, error)
	UpdateLanguage(ctx context.Context, ownerID, id, entryID string, in resume.LanguageInput) (*models.Resume, error)
	DeleteLanguage(ctx context.Context, ownerID, id, entryID string) (*models.Resume, error)

	AddCertification(ctx context.Context, ownerID, id string, in resume.CertificationInput) (*models.Resume, error)
	UpdateCertification(ctx context.Context, ownerID, id, entryID string, in resume.CertificationInput) (*models.Resume, error)
	DeleteCertification(ctx context.Context, ownerID, id, entryID string) (*models.Resume, error)

	AddProject(ctx context.Context, ownerID, id string, in resume.ProjectInput) (*models.Resume, error)
	UpdateProject(ctx context.Context, ownerID, id, entryID string, in resume.ProjectInput) (*models.Resume, error)
	DeleteProject(ctx context.Context, ownerID, id, entryID string) (*models.Resume, error)

	AddSkill(ctx context.Context, ownerID, id, category, skill string) (*models.Resume, error)
	RemoveSkill(ctx context.Context, ownerID, id, category, skill string) (*models.Resume, error)

	GenerateSummary(ctx context.Context, ownerID, id string) (*models.Resume, error)
	AISuggestions(ctx context.Context, ownerID, id, section string) (json.RawMessage, error)
	SkillGapAnalysis(ctx context.Context, ownerID, id, universityID string) (json.RawMessage, error)
}

// resumeAI is the slice of the advisor client the resume service needs.
type resumeAI interface {
	GenerateSummary(ctx context.Context, req advisor.SummaryRequest) (*advisor.SummaryResponse, error)
	AISuggestions(ctx context.Context, req advisor.SuggestionsRequest) (json.RawMessage, error)
	SkillGapAnalysis(ctx context.Context, req advisor.SkillGapRequest) (json.RawMessage, error)
}

type resumeService struct {
	store store.ResumeStore
	ai    resumeAI
	now   func() time.Time
}

func NewResumeService(s store.ResumeStore, ai resumeAI) ResumeService {
	return &resumeService{store: s, ai: ai, now: func() time.Time { return time.Now().UTC() }}
}

func (s *resumeService) CreateNew(ctx context.Context, ownerID, name string) (*models.Resume, error) {
	const op = "ResumeService.CreateNew"

	if ownerID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "owner_id is required", nil)
	}
	if name == "" {
		name = "Untitled Resume"
	}

	resumes, err := s.store.ListAll(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	r := models.NewResume(uuid.NewString(), ownerID, name, s.now())
	resumes = append(resumes, *r)
	if err := s.store.PersistAll(ctx, ownerID, resumes); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *resumeService) ListAll(ctx context.Context, ownerID string) ([]models.Resume, error) {
	return s.store.ListAll(ctx, ownerID)
}

func (s *resumeService) GetByID(ctx context.Context, ownerID, id string) (*models.Resume, error) {
	const op = "ResumeService.GetByID"

	resumes, err := s.store.ListAll(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for i := range resumes {
		if resumes[i].ID == id {
			return &resumes[i], nil
		}
	}
	return nil, utils.E(utils.CodeNotFound, op, "resume not found", nil)
}

// mutate loads the collection, applies fn to the matching record, stamps
// UpdatedAt and rewrites the whole collection. On any error the stored
// state is left as it was.
func (s *resumeService) mutate(ctx context.Context, ownerID, id string, fn func(*models.Resume) error) (*models.Resume, error) {
	const op = "ResumeService.mutate"

	resumes, err := s.store.ListAll(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for i := range resumes {
		if resumes[i].ID != id {
			continue
		}
		if err := fn(&resumes[i]); err != nil {
			return nil, err
		}
		resumes[i].UpdatedAt = s.now()
		if err := s.store.PersistAll(ctx, ownerID, resumes); err != nil {
			return nil, err
		}
		return &resumes[i], nil
	}
	return nil, utils.E(utils.CodeNotFound, op, "resume not found", nil)
}

func (s *resumeService) Save(ctx context.Context, ownerID, id string, patch resume.Patch) (*models.Resume, error) {
	return s.mutate(ctx, ownerID, id, func(r *models.Resume) error {
		patch.Apply(r)
		return nil
	})
}

func (s *resumeService) Delete(ctx context.Context, ownerID, id string) error {
	const op = "ResumeService.Delete"

	resumes, err := s.store.ListAll(ctx, ownerID)
	if err != nil {
		return err
	}
	for i := range resumes {
		if resumes[i].ID == id {
			// single rewrite drops the record and everything in it
			resumes = append(resumes[:i], resumes[i+1:]...)
			return s.store.PersistAll(ctx, ownerID, resumes)
		}
	}
	return utils.E(utils.CodeNotFound, op, "resume not found", nil)
}

func (s *resumeService) AddEducation(ctx context.Context, ownerID, id string, in resume.EducationInput) (*models.Resume, error) {
	return s.mutate(ctx, ownerID, id, func(r *models.Resume) error {
		_, err := resume.AddEducation(r, in)
		return err
	})
}

func (s *resumeService) UpdateEducation(ctx context.Context, ownerID, id, entryID string, in resume.EducationInput) (*models.Resume, error) {
	return s.mutate(ctx, ownerID, id, func(r *models.Resume) error {
		return resume.UpdateEducation(r, entryID, in)
	})
}

func (s *resumeService) DeleteEducation(ctx context.Context, ownerID, id, entryID string) (*models.Resume, error) {
	return s.mutate(ctx, ownerID, id, func(r *models.Resume) error {
		return resume.DeleteEducation(r, entryID)
	})
}

func (s *resumeService) AddExperience(ctx context.Context, ownerID, id string, in resume.ExperienceInput) (*models.Resume, error) {
	return s.mutate(ctx, ownerID, id, func(r *models.Resume) error {
		_, err := resume.AddExperience(r, in)
		return err
	})
}

func (s *resumeService) UpdateExperience(ctx context.Context, ownerID, id, entryID string, in resume.ExperienceInput) (*models.Resume, error) {
	return s.mutate(ctx, ownerID, id, func(r *models.Resume) error {
		return resume.UpdateExperience(r, entryID, in)
	})
}

func (s *resumeService) DeleteExperience(ctx context.Context, ownerID, id, entryID string) (*models.Resume, error) {
	return s.mutate(ctx, ownerID, id, func(r *models.Resume) error {
		return resume.DeleteExperience(r, entryID)
	})
}

func (s *resumeService) AddLanguage(ctx context.Context, ownerID, id string, in resume.LanguageInput) (*models.Resume, error) {
	return s.mutate(ctx, ownerID, id, func(r *models.Resume) error {
		_, err := resume.AddLanguage(r, in)
		return err
	})
}

func (s *resumeService) UpdateLanguage(ctx context.Context, ownerID, id, entryID string, in resume.LanguageInput) (*models.Resume, error) {
	return s.mutate(ctx, ownerID, id, func(r *models.Resume) error {
		return resume.UpdateLanguage(r, entryID, in)
	})
}

func (s *resumeService) DeleteLanguage(ctx context.Context, ownerID, id, entryID string) (*models.Resume, error) {
	return s.mutate(ctx, ownerID, id, func(r *models.Resume) error {
		return resume.DeleteLanguage(r, entryID)
	})
}

func (s *resumeService) AddCertification(ctx context.Context, ownerID, id string, in resume.CertificationInput) (*models.Resume, error) {
	return s.mutate(ctx, ownerID, id, func(r *models.Resume) error {
		_, err := resume.AddCertification(r, in)
		return err
	})
}

func (s *resumeService) UpdateCertification(ctx context.Context, ownerID, id, entryID string, in resume.CertificationInput) (*models.Resume, error) {
	return s.mutate(ctx, ownerID, id, func(r *models.Resume) error {
		return resume.UpdateCertification(r, entryID, in)
	})
}

func (s *resumeService) DeleteCertification(ctx context.Context, ownerID, id, entryID string) (*models.Resume, error) {
	return s.mutate(ctx, ownerID, id, func(r *models.Resume) error {
		return resume.DeleteCertification(r, entryID)
	})
}

func (s *resumeService) AddProject(ctx context.Context, ownerID, id string, in resume.ProjectInput) (*models.Resume, error) {
	return s.mutate(ctx, ownerID, id, func(r *models.Resume) error {
		_, err := resume.AddProject(r, in)
		return err
	})
}

func (s *resumeService) UpdateProject(ctx context.Context, ownerID, id, entryID string, in resume.ProjectInput) (*models.Resume, error) {
	return s.mutate(ctx, ownerID, id, func(r *models.Resume) error {
		return resume.UpdateProject(r, entryID, in)
	})
}

func (s *resumeService) DeleteProject(ctx context.Context, ownerID, id, entryID string) (*models.Resume, error) {
	return s.mutate(ctx, ownerID, id, func(r *models.Resume) error {
		return resume.DeleteProject(r, entryID)
	})
}

func (s *resumeService) AddSkill(ctx context.Context, ownerID, id, category, skill string) (*models.Resume, error) {
	return s.mutate(ctx, ownerID, id, func(r *models.Resume) error {
		return resume.AddSkill(r, category, skill)
	})
}

func (s *resumeService) RemoveSkill(ctx context.Context, ownerID, id, category, skill string) (*models.Resume, error) {
	return s.mutate(ctx, ownerID, id, func(r *models.Resume) error {
		return resume.RemoveSkill(r, category, skill)
	})
}

// GenerateSummary asks the advisor backend for a professional summary and,
// only on success, writes it into PersonalInfo.Summary. Local data is the
// source of truth; a failed call changes nothing.
func (s *resumeService) GenerateSummary(ctx context.Context, ownerID, id string) (*models.Resume, error) {
	const op = "ResumeService.GenerateSummary"

	if s.ai == nil {
		return nil, utils.E(utils.CodeUnavailable, op, "advisor backend is not configured", nil)
	}

	r, err := s.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	skills := make([]string, 0, len(r.Skills.Technical)+len(r.Skills.Soft))
	skills = append(skills, r.Skills.Technical...)
	skills = append(skills, r.Skills.Soft...)

	resp, err := s.ai.GenerateSummary(ctx, advisor.SummaryRequest{
		Name:       r.PersonalInfo.FullName,
		Headline:   r.PersonalInfo.Headline,
		Education:  r.Education,
		Experience: r.WorkExperience,
		Skills:     skills,
	})
	if err != nil {
		return nil, err
	}
	if resp.Summary == "" {
		return nil, utils.E(utils.CodeUnavailable, op, "advisor returned no summary", nil)
	}

	return s.mutate(ctx, ownerID, id, func(r *models.Resume) error {
		r.PersonalInfo.Summary = resp.Summary
		return nil
	})
}

func (s *resumeService) AISuggestions(ctx context.Context, ownerID, id, section string) (json.RawMessage, error) {
	const op = "ResumeService.AISuggestions"

	if s.ai == nil {
		return nil, utils.E(utils.CodeUnavailable, op, "advisor backend is not configured", nil)
	}
	r, err := s.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return s.ai.AISuggestions(ctx, advisor.SuggestionsRequest{Resume: r, Section: section})
}

func (s *resumeService) SkillGapAnalysis(ctx context.Context, ownerID, id, universityID string) (json.RawMessage, error) {
	const op = "ResumeService.SkillGapAnalysis"

	if s.ai == nil {
		return nil, utils.E(utils.CodeUnavailable, op, "advisor backend is not configured", nil)
	}
	r, err := s.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return s.ai.SkillGapAnalysis(ctx, advisor.SkillGapRequest{Resume: r, UniversityID: universityID})
}
