package resume

import (
	"github.com/eurouni/eurostudy/internal/models"
	"github.com/eurouni/eurostudy/internal/utils"
)

// Section inputs are the only mutable fields each editor may submit.
// Unknown keys never reach the aggregate because the structs enumerate
// the full field set per section.

type EducationInput struct {
	Institution       string `json:"institution"`
	Degree            string `json:"degree"`
	Field             string `json:"field"`
	StartDate         string `json:"start_date"`
	EndDate           string `json:"end_date"`
	CurrentlyStudying bool   `json:"currently_studying"`
	Description       string `json:"description"`
	Grade             string `json:"grade"`
}

func (in EducationInput) Validate() error {
	const op = "resume.EducationInput.Validate"
	if in.Institution == "" || in.Degree == "" {
		return utils.E(utils.CodeInvalidArgument, op, "institution and degree are required", nil)
	}
	return nil
}

type ExperienceInput struct {
	Company          string   `json:"company"`
	Position         string   `json:"position"`
	StartDate        string   `json:"start_date"`
	EndDate          string   `json:"end_date"`
	CurrentlyWorking bool     `json:"currently_working"`
	Description      string   `json:"description"`
	Achievements     []string `json:"achievements"`
}

func (in ExperienceInput) Validate() error {
	const op = "resume.ExperienceInput.Validate"
	if in.Company == "" || in.Position == "" {
		return utils.E(utils.CodeInvalidArgument, op, "company and position are required", nil)
	}
	return nil
}

type LanguageInput struct {
	Name              string `json:"name"`
	Proficiency       string `json:"proficiency"`
	Certificate       string `json:"certificate"`
	CertificationDate string `json:"certification_date"`
}

func (in LanguageInput) Validate() error {
	const op = "resume.LanguageInput.Validate"
	if in.Name == "" {
		return utils.E(utils.CodeInvalidArgument, op, "language name is required", nil)
	}
	if !models.ValidCEFR(in.Proficiency) {
		return utils.E(utils.CodeInvalidArgument, op, "proficiency must be a CEFR code (A1-C2)", nil)
	}
	return nil
}

type CertificationInput struct {
	Name                string `json:"name"`
	IssuingOrganization string `json:"issuing_organization"`
	IssueDate           string `json:"issue_date"`
	ExpirationDate      string `json:"expiration_date"`
	NoExpiry            bool   `json:"no_expiry"`
	CredentialID        string `json:"credential_id"`
	CredentialURL       string `json:"credential_url"`
}

func (in CertificationInput) Validate() error {
	const op = "resume.CertificationInput.Validate"
	if in.Name == "" || in.IssuingOrganization == "" {
		return utils.E(utils.CodeInvalidArgument, op, "name and issuing organization are required", nil)
	}
	return nil
}

type ProjectInput struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	URL          string   `json:"url"`
	Date         string   `json:"date"`
}

func (in ProjectInput) Validate() error {
	const op = "resume.ProjectInput.Validate"
	if in.Name == "" {
		return utils.E(utils.CodeInvalidArgument, op, "project name is required", nil)
	}
	return nil
}

// Patch is the typed top-level partial update accepted by save. Nil fields
// are left untouched; set fields replace the stored section wholesale.
type Patch struct {
	Name           *string                   `json:"name,omitempty"`
	PersonalInfo   *models.PersonalInfo      `json:"personal_info,omitempty"`
	Education      *[]models.EducationEntry  `json:"education,omitempty"`
	WorkExperience *[]models.ExperienceEntry `json:"work_experience,omitempty"`
	Skills         *models.Skills            `json:"skills,omitempty"`
	Languages      *[]models.LanguageEntry   `json:"languages,omitempty"`
	Certifications *[]models.Certification   `json:"certifications,omitempty"`
	Projects       *[]models.Project         `json:"projects,omitempty"`
}

// FullPatch captures every mutable field of r, so applying it replaces the
// stored record's content wholesale. Used by the editor's save path.
func FullPatch(r *models.Resume) Patch {
	name := r.Name
	info := r.PersonalInfo
	edu := r.Education
	exp := r.WorkExperience
	skills := r.Skills
	langs := r.Languages
	certs := r.Certifications
	projects := r.Projects
	return Patch{
		Name:           &name,
		PersonalInfo:   &info,
		Education:      &edu,
		WorkExperience: &exp,
		Skills:         &skills,
		Languages:      &langs,
		Certifications: &certs,
		Projects:       &projects,
	}
}

// Apply merges the patch into r. Shallow at the top level: nested lists are
// fully replaced, never element-merged.
func (p Patch) Apply(r *models.Resume) {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.PersonalInfo != nil {
		r.PersonalInfo = *p.PersonalInfo
	}
	if p.Education != nil {
		r.Education = *p.Education
	}
	if p.WorkExperience != nil {
		r.WorkExperience = *p.WorkExperience
	}
	if p.Skills != nil {
		r.Skills = *p.Skills
	}
	if p.Languages != nil {
		r.Languages = *p.Languages
	}
	if p.Certifications != nil {
		r.Certifications = *p.Certifications
	}
	if p.Projects != nil {
		r.Projects = *p.Projects
	}
}
