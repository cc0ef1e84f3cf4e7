package resume

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"

	"github.com/eurouni/eurostudy/internal/models"
	"github.com/eurouni/eurostudy/internal/utils"
)

// Entry operations mutate one section of the aggregate in place. Adds
// validate required fields and assign a fresh uuid; updates merge submitted
// fields into the matching entry; deletes drop it. The caller persists the
// whole resume afterwards.

func AddEducation(r *models.Resume, in EducationInput) (models.EducationEntry, error) {
	if err := in.Validate(); err != nil {
		return models.EducationEntry{}, err
	}
	e := models.EducationEntry{
		ID:                uuid.NewString(),
		Institution:       in.Institution,
		Degree:            in.Degree,
		Field:             in.Field,
		StartDate:         in.StartDate,
		EndDate:           in.EndDate,
		CurrentlyStudying: in.CurrentlyStudying,
		Description:       in.Description,
		Grade:             in.Grade,
	}
	r.Education = append(r.Education, e)
	return e, nil
}

func UpdateEducation(r *models.Resume, entryID string, in EducationInput) error {
	const op = "resume.UpdateEducation"
	if err := in.Validate(); err != nil {
		return err
	}
	for i := range r.Education {
		if r.Education[i].ID == entryID {
			e := &r.Education[i]
			e.Institution = in.Institution
			e.Degree = in.Degree
			e.Field = in.Field
			e.StartDate = in.StartDate
			e.EndDate = in.EndDate
			e.CurrentlyStudying = in.CurrentlyStudying
			e.Description = in.Description
			e.Grade = in.Grade
			return nil
		}
	}
	return utils.E(utils.CodeNotFound, op, "education entry not found", nil)
}

func DeleteEducation(r *models.Resume, entryID string) error {
	const op = "resume.DeleteEducation"
	for i := range r.Education {
		if r.Education[i].ID == entryID {
			r.Education = append(r.Education[:i], r.Education[i+1:]...)
			return nil
		}
	}
	return utils.E(utils.CodeNotFound, op, "education entry not found", nil)
}

func AddExperience(r *models.Resume, in ExperienceInput) (models.ExperienceEntry, error) {
	if err := in.Validate(); err != nil {
		return models.ExperienceEntry{}, err
	}
	achievements := in.Achievements
	if achievements == nil {
		achievements = []string{}
	}
	e := models.ExperienceEntry{
		ID:               uuid.NewString(),
		Company:          in.Company,
		Position:         in.Position,
		StartDate:        in.StartDate,
		EndDate:          in.EndDate,
		CurrentlyWorking: in.CurrentlyWorking,
		Description:      in.Description,
		Achievements:     achievements,
	}
	r.WorkExperience = append(r.WorkExperience, e)
	return e, nil
}

func UpdateExperience(r *models.Resume, entryID string, in ExperienceInput) error {
	const op = "resume.UpdateExperience"
	if err := in.Validate(); err != nil {
		return err
	}
	for i := range r.WorkExperience {
		if r.WorkExperience[i].ID == entryID {
			e := &r.WorkExperience[i]
			e.Company = in.Company
			e.Position = in.Position
			e.StartDate = in.StartDate
			e.EndDate = in.EndDate
			e.CurrentlyWorking = in.CurrentlyWorking
			e.Description = in.Description
			if in.Achievements != nil {
				e.Achievements = in.Achievements
			}
			return nil
		}
	}
	return utils.E(utils.CodeNotFound, op, "work experience entry not found", nil)
}

func DeleteExperience(r *models.Resume, entryID string) error {
	const op = "resume.DeleteExperience"
	for i := range r.WorkExperience {
		if r.WorkExperience[i].ID == entryID {
			r.WorkExperience = append(r.WorkExperience[:i], r.WorkExperience[i+1:]...)
			return nil
		}
	}
	return utils.E(utils.CodeNotFound, op, "work experience entry not found", nil)
}

func AddLanguage(r *models.Resume, in LanguageInput) (models.LanguageEntry, error) {
	if err := in.Validate(); err != nil {
		return models.LanguageEntry{}, err
	}
	l := models.LanguageEntry{
		ID:                uuid.NewString(),
		Name:              in.Name,
		Proficiency:       in.Proficiency,
		Certificate:       in.Certificate,
		CertificationDate: in.CertificationDate,
	}
	r.Languages = append(r.Languages, l)
	return l, nil
}

func UpdateLanguage(r *models.Resume, entryID string, in LanguageInput) error {
	const op = "resume.UpdateLanguage"
	if err := in.Validate(); err != nil {
		return err
	}
	for i := range r.Languages {
		if r.Languages[i].ID == entryID {
			l := &r.Languages[i]
			l.Name = in.Name
			l.Proficiency = in.Proficiency
			l.Certificate = in.Certificate
			l.CertificationDate = in.CertificationDate
			return nil
		}
	}
	return utils.E(utils.CodeNotFound, op, "language entry not found", nil)
}

func DeleteLanguage(r *models.Resume, entryID string) error {
	const op = "resume.DeleteLanguage"
	for i := range r.Languages {
		if r.Languages[i].ID == entryID {
			r.Languages = append(r.Languages[:i], r.Languages[i+1:]...)
			return nil
		}
	}
	return utils.E(utils.CodeNotFound, op, "language entry not found", nil)
}

func AddCertification(r *models.Resume, in CertificationInput) (models.Certification, error) {
	if err := in.Validate(); err != nil {
		return models.Certification{}, err
	}
	c := models.Certification{
		ID:                  uuid.NewString(),
		Name:                in.Name,
		IssuingOrganization: in.IssuingOrganization,
		IssueDate:           in.IssueDate,
		NoExpiry:            in.NoExpiry,
		CredentialID:        in.CredentialID,
		CredentialURL:       in.CredentialURL,
	}
	// expiration is meaningless for non-expiring credentials
	if !in.NoExpiry {
		c.ExpirationDate = in.ExpirationDate
	}
	r.Certifications = append(r.Certifications, c)
	return c, nil
}

func UpdateCertification(r *models.Resume, entryID string, in CertificationInput) error {
	const op = "resume.UpdateCertification"
	if err := in.Validate(); err != nil {
		return err
	}
	for i := range r.Certifications {
		if r.Certifications[i].ID == entryID {
			c := &r.Certifications[i]
			c.Name = in.Name
			c.IssuingOrganization = in.IssuingOrganization
			c.IssueDate = in.IssueDate
			c.NoExpiry = in.NoExpiry
			if in.NoExpiry {
				c.ExpirationDate = ""
			} else {
				c.ExpirationDate = in.ExpirationDate
			}
			c.CredentialID = in.CredentialID
			c.CredentialURL = in.CredentialURL
			return nil
		}
	}
	return utils.E(utils.CodeNotFound, op, "certification not found", nil)
}

func DeleteCertification(r *models.Resume, entryID string) error {
	const op = "resume.DeleteCertification"
	for i := range r.Certifications {
		if r.Certifications[i].ID == entryID {
			r.Certifications = append(r.Certifications[:i], r.Certifications[i+1:]...)
			return nil
		}
	}
	return utils.E(utils.CodeNotFound, op, "certification not found", nil)
}

func AddProject(r *models.Resume, in ProjectInput) (models.Project, error) {
	if err := in.Validate(); err != nil {
		return models.Project{}, err
	}
	technologies := in.Technologies
	if technologies == nil {
		technologies = []string{}
	}
	p := models.Project{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Description:  in.Description,
		Technologies: technologies,
		URL:          in.URL,
		Date:         in.Date,
	}
	r.Projects = append(r.Projects, p)
	return p, nil
}

func UpdateProject(r *models.Resume, entryID string, in ProjectInput) error {
	const op = "resume.UpdateProject"
	if err := in.Validate(); err != nil {
		return err
	}
	for i := range r.Projects {
		if r.Projects[i].ID == entryID {
			p := &r.Projects[i]
			p.Name = in.Name
			p.Description = in.Description
			if in.Technologies != nil {
				p.Technologies = in.Technologies
			}
			p.URL = in.URL
			p.Date = in.Date
			return nil
		}
	}
	return utils.E(utils.CodeNotFound, op, "project not found", nil)
}

func DeleteProject(r *models.Resume, entryID string) error {
	const op = "resume.DeleteProject"
	for i := range r.Projects {
		if r.Projects[i].ID == entryID {
			r.Projects = append(r.Projects[:i], r.Projects[i+1:]...)
			return nil
		}
	}
	return utils.E(utils.CodeNotFound, op, "project not found", nil)
}

// Skill categories accepted by AddSkill/RemoveSkill.
const (
	SkillTechnical = "technical"
	SkillSoft      = "soft"
	SkillLanguages = "languages"
)

func skillList(r *models.Resume, category string) (*[]string, bool) {
	switch category {
	case SkillTechnical:
		return &r.Skills.Technical, true
	case SkillSoft:
		return &r.Skills.Soft, true
	case SkillLanguages:
		return &r.Skills.Languages, true
	}
	return nil, false
}

// AddSkill appends skill to the given category, rejecting duplicates
// case-insensitively while keeping the original spelling and order.
func AddSkill(r *models.Resume, category, skill string) error {
	const op = "resume.AddSkill"
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return utils.E(utils.CodeInvalidArgument, op, "skill is required", nil)
	}
	list, ok := skillList(r, category)
	if !ok {
		return utils.E(utils.CodeInvalidArgument, op, "unknown skill category", nil)
	}

	seen := mapset.NewThreadUnsafeSet[string]()
	for _, s := range *list {
		seen.Add(strings.ToLower(s))
	}
	if seen.Contains(strings.ToLower(skill)) {
		return utils.E(utils.CodeConflict, op, "skill already present", nil)
	}
	*list = append(*list, skill)
	return nil
}

func RemoveSkill(r *models.Resume, category, skill string) error {
	const op = "resume.RemoveSkill"
	list, ok := skillList(r, category)
	if !ok {
		return utils.E(utils.CodeInvalidArgument, op, "unknown skill category", nil)
	}
	for i, s := range *list {
		if strings.EqualFold(s, skill) {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return nil
		}
	}
	return utils.E(utils.CodeNotFound, op, "skill not found", nil)
}
