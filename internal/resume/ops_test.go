package resume

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eurouni/eurostudy/internal/models"
	"github.com/eurouni/eurostudy/internal/utils"
)

func newTestResume() *models.Resume {
	return models.NewResume("r1", "u1", "Test Resume", time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC))
}

func TestAddEducation(t *testing.T) {
	r := newTestResume()

	e, err := AddEducation(r, EducationInput{
		Institution: "TU Munich",
		Degree:      "MSc",
		Field:       "Computer Science",
		StartDate:   "2024-10",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, e.ID)
	require.Len(t, r.Education, 1)
	assert.Equal(t, "TU Munich", r.Education[0].Institution)

	// a second add gets a distinct id
	e2, err := AddEducation(r, EducationInput{Institution: "KU Leuven", Degree: "BSc"})
	require.NoError(t, err)
	assert.NotEqual(t, e.ID, e2.ID)
	assert.Len(t, r.Education, 2)
}

func TestAddEducationValidation(t *testing.T) {
	r := newTestResume()

	_, err := AddEducation(r, EducationInput{Degree: "MSc"})
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
	assert.Empty(t, r.Education)
}

func TestUpdateEducation(t *testing.T) {
	r := newTestResume()
	e, err := AddEducation(r, EducationInput{Institution: "TU Delft", Degree: "BSc"})
	require.NoError(t, err)

	err = UpdateEducation(r, e.ID, EducationInput{
		Institution:       "TU Delft",
		Degree:            "MSc",
		CurrentlyStudying: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "MSc", r.Education[0].Degree)
	assert.True(t, r.Education[0].CurrentlyStudying)
	// id survives updates
	assert.Equal(t, e.ID, r.Education[0].ID)
}

func TestUpdateEducationNotFound(t *testing.T) {
	r := newTestResume()
	err := UpdateEducation(r, "missing", EducationInput{Institution: "X", Degree: "Y"})
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestDeleteEducation(t *testing.T) {
	r := newTestResume()
	e1, _ := AddEducation(r, EducationInput{Institution: "A", Degree: "BSc"})
	e2, _ := AddEducation(r, EducationInput{Institution: "B", Degree: "MSc"})

	require.NoError(t, DeleteEducation(r, e1.ID))
	require.Len(t, r.Education, 1)
	assert.Equal(t, e2.ID, r.Education[0].ID)

	err := DeleteEducation(r, e1.ID)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestAddExperienceDefaultsAchievements(t *testing.T) {
	r := newTestResume()

	e, err := AddExperience(r, ExperienceInput{Company: "ACME", Position: "Intern"})
	require.NoError(t, err)
	assert.NotNil(t, e.Achievements)
	assert.Empty(t, e.Achievements)
}

func TestUpdateExperienceKeepsAchievementsWhenOmitted(t *testing.T) {
	r := newTestResume()
	e, err := AddExperience(r, ExperienceInput{
		Company:      "ACME",
		Position:     "Engineer",
		Achievements: []string{"shipped v1"},
	})
	require.NoError(t, err)

	err = UpdateExperience(r, e.ID, ExperienceInput{Company: "ACME", Position: "Senior Engineer"})
	require.NoError(t, err)
	assert.Equal(t, "Senior Engineer", r.WorkExperience[0].Position)
	assert.Equal(t, []string{"shipped v1"}, r.WorkExperience[0].Achievements)
}

func TestAddLanguageRejectsNonCEFR(t *testing.T) {
	r := newTestResume()

	_, err := AddLanguage(r, LanguageInput{Name: "German", Proficiency: "fluent"})
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	l, err := AddLanguage(r, LanguageInput{Name: "German", Proficiency: "B2"})
	require.NoError(t, err)
	assert.Equal(t, "B2", l.Proficiency)
}

func TestCertificationNoExpiryClearsExpirationDate(t *testing.T) {
	r := newTestResume()

	c, err := AddCertification(r, CertificationInput{
		Name:                "IELTS Academic",
		IssuingOrganization: "British Council",
		ExpirationDate:      "2028-06",
		NoExpiry:            true,
	})
	require.NoError(t, err)
	assert.Empty(t, c.ExpirationDate)

	// flipping the flag on update wipes a previously stored date
	err = UpdateCertification(r, c.ID, CertificationInput{
		Name:                "IELTS Academic",
		IssuingOrganization: "British Council",
		ExpirationDate:      "2028-06",
	})
	require.NoError(t, err)
	assert.Equal(t, "2028-06", r.Certifications[0].ExpirationDate)

	err = UpdateCertification(r, c.ID, CertificationInput{
		Name:                "IELTS Academic",
		IssuingOrganization: "British Council",
		NoExpiry:            true,
	})
	require.NoError(t, err)
	assert.Empty(t, r.Certifications[0].ExpirationDate)
}

func TestProjectOps(t *testing.T) {
	r := newTestResume()

	p, err := AddProject(r, ProjectInput{Name: "Thesis", Technologies: []string{"Go"}})
	require.NoError(t, err)

	err = UpdateProject(r, p.ID, ProjectInput{Name: "Thesis v2", URL: "https://example.org"})
	require.NoError(t, err)
	assert.Equal(t, "Thesis v2", r.Projects[0].Name)
	// omitted technologies keep the stored list
	assert.Equal(t, []string{"Go"}, r.Projects[0].Technologies)

	require.NoError(t, DeleteProject(r, p.ID))
	assert.Empty(t, r.Projects)
}

func TestAddSkillDeduplicatesCaseInsensitively(t *testing.T) {
	r := newTestResume()

	require.NoError(t, AddSkill(r, SkillTechnical, "Python"))
	require.NoError(t, AddSkill(r, SkillTechnical, "SQL"))

	err := AddSkill(r, SkillTechnical, "python")
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeConflict))

	// original spelling and insertion order are preserved
	assert.Equal(t, []string{"Python", "SQL"}, r.Skills.Technical)
}

func TestAddSkillUnknownCategory(t *testing.T) {
	r := newTestResume()
	err := AddSkill(r, "hobbies", "chess")
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestRemoveSkill(t *testing.T) {
	r := newTestResume()
	require.NoError(t, AddSkill(r, SkillSoft, "Teamwork"))

	require.NoError(t, RemoveSkill(r, SkillSoft, "teamwork"))
	assert.Empty(t, r.Skills.Soft)

	err := RemoveSkill(r, SkillSoft, "Teamwork")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestPatchApplyShallowMerge(t *testing.T) {
	r := newTestResume()
	_, err := AddEducation(r, EducationInput{Institution: "TU Wien", Degree: "BSc"})
	require.NoError(t, err)

	name := "Exchange Applications"
	skills := models.Skills{Technical: []string{"R"}}
	p := Patch{Name: &name, Skills: &skills}
	p.Apply(r)

	assert.Equal(t, "Exchange Applications", r.Name)
	// set fields replace the section wholesale
	assert.Equal(t, []string{"R"}, r.Skills.Technical)
	assert.Nil(t, r.Skills.Soft)
	// untouched sections survive
	assert.Len(t, r.Education, 1)
}

func TestFullPatchRoundTrip(t *testing.T) {
	r := newTestResume()
	r.PersonalInfo.FullName = "Ana Petrova"
	_, err := AddProject(r, ProjectInput{Name: "Portfolio"})
	require.NoError(t, err)

	target := models.NewResume("r2", "u1", "other", time.Now().UTC())
	FullPatch(r).Apply(target)

	assert.Equal(t, r.Name, target.Name)
	assert.Equal(t, r.PersonalInfo, target.PersonalInfo)
	assert.Equal(t, r.Projects, target.Projects)
	// identity fields are not part of the patch
	assert.Equal(t, "r2", target.ID)
}
