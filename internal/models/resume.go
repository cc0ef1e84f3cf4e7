package models

import (
	"encoding/json"
	"time"
)

// CEFR self-assessment codes used for language proficiency (Europass grid).
const (
	CEFRA1 = "A1"
	CEFRA2 = "A2"
	CEFRB1 = "B1"
	CEFRB2 = "B2"
	CEFRC1 = "C1"
	CEFRC2 = "C2"
)

// ValidCEFR reports whether code is one of the six Europass proficiency levels.
func ValidCEFR(code string) bool {
	switch code {
	case CEFRA1, CEFRA2, CEFRB1, CEFRB2, CEFRC1, CEFRC2:
		return true
	}
	return false
}

// Resume is the aggregate root of the resume builder. The whole record is
// serialized as one JSON document inside the owner's resume collection.
type Resume struct {
	ID        string    `json:"id"` // uuid v4, immutable
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"` // refreshed on every successful save

	PersonalInfo   PersonalInfo      `json:"personal_info"`
	Education      []EducationEntry  `json:"education"`
	WorkExperience []ExperienceEntry `json:"work_experience"`
	Skills         Skills            `json:"skills"`
	Languages      []LanguageEntry   `json:"languages"`
	Certifications []Certification   `json:"certifications"`
	Projects       []Project         `json:"projects"`
}

type PersonalInfo struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Country  string `json:"country"`
	Website  string `json:"website"`
	LinkedIn string `json:"linkedin"`
	Headline string `json:"headline"`
	Summary  string `json:"summary"`
}

type EducationEntry struct {
	ID                string `json:"id"`
	Institution       string `json:"institution"`
	Degree            string `json:"degree"`
	Field             string `json:"field"`
	StartDate         string `json:"start_date"`
	EndDate           string `json:"end_date"`
	CurrentlyStudying bool   `json:"currently_studying"`
	Description       string `json:"description"`
	Grade             string `json:"grade"`
}

type ExperienceEntry struct {
	ID               string   `json:"id"`
	Company          string   `json:"company"`
	Position         string   `json:"position"`
	StartDate        string   `json:"start_date"`
	EndDate          string   `json:"end_date"`
	CurrentlyWorking bool     `json:"currently_working"`
	Description      string   `json:"description"`
	Achievements     []string `json:"achievements"`
}

// Skills holds three deduplicated categories. Order of insertion is kept for
// rendering; duplicate inserts (case-insensitive) are rejected upstream.
type Skills struct {
	Technical []string `json:"technical"`
	Soft      []string `json:"soft"`
	Languages []string `json:"languages"`
}

type LanguageEntry struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Proficiency       string `json:"proficiency"` // CEFR A1..C2
	Certificate       string `json:"certificate"`
	CertificationDate string `json:"certification_date"`
}

type Certification struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	IssuingOrganization string `json:"issuing_organization"`
	IssueDate           string `json:"issue_date"`
	ExpirationDate      string `json:"expiration_date"` // ignored when NoExpiry
	NoExpiry            bool   `json:"no_expiry"`
	CredentialID        string `json:"credential_id"`
	CredentialURL       string `json:"credential_url"`
}

type Project struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	URL          string   `json:"url"`
	Date         string   `json:"date"`
}

// NewResume returns an empty resume from the default template. CreatedAt and
// UpdatedAt start equal; the id is assigned by the service.
func NewResume(id, ownerID, name string, now time.Time) *Resume {
	return &Resume{
		ID:             id,
		OwnerID:        ownerID,
		Name:           name,
		CreatedAt:      now,
		UpdatedAt:      now,
		Education:      []EducationEntry{},
		WorkExperience: []ExperienceEntry{},
		Skills: Skills{
			Technical: []string{},
			Soft:      []string{},
			Languages: []string{},
		},
		Languages:      []LanguageEntry{},
		Certifications: []Certification{},
		Projects:       []Project{},
	}
}

// Clone returns a deep copy via a JSON round-trip, so a snapshot taken at
// auto-save time is isolated from later edits.
func (r *Resume) Clone() *Resume {
	b, err := json.Marshal(r)
	if err != nil {
		// the model is plain data; marshalling cannot fail in practice
		cp := *r
		return &cp
	}
	var cp Resume
	if err := json.Unmarshal(b, &cp); err != nil {
		cp = *r
	}
	return &cp
}

// IsEmpty reports whether every section of the resume is blank. The preview
// renders a placeholder document for empty resumes.
func (r *Resume) IsEmpty() bool {
	return r.PersonalInfo == (PersonalInfo{}) &&
		len(r.Education) == 0 &&
		len(r.WorkExperience) == 0 &&
		len(r.Skills.Technical) == 0 &&
		len(r.Skills.Soft) == 0 &&
		len(r.Skills.Languages) == 0 &&
		len(r.Languages) == 0 &&
		len(r.Certifications) == 0 &&
		len(r.Projects) == 0
}
