// Package preview projects a resume record into a rendered document. The
// projection is a pure function of the record: no state, no persistence.
package preview

import (
	"fmt"
	"strings"

	"github.com/eurouni/eurostudy/internal/models"
)

// Document is the render-ready view of a resume.
type Document struct {
	Title       string
	Header      Header
	Sections    []Section
	Placeholder bool // true when the resume has no content yet
}

type Header struct {
	FullName string
	Headline string
	Contact  []string // email, phone, address lines actually present
	Summary  string
}

type Section struct {
	Title   string
	Entries []Entry
}

type Entry struct {
	Primary   string // institution, company, language...
	Secondary string // degree, position, proficiency...
	Period    string
	Detail    string
	Bullets   []string
}

// Project builds the document view. An empty resume yields a placeholder
// document rather than an empty shell.
func Project(r *models.Resume) Document {
	if r.IsEmpty() {
		return Document{
			Title:       r.Name,
			Placeholder: true,
			Header:      Header{FullName: "Your Name"},
		}
	}

	doc := Document{
		Title: r.Name,
		Header: Header{
			FullName: orDefault(r.PersonalInfo.FullName, "Your Name"),
			Headline: r.PersonalInfo.Headline,
			Summary:  r.PersonalInfo.Summary,
		},
	}
	for _, c := range []string{
		r.PersonalInfo.Email,
		r.PersonalInfo.Phone,
		r.PersonalInfo.Address,
		r.PersonalInfo.Country,
		r.PersonalInfo.Website,
		r.PersonalInfo.LinkedIn,
	} {
		if c != "" {
			doc.Header.Contact = append(doc.Header.Contact, c)
		}
	}

	if len(r.Education) > 0 {
		sec := Section{Title: "Education"}
		for _, e := range r.Education {
			sec.Entries = append(sec.Entries, Entry{
				Primary:   e.Institution,
				Secondary: joinNonEmpty(" in ", e.Degree, e.Field),
				Period:    period(e.StartDate, e.EndDate, e.CurrentlyStudying),
				Detail:    joinNonEmpty(" — ", e.Description, gradeLabel(e.Grade)),
			})
		}
		doc.Sections = append(doc.Sections, sec)
	}

	if len(r.WorkExperience) > 0 {
		sec := Section{Title: "Work Experience"}
		for _, e := range r.WorkExperience {
			sec.Entries = append(sec.Entries, Entry{
				Primary:   e.Company,
				Secondary: e.Position,
				Period:    period(e.StartDate, e.EndDate, e.CurrentlyWorking),
				Detail:    e.Description,
				Bullets:   e.Achievements,
			})
		}
		doc.Sections = append(doc.Sections, sec)
	}

	if len(r.Skills.Technical)+len(r.Skills.Soft)+len(r.Skills.Languages) > 0 {
		sec := Section{Title: "Skills"}
		if len(r.Skills.Technical) > 0 {
			sec.Entries = append(sec.Entries, Entry{Primary: "Technical", Detail: strings.Join(r.Skills.Technical, ", ")})
		}
		if len(r.Skills.Soft) > 0 {
			sec.Entries = append(sec.Entries, Entry{Primary: "Soft", Detail: strings.Join(r.Skills.Soft, ", ")})
		}
		if len(r.Skills.Languages) > 0 {
			sec.Entries = append(sec.Entries, Entry{Primary: "Languages", Detail: strings.Join(r.Skills.Languages, ", ")})
		}
		doc.Sections = append(doc.Sections, sec)
	}

	if len(r.Languages) > 0 {
		sec := Section{Title: "Language Proficiency"}
		for _, l := range r.Languages {
			sec.Entries = append(sec.Entries, Entry{
				Primary:   l.Name,
				Secondary: l.Proficiency,
				Detail:    joinNonEmpty(", ", l.Certificate, l.CertificationDate),
			})
		}
		doc.Sections = append(doc.Sections, sec)
	}

	if len(r.Certifications) > 0 {
		sec := Section{Title: "Certifications"}
		for _, c := range r.Certifications {
			expiry := ""
			if !c.NoExpiry && c.ExpirationDate != "" {
				expiry = "expires " + c.ExpirationDate
			}
			sec.Entries = append(sec.Entries, Entry{
				Primary:   c.Name,
				Secondary: c.IssuingOrganization,
				Period:    joinNonEmpty(" · ", c.IssueDate, expiry),
				Detail:    c.CredentialURL,
			})
		}
		doc.Sections = append(doc.Sections, sec)
	}

	if len(r.Projects) > 0 {
		sec := Section{Title: "Projects"}
		for _, p := range r.Projects {
			sec.Entries = append(sec.Entries, Entry{
				Primary:   p.Name,
				Secondary: strings.Join(p.Technologies, ", "),
				Period:    p.Date,
				Detail:    joinNonEmpty(" — ", p.Description, p.URL),
			})
		}
		doc.Sections = append(doc.Sections, sec)
	}

	return doc
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func gradeLabel(grade string) string {
	if grade == "" {
		return ""
	}
	return fmt.Sprintf("Grade: %s", grade)
}

func period(start, end string, current bool) string {
	switch {
	case start == "" && end == "" && !current:
		return ""
	case current:
		return joinNonEmpty(" – ", start, "Present")
	default:
		return joinNonEmpty(" – ", start, end)
	}
}

func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
