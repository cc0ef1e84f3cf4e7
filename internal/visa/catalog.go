// Package visa holds the static study-visa document catalog. The data
// ships with the service; only per-user progress lives in the database.
package visa

import "github.com/eurouni/eurostudy/internal/models"

// Catalog maps upper-case ISO-ish country codes to their requirement sets.
var Catalog = map[string]models.VisaRequirements{
	"GERMANY": {
		CountryCode: "GERMANY",
		CountryName: "Germany",
		VisaType:    "National Visa (D-Type) for Study",
		Categories: []models.VisaCategory{
			{
				Title: "Mandatory Documents",
				Items: []models.VisaItem{
					{ID: "passport", Label: "Valid Passport", Description: "Must be valid for at least 3-6 months beyond stay."},
					{ID: "visa_app", Label: "Visa Application Form", Description: "Duly filled and signed National Visa application forms."},
					{ID: "photos", Label: "Biometric Photos", Description: "Two recent passport-sized photos (35mm x 45mm)."},
					{ID: "admit_letter", Label: "Admission Letter", Description: "Unconditional or conditional letter from a German university."},
				},
			},
			{
				Title: "Financial Proof",
				Items: []models.VisaItem{
					{ID: "blocked_account", Label: "Blocked Account (Sperrkonto)", Description: "Proof of €11,208 for one year (2024/25 rate)."},
					{ID: "scholarship", Label: "Scholarship Proof", Description: "If applicable, official scholarship award letter."},
				},
			},
			{
				Title: "Health & Academic",
				Items: []models.VisaItem{
					{ID: "health_ins", Label: "Health Insurance", Description: "Travel health insurance followed by statutory/private German insurance."},
					{ID: "academic_trans", Label: "Academic Transcripts", Description: "Original certificates and transcripts of previous education."},
					{ID: "aps", Label: "APS Certificate", Description: "Mandatory for students from India, China, and Vietnam."},
				},
			},
		},
	},
	"FRANCE": {
		CountryCode: "FRANCE",
		CountryName: "France",
		VisaType:    "VLS-TS (Long-stay visa)",
		Categories: []models.VisaCategory{
			{
				Title: "Basic Documents",
				Items: []models.VisaItem{
					{ID: "france_visas", Label: "France-Visas Form", Description: "Registration receipt from France-Visas portal."},
					{ID: "ee_france", Label: "Etudes en France Attestation", Description: "Confirmation of completion of Campus France process."},
					{ID: "photos", Label: "Passport Photos", Description: "Recent photos complying with ISO standards."},
				},
			},
			{
				Title: "Proof of Accommodation",
				Items: []models.VisaItem{
					{ID: "housing", Label: "Housing Proof", Description: "Lease, CROUS letter, or 'attestation d'hébergement' for the first 3 months."},
				},
			},
			{
				Title: "Financial Resources",
				Items: []models.VisaItem{
					{ID: "funds", Label: "Proof of Funds", Description: "Bank statements showing at least €615 per month for one academic year."},
				},
			},
		},
	},
	"ITALY": {
		CountryCode: "ITALY",
		CountryName: "Italy",
		VisaType:    "National Visa (Type D) - Study",
		Categories: []models.VisaCategory{
			{
				Title: "Pre-Enrolment",
				Items: []models.VisaItem{
					{ID: "universitaly", Label: "Universitaly Summary", Description: "Summary of your pre-enrolment on the Universitaly portal."},
					{ID: "dov", Label: "DOV / CIMEA", Description: "Declaration of Value or CIMEA Statement of Comparability."},
				},
			},
			{
				Title: "Financial & Medical",
				Items: []models.VisaItem{
					{ID: "funds", Label: "Financial Means", Description: "Minimum of €6,000 per year proof of sustenance."},
					{ID: "medical", Label: "Health Insurance", Description: "Policy valid for Italy for the duration of stay."},
				},
			},
		},
	},
}

// HasItem reports whether itemID exists anywhere in the country's catalog.
func HasItem(req models.VisaRequirements, itemID string) bool {
	for _, cat := range req.Categories {
		for _, it := range cat.Items {
			if it.ID == itemID {
				return true
			}
		}
	}
	return false
}
