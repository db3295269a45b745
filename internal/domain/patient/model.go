// Package patient generates patient demographic records and patient-scoped
// allergy records.
package patient

import (
	"time"

	"github.com/clindata/clindata/internal/platform/bulk"
)

// Patient maps to the patients table. Immutable after generation except for
// the activity flag.
type Patient struct {
	PatientID                    int
	MRN                          string
	FirstName                    string
	LastName                     string
	MiddleName                   string
	DateOfBirth                  time.Time
	Sex                          string
	Race                         string
	Ethnicity                    string
	PrimaryLanguage              string
	SSNLast4                     string
	StreetAddress                string
	City                         string
	State                        string
	ZipCode                      string
	PhonePrimary                 string
	PhoneSecondary               string
	Email                        string
	EmergencyContactName         string
	EmergencyContactRelationship string
	EmergencyContactPhone        string
	InsuranceProvider            string
	InsurancePolicyNumber        string
	CreatedAt                    time.Time
	IsActive                     bool
}

// Columns is the patients bulk-load column order.
var Columns = []string{
	"patient_id", "mrn", "first_name", "last_name", "middle_name",
	"date_of_birth", "sex", "race", "ethnicity", "primary_language",
	"ssn_last4", "street_address", "city", "state", "zip_code",
	"phone_primary", "phone_secondary", "email", "emergency_contact_name",
	"emergency_contact_relationship", "emergency_contact_phone",
	"insurance_provider", "insurance_policy_number", "created_at",
	"is_active",
}

// Record renders the patient in Columns order.
func (p Patient) Record() []string {
	return []string{
		bulk.Int(p.PatientID), p.MRN, p.FirstName, p.LastName, p.MiddleName,
		bulk.Date(p.DateOfBirth), p.Sex, p.Race, p.Ethnicity,
		p.PrimaryLanguage, p.SSNLast4, p.StreetAddress, p.City, p.State,
		p.ZipCode, p.PhonePrimary, p.PhoneSecondary, p.Email,
		p.EmergencyContactName, p.EmergencyContactRelationship,
		p.EmergencyContactPhone, p.InsuranceProvider,
		p.InsurancePolicyNumber, bulk.Timestamp(p.CreatedAt),
		bulk.Bool(p.IsActive),
	}
}

// Allergy maps to the allergies table; (patient_id, allergen) is unique.
type Allergy struct {
	AllergyID            int
	PatientID            int
	Allergen             string
	AllergyType          string
	Reaction             string
	Severity             string
	OnsetDate            time.Time
	ReportedDate         time.Time
	ReportedByProviderID int
	IsActive             bool
}

// AllergyColumns is the allergies bulk-load column order.
var AllergyColumns = []string{
	"allergy_id", "patient_id", "allergen", "allergy_type", "reaction",
	"severity", "onset_date", "reported_date", "reported_by_provider_id",
	"is_active",
}

// Record renders the allergy in AllergyColumns order.
func (a Allergy) Record() []string {
	return []string{
		bulk.Int(a.AllergyID), bulk.Int(a.PatientID), a.Allergen,
		a.AllergyType, a.Reaction, a.Severity, bulk.Date(a.OnsetDate),
		bulk.Timestamp(a.ReportedDate), bulk.Int(a.ReportedByProviderID),
		bulk.Bool(a.IsActive),
	}
}
