package patient

import (
	"fmt"
	"time"

	"github.com/clindata/clindata/internal/platform/fake"
	"github.com/clindata/clindata/internal/platform/ident"
	"github.com/clindata/clindata/internal/platform/rng"
)

// Config controls the patient generator.
type Config struct {
	Count       int
	AllergyRate float64
	AsOf        time.Time
}

var races = []string{
	"White", "Black or African American", "Asian",
	"American Indian or Alaska Native",
	"Native Hawaiian or Other Pacific Islander", "Other", "Unknown",
}

var ethnicities = []string{
	"Hispanic or Latino", "Not Hispanic or Latino", "Unknown",
}

var languages = []string{
	"English", "English", "English", "English", "English",
	"Spanish", "Spanish", "Mandarin", "Vietnamese", "Tagalog",
}

var relations = []string{
	"Spouse", "Parent", "Child", "Sibling", "Friend", "Partner",
	"Grandparent", "Guardian",
}

var insurers = []string{
	"Blue Cross Blue Shield", "Aetna", "UnitedHealthcare", "Cigna",
	"Humana", "Kaiser Permanente", "Medicare", "Medicaid",
	"Anthem", "Self-Pay",
}

type allergen struct {
	Name     string
	Type     string
	Reaction string
	Severity string
}

var allergenPool = []allergen{
	{"Penicillin", "Drug", "Rash", "Moderate"},
	{"Sulfa Drugs", "Drug", "Hives", "Moderate"},
	{"Aspirin", "Drug", "Angioedema", "Severe"},
	{"Codeine", "Drug", "Nausea", "Mild"},
	{"Latex", "Environmental", "Contact dermatitis", "Mild"},
	{"Peanuts", "Food", "Anaphylaxis", "Severe"},
	{"Shellfish", "Food", "Hives", "Moderate"},
	{"Eggs", "Food", "Rash", "Mild"},
	{"Iodinated Contrast", "Drug", "Anaphylaxis", "Severe"},
	{"Bee Venom", "Environmental", "Anaphylaxis", "Severe"},
}

// Generator produces patients from a dedicated random stream.
type Generator struct {
	stream *rng.Stream
}

func NewGenerator(stream *rng.Stream) *Generator {
	return &Generator{stream: stream}
}

// Generate returns cfg.Count patients with unique MRNs. It fails only when
// the MRN namespace cannot yield enough unique values within the retry
// budget.
func (g *Generator) Generate(cfg Config) ([]Patient, error) {
	s := g.stream
	mrns := ident.NewAllocator("mrn", 0)

	patients := make([]Patient, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		mrn, err := mrns.Claim(func() string {
			return "MRN" + s.Digits(6)
		})
		if err != nil {
			return nil, fmt.Errorf("patient %d: %w", i+1, err)
		}

		sex := "M"
		if s.Chance(0.5) {
			sex = "F"
		}
		first := fake.FirstName(s, sex)
		last := fake.LastName(s)

		middle := ""
		if s.Chance(0.7) {
			middle = fake.AnyFirstName(s)
		}

		// Adults only: 18 to 95 years old as of the reference time.
		ageDays := s.IntBetween(18*365, 95*365)
		dob := cfg.AsOf.AddDate(0, 0, -ageDays)

		p := Patient{
			PatientID:                    i + 1,
			MRN:                          mrn,
			FirstName:                    first,
			LastName:                     last,
			MiddleName:                   middle,
			DateOfBirth:                  dob,
			Sex:                          sex,
			Race:                         rng.Pick(s, races),
			Ethnicity:                    rng.Pick(s, ethnicities),
			PrimaryLanguage:              rng.Pick(s, languages),
			SSNLast4:                     s.Digits(4),
			StreetAddress:                fake.StreetAddress(s),
			City:                         fake.City(s),
			State:                        fake.State(s),
			ZipCode:                      fake.ZipCode(s),
			PhonePrimary:                 fake.Phone(s),
			Email:                        fake.Email(s, first, last),
			EmergencyContactName:         fake.FullName(s),
			EmergencyContactRelationship: rng.Pick(s, relations),
			EmergencyContactPhone:        fake.Phone(s),
			InsuranceProvider:            rng.Pick(s, insurers),
			InsurancePolicyNumber:        "POL" + s.Digits(9),
			CreatedAt:                    s.TimeBetween(cfg.AsOf.AddDate(-2, 0, 0), cfg.AsOf),
			IsActive:                     true,
		}
		if s.Chance(0.3) {
			p.PhoneSecondary = fake.Phone(s)
		}
		patients = append(patients, p)
	}
	return patients, nil
}

// Allergies generates allergy records for p. Roughly AllergyRate of patients
// carry one to three distinct allergens. Allergy IDs are local to this call,
// starting at 1.
func (g *Generator) Allergies(cfg Config, patients []Patient, providerCount int) []Allergy {
	s := g.stream
	var out []Allergy
	for _, p := range patients {
		if !s.Chance(cfg.AllergyRate) {
			continue
		}
		n := s.IntBetween(1, 3)
		for _, a := range rng.Sample(s, allergenPool, n) {
			onset := s.TimeBetween(cfg.AsOf.AddDate(-10, 0, 0), cfg.AsOf.AddDate(-1, 0, 0))
			reported := s.TimeBetween(cfg.AsOf.AddDate(-1, 0, 0), cfg.AsOf)
			out = append(out, Allergy{
				AllergyID:            len(out) + 1,
				PatientID:            p.PatientID,
				Allergen:             a.Name,
				AllergyType:          a.Type,
				Reaction:             a.Reaction,
				Severity:             a.Severity,
				OnsetDate:            onset,
				ReportedDate:         reported,
				ReportedByProviderID: s.IntBetween(1, providerCount),
				IsActive:             true,
			})
		}
	}
	return out
}
