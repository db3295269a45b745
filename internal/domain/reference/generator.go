package reference

import (
	"fmt"
	"time"

	"github.com/clindata/clindata/internal/platform/fake"
	"github.com/clindata/clindata/internal/platform/ident"
	"github.com/clindata/clindata/internal/platform/rng"
)

// Config sizes the reference data set.
type Config struct {
	Providers   int
	Medications int
	AsOf        time.Time
}

// Generator produces the reference Set from an explicit random stream.
type Generator struct {
	stream *rng.Stream
}

// NewGenerator returns a reference data generator.
func NewGenerator(stream *rng.Stream) *Generator {
	return &Generator{stream: stream}
}

// Generate builds units, providers, and medications. It fails fast if the
// requested provider count cannot be satisfied with unique NPIs.
func (g *Generator) Generate(cfg Config) (*Set, error) {
	set := &Set{Units: g.units()}

	providers, err := g.providers(cfg)
	if err != nil {
		return nil, err
	}
	set.Providers = providers

	meds, err := g.medications(cfg.Medications)
	if err != nil {
		return nil, err
	}
	set.Medications = meds

	return set, nil
}

func (g *Generator) units() []Unit {
	s := g.stream
	units := make([]Unit, len(unitCatalog))
	for i, c := range unitCatalog {
		units[i] = Unit{
			UnitID:    i + 1,
			UnitCode:  c.Code,
			UnitName:  c.Name,
			UnitType:  c.Code,
			Floor:     rng.Pick(s, floors),
			Building:  rng.Pick(s, buildings),
			Phone:     "555-" + s.Digits(4),
			TotalBeds: c.Beds,
			IsActive:  true,
		}
	}
	return units
}

func (g *Generator) providers(cfg Config) ([]Provider, error) {
	s := g.stream
	npis := ident.NewAllocator("provider NPI", 0)
	providers := make([]Provider, 0, cfg.Providers)

	for i := 0; i < cfg.Providers; i++ {
		npi, err := npis.Claim(func() string {
			// NPIs are 10 digits and never lead with zero.
			return fmt.Sprintf("%d%s", s.IntBetween(1, 9), s.Digits(9))
		})
		if err != nil {
			return nil, fmt.Errorf("generate providers: %w", err)
		}

		first := fake.AnyFirstName(s)
		last := fake.LastName(s)
		middle := ""
		if s.Chance(0.5) {
			middle = fake.AnyFirstName(s)
		}

		// Hired between ten years and six months before the reference time.
		hired := s.TimeBetween(cfg.AsOf.AddDate(-10, 0, 0), cfg.AsOf.AddDate(0, -6, 0))

		providers = append(providers, Provider{
			ProviderID: i + 1,
			NPI:        npi,
			FirstName:  first,
			LastName:   last,
			MiddleName: middle,
			Title:      rng.Pick(s, providerTitles),
			Specialty:  rng.Pick(s, specialties),
			Department: rng.Pick(s, departments),
			Phone:      fake.Phone(s),
			Email:      fake.Email(s, first, last),
			Pager:      s.Digits(4),
			HireDate:   hired,
			IsActive:   true,
		})
	}
	return providers, nil
}

func (g *Generator) medications(count int) ([]Medication, error) {
	s := g.stream
	namePairs := ident.NewAllocator("medication name pair", 0)
	meds := make([]Medication, 0, count)

	for i, f := range formulary {
		if len(meds) >= count {
			break
		}
		namePairs.Add(f.Name + "|" + f.Generic)
		meds = append(meds, Medication{
			MedicationID:                i + 1,
			MedicationName:              f.Name,
			GenericName:                 f.Generic,
			BrandName:                   f.Brand,
			MedicationClass:             f.Class,
			ControlledSubstanceSchedule: f.Schedule,
			DefaultRoute:                f.Route,
			DefaultForm:                 f.Form,
			IsHighAlert:                 highAlert[f.Name],
			IsActive:                    true,
		})
	}

	for i := len(meds); i < count; i++ {
		var name string
		_, err := namePairs.Claim(func() string {
			name = rng.Pick(s, fillerStems) + rng.Pick(s, fillerSuffixes) + rng.Pick(s, fillerModifiers)
			return name + "|" + name
		})
		if err != nil {
			return nil, fmt.Errorf("generate medications: %w", err)
		}
		meds = append(meds, Medication{
			MedicationID:    i + 1,
			MedicationName:  name,
			GenericName:     name,
			BrandName:       rng.Pick(s, fillerBrands),
			MedicationClass: rng.Pick(s, fillerClasses),
			DefaultRoute:    rng.Pick(s, fillerRoutes),
			DefaultForm:     rng.Pick(s, fillerForms),
			IsActive:        true,
		})
	}
	return meds, nil
}
