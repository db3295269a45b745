package patient

import (
	"strings"
	"testing"
	"time"

	"github.com/clindata/clindata/internal/platform/rng"
)

var testAsOf = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testConfig(count int) Config {
	return Config{Count: count, AllergyRate: 0.3, AsOf: testAsOf}
}

func TestGenerateUniqueMRNs(t *testing.T) {
	g := NewGenerator(rng.New(7))
	patients, err := g.Generate(testConfig(500))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(patients) != 500 {
		t.Fatalf("got %d patients, want 500", len(patients))
	}
	seen := map[string]bool{}
	for _, p := range patients {
		if len(p.MRN) != 9 || !strings.HasPrefix(p.MRN, "MRN") {
			t.Fatalf("malformed MRN %q", p.MRN)
		}
		if seen[p.MRN] {
			t.Fatalf("duplicate MRN %q", p.MRN)
		}
		seen[p.MRN] = true
	}
}

func TestGenerateAdultAges(t *testing.T) {
	g := NewGenerator(rng.New(11))
	patients, err := g.Generate(testConfig(200))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, p := range patients {
		age := testAsOf.Sub(p.DateOfBirth)
		years := age.Hours() / 24 / 365
		if years < 17.9 || years > 95.1 {
			t.Fatalf("patient %d age %.1f out of adult range", p.PatientID, years)
		}
	}
}

func TestGenerateReproducible(t *testing.T) {
	a, err := NewGenerator(rng.New(42)).Generate(testConfig(50))
	if err != nil {
		t.Fatalf("generate a: %v", err)
	}
	b, err := NewGenerator(rng.New(42)).Generate(testConfig(50))
	if err != nil {
		t.Fatalf("generate b: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("patient %d differs between same-seed runs", i+1)
		}
	}
}

func TestAllergiesDistinctPerPatient(t *testing.T) {
	cfg := testConfig(50)
	cfg.AllergyRate = 1.0
	g := NewGenerator(rng.New(3))
	patients, err := g.Generate(cfg)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	allergies := g.Allergies(cfg, patients, 50)
	if len(allergies) == 0 {
		t.Fatal("rate 1.0 produced no allergies")
	}
	perPatient := map[int]map[string]bool{}
	for _, a := range allergies {
		set := perPatient[a.PatientID]
		if set == nil {
			set = map[string]bool{}
			perPatient[a.PatientID] = set
		}
		if set[a.Allergen] {
			t.Fatalf("patient %d has duplicate allergen %q", a.PatientID, a.Allergen)
		}
		set[a.Allergen] = true
		if a.OnsetDate.After(a.ReportedDate) {
			t.Fatalf("allergy %d onset after reported date", a.AllergyID)
		}
	}
	if len(perPatient) != 50 {
		t.Fatalf("rate 1.0 covered %d of 50 patients", len(perPatient))
	}
}

func TestAllergiesRateZero(t *testing.T) {
	cfg := testConfig(100)
	cfg.AllergyRate = 0
	g := NewGenerator(rng.New(5))
	patients, err := g.Generate(cfg)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got := g.Allergies(cfg, patients, 50); len(got) != 0 {
		t.Fatalf("rate 0 produced %d allergies", len(got))
	}
}

func TestRecordWidths(t *testing.T) {
	g := NewGenerator(rng.New(9))
	cfg := testConfig(5)
	cfg.AllergyRate = 1.0
	patients, err := g.Generate(cfg)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, p := range patients {
		if got := len(p.Record()); got != len(Columns) {
			t.Fatalf("patient record width %d, columns %d", got, len(Columns))
		}
	}
	for _, a := range g.Allergies(cfg, patients, 10) {
		if got := len(a.Record()); got != len(AllergyColumns) {
			t.Fatalf("allergy record width %d, columns %d", got, len(AllergyColumns))
		}
	}
}
