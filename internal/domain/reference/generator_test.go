package reference

import (
	"testing"
	"time"

	"github.com/clindata/clindata/internal/platform/rng"
)

var testAsOf = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testConfig() Config {
	return Config{Providers: 50, Medications: 200, AsOf: testAsOf}
}

func TestGenerate_UnitCatalog(t *testing.T) {
	set, err := NewGenerator(rng.New(42)).Generate(testConfig())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(set.Units) != 15 {
		t.Fatalf("expected 15 units, got %d", len(set.Units))
	}
	codes := map[string]bool{}
	for _, u := range set.Units {
		if u.UnitID <= 0 || u.TotalBeds <= 0 {
			t.Fatalf("bad unit %+v", u)
		}
		codes[u.UnitCode] = true
	}
	for _, want := range []string{"ICU", "ED", "TELE", "MS1"} {
		if !codes[want] {
			t.Fatalf("missing unit code %s", want)
		}
	}
	if id := set.EmergencyUnitID(); id == 0 {
		t.Fatal("no emergency unit id")
	}
}

func TestGenerate_ProviderNPIsUnique(t *testing.T) {
	set, err := NewGenerator(rng.New(42)).Generate(testConfig())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(set.Providers) != 50 {
		t.Fatalf("expected 50 providers, got %d", len(set.Providers))
	}
	seen := map[string]bool{}
	for _, p := range set.Providers {
		if len(p.NPI) != 10 {
			t.Fatalf("NPI %q is not 10 digits", p.NPI)
		}
		if seen[p.NPI] {
			t.Fatalf("duplicate NPI %q", p.NPI)
		}
		seen[p.NPI] = true
		if p.HireDate.After(testAsOf) {
			t.Fatalf("provider hired in the future: %v", p.HireDate)
		}
	}
}

func TestGenerate_MedicationNamePairsUnique(t *testing.T) {
	set, err := NewGenerator(rng.New(42)).Generate(testConfig())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(set.Medications) != 200 {
		t.Fatalf("expected 200 medications, got %d", len(set.Medications))
	}
	seen := map[string]bool{}
	highAlertCount := 0
	for _, m := range set.Medications {
		key := m.MedicationName + "|" + m.GenericName
		if seen[key] {
			t.Fatalf("duplicate medication pair %q", key)
		}
		seen[key] = true
		if m.IsHighAlert {
			highAlertCount++
		}
	}
	if highAlertCount != 5 {
		t.Fatalf("expected 5 high-alert formulary meds, got %d", highAlertCount)
	}
}

func TestGenerate_Reproducible(t *testing.T) {
	a, err := NewGenerator(rng.New(7)).Generate(testConfig())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := NewGenerator(rng.New(7)).Generate(testConfig())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for i := range a.Providers {
		if a.Providers[i] != b.Providers[i] {
			t.Fatalf("providers diverged at %d: %+v vs %+v", i, a.Providers[i], b.Providers[i])
		}
	}
	for i := range a.Medications {
		if a.Medications[i] != b.Medications[i] {
			t.Fatalf("medications diverged at %d", i)
		}
	}
}

func TestUnit_IsCriticalCare(t *testing.T) {
	cases := map[string]bool{
		"ICU": true, "MICU": true, "SICU": true, "CCU": true,
		"ED": false, "MS1": false, "TELE": false,
	}
	for code, want := range cases {
		if got := (Unit{UnitCode: code}).IsCriticalCare(); got != want {
			t.Fatalf("IsCriticalCare(%s) = %v, want %v", code, got, want)
		}
	}
}

func TestRecord_Widths(t *testing.T) {
	set, err := NewGenerator(rng.New(1)).Generate(Config{Providers: 3, Medications: 25, AsOf: testAsOf})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got := len(set.Providers[0].Record()); got != len(ProviderColumns) {
		t.Fatalf("provider record width %d != %d columns", got, len(ProviderColumns))
	}
	if got := len(set.Units[0].Record()); got != len(UnitColumns) {
		t.Fatalf("unit record width %d != %d columns", got, len(UnitColumns))
	}
	if got := len(set.Medications[0].Record()); got != len(MedicationColumns) {
		t.Fatalf("medication record width %d != %d columns", got, len(MedicationColumns))
	}
}
