package clinical

import (
	"testing"
	"time"

	"github.com/clindata/clindata/internal/domain/encounter"
	"github.com/clindata/clindata/internal/domain/reference"
	"github.com/clindata/clindata/internal/platform/rng"
)

var testAsOf = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testRefSet(t *testing.T) *reference.Set {
	t.Helper()
	set, err := reference.NewGenerator(rng.New(1)).Generate(reference.Config{
		Providers: 50, Medications: 100, AsOf: testAsOf,
	})
	if err != nil {
		t.Fatalf("reference set: %v", err)
	}
	return set
}

func testEncounters(t *testing.T, ref *reference.Set, patients int) []encounter.Encounter {
	t.Helper()
	out, err := encounter.NewGenerator(rng.New(17), ref).Generate(encounter.Config{
		MaxPerPatient: 3,
		Weights:       encounter.DefaultWeights,
		CancelledRate: 0.05,
		AsOf:          testAsOf,
	}, 1, patients)
	if err != nil {
		t.Fatalf("encounters: %v", err)
	}
	return out.Encounters
}

func testConfig() Config {
	return Config{AbnormalFraction: 0.2, MissedDoseRate: 0.05, AsOf: testAsOf}
}

func indexEncounters(encs []encounter.Encounter) map[int]encounter.Encounter {
	m := make(map[int]encounter.Encounter, len(encs))
	for _, e := range encs {
		m[e.EncounterID] = e
	}
	return m
}

func TestEventsInsideWindows(t *testing.T) {
	ref := testRefSet(t)
	encs := testEncounters(t, ref, 100)
	out := NewGenerator(rng.New(42), ref).Generate(testConfig(), encs)
	byID := indexEncounters(encs)

	check := func(kind string, encID int, at time.Time) {
		t.Helper()
		e := byID[encID]
		start, end, ok := e.Window(testAsOf)
		if !ok {
			t.Fatalf("%s placed on encounter %d with unusable window", kind, encID)
		}
		if at.Before(start) || !at.Before(end) {
			t.Fatalf("%s on encounter %d at %v outside [%v, %v)", kind, encID, at, start, end)
		}
	}
	for _, m := range out.MedAdministrations {
		check("medication administration", m.EncounterID, m.AdminDate)
	}
	for _, l := range out.LabResults {
		check("lab result", l.EncounterID, l.CollectedDate)
	}
	for _, v := range out.VitalSigns {
		check("vital signs", v.EncounterID, v.RecordedDate)
	}
	for _, a := range out.Assessments {
		e := byID[a.EncounterID]
		start, end, ok := e.Window(testAsOf)
		if !ok {
			t.Fatalf("assessment placed on encounter %d with unusable window", a.EncounterID)
		}
		// The admission assessment lands exactly at admit.
		if a.AssessmentDate.Before(start) || a.AssessmentDate.After(end) {
			t.Fatalf("assessment on encounter %d at %v outside [%v, %v]", a.EncounterID, a.AssessmentDate, start, end)
		}
	}
}

func TestMedicationsOnlyForDischarged(t *testing.T) {
	ref := testRefSet(t)
	encs := testEncounters(t, ref, 100)
	out := NewGenerator(rng.New(7), ref).Generate(testConfig(), encs)
	byID := indexEncounters(encs)

	for _, m := range out.MedAdministrations {
		e := byID[m.EncounterID]
		if !e.Discharged() {
			t.Fatalf("administration %d on %s encounter %d", m.AdminID, e.EncounterStatus, e.EncounterID)
		}
		if m.AdminStatus == "Given" {
			if m.HoldReason != "" {
				t.Fatalf("administration %d given but carries hold reason %q", m.AdminID, m.HoldReason)
			}
			continue
		}
		if m.HoldReason == "" {
			t.Fatalf("administration %d status %q without a reason", m.AdminID, m.AdminStatus)
		}
	}
}

func TestLabFlagsAgreeWithValues(t *testing.T) {
	ref := testRefSet(t)
	encs := testEncounters(t, ref, 100)
	out := NewGenerator(rng.New(11), ref).Generate(testConfig(), encs)
	byID := indexEncounters(encs)

	abnormal := 0
	for _, l := range out.LabResults {
		e := byID[l.EncounterID]
		if e.EncounterType != encounter.TypeInpatient && e.EncounterType != encounter.TypeEmergency {
			t.Fatalf("lab %d on %s encounter %d", l.LabID, e.EncounterType, e.EncounterID)
		}
		if want := AbnormalFlag(l.ResultValue, l.ReferenceRangeLow, l.ReferenceRangeHigh); l.AbnormalFlag != want {
			t.Fatalf("lab %d value %.2f range [%.2f, %.2f]: flag %q, want %q",
				l.LabID, l.ResultValue, l.ReferenceRangeLow, l.ReferenceRangeHigh, l.AbnormalFlag, want)
		}
		if l.ResultedDate.Before(l.CollectedDate) {
			t.Fatalf("lab %d resulted before collection", l.LabID)
		}
		if l.AbnormalFlag != FlagNormal {
			abnormal++
		}
	}
	if len(out.LabResults) == 0 {
		t.Fatal("no lab results generated")
	}
	if abnormal == 0 {
		t.Fatal("abnormal fraction 0.2 produced no abnormal labs")
	}
}

func TestLabsNoneWhenAbnormalFractionZero(t *testing.T) {
	ref := testRefSet(t)
	encs := testEncounters(t, ref, 100)
	cfg := testConfig()
	cfg.AbnormalFraction = 0
	out := NewGenerator(rng.New(11), ref).Generate(cfg, encs)

	for _, l := range out.LabResults {
		if l.TestCategory != "Chemistry" {
			continue
		}
		if l.AbnormalFlag != FlagNormal {
			t.Fatalf("lab %d abnormal (%q) with abnormal fraction 0", l.LabID, l.AbnormalFlag)
		}
	}
}

func TestVitalsRangesAndDerivedFields(t *testing.T) {
	ref := testRefSet(t)
	encs := testEncounters(t, ref, 100)
	out := NewGenerator(rng.New(5), ref).Generate(testConfig(), encs)

	firstSeen := map[int]bool{}
	for _, v := range out.VitalSigns {
		if v.TemperatureF < 90 || v.TemperatureF > 110 {
			t.Fatalf("vital %d temperature %.1f out of range", v.VitalID, v.TemperatureF)
		}
		if v.HeartRate < 40 || v.HeartRate > 180 {
			t.Fatalf("vital %d heart rate %d out of range", v.VitalID, v.HeartRate)
		}
		if v.RespiratoryRate < 8 || v.RespiratoryRate > 40 {
			t.Fatalf("vital %d respiratory rate %d out of range", v.VitalID, v.RespiratoryRate)
		}
		if v.OxygenSaturation < 85 || v.OxygenSaturation > 100 {
			t.Fatalf("vital %d SpO2 %d out of range", v.VitalID, v.OxygenSaturation)
		}
		if OnRoomAir(v.OxygenSaturation) {
			if v.OxygenDelivery != "Room Air" || v.OxygenFlowRate != nil {
				t.Fatalf("vital %d SpO2 %d should be on room air", v.VitalID, v.OxygenSaturation)
			}
		} else if v.OxygenDelivery == "Room Air" || v.OxygenFlowRate == nil {
			t.Fatalf("vital %d SpO2 %d should be on supplemental oxygen", v.VitalID, v.OxygenSaturation)
		}
		if !firstSeen[v.EncounterID] {
			firstSeen[v.EncounterID] = true
			if v.WeightKg == nil || v.HeightCm == nil || v.BMI == nil {
				t.Fatalf("vital %d first observation missing weight/height/BMI", v.VitalID)
			}
			if want := BMI(*v.WeightKg, *v.HeightCm); *v.BMI != want {
				t.Fatalf("vital %d BMI %.1f, want %.1f from %.1fkg %.1fcm", v.VitalID, *v.BMI, want, *v.WeightKg, *v.HeightCm)
			}
		} else if v.WeightKg != nil || v.HeightCm != nil || v.BMI != nil {
			t.Fatalf("vital %d repeats weight/height/BMI", v.VitalID)
		}
	}
}

func TestVitalIntervalByAcuity(t *testing.T) {
	ref := testRefSet(t)
	icuID := 0
	for _, u := range ref.Units {
		if u.UnitCode == "ICU" {
			icuID = u.UnitID
		}
	}
	if icuID == 0 {
		t.Fatal("no ICU in reference set")
	}
	admit := testAsOf.AddDate(0, 0, -30)
	discharge := admit.Add(24 * time.Hour)
	mk := func(id, unitID int) encounter.Encounter {
		return encounter.Encounter{
			EncounterID: id, PatientID: 1, EncounterType: encounter.TypeInpatient,
			AdmitDate: admit, DischargeDate: &discharge,
			AttendingProviderID: 1, CurrentUnitID: unitID,
			EncounterStatus: encounter.StatusDischarged,
		}
	}
	encs := []encounter.Encounter{mk(1, icuID), mk(2, ref.EmergencyUnitID()), mk(3, ref.WardUnitIDs()[0])}
	out := NewGenerator(rng.New(9), ref).Generate(testConfig(), encs)

	counts := map[int]int{}
	for _, v := range out.VitalSigns {
		counts[v.EncounterID]++
	}
	if counts[1] != 24 {
		t.Fatalf("ICU encounter got %d observations over 24h, want 24", counts[1])
	}
	if counts[2] != 12 {
		t.Fatalf("ED encounter got %d observations over 24h, want 12", counts[2])
	}
	if counts[3] != 6 {
		t.Fatalf("ward encounter got %d observations over 24h, want 6", counts[3])
	}
}

func TestAssessmentsScheduleAndDerivedLevel(t *testing.T) {
	ref := testRefSet(t)
	encs := testEncounters(t, ref, 100)
	out := NewGenerator(rng.New(3), ref).Generate(testConfig(), encs)
	byID := indexEncounters(encs)

	admissions := map[int]int{}
	for _, a := range out.Assessments {
		if want := FallRiskLevel(a.FallRiskScore); a.FallRiskLevel != want {
			t.Fatalf("assessment %d score %d level %q, want %q", a.AssessmentID, a.FallRiskScore, a.FallRiskLevel, want)
		}
		if a.BradenScore < 15 || a.BradenScore > 23 {
			t.Fatalf("assessment %d Braden score %d out of range", a.AssessmentID, a.BradenScore)
		}
		switch a.AssessmentType {
		case "Admission":
			admissions[a.EncounterID]++
			if !a.AssessmentDate.Equal(byID[a.EncounterID].AdmitDate) {
				t.Fatalf("admission assessment %d not at admit", a.AssessmentID)
			}
		case "Shift":
			if !byID[a.EncounterID].Discharged() {
				t.Fatalf("shift assessment %d on non-discharged encounter %d", a.AssessmentID, a.EncounterID)
			}
		default:
			t.Fatalf("assessment %d has unexpected type %q", a.AssessmentID, a.AssessmentType)
		}
	}
	for _, e := range encs {
		if _, _, ok := e.Window(testAsOf); !ok {
			continue
		}
		if admissions[e.EncounterID] != 1 {
			t.Fatalf("encounter %d has %d admission assessments", e.EncounterID, admissions[e.EncounterID])
		}
	}
}

func TestCancelledEncountersSkipNotFail(t *testing.T) {
	ref := testRefSet(t)
	admit := testAsOf.AddDate(0, 0, -30)
	cancelled := encounter.Encounter{
		EncounterID: 1, PatientID: 1, EncounterType: encounter.TypeInpatient,
		AdmitDate: admit, DischargeDate: &admit,
		AttendingProviderID: 1, CurrentUnitID: ref.WardUnitIDs()[0],
		EncounterStatus: encounter.StatusCancelled,
	}
	out := NewGenerator(rng.New(13), ref).Generate(testConfig(), []encounter.Encounter{cancelled})

	if len(out.LabResults)+len(out.VitalSigns)+len(out.Assessments)+len(out.MedAdministrations) != 0 {
		t.Fatal("cancelled encounter produced events")
	}
	if out.Skips.LabResults != 1 || out.Skips.VitalSigns != 1 || out.Skips.Assessments != 1 {
		t.Fatalf("unexpected skip counts: %+v", out.Skips)
	}
	if out.Skips.Total() != out.Skips.LabResults+out.Skips.VitalSigns+out.Skips.Assessments+out.Skips.MedAdministrations {
		t.Fatal("skip total does not add up")
	}
}

func TestGenerateReproducible(t *testing.T) {
	ref := testRefSet(t)
	encs := testEncounters(t, ref, 50)
	a := NewGenerator(rng.New(42), ref).Generate(testConfig(), encs)
	b := NewGenerator(rng.New(42), ref).Generate(testConfig(), encs)

	if len(a.LabResults) != len(b.LabResults) || len(a.VitalSigns) != len(b.VitalSigns) {
		t.Fatal("same-seed runs produced different event counts")
	}
	for i := range a.LabResults {
		if a.LabResults[i] != b.LabResults[i] {
			t.Fatalf("lab %d differs between same-seed runs", i+1)
		}
	}
	for i := range a.MedAdministrations {
		if a.MedAdministrations[i] != b.MedAdministrations[i] {
			t.Fatalf("administration %d differs between same-seed runs", i+1)
		}
	}
}

func TestDerivedHelpers(t *testing.T) {
	cases := []struct {
		value, low, high float64
		want             string
	}{
		{5.0, 3.5, 5.0, FlagNormal},
		{5.5, 3.5, 5.0, FlagHigh},
		{6.1, 3.5, 5.0, FlagCriticalHigh},
		{3.0, 3.5, 5.0, FlagLow},
		{2.7, 3.5, 5.0, FlagCriticalLow},
		{2.0, 0, 3.0, FlagNormal},
	}
	for _, c := range cases {
		if got := AbnormalFlag(c.value, c.low, c.high); got != c.want {
			t.Fatalf("AbnormalFlag(%.1f, %.1f, %.1f) = %q, want %q", c.value, c.low, c.high, got, c.want)
		}
	}

	levels := map[int]string{0: "Low", 3: "Low", 4: "Moderate", 6: "Moderate", 7: "High", 10: "High"}
	for score, want := range levels {
		if got := FallRiskLevel(score); got != want {
			t.Fatalf("FallRiskLevel(%d) = %q, want %q", score, got, want)
		}
	}

	if got := BMI(75, 170); got != 26.0 {
		t.Fatalf("BMI(75, 170) = %.1f, want 26.0", got)
	}
}
