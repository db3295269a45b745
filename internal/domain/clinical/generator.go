package clinical

import (
	"math"
	"time"

	"github.com/clindata/clindata/internal/domain/encounter"
	"github.com/clindata/clindata/internal/domain/reference"
	"github.com/clindata/clindata/internal/platform/rng"
)

// Config controls the clinical event generator.
type Config struct {
	// AbnormalFraction is the share of lab results drawn outside the
	// reference range and of vital sign observations pushed toward febrile
	// or tachycardic values.
	AbnormalFraction float64
	// MissedDoseRate is the share of medication doses recorded as Held,
	// Refused, or Not Given.
	MissedDoseRate float64
	AsOf           time.Time
}

// Skips counts events dropped because their encounter's window had zero or
// negative length. Skips are expected for cancelled encounters and are not
// errors.
type Skips struct {
	MedAdministrations int
	LabResults         int
	VitalSigns         int
	Assessments        int
}

// Total returns the sum of all skip counters.
func (s Skips) Total() int {
	return s.MedAdministrations + s.LabResults + s.VitalSigns + s.Assessments
}

// Output holds one generation pass. IDs are local to the pass, starting
// at 1.
type Output struct {
	MedAdministrations []MedAdministration
	LabResults         []LabResult
	VitalSigns         []VitalSigns
	Assessments        []NursingAssessment
	Skips              Skips
}

type labTest struct {
	LOINC    string
	Name     string
	Category string
	Unit     string
	Low      float64
	High     float64
}

// Morning chemistry panel, drawn daily for inpatient and emergency stays.
var chemistryPanel = []labTest{
	{"2160-0", "Creatinine", "Chemistry", "mg/dL", 0.6, 1.2},
	{"2823-3", "Potassium", "Chemistry", "mEq/L", 3.5, 5.0},
	{"2951-2", "Sodium", "Chemistry", "mEq/L", 136, 145},
	{"2028-9", "CO2", "Chemistry", "mEq/L", 22, 28},
	{"1742-6", "ALT", "Chemistry", "U/L", 10, 40},
	{"1920-8", "AST", "Chemistry", "U/L", 10, 34},
	{"1975-2", "Bilirubin Total", "Chemistry", "mg/dL", 0.3, 1.2},
	{"2345-7", "Glucose", "Chemistry", "mg/dL", 70, 110},
}

// Complete blood count, drawn every other day.
var cbcPanel = []labTest{
	{"789-8", "Erythrocytes", "Hematology", "x10^6/uL", 4.2, 5.4},
	{"6690-2", "WBC", "Hematology", "x10^3/uL", 4.5, 11.0},
	{"777-3", "Platelets", "Hematology", "x10^3/uL", 150, 400},
	{"718-7", "Hemoglobin", "Hematology", "g/dL", 12.0, 16.0},
	{"4544-3", "Hematocrit", "Hematology", "%", 36, 46},
}

var doses = []string{"325 mg", "500 mg", "1 g", "5 mg", "10 mg", "20 mg", "40 mg", "80 mg", "100 mg"}

var routes = []string{"PO", "IV", "IM", "SubQ", "Topical", "PR", "SL"}

// dosesPerDay maps an ordered frequency to administrations per day; PRN and
// STAT are absent and handled as 0-2 ad hoc doses.
var dosesPerDay = map[string]int{
	"Daily": 1, "BID": 2, "TID": 3, "QID": 4,
	"Q6H": 4, "Q8H": 3, "Q12H": 2,
}

var frequencies = []string{"Daily", "BID", "TID", "QID", "Q6H", "Q8H", "Q12H", "PRN", "STAT"}

var missedStatuses = []string{"Held", "Refused", "Not Given"}

var missedReasons = map[string]string{
	"Held":      "Patient NPO",
	"Refused":   "Patient refused",
	"Not Given": "Medication unavailable",
}

var consciousnessLevels = []string{"Alert", "Alert", "Alert", "Confused", "Lethargic"}

var orientations = []string{"Person, Place, Time", "Person, Place", "Person", "Confused"}

var activityLevels = []string{"Ambulatory", "Ambulatory with assistance", "Chair", "Bedrest"}

var positions = []string{"Sitting", "Supine", "Standing"}

var oxygenDevices = []string{"Nasal Cannula", "Face Mask"}

var oxygenFlows = []int{2, 4, 6}

var painPool = []int{0, 0, 0, 1, 2, 3, 4, 5, 6, 7, 8}

var skinStates = []string{"Intact", "Intact", "Intact", "Impaired"}

var assistiveDevices = []string{"", "", "Walker", "Cane"}

var shiftNotes = []string{"stable", "improving", "no acute distress"}

// Generator produces clinical events from a dedicated random stream.
type Generator struct {
	stream *rng.Stream
	ref    *reference.Set
}

func NewGenerator(stream *rng.Stream, ref *reference.Set) *Generator {
	return &Generator{stream: stream, ref: ref}
}

// Generate builds all clinical events for the given encounters.
func (g *Generator) Generate(cfg Config, encounters []encounter.Encounter) *Output {
	out := &Output{}
	for i := range encounters {
		e := &encounters[i]
		g.medications(cfg, e, out)
		g.labs(cfg, e, out)
		g.vitals(cfg, e, out)
		g.assessments(cfg, e, out)
	}
	return out
}

// ---- medication administrations ----

func (g *Generator) medications(cfg Config, e *encounter.Encounter, out *Output) {
	if !e.Discharged() {
		return
	}
	start, end, ok := e.Window(cfg.AsOf)
	if !ok {
		out.Skips.MedAdministrations++
		return
	}
	s := g.stream

	for _, med := range rng.Sample(s, g.ref.Medications, s.IntBetween(3, 10)) {
		frequency := rng.Pick(s, frequencies)
		perDay, scheduled := dosesPerDay[frequency]
		if !scheduled {
			perDay = s.IntBetween(0, 2)
		}
		if perDay == 0 {
			continue
		}
		orderedDose := rng.Pick(s, doses)
		orderedRoute := rng.Pick(s, routes)
		slot := 24 / perDay

		for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
			for i := 0; i < perDay; i++ {
				at := day.Add(time.Duration(i*slot) * time.Hour)
				if !at.Before(end) {
					break
				}
				m := MedAdministration{
					AdminID:                 len(out.MedAdministrations) + 1,
					EncounterID:             e.EncounterID,
					MedicationID:            med.MedicationID,
					OrderedDose:             orderedDose,
					OrderedUnit:             "mg",
					OrderedRoute:            orderedRoute,
					OrderedFrequency:        frequency,
					AdminDate:               at,
					AdminDose:               orderedDose,
					AdminUnit:               "mg",
					AdminRoute:              orderedRoute,
					OrderingProviderID:      e.AttendingProviderID,
					AdministeringProviderID: s.IntBetween(1, len(g.ref.Providers)),
					AdminStatus:             "Given",
					CreatedAt:               at,
				}
				if orderedRoute == "IM" || orderedRoute == "SubQ" {
					m.AdminSite = "Left arm"
				}
				if s.Chance(cfg.MissedDoseRate) {
					m.AdminStatus = rng.Pick(s, missedStatuses)
					m.HoldReason = missedReasons[m.AdminStatus]
				}
				out.MedAdministrations = append(out.MedAdministrations, m)
			}
		}
	}
}

// ---- lab results ----

func (g *Generator) labs(cfg Config, e *encounter.Encounter, out *Output) {
	if e.EncounterType != encounter.TypeInpatient && e.EncounterType != encounter.TypeEmergency {
		return
	}
	start, end, ok := e.Window(cfg.AsOf)
	if !ok {
		out.Skips.LabResults++
		return
	}
	s := g.stream

	// First draw is the 05:00 after admission.
	collect := time.Date(start.Year(), start.Month(), start.Day(), 5, 0, 0, 0, start.Location())
	if collect.Before(start) {
		collect = collect.AddDate(0, 0, 1)
	}

	for day := 0; collect.Before(end); day++ {
		for _, t := range chemistryPanel {
			var value float64
			if s.Chance(cfg.AbnormalFraction) {
				if s.Chance(0.5) {
					value = s.Float64Between(t.High, t.High*1.3)
				} else {
					value = s.Float64Between(t.Low*0.7, t.Low)
				}
			} else {
				value = s.Float64Between(t.Low, t.High)
			}
			out.LabResults = append(out.LabResults, g.labResult(e, t, value, collect, 2*time.Hour, len(out.LabResults)+1))
		}
		if day%2 == 0 {
			for _, t := range cbcPanel {
				value := s.Float64Between(t.Low*0.9, t.High*1.1)
				out.LabResults = append(out.LabResults, g.labResult(e, t, value, collect, time.Hour, len(out.LabResults)+1))
			}
		}
		collect = collect.AddDate(0, 0, 1)
	}
}

func (g *Generator) labResult(e *encounter.Encounter, t labTest, value float64, collect time.Time, turnaround time.Duration, id int) LabResult {
	value = math.Round(value*100) / 100
	return LabResult{
		LabID:              id,
		EncounterID:        e.EncounterID,
		LOINCCode:          t.LOINC,
		TestName:           t.Name,
		TestCategory:       t.Category,
		ResultValue:        value,
		ResultUnit:         t.Unit,
		ResultStatus:       "Final",
		AbnormalFlag:       AbnormalFlag(value, t.Low, t.High),
		ReferenceRangeLow:  t.Low,
		ReferenceRangeHigh: t.High,
		CollectedDate:      collect,
		ResultedDate:       collect.Add(turnaround),
		OrderingProviderID: e.AttendingProviderID,
		CreatedAt:          collect,
	}
}

// ---- vital signs ----

func (g *Generator) vitals(cfg Config, e *encounter.Encounter, out *Output) {
	start, end, ok := e.Window(cfg.AsOf)
	if !ok {
		out.Skips.VitalSigns++
		return
	}
	s := g.stream
	interval := g.vitalInterval(e)

	first := true
	for at := start; at.Before(end); at = at.Add(interval) {
		tempMean, hrMean, rrMean := 98.6, 75.0, 16.0
		if s.Chance(cfg.AbnormalFraction) {
			// Febrile and tachycardic, still inside the valid ranges.
			tempMean, hrMean, rrMean = 101.5, 115, 24
		}
		spo2 := int(s.Gauss(97, 2, 85, 100))
		v := VitalSigns{
			VitalID:                len(out.VitalSigns) + 1,
			EncounterID:            e.EncounterID,
			TemperatureF:           math.Round(s.Gauss(tempMean, 0.8, 90, 110)*10) / 10,
			HeartRate:              int(s.Gauss(hrMean, 15, 40, 180)),
			RespiratoryRate:        int(s.Gauss(rrMean, 3, 8, 40)),
			BloodPressureSystolic:  int(s.Gauss(120, 15, 70, 200)),
			BloodPressureDiastolic: int(s.Gauss(80, 10, 40, 120)),
			OxygenSaturation:       spo2,
			PainScale:              rng.Pick(s, painPool),
			Position:               rng.Pick(s, positions),
			RecordedDate:           at,
			RecordedByProviderID:   s.IntBetween(1, len(g.ref.Providers)),
		}
		if OnRoomAir(spo2) {
			v.OxygenDelivery = "Room Air"
		} else {
			v.OxygenDelivery = rng.Pick(s, oxygenDevices)
			flow := rng.Pick(s, oxygenFlows)
			v.OxygenFlowRate = &flow
		}
		if first {
			weight := math.Round(s.Gauss(75, 15, 40, 180)*10) / 10
			height := math.Round(s.Gauss(170, 10, 140, 210)*10) / 10
			bmi := BMI(weight, height)
			v.WeightKg = &weight
			v.HeightCm = &height
			v.BMI = &bmi
			first = false
		}
		out.VitalSigns = append(out.VitalSigns, v)
	}
}

func (g *Generator) vitalInterval(e *encounter.Encounter) time.Duration {
	if e.CurrentUnitID == g.ref.EmergencyUnitID() {
		return 2 * time.Hour
	}
	if u, ok := g.ref.UnitByID(e.CurrentUnitID); ok && u.IsCriticalCare() {
		return time.Hour
	}
	return 4 * time.Hour
}

// ---- nursing assessments ----

func (g *Generator) assessments(cfg Config, e *encounter.Encounter, out *Output) {
	_, end, ok := e.Window(cfg.AsOf)
	if !ok {
		out.Skips.Assessments++
		return
	}

	out.Assessments = append(out.Assessments,
		g.assessment(e, e.AdmitDate, "Admission", "Initial nursing assessment completed.", len(out.Assessments)+1))

	if !e.Discharged() {
		return
	}
	for at := e.AdmitDate.Add(12 * time.Hour); at.Before(end); at = at.Add(12 * time.Hour) {
		note := "Shift assessment - " + rng.Pick(g.stream, shiftNotes) + "."
		out.Assessments = append(out.Assessments,
			g.assessment(e, at, "Shift", note, len(out.Assessments)+1))
	}
}

func (g *Generator) assessment(e *encounter.Encounter, at time.Time, kind, notes string, id int) NursingAssessment {
	s := g.stream
	score := s.IntBetween(0, 10)
	return NursingAssessment{
		AssessmentID:         id,
		EncounterID:          e.EncounterID,
		AssessmentDate:       at,
		AssessmentType:       kind,
		LevelOfConsciousness: rng.Pick(s, consciousnessLevels),
		Orientation:          rng.Pick(s, orientations),
		FallRiskScore:        score,
		FallRiskLevel:        FallRiskLevel(score),
		BedAlarmOn:           s.Chance(0.5),
		SkinIntegrity:        rng.Pick(s, skinStates),
		PressureUlcerPresent: s.Chance(0.1),
		BradenScore:          s.IntBetween(15, 23),
		ActivityLevel:        rng.Pick(s, activityLevels),
		GaitSteady:           s.Chance(2.0 / 3.0),
		AssistiveDevice:      rng.Pick(s, assistiveDevices),
		AssessmentNotes:      notes,
		AssessingProviderID:  s.IntBetween(1, len(g.ref.Providers)),
		CreatedAt:            at,
	}
}
