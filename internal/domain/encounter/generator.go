package encounter

import (
	"fmt"
	"time"

	"github.com/clindata/clindata/internal/domain/reference"
	"github.com/clindata/clindata/internal/platform/ident"
	"github.com/clindata/clindata/internal/platform/rng"
)

// Weights sets the relative frequency of each encounter type.
type Weights struct {
	Inpatient   int
	Emergency   int
	Outpatient  int
	Observation int
}

// DefaultWeights matches the observed case mix of a mid-size acute hospital.
var DefaultWeights = Weights{Inpatient: 40, Emergency: 30, Outpatient: 20, Observation: 10}

// Config controls the encounter generator.
type Config struct {
	MaxPerPatient int
	Weights       Weights
	// CancelledRate is the fraction of encounters cancelled at admit.
	CancelledRate float64
	AsOf          time.Time
}

// Output is the result of one generation pass. IDs are local to the pass,
// starting at 1; the orchestrator offsets them when merging partitions.
// Numbers holds the encounter numbers claimed during the pass so the
// orchestrator can detect cross-partition collisions.
type Output struct {
	Encounters []Encounter
	Diagnoses  []Diagnosis
	Numbers    *ident.Allocator
}

type icd10 struct {
	Code        string
	Description string
}

var icd10Pool = []icd10{
	{"I10", "Essential (primary) hypertension"},
	{"E11.9", "Type 2 diabetes mellitus without complications"},
	{"J44.1", "Chronic obstructive pulmonary disease with acute exacerbation"},
	{"N18.3", "Chronic kidney disease, stage 3"},
	{"I50.9", "Heart failure, unspecified"},
	{"J18.9", "Pneumonia, unspecified organism"},
	{"A41.9", "Sepsis, unspecified organism"},
	{"N39.0", "Urinary tract infection, site not specified"},
	{"K92.2", "Gastrointestinal hemorrhage, unspecified"},
	{"I21.9", "Acute myocardial infarction, unspecified"},
	{"I63.9", "Cerebral infarction, unspecified"},
	{"E87.6", "Hypokalemia"},
	{"D64.9", "Anemia, unspecified"},
	{"F32.9", "Major depressive disorder, single episode"},
	{"M79.3", "Myalgia"},
	{"R50.9", "Fever, unspecified"},
	{"R06.02", "Shortness of breath"},
	{"R07.9", "Chest pain, unspecified"},
	{"R42", "Dizziness and giddiness"},
	{"G93.1", "Anoxic brain damage, not elsewhere classified"},
}

var chiefComplaints = []string{
	"Chest pain", "Shortness of breath", "Abdominal pain", "Fever",
	"Headache", "Back pain", "Dizziness", "Nausea and vomiting",
	"Weakness", "Cough", "Altered mental status", "Fall",
	"Syncope", "Palpitations", "Leg swelling", "Difficulty urinating",
}

var admissionSources = []string{
	"Emergency Department", "Direct Admission", "Transfer from Hospital",
	"Physician Referral", "Walk-in", "Transfer from SNF",
}

var dischargeDispositions = []string{
	"Home", "Home with Home Health", "Skilled Nursing Facility",
	"Rehabilitation Facility", "Transferred to Hospital",
	"Left Against Medical Advice", "Expired", "Hospice",
}

var bedNumbers = []string{"A", "B", "1", "2"}

// Generator produces encounter timelines from a dedicated random stream.
type Generator struct {
	stream *rng.Stream
	ref    *reference.Set
}

func NewGenerator(stream *rng.Stream, ref *reference.Set) *Generator {
	return &Generator{stream: stream, ref: ref}
}

// Generate builds encounters and diagnoses for patients firstPatient through
// lastPatient inclusive. Each patient's encounters are sequential in time:
// the next admit falls at least 7 and at most 180 days after the previous
// discharge. Encounters discharged within the trailing 7 days of the
// reference time stay Active with no discharge. Generation fails only when
// the encounter number namespace exhausts its retry budget.
func (g *Generator) Generate(cfg Config, firstPatient, lastPatient int) (*Output, error) {
	s := g.stream
	weights := []int{cfg.Weights.Inpatient, cfg.Weights.Emergency, cfg.Weights.Outpatient, cfg.Weights.Observation}
	types := []string{TypeInpatient, TypeEmergency, TypeOutpatient, TypeObservation}
	activeCutoff := cfg.AsOf.AddDate(0, 0, -7)
	wards := g.ref.WardUnitIDs()

	out := &Output{Numbers: ident.NewAllocator("encounter number", 0)}
	for pid := firstPatient; pid <= lastPatient; pid++ {
		n := s.IntBetween(1, cfg.MaxPerPatient)
		cursor := cfg.AsOf.AddDate(0, 0, -730)

		for i := 0; i < n; i++ {
			if !cursor.Before(cfg.AsOf) {
				break
			}
			number, err := out.Numbers.Claim(func() string {
				return "ENC" + s.Digits(8)
			})
			if err != nil {
				return nil, fmt.Errorf("patient %d: %w", pid, err)
			}

			encType := types[s.WeightedIndex(weights)]
			admit := s.TimeBetween(cursor, cfg.AsOf)
			discharge := admit.Add(g.lengthOfStay(encType))

			e := Encounter{
				EncounterID:         len(out.Encounters) + 1,
				PatientID:           pid,
				EncounterNumber:     number,
				EncounterType:       encType,
				AdmitDate:           admit,
				AdmittingProviderID: s.IntBetween(1, len(g.ref.Providers)),
				AttendingProviderID: s.IntBetween(1, len(g.ref.Providers)),
				CurrentUnitID:       g.unitFor(encType, wards),
				RoomNumber:          s.Digits(3),
				BedNumber:           rng.Pick(s, bedNumbers),
				ChiefComplaint:      rng.Pick(s, chiefComplaints),
				AdmissionSource:     rng.Pick(s, admissionSources),
				CreatedAt:           admit,
			}

			switch {
			case s.Chance(cfg.CancelledRate):
				// Cancelled at the door: the window collapses to zero
				// length and downstream events skip this encounter.
				e.EncounterStatus = StatusCancelled
				e.DischargeDate = &admit
				cursor = admit.AddDate(0, 0, s.IntBetween(7, 180))
			case discharge.After(activeCutoff):
				e.EncounterStatus = StatusActive
			default:
				e.EncounterStatus = StatusDischarged
				e.DischargeDate = &discharge
				e.DischargeDisposition = rng.Pick(s, dischargeDispositions)
				cursor = discharge.AddDate(0, 0, s.IntBetween(7, 180))
			}
			out.Encounters = append(out.Encounters, e)
			g.diagnose(cfg, &e, out)

			// One current encounter per patient: an Active encounter ends
			// the patient's timeline.
			if e.EncounterStatus == StatusActive {
				break
			}
		}
	}
	return out, nil
}

func (g *Generator) lengthOfStay(encType string) time.Duration {
	s := g.stream
	switch encType {
	case TypeInpatient:
		return time.Duration(s.IntBetween(2, 14)) * 24 * time.Hour
	case TypeEmergency:
		return time.Duration(s.Float64Between(3, 24) * float64(time.Hour))
	case TypeObservation:
		return time.Duration(s.Float64Between(12, 48) * float64(time.Hour))
	default:
		return time.Duration(s.Float64Between(1, 6) * float64(time.Hour))
	}
}

func (g *Generator) unitFor(encType string, wards []int) int {
	switch encType {
	case TypeEmergency:
		return g.ref.EmergencyUnitID()
	case TypeObservation:
		return g.ref.TelemetryUnitID()
	default:
		return rng.Pick(g.stream, wards)
	}
}

func (g *Generator) diagnose(cfg Config, e *Encounter, out *Output) {
	s := g.stream
	_, end, _ := e.Window(cfg.AsOf)
	for i, dx := range rng.Sample(s, icd10Pool, s.IntBetween(1, 5)) {
		dxType := "Secondary"
		if i == 0 {
			dxType = "Primary"
		}
		d := Diagnosis{
			DiagnosisID:         len(out.Diagnoses) + 1,
			EncounterID:         e.EncounterID,
			ICD10Code:           dx.Code,
			Description:         dx.Description,
			DiagnosisType:       dxType,
			DiagnosedDate:       s.TimeBetween(e.AdmitDate, end),
			DiagnosedByProvider: s.IntBetween(1, len(g.ref.Providers)),
		}
		if e.Discharged() && s.Chance(0.7) {
			d.IsResolved = true
			d.ResolvedDate = e.DischargeDate
		}
		out.Diagnoses = append(out.Diagnoses, d)
	}
}
