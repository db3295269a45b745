// Package encounter generates hospital encounters and their diagnoses. The
// encounter timeline is the scheduling core the clinical event generators
// hang off: every downstream event must land inside an encounter's window.
package encounter

import (
	"time"

	"github.com/clindata/clindata/internal/platform/bulk"
)

// Encounter types.
const (
	TypeInpatient   = "Inpatient"
	TypeEmergency   = "Emergency"
	TypeOutpatient  = "Outpatient"
	TypeObservation = "Observation"
)

// Encounter statuses.
const (
	StatusActive     = "Active"
	StatusDischarged = "Discharged"
	StatusCancelled  = "Cancelled"
)

// Encounter maps to the encounters table. DischargeDate and
// DischargeDisposition are nil while the encounter is Active.
type Encounter struct {
	EncounterID          int
	PatientID            int
	EncounterNumber      string
	EncounterType        string
	AdmitDate            time.Time
	DischargeDate        *time.Time
	AdmittingProviderID  int
	AttendingProviderID  int
	CurrentUnitID        int
	RoomNumber           string
	BedNumber            string
	ChiefComplaint       string
	AdmissionSource      string
	DischargeDisposition string
	EncounterStatus      string
	CreatedAt            time.Time
}

// Columns is the encounters bulk-load column order.
var Columns = []string{
	"encounter_id", "patient_id", "encounter_number", "encounter_type",
	"admit_date", "discharge_date", "admitting_provider_id",
	"attending_provider_id", "current_unit_id", "room_number", "bed_number",
	"chief_complaint", "admission_source", "discharge_disposition",
	"encounter_status", "created_at",
}

// Record renders the encounter in Columns order.
func (e Encounter) Record() []string {
	return []string{
		bulk.Int(e.EncounterID), bulk.Int(e.PatientID), e.EncounterNumber,
		e.EncounterType, bulk.Timestamp(e.AdmitDate),
		bulk.TimestampPtr(e.DischargeDate), bulk.Int(e.AdmittingProviderID),
		bulk.Int(e.AttendingProviderID), bulk.Int(e.CurrentUnitID),
		e.RoomNumber, e.BedNumber, e.ChiefComplaint, e.AdmissionSource,
		e.DischargeDisposition, e.EncounterStatus,
		bulk.Timestamp(e.CreatedAt),
	}
}

// Discharged reports whether the encounter has a discharge timestamp.
func (e Encounter) Discharged() bool {
	return e.EncounterStatus == StatusDischarged && e.DischargeDate != nil
}

// Window returns the interval clinical events may be placed in. The end is
// the discharge when present, otherwise the reference time; events never run
// past either. ok is false when the window has zero or negative length, in
// which case the caller skips event placement for this encounter.
func (e Encounter) Window(asOf time.Time) (start, end time.Time, ok bool) {
	start = e.AdmitDate
	end = asOf
	if e.DischargeDate != nil && e.DischargeDate.Before(end) {
		end = *e.DischargeDate
	}
	return start, end, end.After(start)
}

// Diagnosis maps to the diagnoses table. The first diagnosis recorded for an
// encounter is Primary, the rest Secondary.
type Diagnosis struct {
	DiagnosisID         int
	EncounterID         int
	ICD10Code           string
	Description         string
	DiagnosisType       string
	DiagnosedDate       time.Time
	DiagnosedByProvider int
	IsResolved          bool
	ResolvedDate        *time.Time
}

// DiagnosisColumns is the diagnoses bulk-load column order.
var DiagnosisColumns = []string{
	"diagnosis_id", "encounter_id", "icd10_code", "diagnosis_description",
	"diagnosis_type", "diagnosed_date", "diagnosed_by_provider_id",
	"is_resolved", "resolved_date",
}

// Record renders the diagnosis in DiagnosisColumns order.
func (d Diagnosis) Record() []string {
	return []string{
		bulk.Int(d.DiagnosisID), bulk.Int(d.EncounterID), d.ICD10Code,
		d.Description, d.DiagnosisType, bulk.Timestamp(d.DiagnosedDate),
		bulk.Int(d.DiagnosedByProvider), bulk.Bool(d.IsResolved),
		bulk.TimestampPtr(d.ResolvedDate),
	}
}
