// Package clinical generates the event records that hang off encounters:
// medication administrations, lab results, vital signs, and nursing
// assessments. Every event timestamp lands inside its encounter's window;
// encounters with degenerate windows are skipped and counted.
package clinical

import (
	"time"

	"github.com/clindata/clindata/internal/platform/bulk"
)

// MedAdministration maps to the medication_administrations table.
type MedAdministration struct {
	AdminID                 int
	EncounterID             int
	MedicationID            int
	OrderedDose             string
	OrderedUnit             string
	OrderedRoute            string
	OrderedFrequency        string
	AdminDate               time.Time
	AdminDose               string
	AdminUnit               string
	AdminRoute              string
	AdminSite               string
	OrderingProviderID      int
	AdministeringProviderID int
	AdminStatus             string
	HoldReason              string
	CreatedAt               time.Time
}

// MedAdministrationColumns is the medication_administrations bulk-load
// column order.
var MedAdministrationColumns = []string{
	"admin_id", "encounter_id", "medication_id", "ordered_dose",
	"ordered_unit", "ordered_route", "ordered_frequency", "admin_date",
	"admin_dose", "admin_unit", "admin_route", "admin_site",
	"ordering_provider_id", "administering_provider_id", "admin_status",
	"hold_reason", "created_at",
}

func (m MedAdministration) Record() []string {
	return []string{
		bulk.Int(m.AdminID), bulk.Int(m.EncounterID), bulk.Int(m.MedicationID),
		m.OrderedDose, m.OrderedUnit, m.OrderedRoute, m.OrderedFrequency,
		bulk.Timestamp(m.AdminDate), m.AdminDose, m.AdminUnit, m.AdminRoute,
		m.AdminSite, bulk.Int(m.OrderingProviderID),
		bulk.Int(m.AdministeringProviderID), m.AdminStatus, m.HoldReason,
		bulk.Timestamp(m.CreatedAt),
	}
}

// LabResult maps to the lab_results table.
type LabResult struct {
	LabID              int
	EncounterID        int
	LOINCCode          string
	TestName           string
	TestCategory       string
	ResultValue        float64
	ResultUnit         string
	ResultStatus       string
	AbnormalFlag       string
	ReferenceRangeLow  float64
	ReferenceRangeHigh float64
	CollectedDate      time.Time
	ResultedDate       time.Time
	OrderingProviderID int
	CreatedAt          time.Time
}

// LabResultColumns is the lab_results bulk-load column order.
var LabResultColumns = []string{
	"lab_id", "encounter_id", "loinc_code", "test_name", "test_category",
	"result_value", "result_unit", "result_status", "abnormal_flag",
	"reference_range_low", "reference_range_high", "collected_date",
	"resulted_date", "ordering_provider_id", "created_at",
}

func (l LabResult) Record() []string {
	return []string{
		bulk.Int(l.LabID), bulk.Int(l.EncounterID), l.LOINCCode, l.TestName,
		l.TestCategory, bulk.Float(l.ResultValue, 2), l.ResultUnit,
		l.ResultStatus, l.AbnormalFlag, bulk.Float(l.ReferenceRangeLow, 2),
		bulk.Float(l.ReferenceRangeHigh, 2), bulk.Timestamp(l.CollectedDate),
		bulk.Timestamp(l.ResultedDate), bulk.Int(l.OrderingProviderID),
		bulk.Timestamp(l.CreatedAt),
	}
}

// VitalSigns maps to the vital_signs table. Weight, height, and BMI are
// recorded only on the first observation of an encounter.
type VitalSigns struct {
	VitalID                int
	EncounterID            int
	TemperatureF           float64
	HeartRate              int
	RespiratoryRate        int
	BloodPressureSystolic  int
	BloodPressureDiastolic int
	OxygenSaturation       int
	PainScale              int
	WeightKg               *float64
	HeightCm               *float64
	BMI                    *float64
	Position               string
	OxygenDelivery         string
	OxygenFlowRate         *int
	RecordedDate           time.Time
	RecordedByProviderID   int
}

// VitalSignsColumns is the vital_signs bulk-load column order.
var VitalSignsColumns = []string{
	"vital_id", "encounter_id", "temperature_f", "heart_rate",
	"respiratory_rate", "blood_pressure_systolic",
	"blood_pressure_diastolic", "oxygen_saturation", "pain_scale",
	"weight_kg", "height_cm", "bmi", "position", "oxygen_delivery",
	"oxygen_flow_rate", "recorded_date", "recorded_by_provider_id",
}

func (v VitalSigns) Record() []string {
	return []string{
		bulk.Int(v.VitalID), bulk.Int(v.EncounterID),
		bulk.Float(v.TemperatureF, 1), bulk.Int(v.HeartRate),
		bulk.Int(v.RespiratoryRate), bulk.Int(v.BloodPressureSystolic),
		bulk.Int(v.BloodPressureDiastolic), bulk.Int(v.OxygenSaturation),
		bulk.Int(v.PainScale), bulk.FloatPtr(v.WeightKg, 1),
		bulk.FloatPtr(v.HeightCm, 1), bulk.FloatPtr(v.BMI, 1), v.Position,
		v.OxygenDelivery, bulk.IntPtr(v.OxygenFlowRate),
		bulk.Timestamp(v.RecordedDate), bulk.Int(v.RecordedByProviderID),
	}
}

// NursingAssessment maps to the nursing_assessments table.
type NursingAssessment struct {
	AssessmentID         int
	EncounterID          int
	AssessmentDate       time.Time
	AssessmentType       string
	LevelOfConsciousness string
	Orientation          string
	FallRiskScore        int
	FallRiskLevel        string
	BedAlarmOn           bool
	RestraintsInUse      bool
	SkinIntegrity        string
	PressureUlcerPresent bool
	BradenScore          int
	ActivityLevel        string
	GaitSteady           bool
	AssistiveDevice      string
	AssessmentNotes      string
	AssessingProviderID  int
	CreatedAt            time.Time
}

// NursingAssessmentColumns is the nursing_assessments bulk-load column
// order.
var NursingAssessmentColumns = []string{
	"assessment_id", "encounter_id", "assessment_date", "assessment_type",
	"level_of_consciousness", "orientation", "fall_risk_score",
	"fall_risk_level", "bed_alarm_on", "restraints_in_use", "skin_integrity",
	"pressure_ulcer_present", "braden_score", "activity_level", "gait_steady",
	"assistive_device", "assessment_notes", "assessing_provider_id",
	"created_at",
}

func (n NursingAssessment) Record() []string {
	return []string{
		bulk.Int(n.AssessmentID), bulk.Int(n.EncounterID),
		bulk.Timestamp(n.AssessmentDate), n.AssessmentType,
		n.LevelOfConsciousness, n.Orientation, bulk.Int(n.FallRiskScore),
		n.FallRiskLevel, bulk.Bool(n.BedAlarmOn), bulk.Bool(n.RestraintsInUse),
		n.SkinIntegrity, bulk.Bool(n.PressureUlcerPresent),
		bulk.Int(n.BradenScore), n.ActivityLevel, bulk.Bool(n.GaitSteady),
		n.AssistiveDevice, n.AssessmentNotes, bulk.Int(n.AssessingProviderID),
		bulk.Timestamp(n.CreatedAt),
	}
}
