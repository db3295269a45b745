// Package reference generates the immutable lookup entities every downstream
// generator keys against: providers, hospital units, and the medication
// formulary.
package reference

import (
	"time"

	"github.com/clindata/clindata/internal/platform/bulk"
)

// Provider maps to the providers table.
type Provider struct {
	ProviderID int
	NPI        string
	FirstName  string
	LastName   string
	MiddleName string
	Title      string
	Specialty  string
	Department string
	Phone      string
	Email      string
	Pager      string
	HireDate   time.Time
	IsActive   bool
}

// ProviderColumns is the providers bulk-load column order.
var ProviderColumns = []string{
	"provider_id", "npi", "first_name", "last_name", "middle_name", "title",
	"specialty", "department", "phone", "email", "pager", "hire_date",
	"is_active",
}

// Record renders the provider in ProviderColumns order.
func (p Provider) Record() []string {
	return []string{
		bulk.Int(p.ProviderID), p.NPI, p.FirstName, p.LastName, p.MiddleName,
		p.Title, p.Specialty, p.Department, p.Phone, p.Email, p.Pager,
		bulk.Date(p.HireDate), bulk.Bool(p.IsActive),
	}
}

// Unit maps to the units table.
type Unit struct {
	UnitID    int
	UnitCode  string
	UnitName  string
	UnitType  string
	Floor     string
	Building  string
	Phone     string
	TotalBeds int
	IsActive  bool
}

// UnitColumns is the units bulk-load column order.
var UnitColumns = []string{
	"unit_id", "unit_code", "unit_name", "unit_type", "floor", "building",
	"phone", "total_beds", "is_active",
}

// Record renders the unit in UnitColumns order.
func (u Unit) Record() []string {
	return []string{
		bulk.Int(u.UnitID), u.UnitCode, u.UnitName, u.UnitType, u.Floor,
		u.Building, u.Phone, bulk.Int(u.TotalBeds), bulk.Bool(u.IsActive),
	}
}

// IsCriticalCare reports whether the unit is an intensive-care setting.
// Vital-sign frequency and the acuity view both key off this.
func (u Unit) IsCriticalCare() bool {
	switch u.UnitCode {
	case "ICU", "MICU", "SICU", "CCU":
		return true
	}
	return false
}

// Medication maps to the medications table.
type Medication struct {
	MedicationID                int
	MedicationName              string
	GenericName                 string
	BrandName                   string
	MedicationClass             string
	ControlledSubstanceSchedule string
	DefaultRoute                string
	DefaultForm                 string
	IsHighAlert                 bool
	IsActive                    bool
}

// MedicationColumns is the medications bulk-load column order.
var MedicationColumns = []string{
	"medication_id", "medication_name", "generic_name", "brand_name",
	"medication_class", "controlled_substance_schedule", "default_route",
	"default_form", "is_high_alert", "is_active",
}

// Record renders the medication in MedicationColumns order.
func (m Medication) Record() []string {
	return []string{
		bulk.Int(m.MedicationID), m.MedicationName, m.GenericName,
		m.BrandName, m.MedicationClass, m.ControlledSubstanceSchedule,
		m.DefaultRoute, m.DefaultForm, bulk.Bool(m.IsHighAlert),
		bulk.Bool(m.IsActive),
	}
}

// Set is the read-only reference data shared by every downstream generator.
// It is fully built before patient or encounter generation starts and never
// mutated afterwards, so parallel workers can share it without locking.
type Set struct {
	Providers   []Provider
	Units       []Unit
	Medications []Medication
}

// EmergencyUnitID returns the unit id of the emergency department.
func (s *Set) EmergencyUnitID() int {
	for _, u := range s.Units {
		if u.UnitCode == "ED" {
			return u.UnitID
		}
	}
	return s.Units[0].UnitID
}

// TelemetryUnitID returns the unit id of the telemetry ward.
func (s *Set) TelemetryUnitID() int {
	for _, u := range s.Units {
		if u.UnitCode == "TELE" {
			return u.UnitID
		}
	}
	return s.Units[0].UnitID
}

// WardUnitIDs returns the ids of non-ED inpatient units.
func (s *Set) WardUnitIDs() []int {
	ids := make([]int, 0, len(s.Units))
	for _, u := range s.Units {
		if u.UnitCode != "ED" {
			ids = append(ids, u.UnitID)
		}
	}
	return ids
}

// UnitByID returns the unit with the given id.
func (s *Set) UnitByID(id int) (Unit, bool) {
	for _, u := range s.Units {
		if u.UnitID == id {
			return u, true
		}
	}
	return Unit{}, false
}
