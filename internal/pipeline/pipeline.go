// Package pipeline orchestrates a full generation run: reference data and
// patients first, then encounters and clinical events, optionally across
// parallel partitions, merged into one referentially consistent data set.
package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clindata/clindata/internal/config"
	"github.com/clindata/clindata/internal/domain/clinical"
	"github.com/clindata/clindata/internal/domain/encounter"
	"github.com/clindata/clindata/internal/domain/patient"
	"github.com/clindata/clindata/internal/domain/reference"
)

// Config is the resolved run configuration. AsOf is the reference time all
// generation measures "now" against; pinning it together with the seed makes
// runs byte-identical.
type Config struct {
	Seed                    int64
	Patients                int
	Providers               int
	Medications             int
	MaxEncountersPerPatient int
	Weights                 encounter.Weights
	CancelledRate           float64
	AllergyRate             float64
	AbnormalFraction        float64
	MissedDoseRate          float64
	Workers                 int
	Timeout                 time.Duration
	AsOf                    time.Time
}

// FromEnv resolves the environment configuration into a run configuration.
func FromEnv(c *config.Config) (Config, error) {
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	asOf, err := c.ResolveAsOf()
	if err != nil {
		return Config{}, err
	}
	return Config{
		Seed:                    c.Seed,
		Patients:                c.Patients,
		Providers:               c.Providers,
		Medications:             c.Medications,
		MaxEncountersPerPatient: c.MaxEncountersPerPatient,
		Weights: encounter.Weights{
			Inpatient:   c.WeightInpatient,
			Emergency:   c.WeightEmergency,
			Outpatient:  c.WeightOutpatient,
			Observation: c.WeightObservation,
		},
		CancelledRate:    c.CancelledRate,
		AllergyRate:      c.AllergyRate,
		AbnormalFraction: c.AbnormalFraction,
		MissedDoseRate:   c.MissedDoseRate,
		Workers:          c.Workers,
		Timeout:          c.RunTimeout(),
		AsOf:             asOf,
	}, nil
}

// Base is the output of the first generation phase.
type Base struct {
	Ref       *reference.Set
	Patients  []patient.Patient
	Allergies []patient.Allergy
}

// Events is the merged output of the encounter phase. IDs are globally
// sequential regardless of how many partitions produced them.
type Events struct {
	Encounters         []encounter.Encounter
	Diagnoses          []encounter.Diagnosis
	MedAdministrations []clinical.MedAdministration
	LabResults         []clinical.LabResult
	VitalSigns         []clinical.VitalSigns
	Assessments        []clinical.NursingAssessment
	Skips              clinical.Skips
}

// Summary describes one completed run.
type Summary struct {
	RunID    uuid.UUID
	Seed     int64
	Workers  int
	Duration time.Duration

	Patients    int
	Providers   int
	Units       int
	Medications int
	Allergies   int

	Encounters         int
	Diagnoses          int
	MedAdministrations int
	LabResults         int
	VitalSigns         int
	Assessments        int

	Skips clinical.Skips
}

// PartitionError reports which parallel partition failed a run.
type PartitionError struct {
	Partition int
	Err       error
}

func (e *PartitionError) Error() string {
	return fmt.Sprintf("partition %d: %v", e.Partition, e.Err)
}

func (e *PartitionError) Unwrap() error { return e.Err }

// partition is an inclusive patient ID range assigned to one worker.
type partition struct {
	First, Last int
}

// partitions splits patient IDs 1..patients into n contiguous ranges whose
// sizes differ by at most one.
func partitions(patients, n int) []partition {
	size := patients / n
	extra := patients % n
	out := make([]partition, n)
	next := 1
	for i := range out {
		count := size
		if i < extra {
			count++
		}
		out[i] = partition{First: next, Last: next + count - 1}
		next += count
	}
	return out
}
