package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/clindata/clindata/internal/domain/clinical"
	"github.com/clindata/clindata/internal/domain/encounter"
	"github.com/clindata/clindata/internal/domain/patient"
	"github.com/clindata/clindata/internal/domain/reference"
	"github.com/clindata/clindata/internal/platform/bulk"
	"github.com/clindata/clindata/internal/platform/ident"
	"github.com/clindata/clindata/internal/platform/rng"
)

// Sub-seed indexes for the base phases. Workers use their partition index
// (0..n-1), so the base streams take negative indexes to stay disjoint.
const (
	seedReference = -1
	seedPatients  = -2
)

// Runner executes generation runs.
type Runner struct {
	cfg Config
	log zerolog.Logger
}

func NewRunner(cfg Config, log zerolog.Logger) *Runner {
	return &Runner{cfg: cfg, log: log}
}

// GenerateBase builds the reference set, patients, and allergies. The base
// phase is always sequential; it is cheap relative to the encounter phase.
func (r *Runner) GenerateBase(ctx context.Context) (*Base, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	refGen := reference.NewGenerator(rng.New(rng.SubSeed(r.cfg.Seed, seedReference)))
	ref, err := refGen.Generate(reference.Config{
		Providers:   r.cfg.Providers,
		Medications: r.cfg.Medications,
		AsOf:        r.cfg.AsOf,
	})
	if err != nil {
		return nil, fmt.Errorf("reference data: %w", err)
	}
	r.log.Info().
		Int("providers", len(ref.Providers)).
		Int("units", len(ref.Units)).
		Int("medications", len(ref.Medications)).
		Msg("reference data generated")

	patGen := patient.NewGenerator(rng.New(rng.SubSeed(r.cfg.Seed, seedPatients)))
	patCfg := patient.Config{
		Count:       r.cfg.Patients,
		AllergyRate: r.cfg.AllergyRate,
		AsOf:        r.cfg.AsOf,
	}
	patients, err := patGen.Generate(patCfg)
	if err != nil {
		return nil, fmt.Errorf("patients: %w", err)
	}
	allergies := patGen.Allergies(patCfg, patients, len(ref.Providers))
	r.log.Info().
		Int("patients", len(patients)).
		Int("allergies", len(allergies)).
		Msg("patients generated")

	return &Base{Ref: ref, Patients: patients, Allergies: allergies}, nil
}

// workerOutput is one partition's contribution before merging.
type workerOutput struct {
	enc  *encounter.Output
	clin *clinical.Output
}

// GenerateEvents builds encounters and clinical events for every patient in
// base. With one worker the run is sequential; with more, each worker owns a
// contiguous patient range and a sub-seed derived from the run seed, and the
// partial outputs are merged with ID offsets so the result is structured
// exactly like a sequential run. The first failing partition cancels the
// rest.
func (r *Runner) GenerateEvents(ctx context.Context, base *Base) (*Events, error) {
	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}

	parts := partitions(len(base.Patients), r.cfg.Workers)
	results := make([]workerOutput, len(parts))

	g, ctx := errgroup.WithContext(ctx)
	for i, part := range parts {
		i, part := i, part
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return &PartitionError{Partition: i, Err: err}
			}
			stream := rng.New(rng.SubSeed(r.cfg.Seed, i))

			encOut, err := encounter.NewGenerator(stream, base.Ref).Generate(encounter.Config{
				MaxPerPatient: r.cfg.MaxEncountersPerPatient,
				Weights:       r.cfg.Weights,
				CancelledRate: r.cfg.CancelledRate,
				AsOf:          r.cfg.AsOf,
			}, part.First, part.Last)
			if err != nil {
				return &PartitionError{Partition: i, Err: err}
			}
			if err := ctx.Err(); err != nil {
				return &PartitionError{Partition: i, Err: err}
			}

			clinOut := clinical.NewGenerator(stream, base.Ref).Generate(clinical.Config{
				AbnormalFraction: r.cfg.AbnormalFraction,
				MissedDoseRate:   r.cfg.MissedDoseRate,
				AsOf:             r.cfg.AsOf,
			}, encOut.Encounters)

			results[i] = workerOutput{enc: encOut, clin: clinOut}
			r.log.Debug().
				Int("partition", i).
				Int("patients", part.Last-part.First+1).
				Int("encounters", len(encOut.Encounters)).
				Msg("partition complete")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return r.merge(results)
}

// merge concatenates partition outputs, shifting every local sequence ID by
// the totals of the preceding partitions. Encounter numbers are random, not
// sequential, so uniqueness across partitions is re-checked here; a
// collision aborts the run.
func (r *Runner) merge(results []workerOutput) (*Events, error) {
	out := &Events{}
	numbers := ident.NewAllocator("encounter number", 0)

	for _, res := range results {
		if dup, ok := numbers.Absorb(res.enc.Numbers); !ok {
			return nil, fmt.Errorf("merge: encounter number %q collides across partitions", dup)
		}

		encOff := len(out.Encounters)
		dxOff := len(out.Diagnoses)
		medOff := len(out.MedAdministrations)
		labOff := len(out.LabResults)
		vitOff := len(out.VitalSigns)
		assessOff := len(out.Assessments)

		for _, e := range res.enc.Encounters {
			e.EncounterID += encOff
			out.Encounters = append(out.Encounters, e)
		}
		for _, d := range res.enc.Diagnoses {
			d.DiagnosisID += dxOff
			d.EncounterID += encOff
			out.Diagnoses = append(out.Diagnoses, d)
		}
		for _, m := range res.clin.MedAdministrations {
			m.AdminID += medOff
			m.EncounterID += encOff
			out.MedAdministrations = append(out.MedAdministrations, m)
		}
		for _, l := range res.clin.LabResults {
			l.LabID += labOff
			l.EncounterID += encOff
			out.LabResults = append(out.LabResults, l)
		}
		for _, v := range res.clin.VitalSigns {
			v.VitalID += vitOff
			v.EncounterID += encOff
			out.VitalSigns = append(out.VitalSigns, v)
		}
		for _, a := range res.clin.Assessments {
			a.AssessmentID += assessOff
			a.EncounterID += encOff
			out.Assessments = append(out.Assessments, a)
		}

		out.Skips.MedAdministrations += res.clin.Skips.MedAdministrations
		out.Skips.LabResults += res.clin.Skips.LabResults
		out.Skips.VitalSigns += res.clin.Skips.VitalSigns
		out.Skips.Assessments += res.clin.Skips.Assessments
	}
	return out, nil
}

// Run executes the whole pipeline and writes the bulk-load files to outDir.
func (r *Runner) Run(ctx context.Context, outDir string) (*Summary, error) {
	started := time.Now()
	runID := uuid.New()
	r.log.Info().
		Stringer("run_id", runID).
		Int64("seed", r.cfg.Seed).
		Int("workers", r.cfg.Workers).
		Time("as_of", r.cfg.AsOf).
		Msg("generation run starting")

	base, err := r.GenerateBase(ctx)
	if err != nil {
		return nil, err
	}
	events, err := r.GenerateEvents(ctx, base)
	if err != nil {
		return nil, err
	}

	if err := bulk.WriteDir(outDir, RecordSets(base, events)); err != nil {
		return nil, fmt.Errorf("write output: %w", err)
	}

	s := &Summary{
		RunID:              runID,
		Seed:               r.cfg.Seed,
		Workers:            r.cfg.Workers,
		Duration:           time.Since(started),
		Patients:           len(base.Patients),
		Providers:          len(base.Ref.Providers),
		Units:              len(base.Ref.Units),
		Medications:        len(base.Ref.Medications),
		Allergies:          len(base.Allergies),
		Encounters:         len(events.Encounters),
		Diagnoses:          len(events.Diagnoses),
		MedAdministrations: len(events.MedAdministrations),
		LabResults:         len(events.LabResults),
		VitalSigns:         len(events.VitalSigns),
		Assessments:        len(events.Assessments),
		Skips:              events.Skips,
	}
	r.log.Info().
		Stringer("run_id", s.RunID).
		Dur("duration", s.Duration).
		Int("encounters", s.Encounters).
		Int("vital_signs", s.VitalSigns).
		Int("skipped_events", s.Skips.Total()).
		Msg("generation run complete")
	return s, nil
}

// Tables lists every bulk-load file in dependency order, without rows. The
// load command uses it to find and order the CSV files on disk.
func Tables() []bulk.RecordSet {
	return RecordSets(&Base{Ref: &reference.Set{}}, &Events{})
}

// RecordSets assembles the bulk-load files in dependency order, parents
// before children.
func RecordSets(base *Base, events *Events) []bulk.RecordSet {
	sets := []bulk.RecordSet{
		{Table: "patients", Columns: patient.Columns},
		{Table: "providers", Columns: reference.ProviderColumns},
		{Table: "units", Columns: reference.UnitColumns},
		{Table: "medications", Columns: reference.MedicationColumns},
		{Table: "allergies", Columns: patient.AllergyColumns},
	}
	for _, p := range base.Patients {
		sets[0].Rows = append(sets[0].Rows, p.Record())
	}
	for _, p := range base.Ref.Providers {
		sets[1].Rows = append(sets[1].Rows, p.Record())
	}
	for _, u := range base.Ref.Units {
		sets[2].Rows = append(sets[2].Rows, u.Record())
	}
	for _, m := range base.Ref.Medications {
		sets[3].Rows = append(sets[3].Rows, m.Record())
	}
	for _, a := range base.Allergies {
		sets[4].Rows = append(sets[4].Rows, a.Record())
	}
	if events == nil {
		return sets
	}

	eventSets := []bulk.RecordSet{
		{Table: "encounters", Columns: encounter.Columns},
		{Table: "diagnoses", Columns: encounter.DiagnosisColumns},
		{Table: "medication_administrations", Columns: clinical.MedAdministrationColumns},
		{Table: "lab_results", Columns: clinical.LabResultColumns},
		{Table: "vital_signs", Columns: clinical.VitalSignsColumns},
		{Table: "nursing_assessments", Columns: clinical.NursingAssessmentColumns},
	}
	for _, e := range events.Encounters {
		eventSets[0].Rows = append(eventSets[0].Rows, e.Record())
	}
	for _, d := range events.Diagnoses {
		eventSets[1].Rows = append(eventSets[1].Rows, d.Record())
	}
	for _, m := range events.MedAdministrations {
		eventSets[2].Rows = append(eventSets[2].Rows, m.Record())
	}
	for _, l := range events.LabResults {
		eventSets[3].Rows = append(eventSets[3].Rows, l.Record())
	}
	for _, v := range events.VitalSigns {
		eventSets[4].Rows = append(eventSets[4].Rows, v.Record())
	}
	for _, a := range events.Assessments {
		eventSets[5].Rows = append(eventSets[5].Rows, a.Record())
	}
	return append(sets, eventSets...)
}
