// Package reporting evaluates predefined SQL measures against a loaded
// data set, both for data-quality verification after a bulk load and for a
// quick look at the generated population.
package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// MeasureDefinition defines a reporting measure with its SQL query.
type MeasureDefinition struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	SQL         string `json:"sql"`
}

// MeasureReport holds the results of evaluating a measure.
type MeasureReport struct {
	MeasureID   string                   `json:"measure_id"`
	MeasureName string                   `json:"measure_name"`
	GeneratedAt time.Time                `json:"generated_at"`
	Results     []map[string]interface{} `json:"results"`
}

// PredefinedMeasures is the list of available reporting measures. The
// orphan checks must always return zero rows with a count of 0 for a
// correctly merged data set.
var PredefinedMeasures = []MeasureDefinition{
	{
		ID:          "record-counts",
		Name:        "Record Counts",
		Description: "Row counts for every generated table",
		SQL: `SELECT 'patients' AS tbl, COUNT(*) AS total FROM patients
UNION ALL SELECT 'providers', COUNT(*) FROM providers
UNION ALL SELECT 'units', COUNT(*) FROM units
UNION ALL SELECT 'medications', COUNT(*) FROM medications
UNION ALL SELECT 'allergies', COUNT(*) FROM allergies
UNION ALL SELECT 'encounters', COUNT(*) FROM encounters
UNION ALL SELECT 'diagnoses', COUNT(*) FROM diagnoses
UNION ALL SELECT 'medication_administrations', COUNT(*) FROM medication_administrations
UNION ALL SELECT 'lab_results', COUNT(*) FROM lab_results
UNION ALL SELECT 'vital_signs', COUNT(*) FROM vital_signs
UNION ALL SELECT 'nursing_assessments', COUNT(*) FROM nursing_assessments
ORDER BY tbl`,
	},
	{
		ID:          "encounter-volume-by-type",
		Name:        "Encounter Volume by Type",
		Description: "Number of encounters grouped by type and status",
		SQL:         `SELECT encounter_type, encounter_status, COUNT(*) AS total FROM encounters GROUP BY encounter_type, encounter_status ORDER BY total DESC`,
	},
	{
		ID:          "active-census",
		Name:        "Active Census by Unit",
		Description: "Currently active encounters per unit",
		SQL: `SELECT u.unit_code, u.unit_name, COUNT(*) AS census
FROM encounters e JOIN units u ON u.unit_id = e.current_unit_id
WHERE e.encounter_status = 'Active'
GROUP BY u.unit_code, u.unit_name ORDER BY census DESC`,
	},
	{
		ID:          "abnormal-lab-rate",
		Name:        "Abnormal Lab Rate",
		Description: "Share of lab results flagged outside the reference range, by category",
		SQL: `SELECT test_category,
COUNT(*) AS total,
SUM(CASE WHEN abnormal_flag <> 'Normal' THEN 1 ELSE 0 END) AS abnormal,
ROUND(AVG(CASE WHEN abnormal_flag <> 'Normal' THEN 1.0 ELSE 0.0 END), 3) AS abnormal_rate
FROM lab_results GROUP BY test_category ORDER BY test_category`,
	},
	{
		ID:          "missed-dose-rate",
		Name:        "Missed Dose Rate",
		Description: "Medication administrations by status",
		SQL:         `SELECT admin_status, COUNT(*) AS total FROM medication_administrations GROUP BY admin_status ORDER BY total DESC`,
	},
	{
		ID:          "orphan-encounters",
		Name:        "Orphan Encounters",
		Description: "Encounters whose patient does not exist; must be zero",
		SQL:         `SELECT COUNT(*) AS orphans FROM encounters e LEFT JOIN patients p ON p.patient_id = e.patient_id WHERE p.patient_id IS NULL`,
	},
	{
		ID:          "orphan-events",
		Name:        "Orphan Clinical Events",
		Description: "Clinical events whose encounter does not exist; all counts must be zero",
		SQL: `SELECT 'diagnoses' AS tbl, COUNT(*) AS orphans FROM diagnoses d LEFT JOIN encounters e ON e.encounter_id = d.encounter_id WHERE e.encounter_id IS NULL
UNION ALL SELECT 'medication_administrations', COUNT(*) FROM medication_administrations m LEFT JOIN encounters e ON e.encounter_id = m.encounter_id WHERE e.encounter_id IS NULL
UNION ALL SELECT 'lab_results', COUNT(*) FROM lab_results l LEFT JOIN encounters e ON e.encounter_id = l.encounter_id WHERE e.encounter_id IS NULL
UNION ALL SELECT 'vital_signs', COUNT(*) FROM vital_signs v LEFT JOIN encounters e ON e.encounter_id = v.encounter_id WHERE e.encounter_id IS NULL
UNION ALL SELECT 'nursing_assessments', COUNT(*) FROM nursing_assessments n LEFT JOIN encounters e ON e.encounter_id = n.encounter_id WHERE e.encounter_id IS NULL`,
	},
	{
		ID:          "discharge-before-admit",
		Name:        "Discharge Before Admit",
		Description: "Encounters discharged before admission; must be zero",
		SQL:         `SELECT COUNT(*) AS violations FROM encounters WHERE discharge_date IS NOT NULL AND discharge_date < admit_date`,
	},
}

// Evaluator runs measures against a loaded database.
type Evaluator struct {
	pool *pgxpool.Pool
}

// NewEvaluator creates a measure evaluator.
func NewEvaluator(pool *pgxpool.Pool) *Evaluator {
	return &Evaluator{pool: pool}
}

// Evaluate executes a measure's SQL and returns the results.
func (ev *Evaluator) Evaluate(ctx context.Context, measureID string) (*MeasureReport, error) {
	measure := FindMeasure(measureID)
	if measure == nil {
		return nil, fmt.Errorf("unknown measure %q", measureID)
	}

	results, err := ev.executeSQL(ctx, measure.SQL)
	if err != nil {
		return nil, fmt.Errorf("measure %s: %w", measure.ID, err)
	}

	return &MeasureReport{
		MeasureID:   measure.ID,
		MeasureName: measure.Name,
		GeneratedAt: time.Now(),
		Results:     results,
	}, nil
}

// EvaluateAll runs every predefined measure in order.
func (ev *Evaluator) EvaluateAll(ctx context.Context) ([]*MeasureReport, error) {
	reports := make([]*MeasureReport, 0, len(PredefinedMeasures))
	for _, m := range PredefinedMeasures {
		report, err := ev.Evaluate(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// executeSQL runs a SQL query and returns results as a slice of maps.
func (ev *Evaluator) executeSQL(ctx context.Context, sql string) ([]map[string]interface{}, error) {
	rows, err := ev.pool.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fieldDescs := rows.FieldDescriptions()
	var results []map[string]interface{}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}

		row := make(map[string]interface{}, len(fieldDescs))
		for i, fd := range fieldDescs {
			row[string(fd.Name)] = values[i]
		}
		results = append(results, row)
	}

	if results == nil {
		results = []map[string]interface{}{}
	}

	return results, nil
}

// FindMeasure looks up a measure by ID.
func FindMeasure(id string) *MeasureDefinition {
	for i := range PredefinedMeasures {
		if PredefinedMeasures[i].ID == id {
			return &PredefinedMeasures[i]
		}
	}
	return nil
}
