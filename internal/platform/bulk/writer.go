package bulk

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// RecordSet is one entity's worth of output: a target table, its ordered
// column list, and the rows to load. Column order is the load contract and
// must not change independently of the schema.
type RecordSet struct {
	Table   string
	Columns []string
	Rows    [][]string
}

// File returns the CSV filename for the record set.
func (rs RecordSet) File() string {
	return rs.Table + ".csv"
}

// WriteDir writes each record set as <dir>/<table>.csv with a header row.
// The directory is created if missing. Rows whose width does not match the
// column list are rejected; a malformed row indicates a generator bug and
// must never reach the database.
func WriteDir(dir string, sets []RecordSet) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	for _, rs := range sets {
		if err := writeOne(dir, rs); err != nil {
			return err
		}
	}
	return nil
}

func writeOne(dir string, rs RecordSet) error {
	path := filepath.Join(dir, rs.File())
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(rs.Columns); err != nil {
		return fmt.Errorf("write header for %s: %w", rs.Table, err)
	}
	for i, row := range rs.Rows {
		if len(row) != len(rs.Columns) {
			return fmt.Errorf("%s row %d: %d fields, want %d", rs.Table, i, len(row), len(rs.Columns))
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write %s row %d: %w", rs.Table, i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", rs.Table, err)
	}
	return f.Close()
}
