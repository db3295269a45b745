package bulk

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Loader bulk-imports generated CSV files into PostgreSQL with COPY. Each
// file loads in its own transaction, so a constraint violation rejects that
// file atomically and leaves the rest of the schema untouched.
type Loader struct {
	pool *pgxpool.Pool
}

// NewLoader returns a Loader backed by the given pool.
func NewLoader(pool *pgxpool.Pool) *Loader {
	return &Loader{pool: pool}
}

// LoadResult reports per-table row counts from a load.
type LoadResult struct {
	Table string
	Rows  int64
}

// LoadDir loads <dir>/<table>.csv for every record-set definition, in the
// given order. Order matters: parents (patients, providers, units,
// medications) must load before the encounter and event tables that
// reference them.
func (l *Loader) LoadDir(ctx context.Context, dir string, sets []RecordSet) ([]LoadResult, error) {
	results := make([]LoadResult, 0, len(sets))
	for _, rs := range sets {
		n, err := l.loadOne(ctx, filepath.Join(dir, rs.File()), rs)
		if err != nil {
			return results, fmt.Errorf("load %s: %w", rs.Table, err)
		}
		results = append(results, LoadResult{Table: rs.Table, Rows: n})
	}
	return results, nil
}

func (l *Loader) loadOne(ctx context.Context, path string, rs RecordSet) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return 0, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	copySQL := fmt.Sprintf(
		`COPY %s (%s) FROM STDIN WITH (FORMAT csv, HEADER true, NULL '')`,
		rs.Table, strings.Join(rs.Columns, ", "),
	)
	tag, err := tx.Conn().PgConn().CopyFrom(ctx, f, copySQL)
	if err != nil {
		return 0, fmt.Errorf("copy: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return tag.RowsAffected(), nil
}
