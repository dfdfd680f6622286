// Package db pkg/db/db.go provides the local SQLite history of computed
// footprints and run outcomes.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/carverauto/carbonradar/pkg/pcf"
)

const (
	dbOperationTimeout = 5 * time.Second

	createTablesSQL = `
	-- Computed footprints, one logical record per unit
	CREATE TABLE IF NOT EXISTS footprints (
		production_line TEXT NOT NULL,
		serial_number TEXT NOT NULL,
		total_energy_wh REAL NOT NULL,
		scope1 REAL NOT NULL,
		scope2 REAL NOT NULL,
		scope3 REAL NOT NULL,
		total REAL NOT NULL,
		carbon_intensity REAL NOT NULL,
		methodology TEXT NOT NULL,
		computed_at TIMESTAMP NOT NULL,
		PRIMARY KEY (production_line, serial_number)
	);

	-- Per-line run log
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		production_line TEXT NOT NULL,
		outcome TEXT NOT NULL,
		serial_number TEXT,
		reason TEXT,
		started_at TIMESTAMP NOT NULL,
		finished_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_footprints_line
		ON footprints(production_line, computed_at);
	CREATE INDEX IF NOT EXISTS idx_runs_line_time
		ON runs(production_line, started_at);
	`
)

// DB is the footprint history store.
type DB struct {
	db *sql.DB
}

// New opens (or creates) the store at dbPath.
func New(dbPath string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedOpenDB, err)
	}

	// WAL keeps the API's reads from blocking the processor's writes.
	if _, err := sqlDB.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("%w: %w", ErrFailedToEnableWAL, err)
	}

	if _, err := sqlDB.Exec(createTablesSQL); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("%w: %w", ErrFailedToInit, err)
	}

	return &DB{db: sqlDB}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

// SaveFootprint upserts a footprint keyed by (production line, serial
// number): recomputing the same unit replaces the record in place.
func (d *DB) SaveFootprint(ctx context.Context, fp *pcf.Footprint) error {
	ctx, cancel := context.WithTimeout(ctx, dbOperationTimeout)
	defer cancel()

	const query = `
        INSERT INTO footprints (
            production_line, serial_number, total_energy_wh,
            scope1, scope2, scope3, total, carbon_intensity,
            methodology, computed_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(production_line, serial_number) DO UPDATE SET
            total_energy_wh = excluded.total_energy_wh,
            scope1 = excluded.scope1,
            scope2 = excluded.scope2,
            scope3 = excluded.scope3,
            total = excluded.total,
            carbon_intensity = excluded.carbon_intensity,
            methodology = excluded.methodology,
            computed_at = excluded.computed_at
    `

	_, err := d.db.ExecContext(ctx, query,
		fp.ProductionLine, fp.SerialNumber, fp.TotalEnergyWh,
		fp.Scope1, fp.Scope2, fp.Scope3, fp.Total, fp.CarbonIntensity,
		fp.Methodology, fp.ComputedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToInsert, err)
	}

	return nil
}

// SaveRun appends one run record to the run log.
func (d *DB) SaveRun(ctx context.Context, run *pcf.RunRecord) error {
	ctx, cancel := context.WithTimeout(ctx, dbOperationTimeout)
	defer cancel()

	const query = `
        INSERT INTO runs (
            production_line, outcome, serial_number, reason, started_at, finished_at
        ) VALUES (?, ?, ?, ?, ?, ?)
    `

	_, err := d.db.ExecContext(ctx, query,
		run.Line, string(run.Outcome), run.Serial, run.Reason,
		run.StartedAt, run.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToInsert, err)
	}

	return nil
}

// GetFootprint returns the record for one unit, or ErrNotFound.
func (d *DB) GetFootprint(ctx context.Context, line, serial string) (*pcf.Footprint, error) {
	ctx, cancel := context.WithTimeout(ctx, dbOperationTimeout)
	defer cancel()

	const query = `
        SELECT production_line, serial_number, total_energy_wh,
               scope1, scope2, scope3, total, carbon_intensity,
               methodology, computed_at
        FROM footprints
        WHERE production_line = ? AND serial_number = ?
    `

	fp, err := scanFootprint(d.db.QueryRowContext(ctx, query, line, serial))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("%w: %w", ErrFailedToScan, err)
	}

	return fp, nil
}

// ListFootprints returns stored footprints, newest first, optionally
// restricted to one production line. line == "" lists all lines.
func (d *DB) ListFootprints(ctx context.Context, line string) ([]*pcf.Footprint, error) {
	ctx, cancel := context.WithTimeout(ctx, dbOperationTimeout)
	defer cancel()

	query := `
        SELECT production_line, serial_number, total_energy_wh,
               scope1, scope2, scope3, total, carbon_intensity,
               methodology, computed_at
        FROM footprints
    `
	args := make([]interface{}, 0, 1)

	if line != "" {
		query += " WHERE production_line = ?"
		args = append(args, line)
	}

	query += " ORDER BY computed_at DESC"

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToQuery, err)
	}
	defer rows.Close()

	footprints := make([]*pcf.Footprint, 0)

	for rows.Next() {
		fp, err := scanFootprint(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFailedToScan, err)
		}

		footprints = append(footprints, fp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToQuery, err)
	}

	return footprints, nil
}

// ListRuns returns the most recent run records, newest first.
func (d *DB) ListRuns(ctx context.Context, limit int) ([]*pcf.RunRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, dbOperationTimeout)
	defer cancel()

	const query = `
        SELECT production_line, outcome, serial_number, reason, started_at, finished_at
        FROM runs
        ORDER BY id DESC
        LIMIT ?
    `

	rows, err := d.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToQuery, err)
	}
	defer rows.Close()

	runs := make([]*pcf.RunRecord, 0, limit)

	for rows.Next() {
		var run pcf.RunRecord

		var outcome string

		if err := rows.Scan(&run.Line, &outcome, &run.Serial, &run.Reason,
			&run.StartedAt, &run.FinishedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFailedToScan, err)
		}

		run.Outcome = pcf.RunOutcome(outcome)
		runs = append(runs, &run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToQuery, err)
	}

	return runs, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanFootprint(row scanner) (*pcf.Footprint, error) {
	var fp pcf.Footprint

	if err := row.Scan(&fp.ProductionLine, &fp.SerialNumber, &fp.TotalEnergyWh,
		&fp.Scope1, &fp.Scope2, &fp.Scope3, &fp.Total, &fp.CarbonIntensity,
		&fp.Methodology, &fp.ComputedAt); err != nil {
		return nil, err
	}

	return &fp, nil
}
