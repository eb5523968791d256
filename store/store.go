package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Nydauron/champstandings/report"
	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// ErrRunNotFound is returned when a run id is not in the archive.
var ErrRunNotFound = errors.New("run not found")

// Run summarizes one archived report.
type Run struct {
	ID        string
	Title     string
	DropWeeks int
	Series    int
	CreatedAt time.Time
}

// Store archives generated reports so earlier runs can be listed and
// reloaded. The engine itself never reads from it.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens a DB and ensures schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*Store, error) {
	var drvName, schema string
	switch driver {
	case DriverSQLite:
		drvName, schema = "sqlite", schemaSQLite
	case DriverPostgres:
		drvName, schema = "pgx", schemaPostgres
	default:
		return nil, fmt.Errorf("store: unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveReport archives rep and one row per standing, returning the run id.
func (s *Store) SaveReport(ctx context.Context, rep *report.Report) (string, error) {
	body, err := json.Marshal(rep)
	if err != nil {
		return "", fmt.Errorf("store: encode report: %w", err)
	}
	created := s.now().UTC()
	id := created.Format("20060102T150405.000000000Z")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO runs (id,title,drop_weeks,series_count,report_json,created_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		id, rep.Title, rep.DropWeeks, len(rep.Series), string(body), created.Unix())
	if err != nil {
		return "", fmt.Errorf("store: insert run: %w", err)
	}

	for _, series := range rep.Series {
		for _, week := range series.Weeks {
			for _, st := range week.Standings {
				finishes, err := json.Marshal(st.Finishes)
				if err != nil {
					return "", fmt.Errorf("store: encode finishes: %w", err)
				}
				_, err = tx.ExecContext(ctx, `INSERT INTO standings (run_id,series,week,position,driver,points,gap,change,finishes_json)
					VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
					id, series.Name, week.Number, st.Position, st.Driver, st.Points, st.Gap, st.Change, string(finishes))
				if err != nil {
					return "", fmt.Errorf("store: insert standing: %w", err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("store: commit: %w", err)
	}
	return id, nil
}

// ListRuns returns the most recent runs first. limit <= 0 means all.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id,title,drop_weeks,series_count,created_at FROM runs ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var created int64
		if err := rows.Scan(&r.ID, &r.Title, &r.DropWeeks, &r.Series, &created); err != nil {
			return nil, fmt.Errorf("store: scan run: %w", err)
		}
		r.CreatedAt = time.Unix(created, 0).UTC()
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// LoadReport returns the report archived under id.
func (s *Store) LoadReport(ctx context.Context, id string) (*report.Report, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT report_json FROM runs WHERE id=$1`, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("store: %w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("store: load run: %w", err)
	}
	var rep report.Report
	if err := json.Unmarshal([]byte(body), &rep); err != nil {
		return nil, fmt.Errorf("store: decode report: %w", err)
	}
	return &rep, nil
}

// DriverHistory returns a driver's archived standing in series for every
// week of run id, in week order.
func (s *Store) DriverHistory(ctx context.Context, id, series, driver string) ([]report.Standing, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT position,points,gap,change,finishes_json FROM standings
		WHERE run_id=$1 AND series=$2 AND driver=$3 ORDER BY week`, id, series, driver)
	if err != nil {
		return nil, fmt.Errorf("store: driver history: %w", err)
	}
	defer rows.Close()

	var out []report.Standing
	for rows.Next() {
		st := report.Standing{Driver: driver}
		var finishes string
		if err := rows.Scan(&st.Position, &st.Points, &st.Gap, &st.Change, &finishes); err != nil {
			return nil, fmt.Errorf("store: scan standing: %w", err)
		}
		if err := json.Unmarshal([]byte(finishes), &st.Finishes); err != nil {
			return nil, fmt.Errorf("store: decode finishes: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

const schemaSQLite = `
PRAGMA foreign_keys=ON;

CREATE TABLE IF NOT EXISTS runs (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  drop_weeks INTEGER NOT NULL,
  series_count INTEGER NOT NULL,
  report_json TEXT NOT NULL,
  created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS standings (
  run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
  series TEXT NOT NULL,
  week INTEGER NOT NULL,
  position INTEGER NOT NULL,
  driver TEXT NOT NULL,
  points INTEGER NOT NULL,
  gap INTEGER NOT NULL,
  change INTEGER NOT NULL,
  finishes_json TEXT NOT NULL,
  PRIMARY KEY (run_id, series, week, position)
);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS runs (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  drop_weeks INTEGER NOT NULL,
  series_count INTEGER NOT NULL,
  report_json TEXT NOT NULL,
  created_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS standings (
  run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
  series TEXT NOT NULL,
  week INTEGER NOT NULL,
  position INTEGER NOT NULL,
  driver TEXT NOT NULL,
  points INTEGER NOT NULL,
  gap INTEGER NOT NULL,
  change INTEGER NOT NULL,
  finishes_json TEXT NOT NULL,
  PRIMARY KEY (run_id, series, week, position)
);
`
