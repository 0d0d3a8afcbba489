// Package store persists analysis runs to PostgreSQL.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
)

// ErrNotConfigured is returned by DSNFromEnv when no database settings exist.
var ErrNotConfigured = errors.New("POSTGRES_DB not set; set env vars or DATABASE_URL")

// DSNFromEnv builds a lib/pq connection string from the POSTGRES_* variables,
// falling back to DATABASE_URL when POSTGRES_DB is unset.
func DSNFromEnv() (string, error) {
	host := os.Getenv("POSTGRES_HOST")
	port := os.Getenv("POSTGRES_PORT")
	user := os.Getenv("POSTGRES_USER")
	pass := os.Getenv("POSTGRES_PASSWORD")
	dbname := os.Getenv("POSTGRES_DB")
	if dbname == "" {
		if url := os.Getenv("DATABASE_URL"); url != "" {
			return url, nil
		}
		return "", ErrNotConfigured
	}
	if host == "" {
		host = "localhost"
	}
	if port == "" {
		port = "5432"
	}
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", host, port, user, pass, dbname)
	return dsn, nil
}

// Run is one persisted analysis execution.
type Run struct {
	ID              uuid.UUID `db:"id"`
	Kind            string    `db:"kind"`
	InputPath       string    `db:"input_path"`
	Summary         string    `db:"summary"`
	DurationSeconds float64   `db:"duration"`
	MemoryBytes     float64   `db:"memory"`
	CreatedAt       time.Time `db:"created_at"`
}

// NewRun wraps an analysis result for persistence. result is stored as JSON
// in the summary column.
func NewRun(kind, inputPath string, result any, durationSeconds, memoryBytes float64) (*Run, error) {
	summary, err := json.Marshal(result)
	if err != nil {
		return nil, errors.Wrap(err, "encode run summary")
	}
	return &Run{
		ID:              uuid.New(),
		Kind:            kind,
		InputPath:       inputPath,
		Summary:         string(summary),
		DurationSeconds: durationSeconds,
		MemoryBytes:     memoryBytes,
		CreatedAt:       time.Now().UTC(),
	}, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS analysis_runs (
  id          UUID PRIMARY KEY,
  kind        TEXT NOT NULL,
  input_path  TEXT NOT NULL,
  summary     JSONB NOT NULL,
  duration    DOUBLE PRECISION NOT NULL,
  memory      DOUBLE PRECISION NOT NULL,
  created_at  TIMESTAMPTZ NOT NULL
)`

// Store writes analysis runs to the analysis_runs table.
type Store struct {
	db *sqlx.DB
}

// New wraps an existing connection.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Open connects to PostgreSQL and verifies the connection.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "database not reachable")
	}
	return New(db), nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// EnsureSchema creates the analysis_runs table when it does not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schema)
	return errors.Wrap(err, "create analysis_runs")
}

// SaveRun inserts run.
func (s *Store) SaveRun(ctx context.Context, run *Run) error {
	const q = `
INSERT INTO analysis_runs
  (id, kind, input_path, summary, duration, memory, created_at)
VALUES (:id, :kind, :input_path, :summary, :duration, :memory, :created_at)
`
	_, err := s.db.NamedExecContext(ctx, q, run)
	return errors.Wrapf(err, "insert analysis run %s", run.ID)
}
