package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/cespare/xxhash/v2"
	_ "modernc.org/sqlite"

	"github.com/cognicore/revtrend/pkg/revtrend/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	input TEXT,
	started_at TEXT,
	total INTEGER NOT NULL DEFAULT 0,
	skipped INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS run_partitions (
	run_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	sentiment TEXT NOT NULL,
	count INTEGER NOT NULL,
	summary TEXT,
	status TEXT,
	PRIMARY KEY(run_id, sentiment),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS run_trends (
	run_id TEXT NOT NULL,
	sentiment TEXT NOT NULL,
	position INTEGER NOT NULL,
	text TEXT NOT NULL,
	support INTEGER NOT NULL,
	evidence TEXT,
	PRIMARY KEY(run_id, sentiment, position),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS embeddings (
	model TEXT NOT NULL,
	hash INTEGER NOT NULL,
	text TEXT NOT NULL,
	vec BLOB NOT NULL,
	PRIMARY KEY(model, hash)
);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveRun inserts or replaces a run with its partitions and trends
func (s *sqliteStore) SaveRun(ctx context.Context, r store.Run) error {
	if r.ID == "" {
		return fmt.Errorf("save run: empty id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, r.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, input, started_at, total, skipped) VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.Input, r.StartedAt.UTC().Format(time.RFC3339Nano), r.Total, r.Skipped,
	); err != nil {
		return err
	}

	for i, p := range r.Partitions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_partitions (run_id, position, sentiment, count, summary, status) VALUES (?, ?, ?, ?, ?, ?)`,
			r.ID, i, p.Sentiment, p.Count, p.Summary, p.Status,
		); err != nil {
			return err
		}
		for j, t := range p.Trends {
			evidenceJSON, err := json.Marshal(t.Evidence)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO run_trends (run_id, sentiment, position, text, support, evidence) VALUES (?, ?, ?, ?, ?, ?)`,
				r.ID, p.Sentiment, j, t.Text, t.Support, string(evidenceJSON),
			); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// GetRun returns a run by ID
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, error) {
	var r store.Run
	var started string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, input, started_at, total, skipped FROM runs WHERE id = ?`, id,
	).Scan(&r.ID, &r.Input, &started, &r.Total, &r.Skipped)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Run{}, fmt.Errorf("run %s: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return store.Run{}, err
	}
	if t, err := time.Parse(time.RFC3339Nano, started); err == nil {
		r.StartedAt = t
	}

	parts, err := s.partitions(ctx, id)
	if err != nil {
		return store.Run{}, err
	}
	r.Partitions = parts
	return r, nil
}

func (s *sqliteStore) partitions(ctx context.Context, runID string) ([]store.PartitionRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT sentiment, count, summary, status FROM run_partitions WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, err
	}
	var parts []store.PartitionRecord
	for rows.Next() {
		var p store.PartitionRecord
		if err := rows.Scan(&p.Sentiment, &p.Count, &p.Summary, &p.Status); err != nil {
			rows.Close()
			return nil, err
		}
		parts = append(parts, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range parts {
		trends, err := s.trends(ctx, runID, parts[i].Sentiment)
		if err != nil {
			return nil, err
		}
		parts[i].Trends = trends
	}
	return parts, nil
}

func (s *sqliteStore) trends(ctx context.Context, runID, sentiment string) ([]store.TrendRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT text, support, evidence FROM run_trends WHERE run_id = ? AND sentiment = ? ORDER BY position`,
		runID, sentiment)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trends []store.TrendRecord
	for rows.Next() {
		var t store.TrendRecord
		var evidenceJSON string
		if err := rows.Scan(&t.Text, &t.Support, &evidenceJSON); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(evidenceJSON), &t.Evidence); err != nil {
			return nil, err
		}
		trends = append(trends, t)
	}
	return trends, rows.Err()
}

// ListRuns returns the most recent runs first; a non-positive limit returns
// every run
func (s *sqliteStore) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	query := `SELECT id FROM runs ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	runs := make([]store.Run, 0, len(ids))
	for _, id := range ids {
		r, err := s.GetRun(ctx, id)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, nil
}

// GetEmbedding returns a cached vector. Entries are keyed by the xxhash of
// the text; the stored text guards against collisions.
func (s *sqliteStore) GetEmbedding(ctx context.Context, model, text string) ([]float32, bool, error) {
	var stored string
	var blob []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT text, vec FROM embeddings WHERE model = ? AND hash = ?`,
		model, textHash(text),
	).Scan(&stored, &blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if stored != text {
		return nil, false, nil
	}
	vec, err := decodeVector(blob)
	if err != nil {
		return nil, false, err
	}
	return vec, true, nil
}

// PutEmbedding caches a vector
func (s *sqliteStore) PutEmbedding(ctx context.Context, model, text string, vec []float32) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO embeddings (model, hash, text, vec) VALUES (?, ?, ?, ?)
ON CONFLICT(model, hash) DO UPDATE SET text=excluded.text, vec=excluded.vec`,
		model, textHash(text), text, encodeVector(vec))
	return err
}

func textHash(text string) int64 {
	return int64(xxhash.Sum64String(text))
}

func encodeVector(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	return buf
}

func decodeVector(buf []byte) ([]float32, error) {
	if len(buf)%4 != 0 {
		return nil, fmt.Errorf("embedding blob has %d bytes, not a multiple of 4", len(buf))
	}
	vec := make([]float32, len(buf)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:]))
	}
	return vec, nil
}
