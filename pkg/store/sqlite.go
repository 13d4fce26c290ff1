package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/logsheet/pkg/workout"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps workouts in a single SQLite file.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore opens (or creates) the database at path and its table.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite store: empty database path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating store dir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite store: %w", err)
	}
	// SQLite serializes writers; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	_, err = db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS workouts (
		id         TEXT PRIMARY KEY,
		owner      TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		document   BLOB NOT NULL
	)`)
	if err == nil {
		_, err = db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS workouts_owner ON workouts (owner, created_at)`)
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating workouts table: %w", err)
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, owner string, id uuid.UUID) (*workout.Workout, error) {
	var doc []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM workouts WHERE id = ? AND owner = ?`,
		id.String(), owner,
	).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying workout: %w", err)
	}
	return decode(doc)
}

func (s *SQLiteStore) List(ctx context.Context, owner string) ([]workout.Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT document FROM workouts WHERE owner = ? ORDER BY created_at DESC`, owner)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	out := []workout.Summary{}
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		w, err := decode(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, w.Summarize())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating workouts: %w", err)
	}
	sortSummaries(out)
	return out, nil
}

func (s *SQLiteStore) Put(ctx context.Context, w *workout.Workout) error {
	doc, err := prepare(w, s.now())
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO workouts (id, owner, created_at, document) VALUES (?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET created_at = excluded.created_at, document = excluded.document
		 WHERE workouts.owner = excluded.owner`,
		w.ID.String(), w.Owner, w.CreatedAt, doc,
	)
	if err != nil {
		return fmt.Errorf("inserting workout: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return taken(w.ID)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, owner string, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM workouts WHERE id = ? AND owner = ?`, id.String(), owner)
	if err != nil {
		return fmt.Errorf("deleting workout: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound(id)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ Store = (*SQLiteStore)(nil)
