package store

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matzehuels/logsheet/pkg/workout"
)

//go:embed migrations/*.sql
var migrations embed.FS

// PostgresStore keeps workouts in PostgreSQL as JSONB documents.
type PostgresStore struct {
	Pool *pgxpool.Pool
	now  func() time.Time
}

// NewPostgresStore connects a pool, waiting briefly for a server that is
// still starting, then applies pending migrations. dsn must be a postgres://
// URL.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}
	err = retry(ctx, pingAttempts, pingDelay, func(ctx context.Context) error {
		return transient(pool.Ping(ctx))
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	if err := RunMigrations(dsn); err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresStore{Pool: pool, now: time.Now}, nil
}

// RunMigrations applies the embedded schema migrations to dsn.
func RunMigrations(dsn string) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, migrateURL(dsn))
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// migrateURL rewrites the scheme to the one the pgx migrate driver registers.
func migrateURL(dsn string) string {
	for _, scheme := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, scheme); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

func (s *PostgresStore) Get(ctx context.Context, owner string, id uuid.UUID) (*workout.Workout, error) {
	var doc []byte
	err := s.Pool.QueryRow(ctx,
		`SELECT document FROM workouts WHERE id = $1 AND owner = $2`,
		id, owner,
	).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying workout: %w", err)
	}
	return decode(doc)
}

func (s *PostgresStore) List(ctx context.Context, owner string) ([]workout.Summary, error) {
	rows, err := s.Pool.Query(ctx,
		`SELECT document FROM workouts WHERE owner = $1 ORDER BY created_at DESC`, owner)
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

func (s *PostgresStore) Put(ctx context.Context, w *workout.Workout) error {
	doc, err := prepare(w, s.now())
	if err != nil {
		return err
	}
	tag, err := s.Pool.Exec(ctx,
		`INSERT INTO workouts (id, owner, created_at, document)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET created_at = EXCLUDED.created_at,
		   document = EXCLUDED.document
		 WHERE workouts.owner = EXCLUDED.owner`,
		w.ID, w.Owner, w.CreatedAt, doc)
	if err != nil {
		return fmt.Errorf("inserting workout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return taken(w.ID)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, owner string, id uuid.UUID) error {
	tag, err := s.Pool.Exec(ctx, `DELETE FROM workouts WHERE id = $1 AND owner = $2`, id, owner)
	if err != nil {
		return fmt.Errorf("deleting workout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound(id)
	}
	return nil
}

// Close closes the pool.
func (s *PostgresStore) Close() error {
	s.Pool.Close()
	return nil
}

var _ Store = (*PostgresStore)(nil)
