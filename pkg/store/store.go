// Package store persists workouts for the server, the MCP tools and the
// list and import commands.
//
// Every backend implements [Store]:
//
//   - file: one JSON document per workout in a directory
//   - sqlite: a single database file through modernc.org/sqlite
//   - postgres: a pgx pool, schema managed by golang-migrate
//   - mongo: one collection in a MongoDB database
//
// Workouts belong to an owner. Reads are scoped to the caller, and a workout
// owned by someone else is reported exactly like a missing one, with
// [errors.ErrCodeWorkoutNotFound].
package store

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/logsheet/pkg/errors"
	"github.com/matzehuels/logsheet/pkg/workout"
)

// LocalOwner owns everything created without an authenticated identity.
const LocalOwner = "local"

// Store is the interface for workout storage backends. Implementations are
// safe for concurrent use.
type Store interface {
	// Get returns the workout with id owned by owner.
	Get(ctx context.Context, owner string, id uuid.UUID) (*workout.Workout, error)

	// List returns summaries of owner's workouts, newest first.
	List(ctx context.Context, owner string) ([]workout.Summary, error)

	// Put inserts or replaces w. A zero CreatedAt is set to the current time
	// and an empty Owner to [LocalOwner]. Only the owner may replace a
	// workout: when w.ID is stored under another owner nothing is written and
	// the error carries [errors.ErrCodeWorkoutTaken].
	Put(ctx context.Context, w *workout.Workout) error

	// Delete removes the workout with id owned by owner.
	Delete(ctx context.Context, owner string, id uuid.UUID) error

	Close() error
}

// Drivers accepted by [Open].
const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Drivers lists the supported drivers.
var Drivers = []string{DriverFile, DriverSQLite, DriverPostgres, DriverMongo}

// Config selects and addresses a backend.
type Config struct {
	Driver string
	// DSN is a directory for file, a database path for sqlite, a connection
	// URL for postgres and mongo.
	DSN string
	// Database names the MongoDB database. Defaults to "logsheet".
	Database string
}

// Open connects to the configured backend.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch strings.ToLower(cfg.Driver) {
	case DriverFile, "":
		return NewFileStore(cfg.DSN)
	case DriverSQLite:
		return NewSQLiteStore(ctx, cfg.DSN)
	case DriverPostgres, "postgresql":
		return NewPostgresStore(ctx, cfg.DSN)
	case DriverMongo, "mongodb":
		return NewMongoStore(ctx, cfg.DSN, cfg.Database)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unknown store driver %q (want one of %s)", cfg.Driver, strings.Join(Drivers, ", "))
	}
}

// prepare fills the defaults Put applies and encodes the document.
func prepare(w *workout.Workout, now time.Time) ([]byte, error) {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	if w.Owner == "" {
		w.Owner = LocalOwner
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = now.UTC().Truncate(time.Second)
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return workout.Encode(w, workout.FormatJSON)
}

// decode parses a stored document.
func decode(data []byte) (*workout.Workout, error) {
	w, err := workout.Decode(data, workout.FormatJSON)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode stored workout")
	}
	return w, nil
}

func notFound(id uuid.UUID) error {
	return errors.New(errors.ErrCodeWorkoutNotFound, "workout %s not found", id)
}

func taken(id uuid.UUID) error {
	return errors.New(errors.ErrCodeWorkoutTaken, "workout %s belongs to another owner", id)
}

// sortSummaries orders newest first, then by id for equal timestamps.
func sortSummaries(s []workout.Summary) {
	slices.SortFunc(s, func(a, b workout.Summary) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
}
