package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/logsheet/pkg/errors"
	"github.com/matzehuels/logsheet/pkg/workout"
)

func testWorkout(owner, comment string, created time.Time) *workout.Workout {
	return &workout.Workout{
		ID:        uuid.New(),
		Owner:     owner,
		Comment:   comment,
		CreatedAt: created,
		Days: []workout.Day{{
			ID:          1,
			Description: "Legs",
			Weekdays:    []workout.Weekday{workout.Weekday(time.Monday)},
			Sets: []workout.Set{{
				ID:   1,
				Sets: 3,
				Exercises: []workout.Exercise{{
					ID:       1,
					Name:     "Squat",
					Settings: []workout.Setting{{SetID: 1, Reps: workout.Reps(8)}},
				}},
			}},
		}},
	}
}

// testStore runs the behaviour every backend shares.
func testStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	t0 := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

	older := testWorkout("anna", "older", t0)
	newer := testWorkout("anna", "newer", t0.Add(time.Hour))
	foreign := testWorkout("ben", "foreign", t0)
	for _, w := range []*workout.Workout{older, newer, foreign} {
		if err := s.Put(ctx, w); err != nil {
			t.Fatalf("Put(%s): %v", w.Comment, err)
		}
	}

	t.Run("get", func(t *testing.T) {
		got, err := s.Get(ctx, "anna", older.ID)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got.ID != older.ID || got.Comment != "older" {
			t.Errorf("Get = %s %q, want %s %q", got.ID, got.Comment, older.ID, "older")
		}
		if len(got.Days) != 1 || got.Days[0].Sets[0].Exercises[0].Name != "Squat" {
			t.Errorf("Get returned days %+v", got.Days)
		}
		if !got.CreatedAt.Equal(t0) {
			t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, t0)
		}
	})

	t.Run("missing", func(t *testing.T) {
		_, err := s.Get(ctx, "anna", uuid.New())
		if !errors.Is(err, errors.ErrCodeWorkoutNotFound) {
			t.Errorf("Get(missing) error = %v, want %s", err, errors.ErrCodeWorkoutNotFound)
		}
	})

	t.Run("foreign owner", func(t *testing.T) {
		_, err := s.Get(ctx, "anna", foreign.ID)
		if !errors.Is(err, errors.ErrCodeWorkoutNotFound) {
			t.Errorf("Get(foreign) error = %v, want %s", err, errors.ErrCodeWorkoutNotFound)
		}
	})

	t.Run("list", func(t *testing.T) {
		list, err := s.List(ctx, "anna")
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(list) != 2 {
			t.Fatalf("List returned %d workouts, want 2", len(list))
		}
		if list[0].ID != newer.ID || list[1].ID != older.ID {
			t.Errorf("List order = [%s %s], want newest first", list[0].Comment, list[1].Comment)
		}
		if list[0].Days != 1 {
			t.Errorf("Summary.Days = %d, want 1", list[0].Days)
		}

		empty, err := s.List(ctx, "nobody")
		if err != nil {
			t.Fatalf("List(nobody): %v", err)
		}
		if empty == nil || len(empty) != 0 {
			t.Errorf("List(nobody) = %v, want empty non-nil slice", empty)
		}
	})

	t.Run("replace", func(t *testing.T) {
		older.Comment = "edited"
		if err := s.Put(ctx, older); err != nil {
			t.Fatalf("Put: %v", err)
		}
		got, err := s.Get(ctx, "anna", older.ID)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got.Comment != "edited" {
			t.Errorf("Comment = %q, want %q", got.Comment, "edited")
		}
	})

	t.Run("other owner keeps id", func(t *testing.T) {
		clash := testWorkout("ben", "clash", t0)
		clash.ID = older.ID
		err := s.Put(ctx, clash)
		if !errors.Is(err, errors.ErrCodeWorkoutTaken) {
			t.Errorf("Put(clash) error = %v, want %s", err, errors.ErrCodeWorkoutTaken)
		}
		got, err := s.Get(ctx, "anna", older.ID)
		if err != nil {
			t.Fatalf("Get after clash: %v", err)
		}
		if got.Owner != "anna" || got.Comment != "edited" {
			t.Errorf("Get after clash = %s %q, want anna %q", got.Owner, got.Comment, "edited")
		}
		if _, err := s.Get(ctx, "ben", older.ID); !errors.Is(err, errors.ErrCodeWorkoutNotFound) {
			t.Errorf("Get(ben) error = %v, want %s", err, errors.ErrCodeWorkoutNotFound)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := s.Delete(ctx, "anna", foreign.ID); !errors.Is(err, errors.ErrCodeWorkoutNotFound) {
			t.Errorf("Delete(foreign) error = %v, want %s", err, errors.ErrCodeWorkoutNotFound)
		}
		if err := s.Delete(ctx, "anna", newer.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := s.Get(ctx, "anna", newer.ID); !errors.IsNotFound(err) {
			t.Errorf("Get after Delete error = %v, want not found", err)
		}
		if _, err := s.Get(ctx, "ben", foreign.ID); err != nil {
			t.Errorf("foreign workout should survive: %v", err)
		}
	})
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	testStore(t, s)
}

func TestFileStoreSkipsCorruptFiles(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := s.Put(ctx, testWorkout("anna", "ok", time.Now())); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(s.Path(), "broken.json"), []byte("{"), 0o600); err != nil {
		t.Fatal(err)
	}

	list, err := s.List(ctx, "anna")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("List returned %d workouts, want 1", len(list))
	}
}

func TestSQLiteStore(t *testing.T) {
	s, err := NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "db", "logsheet.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	testStore(t, s)
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("LOGSHEET_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("LOGSHEET_TEST_POSTGRES_DSN not set, skipping postgres test")
	}
	ctx := context.Background()
	s, err := NewPostgresStore(ctx, dsn)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if _, err := s.Pool.Exec(ctx, `DELETE FROM workouts WHERE owner IN ('anna', 'ben')`); err != nil {
		t.Fatal(err)
	}
	testStore(t, s)
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("LOGSHEET_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("LOGSHEET_TEST_MONGO_URI not set, skipping mongo test")
	}
	s, err := NewMongoStore(context.Background(), uri, "logsheet_test_"+uuid.NewString()[:8])
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		_ = s.coll.Database().Drop(context.Background())
		s.Close()
	}()
	testStore(t, s)
}

func TestPutDefaults(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2024, 3, 5, 10, 30, 15, 999, time.UTC)
	s.now = func() time.Time { return now }

	w := testWorkout("", "", time.Time{})
	w.ID = uuid.Nil
	if err := s.Put(context.Background(), w); err != nil {
		t.Fatal(err)
	}
	if w.ID == uuid.Nil {
		t.Error("Put should assign an id")
	}
	if w.Owner != LocalOwner {
		t.Errorf("Owner = %q, want %q", w.Owner, LocalOwner)
	}
	if want := now.Truncate(time.Second); !w.CreatedAt.Equal(want) {
		t.Errorf("CreatedAt = %v, want %v", w.CreatedAt, want)
	}
}

func TestPutRejectsInvalidWorkout(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	w := testWorkout("anna", "", time.Now())
	w.Days[0].Sets[0].Sets = -1
	if err := s.Put(context.Background(), w); !errors.Is(err, errors.ErrCodeInvalidWorkout) {
		t.Errorf("Put error = %v, want %s", err, errors.ErrCodeInvalidWorkout)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		name    string
		cfg     Config
		wantErr errors.Code
	}{
		{"file", Config{Driver: "file", DSN: filepath.Join(dir, "files")}, ""},
		{"default driver", Config{DSN: filepath.Join(dir, "default")}, ""},
		{"sqlite", Config{Driver: "SQLite", DSN: filepath.Join(dir, "s.db")}, ""},
		{"unknown", Config{Driver: "mysql"}, errors.ErrCodeUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(ctx, tt.cfg)
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Open error = %v, want %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			s.Close()
		})
	}
}

func TestMigrateURL(t *testing.T) {
	tests := []struct{ in, want string }{
		{"postgres://u:p@db:5432/logsheet?sslmode=disable", "pgx5://u:p@db:5432/logsheet?sslmode=disable"},
		{"postgresql://db/logsheet", "pgx5://db/logsheet"},
		{"pgx5://db/logsheet", "pgx5://db/logsheet"},
	}
	for _, tt := range tests {
		if got := migrateURL(tt.in); got != tt.want {
			t.Errorf("migrateURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
