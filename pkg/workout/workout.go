package workout

import (
	"time"

	"github.com/google/uuid"
)

// RepsUnbounded is the sentinel repetition count meaning "as many as possible".
const RepsUnbounded = 99

// Workout is a training schedule: an ordered list of days.
type Workout struct {
	ID        uuid.UUID `json:"id" toml:"id" yaml:"id"`
	Owner     string    `json:"owner,omitempty" toml:"owner,omitempty" yaml:"owner,omitempty"`
	Comment   string    `json:"comment,omitempty" toml:"comment,omitempty" yaml:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at" toml:"created_at" yaml:"created_at"`
	Days      []Day     `json:"days" toml:"days" yaml:"days"`
}

// Day is one training day. Weekdays are the days of the week it is trained on.
type Day struct {
	ID          int       `json:"id,omitempty" toml:"id,omitempty" yaml:"id,omitempty"`
	Description string    `json:"description" toml:"description" yaml:"description"`
	Weekdays    []Weekday `json:"weekdays,omitempty" toml:"weekdays,omitempty" yaml:"weekdays,omitempty"`
	Sets        []Set     `json:"sets" toml:"sets" yaml:"sets"`
}

// Set groups exercises performed together. Sets is how often the group is repeated.
type Set struct {
	ID        int        `json:"id,omitempty" toml:"id,omitempty" yaml:"id,omitempty"`
	Sets      int        `json:"sets" toml:"sets" yaml:"sets"`
	Exercises []Exercise `json:"exercises" toml:"exercises" yaml:"exercises"`
}

// Exercise is a named movement. Its settings may belong to several sets, since
// the same exercise can be scheduled in more than one set; use [Exercise.SettingsFor].
type Exercise struct {
	ID       int       `json:"id,omitempty" toml:"id,omitempty" yaml:"id,omitempty"`
	Name     string    `json:"name" toml:"name" yaml:"name"`
	Settings []Setting `json:"settings,omitempty" toml:"settings,omitempty" yaml:"settings,omitempty"`
}

// Setting is a configured repetition count for one set-exercise pair.
// A nil Reps means the value was never entered.
type Setting struct {
	SetID int  `json:"set_id,omitempty" toml:"set_id,omitempty" yaml:"set_id,omitempty"`
	Reps  *int `json:"reps,omitempty" toml:"reps,omitempty" yaml:"reps,omitempty"`
}

// Valid reports whether the setting carries a usable repetition count.
func (s Setting) Valid() bool {
	return s.Reps != nil && *s.Reps >= 0
}

// Unbounded reports whether the setting uses the [RepsUnbounded] sentinel.
func (s Setting) Unbounded() bool {
	return s.Reps != nil && *s.Reps == RepsUnbounded
}

// SettingsFor returns the settings of e that belong to the set with the given id,
// in their original order.
func (e Exercise) SettingsFor(setID int) []Setting {
	var out []Setting
	for _, s := range e.Settings {
		if s.SetID == setID {
			out = append(out, s)
		}
	}
	return out
}

// Reps returns a pointer to n, for building settings in code.
func Reps(n int) *int { return &n }

// Summary is the listing view of a stored workout.
type Summary struct {
	ID        uuid.UUID `json:"id"`
	Owner     string    `json:"owner,omitempty"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Days      int       `json:"days"`
}

// Summarize returns the listing view of w.
func (w *Workout) Summarize() Summary {
	return Summary{
		ID:        w.ID,
		Owner:     w.Owner,
		Comment:   w.Comment,
		CreatedAt: w.CreatedAt,
		Days:      len(w.Days),
	}
}

// ExerciseCount returns the number of set-exercise pairs across all days.
func (w *Workout) ExerciseCount() int {
	n := 0
	for _, d := range w.Days {
		for _, s := range d.Sets {
			n += len(s.Exercises)
		}
	}
	return n
}

// Empty reports whether the workout has no days.
func (w *Workout) Empty() bool {
	return len(w.Days) == 0
}
