package workout

import (
	"github.com/matzehuels/logsheet/pkg/errors"
)

// Normalize fills in identifiers a hand-written document may leave out.
//
// Days and sets without an id get the next free id of their kind. Settings
// without a set id belong to the set the exercise is listed in. Normalize is
// idempotent and never changes ids that are already set.
func (w *Workout) Normalize() {
	nextDay, nextSet := 1, 1
	for _, d := range w.Days {
		if d.ID >= nextDay {
			nextDay = d.ID + 1
		}
		for _, s := range d.Sets {
			if s.ID >= nextSet {
				nextSet = s.ID + 1
			}
		}
	}

	for i := range w.Days {
		d := &w.Days[i]
		if d.ID == 0 {
			d.ID = nextDay
			nextDay++
		}
		for j := range d.Sets {
			s := &d.Sets[j]
			if s.ID == 0 {
				s.ID = nextSet
				nextSet++
			}
			for k := range s.Exercises {
				e := &s.Exercises[k]
				for l := range e.Settings {
					if e.Settings[l].SetID == 0 {
						e.Settings[l].SetID = s.ID
					}
				}
			}
		}
	}
}

// Validate rejects documents the sheet layout cannot represent.
//
// Repetition counts are deliberately not checked here: negative or missing
// reps are dropped when the sheet is built.
func (w *Workout) Validate() error {
	if err := errors.ValidateText("comment", w.Comment); err != nil {
		return err
	}

	days := make(map[int]bool, len(w.Days))
	sets := make(map[int]bool)
	for i, d := range w.Days {
		if d.ID != 0 && days[d.ID] {
			return errors.New(errors.ErrCodeInvalidWorkout, "day %d: duplicate id %d", i+1, d.ID)
		}
		days[d.ID] = true

		if err := errors.ValidateText("day description", d.Description); err != nil {
			return err
		}
		for _, wd := range d.Weekdays {
			if wd < 0 || wd > 6 {
				return errors.New(errors.ErrCodeInvalidWorkout, "day %d: invalid weekday %d", i+1, int(wd))
			}
		}

		for j, s := range d.Sets {
			if s.ID != 0 && sets[s.ID] {
				return errors.New(errors.ErrCodeInvalidWorkout, "day %d set %d: duplicate id %d", i+1, j+1, s.ID)
			}
			sets[s.ID] = true

			if s.Sets < 0 {
				return errors.New(errors.ErrCodeInvalidWorkout, "day %d set %d: sets must not be negative", i+1, j+1)
			}
			for k, e := range s.Exercises {
				if e.Name == "" {
					return errors.New(errors.ErrCodeInvalidWorkout, "day %d set %d exercise %d: name is required", i+1, j+1, k+1)
				}
				if err := errors.ValidateText("exercise name", e.Name); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
