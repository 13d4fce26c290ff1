// Package workout defines the training plan model rendered into log sheets.
//
// A [Workout] is an ordered list of [Day]s; a day holds [Set]s; a set holds
// [Exercise]s and a repetition multiplier; an exercise carries [Setting]s,
// each scoped to one set through its SetID.
//
// Documents are read from JSON, TOML or YAML with [Load] or [Decode], which
// also assign missing identifiers ([Workout.Normalize]) and reject shapes the
// layout cannot represent ([Workout.Validate]). A minimal TOML document:
//
//	comment = "Spring block"
//
//	[[days]]
//	description = "Legs"
//	weekdays = ["monday", "thursday"]
//
//	[[days.sets]]
//	sets = 4
//
//	[[days.sets.exercises]]
//	name = "Squat"
//	settings = [{ reps = 8 }]
package workout
