// Package sheet computes the layout of a printable workout log sheet.
//
// # Overview
//
// A log sheet is one table per workout: every training day contributes a
// three-row header (title, date labels, column captions) followed by one row
// per exercise, and every row ends in a block of blank "weight" columns that
// are filled in by hand, one column per session.
//
// The package turns a [workout.Workout] into three plain values:
//
//   - [Grid]: the cell text, row-major, in reading order
//   - []Directive: style effects addressed by grid coordinates
//   - column widths in centimetres, [Auto] for auto-sized columns
//
// It does no drawing. Sinks in the sink subpackage paint a [Layout] as PDF,
// HTML, XLSX, JSON or terminal text.
//
// # Stages
//
// [Build] walks the workout once and records [Markers] while emitting rows:
// where each day starts and ends, which rows belong to each set, and the
// exercise rows of each day. [Compile] turns markers into directives without
// looking at cell text. [ColumnWidths] depends on [Options] alone. [Compute]
// runs all three.
//
// # Directives
//
// A [Directive] pairs a [Region] with one [Effect]: [Fill], [Border], [Span],
// [Align], [Font] or [Padding]. Negative end coordinates count from the end,
// so [Last] means the last row or column. Directives are applied in order and
// later ones win where regions overlap; [Compile] emits the table baseline
// first, then day headers, then set merges, then row banding. [Resolve] folds
// a directive list into per-cell styles, border lines and merged rectangles
// so that sinks do not each reimplement the override rule.
//
// # Empty workouts
//
// A workout without days yields an empty grid and no directives. Callers
// print [Labels.Empty] instead of a table.
//
// # Concurrency
//
// All functions are pure. A workout must not be modified while it is being
// laid out.
package sheet
