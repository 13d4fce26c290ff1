// Package pkg provides the libraries behind logsheet.
//
// # Overview
//
// logsheet turns a workout plan into a printable log sheet: a table with one
// block per training day, one row per exercise and blank columns where the
// weights lifted are written in by hand. The pkg directory is organized into
// three areas:
//
//  1. Domain: [workout] (the plan model and its codecs) and [sheet] (grid,
//     style directives and column widths)
//  2. Output: [sheet/sink] (PDF, HTML, XLSX, JSON and text) and [i18n] (labels
//     and titles per language)
//  3. Infrastructure: [pipeline], [cache], [store], [observability],
//     [errors] and [buildinfo]
//
// # Architecture
//
// The data flow through logsheet:
//
//	Workout file (JSON, TOML, YAML) or stored workout
//	         ↓
//	    [workout] package (decode, normalize, validate)
//	         ↓
//	    [sheet] package (grid builder + style compiler + column widths)
//	         ↓
//	    [sheet/sink] package (render)
//	         ↓
//	    PDF/HTML/XLSX/JSON/TXT output
//
// # Quick Start
//
// Lay out a workout and render it as PDF:
//
//	import (
//	    "github.com/matzehuels/logsheet/pkg/sheet"
//	    "github.com/matzehuels/logsheet/pkg/sheet/sink"
//	    "github.com/matzehuels/logsheet/pkg/workout"
//	)
//
//	w, _ := workout.Load("plan.toml")
//	l, _ := sheet.Compute(w, sheet.DefaultOptions())
//	pdf, _ := sink.RenderPDF(sink.Document{Layout: l, Title: "Workout"})
//
// # Main Packages
//
// [workout] - Workouts, days, sets, exercises and settings. Files decode from
// JSON, TOML or YAML; documents without an id get one derived from their
// content.
//
// [sheet] - The layout engine. sheet.Build places labels in a rectangular
// grid and records where each day's rows landed, sheet.Compile turns those
// markers into ordered style directives, and sheet.ColumnWidths fixes the
// widths of the label and weight columns. sheet.Resolve folds directives
// into per-cell styles for renderers.
//
// [sheet/sink] - Renderers for a laid-out sink.Document.
//
// [pipeline] - Validate options, lay out, render and cache. Used by the CLI,
// the HTTP server and the MCP tools so all three produce identical sheets.
//
// [cache] - Artifact caches: null, file (CLI) and Redis (server).
//
// [store] - Workout persistence on files, SQLite, PostgreSQL or MongoDB.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/sheet/...     # Layout engine and renderers
//	go test -run Example ./...  # Examples only
//
// [workout]: https://pkg.go.dev/github.com/matzehuels/logsheet/pkg/workout
// [sheet]: https://pkg.go.dev/github.com/matzehuels/logsheet/pkg/sheet
// [sheet/sink]: https://pkg.go.dev/github.com/matzehuels/logsheet/pkg/sheet/sink
// [i18n]: https://pkg.go.dev/github.com/matzehuels/logsheet/pkg/i18n
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/logsheet/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/logsheet/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/logsheet/pkg/store
// [observability]: https://pkg.go.dev/github.com/matzehuels/logsheet/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/logsheet/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/logsheet/pkg/buildinfo
package pkg
