package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/logsheet/pkg/cache"
	"github.com/matzehuels/logsheet/pkg/observability"
	"github.com/matzehuels/logsheet/pkg/sheet"
	"github.com/matzehuels/logsheet/pkg/workout"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; multiple
// goroutines can share one with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil keyer selects the default keyer, a nil
// cache disables caching.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute lays out w and renders every requested format.
func (r *Runner) Execute(ctx context.Context, w *workout.Workout, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	tr := opts.Translator()
	so, err := opts.SheetOptions(tr.Labels())
	if err != nil {
		return nil, err
	}
	id := w.ID.String()

	// Stage 1: Layout
	layoutStart := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, id, len(w.Days))
	layout, err := sheet.Compute(w, so)
	observability.Pipeline().OnLayoutComplete(ctx, id, layout.Grid.RowCount(), time.Since(layoutStart), err)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}

	result := &Result{
		WorkoutHash: hashWorkout(w),
		Layout:      layout,
		Document:    NewDocument(layout, w, tr, opts),
		Artifacts:   make(map[string][]byte, len(opts.Formats)),
	}
	result.Stats.Days = len(w.Days)
	result.Stats.Rows = layout.Grid.RowCount()
	result.Stats.LayoutTime = time.Since(layoutStart)

	logger.Info("computed layout",
		"workout", id,
		"days", result.Stats.Days,
		"rows", result.Stats.Rows,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	for _, format := range opts.Formats {
		data, hit, err := r.render(ctx, result, w, format, so, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		result.Artifacts[format] = data
		if hit {
			result.CacheInfo.Hits = append(result.CacheInfo.Hits, format)
		}
	}
	result.CacheInfo.RenderHit = len(result.CacheInfo.Hits) == len(opts.Formats)
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", result.CacheInfo.Hits,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// render returns one artifact, from the cache when possible.
func (r *Runner) render(ctx context.Context, res *Result, w *workout.Workout, format string, so sheet.Options, opts Options) ([]byte, bool, error) {
	key := r.Keyer.ArtifactKey(res.WorkoutHash, opts.ArtifactKeyOpts(format, so))

	// Workouts without a creation time carry today's date in the footer, so
	// their artifacts change daily and are not cached.
	cacheable := !w.CreatedAt.IsZero()

	if cacheable && !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			opts.Logger.Warn("cache read failed", "format", format, "err", err)
		} else if hit {
			observability.Cache().OnCacheHit(ctx, format)
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, format)
	}

	start := time.Now()
	id := w.ID.String()
	observability.Pipeline().OnRenderStart(ctx, id, format)
	data, err := Render(res.Document, format, w.CreatedAt, opts)
	observability.Pipeline().OnRenderComplete(ctx, id, format, len(data), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}
	opts.Logger.Debug("rendered sheet", "format", format, "bytes", len(data))

	if cacheable {
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, format, len(data))
		}
	}
	return data, false, nil
}

// Layout computes only the layout of w, for callers that render themselves.
func (r *Runner) Layout(w *workout.Workout, opts Options) (sheet.Layout, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return sheet.Layout{}, err
	}
	so, err := opts.SheetOptions(opts.Translator().Labels())
	if err != nil {
		return sheet.Layout{}, err
	}
	return sheet.Compute(w, so)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// hashWorkout hashes the document content, ignoring the owner so that
// identical workouts of different users share cache entries.
func hashWorkout(w *workout.Workout) string {
	c := *w
	c.Owner = ""
	data, err := workout.Encode(&c, workout.FormatJSON)
	if err != nil {
		return cache.HashJSON(c)
	}
	return cache.Hash(data)
}
