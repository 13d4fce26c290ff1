package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event as a debug line. It implements all three hook
// interfaces; the CLI registers it in verbose mode.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to l, or to the default logger when l
// is nil.
func NewLogHooks(l *log.Logger) *LogHooks {
	if l == nil {
		l = log.Default()
	}
	return &LogHooks{logger: l.WithPrefix("hooks")}
}

// Register installs h for pipeline, cache and HTTP events.
func (h *LogHooks) Register() {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, workoutID string, days int) {
	h.logger.Debug("layout start", "workout", workoutID, "days", days)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, workoutID string, rows int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("layout failed", "workout", workoutID, "duration", d, "err", err)
		return
	}
	h.logger.Debug("layout done", "workout", workoutID, "rows", rows, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, workoutID, format string) {
	h.logger.Debug("render start", "workout", workoutID, "format", format)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, workoutID, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "workout", workoutID, "format", format, "duration", d, "err", err)
		return
	}
	h.logger.Debug("render done", "workout", workoutID, "format", format, "bytes", size, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, format string) {
	h.logger.Debug("cache hit", "format", format)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, format string) {
	h.logger.Debug("cache miss", "format", format)
}

func (h *LogHooks) OnCacheSet(_ context.Context, format string, size int) {
	h.logger.Debug("cache set", "format", format, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "path", path, "status", status, "duration", d)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
