// Package cli implements the logsheet command-line interface.
//
// # Commands
//
//   - render: write log sheets for a workout file or a stored workout
//   - preview: page through a sheet in the terminal
//   - import, list: manage the workout store
//   - serve, mcp: expose the store over HTTP or the Model Context Protocol
//   - token: issue bearer tokens for the HTTP server
//   - cache: manage the artifact cache
//
// Settings come from the config file (--config) and LOGSHEET_ environment
// variables, see [config.Load]. All commands support --verbose (-v) for
// debug-level logging.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/logsheet/internal/config"
	"github.com/matzehuels/logsheet/pkg/cache"
	"github.com/matzehuels/logsheet/pkg/observability"
	"github.com/matzehuels/logsheet/pkg/pipeline"
	"github.com/matzehuels/logsheet/pkg/store"
)

const appName = "logsheet"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        *config.Config
}

// New creates a CLI that logs to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetVerbose switches to debug logging and reports pipeline, cache and HTTP
// events through the logger.
func (c *CLI) SetVerbose(verbose bool) {
	if !verbose {
		c.SetLogLevel(LogInfo)
		return
	}
	c.SetLogLevel(LogDebug)
	observability.NewLogHooks(c.Logger).Register()
}

// config loads the configuration once per invocation.
func (c *CLI) config() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	return cfg, nil
}

// newRunner creates a pipeline runner on the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	ch, err := c.newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, cfg.Keyer(), c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, cfg *config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Driver {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		return cache.NewRedisCache(ctx, cfg.RedisConfig())
	}
	dir := cfg.Cache.Dir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			c.Logger.Warn("no cache directory, caching disabled", "error", err)
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// openStore opens the configured workout store. The caller closes it.
func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("opening store", "driver", cfg.Store.Driver)
	return store.Open(ctx, cfg.StoreOptions())
}

// pipelineOptions returns the configured sheet defaults.
func (c *CLI) pipelineOptions() (pipeline.Options, error) {
	cfg, err := c.config()
	if err != nil {
		return pipeline.Options{}, err
	}
	opts := cfg.PipelineOptions()
	opts.Logger = c.Logger
	return opts, nil
}

// cacheDir returns the cache directory using XDG standard (~/.cache/logsheet/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// parseFormats splits a comma-separated --format value. Empty means the
// configured default.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
