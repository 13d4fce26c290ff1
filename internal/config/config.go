// Package config loads the logsheet configuration file.
//
// The file is TOML, read from $XDG_CONFIG_HOME/logsheet/config.toml (or
// ~/.config/logsheet/config.toml) unless --config names another. A missing
// default file is not an error; every setting has a default. Environment
// variables prefixed LOGSHEET_ override the file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/logsheet/pkg/cache"
	"github.com/matzehuels/logsheet/pkg/pipeline"
	"github.com/matzehuels/logsheet/pkg/store"
)

const appName = "logsheet"

// Cache drivers.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

type Config struct {
	Sheet     SheetConfig     `toml:"sheet"`
	Server    ServerConfig    `toml:"server"`
	Tailscale TailscaleConfig `toml:"tailscale"`
	Store     StoreConfig     `toml:"store"`
	Cache     CacheConfig     `toml:"cache"`
}

// SheetConfig holds the rendering defaults. Zero values fall through to the
// pipeline defaults.
type SheetConfig struct {
	Formats           []string `toml:"formats"`
	Language          string   `toml:"language"`
	Username          string   `toml:"username"`
	WeightColumns     int      `toml:"weight_columns"`
	FirstWeightColumn int      `toml:"first_weight_column"`
	HeaderColor       string   `toml:"header_color"`
	BandingColor      string   `toml:"banding_color"`
	InfinityGlyph     string   `toml:"infinity_glyph"`
	FontFamily        string   `toml:"font_family"`
	FontPath          string   `toml:"font_path"`
}

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
	// JWTSecret enables bearer authentication. Without it every request
	// acts as the local user.
	JWTSecret string `toml:"jwt_secret"`
}

type TailscaleConfig struct {
	Enabled  bool   `toml:"enabled"`
	Hostname string `toml:"hostname"`
	StateDir string `toml:"state_dir"`
}

type StoreConfig struct {
	Driver   string `toml:"driver"`
	DSN      string `toml:"dsn"`
	Database string `toml:"database"`
}

type CacheConfig struct {
	Driver        string `toml:"driver"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	Prefix        string `toml:"prefix"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Host: "127.0.0.1", Port: 8080},
		Tailscale: TailscaleConfig{
			Hostname: appName,
			StateDir: filepath.Join(dataDir(), "tsnet"),
		},
		Store: StoreConfig{Driver: store.DriverSQLite},
		Cache: CacheConfig{Driver: CacheFile, Prefix: appName + ":"},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.toml")
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

// dataDir is where stores and tailscale state live by default.
func dataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return appName
	}
	return filepath.Join(home, ".local", "share", appName)
}

// defaultDSN returns the local path for drivers that need no server, and
// "" for the rest.
func defaultDSN(driver string) string {
	switch driver {
	case store.DriverSQLite:
		return filepath.Join(dataDir(), "logsheet.db")
	case store.DriverFile:
		return filepath.Join(dataDir(), "workouts")
	}
	return ""
}

// Load reads the config at path, then applies environment overrides and
// validates. An empty path reads [DefaultPath] and tolerates its absence;
// an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	_, err := toml.DecodeFile(path, cfg)
	switch {
	case err == nil:
	case os.IsNotExist(err) && !explicit:
	case os.IsNotExist(err):
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides reads LOGSHEET_<SECTION>_<KEY> variables:
//
//	LOGSHEET_SHEET_LANGUAGE, LOGSHEET_SHEET_USERNAME,
//	LOGSHEET_SERVER_HOST, LOGSHEET_SERVER_PORT, LOGSHEET_JWT_SECRET,
//	LOGSHEET_TAILSCALE_ENABLED, LOGSHEET_TAILSCALE_HOSTNAME,
//	LOGSHEET_STORE_DRIVER, LOGSHEET_STORE_DSN, LOGSHEET_STORE_DATABASE,
//	LOGSHEET_CACHE_DRIVER, LOGSHEET_CACHE_DIR, LOGSHEET_REDIS_ADDR,
//	LOGSHEET_REDIS_PASSWORD, LOGSHEET_REDIS_DB
func applyEnvOverrides(cfg *Config) {
	str := map[string]*string{
		"LOGSHEET_SHEET_LANGUAGE":     &cfg.Sheet.Language,
		"LOGSHEET_SHEET_USERNAME":     &cfg.Sheet.Username,
		"LOGSHEET_SERVER_HOST":        &cfg.Server.Host,
		"LOGSHEET_JWT_SECRET":         &cfg.Server.JWTSecret,
		"LOGSHEET_TAILSCALE_HOSTNAME": &cfg.Tailscale.Hostname,
		"LOGSHEET_STORE_DRIVER":       &cfg.Store.Driver,
		"LOGSHEET_STORE_DSN":          &cfg.Store.DSN,
		"LOGSHEET_STORE_DATABASE":     &cfg.Store.Database,
		"LOGSHEET_CACHE_DRIVER":       &cfg.Cache.Driver,
		"LOGSHEET_CACHE_DIR":          &cfg.Cache.Dir,
		"LOGSHEET_REDIS_ADDR":         &cfg.Cache.RedisAddr,
		"LOGSHEET_REDIS_PASSWORD":     &cfg.Cache.RedisPassword,
	}
	for name, dst := range str {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}

	if v := os.Getenv("LOGSHEET_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("LOGSHEET_REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.Cache.RedisDB = db
		}
	}
	if v := os.Getenv("LOGSHEET_TAILSCALE_ENABLED"); v != "" {
		if on, err := strconv.ParseBool(v); err == nil {
			cfg.Tailscale.Enabled = on
		}
	}
	// A Redis address alone is enough to select the Redis cache.
	if os.Getenv("LOGSHEET_REDIS_ADDR") != "" && os.Getenv("LOGSHEET_CACHE_DRIVER") == "" {
		cfg.Cache.Driver = CacheRedis
	}
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}

	c.Store.Driver = strings.ToLower(c.Store.Driver)
	if !slices.Contains(store.Drivers, c.Store.Driver) {
		return fmt.Errorf("store.driver must be one of %s, got %q", strings.Join(store.Drivers, ", "), c.Store.Driver)
	}
	if c.Store.DSN == "" {
		c.Store.DSN = defaultDSN(c.Store.Driver)
	}
	if c.Store.Driver != store.DriverFile && c.Store.DSN == "" {
		return fmt.Errorf("store.dsn is required for the %s driver", c.Store.Driver)
	}

	c.Cache.Driver = strings.ToLower(c.Cache.Driver)
	switch c.Cache.Driver {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("cache.redis_addr is required for the redis cache")
		}
	default:
		return fmt.Errorf("cache.driver must be one of file, redis, none, got %q", c.Cache.Driver)
	}

	opts := c.PipelineOptions()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return fmt.Errorf("sheet: %w", err)
	}
	return nil
}

// PipelineOptions returns the [sheet] section as pipeline options.
func (c *Config) PipelineOptions() pipeline.Options {
	s := c.Sheet
	return pipeline.Options{
		Formats:           slices.Clone(s.Formats),
		WeightColumns:     s.WeightColumns,
		FirstWeightColumn: s.FirstWeightColumn,
		HeaderColor:       s.HeaderColor,
		BandingColor:      s.BandingColor,
		InfinityGlyph:     s.InfinityGlyph,
		Language:          s.Language,
		Username:          s.Username,
		FontFamily:        s.FontFamily,
		FontPath:          s.FontPath,
	}
}

// StoreOptions returns the [store] section for [store.Open].
func (c *Config) StoreOptions() store.Config {
	return store.Config{Driver: c.Store.Driver, DSN: c.Store.DSN, Database: c.Store.Database}
}

// RedisConfig returns the Redis settings of the [cache] section. Keys are
// namespaced by [Config.Keyer], not by the client.
func (c *Config) RedisConfig() cache.RedisConfig {
	return cache.RedisConfig{
		Addr:     c.Cache.RedisAddr,
		Password: c.Cache.RedisPassword,
		DB:       c.Cache.RedisDB,
	}
}

// Keyer returns the artifact keyer for the configured cache prefix.
func (c *Config) Keyer() cache.Keyer {
	return cache.NewScopedKeyer(nil, c.Cache.Prefix)
}

// Addr is the host:port the HTTP server listens on without tailscale.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
