// Package config loads server settings in priority order:
//  1. Defaults
//  2. TOML file (path from TODOLISTS_CONFIG, skipped when unset)
//  3. Environment variables
//
// The storage backend is chosen here, once, before anything is wired.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"todolists/internal/database"
)

// Storage backends
const (
	BackendSession  = "session"
	BackendDatabase = "database"
)

// ConfigPathEnv names the variable holding the optional TOML file path
const ConfigPathEnv = "TODOLISTS_CONFIG"

// Config is the full server configuration
type Config struct {
	Server   ServerConfig    `toml:"server"`
	Storage  StorageConfig   `toml:"storage"`
	Database database.Config `toml:"database"`
	Session  SessionConfig   `toml:"session"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Port            string        `toml:"port"`
	GinMode         string        `toml:"gin_mode"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
}

// StorageConfig selects the persistence backend
type StorageConfig struct {
	Backend string `toml:"backend"`
}

// SessionConfig holds session cookie settings
type SessionConfig struct {
	CookieName string `toml:"cookie_name"`
	MaxAge     int    `toml:"max_age"` // seconds
	Secure     bool   `toml:"secure"`
}

// Default returns the configuration used when nothing else is set
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			GinMode:         "release",
			ShutdownTimeout: 10 * time.Second,
		},
		Storage: StorageConfig{
			Backend: BackendSession,
		},
		Database: database.DefaultConfig(),
		Session: SessionConfig{
			CookieName: "todolists_session",
			MaxAge:     30 * 24 * 60 * 60,
			Secure:     false,
		},
	}
}

// Load builds the configuration from defaults, the optional TOML file at path and
// the environment. An empty path falls back to TODOLISTS_CONFIG.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(ConfigPathEnv)
	}
	if path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	loadFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile decodes a TOML file over cfg
func loadFile(cfg *Config, path string) error {
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown config keys: %v", undecoded)
	}
	return nil
}

// loadFromEnv overrides cfg with environment variables
func loadFromEnv(cfg *Config) {
	cfg.Server.Port = GetEnv("PORT", cfg.Server.Port)
	cfg.Server.GinMode = GetEnv("GIN_MODE", cfg.Server.GinMode)
	cfg.Server.ShutdownTimeout = GetEnvDuration("SHUTDOWN_TIMEOUT", cfg.Server.ShutdownTimeout)

	cfg.Storage.Backend = GetEnv("STORAGE_BACKEND", cfg.Storage.Backend)

	db := &cfg.Database
	db.Driver = GetEnv("DB_DRIVER", db.Driver)
	db.Host = GetEnv("DB_HOST", db.Host)
	db.Port = GetEnv("DB_PORT", db.Port)
	db.User = GetEnv("DB_USER", db.User)
	db.Password = GetEnv("DB_PASSWORD", db.Password)
	db.Name = GetEnv("DB_NAME", db.Name)
	db.SSLMode = GetEnv("DB_SSL_MODE", db.SSLMode)
	db.DSN = GetEnv("DATABASE_URL", db.DSN)
	db.MaxOpenConns = GetEnvInt("DB_MAX_OPEN_CONNS", db.MaxOpenConns)
	db.MaxIdleConns = GetEnvInt("DB_MAX_IDLE_CONNS", db.MaxIdleConns)
	db.ConnMaxLifetime = GetEnvDuration("DB_CONN_MAX_LIFETIME", db.ConnMaxLifetime)
	db.PingTimeout = GetEnvDuration("DB_PING_TIMEOUT", db.PingTimeout)
	db.EnsureSchema = GetEnvBool("DB_ENSURE_SCHEMA", db.EnsureSchema)

	cfg.Session.CookieName = GetEnv("SESSION_COOKIE_NAME", cfg.Session.CookieName)
	cfg.Session.MaxAge = GetEnvInt("SESSION_MAX_AGE", cfg.Session.MaxAge)
	cfg.Session.Secure = GetEnvBool("SESSION_COOKIE_SECURE", cfg.Session.Secure)
}

// Validate rejects settings the server cannot start with
func (c *Config) Validate() error {
	var errs []error

	switch c.Storage.Backend {
	case BackendSession, BackendDatabase:
	default:
		errs = append(errs, fmt.Errorf("unknown storage backend %q (want %q or %q)",
			c.Storage.Backend, BackendSession, BackendDatabase))
	}

	if c.Storage.Backend == BackendDatabase {
		switch c.Database.Driver {
		case database.DriverPostgres, database.DriverSQLite, database.DriverMySQL:
		default:
			errs = append(errs, fmt.Errorf("unsupported database driver %q", c.Database.Driver))
		}
	}

	if c.Server.Port == "" {
		errs = append(errs, errors.New("server port must not be empty"))
	}
	if c.Session.CookieName == "" {
		errs = append(errs, errors.New("session cookie name must not be empty"))
	}

	return errors.Join(errs...)
}
