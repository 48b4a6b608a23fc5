package database

import (
	"context"
	"fmt"
	"net"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
)

// Config holds relational backend settings
type Config struct {
	Driver          string        `toml:"driver"`
	Host            string        `toml:"host"`
	Port            string        `toml:"port"`
	User            string        `toml:"user"`
	Password        string        `toml:"password"`
	Name            string        `toml:"name"`     // database name, or file path for sqlite
	SSLMode         string        `toml:"ssl_mode"` // postgres only
	DSN             string        `toml:"dsn"`      // overrides the individual fields when set
	MaxOpenConns    int           `toml:"max_open_conns"`
	MaxIdleConns    int           `toml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `toml:"conn_max_lifetime"`
	PingTimeout     time.Duration `toml:"ping_timeout"`
	EnsureSchema    bool          `toml:"ensure_schema"` // create lists/todos if missing
}

// DefaultConfig returns the settings used when nothing is configured
func DefaultConfig() Config {
	return Config{
		Driver:          DriverPostgres,
		Host:            "localhost",
		Port:            "5432",
		User:            "postgres",
		Password:        "postgres",
		Name:            "todos",
		SSLMode:         "disable",
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
		PingTimeout:     5 * time.Second,
		EnsureSchema:    true,
	}
}

// BuildDSN returns the driver-specific data source name
func BuildDSN(cfg Config) (string, error) {
	switch cfg.Driver {
	case DriverPostgres:
		if cfg.DSN != "" {
			return cfg.DSN, nil
		}
		return fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode,
		), nil

	case DriverMySQL:
		var mc *mysqldriver.Config
		if cfg.DSN != "" {
			parsed, err := mysqldriver.ParseDSN(cfg.DSN)
			if err != nil {
				return "", fmt.Errorf("invalid mysql dsn: %w", err)
			}
			mc = parsed
		} else {
			mc = mysqldriver.NewConfig()
			mc.User = cfg.User
			mc.Passwd = cfg.Password
			mc.Net = "tcp"
			mc.Addr = net.JoinHostPort(cfg.Host, cfg.Port)
			mc.DBName = cfg.Name
		}
		mc.ParseTime = true
		// UPDATE must report matched rows, not changed rows, so a missing
		// row can be told apart from an unchanged one
		mc.ClientFoundRows = true
		return mc.FormatDSN(), nil

	case DriverSQLite:
		if cfg.DSN != "" {
			return cfg.DSN, nil
		}
		if cfg.Name == "" {
			return "todolists.db", nil
		}
		return cfg.Name, nil

	default:
		return "", fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}
}

// Dialector returns the GORM dialector for the configured driver
func Dialector(cfg Config) (gorm.Dialector, error) {
	dsn, err := BuildDSN(cfg)
	if err != nil {
		return nil, err
	}

	switch cfg.Driver {
	case DriverPostgres:
		return postgres.Open(dsn), nil
	case DriverMySQL:
		return mysql.Open(dsn), nil
	default:
		return sqlite.Open(dsn), nil
	}
}

// Connect opens a pooled connection, verifies it and applies pool limits.
// Every unit of work borrows a connection from the pool and returns it when done.
func Connect(cfg Config, log logger.Interface) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: log})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	if cfg.Driver == DriverSQLite {
		// SQLite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if cfg.EnsureSchema {
		if err := EnsureSchema(db); err != nil {
			sqlDB.Close()
			return nil, err
		}
	}

	return db, nil
}

// Close releases the pool behind db
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
