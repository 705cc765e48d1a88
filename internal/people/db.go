package people

import (
	"errors"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DBConfig selects the database driver and its connection settings.
type DBConfig struct {
	// Driver is one of sqlite, sqlserver, postgres or mysql.
	Driver string
	// DSN is used by every driver except sqlite.
	DSN string
	// SQLitePath is the database file for the sqlite driver.
	SQLitePath string
	// Logger receives gorm diagnostics; gorm's default logger is used when
	// nil.
	Logger gormlogger.Interface
}

// Dialector returns the gorm dialector for cfg without connecting.
func Dialector(cfg DBConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "sqlite":
		if cfg.SQLitePath == "" {
			return nil, errors.New("people: sqlite selected but path is empty")
		}
		return sqlite.Open(cfg.SQLitePath), nil
	case "sqlserver":
		if cfg.DSN == "" {
			return nil, errors.New("people: sqlserver selected but dsn is empty")
		}
		return sqlserver.Open(cfg.DSN), nil
	case "postgres":
		if cfg.DSN == "" {
			return nil, errors.New("people: postgres selected but dsn is empty")
		}
		return postgres.Open(cfg.DSN), nil
	case "mysql":
		if cfg.DSN == "" {
			return nil, errors.New("people: mysql selected but dsn is empty")
		}
		return mysql.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("people: unknown driver %q", cfg.Driver)
	}
}

// Open connects to the configured database and migrates the people table.
func Open(cfg DBConfig) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}
	gormCfg := &gorm.Config{}
	if cfg.Logger != nil {
		gormCfg.Logger = cfg.Logger
	}
	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("people: connect %s: %w", cfg.Driver, err)
	}
	if err := db.AutoMigrate(&Person{}); err != nil {
		return nil, fmt.Errorf("people: migrate: %w", err)
	}
	return db, nil
}
