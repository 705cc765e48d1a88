// Package config loads host settings from defaults, an optional config.yaml,
// a .env file and DISPLAYMETA_ environment variables, in increasing order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. DISPLAYMETA_HTTP_ADDR.
const EnvPrefix = "DISPLAYMETA"

// EnvDevelopment enables the development logger and console title.
const EnvDevelopment = "development"

// Config mirrors the expected configuration keys.
type Config struct {
	AppName string `mapstructure:"app_name"`
	Env     string `mapstructure:"env"`
	// HTTPAddr is the listen address, e.g. ":8080".
	HTTPAddr string `mapstructure:"http_addr"`

	// DBDriver is one of sqlite, sqlserver, postgres or mysql. DSN is used by
	// every driver except sqlite, which reads SQLitePath.
	DBDriver   string `mapstructure:"db_driver"`
	DSN        string `mapstructure:"dsn"`
	SQLitePath string `mapstructure:"sqlite_path"`

	// OverlayDir holds display overlay files; the embedded defaults are used
	// when empty.
	OverlayDir string `mapstructure:"overlay_dir"`
	// ScopeTargets lists the types that receive generated labels. Empty means
	// the host's Person model.
	ScopeTargets        []string `mapstructure:"scope_targets"`
	ScopeIncludeDerived bool     `mapstructure:"scope_include_derived"`
	MetadataCacheSize   int      `mapstructure:"metadata_cache_size"`

	ConsoleTitle string `mapstructure:"console_title"`
}

// IsDevelopment reports whether the host runs in development mode.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, EnvDevelopment)
}

// Load reads the configuration. searchPaths are the directories probed for
// config.yaml and .env; "." and "./config" are used when none are given.
func Load(searchPaths ...string) (*Config, error) {
	if len(searchPaths) == 0 {
		searchPaths = []string{".", "./config"}
	}

	for _, dir := range searchPaths {
		if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: load .env: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, dir := range searchPaths {
		v.AddConfigPath(dir)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app_name", "People")
	v.SetDefault("env", "production")
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("db_driver", "sqlite")
	v.SetDefault("dsn", "")
	v.SetDefault("sqlite_path", "people.db")
	v.SetDefault("overlay_dir", "")
	v.SetDefault("scope_targets", []string{})
	v.SetDefault("scope_include_derived", false)
	v.SetDefault("metadata_cache_size", 128)
	v.SetDefault("console_title", "People")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	switch c.DBDriver {
	case "sqlite":
		if c.SQLitePath == "" {
			return errors.New("config: sqlite selected but sqlite_path is empty")
		}
	case "sqlserver", "postgres", "mysql":
		if c.DSN == "" {
			return fmt.Errorf("config: %s selected but dsn is empty", c.DBDriver)
		}
	default:
		return fmt.Errorf("config: unknown db_driver %q", c.DBDriver)
	}
	if c.MetadataCacheSize < 0 {
		return fmt.Errorf("config: metadata_cache_size must not be negative, got %d", c.MetadataCacheSize)
	}
	return nil
}
