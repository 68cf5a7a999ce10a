package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tracklane/pgcheck/pkg/pgcheck"
)

// connectionFile is the fixed-path connection string file. When it
// exists in the working directory, its contents beat both the config
// file and the environment.
const connectionFile = "db_connection.txt"

// Environment fallbacks, applied when no flag, connection file, or
// config file provides a URL.
const (
	defaultHost     = "localhost"
	defaultPort     = "5000"
	defaultDatabase = "myapp"
	defaultUser     = "appuser"
	defaultPassword = "dbuser123"
)

// Config represents the pgcheck.yaml configuration file plus the
// values resolved from the other configuration sources.
type Config struct {
	DatabaseURL string `yaml:"database_url"`
	SQLFile     string `yaml:"sql_file"`
	ReportDir   string `yaml:"report_dir"`

	// Source records where DatabaseURL came from, for the startup
	// status line. Empty when the URL was given on the command line.
	Source string `yaml:"-"`
}

// loadConfig loads configuration from CLI flags, the connection file,
// the config file, and environment variables.
// DatabaseURL precedence: --database-url flag > db_connection.txt >
// pgcheck.yaml > POSTGRES_* environment variables. The environment
// fallback fills every missing piece with a documented default, so a
// URL always resolves; a wrong default surfaces as a connection
// failure, not a configuration error.
// SQLFile and ReportDir precedence: flag > config file > default.
func loadConfig() (*Config, error) {
	cfg := &Config{
		SQLFile:   pgcheck.DefaultSQLFile,
		ReportDir: pgcheck.DefaultReportDir,
	}

	// Load config file if it exists
	if data, err := os.ReadFile(configFile); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		// Handle env var interpolation in database_url
		cfg.DatabaseURL = expandEnvVars(cfg.DatabaseURL)
		if cfg.DatabaseURL != "" {
			cfg.Source = configFile
		}
	}

	// The connection file beats the config file and the environment.
	if data, err := os.ReadFile(connectionFile); err == nil {
		if url := strings.TrimSpace(string(data)); url != "" {
			cfg.DatabaseURL = url
			cfg.Source = connectionFile
		}
	}

	// Fall back to environment variables.
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = envDatabaseURL()
		cfg.Source = "environment variables"
	}

	// Override with CLI flags (highest priority)
	if databaseURL != "" {
		cfg.DatabaseURL = databaseURL
		cfg.Source = ""
	}
	if sqlFile != "" {
		cfg.SQLFile = sqlFile
	}
	if reportDir != "" {
		cfg.ReportDir = reportDir
	}

	// Guard against a config file that sets the keys to empty strings.
	if cfg.SQLFile == "" {
		cfg.SQLFile = pgcheck.DefaultSQLFile
	}
	if cfg.ReportDir == "" {
		cfg.ReportDir = pgcheck.DefaultReportDir
	}

	return cfg, nil
}

// envDatabaseURL assembles a connection URL from the POSTGRES_*
// environment variables, defaulting each missing variable. A variable
// that is set but empty stays empty, matching getenv semantics.
func envDatabaseURL() string {
	user := envOr("POSTGRES_USER", defaultUser)
	password := envOr("POSTGRES_PASSWORD", defaultPassword)
	host := envOr("POSTGRES_HOST", defaultHost)
	port := envOr("POSTGRES_PORT", defaultPort)
	name := envOr("POSTGRES_DB", defaultDatabase)
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s", user, password, host, port, name)
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

// expandEnvVars expands ${VAR} patterns in a string.
func expandEnvVars(s string) string {
	return os.Expand(s, os.Getenv)
}

// newClient creates a pgcheck client from config.
// It returns enhanced errors that are suitable for direct display to users.
func newClient(cfg *Config) (*pgcheck.Client, error) {
	if cfg.DatabaseURL == "" {
		return nil, pgcheck.ErrMissingDatabaseURL
	}

	return pgcheck.New(
		pgcheck.WithDatabaseURL(cfg.DatabaseURL),
		pgcheck.WithSQLFile(cfg.SQLFile),
		pgcheck.WithReportDir(cfg.ReportDir),
	)
}
