package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Supported values for Config.DatabaseType
const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
	DatabasePgx      = "pgx"
)

type Config struct {
	Port         int      `env:"PORT" env-default:"4000"`
	DatabaseURL  string   `env:"DATABASE_URL"`
	DatabaseType string   `env:"DATABASE_TYPE" env-default:"sqlite"`
	CORSOrigins  []string `env:"CORS_ORIGINS" env-separator:"," env-default:"http://localhost:5173,http://127.0.0.1:5173"`
	Env          string   `env:"APP_ENV" env-default:"local"`
}

// DriverName maps the configured database type to a database/sql driver name
func (c Config) DriverName() string {
	switch c.DatabaseType {
	case DatabasePostgres:
		return "postgres"
	case DatabasePgx:
		return "pgx"
	default:
		return "sqlite"
	}
}

type WebConfig struct {
	Port          int    `env:"WEB_PORT" env-default:"5173"`
	APIURL        string `env:"API_URL" env-default:"http://localhost:4000"`
	SessionSecret string `env:"SESSION_SECRET"`
	Env           string `env:"APP_ENV" env-default:"local"`
}

// ParseFlags reads the API server configuration.
// Order: .env file, environment, then CLI flags (highest priority).
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	if err := loadEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("pollbox", flag.ContinueOnError)
	fs.IntVar(&cfg.Port, "p", cfg.Port, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", cfg.DatabaseURL, "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", cfg.DatabaseType, "Database type (sqlite, postgres or pgx)")
	fs.StringVar(&cfg.Env, "env", cfg.Env, "Environment (local, dev or prod)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}
	switch cfg.DatabaseType {
	case DatabaseSQLite, DatabasePostgres, DatabasePgx:
	default:
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	return cfg, nil
}

// ParseWebFlags reads the web client configuration
func ParseWebFlags(args []string) (WebConfig, error) {
	var cfg WebConfig

	if err := loadEnv(&cfg); err != nil {
		return WebConfig{}, err
	}

	fs := flag.NewFlagSet("pollweb", flag.ContinueOnError)
	fs.IntVar(&cfg.Port, "p", cfg.Port, "Server port")
	fs.StringVar(&cfg.APIURL, "api", cfg.APIURL, "Poll API base URL")
	fs.StringVar(&cfg.SessionSecret, "session-secret", cfg.SessionSecret, "Session cookie secret (prefer env)")
	fs.StringVar(&cfg.Env, "env", cfg.Env, "Environment (local, dev or prod)")

	if err := fs.Parse(args); err != nil {
		return WebConfig{}, err
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return WebConfig{}, fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.APIURL == "" {
		return WebConfig{}, errors.New("API URL required (use -api or API_URL env)")
	}
	if cfg.SessionSecret == "" {
		return WebConfig{}, errors.New("SESSION_SECRET required")
	}

	return cfg, nil
}

func loadEnv(cfg any) error {
	// A missing .env is normal outside local development
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}
	return nil
}
