package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	DefaultDatabaseURI = "sqlite:///mydatabase.db"
	DefaultPort        = 5000
	DefaultLogLevel    = "info"
)

// Config is the process configuration. Values come from the environment,
// optionally seeded from a .env file.
type Config struct {
	DatabaseURI        string `validate:"required"`
	TrackModifications bool
	Port               int `validate:"min=1,max=65535"`
	Debug              bool
	CORSOrigins        []string `validate:"required,min=1,dive,required"`
	LogLevel           string   `validate:"oneof=trace debug info warn warning error fatal panic"`
	LogFile            string
	RedisURL           string
	MetricsEnabled     bool
}

// Default returns the configuration the application factory starts from.
func Default() *Config {
	return &Config{
		DatabaseURI:        DefaultDatabaseURI,
		TrackModifications: false,
		Port:               DefaultPort,
		Debug:              false,
		CORSOrigins:        []string{"*"},
		LogLevel:           DefaultLogLevel,
		MetricsEnabled:     true,
	}
}

// Load reads .env (if present) and applies environment overrides on top of
// Default.
func Load() (*Config, error) {
	// a missing .env file is not an error
	_ = godotenv.Load()

	cfg := Default()

	if v := os.Getenv("DATABASE_URI"); v != "" {
		cfg.DatabaseURI = v
	}

	var err error
	if cfg.TrackModifications, err = envBool("TRACK_MODIFICATIONS", cfg.TrackModifications); err != nil {
		return nil, err
	}
	if cfg.Debug, err = envBool("DEBUG", cfg.Debug); err != nil {
		return nil, err
	}
	if cfg.MetricsEnabled, err = envBool("METRICS_ENABLED", cfg.MetricsEnabled); err != nil {
		return nil, err
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = port
	}

	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	cfg.LogFile = os.Getenv("LOG_FILE")
	cfg.RedisURL = os.Getenv("REDIS_URL")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct tags on Config.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validation failed for Config: %w", err)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// AllowAllOrigins reports whether the CORS policy is the wildcard one.
func (c *Config) AllowAllOrigins() bool {
	for _, o := range c.CORSOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}

func envBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
