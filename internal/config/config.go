package config

import (
	"fmt"
	"time"

	"github.com/Zeresenayaregal/simpleHospitalManagment-system/pkg/config"
	"github.com/Zeresenayaregal/simpleHospitalManagment-system/pkg/database"
)

const defaultJWTSecret = "change-this-to-a-secure-secret"

// Config holds all configuration for the hospital server.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"PORT" envDefault:"3000"`

	// PostgreSQL
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"postgres"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"postgres"`
	PostgresDB   string `env:"POSTGRES_DB" envDefault:"hospital_db"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	DBMaxConns            int32 `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns            int32 `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetimeMins int   `env:"DB_MAX_CONN_LIFETIME_MINS" envDefault:"60"`
	DBMaxConnIdleTimeMins int   `env:"DB_MAX_CONN_IDLE_TIME_MINS" envDefault:"30"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// JWT
	JWTSecret string `env:"JWT_SECRET" envDefault:"change-this-to-a-secure-secret"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Static frontend. Empty disables SPA serving.
	StaticDir string `env:"STATIC_DIR" envDefault:""`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		return nil, fmt.Errorf("load server config: %w", err)
	}
	if cfg.HTTPPort < 1 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid HTTP port: %d", cfg.HTTPPort)
	}

	// In non-development environments, require an explicitly set, strong JWT secret.
	if cfg.Environment != "development" {
		if cfg.JWTSecret == defaultJWTSecret {
			return nil, fmt.Errorf("JWT_SECRET must be explicitly set via environment variable in %q mode", cfg.Environment)
		}
		if len(cfg.JWTSecret) < 32 {
			return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters long, got %d", len(cfg.JWTSecret))
		}
	}

	return cfg, nil
}

// PostgresConfig returns the connection pool settings for the configured database.
func (c *Config) PostgresConfig() database.PostgresConfig {
	pg := database.DefaultPostgresConfig()
	pg.Host = c.PostgresHost
	pg.Port = c.PostgresPort
	pg.User = c.PostgresUser
	pg.Password = c.PostgresPass
	pg.DBName = c.PostgresDB
	pg.SSLMode = c.PostgresSSL
	pg.MaxConns = c.DBMaxConns
	pg.MinConns = c.DBMinConns
	if c.DBMaxConnLifetimeMins > 0 {
		pg.MaxConnLifetime = time.Duration(c.DBMaxConnLifetimeMins) * time.Minute
	}
	if c.DBMaxConnIdleTimeMins > 0 {
		pg.MaxConnIdleTime = time.Duration(c.DBMaxConnIdleTimeMins) * time.Minute
	}
	return pg
}
