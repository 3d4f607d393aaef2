package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Store drivers selectable through STORE_DRIVER.
const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

type Config struct {
	Port     string `env:"PORT,      default=3000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	StoreDriver string `env:"STORE_DRIVER, default=mongo"`

	Auth  AuthConfig
	Mongo MongoConfig
	SQL   SQLConfig
	Redis RedisConfig
	CORS  CORSConfig
	Kafka KafkaConfig
	Seed  SeedConfig
	Audit AuditConfig
}

type AuthConfig struct {
	Mode         string        `env:"AUTH_MODE,     default=token"`
	JWTSecret    string        `env:"JWT_SECRET"`
	SessionTTL   time.Duration `env:"SESSION_TTL,   default=1h"`
	CookieSecure bool          `env:"COOKIE_SECURE, default=false"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=smartcare"`
}

type SQLConfig struct {
	DSN   string `env:"SQL_DSN"`
	Debug bool   `env:"SQL_DEBUG, default=false"`
}

// RedisConfig is optional in token mode: an empty Addr disables sessions and
// the booking replay cache.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS, default=http://localhost:5500"`
}

// KafkaConfig enables the audit stream when Brokers is non-empty.
type KafkaConfig struct {
	Brokers []string `env:"KAFKA_BROKERS"`
	Topic   string   `env:"KAFKA_AUDIT_TOPIC, default=smartcare.audit"`
}

type SeedConfig struct {
	AdminPassword  string `env:"SEED_ADMIN_PASSWORD,  default=admin"`
	DoctorPassword string `env:"SEED_DOCTOR_PASSWORD, default=doctor"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

// Load reads configuration from environment variables using go-envconfig and
// validates it.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.Auth.Mode = strings.ToLower(strings.TrimSpace(cfg.Auth.Mode))
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field requirements that struct tags cannot express.
func (c *Config) Validate() error {
	var errs []error

	switch c.Auth.Mode {
	case "token":
		if c.Auth.JWTSecret == "" {
			errs = append(errs, errors.New("JWT_SECRET is required when AUTH_MODE=token"))
		}
	case "session":
		if c.Redis.Addr == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required when AUTH_MODE=session"))
		}
	default:
		errs = append(errs, fmt.Errorf("AUTH_MODE must be token or session, got %q", c.Auth.Mode))
	}

	switch c.StoreDriver {
	case StoreMongo, StorePostgres, StoreSQLite:
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER must be mongo, postgres or sqlite, got %q", c.StoreDriver))
	}
	if c.StoreDriver == StorePostgres && c.SQL.DSN == "" {
		errs = append(errs, errors.New("SQL_DSN is required when STORE_DRIVER=postgres"))
	}

	if c.Auth.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// IsDevelopment reports whether the service runs with developer defaults.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
