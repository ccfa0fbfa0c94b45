package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name    string `envconfig:"APP_NAME" default:"Dental Budget API"`
		Version string `envconfig:"APP_VERSION" default:"1.0.0"`
		Port    int    `envconfig:"PORT" default:"8000"`
	}

	DB struct {
		URL             string        `envconfig:"DATABASE_URL"`
		Host            string        `envconfig:"DB_HOST" default:"localhost"`
		Port            int           `envconfig:"DB_PORT" default:"5432"`
		User            string        `envconfig:"DB_USER" default:"budget_user"`
		Password        string        `envconfig:"DB_PASSWORD" default:""`
		Name            string        `envconfig:"DB_NAME" default:"dental_budget"`
		SSLMode         string        `envconfig:"DB_SSLMODE" default:"disable"`
		MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
		MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
		ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"1h"`
		AutoMigrate     bool          `envconfig:"DB_AUTO_MIGRATE" default:"true"`
	}

	Server struct {
		ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
		WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
		ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
	}

	Auth struct {
		Secret   string        `envconfig:"JWT_SECRET"`
		TokenTTL time.Duration `envconfig:"JWT_TTL" default:"30m"`
		Required bool          `envconfig:"AUTH_REQUIRED" default:"false"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}

	Log struct {
		Level  string `envconfig:"LOG_LEVEL" default:"info"`
		Format string `envconfig:"LOG_FORMAT" default:"text"`
	}
}

// ConnectionString prefers DATABASE_URL and otherwise builds a postgres URL
// from the individual DB_* settings.
func (c *Config) ConnectionString() string {
	if c.DB.URL != "" {
		return c.DB.URL
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name, c.DB.SSLMode)
}

func (c *Config) Validate() error {
	var errs []error

	if c.App.Port < 1 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %d: must be between 1 and 65535", c.App.Port))
	}

	if c.Auth.Required && c.Auth.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required when AUTH_REQUIRED is set"))
	}

	if c.DB.MaxIdleConns > c.DB.MaxOpenConns {
		errs = append(errs, fmt.Errorf("DB_MAX_IDLE_CONNS (%d) exceeds DB_MAX_OPEN_CONNS (%d)",
			c.DB.MaxIdleConns, c.DB.MaxOpenConns))
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("invalid LOG_FORMAT %q: must be text or json", c.Log.Format))
	}

	return errors.Join(errs...)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
