package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"Till"`
		Port     int    `envconfig:"PORT" default:"8080"`
		Timezone string `envconfig:"TIMEZONE" default:"Asia/Tokyo"`
		// Actor is recorded on movements and sales made from the terminal client.
		Actor string `envconfig:"TILL_ACTOR" default:"register"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"till"`
	}

	Server struct {
		Timeout     time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		CORSOrigins []string      `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`
	}

	Auth struct {
		// Empty secret disables bearer-token checks; every request acts as the default actor.
		Secret   string        `envconfig:"AUTH_SECRET"`
		TokenTTL time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"12h"`
	}

	Alerts struct {
		Enabled  bool   `envconfig:"ALERTS_ENABLED" default:"true"`
		Schedule string `envconfig:"ALERTS_SCHEDULE" default:"0 21 * * *"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// MigrationURL is the connection string in the form the migration driver expects.
func (c *Config) MigrationURL() string {
	return strings.Replace(c.ConnectionString(), "postgres://", "pgx5://", 1)
}

// Location resolves the configured business time zone used for calendar-day boundaries.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.App.Timezone, err)
	}

	return loc, nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
