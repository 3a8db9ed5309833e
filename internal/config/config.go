// Package config loads process configuration from environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

// DevSessionSecret is the signing-key fallback used when ADMIN_SESSION_SECRET
// is unset. Tokens signed with it are forgeable by anyone reading this file,
// so New refuses it outright in production and Warnings flags it elsewhere.
const DevSessionSecret = "dev-session-secret-change-me"

const EnvProduction = "production"

type Config struct {
	Port          string `env:"PORT" envDefault:"8080"`
	Env           string `env:"ENV" envDefault:"development"`
	AppName       string `env:"APP_NAME" envDefault:"Hotel Valmont CMS"`
	SessionSecret string `env:"ADMIN_SESSION_SECRET"`
	// RevalidateSecret gates the bulk cache-revalidation endpoint.
	RevalidateSecret string `env:"REVALIDATE_SECRET"`
	DBPath           string `env:"DB_PATH" envDefault:"./data/cms.db"`
	DataFolder       string `env:"DATA_FOLDER" envDefault:"./data"`
	// Bootstrap administrator, seeded only when no administrator exists yet.
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

// New parses configuration from the environment. A missing session secret
// falls back to DevSessionSecret except in production, where it is a hard
// startup error.
func New() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "[config.New] parse env")
	}

	if cfg.SessionSecret == "" {
		if cfg.IsProduction() {
			return Config{}, errors.New("[config.New] ADMIN_SESSION_SECRET must be set in production")
		}
		cfg.SessionSecret = DevSessionSecret
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, EnvProduction)
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

// Warnings reports deployment misconfigurations worth logging at startup.
func (c Config) Warnings() []string {
	var warnings []string
	if c.SessionSecret == DevSessionSecret {
		warnings = append(warnings, "ADMIN_SESSION_SECRET not set, using the development fallback key; session tokens are forgeable")
	}
	if c.RevalidateSecret == "" {
		warnings = append(warnings, "REVALIDATE_SECRET not set, the bulk revalidation endpoint will reject every request")
	}
	return warnings
}
