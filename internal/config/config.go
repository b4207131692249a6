// Package config loads the server configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthflow-roadmap/internal/domain"
)

// Config holds everything cmd/server needs to start
type Config struct {
	// DBConnStr takes precedence over the individual DB_* variables
	DBConnStr  string `env:"DB_CONN_STR"`
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     int    `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName     string `env:"DB_NAME" envDefault:"wealthflow"`

	// StartupDelay gives Postgres time to come up in docker-compose setups
	StartupDelay time.Duration `env:"STARTUP_DELAY" envDefault:"2s"`

	APIToken string     `env:"API_TOKEN" envDefault:"dev-token"`
	GRPCAddr string     `env:"GRPC_ADDR" envDefault:":8080"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`

	HorizonYears       int             `env:"HORIZON_YEARS" envDefault:"40"`
	SafeWithdrawalRate decimal.Decimal `env:"SAFE_WITHDRAWAL_RATE" envDefault:"0.04"`
	IncomeGrowthRate   decimal.Decimal `env:"INCOME_GROWTH_RATE" envDefault:"0.05"`

	SeedDefaultProfile bool `env:"SEED_DEFAULT_PROFILE" envDefault:"true"`
	SeedDemoPortfolio  bool `env:"SEED_DEMO_PORTFOLIO" envDefault:"true"`

	// OTelEndpoint enables trace export when set, e.g. http://localhost:4318
	OTelEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Load parses the environment and validates the projection assumptions
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Assumptions().Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// ConnectionString returns DB_CONN_STR, or builds one from the individual DB_* variables
func (c Config) ConnectionString() string {
	if c.DBConnStr != "" {
		return c.DBConnStr
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

// Assumptions returns the default projection assumptions with the configured overrides applied
func (c Config) Assumptions() domain.Assumptions {
	a := domain.DefaultAssumptions()
	a.HorizonYears = c.HorizonYears
	a.SafeWithdrawalRate = c.SafeWithdrawalRate
	a.IncomeGrowthRate = c.IncomeGrowthRate
	return a
}
