package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/wealthflow-roadmap/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev-token", cfg.APIToken)
	assert.Equal(t, ":8080", cfg.GRPCAddr)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 2*time.Second, cfg.StartupDelay)
	assert.True(t, cfg.SeedDefaultProfile)
	assert.True(t, cfg.SeedDemoPortfolio)
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=postgres dbname=wealthflow sslmode=disable",
		cfg.ConnectionString())

	defaults := domain.DefaultAssumptions()
	got := cfg.Assumptions()
	assert.Equal(t, defaults.HorizonYears, got.HorizonYears)
	assert.True(t, defaults.SafeWithdrawalRate.Equal(got.SafeWithdrawalRate))
	assert.True(t, defaults.IncomeGrowthRate.Equal(got.IncomeGrowthRate))
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_CONN_STR", "postgres://u:p@db:5432/roadmap?sslmode=disable")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("HORIZON_YEARS", "30")
	t.Setenv("SAFE_WITHDRAWAL_RATE", "0.035")
	t.Setenv("INCOME_GROWTH_RATE", "0.03")
	t.Setenv("SEED_DEFAULT_PROFILE", "false")
	t.Setenv("SEED_DEMO_PORTFOLIO", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://u:p@db:5432/roadmap?sslmode=disable", cfg.ConnectionString())
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.False(t, cfg.SeedDefaultProfile)
	assert.False(t, cfg.SeedDemoPortfolio)

	a := cfg.Assumptions()
	assert.Equal(t, 30, a.HorizonYears)
	assert.True(t, a.SafeWithdrawalRate.Equal(decimal.RequireFromString("0.035")))
	assert.True(t, a.IncomeGrowthRate.Equal(decimal.RequireFromString("0.03")))
	// Tier tables are not configurable
	assert.True(t, a.AnnualReturn(domain.RiskModerate).Equal(decimal.RequireFromString("0.08")))
}

func TestLoad_RejectsInvalidAssumptions(t *testing.T) {
	t.Setenv("HORIZON_YEARS", "0")

	_, err := Load()

	require.Error(t, err)
	assert.True(t, domain.IsConfigurationError(err))
}

func TestLoad_ParseError(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-port")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}
