package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/simaogato/wealthflow-roadmap/internal/domain"
	"github.com/simaogato/wealthflow-roadmap/internal/usecase/allocator"
	"github.com/simaogato/wealthflow-roadmap/internal/usecase/planner"
)

var envKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

type simulateOptions struct {
	profilePath    string
	portfolioValue string
	allocation     map[string]string
	startYear      int
	currency       string
	asJSON         bool
}

func simulateCmd() *cobra.Command {
	opts := simulateOptions{}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Project a client profile and print the roadmap",
		Long: `Simulate loads a client profile from a JSON file, projects the portfolio
over the planning horizon and prints the timeline, the retirement and goal
analyses, and the recommendations.

The allocation is given as weights per asset class (Equity, Bonds, Cash,
Gold, REIT) and is normalized to percentages summing to 100.`,
		Example: `  roadmapctl simulate --profile client.json --portfolio-value 1000000
  roadmapctl simulate --profile client.json --portfolio-value 1000000 --allocation Equity=60,Bonds=25,Cash=5,Gold=5,REIT=5 --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSimulate(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.profilePath, "profile", "", "path to the client profile JSON file")
	cmd.Flags().StringVar(&opts.portfolioValue, "portfolio-value", "0", "current portfolio value")
	cmd.Flags().StringToStringVar(&opts.allocation, "allocation", nil, "current allocation weights, e.g. Equity=60,Bonds=40")
	cmd.Flags().IntVar(&opts.startYear, "start-year", time.Now().Year(), "first simulated calendar year")
	cmd.Flags().StringVar(&opts.currency, "currency", "INR", "ISO 4217 currency used to display amounts")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the roadmap as JSON")
	_ = cmd.MarkFlagRequired("profile")

	cmd.Flags().Int("horizon", domain.DefaultAssumptions().HorizonYears, "number of simulated years")
	cmd.Flags().String("withdrawal-rate", domain.DefaultAssumptions().SafeWithdrawalRate.String(), "safe withdrawal rate during retirement")
	cmd.Flags().String("income-growth", domain.DefaultAssumptions().IncomeGrowthRate.String(), "annual growth of working income")
	_ = viper.BindPFlag("assumptions.horizon_years", cmd.Flags().Lookup("horizon"))
	_ = viper.BindPFlag("assumptions.safe_withdrawal_rate", cmd.Flags().Lookup("withdrawal-rate"))
	_ = viper.BindPFlag("assumptions.income_growth_rate", cmd.Flags().Lookup("income-growth"))

	return cmd
}

func runSimulate(cmd *cobra.Command, opts simulateOptions) error {
	profile, err := loadProfile(opts.profilePath)
	if err != nil {
		return err
	}

	value, err := decimal.NewFromString(opts.portfolioValue)
	if err != nil {
		return fmt.Errorf("invalid portfolio value %q: %w", opts.portfolioValue, err)
	}

	currency := strings.ToUpper(opts.currency)
	if money.GetCurrency(currency) == nil {
		return fmt.Errorf("unknown currency %q", opts.currency)
	}

	allocation, err := parseAllocation(opts.allocation)
	if err != nil {
		return err
	}

	assumptions, err := assumptionsFromConfig()
	if err != nil {
		return err
	}

	slog.Debug("simulating roadmap",
		"profile", profile.Name,
		"portfolio_value", value.String(),
		"horizon_years", assumptions.HorizonYears,
		"start_year", opts.startYear,
	)

	roadmap, err := planner.NewPlanner(assumptions).Build(value, *profile, allocation, opts.startYear)
	if err != nil {
		return err
	}
	roadmap.ProfileID = profile.ID

	out := cmd.OutOrStdout()
	if opts.asJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(roadmap)
	}

	return renderRoadmap(out, roadmap, currency)
}

func loadProfile(path string) (*domain.ClientProfile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	var profile domain.ClientProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}

	return &profile, nil
}

// parseAllocation turns asset class weights into a snapshot summing to 100.
// No weights means the allocation is unknown.
func parseAllocation(weights map[string]string) (domain.AllocationSnapshot, error) {
	if len(weights) == 0 {
		return nil, nil
	}

	values := make(map[domain.AssetClass]decimal.Decimal, len(weights))
	for name, raw := range weights {
		weight, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid allocation weight for %s: %w", name, err)
		}
		values[domain.AssetClass(name)] = weight
	}

	snapshot, err := allocator.CalculateAllocation(values)
	if err != nil {
		return nil, fmt.Errorf("invalid allocation: %w", err)
	}
	return snapshot, nil
}

func assumptionsFromConfig() (domain.Assumptions, error) {
	assumptions := domain.DefaultAssumptions()

	if viper.IsSet("assumptions.horizon_years") {
		assumptions.HorizonYears = viper.GetInt("assumptions.horizon_years")
	}

	rates := []struct {
		key    string
		target *decimal.Decimal
	}{
		{key: "assumptions.safe_withdrawal_rate", target: &assumptions.SafeWithdrawalRate},
		{key: "assumptions.income_growth_rate", target: &assumptions.IncomeGrowthRate},
	}
	for _, rate := range rates {
		if !viper.IsSet(rate.key) {
			continue
		}
		value, err := decimal.NewFromString(viper.GetString(rate.key))
		if err != nil {
			return domain.Assumptions{}, fmt.Errorf("invalid %s: %w", rate.key, err)
		}
		*rate.target = value
	}

	if err := assumptions.Validate(); err != nil {
		return domain.Assumptions{}, err
	}
	return assumptions, nil
}
