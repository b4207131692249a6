package domain

import (
	"github.com/shopspring/decimal"
)

// Assumptions holds the planning constants every roadmap component works from.
// Components receive it by value at construction time; nothing reads it from
// package state.
type Assumptions struct {
	// HorizonYears is the number of simulated years, starting at the current year
	HorizonYears int

	// ReturnRates is the expected annual nominal return per risk tier used to
	// compound the portfolio
	ReturnRates map[RiskTolerance]decimal.Decimal

	// GoalBaseRates is the per-tier base rate used to size goal contributions,
	// before the horizon adjustment
	GoalBaseRates map[RiskTolerance]decimal.Decimal

	// SafeWithdrawalRate is drawn each retired year from the start-of-year balance
	SafeWithdrawalRate decimal.Decimal

	// IncomeGrowthRate compounds pre-retirement income
	IncomeGrowthRate decimal.Decimal
}

// DefaultAssumptions returns the reference planning assumptions:
// a 40 year horizon, 6/8/10% tier returns, 5/7/9% goal base rates,
// a 4% safe withdrawal rate and 5% income growth.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		HorizonYears: 40,
		ReturnRates: map[RiskTolerance]decimal.Decimal{
			RiskConservative: decimal.RequireFromString("0.06"),
			RiskModerate:     decimal.RequireFromString("0.08"),
			RiskAggressive:   decimal.RequireFromString("0.10"),
		},
		GoalBaseRates: map[RiskTolerance]decimal.Decimal{
			RiskConservative: decimal.RequireFromString("0.05"),
			RiskModerate:     decimal.RequireFromString("0.07"),
			RiskAggressive:   decimal.RequireFromString("0.09"),
		},
		SafeWithdrawalRate: decimal.RequireFromString("0.04"),
		IncomeGrowthRate:   decimal.RequireFromString("0.05"),
	}
}

// Validate ensures the assumptions cover every risk tier and use sane rates
func (a Assumptions) Validate() error {
	if a.HorizonYears <= 0 {
		return newConfigurationError("horizon_years", "must be positive")
	}

	for _, tier := range []RiskTolerance{RiskConservative, RiskModerate, RiskAggressive} {
		if _, ok := a.ReturnRates[tier]; !ok {
			return newConfigurationError("return_rates", "missing rate for "+string(tier))
		}
		if _, ok := a.GoalBaseRates[tier]; !ok {
			return newConfigurationError("goal_base_rates", "missing rate for "+string(tier))
		}
	}

	if a.SafeWithdrawalRate.IsNegative() || a.SafeWithdrawalRate.GreaterThan(decimal.NewFromInt(1)) {
		return newConfigurationError("safe_withdrawal_rate", "must be between 0 and 1")
	}

	if a.IncomeGrowthRate.IsNegative() {
		return newConfigurationError("income_growth_rate", "must not be negative")
	}

	return nil
}

// AnnualReturn maps a risk tier to its expected annual return.
// The rate is constant for the whole run: the simulation is an expected-value
// trajectory, not a stochastic one.
func (a Assumptions) AnnualReturn(tier RiskTolerance) decimal.Decimal {
	return a.ReturnRates[tier]
}

// GoalBaseRate maps a risk tier to the base rate used for goal funding
func (a Assumptions) GoalBaseRate(tier RiskTolerance) decimal.Decimal {
	return a.GoalBaseRates[tier]
}
