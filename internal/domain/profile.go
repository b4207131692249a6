package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RiskTolerance represents the client's appetite for portfolio volatility
type RiskTolerance string

const (
	RiskConservative RiskTolerance = "conservative"
	RiskModerate     RiskTolerance = "moderate"
	RiskAggressive   RiskTolerance = "aggressive"
)

// Valid reports whether r is one of the recognized tiers
func (r RiskTolerance) Valid() bool {
	switch r {
	case RiskConservative, RiskModerate, RiskAggressive:
		return true
	}
	return false
}

// Goal is a financial target funded from the portfolio in a given calendar year.
// TargetYear is absolute (e.g. 2031), never an offset from today.
type Goal struct {
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	TargetYear   int             `json:"target_year"`
}

// ClientProfile describes the client a roadmap is computed for.
// It is loaded once per planning request and never mutated during a simulation.
type ClientProfile struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	RiskTolerance  RiskTolerance   `json:"risk_tolerance"`
	CurrentAge     int             `json:"current_age"`
	RetirementAge  int             `json:"retirement_age"`
	MonthlySavings decimal.Decimal `json:"monthly_savings"`
	AnnualIncome   decimal.Decimal `json:"annual_income"`
	Goals          []Goal          `json:"goals"`
}

// Validate ensures the profile can be simulated.
// Returns a *ConfigurationError describing the first violated rule.
//
// A retirement age equal to the current age is accepted: the client is
// treated as retired from the first simulated year.
func (p *ClientProfile) Validate() error {
	if !p.RiskTolerance.Valid() {
		return newConfigurationError("risk_tolerance", "must be conservative, moderate or aggressive")
	}

	if p.CurrentAge < 0 {
		return newConfigurationError("current_age", "must not be negative")
	}

	if p.RetirementAge <= 0 {
		return newConfigurationError("retirement_age", "must be positive")
	}

	if p.RetirementAge < p.CurrentAge {
		return newConfigurationError("retirement_age", "must not be before current_age")
	}

	if p.MonthlySavings.IsNegative() {
		return newConfigurationError("monthly_savings", "must not be negative")
	}

	if p.AnnualIncome.IsNegative() {
		return newConfigurationError("annual_income", "must not be negative")
	}

	seen := make(map[string]bool, len(p.Goals))
	for _, g := range p.Goals {
		if g.Name == "" {
			return newConfigurationError("goals", "goal name cannot be empty")
		}
		if seen[g.Name] {
			return newConfigurationError("goals", "duplicate goal name "+g.Name)
		}
		seen[g.Name] = true

		if g.TargetAmount.LessThanOrEqual(decimal.Zero) {
			return newConfigurationError("goals", "target amount of "+g.Name+" must be positive")
		}
	}

	return nil
}

// AnnualSavings is the yearly contribution made while the client is working
func (p *ClientProfile) AnnualSavings() decimal.Decimal {
	return p.MonthlySavings.Mul(decimal.NewFromInt(12))
}
