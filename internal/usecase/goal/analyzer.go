package goal

import (
	"math"

	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthflow-roadmap/internal/domain"
)

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)

	shortTermShare  = decimal.RequireFromString("0.3")
	mediumTermShare = decimal.RequireFromString("0.4")
	longTermShare   = decimal.RequireFromString("0.3")
	// emptyPortfolioShare is used when there is no portfolio to cap against
	emptyPortfolioShare = decimal.RequireFromString("0.1")

	shortHorizonAdjustment = decimal.RequireFromString("-0.02")
	longHorizonAdjustment  = decimal.RequireFromString("0.01")
)

// Analyzer derives per-goal funding progress from a simulated Timeline
type Analyzer struct {
	assumptions domain.Assumptions
}

// NewAnalyzer creates a new Analyzer
func NewAnalyzer(assumptions domain.Assumptions) *Analyzer {
	return &Analyzer{assumptions: assumptions}
}

// Analyze returns one GoalAnalysis per goal, in the order the goals were given.
// The current year is the first year of the timeline.
func (a *Analyzer) Analyze(goals []domain.Goal, timeline domain.Timeline, currentValue decimal.Decimal, risk domain.RiskTolerance) []domain.GoalAnalysis {
	currentYear := timeline.StartYear()

	analyses := make([]domain.GoalAnalysis, 0, len(goals))
	for _, g := range goals {
		analyses = append(analyses, a.analyzeGoal(g, timeline, currentYear, currentValue, risk))
	}
	return analyses
}

func (a *Analyzer) analyzeGoal(g domain.Goal, timeline domain.Timeline, currentYear int, currentValue decimal.Decimal, risk domain.RiskTolerance) domain.GoalAnalysis {
	yearsRemaining := g.TargetYear - currentYear

	share := AllocationShare(yearsRemaining, g.TargetAmount, currentValue)
	currentAllocation := currentValue.Mul(share)
	progress := currentAllocation.Div(g.TargetAmount).Mul(hundred)

	// Goals beyond the horizon are judged on the final simulated year
	achieved := false
	if entry, ok := timeline.LastEntryAtOrBefore(g.TargetYear); ok {
		achieved = entry.HasAchieved(g.Name)
	}

	// Goals due now or overdue have no months left to spread a shortfall over
	required := decimal.Zero
	if !achieved && yearsRemaining > 0 {
		shortfall := decimal.Max(g.TargetAmount.Sub(currentAllocation), decimal.Zero)
		required = RequiredMonthlyContribution(shortfall, a.RateForHorizon(risk, yearsRemaining), yearsRemaining*12)
	}

	return domain.GoalAnalysis{
		Name:                        g.Name,
		TargetAmount:                g.TargetAmount,
		TargetYear:                  g.TargetYear,
		YearsRemaining:              yearsRemaining,
		AllocationPercent:           share,
		CurrentAllocation:           currentAllocation,
		ProgressPercent:             progress,
		RequiredMonthlyContribution: required,
		ProjectedToAchieve:          achieved,
		RecommendedAllocation:       RecommendedAllocation(yearsRemaining),
	}
}

// AllocationShare returns the fraction of the current portfolio notionally
// earmarked for a goal.
//
// Logic:
//   - Up to 3 years: 30%, up to 10 years: 40%, beyond: 30%
//   - Capped at target / (portfolio x 2) so small goals are not over-allocated
//   - 10% when the portfolio is empty
func AllocationShare(yearsRemaining int, target, currentValue decimal.Decimal) decimal.Decimal {
	if !currentValue.GreaterThan(decimal.Zero) {
		return emptyPortfolioShare
	}

	var share decimal.Decimal
	switch {
	case yearsRemaining <= 3:
		share = shortTermShare
	case yearsRemaining <= 10:
		share = mediumTermShare
	default:
		share = longTermShare
	}

	return decimal.Min(share, target.Div(currentValue.Mul(two)))
}

// RateForHorizon adjusts the tier's goal base rate to the time left:
// 2 points lower under 3 years, 1 point higher from 10 years on.
func (a *Analyzer) RateForHorizon(risk domain.RiskTolerance, years int) decimal.Decimal {
	base := a.assumptions.GoalBaseRate(risk)
	switch {
	case years < 3:
		return base.Add(shortHorizonAdjustment)
	case years < 10:
		return base
	default:
		return base.Add(longHorizonAdjustment)
	}
}

// RequiredMonthlyContribution inverts the future value of an annuity:
// the monthly payment that grows to shortfall after months payments at the
// monthly equivalent of annualRate. The result is rounded to cents.
func RequiredMonthlyContribution(shortfall, annualRate decimal.Decimal, months int) decimal.Decimal {
	if months <= 0 || !shortfall.GreaterThan(decimal.Zero) {
		return decimal.Zero
	}

	// Fractional powers are evaluated in float64; the result is a suggestion
	// rounded to cents, not a ledger amount.
	monthlyRate := math.Pow(1+annualRate.InexactFloat64(), 1.0/12) - 1
	if monthlyRate == 0 {
		return shortfall.Div(decimal.NewFromInt(int64(months))).Round(2)
	}

	growth := math.Pow(1+monthlyRate, float64(months)) - 1
	payment := shortfall.InexactFloat64() * monthlyRate / growth

	return decimal.NewFromFloat(payment).Round(2)
}

// RecommendedAllocation returns the static asset mix suggested for a goal
// by time horizon: under 3 years, under 7 years, 7 years and more.
func RecommendedAllocation(yearsRemaining int) domain.AllocationSnapshot {
	switch {
	case yearsRemaining < 3:
		return mix(20, 50, 30, 0, 0)
	case yearsRemaining < 7:
		return mix(50, 30, 10, 5, 5)
	default:
		return mix(70, 15, 5, 5, 5)
	}
}

func mix(equity, bonds, cash, gold, reit int64) domain.AllocationSnapshot {
	return domain.AllocationSnapshot{
		domain.AssetEquity: decimal.NewFromInt(equity),
		domain.AssetBonds:  decimal.NewFromInt(bonds),
		domain.AssetCash:   decimal.NewFromInt(cash),
		domain.AssetGold:   decimal.NewFromInt(gold),
		domain.AssetREIT:   decimal.NewFromInt(reit),
	}
}
