package recommendation

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/simaogato/wealthflow-roadmap/internal/domain"
)

// Business rules. Each threshold is a fixed advisory policy.
var (
	// MinReplacementRatio is the income replacement ratio (percent) below which
	// retirement savings must be increased
	MinReplacementRatio = decimal.NewFromInt(60)

	// MinNearTermProgress is the progress (percent) a goal due within
	// NearTermYears must have reached
	MinNearTermProgress = decimal.NewFromInt(70)

	// MaxAllocationDrift is the deviation (percentage points) from the target
	// mix that triggers a rebalancing suggestion
	MaxAllocationDrift = decimal.NewFromInt(15)

	// EmergencyFundMonths of income must be held in cash
	EmergencyFundMonths = decimal.NewFromInt(6)
)

// NearTermYears bounds the goals checked for accelerated savings
const NearTermYears = 5

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// Printer formats recommendation text; *message.Printer satisfies it
type Printer interface {
	Sprintf(key message.Reference, a ...interface{}) string
}

// Input gathers the analyses a recommendation pass works from
type Input struct {
	Profile               domain.ClientProfile
	CurrentPortfolioValue decimal.Decimal
	Retirement            domain.RetirementAnalysis
	Goals                 []domain.GoalAnalysis
	// Allocation is the current asset-class snapshot; nil when unknown
	Allocation domain.AllocationSnapshot
}

// Engine turns roadmap analyses into prioritized action items
type Engine struct {
	printer Printer
}

// NewEngine creates an Engine formatting amounts for English readers
func NewEngine() *Engine {
	return NewEngineWithPrinter(message.NewPrinter(language.English))
}

// NewEngineWithPrinter creates an Engine using the given printer
func NewEngineWithPrinter(printer Printer) *Engine {
	return &Engine{printer: printer}
}

// Recommend derives recommendations, in this order:
//  1. Retirement savings, when the replacement ratio is below 60%
//  2. Accelerated savings for each goal due within 5 years and under 70% funded
//  3. Rebalancing for each asset class more than 15 points off the tier target
//     (only when an allocation snapshot is known)
//  4. An emergency fund, when cash is below 6 months of income
func (e *Engine) Recommend(in Input) []domain.Recommendation {
	recommendations := make([]domain.Recommendation, 0)

	if in.Retirement.IncomeReplacementRatio.LessThan(MinReplacementRatio) {
		recommendations = append(recommendations, domain.Recommendation{
			Category:    domain.CategoryRetirement,
			Priority:    domain.PriorityHigh,
			Description: "Increase retirement savings",
			Details: e.printer.Sprintf(
				"Current income replacement ratio of %.1f%% is below target. Consider increasing monthly contributions.",
				in.Retirement.IncomeReplacementRatio.InexactFloat64()),
		})
	}

	for _, g := range in.Goals {
		if g.YearsRemaining > NearTermYears || !g.ProgressPercent.LessThan(MinNearTermProgress) {
			continue
		}
		recommendations = append(recommendations, domain.Recommendation{
			Category:    domain.CategoryGoalPlanning,
			Priority:    domain.PriorityHigh,
			Description: "Accelerate savings for " + g.Name,
			Details: e.printer.Sprintf(
				"Current progress is only %.1f%%. Consider monthly contribution of %.2f to achieve this goal.",
				g.ProgressPercent.InexactFloat64(), g.RequiredMonthlyContribution.InexactFloat64()),
		})
	}

	if in.Allocation != nil {
		recommendations = append(recommendations, e.rebalancing(in.Profile.RiskTolerance, in.Allocation)...)
	}

	emergencyFund := EmergencyFundMonths.Mul(in.Profile.AnnualIncome.Div(twelve))
	currentCash := in.CurrentPortfolioValue.Mul(in.Allocation.Percent(domain.AssetCash)).Div(hundred)
	if currentCash.LessThan(emergencyFund) {
		recommendations = append(recommendations, domain.Recommendation{
			Category:    domain.CategoryEmergencyFund,
			Priority:    domain.PriorityHigh,
			Description: "Build emergency fund",
			Details: e.printer.Sprintf(
				"Current cash reserves of %.2f are below the recommended 6 months of expenses (%.2f).",
				currentCash.InexactFloat64(), emergencyFund.InexactFloat64()),
		})
	}

	return recommendations
}

func (e *Engine) rebalancing(tier domain.RiskTolerance, current domain.AllocationSnapshot) []domain.Recommendation {
	target := TargetMix(tier)

	var recommendations []domain.Recommendation
	for _, class := range domain.AssetClasses {
		targetPct := target.Percent(class)
		currentPct := current.Percent(class)

		if currentPct.Sub(targetPct).Abs().LessThanOrEqual(MaxAllocationDrift) {
			continue
		}

		action := "Reduce"
		if currentPct.LessThan(targetPct) {
			action = "Increase"
		}

		recommendations = append(recommendations, domain.Recommendation{
			Category:    domain.CategoryAssetAllocation,
			Priority:    domain.PriorityMedium,
			Description: action + " " + string(class) + " allocation",
			Details: e.printer.Sprintf(
				"Current allocation of %.1f%% differs from target of %.1f%%. Consider rebalancing.",
				currentPct.InexactFloat64(), targetPct.InexactFloat64()),
		})
	}
	return recommendations
}

// TargetMix returns the strategic asset mix for a risk tier, in percent.
// Unknown tiers get the moderate mix.
func TargetMix(tier domain.RiskTolerance) domain.AllocationSnapshot {
	switch tier {
	case domain.RiskConservative:
		return mix(40, 40, 10, 5, 5)
	case domain.RiskAggressive:
		return mix(80, 10, 0, 5, 5)
	default:
		return mix(60, 25, 5, 5, 5)
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
