package retirement

import (
	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthflow-roadmap/internal/domain"
)

// Replacement ratio thresholds, in percent, inclusive on the lower bound
var (
	excellentThreshold = decimal.NewFromInt(80)
	goodThreshold      = decimal.NewFromInt(60)
	adequateThreshold  = decimal.NewFromInt(40)
)

// sustainabilityFloor is the share of the retirement corpus that must remain
// at the end of the retirement phase for the plan to count as sustainable
var sustainabilityFloor = decimal.RequireFromString("0.5")

var hundred = decimal.NewFromInt(100)

// Analyzer derives retirement readiness from a simulated Timeline
type Analyzer struct {
	assumptions domain.Assumptions
}

// NewAnalyzer creates a new Analyzer
func NewAnalyzer(assumptions domain.Assumptions) *Analyzer {
	return &Analyzer{assumptions: assumptions}
}

// Analyze computes the RetirementAnalysis for profile.
//
// Logic:
//   - Corpus: balance carried into the year the client turns RetirementAge
//   - Sustainable income: corpus x safe withdrawal rate
//   - Replacement ratio: sustainable income / income of the last working year x 100
//   - Sustainability: last retired year must end above half the corpus
//
// If the retirement year is outside the timeline the status is Unknown and all
// amounts are zero.
func (a *Analyzer) Analyze(timeline domain.Timeline, profile domain.ClientProfile) domain.RetirementAnalysis {
	retirementEntry, ok := timeline.EntryForAge(profile.RetirementAge)
	if !ok {
		return domain.RetirementAnalysis{
			Status:                     domain.RetirementUnknown,
			RetirementCorpus:           decimal.Zero,
			SustainableIncome:          decimal.Zero,
			IncomeReplacementRatio:     decimal.Zero,
			PortfolioValueAtHorizonEnd: decimal.Zero,
		}
	}

	// Income of the year before retirement; absent when retired from year 0
	preRetirementIncome := decimal.Zero
	if lastWorking, ok := timeline.EntryForAge(profile.RetirementAge - 1); ok {
		preRetirementIncome = lastWorking.Income
	}

	corpus := retirementEntry.PortfolioValueStart
	sustainableIncome := corpus.Mul(a.assumptions.SafeWithdrawalRate)

	// Division guard: no pre-retirement income means a 0 ratio, not an error
	ratio := decimal.Zero
	if preRetirementIncome.GreaterThan(decimal.Zero) {
		ratio = sustainableIncome.Div(preRetirementIncome).Mul(hundred)
	}

	endBalance := decimal.Zero
	if lastRetired, ok := timeline.LastRetiredEntry(); ok {
		endBalance = lastRetired.PortfolioValueEnd
	}

	sustainability := domain.AtRisk
	if endBalance.GreaterThan(corpus.Mul(sustainabilityFloor)) {
		sustainability = domain.Sustainable
	}

	return domain.RetirementAnalysis{
		Status:                     StatusForRatio(ratio),
		RetirementCorpus:           corpus,
		SustainableIncome:          sustainableIncome,
		IncomeReplacementRatio:     ratio,
		PortfolioSustainability:    sustainability,
		PortfolioValueAtHorizonEnd: endBalance,
	}
}

// StatusForRatio grades an income replacement ratio expressed in percent
func StatusForRatio(ratio decimal.Decimal) domain.RetirementStatus {
	switch {
	case ratio.GreaterThanOrEqual(excellentThreshold):
		return domain.RetirementExcellent
	case ratio.GreaterThanOrEqual(goodThreshold):
		return domain.RetirementGood
	case ratio.GreaterThanOrEqual(adequateThreshold):
		return domain.RetirementAdequate
	default:
		return domain.RetirementNeedsAttention
	}
}
