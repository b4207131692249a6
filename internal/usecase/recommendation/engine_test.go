package recommendation

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/message"

	"github.com/simaogato/wealthflow-roadmap/internal/domain"
)

type plainPrinter struct{}

func (plainPrinter) Sprintf(key message.Reference, args ...interface{}) string {
	return fmt.Sprintf(key.(string), args...)
}

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func baseInput() Input {
	return Input{
		Profile: domain.ClientProfile{
			RiskTolerance: domain.RiskModerate,
			AnnualIncome:  d("1200000"),
		},
		CurrentPortfolioValue: d("10000000"),
		Retirement: domain.RetirementAnalysis{
			Status:                 domain.RetirementExcellent,
			IncomeReplacementRatio: d("95"),
		},
		// 10% cash of 10,000,000 covers 6 months of 1,200,000
		Allocation: domain.AllocationSnapshot{
			domain.AssetEquity: d("55"),
			domain.AssetBonds:  d("25"),
			domain.AssetCash:   d("10"),
			domain.AssetGold:   d("5"),
			domain.AssetREIT:   d("5"),
		},
	}
}

func categories(recs []domain.Recommendation) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Category)
	}
	return out
}

func TestRecommend_HealthyPlanHasNoActions(t *testing.T) {
	recs := NewEngineWithPrinter(plainPrinter{}).Recommend(baseInput())
	assert.Empty(t, recs)
}

func TestRecommend_LowReplacementRatio(t *testing.T) {
	in := baseInput()
	in.Retirement.IncomeReplacementRatio = d("45.31")

	recs := NewEngineWithPrinter(plainPrinter{}).Recommend(in)

	require.Len(t, recs, 1)
	assert.Equal(t, domain.CategoryRetirement, recs[0].Category)
	assert.Equal(t, domain.PriorityHigh, recs[0].Priority)
	assert.Equal(t, "Increase retirement savings", recs[0].Description)
	assert.Contains(t, recs[0].Details, "45.3%")
}

func TestRecommend_ReplacementRatioAtThreshold(t *testing.T) {
	in := baseInput()
	in.Retirement.IncomeReplacementRatio = d("60")

	recs := NewEngineWithPrinter(plainPrinter{}).Recommend(in)
	assert.Empty(t, recs)
}

func TestRecommend_NearTermGoalBehindSchedule(t *testing.T) {
	in := baseInput()
	in.Goals = []domain.GoalAnalysis{
		{Name: "Home", YearsRemaining: 5, ProgressPercent: d("8"), RequiredMonthlyContribution: d("1234.5")},
		// on track
		{Name: "Car", YearsRemaining: 2, ProgressPercent: d("70")},
		// not near term
		{Name: "College", YearsRemaining: 6, ProgressPercent: d("1")},
		// past goals count as near term
		{Name: "Overdue", YearsRemaining: -1, ProgressPercent: d("10")},
	}

	recs := NewEngineWithPrinter(plainPrinter{}).Recommend(in)

	require.Len(t, recs, 2)
	assert.Equal(t, "Accelerate savings for Home", recs[0].Description)
	assert.Equal(t, domain.CategoryGoalPlanning, recs[0].Category)
	assert.Equal(t, domain.PriorityHigh, recs[0].Priority)
	assert.Contains(t, recs[0].Details, "8.0%")
	assert.Contains(t, recs[0].Details, "1234.50")
	assert.Equal(t, "Accelerate savings for Overdue", recs[1].Description)
}

func TestRecommend_RebalancingBeyondDrift(t *testing.T) {
	in := baseInput()
	in.Allocation = domain.AllocationSnapshot{
		domain.AssetEquity: d("85"), // +25 against moderate target of 60
		domain.AssetBonds:  d("5"),  // -20 against 25
		domain.AssetCash:   d("10"),
	}

	recs := NewEngineWithPrinter(plainPrinter{}).Recommend(in)

	require.Len(t, recs, 2)
	assert.Equal(t, "Reduce Equity allocation", recs[0].Description)
	assert.Equal(t, domain.PriorityMedium, recs[0].Priority)
	assert.Equal(t, "Current allocation of 85.0% differs from target of 60.0%. Consider rebalancing.", recs[0].Details)
	assert.Equal(t, "Increase Bonds allocation", recs[1].Description)
}

func TestRecommend_DriftOfExactlyFifteenIsTolerated(t *testing.T) {
	in := baseInput()
	in.Allocation = domain.AllocationSnapshot{
		domain.AssetEquity: d("75"),
		domain.AssetBonds:  d("10"),
		domain.AssetCash:   d("10"),
		domain.AssetGold:   d("5"),
	}

	recs := NewEngineWithPrinter(plainPrinter{}).Recommend(in)
	assert.Empty(t, recs)
}

func TestRecommend_AggressiveTargetMix(t *testing.T) {
	in := baseInput()
	in.Profile.RiskTolerance = domain.RiskAggressive
	in.Allocation = domain.AllocationSnapshot{
		domain.AssetEquity: d("60"),
		domain.AssetBonds:  d("20"),
		domain.AssetCash:   d("10"),
		domain.AssetGold:   d("5"),
		domain.AssetREIT:   d("5"),
	}

	recs := NewEngineWithPrinter(plainPrinter{}).Recommend(in)

	require.Len(t, recs, 1)
	assert.Equal(t, "Increase Equity allocation", recs[0].Description)
}

func TestRecommend_EmergencyFundWithoutSnapshot(t *testing.T) {
	in := baseInput()
	in.Allocation = nil

	recs := NewEngineWithPrinter(plainPrinter{}).Recommend(in)

	// No snapshot: cash is taken as zero and rebalancing is skipped
	require.Len(t, recs, 1)
	assert.Equal(t, domain.CategoryEmergencyFund, recs[0].Category)
	assert.Equal(t, domain.PriorityHigh, recs[0].Priority)
	assert.Equal(t, "Current cash reserves of 0.00 are below the recommended 6 months of expenses (600000.00).", recs[0].Details)
}

func TestRecommend_NoEmergencyFundNeededWithoutIncome(t *testing.T) {
	in := baseInput()
	in.Allocation = nil
	in.Profile.AnnualIncome = decimal.Zero

	recs := NewEngineWithPrinter(plainPrinter{}).Recommend(in)
	assert.Empty(t, recs)
}

func TestRecommend_Ordering(t *testing.T) {
	in := baseInput()
	in.Retirement.IncomeReplacementRatio = d("10")
	in.Goals = []domain.GoalAnalysis{{Name: "Home", YearsRemaining: 1, ProgressPercent: d("5")}}
	in.Allocation = domain.AllocationSnapshot{domain.AssetEquity: d("100")}

	recs := NewEngineWithPrinter(plainPrinter{}).Recommend(in)

	assert.Equal(t, []string{
		domain.CategoryRetirement,
		domain.CategoryGoalPlanning,
		domain.CategoryAssetAllocation, // Equity too high
		domain.CategoryAssetAllocation, // Bonds too low
		domain.CategoryEmergencyFund,
	}, categories(recs))
}

func TestRecommend_DefaultPrinterGroupsThousands(t *testing.T) {
	in := baseInput()
	in.Goals = []domain.GoalAnalysis{
		{Name: "Home", YearsRemaining: 3, ProgressPercent: d("12"), RequiredMonthlyContribution: d("5846.18")},
	}

	recs := NewEngine().Recommend(in)

	require.Len(t, recs, 1)
	assert.Contains(t, recs[0].Details, "5,846.18")
}

func TestTargetMix(t *testing.T) {
	for _, tier := range []domain.RiskTolerance{domain.RiskConservative, domain.RiskModerate, domain.RiskAggressive} {
		total := decimal.Zero
		for _, pct := range TargetMix(tier) {
			total = total.Add(pct)
		}
		assert.True(t, total.Equal(hundred), "%s mix should sum to 100", tier)
	}
}
