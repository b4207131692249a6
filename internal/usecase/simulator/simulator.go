package simulator

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthflow-roadmap/internal/domain"
)

// YearInput is everything Step needs to advance the portfolio by one year.
// It carries no reference to the running balance: that is threaded by Simulate.
type YearInput struct {
	Year           int
	Age            int
	RetirementAge  int
	AnnualSavings  decimal.Decimal
	ReturnRate     decimal.Decimal
	WithdrawalRate decimal.Decimal
	WorkingIncome  decimal.Decimal // income if the client is still working this year
	GoalsDue       []domain.Goal
}

// Step applies one year of the roadmap recurrence to a start-of-year balance.
//
// Logic:
//  1. The client is retired once Age >= RetirementAge
//  2. Savings are contributed only while working
//  3. Growth is earned on the start-of-year balance
//  4. Every goal due this year is withdrawn in full
//  5. Retired years draw WithdrawalRate of the start-of-year balance
//  6. End = Start + Growth + Contribution - GoalWithdrawals - RetirementWithdrawal
//
// The end balance is not floored at zero.
func Step(start decimal.Decimal, in YearInput) domain.TimelineEntry {
	isRetired := in.Age >= in.RetirementAge

	contribution := decimal.Zero
	if !isRetired {
		contribution = in.AnnualSavings
	}

	growth := start.Mul(in.ReturnRate)

	goalWithdrawals := decimal.Zero
	achieved := make([]string, 0, len(in.GoalsDue))
	for _, g := range in.GoalsDue {
		goalWithdrawals = goalWithdrawals.Add(g.TargetAmount)
		achieved = append(achieved, g.Name)
	}

	retirementWithdrawal := decimal.Zero
	income := in.WorkingIncome
	if isRetired {
		retirementWithdrawal = start.Mul(in.WithdrawalRate)
		income = retirementWithdrawal
	}

	end := start.Add(growth).Add(contribution).Sub(goalWithdrawals).Sub(retirementWithdrawal)

	return domain.TimelineEntry{
		Year:                 in.Year,
		Age:                  in.Age,
		PortfolioValueStart:  start,
		Contribution:         contribution,
		Growth:               growth,
		GoalWithdrawals:      goalWithdrawals,
		RetirementWithdrawal: retirementWithdrawal,
		PortfolioValueEnd:    end,
		Income:               income,
		GoalsAchieved:        achieved,
		IsRetired:            isRetired,
	}
}

// Simulator projects a portfolio forward year by year
type Simulator struct {
	assumptions domain.Assumptions
}

// NewSimulator creates a new Simulator working from the given assumptions
func NewSimulator(assumptions domain.Assumptions) *Simulator {
	return &Simulator{assumptions: assumptions}
}

// Simulate produces the Timeline for HorizonYears years starting at startYear.
// The same inputs always produce an identical Timeline.
//
// Returns a *domain.ConfigurationError if the profile or assumptions are invalid.
func (s *Simulator) Simulate(currentValue decimal.Decimal, profile domain.ClientProfile, startYear int) (domain.Timeline, error) {
	if err := s.assumptions.Validate(); err != nil {
		return nil, err
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if currentValue.IsNegative() {
		return nil, &domain.ConfigurationError{Field: "current_portfolio_value", Reason: "must not be negative"}
	}

	goalsByYear := groupGoalsByYear(profile.Goals)

	returnRate := s.assumptions.AnnualReturn(profile.RiskTolerance)
	incomeGrowth := decimal.NewFromInt(1).Add(s.assumptions.IncomeGrowthRate)
	annualSavings := profile.AnnualSavings()

	timeline := make(domain.Timeline, 0, s.assumptions.HorizonYears)
	balance := currentValue
	// income growth factor (1+g)^(year-startYear), kept exact by repeated multiplication
	incomeFactor := decimal.NewFromInt(1)

	for offset := 0; offset < s.assumptions.HorizonYears; offset++ {
		year := startYear + offset

		entry := Step(balance, YearInput{
			Year:           year,
			Age:            profile.CurrentAge + offset,
			RetirementAge:  profile.RetirementAge,
			AnnualSavings:  annualSavings,
			ReturnRate:     returnRate,
			WithdrawalRate: s.assumptions.SafeWithdrawalRate,
			WorkingIncome:  profile.AnnualIncome.Mul(incomeFactor),
			GoalsDue:       goalsByYear[year],
		})

		timeline = append(timeline, entry)
		balance = entry.PortfolioValueEnd
		incomeFactor = incomeFactor.Mul(incomeGrowth)
	}

	return timeline, nil
}

// groupGoalsByYear indexes goals by target year, keeping each year's goals in
// the order they were declared. Goals dated before the first simulated year are
// kept in the index but never looked up.
func groupGoalsByYear(goals []domain.Goal) map[int][]domain.Goal {
	sorted := make([]domain.Goal, len(goals))
	copy(sorted, goals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TargetYear < sorted[j].TargetYear
	})

	byYear := make(map[int][]domain.Goal)
	for _, g := range sorted {
		byYear[g.TargetYear] = append(byYear[g.TargetYear], g)
	}
	return byYear
}
