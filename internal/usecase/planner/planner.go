package planner

import (
	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthflow-roadmap/internal/domain"
	"github.com/simaogato/wealthflow-roadmap/internal/usecase/goal"
	"github.com/simaogato/wealthflow-roadmap/internal/usecase/recommendation"
	"github.com/simaogato/wealthflow-roadmap/internal/usecase/retirement"
	"github.com/simaogato/wealthflow-roadmap/internal/usecase/simulator"
)

// Planner chains the roadmap components for a single client.
// It holds no per-run state and is safe for concurrent use.
type Planner struct {
	simulator   *simulator.Simulator
	retirement  *retirement.Analyzer
	goals       *goal.Analyzer
	recommender *recommendation.Engine
}

// NewPlanner creates a Planner whose components all share the same assumptions
func NewPlanner(assumptions domain.Assumptions) *Planner {
	return &Planner{
		simulator:   simulator.NewSimulator(assumptions),
		retirement:  retirement.NewAnalyzer(assumptions),
		goals:       goal.NewAnalyzer(assumptions),
		recommender: recommendation.NewEngine(),
	}
}

// Build runs simulation, analyses and recommendations for one profile.
// allocation may be nil when the current asset mix is unknown.
// The returned Roadmap has no ID or generation time; callers that persist it assign them.
func (p *Planner) Build(currentValue decimal.Decimal, profile domain.ClientProfile, allocation domain.AllocationSnapshot, startYear int) (*domain.Roadmap, error) {
	timeline, err := p.simulator.Simulate(currentValue, profile, startYear)
	if err != nil {
		return nil, err
	}

	retirementAnalysis := p.retirement.Analyze(timeline, profile)
	goalAnalyses := p.goals.Analyze(profile.Goals, timeline, currentValue, profile.RiskTolerance)

	recommendations := p.recommender.Recommend(recommendation.Input{
		Profile:               profile,
		CurrentPortfolioValue: currentValue,
		Retirement:            retirementAnalysis,
		Goals:                 goalAnalyses,
		Allocation:            allocation,
	})

	return &domain.Roadmap{
		ProfileID:             profile.ID,
		CurrentPortfolioValue: currentValue,
		Timeline:              timeline,
		Retirement:            retirementAnalysis,
		Goals:                 goalAnalyses,
		Recommendations:       recommendations,
	}, nil
}
