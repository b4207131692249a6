package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RetirementStatus grades retirement readiness by income replacement ratio
type RetirementStatus string

const (
	RetirementExcellent      RetirementStatus = "Excellent"
	RetirementGood           RetirementStatus = "Good"
	RetirementAdequate       RetirementStatus = "Adequate"
	RetirementNeedsAttention RetirementStatus = "Needs Attention"
	// RetirementUnknown is reported when retirement falls outside the horizon
	RetirementUnknown RetirementStatus = "Unknown"
)

// Sustainability tells whether the portfolio survives the retirement phase
type Sustainability string

const (
	Sustainable Sustainability = "Sustainable"
	AtRisk      Sustainability = "At Risk"
)

// RetirementAnalysis summarizes retirement readiness derived from a Timeline
type RetirementAnalysis struct {
	Status                     RetirementStatus `json:"status"`
	RetirementCorpus           decimal.Decimal  `json:"retirement_corpus"`
	SustainableIncome          decimal.Decimal  `json:"sustainable_income"`
	IncomeReplacementRatio     decimal.Decimal  `json:"income_replacement_ratio"`
	PortfolioSustainability    Sustainability   `json:"portfolio_sustainability,omitempty"`
	PortfolioValueAtHorizonEnd decimal.Decimal  `json:"portfolio_value_at_horizon_end"`
}

// GoalAnalysis is the funding picture of a single Goal
type GoalAnalysis struct {
	Name                        string             `json:"name"`
	TargetAmount                decimal.Decimal    `json:"target_amount"`
	TargetYear                  int                `json:"target_year"`
	YearsRemaining              int                `json:"years_remaining"`
	AllocationPercent           decimal.Decimal    `json:"allocation_percent"` // fraction of the portfolio earmarked, 0-1
	CurrentAllocation           decimal.Decimal    `json:"current_allocation"`
	ProgressPercent             decimal.Decimal    `json:"progress_percent"`
	RequiredMonthlyContribution decimal.Decimal    `json:"required_monthly_contribution"`
	ProjectedToAchieve          bool               `json:"projected_to_achieve"`
	RecommendedAllocation       AllocationSnapshot `json:"recommended_allocation"`
}

// Priority ranks a Recommendation
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
)

// Recommendation categories
const (
	CategoryRetirement      = "Retirement"
	CategoryGoalPlanning    = "Goal Planning"
	CategoryAssetAllocation = "Asset Allocation"
	CategoryEmergencyFund   = "Emergency Fund"
)

// Recommendation is a prioritized action item for the client
type Recommendation struct {
	Category    string   `json:"category"`
	Priority    Priority `json:"priority"`
	Description string   `json:"description"`
	Details     string   `json:"details"`
}

// Roadmap is everything a single planning request produces
type Roadmap struct {
	ID                    uuid.UUID          `json:"id"`
	ProfileID             uuid.UUID          `json:"profile_id"`
	GeneratedAt           time.Time          `json:"generated_at"`
	CurrentPortfolioValue decimal.Decimal    `json:"current_portfolio_value"`
	Timeline              Timeline           `json:"timeline"`
	Retirement            RetirementAnalysis `json:"retirement"`
	Goals                 []GoalAnalysis     `json:"goals"`
	Recommendations       []Recommendation   `json:"recommendations"`
}
