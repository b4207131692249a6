package domain

import (
	"github.com/shopspring/decimal"
)

// TimelineEntry is the portfolio state for one simulated calendar year.
//
// Invariant:
//
//	PortfolioValueEnd = PortfolioValueStart + Growth + Contribution - GoalWithdrawals - RetirementWithdrawal
type TimelineEntry struct {
	Year                 int             `json:"year"`
	Age                  int             `json:"age"`
	PortfolioValueStart  decimal.Decimal `json:"portfolio_value_start"`
	Contribution         decimal.Decimal `json:"contribution"`
	Growth               decimal.Decimal `json:"growth"`
	GoalWithdrawals      decimal.Decimal `json:"goal_withdrawals"`
	RetirementWithdrawal decimal.Decimal `json:"retirement_withdrawal"`
	PortfolioValueEnd    decimal.Decimal `json:"portfolio_value_end"`
	Income               decimal.Decimal `json:"income"`
	GoalsAchieved        []string        `json:"goals_achieved"`
	IsRetired            bool            `json:"is_retired"`
}

// HasAchieved reports whether the named goal was funded in this year
func (e *TimelineEntry) HasAchieved(goalName string) bool {
	for _, name := range e.GoalsAchieved {
		if name == goalName {
			return true
		}
	}
	return false
}

// Timeline is the year-ordered output of one simulation run.
// The start value of entry n+1 always equals the end value of entry n.
type Timeline []TimelineEntry

// StartYear returns the first simulated year, or 0 for an empty timeline
func (t Timeline) StartYear() int {
	if len(t) == 0 {
		return 0
	}
	return t[0].Year
}

// EntryForAge returns the first entry at the given age
func (t Timeline) EntryForAge(age int) (*TimelineEntry, bool) {
	for i := range t {
		if t[i].Age == age {
			return &t[i], true
		}
	}
	return nil, false
}

// LastEntryAtOrBefore returns the latest entry whose year is <= year.
// Goals past the horizon resolve to the final simulated year.
func (t Timeline) LastEntryAtOrBefore(year int) (*TimelineEntry, bool) {
	for i := len(t) - 1; i >= 0; i-- {
		if t[i].Year <= year {
			return &t[i], true
		}
	}
	return nil, false
}

// LastRetiredEntry returns the final entry flagged as retired
func (t Timeline) LastRetiredEntry() (*TimelineEntry, bool) {
	for i := len(t) - 1; i >= 0; i-- {
		if t[i].IsRetired {
			return &t[i], true
		}
	}
	return nil, false
}
