package seeder

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthflow-roadmap/internal/domain"
)

// DefaultProfileID is the fixed ID of the demo profile
var DefaultProfileID = uuid.MustParse("00000000-0000-0000-0000-000000000101")

// homePurchaseLeadYears places the demo home purchase inside the near-term window
const homePurchaseLeadYears = 5

// ProfileSeeder handles seeding of the default client profile
type ProfileSeeder struct {
	repo domain.ProfileRepository
}

// NewProfileSeeder creates a new ProfileSeeder instance
func NewProfileSeeder(repo domain.ProfileRepository) *ProfileSeeder {
	return &ProfileSeeder{
		repo: repo,
	}
}

// DefaultProfile returns the demo profile with goal years relative to currentYear
func DefaultProfile(currentYear int) *domain.ClientProfile {
	const currentAge, retirementAge = 35, 60

	return &domain.ClientProfile{
		ID:             DefaultProfileID,
		Name:           "Default Client",
		RiskTolerance:  domain.RiskModerate,
		CurrentAge:     currentAge,
		RetirementAge:  retirementAge,
		MonthlySavings: decimal.NewFromInt(50000),
		AnnualIncome:   decimal.NewFromInt(1500000),
		Goals: []domain.Goal{
			{
				Name:         "Retirement",
				TargetAmount: decimal.NewFromInt(10000000),
				TargetYear:   currentYear + retirementAge - currentAge,
			},
			{
				Name:         "Home Purchase",
				TargetAmount: decimal.NewFromInt(5000000),
				TargetYear:   currentYear + homePurchaseLeadYears,
			},
		},
	}
}

// Seed ensures the default profile exists in the database.
// An existing profile is left untouched, even if it was edited.
func (s *ProfileSeeder) Seed(ctx context.Context, currentYear int) error {
	_, err := s.repo.GetByID(ctx, DefaultProfileID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	profile := DefaultProfile(currentYear)

	// Validate before creating
	if err := profile.Validate(); err != nil {
		return err
	}

	return s.repo.Save(ctx, profile)
}
