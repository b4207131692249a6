package seeder

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthflow-roadmap/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProfileRepository is a mock implementation of ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ClientProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClientProfile), args.Error(1)
}

func (m *MockProfileRepository) Save(ctx context.Context, profile *domain.ClientProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func notFound() error {
	return fmt.Errorf("profile %s: %w", DefaultProfileID, domain.ErrNotFound)
}

func TestProfileSeeder_Seed_ProfileMissing(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProfileRepository)
	seeder := NewProfileSeeder(mockRepo)

	mockRepo.On("GetByID", ctx, DefaultProfileID).Return(nil, notFound())
	mockRepo.On("Save", ctx, mock.MatchedBy(func(p *domain.ClientProfile) bool {
		return p.ID == DefaultProfileID &&
			p.RiskTolerance == domain.RiskModerate &&
			p.CurrentAge == 35 &&
			p.RetirementAge == 60 &&
			p.MonthlySavings.Equal(decimal.NewFromInt(50000)) &&
			len(p.Goals) == 2
	})).Return(nil)

	// Execute
	err := seeder.Seed(ctx, 2026)

	// Assert
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockRepo.AssertNumberOfCalls(t, "Save", 1)
}

func TestProfileSeeder_Seed_ProfileExists(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProfileRepository)
	seeder := NewProfileSeeder(mockRepo)

	mockRepo.On("GetByID", ctx, DefaultProfileID).Return(DefaultProfile(2020), nil)

	// Execute
	err := seeder.Seed(ctx, 2026)

	// Assert
	assert.NoError(t, err)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProfileSeeder_Seed_LookupFailure(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProfileRepository)
	seeder := NewProfileSeeder(mockRepo)

	mockRepo.On("GetByID", ctx, DefaultProfileID).Return(nil, errors.New("connection refused"))

	// Execute
	err := seeder.Seed(ctx, 2026)

	// Assert
	assert.EqualError(t, err, "connection refused")
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestDefaultProfile_GoalYears(t *testing.T) {
	profile := DefaultProfile(2026)

	assert.NoError(t, profile.Validate())
	assert.Equal(t, "Retirement", profile.Goals[0].Name)
	assert.Equal(t, 2051, profile.Goals[0].TargetYear)
	assert.Equal(t, "Home Purchase", profile.Goals[1].Name)
	assert.Equal(t, 2031, profile.Goals[1].TargetYear)
}
