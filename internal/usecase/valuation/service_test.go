package valuation

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/wealthflow-roadmap/internal/domain"
)

// MockHoldingRepository is a mock implementation of HoldingRepository for testing
type MockHoldingRepository struct {
	mock.Mock
}

func (m *MockHoldingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Holding, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Holding), args.Error(1)
}

func (m *MockHoldingRepository) Create(ctx context.Context, holding *domain.Holding) error {
	args := m.Called(ctx, holding)
	return args.Error(0)
}

func (m *MockHoldingRepository) List(ctx context.Context) ([]*domain.Holding, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Holding), args.Error(1)
}

// MockMarketValueRepository is a mock implementation of MarketValueRepository for testing
type MockMarketValueRepository struct {
	mock.Mock
}

func (m *MockMarketValueRepository) Add(ctx context.Context, entry *domain.MarketValueHistory) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockMarketValueRepository) GetLatest(ctx context.Context, holdingID uuid.UUID) (*domain.MarketValueHistory, error) {
	args := m.Called(ctx, holdingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MarketValueHistory), args.Error(1)
}

func (m *MockMarketValueRepository) ListLatest(ctx context.Context) (map[uuid.UUID]*domain.MarketValueHistory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]*domain.MarketValueHistory), args.Error(1)
}

var fixedNow = time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC)

func newTestService() (*ValuationService, *MockHoldingRepository, *MockMarketValueRepository) {
	holdingRepo := new(MockHoldingRepository)
	marketValueRepo := new(MockMarketValueRepository)
	service := NewValuationService(holdingRepo, marketValueRepo)
	service.now = func() time.Time { return fixedNow }
	return service, holdingRepo, marketValueRepo
}

func notFound(id uuid.UUID) error {
	return fmt.Errorf("holding %s has no market value: %w", id, domain.ErrNotFound)
}

func TestUpdateMarketValue_Success(t *testing.T) {
	ctx := context.Background()
	service, holdingRepo, marketValueRepo := newTestService()

	holdingID := uuid.New()
	holdingRepo.On("GetByID", ctx, holdingID).Return(&domain.Holding{ID: holdingID, Name: "Nifty ETF", AssetClass: domain.AssetEquity}, nil)
	marketValueRepo.On("Add", ctx, mock.MatchedBy(func(e *domain.MarketValueHistory) bool {
		return e.HoldingID == holdingID && e.MarketValue.Equal(decimal.NewFromInt(1500)) && e.Date.Equal(fixedNow)
	})).Return(nil)

	entry, err := service.UpdateMarketValue(ctx, holdingID, decimal.NewFromInt(1500))

	require.NoError(t, err)
	assert.Equal(t, holdingID, entry.HoldingID)
	assert.NotEqual(t, uuid.Nil, entry.ID)
	holdingRepo.AssertExpectations(t)
	marketValueRepo.AssertExpectations(t)
}

func TestUpdateMarketValue_RejectsNonPositiveAmount(t *testing.T) {
	ctx := context.Background()
	service, holdingRepo, marketValueRepo := newTestService()

	entry, err := service.UpdateMarketValue(ctx, uuid.New(), decimal.Zero)

	assert.Nil(t, entry)
	assert.EqualError(t, err, "market value must be positive")
	holdingRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	marketValueRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestUpdateMarketValue_UnknownHolding(t *testing.T) {
	ctx := context.Background()
	service, holdingRepo, marketValueRepo := newTestService()

	holdingID := uuid.New()
	holdingRepo.On("GetByID", ctx, holdingID).Return(nil, fmt.Errorf("holding %s: %w", holdingID, domain.ErrNotFound))

	_, err := service.UpdateMarketValue(ctx, holdingID, decimal.NewFromInt(10))

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	marketValueRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestCreateHolding(t *testing.T) {
	ctx := context.Background()
	service, holdingRepo, _ := newTestService()

	holding := &domain.Holding{Name: "Gilt Fund", AssetClass: domain.AssetBonds, BookValue: decimal.NewFromInt(25000)}
	holdingRepo.On("Create", ctx, holding).Return(nil)

	err := service.CreateHolding(ctx, holding)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, holding.ID)
	holdingRepo.AssertExpectations(t)
}

func TestCreateHolding_RejectsInvalidHolding(t *testing.T) {
	tests := []struct {
		name    string
		holding domain.Holding
		wantErr string
	}{
		{name: "empty name", holding: domain.Holding{AssetClass: domain.AssetCash}, wantErr: "holding name cannot be empty"},
		{name: "unknown class", holding: domain.Holding{Name: "Coins", AssetClass: "Crypto"}, wantErr: "holding asset class is invalid"},
		{name: "negative book value", holding: domain.Holding{Name: "Savings", AssetClass: domain.AssetCash, BookValue: decimal.NewFromInt(-1)}, wantErr: "holding book value must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, holdingRepo, _ := newTestService()

			err := service.CreateHolding(context.Background(), &tt.holding)

			assert.EqualError(t, err, tt.wantErr)
			holdingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestGetHolding_UnrealizedGain(t *testing.T) {
	tests := []struct {
		name       string
		book       int64
		market     *int64
		wantValue  int64
		wantGain   int64
		wantPriced bool
	}{
		{name: "gain", book: 1000, market: ptr(1200), wantValue: 1200, wantGain: 200, wantPriced: true},
		{name: "loss", book: 1000, market: ptr(900), wantValue: 900, wantGain: -100, wantPriced: true},
		{name: "no history", book: 1000, market: nil, wantValue: 1000, wantGain: 0, wantPriced: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			service, holdingRepo, marketValueRepo := newTestService()

			holdingID := uuid.New()
			holdingRepo.On("GetByID", ctx, holdingID).Return(&domain.Holding{
				ID:         holdingID,
				Name:       "Gold Bond",
				AssetClass: domain.AssetGold,
				BookValue:  decimal.NewFromInt(tt.book),
			}, nil)

			if tt.market != nil {
				marketValueRepo.On("GetLatest", ctx, holdingID).Return(&domain.MarketValueHistory{
					HoldingID:   holdingID,
					MarketValue: decimal.NewFromInt(*tt.market),
				}, nil)
			} else {
				marketValueRepo.On("GetLatest", ctx, holdingID).Return(nil, notFound(holdingID))
			}

			value, err := service.GetHolding(ctx, holdingID)

			require.NoError(t, err)
			assert.Equal(t, "Gold Bond", value.Holding.Name)
			assert.Equal(t, tt.wantPriced, value.Priced)
			assert.True(t, value.MarketValue.Equal(decimal.NewFromInt(tt.wantValue)), "got %s", value.MarketValue)
			assert.True(t, value.UnrealizedGain.Equal(decimal.NewFromInt(tt.wantGain)), "got %s", value.UnrealizedGain)
		})
	}
}

func TestGetHolding_UnknownHolding(t *testing.T) {
	ctx := context.Background()
	service, holdingRepo, marketValueRepo := newTestService()

	holdingID := uuid.New()
	holdingRepo.On("GetByID", ctx, holdingID).Return(nil, fmt.Errorf("holding %s: %w", holdingID, domain.ErrNotFound))

	_, err := service.GetHolding(ctx, holdingID)

	assert.True(t, errors.Is(err, domain.ErrNotFound))
	marketValueRepo.AssertNotCalled(t, "GetLatest", mock.Anything, mock.Anything)
}

func TestListHoldings(t *testing.T) {
	ctx := context.Background()
	service, holdingRepo, marketValueRepo := newTestService()

	priced := &domain.Holding{ID: uuid.New(), Name: "Index Fund", AssetClass: domain.AssetEquity, BookValue: decimal.NewFromInt(500)}
	unpriced := &domain.Holding{ID: uuid.New(), Name: "Savings", AssetClass: domain.AssetCash, BookValue: decimal.NewFromInt(150)}

	holdingRepo.On("List", ctx).Return([]*domain.Holding{priced, unpriced}, nil)
	marketValueRepo.On("ListLatest", ctx).Return(map[uuid.UUID]*domain.MarketValueHistory{
		priced.ID: {HoldingID: priced.ID, MarketValue: decimal.NewFromInt(650)},
	}, nil)

	values, err := service.ListHoldings(ctx)

	require.NoError(t, err)
	require.Len(t, values, 2)
	assert.Equal(t, priced.ID, values[0].Holding.ID)
	assert.True(t, values[0].Priced)
	assert.True(t, values[0].UnrealizedGain.Equal(decimal.NewFromInt(150)))
	assert.False(t, values[1].Priced)
	assert.True(t, values[1].MarketValue.Equal(decimal.NewFromInt(150)))
	assert.True(t, values[1].UnrealizedGain.IsZero())
	marketValueRepo.AssertNumberOfCalls(t, "ListLatest", 1)
	marketValueRepo.AssertNotCalled(t, "GetLatest", mock.Anything, mock.Anything)
}

func TestValuate_MixesMarketAndBookValues(t *testing.T) {
	ctx := context.Background()
	service, holdingRepo, marketValueRepo := newTestService()

	equity := &domain.Holding{ID: uuid.New(), Name: "Index Fund", AssetClass: domain.AssetEquity, BookValue: decimal.NewFromInt(500)}
	bonds := &domain.Holding{ID: uuid.New(), Name: "Gilt Fund", AssetClass: domain.AssetBonds, BookValue: decimal.NewFromInt(250)}
	cash := &domain.Holding{ID: uuid.New(), Name: "Savings", AssetClass: domain.AssetCash, BookValue: decimal.NewFromInt(150)}

	holdingRepo.On("List", ctx).Return([]*domain.Holding{equity, bonds, cash}, nil)
	marketValueRepo.On("ListLatest", ctx).Return(map[uuid.UUID]*domain.MarketValueHistory{
		equity.ID: {HoldingID: equity.ID, MarketValue: decimal.NewFromInt(600)},
		bonds.ID:  {HoldingID: bonds.ID, MarketValue: decimal.NewFromInt(250)},
	}, nil)

	result, err := service.Valuate(ctx)

	require.NoError(t, err)
	assert.True(t, result.TotalValue.Equal(decimal.NewFromInt(1000)))
	assert.True(t, result.ByClass[domain.AssetCash].Equal(decimal.NewFromInt(150)))
	assert.True(t, result.Allocation[domain.AssetEquity].Equal(decimal.NewFromInt(60)))
	assert.True(t, result.Allocation[domain.AssetBonds].Equal(decimal.NewFromInt(25)))
	assert.True(t, result.Allocation[domain.AssetCash].Equal(decimal.NewFromInt(15)))
	assert.Equal(t, fixedNow, result.AsOf)
}

func TestValuate_EmptyPortfolio(t *testing.T) {
	ctx := context.Background()
	service, holdingRepo, marketValueRepo := newTestService()

	holdingRepo.On("List", ctx).Return([]*domain.Holding{}, nil)
	marketValueRepo.On("ListLatest", ctx).Return(map[uuid.UUID]*domain.MarketValueHistory{}, nil)

	result, err := service.Valuate(ctx)

	require.NoError(t, err)
	assert.True(t, result.TotalValue.IsZero())
	assert.Nil(t, result.Allocation)
}

func TestValuate_RepositoryFailure(t *testing.T) {
	ctx := context.Background()
	service, holdingRepo, marketValueRepo := newTestService()

	holding := &domain.Holding{ID: uuid.New(), Name: "Index Fund", AssetClass: domain.AssetEquity, BookValue: decimal.NewFromInt(500)}
	holdingRepo.On("List", ctx).Return([]*domain.Holding{holding}, nil)
	marketValueRepo.On("ListLatest", ctx).Return(nil, errors.New("connection reset"))

	_, err := service.Valuate(ctx)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func ptr(v int64) *int64 {
	return &v
}
