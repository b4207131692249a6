package valuation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthflow-roadmap/internal/domain"
	"github.com/simaogato/wealthflow-roadmap/internal/usecase/allocator"
)

// Valuation is a point-in-time view of the portfolio.
// It is returned by value so later market updates never alter a roadmap in progress.
type Valuation struct {
	TotalValue decimal.Decimal
	ByClass    map[domain.AssetClass]decimal.Decimal
	// Allocation is nil when the portfolio is empty
	Allocation domain.AllocationSnapshot
	AsOf       time.Time
}

// HoldingValue is a holding together with its current valuation
type HoldingValue struct {
	Holding domain.Holding
	// MarketValue falls back to the book value when the holding was never priced
	MarketValue    decimal.Decimal
	Priced         bool
	UnrealizedGain decimal.Decimal
}

func valueHolding(holding domain.Holding, latest *domain.MarketValueHistory) HoldingValue {
	if latest == nil {
		return HoldingValue{Holding: holding, MarketValue: holding.BookValue, UnrealizedGain: decimal.Zero}
	}
	return HoldingValue{
		Holding:        holding,
		MarketValue:    latest.MarketValue,
		Priced:         true,
		UnrealizedGain: latest.MarketValue.Sub(holding.BookValue),
	}
}

// ValuationService values holdings and records their market prices
type ValuationService struct {
	HoldingRepo     domain.HoldingRepository
	MarketValueRepo domain.MarketValueRepository
	now             func() time.Time
}

// NewValuationService creates a new ValuationService instance
func NewValuationService(holdingRepo domain.HoldingRepository, marketValueRepo domain.MarketValueRepository) *ValuationService {
	return &ValuationService{
		HoldingRepo:     holdingRepo,
		MarketValueRepo: marketValueRepo,
		now:             time.Now,
	}
}

// CreateHolding validates and stores a new holding, assigning its ID
func (s *ValuationService) CreateHolding(ctx context.Context, holding *domain.Holding) error {
	if err := holding.Validate(); err != nil {
		return err
	}

	holding.ID = uuid.New()
	return s.HoldingRepo.Create(ctx, holding)
}

// UpdateMarketValue records a new market value point for a holding
// Logic: Insert a new row into market_value_history (the book value is untouched)
// Returns the created market value history entry
func (s *ValuationService) UpdateMarketValue(ctx context.Context, holdingID uuid.UUID, amount decimal.Decimal) (*domain.MarketValueHistory, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, errors.New("market value must be positive")
	}

	// Verify holding exists
	if _, err := s.HoldingRepo.GetByID(ctx, holdingID); err != nil {
		return nil, err
	}

	entry := &domain.MarketValueHistory{
		ID:          uuid.New(),
		HoldingID:   holdingID,
		Date:        s.now(),
		MarketValue: amount,
	}

	if err := s.MarketValueRepo.Add(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// GetHolding returns one holding with its unrealized gain (MarketValue - BookValue).
// A holding without market history has no gain.
func (s *ValuationService) GetHolding(ctx context.Context, holdingID uuid.UUID) (HoldingValue, error) {
	holding, err := s.HoldingRepo.GetByID(ctx, holdingID)
	if err != nil {
		return HoldingValue{}, err
	}

	latest, err := s.MarketValueRepo.GetLatest(ctx, holdingID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return HoldingValue{}, err
	}

	return valueHolding(*holding, latest), nil
}

// ListHoldings values every holding at its latest market price
func (s *ValuationService) ListHoldings(ctx context.Context) ([]HoldingValue, error) {
	holdings, err := s.HoldingRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}

	latest, err := s.MarketValueRepo.ListLatest(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get market values: %w", err)
	}

	values := make([]HoldingValue, 0, len(holdings))
	for _, holding := range holdings {
		values = append(values, valueHolding(*holding, latest[holding.ID]))
	}
	return values, nil
}

// Valuate computes the current portfolio value and asset-class allocation.
// Logic:
//   - Each holding is valued at its latest market value, falling back to book value
//   - Values are summed per asset class and in total
//   - The allocation snapshot is derived from the per-class values
func (s *ValuationService) Valuate(ctx context.Context) (Valuation, error) {
	holdings, err := s.ListHoldings(ctx)
	if err != nil {
		return Valuation{}, err
	}

	byClass := make(map[domain.AssetClass]decimal.Decimal)
	total := decimal.Zero
	for _, h := range holdings {
		class := h.Holding.AssetClass
		byClass[class] = byClass[class].Add(h.MarketValue)
		total = total.Add(h.MarketValue)
	}

	result := Valuation{
		TotalValue: total,
		ByClass:    byClass,
		AsOf:       s.now(),
	}

	if total.GreaterThan(decimal.Zero) {
		snapshot, err := allocator.CalculateAllocation(byClass)
		if err != nil {
			return Valuation{}, fmt.Errorf("failed to calculate allocation: %w", err)
		}
		result.Allocation = snapshot
	}

	return result, nil
}
