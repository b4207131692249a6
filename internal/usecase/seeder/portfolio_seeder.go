package seeder

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthflow-roadmap/internal/domain"
)

// DemoHolding is a seeded position with its first recorded price
type DemoHolding struct {
	Holding     domain.Holding
	MarketValue decimal.Decimal
}

// DemoHoldings returns the demo equity positions.
// Book value is quantity x average price, market value is quantity x last price.
func DemoHoldings() []DemoHolding {
	position := func(id, name string, quantity int64, avgPrice, lastPrice string) DemoHolding {
		qty := decimal.NewFromInt(quantity)
		return DemoHolding{
			Holding: domain.Holding{
				ID:         uuid.MustParse(id),
				Name:       name,
				AssetClass: domain.AssetEquity,
				BookValue:  qty.Mul(decimal.RequireFromString(avgPrice)),
			},
			MarketValue: qty.Mul(decimal.RequireFromString(lastPrice)),
		}
	}

	return []DemoHolding{
		position("00000000-0000-0000-0000-000000000201", "INFY", 10, "1450.75", "1560.25"),
		position("00000000-0000-0000-0000-000000000202", "HDFCBANK", 15, "1650.50", "1710.80"),
		position("00000000-0000-0000-0000-000000000203", "RELIANCE", 8, "2430.25", "2510.60"),
	}
}

// PortfolioSeeder handles seeding of the demo holdings
type PortfolioSeeder struct {
	holdingRepo     domain.HoldingRepository
	marketValueRepo domain.MarketValueRepository
}

// NewPortfolioSeeder creates a new PortfolioSeeder instance
func NewPortfolioSeeder(holdingRepo domain.HoldingRepository, marketValueRepo domain.MarketValueRepository) *PortfolioSeeder {
	return &PortfolioSeeder{
		holdingRepo:     holdingRepo,
		marketValueRepo: marketValueRepo,
	}
}

// Seed creates each missing demo holding and records its first price at asOf.
// Holdings that already exist keep their history.
func (s *PortfolioSeeder) Seed(ctx context.Context, asOf time.Time) error {
	for _, demo := range DemoHoldings() {
		_, err := s.holdingRepo.GetByID(ctx, demo.Holding.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		holding := demo.Holding
		if err := s.holdingRepo.Create(ctx, &holding); err != nil {
			return err
		}

		entry := &domain.MarketValueHistory{
			ID:          uuid.New(),
			HoldingID:   holding.ID,
			Date:        asOf,
			MarketValue: demo.MarketValue,
		}
		if err := s.marketValueRepo.Add(ctx, entry); err != nil {
			return err
		}
	}

	return nil
}
