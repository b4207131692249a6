package domain

import (
	"context"

	"github.com/google/uuid"
)

// HoldingRepository defines the interface for holding persistence operations
type HoldingRepository interface {
	// GetByID retrieves a holding by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Holding, error)

	// Create creates a new holding
	Create(ctx context.Context, holding *Holding) error

	// List retrieves all holdings
	List(ctx context.Context) ([]*Holding, error)
}

// MarketValueRepository defines the interface for market value history persistence operations
type MarketValueRepository interface {
	// Add creates a new market value history entry
	Add(ctx context.Context, entry *MarketValueHistory) error

	// GetLatest retrieves the most recent market value entry for a given holding
	GetLatest(ctx context.Context, holdingID uuid.UUID) (*MarketValueHistory, error)

	// ListLatest retrieves the most recent entry of every priced holding, keyed by holding ID
	ListLatest(ctx context.Context) (map[uuid.UUID]*MarketValueHistory, error)
}

// ProfileRepository defines the interface for client profile persistence operations
type ProfileRepository interface {
	// GetByID retrieves a profile and its goals
	GetByID(ctx context.Context, id uuid.UUID) (*ClientProfile, error)

	// Save creates or replaces a profile together with its goals
	Save(ctx context.Context, profile *ClientProfile) error
}

// RoadmapRepository stores the summary of generated roadmaps
type RoadmapRepository interface {
	// Save persists a roadmap run
	Save(ctx context.Context, roadmap *Roadmap) error

	// GetLatest retrieves the most recent roadmap generated for a profile
	GetLatest(ctx context.Context, profileID uuid.UUID) (*Roadmap, error)
}
