package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/simaogato/wealthflow-roadmap/internal/domain"
)

// roadmapRepository implements domain.RoadmapRepository
type roadmapRepository struct {
	db *DB
}

// NewRoadmapRepository creates a new roadmap repository
func NewRoadmapRepository(db *DB) domain.RoadmapRepository {
	return &roadmapRepository{db: db}
}

// Save stores a roadmap run.
// Headline figures get their own columns; the full roadmap is kept as a JSONB payload.
func (r *roadmapRepository) Save(ctx context.Context, roadmap *domain.Roadmap) error {
	payload, err := json.Marshal(roadmap)
	if err != nil {
		return fmt.Errorf("failed to encode roadmap: %w", err)
	}

	query := `
		INSERT INTO roadmaps (id, profile_id, generated_at, current_portfolio_value,
			retirement_status, portfolio_value_at_horizon_end, payload)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = r.db.ExecContext(ctx, query,
		roadmap.ID,
		roadmap.ProfileID,
		roadmap.GeneratedAt,
		roadmap.CurrentPortfolioValue.String(),
		string(roadmap.Retirement.Status),
		roadmap.Retirement.PortfolioValueAtHorizonEnd.String(),
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("failed to insert roadmap: %w", err)
	}

	return nil
}

// GetLatest retrieves the most recent roadmap generated for a profile
func (r *roadmapRepository) GetLatest(ctx context.Context, profileID uuid.UUID) (*domain.Roadmap, error) {
	query := `
		SELECT payload
		FROM roadmaps
		WHERE profile_id = $1
		ORDER BY generated_at DESC
		LIMIT 1
	`

	var payload []byte
	if err := r.db.QueryRowContext(ctx, query, profileID).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("no roadmap for profile %s: %w", profileID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get latest roadmap: %w", err)
	}

	var roadmap domain.Roadmap
	if err := json.Unmarshal(payload, &roadmap); err != nil {
		return nil, fmt.Errorf("failed to decode roadmap: %w", err)
	}

	return &roadmap, nil
}
