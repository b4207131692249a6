package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthflow-roadmap/internal/domain"
)

// marketValueRepository implements domain.MarketValueRepository
type marketValueRepository struct {
	db *DB
}

// NewMarketValueRepository creates a new market value repository
func NewMarketValueRepository(db *DB) domain.MarketValueRepository {
	return &marketValueRepository{db: db}
}

// Add appends a price point to a holding's history
func (r *marketValueRepository) Add(ctx context.Context, entry *domain.MarketValueHistory) error {
	query := `
		INSERT INTO market_value_history (id, holding_id, date, market_value)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := r.db.ExecContext(ctx, query, entry.ID, entry.HoldingID, entry.Date, entry.MarketValue.String()); err != nil {
		return fmt.Errorf("failed to record market value for holding %s: %w", entry.HoldingID, err)
	}
	return nil
}

// GetLatest retrieves the newest price point of one holding.
// Points recorded at the same instant are ordered by ID so the result is stable.
func (r *marketValueRepository) GetLatest(ctx context.Context, holdingID uuid.UUID) (*domain.MarketValueHistory, error) {
	query := `
		SELECT id, holding_id, date, market_value
		FROM market_value_history
		WHERE holding_id = $1
		ORDER BY date DESC, id DESC
		LIMIT 1
	`

	entry, err := scanMarketValue(r.db.QueryRowContext(ctx, query, holdingID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("holding %s has no market value: %w", holdingID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get latest market value: %w", err)
	}
	return entry, nil
}

// ListLatest retrieves the newest price point of every holding in a single query.
// Holdings that were never priced are absent from the result.
func (r *marketValueRepository) ListLatest(ctx context.Context) (map[uuid.UUID]*domain.MarketValueHistory, error) {
	query := `
		SELECT DISTINCT ON (holding_id) id, holding_id, date, market_value
		FROM market_value_history
		ORDER BY holding_id, date DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest market values: %w", err)
	}
	defer rows.Close()

	latest := make(map[uuid.UUID]*domain.MarketValueHistory)
	for rows.Next() {
		entry, err := scanMarketValue(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan market value: %w", err)
		}
		latest[entry.HoldingID] = entry
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating market values: %w", err)
	}

	return latest, nil
}

func scanMarketValue(row rowScanner) (*domain.MarketValueHistory, error) {
	var entry domain.MarketValueHistory
	var marketValueStr string

	if err := row.Scan(&entry.ID, &entry.HoldingID, &entry.Date, &marketValueStr); err != nil {
		return nil, err
	}

	marketValue, err := decimal.NewFromString(marketValueStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse market_value: %w", err)
	}
	entry.MarketValue = marketValue

	return &entry, nil
}
