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

// holdingRepository implements domain.HoldingRepository
type holdingRepository struct {
	db *DB
}

// NewHoldingRepository creates a new holding repository
func NewHoldingRepository(db *DB) domain.HoldingRepository {
	return &holdingRepository{db: db}
}

// GetByID retrieves a holding by its ID
func (r *holdingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Holding, error) {
	query := `
		SELECT id, name, asset_class, book_value
		FROM holdings
		WHERE id = $1
	`

	holding, err := scanHolding(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("holding %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get holding by ID: %w", err)
	}

	return holding, nil
}

// Create creates a new holding
func (r *holdingRepository) Create(ctx context.Context, holding *domain.Holding) error {
	query := `
		INSERT INTO holdings (id, name, asset_class, book_value)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.ExecContext(ctx, query,
		holding.ID,
		holding.Name,
		string(holding.AssetClass),
		holding.BookValue.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to create holding: %w", err)
	}

	return nil
}

// List retrieves all holdings ordered by name
func (r *holdingRepository) List(ctx context.Context) ([]*domain.Holding, error) {
	query := `
		SELECT id, name, asset_class, book_value
		FROM holdings
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query holdings: %w", err)
	}
	defer rows.Close()

	var holdings []*domain.Holding
	for rows.Next() {
		holding, err := scanHolding(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		holdings = append(holdings, holding)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holdings: %w", err)
	}

	return holdings, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHolding(row rowScanner) (*domain.Holding, error) {
	var holding domain.Holding
	var bookValueStr string

	if err := row.Scan(&holding.ID, &holding.Name, &holding.AssetClass, &bookValueStr); err != nil {
		return nil, err
	}

	// Parse book_value (NUMERIC)
	bookValue, err := decimal.NewFromString(bookValueStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse book_value: %w", err)
	}
	holding.BookValue = bookValue

	return &holding, nil
}
