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

// profileRepository implements domain.ProfileRepository
type profileRepository struct {
	db *DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *DB) domain.ProfileRepository {
	return &profileRepository{db: db}
}

// GetByID retrieves a profile by its ID
// This method joins client_profiles and financial_goals tables
func (r *profileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ClientProfile, error) {
	profileQuery := `
		SELECT id, name, risk_tolerance, current_age, retirement_age, monthly_savings, annual_income
		FROM client_profiles
		WHERE id = $1
	`

	var profile domain.ClientProfile
	var savingsStr, incomeStr string

	err := r.db.QueryRowContext(ctx, profileQuery, id).Scan(
		&profile.ID,
		&profile.Name,
		&profile.RiskTolerance,
		&profile.CurrentAge,
		&profile.RetirementAge,
		&savingsStr,
		&incomeStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("profile %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if profile.MonthlySavings, err = decimal.NewFromString(savingsStr); err != nil {
		return nil, fmt.Errorf("failed to parse monthly_savings: %w", err)
	}
	if profile.AnnualIncome, err = decimal.NewFromString(incomeStr); err != nil {
		return nil, fmt.Errorf("failed to parse annual_income: %w", err)
	}

	// Goals keep the order they were declared in
	goalsQuery := `
		SELECT name, target_amount, target_year
		FROM financial_goals
		WHERE profile_id = $1
		ORDER BY position ASC
	`

	rows, err := r.db.QueryContext(ctx, goalsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query financial goals: %w", err)
	}
	defer rows.Close()

	profile.Goals = []domain.Goal{}
	for rows.Next() {
		var goal domain.Goal
		var targetStr string

		if err := rows.Scan(&goal.Name, &targetStr, &goal.TargetYear); err != nil {
			return nil, fmt.Errorf("failed to scan financial goal: %w", err)
		}

		// Parse target_amount (NUMERIC)
		target, err := decimal.NewFromString(targetStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse target_amount: %w", err)
		}
		goal.TargetAmount = target

		profile.Goals = append(profile.Goals, goal)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating financial goals: %w", err)
	}

	return &profile, nil
}

// Save creates or replaces a profile and its goals atomically
func (r *profileRepository) Save(ctx context.Context, profile *domain.ClientProfile) error {
	// Begin database transaction
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	upsert := `
		INSERT INTO client_profiles (id, name, risk_tolerance, current_age, retirement_age, monthly_savings, annual_income)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			risk_tolerance = EXCLUDED.risk_tolerance,
			current_age = EXCLUDED.current_age,
			retirement_age = EXCLUDED.retirement_age,
			monthly_savings = EXCLUDED.monthly_savings,
			annual_income = EXCLUDED.annual_income
	`
	_, err = dbTx.ExecContext(ctx, upsert,
		profile.ID,
		profile.Name,
		string(profile.RiskTolerance),
		profile.CurrentAge,
		profile.RetirementAge,
		profile.MonthlySavings.String(),
		profile.AnnualIncome.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	// Goals are replaced wholesale
	if _, err := dbTx.ExecContext(ctx, `DELETE FROM financial_goals WHERE profile_id = $1`, profile.ID); err != nil {
		return fmt.Errorf("failed to clear financial goals: %w", err)
	}

	insertGoal := `
		INSERT INTO financial_goals (profile_id, position, name, target_amount, target_year)
		VALUES ($1, $2, $3, $4, $5)
	`
	for i, goal := range profile.Goals {
		_, err := dbTx.ExecContext(ctx, insertGoal,
			profile.ID,
			i,
			goal.Name,
			goal.TargetAmount.String(),
			goal.TargetYear,
		)
		if err != nil {
			return fmt.Errorf("failed to insert financial goal %q: %w", goal.Name, err)
		}
	}

	// Commit the transaction
	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
