package planner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/simaogato/wealthflow-roadmap/internal/domain"
	"github.com/simaogato/wealthflow-roadmap/internal/usecase/valuation"
)

// PortfolioValuer supplies the current portfolio value and asset mix
type PortfolioValuer interface {
	Valuate(ctx context.Context) (valuation.Valuation, error)
}

// PlannerService handles roadmap planning requests
type PlannerService struct {
	ProfileRepo domain.ProfileRepository
	RoadmapRepo domain.RoadmapRepository
	Valuer      PortfolioValuer

	planner *Planner
	logger  *slog.Logger
	tracer  trace.Tracer
	now     func() time.Time
}

// NewPlannerService creates a new PlannerService instance
func NewPlannerService(
	assumptions domain.Assumptions,
	profileRepo domain.ProfileRepository,
	roadmapRepo domain.RoadmapRepository,
	valuer PortfolioValuer,
	logger *slog.Logger,
) *PlannerService {
	return &PlannerService{
		ProfileRepo: profileRepo,
		RoadmapRepo: roadmapRepo,
		Valuer:      valuer,
		planner:     NewPlanner(assumptions),
		logger:      logger,
		tracer:      otel.Tracer("github.com/simaogato/wealthflow-roadmap/internal/usecase/planner"),
		now:         time.Now,
	}
}

// CreateRoadmap builds and stores the roadmap of a profile.
// Logic:
//  1. Load the profile and its goals
//  2. Take a valuation snapshot (copied, never shared with other runs)
//  3. Simulate from the current calendar year, analyze, recommend
//  4. Persist the run
func (s *PlannerService) CreateRoadmap(ctx context.Context, profileID uuid.UUID) (_ *domain.Roadmap, err error) {
	ctx, span := s.tracer.Start(ctx, "PlannerService.CreateRoadmap",
		trace.WithAttributes(attribute.String("profile_id", profileID.String())))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	profile, err := s.ProfileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	snapshot, err := s.Valuer.Valuate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to value portfolio: %w", err)
	}

	now := s.now()
	roadmap, err := s.planner.Build(snapshot.TotalValue, *profile, snapshot.Allocation, now.Year())
	if err != nil {
		return nil, err
	}
	roadmap.ID = uuid.New()
	roadmap.GeneratedAt = now

	if err := s.RoadmapRepo.Save(ctx, roadmap); err != nil {
		return nil, fmt.Errorf("failed to save roadmap: %w", err)
	}

	s.logger.InfoContext(ctx, "roadmap created",
		slog.String("roadmap_id", roadmap.ID.String()),
		slog.String("profile_id", profileID.String()),
		slog.String("portfolio_value", snapshot.TotalValue.String()),
		slog.String("retirement_status", string(roadmap.Retirement.Status)),
		slog.Int("recommendations", len(roadmap.Recommendations)),
	)

	return roadmap, nil
}

// GetLatestRoadmap returns the most recent roadmap stored for a profile
func (s *PlannerService) GetLatestRoadmap(ctx context.Context, profileID uuid.UUID) (*domain.Roadmap, error) {
	roadmap, err := s.RoadmapRepo.GetLatest(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest roadmap: %w", err)
	}
	return roadmap, nil
}

// GetProfile returns a stored profile
func (s *PlannerService) GetProfile(ctx context.Context, profileID uuid.UUID) (*domain.ClientProfile, error) {
	return s.ProfileRepo.GetByID(ctx, profileID)
}

// SaveProfile validates and stores a profile, assigning an ID when missing
func (s *PlannerService) SaveProfile(ctx context.Context, profile *domain.ClientProfile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}

	if err := s.ProfileRepo.Save(ctx, profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	s.logger.InfoContext(ctx, "profile saved", slog.String("profile_id", profile.ID.String()), slog.Int("goals", len(profile.Goals)))
	return nil
}
