package grpc

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/wealthflow-roadmap/internal/domain"
	"github.com/simaogato/wealthflow-roadmap/internal/usecase/valuation"
)

// RoadmapPlanner is the planning use case served over gRPC
type RoadmapPlanner interface {
	CreateRoadmap(ctx context.Context, profileID uuid.UUID) (*domain.Roadmap, error)
	GetLatestRoadmap(ctx context.Context, profileID uuid.UUID) (*domain.Roadmap, error)
	GetProfile(ctx context.Context, profileID uuid.UUID) (*domain.ClientProfile, error)
	SaveProfile(ctx context.Context, profile *domain.ClientProfile) error
}

// PortfolioService is the valuation use case served over gRPC
type PortfolioService interface {
	Valuate(ctx context.Context) (valuation.Valuation, error)
	CreateHolding(ctx context.Context, holding *domain.Holding) error
	ListHoldings(ctx context.Context) ([]valuation.HoldingValue, error)
	GetHolding(ctx context.Context, holdingID uuid.UUID) (valuation.HoldingValue, error)
	UpdateMarketValue(ctx context.Context, holdingID uuid.UUID, amount decimal.Decimal) (*domain.MarketValueHistory, error)
}

// Server implements the RoadmapService gRPC server
type Server struct {
	PlannerService   RoadmapPlanner
	PortfolioService PortfolioService
}

var _ RoadmapServiceServer = (*Server)(nil)

// NewServer creates a new gRPC server instance
func NewServer(plannerService RoadmapPlanner, portfolioService PortfolioService) *Server {
	return &Server{
		PlannerService:   plannerService,
		PortfolioService: portfolioService,
	}
}

type profileRequest struct {
	ProfileID string `json:"profile_id"`
}

type holdingRequest struct {
	HoldingID string `json:"holding_id"`
}

type createHoldingRequest struct {
	Name       string `json:"name"`
	AssetClass string `json:"asset_class"`
	BookValue  string `json:"book_value"`
}

type holdingResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	AssetClass     string          `json:"asset_class"`
	BookValue      decimal.Decimal `json:"book_value"`
	MarketValue    decimal.Decimal `json:"market_value"`
	Priced         bool            `json:"priced"`
	UnrealizedGain decimal.Decimal `json:"unrealized_gain"`
}

type listHoldingsResponse struct {
	Holdings []holdingResponse `json:"holdings"`
}

func toHoldingResponse(v valuation.HoldingValue) holdingResponse {
	return holdingResponse{
		ID:             v.Holding.ID.String(),
		Name:           v.Holding.Name,
		AssetClass:     string(v.Holding.AssetClass),
		BookValue:      v.Holding.BookValue,
		MarketValue:    v.MarketValue,
		Priced:         v.Priced,
		UnrealizedGain: v.UnrealizedGain,
	}
}

type updateMarketValueRequest struct {
	HoldingID   string `json:"holding_id"`
	MarketValue string `json:"market_value"`
}

type marketValueResponse struct {
	EntryID     string          `json:"entry_id"`
	HoldingID   string          `json:"holding_id"`
	MarketValue decimal.Decimal `json:"market_value"`
	CreatedAt   time.Time       `json:"created_at"`
}

type valuationResponse struct {
	TotalValue decimal.Decimal                       `json:"total_value"`
	ByClass    map[domain.AssetClass]decimal.Decimal `json:"by_class"`
	Allocation domain.AllocationSnapshot             `json:"allocation,omitempty"`
	AsOf       time.Time                             `json:"as_of"`
}

// CreateRoadmap handles the CreateRoadmap RPC
func (s *Server) CreateRoadmap(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	profileID, err := parseProfileID(req)
	if err != nil {
		return nil, err
	}

	// Call usecase service
	roadmap, err := s.PlannerService.CreateRoadmap(ctx, profileID)
	if err != nil {
		return nil, mapError(err)
	}

	return respond(roadmap)
}

// GetLatestRoadmap handles the GetLatestRoadmap RPC
func (s *Server) GetLatestRoadmap(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	profileID, err := parseProfileID(req)
	if err != nil {
		return nil, err
	}

	roadmap, err := s.PlannerService.GetLatestRoadmap(ctx, profileID)
	if err != nil {
		return nil, mapError(err)
	}

	return respond(roadmap)
}

// CreateHolding handles the CreateHolding RPC.
// A new holding has no market value until UpdateMarketValue is called.
func (s *Server) CreateHolding(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in createHoldingRequest
	if err := fromStruct(req, &in); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid request: %v", err)
	}

	bookValue := decimal.Zero
	if in.BookValue != "" {
		parsed, err := decimal.NewFromString(in.BookValue)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid book_value format: %v", err)
		}
		bookValue = parsed
	}

	holding := &domain.Holding{
		Name:       in.Name,
		AssetClass: domain.AssetClass(in.AssetClass),
		BookValue:  bookValue,
	}
	if err := s.PortfolioService.CreateHolding(ctx, holding); err != nil {
		return nil, mapError(err)
	}

	return respond(toHoldingResponse(valuation.HoldingValue{
		Holding:        *holding,
		MarketValue:    holding.BookValue,
		UnrealizedGain: decimal.Zero,
	}))
}

// ListHoldings handles the ListHoldings RPC
func (s *Server) ListHoldings(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	values, err := s.PortfolioService.ListHoldings(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	resp := listHoldingsResponse{Holdings: make([]holdingResponse, 0, len(values))}
	for _, v := range values {
		resp.Holdings = append(resp.Holdings, toHoldingResponse(v))
	}

	return respond(resp)
}

// GetHolding handles the GetHolding RPC
func (s *Server) GetHolding(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in holdingRequest
	if err := fromStruct(req, &in); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid request: %v", err)
	}

	holdingID, err := uuid.Parse(in.HoldingID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid holding_id format: %v", err)
	}

	value, err := s.PortfolioService.GetHolding(ctx, holdingID)
	if err != nil {
		return nil, mapError(err)
	}

	return respond(toHoldingResponse(value))
}

// GetValuation handles the GetValuation RPC
func (s *Server) GetValuation(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	result, err := s.PortfolioService.Valuate(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	return respond(valuationResponse{
		TotalValue: result.TotalValue,
		ByClass:    result.ByClass,
		Allocation: result.Allocation,
		AsOf:       result.AsOf,
	})
}

// UpdateMarketValue handles the UpdateMarketValue RPC
func (s *Server) UpdateMarketValue(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in updateMarketValueRequest
	if err := fromStruct(req, &in); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid request: %v", err)
	}

	// Parse holding ID
	holdingID, err := uuid.Parse(in.HoldingID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid holding_id format: %v", err)
	}

	// Parse market value from string to decimal
	marketValue, err := decimal.NewFromString(in.MarketValue)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid market_value format: %v", err)
	}

	entry, err := s.PortfolioService.UpdateMarketValue(ctx, holdingID, marketValue)
	if err != nil {
		return nil, mapError(err)
	}

	return respond(marketValueResponse{
		EntryID:     entry.ID.String(),
		HoldingID:   entry.HoldingID.String(),
		MarketValue: entry.MarketValue,
		CreatedAt:   entry.Date,
	})
}

// GetProfile handles the GetProfile RPC
func (s *Server) GetProfile(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	profileID, err := parseProfileID(req)
	if err != nil {
		return nil, err
	}

	profile, err := s.PlannerService.GetProfile(ctx, profileID)
	if err != nil {
		return nil, mapError(err)
	}

	return respond(profile)
}

// SaveProfile handles the SaveProfile RPC.
// The request is the JSON form of a profile; a missing id creates a new profile.
func (s *Server) SaveProfile(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var profile domain.ClientProfile
	if err := fromStruct(req, &profile); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid profile: %v", err)
	}

	if err := s.PlannerService.SaveProfile(ctx, &profile); err != nil {
		return nil, mapError(err)
	}

	return respond(&profile)
}

func parseProfileID(req *structpb.Struct) (uuid.UUID, error) {
	var in profileRequest
	if err := fromStruct(req, &in); err != nil {
		return uuid.Nil, status.Errorf(codes.InvalidArgument, "invalid request: %v", err)
	}

	profileID, err := uuid.Parse(in.ProfileID)
	if err != nil {
		return uuid.Nil, status.Errorf(codes.InvalidArgument, "invalid profile_id format: %v", err)
	}
	return profileID, nil
}

func respond(v any) (*structpb.Struct, error) {
	out, err := toStruct(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "%s", err)
	}
	return out, nil
}

// mapError converts domain errors to gRPC status errors
func mapError(err error) error {
	if err == nil {
		return nil
	}

	errorMsg := err.Error()

	if errors.Is(err, domain.ErrNotFound) {
		return status.Errorf(codes.NotFound, "%s", errorMsg)
	}

	if domain.IsConfigurationError(err) {
		return status.Errorf(codes.InvalidArgument, "%s", errorMsg)
	}

	// Map common validation errors to InvalidArgument
	if strings.Contains(errorMsg, "must be positive") ||
		strings.Contains(errorMsg, "must not be negative") ||
		strings.Contains(errorMsg, "cannot be empty") ||
		strings.Contains(errorMsg, "is invalid") {
		return status.Errorf(codes.InvalidArgument, "%s", errorMsg)
	}

	// Default to Internal error for unknown errors
	return status.Errorf(codes.Internal, "%s", errorMsg)
}
