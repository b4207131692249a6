package main

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	grpcadapter "github.com/simaogato/wealthflow-roadmap/internal/adapter/grpc"
	"github.com/simaogato/wealthflow-roadmap/internal/adapter/repository/postgres"
	"github.com/simaogato/wealthflow-roadmap/internal/config"
	"github.com/simaogato/wealthflow-roadmap/internal/telemetry"
	"github.com/simaogato/wealthflow-roadmap/internal/usecase/planner"
	"github.com/simaogato/wealthflow-roadmap/internal/usecase/seeder"
	"github.com/simaogato/wealthflow-roadmap/internal/usecase/valuation"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx := context.Background()
	shutdownTracing, err := telemetry.Setup(ctx, "wealthflow-roadmap", cfg.OTelEndpoint)
	if err != nil {
		fatal(logger, "failed to set up tracing", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("failed to flush traces", slog.Any("error", err))
		}
	}()

	// 2. Setup Database
	// Simple delay to ensure Postgres is up
	time.Sleep(cfg.StartupDelay)

	db, err := postgres.NewDB(cfg.ConnectionString())
	if err != nil {
		fatal(logger, "failed to connect to database", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		fatal(logger, "failed to apply migrations", err)
	}

	// 3. Initialize Repositories (Postgres)
	holdingRepo := postgres.NewHoldingRepository(db)
	marketValueRepo := postgres.NewMarketValueRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	roadmapRepo := postgres.NewRoadmapRepository(db)

	// 4. Initialize Services (Use Cases)
	valuationService := valuation.NewValuationService(holdingRepo, marketValueRepo)
	plannerService := planner.NewPlannerService(cfg.Assumptions(), profileRepo, roadmapRepo, valuationService, logger)

	if cfg.SeedDefaultProfile {
		profileSeeder := seeder.NewProfileSeeder(profileRepo)
		if err := profileSeeder.Seed(ctx, time.Now().Year()); err != nil {
			fatal(logger, "failed to seed default profile", err)
		}
		logger.Info("default profile seeded", slog.String("profile_id", seeder.DefaultProfileID.String()))
	}

	if cfg.SeedDemoPortfolio {
		portfolioSeeder := seeder.NewPortfolioSeeder(holdingRepo, marketValueRepo)
		if err := portfolioSeeder.Seed(ctx, time.Now()); err != nil {
			fatal(logger, "failed to seed demo portfolio", err)
		}
		logger.Info("demo portfolio seeded", slog.Int("holdings", len(seeder.DemoHoldings())))
	}

	// 5. Start gRPC Server
	grpcServer := grpclib.NewServer(
		grpclib.StatsHandler(otelgrpc.NewServerHandler()),
		grpclib.ChainUnaryInterceptor(
			grpcadapter.LoggingInterceptor(logger),
			grpcadapter.AuthInterceptor(cfg.APIToken),
		),
	)

	grpcadapter.RegisterRoadmapServiceServer(grpcServer, grpcadapter.NewServer(plannerService, valuationService))
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		fatal(logger, "failed to listen", err, slog.String("addr", cfg.GRPCAddr))
	}

	// Start server in a goroutine
	go func() {
		logger.Info("gRPC server listening", slog.String("addr", cfg.GRPCAddr))
		if err := grpcServer.Serve(lis); err != nil {
			fatal(logger, "failed to serve gRPC server", err)
		}
	}()

	// Graceful shutdown
	waitForShutdown(logger, grpcServer)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(logger *slog.Logger, grpcServer *grpclib.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	logger.Info("shutting down gracefully", slog.String("signal", sig.String()))

	grpcServer.GracefulStop()
	logger.Info("gRPC server stopped")
}

func fatal(logger *slog.Logger, msg string, err error, attrs ...any) {
	logger.Error(msg, append([]any{slog.Any("error", err)}, attrs...)...)
	os.Exit(1)
}
