package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/tradecore/tradecore/api/internal/config"
	"github.com/tradecore/tradecore/api/internal/pkg/database"
	"github.com/tradecore/tradecore/api/internal/query"
	pgrepo "github.com/tradecore/tradecore/api/internal/repository/postgres"
	"github.com/tradecore/tradecore/api/internal/service"
	"github.com/tradecore/tradecore/api/internal/worker"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.IsProduction() {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	logger.Info("starting worker service")

	// Initialize dependencies
	deps, cleanup, err := initWorkerDependencies(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize dependencies", zap.Error(err))
	}
	defer cleanup()

	// Create worker server
	workerServer, err := worker.NewServer(logger, cfg, deps)
	if err != nil {
		logger.Fatal("failed to create worker server", zap.Error(err))
	}

	// Start worker in a goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- workerServer.Start()
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		logger.Info("shutting down worker...")
		workerServer.Stop()
	case err := <-errCh:
		if err != nil {
			logger.Error("worker server error", zap.Error(err))
		}
	}

	logger.Info("worker stopped")
}

// initWorkerDependencies initializes dependencies for the worker
func initWorkerDependencies(cfg *config.Config, logger *zap.Logger) (*worker.Dependencies, func(), error) {
	ctx := context.Background()

	// Initialize PostgreSQL
	pgDB, err := database.NewPostgres(ctx, cfg.Postgres)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize PostgreSQL: %w", err)
	}

	// Initialize Redis
	redisDB, err := database.NewRedis(ctx, cfg.Redis)
	if err != nil {
		pgDB.Close()
		return nil, nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}

	// Separate sqlx connection for the audit trail
	sqlxDB, err := sqlx.ConnectContext(ctx, "postgres", cfg.Postgres.DSN())
	if err != nil {
		pgDB.Close()
		_ = redisDB.Close()
		return nil, nil, fmt.Errorf("failed to initialize audit connection: %w", err)
	}

	// Initialize MinIO
	minioClient, err := initMinio(cfg)
	if err != nil {
		logger.Warn("failed to initialize MinIO, export uploads will fail", zap.Error(err))
	}

	orderRepo := pgrepo.NewOrderRepository(pgDB)
	auditRepo := pgrepo.NewAuditRepository(sqlxDB)

	opts := query.Options{
		DefaultPageSize: cfg.Query.DefaultPageSize,
		MinPageSize:     cfg.Query.MinPageSize,
		MaxPageSize:     cfg.Query.MaxPageSize,
	}

	// The worker only resolves export data, it never schedules new exports
	exportService := service.NewExportService(orderRepo, nil, opts)

	deps := &worker.Dependencies{
		Redis:         redisDB,
		ExportService: exportService,
		AuditRepo:     auditRepo,
		MinioClient:   minioClient,
		MinioBucket:   cfg.MinIO.Bucket,
	}

	cleanup := func() {
		pgDB.Close()
		_ = sqlxDB.Close()
		_ = redisDB.Close()
	}

	return deps, cleanup, nil
}

// initMinio initializes MinIO client
func initMinio(cfg *config.Config) (*minio.Client, error) {
	if cfg.MinIO.Endpoint == "" {
		return nil, nil
	}

	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return client, nil
}
