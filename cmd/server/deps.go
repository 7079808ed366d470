package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tradecore/tradecore/api/internal/config"
	"github.com/tradecore/tradecore/api/internal/middleware"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	Logger *zap.Logger

	Databases    *Databases
	Repositories *Repositories
	Services     *Services
	Handlers     *Handlers

	// Middleware
	AuthMiddleware      *middleware.AuthMiddleware
	RateLimitMiddleware *middleware.RateLimitMiddleware
}

// initDependencies initializes all dependencies
func initDependencies(cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	ctx := context.Background()

	dbs, err := initDatabases(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize databases: %w", err)
	}

	repos := initRepositories(dbs)
	svcs := initServices(cfg, dbs, repos)
	handlers := initHandlers(logger, svcs, dbs, appVersion)

	return &Dependencies{
		Config:              cfg,
		Logger:              logger,
		Databases:           dbs,
		Repositories:        repos,
		Services:            svcs,
		Handlers:            handlers,
		AuthMiddleware:      middleware.NewAuthMiddleware(svcs.Auth),
		RateLimitMiddleware: middleware.NewRateLimitMiddleware(dbs.Redis.Client),
	}, nil
}

// Close closes all dependencies
func (d *Dependencies) Close() {
	if d.Databases != nil {
		d.Databases.Close()
	}
}
