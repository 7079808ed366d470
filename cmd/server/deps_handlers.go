package main

import (
	"go.uber.org/zap"

	"github.com/tradecore/tradecore/api/internal/handler"
)

// Handlers holds all handler instances
type Handlers struct {
	Health    *handler.HealthHandler
	Auth      *handler.AuthHandler
	Companies *handler.CompaniesHandler
	Users     *handler.UsersHandler
	Products  *handler.ProductsHandler
	Orders    *handler.OrdersHandler
	Inventory *handler.InventoryHandler
	Exports   *handler.ExportsHandler
	Audit     *handler.AuditHandler
}

// initHandlers initializes all handlers
func initHandlers(logger *zap.Logger, svcs *Services, dbs *Databases, version string) *Handlers {
	return &Handlers{
		Health: handler.NewHealthHandler(
			dbs.Postgres.Pool,
			dbs.Redis.Client,
			version,
		),
		Auth:      handler.NewAuthHandler(svcs.Auth, logger),
		Companies: handler.NewCompaniesHandler(svcs.Company, logger),
		Users:     handler.NewUsersHandler(svcs.User, logger),
		Products:  handler.NewProductsHandler(svcs.Product, logger),
		Orders:    handler.NewOrdersHandler(svcs.Order, logger),
		Inventory: handler.NewInventoryHandler(svcs.Inventory, logger),
		Exports:   handler.NewExportsHandler(svcs.Export, logger),
		Audit:     handler.NewAuditHandler(svcs.Audit, logger),
	}
}
