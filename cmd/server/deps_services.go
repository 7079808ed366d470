package main

import (
	"github.com/tradecore/tradecore/api/internal/config"
	"github.com/tradecore/tradecore/api/internal/query"
	"github.com/tradecore/tradecore/api/internal/service"
	"github.com/tradecore/tradecore/api/internal/worker"
)

// Services holds all service instances
type Services struct {
	Audit     *service.AuditService
	Company   *service.CompanyService
	User      *service.UserService
	Product   *service.ProductService
	Order     *service.OrderService
	Inventory *service.InventoryService
	Export    *service.ExportService
	Auth      *service.AuthService

	// Scheduler enqueues background tasks and doubles as the cache invalidator
	Scheduler *worker.TaskScheduler
}

// initServices initializes all services
func initServices(cfg *config.Config, dbs *Databases, repos *Repositories) *Services {
	svcs := &Services{}

	opts := query.Options{
		DefaultPageSize: cfg.Query.DefaultPageSize,
		MinPageSize:     cfg.Query.MinPageSize,
		MaxPageSize:     cfg.Query.MaxPageSize,
	}

	svcs.Scheduler = worker.NewTaskScheduler(dbs.AsynqClient, cfg.Worker)
	svcs.Audit = service.NewAuditService(repos.Audit)

	svcs.Company = service.NewCompanyService(
		repos.Company,
		svcs.Audit,
		svcs.Scheduler,
		dbs.Cache,
		opts,
	)
	svcs.User = service.NewUserService(
		repos.User,
		repos.Company,
		svcs.Audit,
		svcs.Scheduler,
		dbs.Cache,
		opts,
	)
	svcs.Product = service.NewProductService(
		repos.Product,
		svcs.Audit,
		svcs.Scheduler,
		dbs.Cache,
		opts,
	)
	svcs.Order = service.NewOrderService(
		repos.Order,
		repos.Company,
		repos.User,
		repos.Product,
		svcs.Audit,
		svcs.Scheduler,
		dbs.Cache,
		opts,
	)
	svcs.Inventory = service.NewInventoryService(
		repos.Inventory,
		repos.Product,
		svcs.Audit,
		svcs.Scheduler,
		dbs.Cache,
		opts,
	)
	svcs.Export = service.NewExportService(
		repos.Order,
		svcs.Scheduler,
		opts,
	)
	svcs.Auth = service.NewAuthService(
		svcs.User,
		cfg.JWT,
	)

	return svcs
}
