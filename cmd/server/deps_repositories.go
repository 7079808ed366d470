package main

import (
	pgrepo "github.com/tradecore/tradecore/api/internal/repository/postgres"
)

// Repositories holds all repository instances
type Repositories struct {
	Company   *pgrepo.CompanyRepository
	User      *pgrepo.UserRepository
	Product   *pgrepo.ProductRepository
	Order     *pgrepo.OrderRepository
	Inventory *pgrepo.InventoryRepository
	Audit     *pgrepo.AuditRepository
}

// initRepositories initializes all repositories
func initRepositories(dbs *Databases) *Repositories {
	return &Repositories{
		Company:   pgrepo.NewCompanyRepository(dbs.Postgres),
		User:      pgrepo.NewUserRepository(dbs.Postgres),
		Product:   pgrepo.NewProductRepository(dbs.Postgres),
		Order:     pgrepo.NewOrderRepository(dbs.Postgres),
		Inventory: pgrepo.NewInventoryRepository(dbs.Postgres),

		// The audit trail reads and writes through sqlx rather than the pgx pool
		Audit: pgrepo.NewAuditRepository(dbs.SQLX),
	}
}
