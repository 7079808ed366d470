// Package domain contains the core business entities for TradeCore.
//
// This package defines:
//   - Entity types (Company, User, Product, Order, InventoryItem)
//   - Value objects and enums
//   - Input types for create/update operations
//   - The per-entity query field registries consumed by the query engine
//
// # Design Philosophy
//
// Domain types are persistence-agnostic and represent the core business
// concepts independent of how they are stored or transmitted. Query field
// registries are explicit accessor tables; the engine never discovers
// fields through reflection, so what a client can filter or sort on is
// exactly what is registered here.
//
// # Naming Conventions
//
// Types ending in "Input" are used for create/update operations.
package domain
