// Package service contains the business logic layer. Each entity gets a
// service that owns validation, audit logging, and cache invalidation
// around its repository, plus a shared cached list path driven by the
// query engine.
package service
