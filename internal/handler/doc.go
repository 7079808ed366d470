// Package handler contains HTTP request handlers for TradeCore.
//
// Handlers are the entry point for HTTP requests, responsible for:
//   - Request parsing and validation
//   - Authentication context extraction
//   - Calling appropriate services
//   - Response formatting
//   - Error response mapping
//
// # Route Organization
//
// Routes are organized by resource under /v1 with bearer token
// authentication, except /v1/auth/* and the health probes.
//
// # Error Handling
//
// Handlers convert domain errors to appropriate HTTP status codes
// using the apperrors package for consistent error responses. Query
// validation failures enumerate every invalid clause in one response.
//
// # Thread Safety
//
// All handlers are safe for concurrent use.
package handler
