// Package query implements the generic query engine behind every list/search
// endpoint: it parses raw query-string parameters into a canonical Request,
// compiles filters and sorts against a per-entity field registry, executes the
// compiled query against an abstract source, and derives deterministic cache
// keys for the resulting pages.
//
// The engine is stateless apart from the immutable registries; any number of
// requests may be parsed, compiled, and executed concurrently.
package query
