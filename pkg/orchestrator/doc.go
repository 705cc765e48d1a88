// Package orchestrator wires the loader → parser → model builder → renderer
// pipeline for OpenAPI documents and the builder → renderer pipeline for Go
// structs, providing dependency injection friendly helpers for consumers that
// prefer a single entry point.
package orchestrator
