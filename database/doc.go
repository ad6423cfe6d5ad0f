// Package database provides connection management, table migrations with
// foreign keys, SQL data initialization, configuration loading, query logging,
// Prometheus metrics, OpenTelemetry tracing and health checks built on Bun.
//
// Tables are registered through a ModelRegistry; the default registry is
// filled by the model package at init time.
package database
