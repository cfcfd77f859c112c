// Package pg provides PostgreSQL connection helpers for the tenant
// registry: pool setup with retry, env-driven configuration and a
// health-check probe.
package pg
