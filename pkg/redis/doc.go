// Package redis provides Redis connection helpers for the shared tenant
// cache: connect with retry, env-driven configuration and a health-check
// probe.
package redis
