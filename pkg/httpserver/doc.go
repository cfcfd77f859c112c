// Package httpserver wraps net/http with graceful shutdown, env-driven
// configuration and health-check handlers.
package httpserver
