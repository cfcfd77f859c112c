// Package registry provides tenant.Provider implementations over the tenant
// registry: an HTTP client for the platform's lookup endpoint and a
// Postgres provider for deployments that own the tenants table.
//
// Both providers match an identifier against domain, subdomain, code and
// canonical id, fail fast without retrying, and return
// tenant.ErrTenantNotFound / tenant.ErrLookupFailed so callers can pick a
// fallback policy.
package registry
