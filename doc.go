// Package schoolkit is a toolkit for multi-tenant school platforms.
//
// The heart of the kit is pkg/tenant: per-request tenant resolution from
// cookies, the explicit ?tenant override, subdomains, path segments and an
// advisory JWT claim, plus the routing decisions (serve, redirect, reject)
// that follow from the resolved identity. pkg/registry supplies the tenant
// registry lookups behind it, over HTTP or Postgres, and modules/school
// wires everything into an edge router.
//
// The remaining packages are the supporting cast: cookie management, typed
// env configuration, structured logging, caches and connection helpers.
package schoolkit
