// Package tenant resolves which tenant (school/organization) an incoming
// HTTP request belongs to, from a set of inconsistent, partially-trusted
// signals, and decides whether to serve, redirect or reject the request.
//
// # Pipeline
//
// Each request flows through a fixed pipeline, all of it request-scoped:
//
//  1. ClassifyPath derives the security context (Scope): super-admin,
//     tenant, or default.
//  2. Signal extractors read candidates from the ?tenant override, the
//     scope's namespaced and bare cookies, the hostname subdomain, the
//     first path segment and an unverified JWT claim, in that precedence
//     order. The first usable signal wins.
//  3. Normalize classifies a candidate as a canonical UUID or a domain
//     token and rejects denylisted values (which also schedules clearing of
//     the offending cookie).
//  4. Domain tokens are translated to canonical ids through the registry
//     Provider, behind an advisory TTL cache and a bounded lookup timeout.
//     Lookups fail fast and are never retried.
//  5. Rules.Decide turns the Result into exactly one outcome:
//     Continue (attaching X-Tenant-ID only for validated canonical ids),
//     Redirect (307/308) or Reject.
//  6. Newly derived canonical ids are written back to both the bare and the
//     namespaced tenantId cookies, skipping writes when the value is
//     already present.
//
// # Usage
//
//	provider, err := registry.NewClient(registryCfg)
//	orch := tenant.NewOrchestrator(provider,
//		tenant.WithCache(tenant.NewMemoryCache(1000)),
//		tenant.WithPlatformSuffixes(".vercel.app", ".onrender.com"),
//	)
//	mw := tenant.Middleware(orch,
//		tenant.WithCookieManager(cookie.New(cookie.WithSecure(true))),
//	)
//	router.Use(mw)
//
// Handlers read the resolved identity with FromContext; handlers that must
// not run without one sit behind RequireTenant.
//
// # Trust model
//
// Cookies in the request's own namespace are high trust. Subdomain and path
// inference are medium trust and always go through the registry before the
// identity becomes authoritative. The JWT claim is read without signature
// verification and is therefore advisory only: it can pre-fill a registry
// lookup but never becomes an identity header on its own.
package tenant
