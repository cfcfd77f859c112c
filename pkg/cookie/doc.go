// Package cookie provides a small cookie manager with shared defaults and
// per-call overrides via functional options.
//
// The tenant resolution layer writes identity cookies through a Manager so
// every write carries consistent attributes (path, HttpOnly, SameSite,
// Secure) and deletions match the attributes of the original write.
//
//	m := cookie.New(cookie.WithSecure(true))
//	m.Set(w, "tenantId", id, cookie.WithMaxAge(30*24*60*60))
//	v, err := m.Get(r, "tenantId")
//	m.Delete(w, "tenantId")
package cookie
