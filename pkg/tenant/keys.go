package tenant

// Logical cookie and transport names. Storage cookie names are derived by
// prefixing the logical name with the scope's namespace so one browser can
// hold independent sessions for the tenant area and the super-admin area.
const (
	CookieTenantID       = "tenantId"
	CookieAccessToken    = "accessToken"
	CookieSelectedTenant = "selectedTenantId"

	// HeaderTenantID carries a validated canonical tenant id to downstream
	// services. It is only ever set for authoritative canonical identities.
	HeaderTenantID = "X-Tenant-ID"

	// QueryTenant is the explicit override query parameter.
	QueryTenant = "tenant"
)

// CookiePrefix returns the cookie namespace prefix for the scope.
// The default scope intentionally uses no prefix so that bare cookies
// written by older clients keep round-tripping.
func (s Scope) CookiePrefix() string {
	switch s {
	case ScopeSuperAdmin:
		return "sa_"
	case ScopeTenant:
		return "t_"
	default:
		return ""
	}
}

// CookieKey derives the storage cookie name for a logical key within a scope.
// Deterministic: the same (scope, name) pair always yields the same key,
// which is what makes cookie round-tripping across requests work.
func CookieKey(scope Scope, name string) string {
	return scope.CookiePrefix() + name
}
