package tenant

import (
	"strings"

	"github.com/google/uuid"
)

// Scope is the security context a request is classified into. It is derived
// once from the path and stays fixed for the lifetime of the request. The
// scope selects the cookie namespace and the signal fallback rules.
type Scope int

const (
	// ScopeDefault covers unauthenticated/public routes and anything that
	// matches neither the tenant nor the super-admin patterns.
	ScopeDefault Scope = iota
	// ScopeTenant covers tenant-prefixed dashboard routes.
	ScopeTenant
	// ScopeSuperAdmin covers the platform operator area.
	ScopeSuperAdmin
)

func (s Scope) String() string {
	switch s {
	case ScopeTenant:
		return "tenant"
	case ScopeSuperAdmin:
		return "super-admin"
	default:
		return "default"
	}
}

// SuperAdminSegment is the first path segment of the platform operator area.
const SuperAdminSegment = "super-admin"

// DashboardSegments are the known dashboard route names. A path like
// /students (no tenant prefix) is a "bare" dashboard route; the same segment
// in second or third position marks a tenant route.
var DashboardSegments = map[string]struct{}{
	"dashboard":     {},
	"students":      {},
	"teachers":      {},
	"classes":       {},
	"timetable":     {},
	"attendance":    {},
	"exams":         {},
	"grades":        {},
	"communication": {},
	"settings":      {},
	"academics":     {},
}

// ClassifyPath derives the security context from the request path.
// Total: unmatched paths classify as ScopeDefault.
func ClassifyPath(path string) Scope {
	segs := pathSegments(path)
	if len(segs) == 0 {
		return ScopeDefault
	}
	if segs[0] == SuperAdminSegment {
		return ScopeSuperAdmin
	}
	if isCanonicalUUID(segs[0]) {
		return ScopeTenant
	}
	if len(segs) > 1 {
		if _, ok := DashboardSegments[segs[1]]; ok {
			return ScopeTenant
		}
	}
	if len(segs) > 2 {
		if _, ok := DashboardSegments[segs[2]]; ok {
			return ScopeTenant
		}
	}
	return ScopeDefault
}

// pathSegments splits a URL path into its non-empty segments.
func pathSegments(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// isCanonicalUUID reports whether s is a dashed 36-char UUID. uuid.Parse
// also accepts URN and braced forms, which must not count as tenant ids.
func isCanonicalUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
