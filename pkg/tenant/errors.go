package tenant

import "errors"

var (
	// ErrTenantNotFound is returned when the registry has no matching tenant.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrInvalidIdentifier is returned for malformed tenant identifiers.
	ErrInvalidIdentifier = errors.New("invalid tenant identifier")

	// ErrReservedIdentifier is returned for denylisted identifier values.
	ErrReservedIdentifier = errors.New("reserved tenant identifier")

	// ErrInactiveTenant is returned when a matched tenant is deactivated.
	ErrInactiveTenant = errors.New("tenant is inactive")

	// ErrNoTenantInContext is returned when a required tenant identity is
	// missing from the request context.
	ErrNoTenantInContext = errors.New("no tenant in context")

	// ErrLookupFailed wraps registry transport failures (timeout, network,
	// non-2xx). Lookups fail fast and are never retried here.
	ErrLookupFailed = errors.New("tenant lookup failed")
)
