package tenant

import (
	"context"

	"github.com/google/uuid"
)

// Tenant is the registry record for a single school/organization,
// carrying just enough for request-scoped resolution decisions.
type Tenant struct {
	ID        uuid.UUID `json:"id"`
	Domain    string    `json:"domain"`
	Subdomain string    `json:"subdomain"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Active    bool      `json:"is_active"`
}

// Provider loads tenant records from the tenant registry.
// Implementations must match by domain, subdomain, code or canonical id.
type Provider interface {
	// GetByIdentifier retrieves a tenant using any unique identifier.
	// Returns ErrTenantNotFound if no tenant matches.
	GetByIdentifier(ctx context.Context, identifier string) (*Tenant, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, identifier string) (*Tenant, error)

func (f ProviderFunc) GetByIdentifier(ctx context.Context, identifier string) (*Tenant, error) {
	return f(ctx, identifier)
}
