package registry

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schoolkit/schoolkit/pkg/tenant"
)

// PostgresProvider looks tenants up directly in an owned tenants table,
// for deployments that host the registry themselves and can skip the HTTP
// hop. Implements tenant.Provider.
type PostgresProvider struct {
	pool *pgxpool.Pool
}

// NewPostgresProvider creates a provider over an existing pgx pool.
func NewPostgresProvider(pool *pgxpool.Pool) *PostgresProvider {
	return &PostgresProvider{pool: pool}
}

const lookupQuery = `
SELECT id, domain, subdomain, code, name, is_active
FROM tenants
WHERE domain = $1 OR subdomain = $1 OR code = $1 OR id::text = $1
LIMIT 1`

// GetByIdentifier matches by domain, subdomain, code or canonical id.
func (p *PostgresProvider) GetByIdentifier(ctx context.Context, identifier string) (*tenant.Tenant, error) {
	var t tenant.Tenant
	err := p.pool.QueryRow(ctx, lookupQuery, identifier).Scan(
		&t.ID, &t.Domain, &t.Subdomain, &t.Code, &t.Name, &t.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, errors.Join(tenant.ErrLookupFailed, err)
	}
	return &t, nil
}
