package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/schoolkit/schoolkit/pkg/tenant"
)

// DefaultTimeout bounds a single registry request. Kept short: a lookup
// sits on the routing hot path and must never stall a request for long.
const DefaultTimeout = 5 * time.Second

// Client looks tenants up over the registry's HTTP lookup endpoint.
// It implements tenant.Provider. Failures are returned as values without
// retry; retry policy belongs to the caller, if anywhere.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a registry client from config.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}, nil
}

type lookupResponse struct {
	ID        uuid.UUID `json:"id"`
	Domain    string    `json:"domain"`
	Subdomain string    `json:"subdomain"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"isActive"`
}

// GetByIdentifier resolves a domain, subdomain, code or canonical id to a
// tenant record. Returns tenant.ErrTenantNotFound for unknown identifiers
// and tenant.ErrLookupFailed (wrapped) for transport or server failures.
func (c *Client) GetByIdentifier(ctx context.Context, identifier string) (*tenant.Tenant, error) {
	endpoint := c.baseURL + "/tenants/lookup?identifier=" + url.QueryEscape(identifier)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Join(tenant.ErrLookupFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Join(tenant.ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, tenant.ErrTenantNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: registry returned %d", tenant.ErrLookupFailed, resp.StatusCode)
	}

	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.Join(tenant.ErrLookupFailed, err)
	}
	if body.ID == uuid.Nil {
		return nil, tenant.ErrTenantNotFound
	}

	return &tenant.Tenant{
		ID:        body.ID,
		Domain:    body.Domain,
		Subdomain: body.Subdomain,
		Code:      body.Code,
		Name:      body.Name,
		Active:    body.IsActive,
	}, nil
}

// Healthcheck returns a readiness probe for the registry endpoint.
func (c *Client) Healthcheck() func(context.Context) error {
	return func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
		if err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("%w: status %d", ErrHealthcheckFailed, resp.StatusCode)
		}
		return nil
	}
}
