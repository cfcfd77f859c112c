package tenant

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/schoolkit/schoolkit/pkg/cookie"
)

// TenantCookieMaxAge is the lifetime of propagated tenant id cookies.
const TenantCookieMaxAge = 30 * 24 * 60 * 60 // 30 days in seconds

// Propagator persists newly resolved canonical ids back into cookies so
// future requests short-circuit without a registry lookup.
type Propagator struct {
	cookies *cookie.Manager
}

// NewPropagator creates a propagation writer on top of the cookie manager.
// The manager's defaults decide Secure; propagated cookies are always
// HttpOnly, SameSite=Strict, path "/" with a 30-day expiry.
func NewPropagator(m *cookie.Manager) *Propagator {
	return &Propagator{cookies: m}
}

// Write sets the bare and scope-namespaced tenant id cookies to the
// canonical id. Cookies already holding the exact value are skipped to avoid
// Set-Cookie churn on every request.
func (p *Propagator) Write(w http.ResponseWriter, r *http.Request, scope Scope, id uuid.UUID) {
	value := id.String()
	names := []string{CookieTenantID}
	if namespaced := CookieKey(scope, CookieTenantID); namespaced != CookieTenantID {
		names = append(names, namespaced)
	}

	for _, name := range names {
		if current, err := p.cookies.Get(r, name); err == nil && current == value {
			continue
		}
		p.cookies.Set(w, name, value,
			cookie.WithPath("/"),
			cookie.WithMaxAge(TenantCookieMaxAge),
			cookie.WithHTTPOnly(true),
			cookie.WithSameSite(http.SameSiteStrictMode),
		)
	}
}

// Clear expires the named cookies. Used to drop denylisted or stale values
// so they stop being re-read.
func (p *Propagator) Clear(w http.ResponseWriter, names ...string) {
	for _, name := range names {
		p.cookies.Delete(w, name)
	}
}
