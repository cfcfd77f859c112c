package tenant

import (
	"log/slog"
	"net/http"

	"github.com/schoolkit/schoolkit/pkg/cookie"
)

type middlewareConfig struct {
	rules      *Rules
	propagator *Propagator
	logger     *slog.Logger
}

// MiddlewareOption configures the resolution middleware.
type MiddlewareOption func(*middlewareConfig)

// WithRules sets a custom routing decision table.
func WithRules(ru *Rules) MiddlewareOption {
	return func(c *middlewareConfig) {
		if ru != nil {
			c.rules = ru
		}
	}
}

// WithCookieManager sets the cookie manager used for write-back and
// clearing. The manager's defaults decide the Secure attribute.
func WithCookieManager(m *cookie.Manager) MiddlewareOption {
	return func(c *middlewareConfig) {
		if m != nil {
			c.propagator = NewPropagator(m)
		}
	}
}

// WithMiddlewareLogger sets the middleware logger.
func WithMiddlewareLogger(l *slog.Logger) MiddlewareOption {
	return func(c *middlewareConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// Middleware resolves the tenant identity for every request and executes the
// routing decision: pass through with the identity in context (and the
// X-Tenant-ID header for validated canonical ids), redirect, or reject.
// Cookie mutations (write-back of new canonical ids, clearing of denylisted
// values) are attached to whichever outcome is produced.
func Middleware(orch *Orchestrator, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{
		rules:      NewRules(),
		propagator: NewPropagator(cookie.New()),
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scope := ClassifyPath(r.URL.Path)
			res := orch.Resolve(r.Context(), r, scope)
			out := cfg.rules.Decide(r.URL.Path, scope, res, hasAccessToken(r, scope))

			if len(res.ClearCookies) > 0 {
				cfg.propagator.Clear(w, res.ClearCookies...)
			}
			if res.RewriteCookies && res.Identity.Canonical() {
				cfg.propagator.Write(w, r, scope, res.Identity.UUID())
			}

			switch out.Kind {
			case OutcomeRedirect:
				cfg.logger.DebugContext(r.Context(), "tenant routing redirect",
					slog.String("path", r.URL.Path),
					slog.String("location", out.Location),
					slog.String("reason", string(out.Reason)),
				)
				http.Redirect(w, r, out.Location, out.Status)

			case OutcomeReject:
				http.Error(w, out.Body, out.Status)

			default:
				ctx := r.Context()
				if res.Found() {
					ctx = WithIdentity(ctx, res.Identity)
				}
				if out.TenantHeader != "" {
					r.Header.Set(HeaderTenantID, out.TenantHeader)
				} else {
					// Never forward a client-supplied identity header.
					r.Header.Del(HeaderTenantID)
				}
				next.ServeHTTP(w, r.WithContext(ctx))
			}
		})
	}
}

// RequireTenant guards handlers that must not run without a canonical
// tenant identity in context.
func RequireTenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := IDFromContext(r.Context()); !ok {
			http.Error(w, "Tenant context required", http.StatusBadRequest)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// hasAccessToken reports whether the request carries an access token cookie
// in its own scope's namespace. A token from another namespace does not
// count; the token is not validated here, signature verification happens
// elsewhere.
func hasAccessToken(r *http.Request, scope Scope) bool {
	c, err := r.Cookie(CookieKey(scope, CookieAccessToken))
	return err == nil && c.Value != ""
}
