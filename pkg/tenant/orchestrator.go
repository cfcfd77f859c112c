package tenant

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/schoolkit/schoolkit/pkg/logger"
)

// DefaultCacheTTL is how long resolved tenants stay cached before a miss
// forces revalidation against the registry.
const DefaultCacheTTL = 5 * time.Minute

// DefaultLookupTimeout bounds a single registry lookup at the conversion
// call site. Kept in single-digit seconds so a slow registry can never
// stall a routing decision.
const DefaultLookupTimeout = 5 * time.Second

// Result is the outcome of resolving one request's tenant signals.
// An empty Identity is a first-class outcome, not an error.
type Result struct {
	// Identity is the resolved identity, zero when no signal yielded one.
	Identity Identity
	// Source names the signal that won.
	Source Source
	// Authoritative is true only for registry-confirmed canonical ids.
	// A lenient, display-only domain token is never authoritative.
	Authoritative bool
	// RewriteCookies is set when the canonical id was newly derived (via
	// the override parameter or a registry lookup) and should be written
	// back to cookies for future requests.
	RewriteCookies bool
	// ClearCookies lists cookies holding denylisted values that should be
	// cleared so they stop being re-read on every request.
	ClearCookies []string
}

// Found reports whether any identity was resolved.
func (r Result) Found() bool { return !r.Identity.IsZero() }

// Orchestrator runs signal extraction, normalization and domain resolution
// in a fixed precedence order and produces one Result per request. It holds
// no per-request state; every Resolve call is independent.
type Orchestrator struct {
	provider Provider
	cfg      orchestratorConfig
}

// NewOrchestrator creates a resolution orchestrator backed by the given
// registry provider.
func NewOrchestrator(provider Provider, opts ...Option) *Orchestrator {
	cfg := orchestratorConfig{
		cache:         NewMemoryCache(DefaultCacheSize),
		cacheTTL:      DefaultCacheTTL,
		lookupTimeout: DefaultLookupTimeout,
		lenient:       make(map[Scope]bool),
		queryParam:    QueryTenant,
		logger:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Orchestrator{provider: provider, cfg: cfg}
}

// signals gathers the present candidate signals for the request in
// precedence order. First success wins downstream; lower-precedence sources
// are still gathered here because a denylisted winner falls through. The
// explicit query override sits ahead of the cookies: a returning user with a
// stored tenant can still be switched by a link carrying ?tenant=.
func (o *Orchestrator) signals(r *http.Request, scope Scope) []Signal {
	var sigs []Signal
	add := func(s Signal, ok bool) {
		if ok {
			sigs = append(sigs, s)
		}
	}

	switch scope {
	case ScopeSuperAdmin:
		// Super-admin routes never infer a tenant from the request shape:
		// either an operator explicitly selected one, or there is none.
		add(CookieSignal(r, CookieKey(scope, CookieSelectedTenant), SourceNamespacedCookie, TrustHigh))
		return sigs

	case ScopeTenant:
		add(QuerySignal(r, o.cfg.queryParam))
		add(CookieSignal(r, CookieKey(scope, CookieTenantID), SourceNamespacedCookie, TrustHigh))

	default:
		add(QuerySignal(r, o.cfg.queryParam))
		add(CookieSignal(r, CookieTenantID, SourceBareCookie, TrustHigh))
		// Cross-context fallback to the tenant namespace is accepted only
		// for values that are already canonical UUIDs.
		if s, ok := CookieSignal(r, CookieKey(ScopeTenant, CookieTenantID), SourceNamespacedCookie, TrustHigh); ok && isCanonicalUUID(s.Value) {
			add(s, true)
		}
	}

	add(SubdomainSignal(r, o.cfg.platformSuffixes))
	add(PathSignal(r))
	add(ClaimSignal(r, CookieKey(scope, CookieAccessToken)))
	return sigs
}

// Resolve produces the request's ResolutionResult. The highest-precedence
// usable signal wins; denylisted values are treated as absent (and scheduled
// for clearing when cookie-backed); unresolvable domain tokens fall through
// to the next signal unless the scope is lenient.
func (o *Orchestrator) Resolve(ctx context.Context, r *http.Request, scope Scope) Result {
	var res Result

	for _, sig := range o.signals(r, scope) {
		id, err := Normalize(sig.Value)
		switch {
		case errors.Is(err, ErrReservedIdentifier):
			if sig.Source.fromCookie() {
				res.ClearCookies = append(res.ClearCookies, sig.cookieName)
			}
			continue
		case err != nil:
			continue
		}

		if id.Canonical() {
			if sig.Source == SourceClaim {
				// An unverified claim never becomes authoritative on its
				// own; it only pre-fills a registry lookup.
				if confirmed, err := o.lookup(ctx, id.String()); err == nil {
					res.Identity = CanonicalID(confirmed.ID)
					res.Source = sig.Source
					res.Authoritative = true
					return res
				}
				if o.cfg.lenient[scope] {
					// Display-only retention. An unconfirmed claim must not
					// yield a canonical identity, or it would steer redirect
					// targets and the identity header.
					res.Identity = DomainToken(id.String())
					res.Source = sig.Source
					return res
				}
				continue
			}
			res.Identity = id
			res.Source = sig.Source
			res.Authoritative = true
			res.RewriteCookies = sig.Source == SourceQuery
			return res
		}

		t, err := o.lookup(ctx, id.Token())
		if err == nil {
			res.Identity = CanonicalID(t.ID)
			res.Source = sig.Source
			res.Authoritative = true
			// Newly translated domain tokens are written back so the next
			// request short-circuits on the cookie alone.
			res.RewriteCookies = sig.Source != SourceClaim
			return res
		}

		o.cfg.logger.DebugContext(ctx, "domain token did not resolve",
			slog.String("token", id.Token()),
			slog.String("source", sig.Source.String()),
			logger.Error(err),
		)
		if o.cfg.lenient[scope] {
			res.Identity = id
			res.Source = sig.Source
			return res
		}
	}

	return res
}

// lookup translates an identifier through the cache or the registry, with a
// bounded timeout and no retries. Inactive tenants count as failures.
func (o *Orchestrator) lookup(ctx context.Context, identifier string) (*Tenant, error) {
	key := strings.ToLower(identifier)
	if t, ok := o.cfg.cache.Get(ctx, key); ok {
		if !t.Active {
			return nil, ErrInactiveTenant
		}
		return t, nil
	}

	ctx, cancel := context.WithTimeout(ctx, o.cfg.lookupTimeout)
	defer cancel()

	t, err := o.provider.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, ErrTenantNotFound) {
			return nil, err
		}
		return nil, errors.Join(ErrLookupFailed, err)
	}
	if !t.Active {
		return nil, ErrInactiveTenant
	}

	// Cache under both the lookup key and the canonical id so claim
	// corroboration and cookie replays hit without another round trip.
	o.cfg.cache.Set(ctx, key, t, o.cfg.cacheTTL)
	o.cfg.cache.Set(ctx, t.ID.String(), t, o.cfg.cacheTTL)
	return t, nil
}
