package tenant

import (
	"net/http"
	"strings"
)

// OutcomeKind tags the terminal routing decision for a request.
type OutcomeKind int

const (
	OutcomeContinue OutcomeKind = iota
	OutcomeRedirect
	OutcomeReject
)

// RedirectReason labels why a redirect was issued, for logs and tests.
type RedirectReason string

const (
	ReasonCanonicalCase  RedirectReason = "canonical_case"
	ReasonCanonicalSlug  RedirectReason = "canonical_slug"
	ReasonTenantPrefix   RedirectReason = "tenant_prefix"
	ReasonLogin          RedirectReason = "login"
	ReasonSessionExpired RedirectReason = "session_expired"
)

// Outcome is the single terminal decision for a request. Exactly one of the
// three kinds is produced; the zero value is a plain Continue.
type Outcome struct {
	Kind OutcomeKind

	// Redirect fields.
	Location string
	Reason   RedirectReason
	// Status is the redirect or rejection HTTP status.
	Status int

	// Reject body.
	Body string

	// TenantHeader is the X-Tenant-ID value to attach on Continue. Set only
	// for authoritative canonical identities; a domain token never reaches
	// downstream services as an identity header.
	TenantHeader string
}

// Rules is the routing decision table: public routes, dashboard segments and
// the auth redirect targets. Decide is a pure function of its arguments, so
// the no-loop property can be tested without real HTTP redirects.
type Rules struct {
	public         map[string]struct{}
	publicPrefixes []string
	loginPath      string
	expiredPath    string
}

// RulesOption configures the decision table.
type RulesOption func(*Rules)

// WithPublicPaths adds exact paths to the public allow-list.
func WithPublicPaths(paths ...string) RulesOption {
	return func(ru *Rules) {
		for _, p := range paths {
			ru.public[p] = struct{}{}
		}
	}
}

// WithPublicPrefixes adds path prefixes that bypass auth checks entirely
// (asset and framework routes).
func WithPublicPrefixes(prefixes ...string) RulesOption {
	return func(ru *Rules) {
		ru.publicPrefixes = append(ru.publicPrefixes, prefixes...)
	}
}

// NewRules builds the default decision table.
func NewRules(opts ...RulesOption) *Rules {
	ru := &Rules{
		public: map[string]struct{}{
			"/":                {},
			"/login":           {},
			"/signup":          {},
			"/session-expired": {},
			"/select-school":   {},
		},
		publicPrefixes: []string{"/_next/", "/static/", "/favicon.ico", "/api/public/"},
		loginPath:      "/login",
		expiredPath:    "/session-expired",
	}
	for _, opt := range opts {
		opt(ru)
	}
	return ru
}

// Decide evaluates the routing decision table once for a request. It is
// total over its inputs and produces exactly one Outcome. Any redirect it
// emits reaches a stable target within two hops when re-evaluated with the
// same underlying signals.
func (ru *Rules) Decide(path string, scope Scope, res Result, hasAccessToken bool) Outcome {
	if path == "" {
		path = "/"
	}
	segs := pathSegments(path)
	isAPI := len(segs) > 0 && segs[0] == "api"

	// Mixed-case first segments are canonicalized before anything else so a
	// slug never yields two differently-cased tenant cookies. Reserved
	// segments canonicalize too: /Login must land on the public /login, not
	// fall through to the auth redirects.
	if len(segs) > 0 {
		lower := strings.ToLower(segs[0])
		if lower != segs[0] {
			return Outcome{
				Kind:     OutcomeRedirect,
				Location: "/" + lower + rest(path, segs[0]),
				Reason:   ReasonCanonicalCase,
				Status:   http.StatusPermanentRedirect,
			}
		}
	}

	// Bare dashboard routes get the tenant prefix prepended, or the user
	// sent to login when nobody knows which tenant this is.
	if len(segs) > 0 {
		if _, bare := DashboardSegments[segs[0]]; bare {
			// Only registry-confirmed ids may be embedded into a redirect
			// target.
			if res.Authoritative && res.Identity.Canonical() {
				return Outcome{
					Kind:     OutcomeRedirect,
					Location: "/" + res.Identity.String() + path,
					Reason:   ReasonTenantPrefix,
					Status:   http.StatusTemporaryRedirect,
				}
			}
			return Outcome{
				Kind:     OutcomeRedirect,
				Location: ru.loginPath,
				Reason:   ReasonLogin,
				Status:   http.StatusTemporaryRedirect,
			}
		}
	}

	// A slug-prefixed tenant route whose slug just resolved is rewritten to
	// the canonical id so future requests short-circuit on the cookie.
	if len(segs) > 0 && res.Identity.Canonical() && res.Source == SourcePath && segs[0] != res.Identity.String() {
		return Outcome{
			Kind:     OutcomeRedirect,
			Location: "/" + res.Identity.String() + rest(path, segs[0]),
			Reason:   ReasonCanonicalSlug,
			Status:   http.StatusTemporaryRedirect,
		}
	}

	if ru.isPublic(path, segs) {
		return Outcome{Kind: OutcomeContinue, TenantHeader: ru.headerFor(res)}
	}

	// API calls are never redirected; missing tenant context is a client
	// error there.
	if isAPI {
		if !res.Identity.Canonical() {
			return Outcome{Kind: OutcomeReject, Status: http.StatusBadRequest, Body: "Tenant context required"}
		}
		return Outcome{Kind: OutcomeContinue, TenantHeader: ru.headerFor(res)}
	}

	if !hasAccessToken {
		loc := ru.expiredPath
		if res.Authoritative && res.Identity.Canonical() {
			loc = "/" + res.Identity.String() + ru.expiredPath
		}
		return Outcome{
			Kind:     OutcomeRedirect,
			Location: loc,
			Reason:   ReasonSessionExpired,
			Status:   http.StatusTemporaryRedirect,
		}
	}

	if scope == ScopeTenant && !res.Identity.Canonical() {
		return Outcome{
			Kind:     OutcomeRedirect,
			Location: ru.loginPath,
			Reason:   ReasonLogin,
			Status:   http.StatusTemporaryRedirect,
		}
	}

	return Outcome{Kind: OutcomeContinue, TenantHeader: ru.headerFor(res)}
}

// headerFor returns the downstream identity header value, which exists only
// for authoritative canonical identities.
func (ru *Rules) headerFor(res Result) string {
	if res.Authoritative && res.Identity.Canonical() {
		return res.Identity.String()
	}
	return ""
}

func (ru *Rules) isPublic(path string, segs []string) bool {
	if _, ok := ru.public[path]; ok {
		return true
	}
	for _, prefix := range ru.publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	// /{tenant}/login style routes are public regardless of the tenant part.
	if len(segs) == 2 && "/"+segs[1] == ru.loginPath {
		return true
	}
	if len(segs) == 2 && "/"+segs[1] == ru.expiredPath {
		return true
	}
	return false
}

// rest returns the path remainder after the first segment, preserving the
// leading slash of the remainder (or "" when the first segment is the whole
// path).
func rest(path, first string) string {
	trimmed := strings.TrimPrefix(path, "/")
	trimmed = strings.TrimPrefix(trimmed, first)
	return trimmed
}
