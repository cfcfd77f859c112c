package tenant_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolkit/schoolkit/pkg/tenant"
)

func canonicalResult(id uuid.UUID, source tenant.Source) tenant.Result {
	return tenant.Result{
		Identity:      tenant.CanonicalID(id),
		Source:        source,
		Authoritative: true,
	}
}

func TestRulesDecide(t *testing.T) {
	t.Parallel()

	rules := tenant.NewRules()
	id := uuid.New()

	t.Run("canonicalizes mixed-case first segments", func(t *testing.T) {
		t.Parallel()

		out := rules.Decide("/Acme-School/dashboard", tenant.ScopeTenant, tenant.Result{}, false)
		require.Equal(t, tenant.OutcomeRedirect, out.Kind)
		assert.Equal(t, "/acme-school/dashboard", out.Location)
		assert.Equal(t, http.StatusPermanentRedirect, out.Status)
		assert.Equal(t, tenant.ReasonCanonicalCase, out.Reason)
	})

	t.Run("mixed-case reserved segments land on their public form", func(t *testing.T) {
		t.Parallel()

		out := rules.Decide("/Login", tenant.ScopeDefault, tenant.Result{}, false)
		require.Equal(t, tenant.OutcomeRedirect, out.Kind)
		assert.Equal(t, "/login", out.Location)
		assert.Equal(t, tenant.ReasonCanonicalCase, out.Reason)

		out = rules.Decide(out.Location, tenant.ScopeDefault, tenant.Result{}, false)
		assert.Equal(t, tenant.OutcomeContinue, out.Kind)
	})

	t.Run("bare dashboard route gains tenant prefix", func(t *testing.T) {
		t.Parallel()

		out := rules.Decide("/students", tenant.ScopeDefault, canonicalResult(id, tenant.SourceBareCookie), true)
		require.Equal(t, tenant.OutcomeRedirect, out.Kind)
		assert.Equal(t, "/"+id.String()+"/students", out.Location)
		assert.Equal(t, http.StatusTemporaryRedirect, out.Status)
		assert.Equal(t, tenant.ReasonTenantPrefix, out.Reason)
	})

	t.Run("bare dashboard route without identity goes to login", func(t *testing.T) {
		t.Parallel()

		out := rules.Decide("/students", tenant.ScopeDefault, tenant.Result{}, false)
		require.Equal(t, tenant.OutcomeRedirect, out.Kind)
		assert.Equal(t, "/login", out.Location)
		assert.Equal(t, tenant.ReasonLogin, out.Reason)
	})

	t.Run("resolved slug path is rewritten to the canonical id", func(t *testing.T) {
		t.Parallel()

		out := rules.Decide("/acme-school/dashboard", tenant.ScopeTenant, canonicalResult(id, tenant.SourcePath), true)
		require.Equal(t, tenant.OutcomeRedirect, out.Kind)
		assert.Equal(t, "/"+id.String()+"/dashboard", out.Location)
		assert.Equal(t, tenant.ReasonCanonicalSlug, out.Reason)
	})

	t.Run("public routes continue without auth", func(t *testing.T) {
		t.Parallel()

		for _, path := range []string{"/", "/login", "/signup", "/session-expired", "/_next/chunk.js", "/acme-school/login"} {
			out := rules.Decide(path, tenant.ClassifyPath(path), tenant.Result{}, false)
			assert.Equal(t, tenant.OutcomeContinue, out.Kind, path)
			assert.Empty(t, out.TenantHeader, path)
		}
	})

	t.Run("api without tenant context is rejected", func(t *testing.T) {
		t.Parallel()

		out := rules.Decide("/api/students", tenant.ScopeTenant, tenant.Result{}, true)
		require.Equal(t, tenant.OutcomeReject, out.Kind)
		assert.Equal(t, http.StatusBadRequest, out.Status)
		assert.Equal(t, "Tenant context required", out.Body)
	})

	t.Run("api with canonical tenant continues with header", func(t *testing.T) {
		t.Parallel()

		out := rules.Decide("/api/students", tenant.ScopeTenant, canonicalResult(id, tenant.SourceNamespacedCookie), true)
		require.Equal(t, tenant.OutcomeContinue, out.Kind)
		assert.Equal(t, id.String(), out.TenantHeader)
	})

	t.Run("missing access token redirects to session expired", func(t *testing.T) {
		t.Parallel()

		out := rules.Decide("/"+id.String()+"/grades", tenant.ScopeTenant, canonicalResult(id, tenant.SourceNamespacedCookie), false)
		require.Equal(t, tenant.OutcomeRedirect, out.Kind)
		assert.Equal(t, "/"+id.String()+"/session-expired", out.Location)
		assert.Equal(t, tenant.ReasonSessionExpired, out.Reason)

		// Without a known tenant the redirect is global.
		out = rules.Decide("/somewhere/else/entirely", tenant.ScopeDefault, tenant.Result{}, false)
		require.Equal(t, tenant.OutcomeRedirect, out.Kind)
		assert.Equal(t, "/session-expired", out.Location)
	})

	t.Run("tenant scope without canonical identity goes to login", func(t *testing.T) {
		t.Parallel()

		out := rules.Decide("/"+id.String()+"/grades", tenant.ScopeTenant, tenant.Result{}, true)
		require.Equal(t, tenant.OutcomeRedirect, out.Kind)
		assert.Equal(t, "/login", out.Location)
	})

	t.Run("protected route continues with header for authoritative ids only", func(t *testing.T) {
		t.Parallel()

		out := rules.Decide("/"+id.String()+"/grades", tenant.ScopeTenant, canonicalResult(id, tenant.SourceNamespacedCookie), true)
		require.Equal(t, tenant.OutcomeContinue, out.Kind)
		assert.Equal(t, id.String(), out.TenantHeader)

		// A lenient display-only token never becomes an identity header,
		// and a tenant-scope request without a canonical id re-routes.
		lenient := tenant.Result{Identity: tenant.DomainToken("ghost"), Source: tenant.SourcePath}
		out = rules.Decide("/"+id.String()+"/grades", tenant.ScopeTenant, lenient, true)
		assert.NotEqual(t, tenant.OutcomeContinue, out.Kind)
	})

	t.Run("unconfirmed ids never steer redirect targets", func(t *testing.T) {
		t.Parallel()

		unconfirmed := tenant.Result{Identity: tenant.CanonicalID(id), Source: tenant.SourceClaim}

		out := rules.Decide("/students", tenant.ScopeDefault, unconfirmed, true)
		require.Equal(t, tenant.OutcomeRedirect, out.Kind)
		assert.Equal(t, "/login", out.Location)

		out = rules.Decide("/somewhere/else", tenant.ScopeDefault, unconfirmed, false)
		require.Equal(t, tenant.OutcomeRedirect, out.Kind)
		assert.Equal(t, "/session-expired", out.Location)
		assert.NotContains(t, out.Location, id.String())
	})
}

// TestRedirectChainsTerminate feeds each redirect back into the engine with
// the same underlying signals and asserts the chain settles within two hops.
func TestRedirectChainsTerminate(t *testing.T) {
	t.Parallel()

	rules := tenant.NewRules()
	id := uuid.New()

	cases := []struct {
		name  string
		path  string
		res   tenant.Result
		token bool
	}{
		{"mixed case slug", "/Acme-School/dashboard", canonicalResult(id, tenant.SourcePath), true},
		{"mixed case reserved segment", "/Login", tenant.Result{}, false},
		{"slug rewrite", "/acme-school/dashboard", canonicalResult(id, tenant.SourcePath), true},
		{"bare dashboard", "/students", canonicalResult(id, tenant.SourceBareCookie), true},
		{"bare dashboard unauthenticated", "/grades", tenant.Result{}, false},
		{"expired session", "/" + id.String() + "/exams", canonicalResult(id, tenant.SourceNamespacedCookie), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := tc.path
			seen := map[string]bool{path: true}
			hops := 0
			for {
				// After a redirect the winning signal is the written-back
				// cookie, so the slug source no longer applies.
				res := tc.res
				if hops > 0 && res.Identity.Canonical() {
					res.Source = tenant.SourceNamespacedCookie
				}
				out := rules.Decide(path, tenant.ClassifyPath(path), res, tc.token)
				if out.Kind != tenant.OutcomeRedirect {
					break
				}
				hops++
				require.LessOrEqual(t, hops, 2, "redirect chain exceeded two hops")
				require.False(t, seen[out.Location], "redirect cycle at %s", out.Location)
				seen[out.Location] = true
				path = out.Location
			}
		})
	}
}
