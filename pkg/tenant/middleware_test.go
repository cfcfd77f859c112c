package tenant_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolkit/schoolkit/pkg/tenant"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func findCookie(t *testing.T, res *http.Response, name string) *http.Cookie {
	t.Helper()
	for _, c := range res.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("first visit rewrites the slug and persists the canonical id", func(t *testing.T) {
		t.Parallel()

		provider := newMockProvider()
		acme := activeTenant("acme-school")
		provider.add(acme)

		handler := tenant.Middleware(tenant.NewOrchestrator(provider))(okHandler())

		req := httptest.NewRequest("GET", "/acme-school/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: "session"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		res := rec.Result()
		require.Equal(t, http.StatusTemporaryRedirect, res.StatusCode)
		assert.Equal(t, "/"+acme.ID.String()+"/dashboard", res.Header.Get("Location"))

		for _, name := range []string{"tenantId", "t_tenantId"} {
			c := findCookie(t, res, name)
			require.NotNil(t, c, name)
			assert.Equal(t, acme.ID.String(), c.Value, name)
			assert.Equal(t, "/", c.Path, name)
			assert.Equal(t, 30*24*60*60, c.MaxAge, name)
			assert.True(t, c.HttpOnly, name)
			assert.Equal(t, http.SameSiteStrictMode, c.SameSite, name)
		}
	})

	t.Run("cookie replay passes through without a registry lookup", func(t *testing.T) {
		t.Parallel()

		provider := newMockProvider()
		id := uuid.New()

		var seenID uuid.UUID
		var seenHeader string
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seenID, _ = tenant.IDFromContext(r.Context())
			seenHeader = r.Header.Get("X-Tenant-ID")
			w.WriteHeader(http.StatusOK)
		})
		handler := tenant.Middleware(tenant.NewOrchestrator(provider))(inner)

		req := httptest.NewRequest("GET", "/"+id.String()+"/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: "t_tenantId", Value: id.String()})
		req.AddCookie(&http.Cookie{Name: "t_accessToken", Value: "session"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		res := rec.Result()
		require.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, id, seenID)
		assert.Equal(t, id.String(), seenHeader)
		assert.Equal(t, 0, provider.callCount())
		assert.Empty(t, res.Cookies(), "no cookie churn on replay")
	})

	t.Run("stale denylisted cookie is cleared on the redirect", func(t *testing.T) {
		t.Parallel()

		handler := tenant.Middleware(tenant.NewOrchestrator(newMockProvider()))(okHandler())

		req := httptest.NewRequest("GET", "/students", nil)
		req.AddCookie(&http.Cookie{Name: "tenantId", Value: "session-expired"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		res := rec.Result()
		require.Equal(t, http.StatusTemporaryRedirect, res.StatusCode)
		assert.Equal(t, "/login", res.Header.Get("Location"))

		cleared := findCookie(t, res, "tenantId")
		require.NotNil(t, cleared)
		assert.Empty(t, cleared.Value)
		assert.Negative(t, cleared.MaxAge)
	})

	t.Run("api requests without tenant context are rejected", func(t *testing.T) {
		t.Parallel()

		handler := tenant.Middleware(tenant.NewOrchestrator(newMockProvider()))(okHandler())

		req := httptest.NewRequest("GET", "/api/students", nil)
		req.AddCookie(&http.Cookie{Name: "t_accessToken", Value: "session"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Tenant context required\n", rec.Body.String())
	})

	t.Run("query override continues and writes the cookies back", func(t *testing.T) {
		t.Parallel()

		provider := newMockProvider()
		id := uuid.New()
		override := uuid.New()

		handler := tenant.Middleware(tenant.NewOrchestrator(provider))(okHandler())

		req := httptest.NewRequest("GET", "/"+id.String()+"/dashboard?tenant="+override.String(), nil)
		req.AddCookie(&http.Cookie{Name: "t_accessToken", Value: "session"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		res := rec.Result()
		require.Equal(t, http.StatusOK, res.StatusCode)
		written := findCookie(t, res, "t_tenantId")
		require.NotNil(t, written)
		assert.Equal(t, override.String(), written.Value)
	})

	t.Run("client-supplied identity headers are stripped", func(t *testing.T) {
		t.Parallel()

		var seenHeader string
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seenHeader = r.Header.Get("X-Tenant-ID")
			w.WriteHeader(http.StatusOK)
		})
		handler := tenant.Middleware(tenant.NewOrchestrator(newMockProvider()))(inner)

		req := httptest.NewRequest("GET", "/login", nil)
		req.Header.Set("X-Tenant-ID", uuid.New().String())
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, seenHeader)
	})

	t.Run("unconfirmed claim never steers redirects", func(t *testing.T) {
		t.Parallel()

		orch := tenant.NewOrchestrator(newMockProvider(), tenant.WithLenientScope(tenant.ScopeDefault))
		handler := tenant.Middleware(orch)(okHandler())

		claimed := uuid.New()
		req := httptest.NewRequest("GET", "/students", nil)
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: jwtWith(t, map[string]any{"tenant_id": claimed.String()})})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		res := rec.Result()
		require.Equal(t, http.StatusTemporaryRedirect, res.StatusCode)
		assert.Equal(t, "/login", res.Header.Get("Location"))
		assert.NotContains(t, res.Header.Get("Location"), claimed.String())
		assert.Empty(t, res.Cookies(), "claims never write cookies")
	})

	t.Run("access token in another namespace does not authenticate", func(t *testing.T) {
		t.Parallel()

		id := uuid.New()
		handler := tenant.Middleware(tenant.NewOrchestrator(newMockProvider()))(okHandler())

		req := httptest.NewRequest("GET", "/"+id.String()+"/grades", nil)
		req.AddCookie(&http.Cookie{Name: "t_tenantId", Value: id.String()})
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: "session"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
		assert.Equal(t, "/"+id.String()+"/session-expired", rec.Header().Get("Location"))
	})

	t.Run("missing access token bounces to session expired", func(t *testing.T) {
		t.Parallel()

		id := uuid.New()
		handler := tenant.Middleware(tenant.NewOrchestrator(newMockProvider()))(okHandler())

		req := httptest.NewRequest("GET", "/"+id.String()+"/grades", nil)
		req.AddCookie(&http.Cookie{Name: "t_tenantId", Value: id.String()})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
		assert.Equal(t, "/"+id.String()+"/session-expired", rec.Header().Get("Location"))
	})
}

func TestRequireTenant(t *testing.T) {
	t.Parallel()

	handler := tenant.RequireTenant(okHandler())

	t.Run("rejects without canonical identity", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/students", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects display-only tokens", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("GET", "/api/students", nil)
		req = req.WithContext(tenant.WithIdentity(req.Context(), tenant.DomainToken("acme")))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("passes with canonical identity", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("GET", "/api/students", nil)
		req = req.WithContext(tenant.WithIdentity(req.Context(), tenant.CanonicalID(uuid.New())))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestContextHelpers(t *testing.T) {
	t.Parallel()

	t.Run("round-trips an identity", func(t *testing.T) {
		t.Parallel()

		id := tenant.CanonicalID(uuid.New())
		ctx := tenant.WithIdentity(context.Background(), id)
		got, ok := tenant.FromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, id, got)
	})

	t.Run("empty context has no identity", func(t *testing.T) {
		t.Parallel()

		_, ok := tenant.FromContext(context.Background())
		assert.False(t, ok)
		_, ok = tenant.IDFromContext(context.Background())
		assert.False(t, ok)
	})
}
