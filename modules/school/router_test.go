package school_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolkit/schoolkit/modules/school"
	"github.com/schoolkit/schoolkit/pkg/tenant"
)

func TestRouter(t *testing.T) {
	t.Parallel()

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("health stays outside the resolution middleware", func(t *testing.T) {
		t.Parallel()

		resolved := 0
		r := school.Router(school.RouterOptions{
			Resolution: func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
					resolved++
					next.ServeHTTP(w, req)
				})
			},
			Dashboard: ok,
			Healthcheck: func(w http.ResponseWriter, req *http.Request) {
				w.WriteHeader(http.StatusOK)
			},
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Zero(t, resolved)

		rec = httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest("GET", "/welcome", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, resolved)
	})

	t.Run("api routes require a resolved tenant", func(t *testing.T) {
		t.Parallel()

		id := tenant.CanonicalID(uuid.New())
		r := school.Router(school.RouterOptions{
			Resolution: func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
					if req.URL.Query().Get("known") == "1" {
						req = req.WithContext(tenant.WithIdentity(req.Context(), id))
					}
					next.ServeHTTP(w, req)
				})
			},
			API: ok,
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest("GET", "/api/students", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest("GET", "/api/students?known=1", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("nil handlers are not mounted", func(t *testing.T) {
		t.Parallel()

		r := school.Router(school.RouterOptions{})
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
