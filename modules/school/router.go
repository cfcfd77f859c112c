package school

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/schoolkit/schoolkit/pkg/tenant"
)

// RouterOptions configures the school platform edge router. Each handler is
// optional; nil handlers are simply not mounted.
type RouterOptions struct {
	// Resolution is the tenant resolution middleware applied to every route.
	Resolution func(http.Handler) http.Handler
	// Dashboard serves tenant-prefixed dashboard routes.
	Dashboard http.Handler
	// API serves /api routes; it runs behind RequireTenant.
	API http.Handler
	// SuperAdmin serves the platform operator area.
	SuperAdmin http.Handler
	// Healthcheck answers liveness/readiness probes, outside resolution.
	Healthcheck http.HandlerFunc
}

// Router assembles the edge router: health endpoints stay outside the
// resolution middleware, everything else goes through it.
//
//	orch := tenant.NewOrchestrator(provider, tenant.WithCache(cache))
//	r := school.Router(school.RouterOptions{
//		Resolution: tenant.Middleware(orch, tenant.WithCookieManager(cookies)),
//		Dashboard:  dashboardHandler,
//		API:        apiHandler,
//	})
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	if opts.Healthcheck != nil {
		r.Get("/health", opts.Healthcheck)
	}

	r.Group(func(g chi.Router) {
		if opts.Resolution != nil {
			g.Use(opts.Resolution)
		}

		if opts.API != nil {
			g.Mount("/api", tenant.RequireTenant(opts.API))
		}
		if opts.SuperAdmin != nil {
			g.Mount("/"+tenant.SuperAdminSegment, opts.SuperAdmin)
		}
		if opts.Dashboard != nil {
			g.Mount("/", opts.Dashboard)
		}
	})

	return r
}
