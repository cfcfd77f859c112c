package tenant

import (
	"log/slog"
	"time"
)

type orchestratorConfig struct {
	cache            Cache
	cacheTTL         time.Duration
	lookupTimeout    time.Duration
	lenient          map[Scope]bool
	platformSuffixes []string
	queryParam       string
	logger           *slog.Logger
}

// Option configures the Orchestrator.
type Option func(*orchestratorConfig)

// WithCache sets the advisory tenant cache. Defaults to an in-memory LRU.
func WithCache(c Cache) Option {
	return func(cfg *orchestratorConfig) {
		if c != nil {
			cfg.cache = c
		}
	}
}

// WithCacheTTL sets how long resolved tenants stay cached.
func WithCacheTTL(ttl time.Duration) Option {
	return func(cfg *orchestratorConfig) {
		if ttl > 0 {
			cfg.cacheTTL = ttl
		}
	}
}

// WithLookupTimeout bounds a single registry lookup. The routing pipeline
// proceeds as if resolution failed once the bound is hit.
func WithLookupTimeout(d time.Duration) Option {
	return func(cfg *orchestratorConfig) {
		if d > 0 {
			cfg.lookupTimeout = d
		}
	}
}

// WithLenientScope keeps an unresolved domain token as a display-only,
// non-authoritative identity for the given scope instead of dropping it.
// All scopes are strict by default.
func WithLenientScope(scope Scope) Option {
	return func(cfg *orchestratorConfig) {
		cfg.lenient[scope] = true
	}
}

// WithPlatformSuffixes sets hostname suffixes that are deployment platforms
// rather than tenant domains (e.g. ".vercel.app").
func WithPlatformSuffixes(suffixes ...string) Option {
	return func(cfg *orchestratorConfig) {
		cfg.platformSuffixes = append(cfg.platformSuffixes, suffixes...)
	}
}

// WithQueryParam overrides the tenant override query parameter name.
func WithQueryParam(name string) Option {
	return func(cfg *orchestratorConfig) {
		if name != "" {
			cfg.queryParam = name
		}
	}
}

// WithLogger sets the orchestrator logger.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *orchestratorConfig) {
		if l != nil {
			cfg.logger = l
		}
	}
}
