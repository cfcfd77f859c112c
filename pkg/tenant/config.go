package tenant

import "time"

// Config holds resolution orchestrator configuration.
type Config struct {
	// LookupTimeout bounds a single registry lookup.
	LookupTimeout time.Duration `env:"TENANT_LOOKUP_TIMEOUT" envDefault:"5s"`
	// CacheTTL is how long resolved tenants stay cached.
	CacheTTL time.Duration `env:"TENANT_CACHE_TTL" envDefault:"5m"`
	// CacheSize bounds the in-memory tenant cache.
	CacheSize int `env:"TENANT_CACHE_SIZE" envDefault:"1000"`
	// PlatformSuffixes lists hostname suffixes that belong to deployment
	// platforms rather than tenant domains, e.g. ".vercel.app".
	PlatformSuffixes []string `env:"TENANT_PLATFORM_SUFFIXES" envSeparator:","`
	// QueryParam is the explicit tenant override query parameter name.
	QueryParam string `env:"TENANT_QUERY_PARAM" envDefault:"tenant"`
}

// NewOrchestratorFromConfig creates an Orchestrator from the provided Config.
// Only non-zero values from the config are applied.
func NewOrchestratorFromConfig(provider Provider, cfg Config, opts ...Option) *Orchestrator {
	configOpts := make([]Option, 0, 5)

	if cfg.LookupTimeout > 0 {
		configOpts = append(configOpts, WithLookupTimeout(cfg.LookupTimeout))
	}
	if cfg.CacheTTL > 0 {
		configOpts = append(configOpts, WithCacheTTL(cfg.CacheTTL))
	}
	if cfg.CacheSize > 0 {
		configOpts = append(configOpts, WithCache(NewMemoryCache(cfg.CacheSize)))
	}
	if len(cfg.PlatformSuffixes) > 0 {
		configOpts = append(configOpts, WithPlatformSuffixes(cfg.PlatformSuffixes...))
	}
	if cfg.QueryParam != "" {
		configOpts = append(configOpts, WithQueryParam(cfg.QueryParam))
	}

	configOpts = append(configOpts, opts...)
	return NewOrchestrator(provider, configOpts...)
}
