package registry

import "time"

// Config holds registry client configuration.
type Config struct {
	// BaseURL is the registry API root, e.g. "https://registry.internal".
	BaseURL string `env:"TENANT_REGISTRY_URL,required"`
	// Timeout bounds a single lookup request.
	Timeout time.Duration `env:"TENANT_REGISTRY_TIMEOUT" envDefault:"5s"`
}
