package environment

// Environment represents the application environment.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// IsProduction reports whether env names the production environment.
func IsProduction(env string) bool {
	return env == string(Production) || env == "prod"
}
