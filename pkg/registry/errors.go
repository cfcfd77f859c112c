package registry

import "errors"

var (
	// ErrMissingBaseURL is returned when the client is created without a
	// registry endpoint.
	ErrMissingBaseURL = errors.New("registry base URL is required")

	// ErrHealthcheckFailed indicates the registry readiness probe failed.
	ErrHealthcheckFailed = errors.New("registry healthcheck failed")
)
