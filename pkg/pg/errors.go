package pg

import "errors"

var (
	ErrFailedToParseDBConfig    = errors.New("failed to parse database config")
	ErrFailedToOpenDBConnection = errors.New("failed to open database connection")
	ErrHealthcheckFailed        = errors.New("database healthcheck failed")
)
