package traceability

import "errors"

var (
	errEndpointRequired = errors.New("traceability endpoint is required")
	errTenantRequired   = errors.New("traceability tenant id is required")
	errClientIDRequired = errors.New("traceability client id is required")
	errEnvRequired      = errors.New("traceability environment id is required")

	errTokenExchange = errors.New("service token exchange failed")
	errQueryStatus   = errors.New("trace query returned non-200 status")
	errUnauthorized  = errors.New("trace query unauthorized after re-authentication")
)
