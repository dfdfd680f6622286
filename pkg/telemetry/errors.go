package telemetry

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSerial = errors.New("serial number is not an exact integer")

	errEndpointRequired = errors.New("telemetry endpoint is required")
	errDatabaseRequired = errors.New("telemetry database is required")
	errBadStatus        = errors.New("query returned non-200 status")
	errBadResponse      = errors.New("malformed query response")
)

// QueryError wraps store errors with the operation and query context.
type QueryError struct {
	Op      string
	Station string
	Metric  string
	Wrapped error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("telemetry %s failed for %s/%s: %v", e.Op, e.Station, e.Metric, e.Wrapped)
}

func (e *QueryError) Unwrap() error { return e.Wrapped }
