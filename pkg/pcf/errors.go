// Package pcf pkg/pcf/errors.go provides errors for the pcf package.
package pcf

import "errors"

var (
	// ErrIncompleteTrace marks a run abandoned because a correlation
	// step found no data. It is not a hard failure.
	ErrIncompleteTrace = errors.New("incomplete unit trace")

	errLineNameRequired  = errors.New("production line name is required")
	errStationsRequired  = errors.New("production line needs at least one station")
	errCycleTimeRequired = errors.New("production line ideal cycle time must be positive")
	errNoLines           = errors.New("no production lines configured")
)

// isAbandoned reports whether err classifies a run as abandoned for
// missing correlation data rather than failed outright.
func isAbandoned(err error) bool {
	return errors.Is(err, ErrIncompleteTrace)
}
