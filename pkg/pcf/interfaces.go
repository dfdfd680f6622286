// Package pcf pkg/pcf/interfaces.go
package pcf

import (
	"context"
	"time"

	"github.com/carverauto/carbonradar/pkg/telemetry"
	"github.com/carverauto/carbonradar/pkg/traceability"
)

//go:generate mockgen -destination=mock_pcf.go -package=pcf github.com/carverauto/carbonradar/pkg/pcf TelemetrySource,GenealogySource,IntensitySource,Publisher,Store

// TelemetrySource answers time-windowed correlation queries. found is
// false when no row matched; an error means the store itself failed.
type TelemetrySource interface {
	// LatestMatching returns the most recent observation of metric at
	// station whose value equals value, within the look-back window.
	LatestMatching(ctx context.Context, station, line, metric string, value float64) (telemetry.Sample, bool, error)
	// LatestAround returns the most recent observation of metric at
	// station within pivot +/- tolerance.
	LatestAround(ctx context.Context, station, line, metric string, pivot time.Time, tolerance time.Duration) (telemetry.Sample, bool, error)
}

// GenealogySource resolves a unit's upstream bill-of-materials graph.
type GenealogySource interface {
	Trace(ctx context.Context, query *traceability.TraceQuery) (*traceability.Node, error)
}

// IntensitySource resolves the current grid carbon intensity for a
// coordinate, in g CO2e/kWh. Implementations never fail; they degrade
// to a documented fallback instead.
type IntensitySource interface {
	Current(ctx context.Context, latitude, longitude float64) float64
}

// Publisher uploads a footprint record to the information-model repository.
type Publisher interface {
	Publish(ctx context.Context, footprint *Footprint) error
}

// Store persists computed footprints and run outcomes locally.
type Store interface {
	SaveFootprint(ctx context.Context, footprint *Footprint) error
	SaveRun(ctx context.Context, run *RunRecord) error
}
