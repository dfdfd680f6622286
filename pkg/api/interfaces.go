// Package api pkg/api/interfaces.go
package api

import (
	"context"

	"github.com/carverauto/carbonradar/pkg/pcf"
)

//go:generate mockgen -destination=mock_api.go -package=api github.com/carverauto/carbonradar/pkg/api FootprintReader

// FootprintReader is the read side of the footprint history store.
type FootprintReader interface {
	GetFootprint(ctx context.Context, line, serial string) (*pcf.Footprint, error)
	ListFootprints(ctx context.Context, line string) ([]*pcf.Footprint, error)
	ListRuns(ctx context.Context, limit int) ([]*pcf.RunRecord, error)
}
