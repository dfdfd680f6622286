// Package pcf pkg/pcf/engine.go implements the unit correlation engine:
// given a production line, detect a finished unit and reconstruct its
// per-station energy consumption from the telemetry store.
package pcf

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/carverauto/carbonradar/pkg/telemetry"
)

// Engine correlates a finished unit across the stations of a line.
type Engine struct {
	source TelemetrySource
}

func NewEngine(source TelemetrySource) *Engine {
	return &Engine{source: source}
}

// Correlate checks the line's terminal station for a newly finished unit
// and, if one is found, resolves its serial number and its energy draw at
// every station. It returns (nil, nil) when no new unit has finished.
// A missing result at any step abandons the run with ErrIncompleteTrace;
// no partial trace is ever returned.
//
// Whenever a query can match multiple rows, the most recently timestamped
// row wins. That rule disambiguates every lookup below.
func (e *Engine) Correlate(ctx context.Context, line *ProductionLine) (*UnitTrace, error) {
	terminal := line.TerminalStation()
	tolerance := time.Duration(line.IdealCycleTime)

	// A finished unit shows up as the terminal station reporting the
	// done state with passed QA.
	completion, found, err := e.source.LatestMatching(ctx, terminal, line.Name,
		telemetry.MetricStatus, telemetry.StatusDone)
	if err != nil {
		return nil, err
	}

	if !found {
		return nil, nil
	}

	// The serial number the terminal station recorded around the
	// completion timestamp identifies the unit.
	serialSample, found, err := e.source.LatestAround(ctx, terminal, line.Name,
		telemetry.MetricProductSerialNumber, completion.Timestamp, tolerance)
	if err != nil {
		return nil, err
	}

	if !found {
		return nil, fmt.Errorf("%w: no serial number at %s around %v",
			ErrIncompleteTrace, terminal, completion.Timestamp)
	}

	serial, err := telemetry.FormatSerial(serialSample.Value)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIncompleteTrace, err)
	}

	trace := &UnitTrace{
		Line:        line.Name,
		Serial:      serial,
		SerialValue: serialSample.Value,
		Stations:    make(map[string]StationEnergy, len(line.Stations)),
	}

	// Re-identify the unit at every station, terminal included, and read
	// the station's energy draw inside the unit's presence window. The
	// lookups are independent of each other.
	for _, station := range line.Stations {
		energy, err := e.stationEnergy(ctx, line, station, trace.SerialValue, tolerance)
		if err != nil {
			return nil, err
		}

		trace.Stations[station] = *energy
	}

	log.Printf("Correlated unit %s across %d stations on line %s",
		trace.Serial, len(trace.Stations), line.Name)

	return trace, nil
}

// stationEnergy finds when the station last saw the serial number and the
// energy consumption it reported inside that window.
func (e *Engine) stationEnergy(ctx context.Context, line *ProductionLine, station string, serialValue float64, tolerance time.Duration) (*StationEnergy, error) {
	sighting, found, err := e.source.LatestMatching(ctx, station, line.Name,
		telemetry.MetricProductSerialNumber, serialValue)
	if err != nil {
		return nil, err
	}

	if !found {
		return nil, fmt.Errorf("%w: station %s never saw serial %v",
			ErrIncompleteTrace, station, serialValue)
	}

	energy, found, err := e.source.LatestAround(ctx, station, line.Name,
		telemetry.MetricEnergyConsumption, sighting.Timestamp, tolerance)
	if err != nil {
		return nil, err
	}

	if !found {
		return nil, fmt.Errorf("%w: no energy reading at %s around %v",
			ErrIncompleteTrace, station, sighting.Timestamp)
	}

	return &StationEnergy{Timestamp: sighting.Timestamp, EnergyWs: energy.Value}, nil
}
