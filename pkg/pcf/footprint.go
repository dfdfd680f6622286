// Package pcf pkg/pcf/footprint.go implements the footprint aggregator.
package pcf

import (
	"time"
)

// The production line simulation has no direct combustion source, so
// scope 1 is fixed at zero.
const scope1Emissions = 0.0

// TotalEnergy reconstructs the unit's process energy from the stations'
// instantaneous consumption-rate samples: the per-station readings are
// in watt-seconds, summed, divided by 3600 and scaled by the ideal cycle
// time in seconds.
func TotalEnergy(trace *UnitTrace, idealCycleTime time.Duration) float64 {
	var sum float64
	for _, station := range trace.Stations {
		sum += station.EnergyWs
	}

	return sum / 3600 * idealCycleTime.Seconds()
}

// ComputeFootprint combines a complete unit trace, the line's current
// grid carbon intensity (g CO2e/kWh) and the embodied scope-3 figure
// into one footprint record. A zero scope3 is a valid input: the
// genealogy may simply carry no emissions entry.
//
// No rounding is applied; the full floating-point value is carried
// through to persistence.
func ComputeFootprint(line *ProductionLine, trace *UnitTrace, intensity, scope3 float64) *Footprint {
	totalEnergy := TotalEnergy(trace, time.Duration(line.IdealCycleTime))

	scope2 := totalEnergy * intensity

	return &Footprint{
		ProductionLine:  line.Name,
		SerialNumber:    trace.Serial,
		TotalEnergyWh:   totalEnergy,
		Scope1:          scope1Emissions,
		Scope2:          scope2,
		Scope3:          scope3,
		Total:           scope1Emissions + scope2 + scope3,
		CarbonIntensity: intensity,
		Methodology:     Methodology,
		ComputedAt:      time.Now().UTC(),
	}
}
