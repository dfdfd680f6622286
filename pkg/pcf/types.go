// Package pcf pkg/pcf/types.go defines the product carbon footprint
// pipeline's working records.
package pcf

import (
	"time"

	"github.com/carverauto/carbonradar/pkg/config"
)

// ProductionLine is the static description of one line: its stations in
// processing order (terminal station last), its location, and the ideal
// cycle time used as the correlation time-window tolerance.
type ProductionLine struct {
	Name           string          `json:"name"`
	Latitude       float64         `json:"latitude"`
	Longitude      float64         `json:"longitude"`
	Stations       []string        `json:"stations"`
	IdealCycleTime config.Duration `json:"ideal_cycle_time"`
}

// Validate implements config.Validator.
func (l *ProductionLine) Validate() error {
	if l.Name == "" {
		return errLineNameRequired
	}

	if len(l.Stations) == 0 {
		return errStationsRequired
	}

	if l.IdealCycleTime <= 0 {
		return errCycleTimeRequired
	}

	return nil
}

// TerminalStation is the last station on the line; its done-state
// observations signal finished units.
func (l *ProductionLine) TerminalStation() string {
	return l.Stations[len(l.Stations)-1]
}

// StationEnergy is a unit's presence window and energy draw at one station.
type StationEnergy struct {
	Timestamp time.Time
	EnergyWs  float64
}

// UnitTrace is the working record built for one completed unit: where it
// was seen and how much energy each station drew while it was there. The
// trace is only ever handed to the aggregator fully populated.
type UnitTrace struct {
	Line   string
	Serial string

	// SerialValue is the serial as the telemetry layer emits it. It is
	// kept only for exact-match queries against the store; everything
	// else uses the canonical Serial string.
	SerialValue float64

	Stations map[string]StationEnergy
}

// Methodology is the calculation method tag published with every record.
const Methodology = "GHG Protocol"

// Footprint is the computed product carbon footprint record.
type Footprint struct {
	ProductionLine string    `json:"production_line"`
	SerialNumber   string    `json:"serial_number"`
	TotalEnergyWh  float64   `json:"total_energy_wh"`
	Scope1         float64   `json:"scope1_g_co2e"`
	Scope2         float64   `json:"scope2_g_co2e"`
	Scope3         float64   `json:"scope3_g_co2e"`
	Total          float64   `json:"total_g_co2e"`
	CarbonIntensity float64  `json:"carbon_intensity_g_per_kwh"`
	Methodology    string    `json:"methodology"`
	ComputedAt     time.Time `json:"computed_at"`
}

// RunOutcome classifies one production-line run.
type RunOutcome string

const (
	// OutcomeIdle means no new finished unit was detected.
	OutcomeIdle RunOutcome = "idle"
	// OutcomeCompleted means a footprint was computed and persisted.
	OutcomeCompleted RunOutcome = "completed"
	// OutcomeAbandoned means correlation data was missing; no output.
	OutcomeAbandoned RunOutcome = "abandoned"
	// OutcomeFailed means an unexpected error ended the run; no output.
	OutcomeFailed RunOutcome = "failed"
)

// RunRecord is the per-line result of one invocation.
type RunRecord struct {
	Line       string     `json:"line"`
	Outcome    RunOutcome `json:"outcome"`
	Serial     string     `json:"serial,omitempty"`
	Reason     string     `json:"reason,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt time.Time  `json:"finished_at"`
}
