// Package pcf pkg/pcf/processor.go orchestrates one footprint sweep over
// the configured production lines.
package pcf

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/carverauto/carbonradar/pkg/metrics"
	"github.com/carverauto/carbonradar/pkg/traceability"
)

// GenealogyConfig names the ERP item whose upstream genealogy carries
// the embodied emissions figure.
type GenealogyConfig struct {
	Company     string `json:"company"`
	ItemNumber  string `json:"item_number"`
	BatchNumber string `json:"batch_number"`
}

// Config is the processor configuration.
type Config struct {
	Lines     []ProductionLine `json:"production_lines"`
	Genealogy GenealogyConfig  `json:"genealogy"`
}

// Validate implements config.Validator.
func (c *Config) Validate() error {
	if len(c.Lines) == 0 {
		return errNoLines
	}

	for i := range c.Lines {
		if err := c.Lines[i].Validate(); err != nil {
			return fmt.Errorf("production line %d: %w", i, err)
		}
	}

	return nil
}

// Processor runs the full pipeline for every configured line.
type Processor struct {
	cfg       *Config
	engine    *Engine
	intensity IntensitySource
	genealogy GenealogySource // nil when no traceability service is configured
	publisher Publisher
	store     Store // nil disables local history
	reg       *metrics.Registry
}

func NewProcessor(cfg *Config, telemetry TelemetrySource, intensity IntensitySource,
	genealogy GenealogySource, publisher Publisher, store Store, reg *metrics.Registry) (*Processor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid processor config: %w", err)
	}

	return &Processor{
		cfg:       cfg,
		engine:    NewEngine(telemetry),
		intensity: intensity,
		genealogy: genealogy,
		publisher: publisher,
		store:     store,
		reg:       reg,
	}, nil
}

// RunAll processes every configured line in order. A failure on one line
// never prevents the remaining lines from running; per-line outcomes are
// logged and recorded, and the sweep itself always completes.
func (p *Processor) RunAll(ctx context.Context) []*RunRecord {
	records := make([]*RunRecord, 0, len(p.cfg.Lines))

	for i := range p.cfg.Lines {
		line := &p.cfg.Lines[i]

		record := p.processLine(ctx, line)
		records = append(records, record)

		log.Printf("Line %s run finished: %s %s", line.Name, record.Outcome, record.Reason)

		if p.store != nil {
			if err := p.store.SaveRun(ctx, record); err != nil {
				log.Printf("Error recording run for line %s: %v", line.Name, err)
			}
		}
	}

	return records
}

// processLine runs the fixed pipeline for one line: completion check and
// correlation, then intensity, then embodied emissions, then aggregation
// and publication. Nothing is published for an incomplete trace.
func (p *Processor) processLine(ctx context.Context, line *ProductionLine) (record *RunRecord) {
	record = &RunRecord{
		Line:      line.Name,
		StartedAt: time.Now().UTC(),
	}

	if p.reg != nil {
		metrics.Inc(p.reg.RunsStarted)
	}

	// A misbehaving collaborator must only take down this line's run.
	defer func() {
		if r := recover(); r != nil {
			record.Outcome = OutcomeFailed
			record.Reason = fmt.Sprintf("panic: %v", r)

			if p.reg != nil {
				metrics.Inc(p.reg.RunsFailed)
			}
		}

		record.FinishedAt = time.Now().UTC()
	}()

	trace, err := p.engine.Correlate(ctx, line)
	if err != nil {
		return p.fail(record, err)
	}

	if trace == nil {
		record.Outcome = OutcomeIdle
		record.Reason = "no new finished unit"

		return record
	}

	record.Serial = trace.Serial

	intensity := p.intensity.Current(ctx, line.Latitude, line.Longitude)

	scope3 := p.embodiedEmissions(ctx)

	footprint := ComputeFootprint(line, trace, intensity, scope3)

	log.Printf("Line %s unit %s: pcf=%v gCO2e (scope2=%v, scope3=%v)",
		line.Name, footprint.SerialNumber, footprint.Total, footprint.Scope2, footprint.Scope3)

	if p.store != nil {
		if err := p.store.SaveFootprint(ctx, footprint); err != nil {
			log.Printf("Error saving footprint for %s/%s: %v", line.Name, trace.Serial, err)
		}
	}

	if p.reg != nil {
		metrics.Inc(p.reg.Publishes)
	}

	// Publication failures are logged, not retried; the computation
	// stands and the local record already exists.
	if err := p.publisher.Publish(ctx, footprint); err != nil {
		log.Printf("Error publishing footprint for %s/%s: %v", line.Name, trace.Serial, err)

		record.Reason = fmt.Sprintf("publish failed: %v", err)

		if p.reg != nil {
			metrics.Inc(p.reg.PublishErrors)
		}
	}

	record.Outcome = OutcomeCompleted

	if p.reg != nil {
		metrics.Inc(p.reg.RunsCompleted)
	}

	return record
}

func (p *Processor) fail(record *RunRecord, err error) *RunRecord {
	if isAbandoned(err) {
		record.Outcome = OutcomeAbandoned

		if p.reg != nil {
			metrics.Inc(p.reg.RunsAbandoned)
		}
	} else {
		record.Outcome = OutcomeFailed

		if p.reg != nil {
			metrics.Inc(p.reg.RunsFailed)
		}
	}

	record.Reason = err.Error()

	return record
}

// embodiedEmissions resolves the scope-3 figure from the genealogy
// service. Any failure degrades to zero: "no figure found" and "service
// unavailable" both mean the footprint carries no embodied emissions.
func (p *Processor) embodiedEmissions(ctx context.Context) float64 {
	if p.genealogy == nil {
		return 0
	}

	root, err := p.genealogy.Trace(ctx, &traceability.TraceQuery{
		TracingDirection:    traceability.DirectionBackward,
		Company:             p.cfg.Genealogy.Company,
		ItemNumber:          p.cfg.Genealogy.ItemNumber,
		SerialNumber:        p.cfg.Genealogy.BatchNumber,
		ShouldIncludeEvents: true,
	})
	if err != nil {
		log.Printf("Error resolving embodied emissions: %v", err)
		return 0
	}

	if root == nil {
		return 0
	}

	return FindEmissions(root)
}
