package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/carverauto/carbonradar/pkg/api"
	"github.com/carverauto/carbonradar/pkg/cloudlib"
	"github.com/carverauto/carbonradar/pkg/config"
	"github.com/carverauto/carbonradar/pkg/db"
	"github.com/carverauto/carbonradar/pkg/gridintensity"
	"github.com/carverauto/carbonradar/pkg/lifecycle"
	"github.com/carverauto/carbonradar/pkg/metrics"
	"github.com/carverauto/carbonradar/pkg/pcf"
	"github.com/carverauto/carbonradar/pkg/telemetry"
	"github.com/carverauto/carbonradar/pkg/traceability"
)

// cmd/processor/main.go

// Config is the top-level processor configuration.
type Config struct {
	Telemetry     telemetry.Config     `json:"telemetry"`
	Traceability  *traceability.Config `json:"traceability,omitempty"`
	GridIntensity gridintensity.Config `json:"grid_intensity"`
	Repository    cloudlib.Config      `json:"repository"`
	Processor     pcf.Config           `json:"processor"`

	DBPath     string          `json:"db_path"`
	ListenAddr string          `json:"listen_addr,omitempty"`
	Interval   config.Duration `json:"interval,omitempty"`
}

// sweep adapts the processor to the lifecycle service contract; a sweep
// itself never fails, per-line outcomes are recorded instead.
type sweep struct {
	processor *pcf.Processor
}

func (s *sweep) Run(ctx context.Context) error {
	s.processor.RunAll(ctx)
	return nil
}

func main() {
	configPath := flag.String("config", "/etc/carbonradar/processor.json", "Path to config file")
	once := flag.Bool("once", false, "Run a single sweep and exit")
	flag.Parse()

	var cfg Config
	if err := config.LoadAndValidate(*configPath, &cfg); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	reg := metrics.NewRegistry()

	telemetryClient, err := telemetry.NewClient(&cfg.Telemetry, reg)
	if err != nil {
		log.Fatalf("Failed to create telemetry client: %v", err)
	}

	intensityClient, err := gridintensity.NewClient(&cfg.GridIntensity, reg)
	if err != nil {
		log.Fatalf("Failed to create grid intensity client: %v", err)
	}

	publisher, err := cloudlib.NewPublisher(&cfg.Repository)
	if err != nil {
		log.Fatalf("Failed to create repository publisher: %v", err)
	}

	// Traceability is optional; without it every footprint carries zero
	// embodied emissions.
	var genealogy pcf.GenealogySource

	if cfg.Traceability != nil && cfg.Traceability.Endpoint != "" {
		client, err := traceability.NewClient(cfg.Traceability)
		if err != nil {
			log.Fatalf("Failed to create traceability client: %v", err)
		}

		genealogy = client
	} else {
		log.Printf("No traceability service configured, scope 3 will be zero")
	}

	var store pcf.Store

	var history *db.DB

	if cfg.DBPath != "" {
		history, err = db.New(cfg.DBPath)
		if err != nil {
			log.Fatalf("Failed to open history store: %v", err)
		}
		defer history.Close()

		store = history
	}

	processor, err := pcf.NewProcessor(&cfg.Processor, telemetryClient,
		intensityClient, genealogy, publisher, store, reg)
	if err != nil {
		log.Fatalf("Failed to create processor: %v", err)
	}

	opts := &lifecycle.Options{
		ServiceName: "pcf-processor",
		Service:     &sweep{processor: processor},
	}

	if !*once {
		opts.Interval = time.Duration(cfg.Interval)
	}

	if cfg.ListenAddr != "" && history != nil {
		opts.APIAddr = cfg.ListenAddr
		opts.APIHandler = api.NewServer(history, reg).Router()
	}

	if err := lifecycle.Run(context.Background(), opts); err != nil {
		log.Fatalf("Service error: %v", err)
	}
}
