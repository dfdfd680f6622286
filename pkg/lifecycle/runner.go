// Package lifecycle pkg/lifecycle/runner.go handles scheduling and
// shutdown for the processor and its API server.
package lifecycle

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Service is one sweep over all configured production lines.
type Service interface {
	Run(ctx context.Context) error
}

// Options holds the runner configuration.
type Options struct {
	ServiceName string
	Service     Service

	// Interval between sweeps; zero runs exactly one sweep and exits.
	Interval time.Duration

	// APIAddr and APIHandler, when set, serve the read-only API for the
	// process lifetime.
	APIAddr    string
	APIHandler http.Handler
}

// Run executes the service per Options and blocks until it finishes or a
// shutdown signal arrives. Sweep errors are logged, never fatal: the next
// tick always happens.
func Run(ctx context.Context, opts *Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.Printf("*** Starting service %s", opts.ServiceName)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			log.Printf("Received signal %v, shutting down", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	if opts.APIAddr != "" && opts.APIHandler != nil {
		go func() {
			log.Printf("Starting API server on %s", opts.APIAddr)

			if err := http.ListenAndServe(opts.APIAddr, opts.APIHandler); err != nil {
				log.Printf("API server error: %v", err)
			}
		}()
	}

	// Initial sweep before the first tick.
	if err := opts.Service.Run(ctx); err != nil {
		log.Printf("Error during sweep: %v", err)
	}

	if opts.Interval == 0 {
		return nil
	}

	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("Service %s stopped", opts.ServiceName)
			return nil
		case <-ticker.C:
			if err := opts.Service.Run(ctx); err != nil {
				log.Printf("Error during sweep: %v", err)
			}
		}
	}
}
