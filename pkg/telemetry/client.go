// Package telemetry pkg/telemetry/client.go implements the query client
// for the OPC UA telemetry store's REST endpoint.
package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/carverauto/carbonradar/pkg/config"
	"github.com/carverauto/carbonradar/pkg/metrics"
)

const (
	defaultTimeout  = 15 * time.Second
	defaultLookback = time.Hour
	defaultRate     = 10 // queries per second
)

// Config holds the telemetry store connection settings.
type Config struct {
	Endpoint string `json:"endpoint"` // e.g. https://cluster.region.kusto.windows.net
	Database string `json:"database"`
	Token    string `json:"token,omitempty"` // static bearer token, optional

	Timeout          config.Duration `json:"timeout,omitempty"`
	Lookback         config.Duration `json:"lookback,omitempty"`
	QueriesPerSecond float64         `json:"queries_per_second,omitempty"`
}

// Validate implements config.Validator.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return errEndpointRequired
	}

	if c.Database == "" {
		return errDatabaseRequired
	}

	if c.Timeout == 0 {
		c.Timeout = config.Duration(defaultTimeout)
	}

	if c.Lookback == 0 {
		c.Lookback = config.Duration(defaultLookback)
	}

	if c.QueriesPerSecond == 0 {
		c.QueriesPerSecond = defaultRate
	}

	return nil
}

// Client executes correlation queries against the telemetry store.
type Client struct {
	cfg     *Config
	client  *http.Client
	limiter *rate.Limiter
	reg     *metrics.Registry
}

// NewClient creates a telemetry store client. reg may be nil.
func NewClient(cfg *Config, reg *metrics.Registry) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid telemetry config: %w", err)
	}

	return &Client{
		cfg:     cfg,
		client:  &http.Client{Timeout: time.Duration(cfg.Timeout)},
		limiter: rate.NewLimiter(rate.Limit(cfg.QueriesPerSecond), 1),
		reg:     reg,
	}, nil
}

// Lookback returns the configured completion look-back window.
func (c *Client) Lookback() time.Duration {
	return time.Duration(c.cfg.Lookback)
}

// LatestMatching returns the most recent observation of metric at the
// given station whose value equals value. found is false when no row
// matched within the look-back window.
func (c *Client) LatestMatching(ctx context.Context, station, line, metric string, value float64) (Sample, bool, error) {
	spec := &QuerySpec{
		Station:    station,
		Line:       line,
		Metric:     metric,
		Lookback:   time.Duration(c.cfg.Lookback),
		MatchValue: &value,
	}

	return c.run(ctx, "latest-matching", spec)
}

// LatestAround returns the most recent observation of metric at the
// given station within pivot +/- tolerance.
func (c *Client) LatestAround(ctx context.Context, station, line, metric string, pivot time.Time, tolerance time.Duration) (Sample, bool, error) {
	spec := &QuerySpec{
		Station:   station,
		Line:      line,
		Metric:    metric,
		Lookback:  time.Duration(c.cfg.Lookback),
		Pivot:     &pivot,
		Tolerance: tolerance,
	}

	return c.run(ctx, "latest-around", spec)
}

func (c *Client) run(ctx context.Context, op string, spec *QuerySpec) (Sample, bool, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Sample{}, false, err
	}

	if c.reg != nil {
		metrics.Inc(c.reg.TelemetryQueries)
	}

	sample, found, err := c.execute(ctx, spec.Render())
	if err != nil {
		if c.reg != nil {
			metrics.Inc(c.reg.TelemetryQueryErrors)
		}

		return Sample{}, false, &QueryError{
			Op:      op,
			Station: spec.Station,
			Metric:  spec.Metric,
			Wrapped: err,
		}
	}

	return sample, found, nil
}

func (c *Client) execute(ctx context.Context, csl string) (Sample, bool, error) {
	body, err := json.Marshal(map[string]string{
		"db":  c.cfg.Database,
		"csl": csl,
	})
	if err != nil {
		return Sample{}, false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.Endpoint+"/v1/rest/query", bytes.NewReader(body))
	if err != nil {
		return Sample{}, false, err
	}

	req.Header.Set("Content-Type", "application/json")

	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Sample{}, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Sample{}, false, fmt.Errorf("%w: %s", errBadStatus, resp.Status)
	}

	var result queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Sample{}, false, fmt.Errorf("%w: %w", errBadResponse, err)
	}

	return firstRowSample(&result)
}

// firstRowSample flattens the newest row of the primary result table
// into a typed sample. An empty result set is not an error.
func firstRowSample(result *queryResponse) (Sample, bool, error) {
	if len(result.Tables) == 0 || len(result.Tables[0].Rows) == 0 {
		return Sample{}, false, nil
	}

	primary := &result.Tables[0]
	row := primary.Rows[0]

	fields := make(map[string]interface{}, len(primary.Columns))

	for i, col := range primary.Columns {
		if i < len(row) {
			fields[col.ColumnName] = row[i]
		}
	}

	tsRaw, ok := fields["Timestamp"].(string)
	if !ok {
		return Sample{}, false, fmt.Errorf("%w: missing Timestamp column", errBadResponse)
	}

	ts, err := time.Parse(time.RFC3339Nano, tsRaw)
	if err != nil {
		return Sample{}, false, fmt.Errorf("%w: bad timestamp %q", errBadResponse, tsRaw)
	}

	value, ok := fields["OPCUANodeValue"].(float64)
	if !ok {
		return Sample{}, false, fmt.Errorf("%w: missing OPCUANodeValue column", errBadResponse)
	}

	return Sample{Timestamp: ts, Value: value}, true, nil
}
