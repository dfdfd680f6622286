// Package gridintensity pkg/gridintensity/client.go resolves the current
// grid carbon intensity for a coordinate from a WattTime-style service.
package gridintensity

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/carverauto/carbonradar/pkg/config"
	"github.com/carverauto/carbonradar/pkg/metrics"
)

const (
	defaultBaseURL = "https://api.watttime.org"
	defaultTimeout = 15 * time.Second

	// FallbackIntensity is the documented average returned whenever the
	// service is unreachable or unconfigured, in g CO2e per kWh. Callers
	// always get a usable figure, never an error.
	FallbackIntensity = 500

	// The marginal-emissions signal the service is queried for.
	signalType = "co2_moer"

	// lbsPerMWhToGramsPerKWh converts the service's lb/MWh figures.
	lbsPerMWhToGramsPerKWh = 453.592 / 1000.0
)

// Config holds the carbon intensity service settings. Leaving Username
// empty disables the lookup entirely; every call then yields the fallback.
type Config struct {
	BaseURL  string          `json:"base_url,omitempty"`
	Username string          `json:"username,omitempty"` // falls back to WATTTIME_USER
	Password string          `json:"password,omitempty"` // falls back to WATTTIME_PASSWORD
	Timeout  config.Duration `json:"timeout,omitempty"`
}

// Validate implements config.Validator.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}

	c.Username = config.FromEnv(c.Username, "WATTTIME_USER")
	c.Password = config.FromEnv(c.Password, "WATTTIME_PASSWORD")

	if c.Timeout == 0 {
		c.Timeout = config.Duration(defaultTimeout)
	}

	return nil
}

type loginResponse struct {
	Token string `json:"token"`
}

type regionResponse struct {
	Region string `json:"region"`
}

type forecastResponse struct {
	Data []struct {
		Value float64 `json:"value"`
	} `json:"data"`
}

// Client resolves grid carbon intensity values.
type Client struct {
	cfg    *Config
	client *http.Client
	reg    *metrics.Registry
}

// NewClient creates a carbon intensity client. reg may be nil.
func NewClient(cfg *Config, reg *metrics.Registry) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid grid intensity config: %w", err)
	}

	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: time.Duration(cfg.Timeout)},
		reg:    reg,
	}, nil
}

// Current returns the grid carbon intensity at the coordinate in
// g CO2e/kWh. Any failure along the way degrades to the documented
// fallback average instead of an error.
func (c *Client) Current(ctx context.Context, latitude, longitude float64) float64 {
	if c.cfg.Username == "" {
		c.fallback("no credentials configured")
		return FallbackIntensity
	}

	intensity, err := c.lookup(ctx, latitude, longitude)
	if err != nil {
		c.fallback(err.Error())
		return FallbackIntensity
	}

	return intensity
}

func (c *Client) fallback(reason string) {
	log.Printf("Grid intensity lookup using fallback %d g/kWh: %s", FallbackIntensity, reason)

	if c.reg != nil {
		metrics.Inc(c.reg.IntensityFallbacks)
	}
}

func (c *Client) lookup(ctx context.Context, latitude, longitude float64) (float64, error) {
	token, err := c.login(ctx)
	if err != nil {
		return 0, fmt.Errorf("login failed: %w", err)
	}

	region, err := c.regionFromLoc(ctx, token, latitude, longitude)
	if err != nil {
		return 0, fmt.Errorf("region lookup failed: %w", err)
	}

	value, err := c.forecast(ctx, token, region)
	if err != nil {
		return 0, fmt.Errorf("forecast lookup failed: %w", err)
	}

	return value * lbsPerMWhToGramsPerKWh, nil
}

func (c *Client) login(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/login", nil)
	if err != nil {
		return "", err
	}

	req.SetBasicAuth(c.cfg.Username, c.cfg.Password)

	var login loginResponse
	if err := c.do(req, &login); err != nil {
		return "", err
	}

	return login.Token, nil
}

func (c *Client) regionFromLoc(ctx context.Context, token string, latitude, longitude float64) (string, error) {
	query := url.Values{}
	query.Set("latitude", fmt.Sprintf("%v", latitude))
	query.Set("longitude", fmt.Sprintf("%v", longitude))
	query.Set("signal_type", signalType)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.cfg.BaseURL+"/v3/region-from-loc?"+query.Encode(), nil)
	if err != nil {
		return "", err
	}

	req.Header.Set("Authorization", "Bearer "+token)

	var region regionResponse
	if err := c.do(req, &region); err != nil {
		return "", err
	}

	if region.Region == "" {
		return "", fmt.Errorf("no grid region for (%v, %v)", latitude, longitude)
	}

	return region.Region, nil
}

func (c *Client) forecast(ctx context.Context, token, region string) (float64, error) {
	query := url.Values{}
	query.Set("region", region)
	query.Set("signal_type", signalType)
	query.Set("horizon_hours", "0")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.cfg.BaseURL+"/v3/forecast?"+query.Encode(), nil)
	if err != nil {
		return 0, err
	}

	req.Header.Set("Authorization", "Bearer "+token)

	var forecast forecastResponse
	if err := c.do(req, &forecast); err != nil {
		return 0, err
	}

	if len(forecast.Data) == 0 {
		return 0, fmt.Errorf("empty forecast for region %s", region)
	}

	return forecast.Data[0].Value, nil
}

func (c *Client) do(req *http.Request, dst interface{}) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s from %s", resp.Status, req.URL.Path)
	}

	return json.NewDecoder(resp.Body).Decode(dst)
}
