// Package traceability pkg/traceability/client.go implements the ERP
// genealogy client with its two-step token exchange.
package traceability

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/carverauto/carbonradar/pkg/config"
)

const (
	defaultTimeout = 30 * time.Second

	// Defaults for the hosted traceability service; overridable for tests
	// and sovereign-cloud deployments.
	defaultServiceTokenURL = "https://securityservice.operations365.dynamics.com/token"
	defaultServiceScope    = "https://traceabilityservice.operations365.dynamics.com/.default"
	defaultResourceAppID   = "0cdb527f-a8d1-4bf8-9436-b352c68682b2"
)

// Config holds the traceability service connection settings.
type Config struct {
	Endpoint      string `json:"endpoint"`
	TenantID      string `json:"tenant_id"`
	ClientID      string `json:"client_id"`
	ClientSecret  string `json:"client_secret,omitempty"` // falls back to TRACEABILITY_CLIENT_SECRET
	EnvironmentID string `json:"environment_id"`

	IdentityTokenURL string `json:"identity_token_url,omitempty"`
	ServiceTokenURL  string `json:"service_token_url,omitempty"`
	ServiceScope     string `json:"service_scope,omitempty"`
	ResourceAppID    string `json:"resource_app_id,omitempty"`

	Timeout config.Duration `json:"timeout,omitempty"`
}

// Validate implements config.Validator.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return errEndpointRequired
	}

	if c.TenantID == "" {
		return errTenantRequired
	}

	if c.ClientID == "" {
		return errClientIDRequired
	}

	if c.EnvironmentID == "" {
		return errEnvRequired
	}

	c.ClientSecret = config.FromEnv(c.ClientSecret, "TRACEABILITY_CLIENT_SECRET")

	if c.IdentityTokenURL == "" {
		c.IdentityTokenURL = fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", c.TenantID)
	}

	if c.ServiceTokenURL == "" {
		c.ServiceTokenURL = defaultServiceTokenURL
	}

	if c.ServiceScope == "" {
		c.ServiceScope = defaultServiceScope
	}

	if c.ResourceAppID == "" {
		c.ResourceAppID = defaultResourceAppID
	}

	if c.Timeout == 0 {
		c.Timeout = config.Duration(defaultTimeout)
	}

	return nil
}

type serviceTokenRequest struct {
	GrantType           string `json:"grant_type"`
	ClientAssertionType string `json:"client_assertion_type"`
	ClientAssertion     string `json:"client_assertion"`
	Scope               string `json:"scope"`
	Context             string `json:"context"`
	ContextType         string `json:"context_type"`
}

type serviceTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// Client is the long-lived traceability session. It owns a bearer token
// that re-authentication replaces in place, so token state is guarded by
// one lock: a refresh must not race an in-flight request building its
// Authorization header.
type Client struct {
	cfg    *Config
	client *http.Client
	creds  *clientcredentials.Config

	mu    sync.Mutex
	token string
}

// NewClient creates a traceability client. No network call is made until
// the first query needs a token.
func NewClient(cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid traceability config: %w", err)
	}

	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: time.Duration(cfg.Timeout)},
		creds: &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.IdentityTokenURL,
			Scopes:       []string{cfg.ResourceAppID + "/.default"},
		},
	}, nil
}

// authorize performs the two-step exchange: identity provider first,
// then the service's own token endpoint scoped to the environment.
func (c *Client) authorize(ctx context.Context) error {
	identity, err := c.creds.Token(ctx)
	if err != nil {
		return fmt.Errorf("identity token request failed: %w", err)
	}

	body, err := json.Marshal(&serviceTokenRequest{
		GrantType:           "client_credentials",
		ClientAssertionType: "aad_app",
		ClientAssertion:     identity.AccessToken,
		Scope:               c.cfg.ServiceScope,
		Context:             c.cfg.EnvironmentID,
		ContextType:         "finops-env",
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.ServiceTokenURL, bytes.NewReader(body))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", errTokenExchange, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s", errTokenExchange, resp.Status)
	}

	var token serviceTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return fmt.Errorf("%w: %w", errTokenExchange, err)
	}

	c.mu.Lock()
	c.token = token.AccessToken
	c.mu.Unlock()

	return nil
}

func (c *Client) bearer() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.token
}

// Trace runs a genealogy query. An expired token triggers exactly one
// re-authentication followed by one retry of the identical request; a
// second authorization failure is surfaced to the caller.
func (c *Client) Trace(ctx context.Context, query *TraceQuery) (*Node, error) {
	if c.bearer() == "" {
		if err := c.authorize(ctx); err != nil {
			return nil, err
		}
	}

	url := fmt.Sprintf("%s/api/environments/%s/traces/Query", c.cfg.Endpoint, c.cfg.EnvironmentID)

	resp, err := c.post(ctx, url, query)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		resp.Body.Close()

		log.Printf("Traceability bearer token expired, re-authenticating")

		if err := c.authorize(ctx); err != nil {
			return nil, err
		}

		resp, err = c.post(ctx, url, query)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			resp.Body.Close()
			return nil, errUnauthorized
		}
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", errQueryStatus, resp.Status)
	}

	var trace TraceResponse
	if err := json.NewDecoder(resp.Body).Decode(&trace); err != nil {
		return nil, fmt.Errorf("failed to decode trace response: %w", err)
	}

	return trace.Root, nil
}

func (c *Client) post(ctx context.Context, url string, query *TraceQuery) (*http.Response, error) {
	body, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.bearer())

	return c.client.Do(req)
}
