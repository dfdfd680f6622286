// Package cloudlib pkg/cloudlib/publisher.go uploads footprint records
// to the information-model repository.
package cloudlib

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/carverauto/carbonradar/pkg/config"
	"github.com/carverauto/carbonradar/pkg/pcf"
)

const (
	defaultTimeout = 30 * time.Second

	// templateModelName is the placeholder model name inside the bundled
	// nodeset template, replaced per record with the keyed document name.
	templateModelName = "CarbonFootprintAAS"
)

// Config holds the repository connection settings.
type Config struct {
	BaseURL  string `json:"base_url"`
	Username string `json:"username,omitempty"` // falls back to CLOUD_LIBRARY_USERNAME
	Password string `json:"password,omitempty"` // falls back to CLOUD_LIBRARY_PASSWORD

	// NodesetTemplatePath points at the nodeset XML template; empty uses
	// the built-in minimal template.
	NodesetTemplatePath string `json:"nodeset_template_path,omitempty"`

	Timeout config.Duration `json:"timeout,omitempty"`
}

// Validate implements config.Validator.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errBaseURLRequired
	}

	c.Username = config.FromEnv(c.Username, "CLOUD_LIBRARY_USERNAME")
	c.Password = config.FromEnv(c.Password, "CLOUD_LIBRARY_PASSWORD")

	if c.Timeout == 0 {
		c.Timeout = config.Duration(defaultTimeout)
	}

	return nil
}

// namespace is the repository's upload document.
type namespace struct {
	Title         string  `json:"title"`
	License       string  `json:"license"`
	CopyrightText string  `json:"copyrightText"`
	Description   string  `json:"description"`
	Nodeset       nodeset `json:"nodeset"`
}

type nodeset struct {
	NodesetXML string `json:"nodesetXml"`
}

// Publisher uploads footprint records. Uploads are idempotent: the
// document name is keyed by production line and serial number, and the
// overwrite flag replaces any earlier publication for the same key.
type Publisher struct {
	cfg      *Config
	client   *http.Client
	template string
}

func NewPublisher(cfg *Config) (*Publisher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid repository config: %w", err)
	}

	template := defaultNodesetTemplate

	if cfg.NodesetTemplatePath != "" {
		data, err := os.ReadFile(cfg.NodesetTemplatePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read nodeset template: %w", err)
		}

		template = string(data)
	}

	return &Publisher{
		cfg:      cfg,
		client:   &http.Client{Timeout: time.Duration(cfg.Timeout)},
		template: template,
	}, nil
}

// DocumentName returns the repository key for a footprint record.
func DocumentName(footprint *pcf.Footprint) string {
	return fmt.Sprintf("%s_%s_%s", templateModelName, footprint.ProductionLine, footprint.SerialNumber)
}

// Publish uploads one footprint record with overwrite enabled.
func (p *Publisher) Publish(ctx context.Context, footprint *pcf.Footprint) error {
	name := DocumentName(footprint)

	// Annotation keys follow the footprint information model's node ids.
	values := map[string]string{
		"i=9":  footprint.Methodology,                                  // PCFCalculationMethod
		"i=10": fmt.Sprintf("%v", footprint.Total),                     // PCFCO2eq
		"i=11": footprint.SerialNumber,                                 // PCFReferenceValueForCalculation
		"i=12": "gCO2",                                                 // PCFQuantityOfMeasureForCalculation
		"i=14": "Scope 2 & 3 Emissions",                                // ExplanatoryStatement
		"i=19": footprint.ProductionLine,                               // PCFGoodsAddressHandover.CityTown
		"i=21": footprint.ComputedAt.UTC().Format(time.RFC3339),        // PublicationDate
	}

	valuesJSON, err := json.Marshal(values)
	if err != nil {
		return err
	}

	body, err := json.Marshal(&namespace{
		Title:         name,
		License:       "MIT",
		CopyrightText: "OPC Foundation",
		Description:   "Product carbon footprint for the production line simulation",
		Nodeset: nodeset{
			NodesetXML: strings.ReplaceAll(p.template, templateModelName, name),
		},
	})
	if err != nil {
		return err
	}

	query := url.Values{}
	query.Set("overwrite", "true")
	query.Set("values", string(valuesJSON))

	uploadURL := p.cfg.BaseURL + "/infomodel/upload?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(body))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(p.cfg.Username, p.cfg.Password)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", errUploadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s: %s", errUploadFailed, resp.Status, string(detail))
	}

	return nil
}
