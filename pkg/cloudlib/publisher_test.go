package cloudlib

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/carbonradar/pkg/pcf"
)

func testFootprint() *pcf.Footprint {
	return &pcf.Footprint{
		ProductionLine:  "Munich",
		SerialNumber:    "4711",
		TotalEnergyWh:   0.5,
		Scope2:          250,
		Scope3:          2,
		Total:           252,
		CarbonIntensity: 500,
		Methodology:     pcf.Methodology,
		ComputedAt:      time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
	}
}

func TestDocumentName(t *testing.T) {
	assert.Equal(t, "CarbonFootprintAAS_Munich_4711", DocumentName(testFootprint()))
}

func TestPublisher_Publish(t *testing.T) {
	var (
		captured  namespace
		values    map[string]string
		overwrite string
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/infomodel/upload", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "uploader", user)
		assert.Equal(t, "hunter2", pass)

		overwrite = r.URL.Query().Get("overwrite")
		require.NoError(t, json.Unmarshal([]byte(r.URL.Query().Get("values")), &values))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	publisher, err := NewPublisher(&Config{
		BaseURL:  server.URL,
		Username: "uploader",
		Password: "hunter2",
	})
	require.NoError(t, err)

	require.NoError(t, publisher.Publish(context.Background(), testFootprint()))

	assert.Equal(t, "true", overwrite)

	assert.Equal(t, "GHG Protocol", values["i=9"])
	assert.Equal(t, "252", values["i=10"])
	assert.Equal(t, "4711", values["i=11"])
	assert.Equal(t, "gCO2", values["i=12"])
	assert.Equal(t, "Scope 2 & 3 Emissions", values["i=14"])
	assert.Equal(t, "Munich", values["i=19"])
	assert.Equal(t, "2026-08-30T10:00:00Z", values["i=21"])

	assert.Equal(t, "CarbonFootprintAAS_Munich_4711", captured.Title)
	assert.Contains(t, captured.Nodeset.NodesetXML, "CarbonFootprintAAS_Munich_4711")
	assert.NotContains(t, strings.ReplaceAll(captured.Nodeset.NodesetXML, "CarbonFootprintAAS_Munich_4711", ""),
		"CarbonFootprintAAS")
}

func TestPublisher_RepeatPublishSameKey(t *testing.T) {
	names := make(map[string]int)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body namespace
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		names[body.Title]++

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	publisher, err := NewPublisher(&Config{BaseURL: server.URL})
	require.NoError(t, err)

	require.NoError(t, publisher.Publish(context.Background(), testFootprint()))
	require.NoError(t, publisher.Publish(context.Background(), testFootprint()))

	// the second upload targets the same document, not a new one
	assert.Equal(t, map[string]int{"CarbonFootprintAAS_Munich_4711": 2}, names)
}

func TestPublisher_UploadFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "storage full", http.StatusInsufficientStorage)
	}))
	defer server.Close()

	publisher, err := NewPublisher(&Config{BaseURL: server.URL})
	require.NoError(t, err)

	err = publisher.Publish(context.Background(), testFootprint())
	require.ErrorIs(t, err, errUploadFailed)
	assert.Contains(t, err.Error(), "storage full")
}

func TestPublisher_TemplateFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nodeset.xml")
	require.NoError(t, os.WriteFile(path, []byte("<UANodeSet>CarbonFootprintAAS</UANodeSet>"), 0o600))

	var body namespace

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	publisher, err := NewPublisher(&Config{
		BaseURL:             server.URL,
		NodesetTemplatePath: path,
	})
	require.NoError(t, err)

	require.NoError(t, publisher.Publish(context.Background(), testFootprint()))
	assert.Equal(t, "<UANodeSet>CarbonFootprintAAS_Munich_4711</UANodeSet>", body.Nodeset.NodesetXML)
}

func TestPublisherConfig_Validate(t *testing.T) {
	assert.ErrorIs(t, (&Config{}).Validate(), errBaseURLRequired)

	cfg := &Config{BaseURL: "https://library.example"}
	require.NoError(t, cfg.Validate())
	assert.NotZero(t, cfg.Timeout)
}
