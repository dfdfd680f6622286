package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/carbonradar/pkg/db"
	"github.com/carverauto/carbonradar/pkg/metrics"
	"github.com/carverauto/carbonradar/pkg/pcf"
)

func storedFootprint() *pcf.Footprint {
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

func doRequest(t *testing.T, server *Server, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)

	return w
}

func TestServer_GetFootprints(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := NewMockFootprintReader(ctrl)
	store.EXPECT().
		ListFootprints(gomock.Any(), "").
		Return([]*pcf.Footprint{storedFootprint()}, nil)

	w := doRequest(t, NewServer(store, nil), "/api/footprints")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var got []*pcf.Footprint
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))

	require.Len(t, got, 1)
	assert.Equal(t, "4711", got[0].SerialNumber)
	assert.Equal(t, 252.0, got[0].Total)
}

func TestServer_GetLineFootprints(t *testing.T) {
	tests := []struct {
		name       string
		footprints []*pcf.Footprint
		err        error
		wantStatus int
	}{
		{
			name:       "known line",
			footprints: []*pcf.Footprint{storedFootprint()},
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown line",
			footprints: []*pcf.Footprint{},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "store failure",
			err:        errors.New("disk error"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			store := NewMockFootprintReader(ctrl)
			store.EXPECT().
				ListFootprints(gomock.Any(), "Munich").
				Return(tt.footprints, tt.err)

			w := doRequest(t, NewServer(store, nil), "/api/footprints/Munich")
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestServer_GetFootprint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := NewMockFootprintReader(ctrl)
	store.EXPECT().
		GetFootprint(gomock.Any(), "Munich", "4711").
		Return(storedFootprint(), nil)

	w := doRequest(t, NewServer(store, nil), "/api/footprints/Munich/4711")

	require.Equal(t, http.StatusOK, w.Code)

	var got pcf.Footprint
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Munich", got.ProductionLine)
}

func TestServer_GetFootprintNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := NewMockFootprintReader(ctrl)
	store.EXPECT().
		GetFootprint(gomock.Any(), "Munich", "missing").
		Return(nil, db.ErrNotFound)

	w := doRequest(t, NewServer(store, nil), "/api/footprints/Munich/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_GetRuns(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := NewMockFootprintReader(ctrl)
	store.EXPECT().
		ListRuns(gomock.Any(), 5).
		Return([]*pcf.RunRecord{{Line: "Munich", Outcome: pcf.OutcomeCompleted}}, nil)

	w := doRequest(t, NewServer(store, nil), "/api/runs?limit=5")

	require.Equal(t, http.StatusOK, w.Code)

	var got []*pcf.RunRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, pcf.OutcomeCompleted, got[0].Outcome)
}

func TestServer_GetRunsDefaultLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := NewMockFootprintReader(ctrl)
	store.EXPECT().
		ListRuns(gomock.Any(), defaultRunsLimit).
		Return([]*pcf.RunRecord{}, nil)

	w := doRequest(t, NewServer(store, nil), "/api/runs")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestServer_GetRunsInvalidLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := NewMockFootprintReader(ctrl)

	for _, limit := range []string{"abc", "0", "-3"} {
		w := doRequest(t, NewServer(store, nil), "/api/runs?limit="+limit)
		assert.Equal(t, http.StatusBadRequest, w.Code, "limit=%s", limit)
	}
}

func TestServer_Healthz(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	w := doRequest(t, NewServer(NewMockFootprintReader(ctrl), nil), "/healthz")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestServer_MetricsEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reg := metrics.NewRegistry()
	metrics.Inc(reg.RunsCompleted)

	w := doRequest(t, NewServer(NewMockFootprintReader(ctrl), reg), "/metrics")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pcf_runs_completed_total")
}

func TestServer_NoMetricsWithoutRegistry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	w := doRequest(t, NewServer(NewMockFootprintReader(ctrl), nil), "/metrics")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
