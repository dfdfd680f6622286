package pcf

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/carbonradar/pkg/config"
	"github.com/carverauto/carbonradar/pkg/telemetry"
)

func testLine() *ProductionLine {
	return &ProductionLine{
		Name:           "Munich",
		Latitude:       48.1375,
		Longitude:      11.575,
		Stations:       []string{"assembly", "test", "packaging"},
		IdealCycleTime: config.Duration(6 * time.Second),
	}
}

func TestEngine_NoNewUnit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := NewMockTelemetrySource(ctrl)
	source.EXPECT().
		LatestMatching(gomock.Any(), "packaging", "Munich", telemetry.MetricStatus, telemetry.StatusDone).
		Return(telemetry.Sample{}, false, nil)

	engine := NewEngine(source)

	trace, err := engine.Correlate(context.Background(), testLine())
	require.NoError(t, err)
	assert.Nil(t, trace)
}

func TestEngine_FullTrace(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	line := testLine()
	tolerance := 6 * time.Second
	completedAt := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	serial := 4711.0

	source := NewMockTelemetrySource(ctrl)

	source.EXPECT().
		LatestMatching(gomock.Any(), "packaging", "Munich", telemetry.MetricStatus, telemetry.StatusDone).
		Return(telemetry.Sample{Timestamp: completedAt, Value: 2}, true, nil)

	source.EXPECT().
		LatestAround(gomock.Any(), "packaging", "Munich", telemetry.MetricProductSerialNumber, completedAt, tolerance).
		Return(telemetry.Sample{Timestamp: completedAt, Value: serial}, true, nil)

	energies := map[string]float64{"assembly": 100, "test": 150, "packaging": 50}

	for station, energy := range energies {
		seenAt := completedAt.Add(-time.Minute)

		source.EXPECT().
			LatestMatching(gomock.Any(), station, "Munich", telemetry.MetricProductSerialNumber, serial).
			Return(telemetry.Sample{Timestamp: seenAt, Value: serial}, true, nil)

		source.EXPECT().
			LatestAround(gomock.Any(), station, "Munich", telemetry.MetricEnergyConsumption, seenAt, tolerance).
			Return(telemetry.Sample{Timestamp: seenAt, Value: energy}, true, nil)
	}

	engine := NewEngine(source)

	trace, err := engine.Correlate(context.Background(), line)
	require.NoError(t, err)
	require.NotNil(t, trace)

	assert.Equal(t, "4711", trace.Serial)
	assert.Equal(t, serial, trace.SerialValue)
	assert.Len(t, trace.Stations, 3)

	for station, energy := range energies {
		assert.Equal(t, energy, trace.Stations[station].EnergyWs)
	}
}

func TestEngine_MissingDataAbandons(t *testing.T) {
	completedAt := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		setupMock func(source *MockTelemetrySource)
	}{
		{
			name: "no serial number at terminal station",
			setupMock: func(source *MockTelemetrySource) {
				source.EXPECT().
					LatestMatching(gomock.Any(), "packaging", "Munich", telemetry.MetricStatus, telemetry.StatusDone).
					Return(telemetry.Sample{Timestamp: completedAt, Value: 2}, true, nil)
				source.EXPECT().
					LatestAround(gomock.Any(), "packaging", "Munich", telemetry.MetricProductSerialNumber, gomock.Any(), gomock.Any()).
					Return(telemetry.Sample{}, false, nil)
			},
		},
		{
			name: "fractional serial number",
			setupMock: func(source *MockTelemetrySource) {
				source.EXPECT().
					LatestMatching(gomock.Any(), "packaging", "Munich", telemetry.MetricStatus, telemetry.StatusDone).
					Return(telemetry.Sample{Timestamp: completedAt, Value: 2}, true, nil)
				source.EXPECT().
					LatestAround(gomock.Any(), "packaging", "Munich", telemetry.MetricProductSerialNumber, gomock.Any(), gomock.Any()).
					Return(telemetry.Sample{Timestamp: completedAt, Value: 47.11}, true, nil)
			},
		},
		{
			name: "station never saw the unit",
			setupMock: func(source *MockTelemetrySource) {
				source.EXPECT().
					LatestMatching(gomock.Any(), "packaging", "Munich", telemetry.MetricStatus, telemetry.StatusDone).
					Return(telemetry.Sample{Timestamp: completedAt, Value: 2}, true, nil)
				source.EXPECT().
					LatestAround(gomock.Any(), "packaging", "Munich", telemetry.MetricProductSerialNumber, gomock.Any(), gomock.Any()).
					Return(telemetry.Sample{Timestamp: completedAt, Value: 4711}, true, nil)
				source.EXPECT().
					LatestMatching(gomock.Any(), "assembly", "Munich", telemetry.MetricProductSerialNumber, 4711.0).
					Return(telemetry.Sample{}, false, nil)
			},
		},
		{
			name: "no energy reading inside the window",
			setupMock: func(source *MockTelemetrySource) {
				source.EXPECT().
					LatestMatching(gomock.Any(), "packaging", "Munich", telemetry.MetricStatus, telemetry.StatusDone).
					Return(telemetry.Sample{Timestamp: completedAt, Value: 2}, true, nil)
				source.EXPECT().
					LatestAround(gomock.Any(), "packaging", "Munich", telemetry.MetricProductSerialNumber, gomock.Any(), gomock.Any()).
					Return(telemetry.Sample{Timestamp: completedAt, Value: 4711}, true, nil)
				source.EXPECT().
					LatestMatching(gomock.Any(), "assembly", "Munich", telemetry.MetricProductSerialNumber, 4711.0).
					Return(telemetry.Sample{Timestamp: completedAt, Value: 4711}, true, nil)
				source.EXPECT().
					LatestAround(gomock.Any(), "assembly", "Munich", telemetry.MetricEnergyConsumption, gomock.Any(), gomock.Any()).
					Return(telemetry.Sample{}, false, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			source := NewMockTelemetrySource(ctrl)
			tt.setupMock(source)

			engine := NewEngine(source)

			trace, err := engine.Correlate(context.Background(), testLine())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrIncompleteTrace)
			assert.Nil(t, trace)
		})
	}
}

func TestEngine_TransportErrorIsNotAbandonment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	storeDown := errors.New("store unreachable")

	source := NewMockTelemetrySource(ctrl)
	source.EXPECT().
		LatestMatching(gomock.Any(), "packaging", "Munich", telemetry.MetricStatus, telemetry.StatusDone).
		Return(telemetry.Sample{}, false, storeDown)

	engine := NewEngine(source)

	trace, err := engine.Correlate(context.Background(), testLine())
	require.Error(t, err)
	assert.ErrorIs(t, err, storeDown)
	assert.NotErrorIs(t, err, ErrIncompleteTrace)
	assert.Nil(t, trace)
}
