package telemetry

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuerySpec_RenderMatchValue(t *testing.T) {
	value := 2.0

	spec := &QuerySpec{
		Station:    "packaging",
		Line:       "Munich",
		Metric:     "Status",
		Lookback:   time.Hour,
		MatchValue: &value,
	}

	query := spec.Render()

	assert.Contains(t, query, `| where Name contains "packaging"`)
	assert.Contains(t, query, `| where Name contains "Munich"`)
	assert.Contains(t, query, `| where Name == "Status"`)
	assert.Contains(t, query, "| where Timestamp > now(-3600s)")
	assert.Contains(t, query, "| where OPCUANodeValue == 2")
	assert.NotContains(t, query, "around(")
	assert.Contains(t, query, "| sort by Timestamp desc\n| take 1")
}

func TestQuerySpec_RenderPivot(t *testing.T) {
	pivot := time.Date(2026, 8, 30, 10, 15, 30, 0, time.UTC)

	spec := &QuerySpec{
		Station:   "assembly",
		Line:      "Munich",
		Metric:    "EnergyConsumption",
		Lookback:  time.Hour,
		Pivot:     &pivot,
		Tolerance: 6 * time.Second,
	}

	query := spec.Render()

	assert.Contains(t, query, "| where around(Timestamp, datetime(2026-08-30 10:15:30), 6s)")
	assert.NotContains(t, query, "OPCUANodeValue ==")
}

func TestQuerySpec_RenderSerialValuePreservesPrecision(t *testing.T) {
	// Serials are large integers carried as doubles; the literal must
	// not pick up exponent notation or trailing zeros.
	value := 4000478.0

	spec := &QuerySpec{
		Station:    "test",
		Line:       "Munich",
		Metric:     "ProductSerialNumber",
		Lookback:   time.Hour,
		MatchValue: &value,
	}

	assert.Contains(t, spec.Render(), "| where OPCUANodeValue == 4000478\n")
}

func TestFormatSerial(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		want    string
		wantErr bool
	}{
		{name: "small integer", value: 4711, want: "4711"},
		{name: "zero", value: 0, want: "0"},
		{name: "large integer", value: 9007199254740992, wantErr: true},
		{name: "largest exact", value: 9007199254740991, want: "9007199254740991"},
		{name: "fractional", value: 47.11, wantErr: true},
		{name: "negative integer", value: -12, want: "-12"},
		{name: "NaN", value: math.NaN(), wantErr: true},
		{name: "Inf", value: math.Inf(1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatSerial(tt.value)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidSerial)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
