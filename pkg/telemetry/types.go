// Package telemetry pkg/telemetry/types.go
package telemetry

import (
	"fmt"
	"math"
	"time"
)

// Metric names published by the station OPC UA telemetry pipeline.
const (
	MetricStatus              = "Status"
	MetricProductSerialNumber = "ProductSerialNumber"
	MetricEnergyConsumption   = "EnergyConsumption"
)

// StatusDone is the station state for a finished unit with passed QA.
const StatusDone = 2.0

// Sample is a single telemetry observation, converted from the store's
// loosely-typed result row at the client boundary.
type Sample struct {
	Timestamp time.Time
	Value     float64
}

// maxExactSerial is the largest float64 that still represents every
// integer below it exactly (2^53).
const maxExactSerial = 1 << 53

// FormatSerial converts a serial number from its float64 wire
// representation into a canonical decimal string. The telemetry store
// coerces every column to double, so serials arrive as floats; values
// with a fractional part or beyond exact integer range are rejected
// rather than silently truncated.
func FormatSerial(v float64) (string, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", fmt.Errorf("%w: %v", ErrInvalidSerial, v)
	}

	if v != math.Trunc(v) {
		return "", fmt.Errorf("%w: %v has a fractional part", ErrInvalidSerial, v)
	}

	if math.Abs(v) >= maxExactSerial {
		return "", fmt.Errorf("%w: %v exceeds exact integer range", ErrInvalidSerial, v)
	}

	return fmt.Sprintf("%d", int64(v)), nil
}

// Wire format of the store's REST v1 query response.

type queryResponse struct {
	Tables []resultTable `json:"Tables"`
}

type resultTable struct {
	TableName string          `json:"TableName"`
	Columns   []resultColumn  `json:"Columns"`
	Rows      [][]interface{} `json:"Rows"`
}

type resultColumn struct {
	ColumnName string `json:"ColumnName"`
	ColumnType string `json:"ColumnType"`
}
