package telemetry

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// kqlTimeFormat matches the datetime() literal format accepted by the store.
const kqlTimeFormat = "2006-01-02 15:04:05"

// QuerySpec describes one correlation query against the telemetry store.
// Station and line names match by substring against the metadata Name
// column; the metric name matches exactly. Exactly one of MatchValue or
// Pivot narrows the result set further.
type QuerySpec struct {
	Station  string
	Line     string
	Metric   string
	Lookback time.Duration

	// MatchValue, when set, restricts rows to those whose value equals it.
	MatchValue *float64

	// Pivot, when set, restricts rows to Pivot +/- Tolerance.
	Pivot     *time.Time
	Tolerance time.Duration
}

// Render produces the store query. The shape mirrors the metadata/telemetry
// join the station publisher writes into: last-known-value metadata rows
// joined to raw telemetry on the dataset writer id, values coerced to
// double, newest row first.
func (q *QuerySpec) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "opcua_metadata_lkv\n")
	fmt.Fprintf(&b, "| where Name contains %q\n", q.Station)
	fmt.Fprintf(&b, "| where Name contains %q\n", q.Line)
	fmt.Fprintf(&b, "| join kind = inner(opcua_telemetry\n")
	fmt.Fprintf(&b, "    | where Name == %q\n", q.Metric)
	fmt.Fprintf(&b, "    | where Timestamp > now(-%ds)\n", int(q.Lookback.Seconds()))
	fmt.Fprintf(&b, ") on DataSetWriterID\n")
	fmt.Fprintf(&b, "| distinct Timestamp, OPCUANodeValue = todouble(Value)\n")

	if q.MatchValue != nil {
		fmt.Fprintf(&b, "| where OPCUANodeValue == %s\n", strconv.FormatFloat(*q.MatchValue, 'f', -1, 64))
	}

	if q.Pivot != nil {
		fmt.Fprintf(&b, "| where around(Timestamp, datetime(%s), %ds)\n",
			q.Pivot.UTC().Format(kqlTimeFormat), int(q.Tolerance.Seconds()))
	}

	fmt.Fprintf(&b, "| sort by Timestamp desc\n")
	fmt.Fprintf(&b, "| take 1")

	return b.String()
}
