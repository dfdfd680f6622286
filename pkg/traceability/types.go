// Package traceability pkg/traceability/types.go
package traceability

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Directions accepted by the genealogy query.
const (
	DirectionBackward = "Backward"
	DirectionForward  = "Forward"
)

// TraceQuery asks the service for the genealogy of one item batch.
type TraceQuery struct {
	TracingDirection    string `json:"tracingDirection"`
	Company             string `json:"company"`
	ItemNumber          string `json:"itemNumber"`
	SerialNumber        string `json:"serialNumber"`
	ShouldIncludeEvents bool   `json:"shouldIncludeEvents"`
}

// TraceResponse is the service's reply: the root of the genealogy graph.
type TraceResponse struct {
	Root *Node `json:"root"`
}

// Node is one node of the genealogy graph. Next links point upstream.
type Node struct {
	ItemNumber string  `json:"itemNumber,omitempty"`
	Events     []Event `json:"events"`
	Next       []*Node `json:"next"`
}

// Event groups the product transactions recorded for a node.
type Event struct {
	Transactions []Transaction `json:"productTransactions"`
}

// Transaction carries a quantity and an open-ended detail object.
type Transaction struct {
	Quantity float64 `json:"quantity"`
	Details  Details `json:"details"`
}

// DetailEntry is one key/value pair of a transaction's detail object.
type DetailEntry struct {
	Key   string
	Value json.RawMessage
}

// Details preserves the insertion order of the detail object's entries.
// The emissions figure is identified by the first entry, so a plain map
// would lose the information that matters.
type Details []DetailEntry

// First returns the first-inserted detail entry.
func (d Details) First() (DetailEntry, bool) {
	if len(d) == 0 {
		return DetailEntry{}, false
	}

	return d[0], true
}

// Float parses the entry value as a number, accepting both bare numbers
// and numeric strings.
func (e DetailEntry) Float() (float64, error) {
	s := strings.TrimSpace(string(e.Value))
	s = strings.Trim(s, `"`)

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("detail %q is not numeric: %w", e.Key, err)
	}

	return v, nil
}

// UnmarshalJSON decodes the detail object with its key order retained,
// walking the token stream instead of decoding into a map.
func (d *Details) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if bytes.Equal(trimmed, []byte("null")) {
		*d = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))

	tok, err := dec.Token()
	if err != nil {
		return err
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("details: expected object, got %v", tok)
	}

	entries := Details{}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}

		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("details: expected string key, got %v", keyTok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return err
		}

		entries = append(entries, DetailEntry{Key: key, Value: value})
	}

	*d = entries

	return nil
}

// MarshalJSON re-serializes the entries in their original order.
func (d Details) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, e := range d {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(e.Value)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}
