// Package pcf pkg/pcf/genealogy.go implements the genealogy emissions
// extractor: a pre-order walk of the traceability graph for the first
// per-unit embodied emissions figure.
package pcf

import (
	"log"
	"strings"

	"github.com/carverauto/carbonradar/pkg/traceability"
)

// The genealogy graph comes from an external service and may be deep or
// even cyclic if the upstream data is inconsistent; the walk is bounded
// by a visited set and a depth cap.
const maxGenealogyDepth = 64

// detailKeyPCF is the detail-map key carrying an embodied emissions figure.
const detailKeyPCF = "pcf"

// FindEmissions returns the first per-unit embodied emissions figure in
// the graph, normalized by the transaction quantity. The walk is
// pre-order with early exit: the current node's transactions are scanned
// before any successor, and the first usable figure wins — values are
// never summed. A graph with no figure yields zero, which is a valid
// outcome, not an error.
func FindEmissions(root *traceability.Node) float64 {
	visited := make(map[*traceability.Node]bool)

	return findEmissions(root, visited, 0)
}

func findEmissions(node *traceability.Node, visited map[*traceability.Node]bool, depth int) float64 {
	if node == nil || visited[node] || depth > maxGenealogyDepth {
		return 0
	}

	visited[node] = true

	for _, event := range node.Events {
		for _, tx := range event.Transactions {
			first, ok := tx.Details.First()
			if !ok || !strings.EqualFold(first.Key, detailKeyPCF) {
				continue
			}

			// quantity is a divisor; a non-positive quantity would
			// poison the figure, so the transaction is skipped.
			if tx.Quantity <= 0 {
				log.Printf("Skipping emissions transaction with quantity %v", tx.Quantity)
				continue
			}

			value, err := first.Float()
			if err != nil {
				log.Printf("Skipping unreadable emissions detail: %v", err)
				continue
			}

			return value / tx.Quantity
		}
	}

	for _, next := range node.Next {
		if value := findEmissions(next, visited, depth+1); value != 0 {
			return value
		}
	}

	return 0
}
