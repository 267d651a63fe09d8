package templates

import (
	"github.com/dukex/fluxo/pkg/models"
	"github.com/dukex/fluxo/pkg/registry"
)

// TypeCount is the number of nodes of one type in a graph.
type TypeCount struct {
	Type  models.NodeType `json:"type"`
	Label string          `json:"label"`
	Count int             `json:"count"`
}

// CountByType aggregates nodes per type, ordered by the first occurrence of
// each type.
func CountByType(nodes []models.WorkflowNode) []TypeCount {
	reg := registry.Default()
	index := map[models.NodeType]int{}

	var counts []TypeCount

	for _, node := range nodes {
		i, seen := index[node.Type]
		if !seen {
			i = len(counts)
			index[node.Type] = i
			counts = append(counts, TypeCount{Type: node.Type, Label: reg.NodeLabel(node.Type)})
		}

		counts[i].Count++
	}

	return counts
}
