// Package templates converts stored workflow definitions into the editor's
// node/edge shape and ships the built-in template catalog.
package templates

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"strconv"

	"github.com/dukex/fluxo/pkg/models"
	"github.com/dukex/fluxo/pkg/registry"
)

var ErrMissingNodes = errors.New("workflow definition has no node list")

const (
	gridColumns = 4
	gridOriginX = 100
	gridOriginY = 100
	gridStepX   = 250
	gridStepY   = 150
)

// Converter normalizes stored definitions. Older templates use different key
// names for the same things; every known spelling is accepted.
type Converter struct {
	registry *registry.Registry
}

func NewConverter(r *registry.Registry) *Converter {
	if r == nil {
		r = registry.Default()
	}

	return &Converter{registry: r}
}

// ToEditable converts a stored definition with the default registry.
func ToEditable(definition []byte) (models.Definition, error) {
	return NewConverter(nil).ToEditable(definition)
}

// ToEditable maps a stored definition into the exact node/edge shape the
// editor consumes. It fails only on malformed JSON or a missing node list;
// missing ids, positions and labels are derived deterministically, and
// unknown data keys are kept.
func (c *Converter) ToEditable(definition []byte) (models.Definition, error) {
	var raw map[string]any
	if err := json.Unmarshal(definition, &raw); err != nil {
		return models.Definition{}, fmt.Errorf("failed to decode workflow definition: %w", err)
	}

	rawNodes, ok := raw["nodes"].([]any)
	if !ok {
		return models.Definition{}, ErrMissingNodes
	}

	def := models.Definition{
		Nodes: make([]models.WorkflowNode, 0, len(rawNodes)),
		Edges: []models.WorkflowEdge{},
	}

	// Derived ids must not take an id that a later node declares itself.
	explicit := map[string]struct{}{}

	for _, item := range rawNodes {
		if obj, ok := item.(map[string]any); ok {
			if id := nodeID(obj); id != "" {
				explicit[id] = struct{}{}
			}
		}
	}

	ids := map[string]struct{}{}

	for i, item := range rawNodes {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}

		node, err := c.node(i, obj, ids, explicit)
		if err != nil {
			return models.Definition{}, err
		}

		ids[node.ID] = struct{}{}
		def.Nodes = append(def.Nodes, node)
	}

	rawEdges, ok := raw["edges"].([]any)
	if !ok {
		rawEdges, _ = raw["connections"].([]any)
	}

	edgeIDs := map[string]struct{}{}

	for _, item := range rawEdges {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}

		edge, ok := edgeFrom(obj, ids, edgeIDs)
		if !ok {
			continue
		}

		edgeIDs[edge.ID] = struct{}{}
		def.Edges = append(def.Edges, edge)
	}

	return def, nil
}

func nodeID(obj map[string]any) string {
	return firstString(obj, "id", "node_id", "nodeId")
}

func (c *Converter) node(index int, obj map[string]any, taken, explicit map[string]struct{}) (models.WorkflowNode, error) {
	values := map[string]any{}
	for _, key := range []string{"config", "properties", "data"} {
		if bag, ok := obj[key].(map[string]any); ok {
			maps.Copy(values, bag)
		}
	}

	nodeType := models.NodeType(firstString(obj, "type", "nodeType", "node_type"))
	if !nodeType.Known() {
		// Canvas-level wrappers store the real type inside the data bag.
		if inner := models.NodeType(firstString(values, "type", "nodeType", "node_type")); inner.Known() {
			nodeType = inner
		}
	}

	id := nodeID(obj)
	derived := id == ""

	if derived {
		id = string(nodeType) + "-" + strconv.Itoa(index+1)
	}

	base := id
	for n := 2; ; n++ {
		_, dup := taken[id]
		if !dup && derived {
			_, dup = explicit[id]
		}

		if !dup {
			break
		}

		id = base + "-" + strconv.Itoa(n)
	}

	if !models.HasText(stringValue(values["label"])) {
		values["label"] = c.label(nodeType, obj, values)
	}

	data, err := models.DataFromMap(nodeType, values)
	if err != nil {
		return models.WorkflowNode{}, fmt.Errorf("failed to decode node %s: %w", id, err)
	}

	if trigger, ok := data.(*models.TriggerData); ok && trigger.TriggerType == "" {
		if defaults, ok := c.registry.DefaultNodeData(nodeType).(*models.TriggerData); ok {
			trigger.TriggerType = defaults.TriggerType
		}
	}

	return models.WorkflowNode{
		ID:       id,
		Type:     nodeType,
		Position: position(index, obj),
		Data:     data,
	}, nil
}

var typeLabelKeys = map[models.NodeType]string{
	models.NodeTypeTask:         "taskTitle",
	models.NodeTypeNotification: "notificationTitle",
	models.NodeTypeApproval:     "approvalTitle",
	models.NodeTypeForm:         "formTitle",
}

func (c *Converter) label(nodeType models.NodeType, obj, values map[string]any) string {
	if key, ok := typeLabelKeys[nodeType]; ok {
		if s := stringValue(values[key]); models.HasText(s) {
			return s
		}
	}

	for _, key := range []string{"name", "title", "label"} {
		if s := stringValue(obj[key]); models.HasText(s) {
			return s
		}
	}

	return c.registry.NodeLabel(nodeType)
}

func position(index int, obj map[string]any) models.Position {
	if pos, ok := obj["position"].(map[string]any); ok {
		x, okX := number(pos["x"])
		y, okY := number(pos["y"])

		if okX && okY {
			return models.Position{X: x, Y: y}
		}
	}

	for _, keys := range [][2]string{{"position_x", "position_y"}, {"x", "y"}} {
		x, okX := number(obj[keys[0]])
		y, okY := number(obj[keys[1]])

		if okX && okY {
			return models.Position{X: x, Y: y}
		}
	}

	return models.Position{
		X: float64(gridOriginX + (index%gridColumns)*gridStepX),
		Y: float64(gridOriginY + (index/gridColumns)*gridStepY),
	}
}

// edgeFrom decodes one edge. Edges whose endpoints are not in the node list
// are dropped.
func edgeFrom(obj map[string]any, nodes, taken map[string]struct{}) (models.WorkflowEdge, bool) {
	source := firstString(obj, "source", "from", "source_id", "sourceId")
	target := firstString(obj, "target", "to", "target_id", "targetId")

	if _, ok := nodes[source]; !ok {
		return models.WorkflowEdge{}, false
	}

	if _, ok := nodes[target]; !ok {
		return models.WorkflowEdge{}, false
	}

	edge := models.WorkflowEdge{
		ID:           firstString(obj, "id"),
		Source:       source,
		Target:       target,
		SourceHandle: firstString(obj, "sourceHandle", "source_handle", "handle"),
		TargetHandle: firstString(obj, "targetHandle", "target_handle"),
		Label:        firstString(obj, "label"),
	}

	if edge.ID == "" {
		edge.ID = "edge-" + source + "-" + target
		if edge.SourceHandle != "" {
			edge.ID = "edge-" + source + "-" + edge.SourceHandle + "-" + target
		}
	}

	base := edge.ID
	for n := 2; ; n++ {
		if _, dup := taken[edge.ID]; !dup {
			break
		}

		edge.ID = base + "-" + strconv.Itoa(n)
	}

	return edge, true
}

// FromEditable returns the persisted shape of an edited graph.
func FromEditable(nodes []models.WorkflowNode, edges []models.WorkflowEdge) models.Definition {
	def := models.Definition{
		Nodes: make([]models.WorkflowNode, len(nodes)),
		Edges: append([]models.WorkflowEdge{}, edges...),
	}

	for i, node := range nodes {
		def.Nodes[i] = node.Clone()
		def.Nodes[i].Selected = false
	}

	return def
}

// Marshal encodes a definition for storage.
func Marshal(def models.Definition) ([]byte, error) {
	if def.Nodes == nil {
		def.Nodes = []models.WorkflowNode{}
	}

	if def.Edges == nil {
		def.Edges = []models.WorkflowEdge{}
	}

	return json.Marshal(def)
}

func firstString(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		if s := stringValue(obj[key]); s != "" {
			return s
		}
	}

	return ""
}

func stringValue(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	default:
		return ""
	}
}

func number(v any) (float64, bool) {
	switch value := v.(type) {
	case float64:
		return value, true
	case string:
		f, err := strconv.ParseFloat(value, 64)

		return f, err == nil
	default:
		return 0, false
	}
}
