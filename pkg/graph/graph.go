// Package graph holds the editable node/edge lists of one workflow.
package graph

import (
	"errors"
	"fmt"
	"maps"
	"strconv"
	"time"

	"github.com/dukex/fluxo/pkg/models"
	"github.com/dukex/fluxo/pkg/registry"
)

var (
	ErrUnknownNode     = errors.New("unknown node")
	ErrUnknownNodeType = errors.New("unknown node type")
)

// Graph is the in-memory representation of a workflow definition together
// with the editor's selection and inspector state. It is not safe for
// concurrent use.
type Graph struct {
	registry  *registry.Registry
	now       func() time.Time
	nodes     []models.WorkflowNode
	edges     []models.WorkflowEdge
	inspected string
}

type Option func(*Graph)

// WithClock overrides the clock used to derive node ids.
func WithClock(now func() time.Time) Option {
	return func(g *Graph) {
		g.now = now
	}
}

// WithRegistry overrides the node registry used for defaults and labels.
func WithRegistry(r *registry.Registry) Option {
	return func(g *Graph) {
		g.registry = r
	}
}

// New returns an empty graph.
func New(opts ...Option) *Graph {
	g := &Graph{
		registry: registry.Default(),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// NewDefault returns a graph holding a single default trigger node.
func NewDefault(opts ...Option) *Graph {
	g := New(opts...)
	g.Reset()

	return g
}

// FromDefinition returns a graph over a copy of def.
func FromDefinition(def models.Definition, opts ...Option) *Graph {
	g := New(opts...)
	g.Load(def)

	return g
}

// Load replaces the graph content with a copy of def and clears the inspector.
func (g *Graph) Load(def models.Definition) {
	g.nodes = cloneNodes(def.Nodes)
	g.edges = append([]models.WorkflowEdge(nil), def.Edges...)
	g.inspected = ""
}

// Reset replaces the graph content with a single default trigger node.
func (g *Graph) Reset() {
	g.nodes = nil
	g.edges = nil
	g.inspected = ""

	_, _ = g.AddNode(models.NodeTypeTrigger, models.Position{X: 250, Y: 100})
}

// Definition returns a copy of the graph suitable for persisting.
func (g *Graph) Definition() models.Definition {
	nodes := cloneNodes(g.nodes)
	for i := range nodes {
		nodes[i].Selected = false
	}

	edges := append([]models.WorkflowEdge{}, g.edges...)
	if nodes == nil {
		nodes = []models.WorkflowNode{}
	}

	return models.Definition{Nodes: nodes, Edges: edges}
}

func (g *Graph) Nodes() []models.WorkflowNode {
	return cloneNodes(g.nodes)
}

func (g *Graph) Edges() []models.WorkflowEdge {
	return append([]models.WorkflowEdge(nil), g.edges...)
}

// Node returns a copy of the node with id.
func (g *Graph) Node(id string) (models.WorkflowNode, bool) {
	i := g.indexOf(id)
	if i < 0 {
		return models.WorkflowNode{}, false
	}

	return g.nodes[i].Clone(), true
}

// AddNode appends a node of type t with the registry defaults and returns its id.
func (g *Graph) AddNode(t models.NodeType, position models.Position) (string, error) {
	if _, ok := g.registry.Node(t); !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownNodeType, t)
	}

	id := g.nextNodeID(t)

	g.nodes = append(g.nodes, models.WorkflowNode{
		ID:       id,
		Type:     t,
		Position: position,
		Data:     g.registry.DefaultNodeData(t),
	})

	return id, nil
}

func (g *Graph) nextNodeID(t models.NodeType) string {
	base := string(t) + "-" + strconv.FormatInt(g.now().UnixMilli(), 10)

	id := base
	for n := 2; g.indexOf(id) >= 0; n++ {
		id = base + "-" + strconv.Itoa(n)
	}

	return id
}

// UpdateNodeData shallow-merges patch into the data of node id. Unknown
// keys are kept. It is a no-op when the node does not exist.
func (g *Graph) UpdateNodeData(id string, patch map[string]any) error {
	i := g.indexOf(id)
	if i < 0 {
		return nil
	}

	node := &g.nodes[i]

	current, err := models.DataToMap(node.Data)
	if err != nil {
		return fmt.Errorf("failed to read data of node %s: %w", id, err)
	}

	maps.Copy(current, patch)

	data, err := models.DataFromMap(node.Type, current)
	if err != nil {
		return fmt.Errorf("failed to update data of node %s: %w", id, err)
	}

	node.Data = data

	return nil
}

// MoveNode sets the canvas position of node id. It is a no-op when the node
// does not exist.
func (g *Graph) MoveNode(id string, position models.Position) {
	if i := g.indexOf(id); i >= 0 {
		g.nodes[i].Position = position
	}
}

// Select marks exactly the given nodes as selected.
func (g *Graph) Select(ids ...string) {
	selected := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		selected[id] = struct{}{}
	}

	for i := range g.nodes {
		_, ok := selected[g.nodes[i].ID]
		g.nodes[i].Selected = ok
	}
}

// Selected returns the ids of the selected nodes in graph order.
func (g *Graph) Selected() []string {
	var ids []string

	for _, node := range g.nodes {
		if node.Selected {
			ids = append(ids, node.ID)
		}
	}

	return ids
}

// Inspect points the property inspector at node id. An unknown id clears it.
func (g *Graph) Inspect(id string) {
	if g.indexOf(id) < 0 {
		g.inspected = ""

		return
	}

	g.inspected = id
}

// Inspected returns the node currently shown in the property inspector.
func (g *Graph) Inspected() (models.WorkflowNode, bool) {
	if g.inspected == "" {
		return models.WorkflowNode{}, false
	}

	return g.Node(g.inspected)
}

// RemoveSelected deletes every selected node and every edge touching one,
// and returns the removed node ids.
func (g *Graph) RemoveSelected() []string {
	var ids []string

	removed := map[string]struct{}{}
	kept := make([]models.WorkflowNode, 0, len(g.nodes))

	for _, node := range g.nodes {
		if node.Selected {
			removed[node.ID] = struct{}{}
			ids = append(ids, node.ID)

			continue
		}

		kept = append(kept, node)
	}

	g.nodes = kept
	g.dropEdges(removed)

	return ids
}

// RemoveNode deletes node id and every edge touching it. It reports whether
// the node existed.
func (g *Graph) RemoveNode(id string) bool {
	i := g.indexOf(id)
	if i < 0 {
		return false
	}

	g.nodes = append(g.nodes[:i], g.nodes[i+1:]...)
	g.dropEdges(map[string]struct{}{id: {}})

	return true
}

func (g *Graph) dropEdges(removed map[string]struct{}) {
	edges := g.edges[:0]

	for _, edge := range g.edges {
		_, src := removed[edge.Source]
		_, dst := removed[edge.Target]

		if src || dst {
			continue
		}

		edges = append(edges, edge)
	}

	g.edges = edges

	if _, ok := removed[g.inspected]; ok {
		g.inspected = ""
	}
}

// Connect appends an edge between two existing nodes. Cycles, self-loops and
// parallel edges are accepted.
func (g *Graph) Connect(source, target, sourceHandle, targetHandle string) (string, error) {
	if g.indexOf(source) < 0 {
		return "", fmt.Errorf("%w: source %s", ErrUnknownNode, source)
	}

	if g.indexOf(target) < 0 {
		return "", fmt.Errorf("%w: target %s", ErrUnknownNode, target)
	}

	base := "edge-" + source + "-" + target
	if sourceHandle != "" {
		base = "edge-" + source + "-" + sourceHandle + "-" + target
	}

	id := base
	for n := 2; g.edgeIndexOf(id) >= 0; n++ {
		id = base + "-" + strconv.Itoa(n)
	}

	g.edges = append(g.edges, models.WorkflowEdge{
		ID:           id,
		Source:       source,
		Target:       target,
		SourceHandle: sourceHandle,
		TargetHandle: targetHandle,
	})

	return id, nil
}

// RemoveEdge deletes edge id and reports whether it existed.
func (g *Graph) RemoveEdge(id string) bool {
	i := g.edgeIndexOf(id)
	if i < 0 {
		return false
	}

	g.edges = append(g.edges[:i], g.edges[i+1:]...)

	return true
}

// Validate returns the save-blocking problems of the graph. An empty result
// means the graph can be saved.
func (g *Graph) Validate() []string {
	return Validate(models.Definition{Nodes: g.nodes, Edges: g.edges})
}

func (g *Graph) indexOf(id string) int {
	for i := range g.nodes {
		if g.nodes[i].ID == id {
			return i
		}
	}

	return -1
}

func (g *Graph) edgeIndexOf(id string) int {
	for i := range g.edges {
		if g.edges[i].ID == id {
			return i
		}
	}

	return -1
}

func cloneNodes(nodes []models.WorkflowNode) []models.WorkflowNode {
	if nodes == nil {
		return nil
	}

	out := make([]models.WorkflowNode, len(nodes))
	for i, node := range nodes {
		out[i] = node.Clone()
	}

	return out
}
