// Package registry holds the static descriptor tables of node and field types.
package registry

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/dukex/fluxo/pkg/models"
)

// NodeCategory groups node types in the editor palette.
type NodeCategory string

const (
	CategoryTrigger NodeCategory = "trigger"
	CategoryAction  NodeCategory = "action"
	CategoryControl NodeCategory = "control"
)

// NodeDescriptor describes how a node type is presented and initialized.
type NodeDescriptor struct {
	Type        models.NodeType `json:"type"`
	Label       string          `json:"label"`
	Description string          `json:"description"`
	Icon        string          `json:"icon"`
	Color       string          `json:"color"`
	Category    NodeCategory    `json:"category"`
	Handles     []string        `json:"handles,omitempty"`

	defaults func() models.NodeData
}

// FieldCategory groups field types in the form builder palette.
type FieldCategory string

const (
	FieldCategoryBasic    FieldCategory = "basic"
	FieldCategoryChoice   FieldCategory = "choice"
	FieldCategoryAdvanced FieldCategory = "advanced"
	FieldCategoryLayout   FieldCategory = "layout"
)

// FieldDescriptor describes how a field type is presented and initialized.
type FieldDescriptor struct {
	Type         models.FieldType `json:"type"`
	Label        string           `json:"label"`
	Icon         string           `json:"icon"`
	Category     FieldCategory    `json:"category"`
	DefaultLabel string           `json:"default_label"`
	DefaultWidth models.Width     `json:"default_width"`

	defaults func(field *models.FormField)
}

type Registry struct {
	logger     *slog.Logger
	nodes      map[models.NodeType]NodeDescriptor
	nodeOrder  []models.NodeType
	fields     map[models.FieldType]FieldDescriptor
	fieldOrder []models.FieldType
}

func NewRegistry(log *slog.Logger) *Registry {
	return &Registry{
		logger: log,
		nodes:  make(map[models.NodeType]NodeDescriptor),
		fields: make(map[models.FieldType]FieldDescriptor),
	}
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	r := NewRegistry(slog.Default().With("module", "registry"))
	r.RegisterDefaultNodes()
	r.RegisterDefaultFields()

	return r
})

// Default returns the registry with every built-in node and field type.
// It is built once and never mutated afterwards.
func Default() *Registry {
	return defaultRegistry()
}

func (r *Registry) RegisterNode(descriptor NodeDescriptor) {
	if _, exists := r.nodes[descriptor.Type]; !exists {
		r.nodeOrder = append(r.nodeOrder, descriptor.Type)
	} else {
		r.logger.Warn("Replacing node descriptor", "type", descriptor.Type)
	}

	r.nodes[descriptor.Type] = descriptor
}

func (r *Registry) RegisterField(descriptor FieldDescriptor) {
	if _, exists := r.fields[descriptor.Type]; !exists {
		r.fieldOrder = append(r.fieldOrder, descriptor.Type)
	} else {
		r.logger.Warn("Replacing field descriptor", "type", descriptor.Type)
	}

	r.fields[descriptor.Type] = descriptor
}

// Node returns the descriptor of a node type.
func (r *Registry) Node(t models.NodeType) (NodeDescriptor, bool) {
	descriptor, ok := r.nodes[t]

	return descriptor, ok
}

// Nodes returns every registered node descriptor in registration order.
func (r *Registry) Nodes() []NodeDescriptor {
	out := make([]NodeDescriptor, 0, len(r.nodeOrder))
	for _, t := range r.nodeOrder {
		out = append(out, r.nodes[t])
	}

	return out
}

// NodeLabel returns the generic label of a node type, or the type itself
// when it is not registered.
func (r *Registry) NodeLabel(t models.NodeType) string {
	if descriptor, ok := r.nodes[t]; ok {
		return descriptor.Label
	}

	return string(t)
}

// DefaultNodeData returns fresh default data for a node type. Unregistered
// types get an empty passthrough bag.
func (r *Registry) DefaultNodeData(t models.NodeType) models.NodeData {
	descriptor, ok := r.nodes[t]
	if !ok || descriptor.defaults == nil {
		return models.NewNodeData(t)
	}

	return descriptor.defaults()
}

// Field returns the descriptor of a field type.
func (r *Registry) Field(t models.FieldType) (FieldDescriptor, bool) {
	descriptor, ok := r.fields[t]

	return descriptor, ok
}

// Fields returns every registered field descriptor in registration order.
func (r *Registry) Fields() []FieldDescriptor {
	out := make([]FieldDescriptor, 0, len(r.fieldOrder))
	for _, t := range r.fieldOrder {
		out = append(out, r.fields[t])
	}

	return out
}

// NewField returns a field of type t with its type defaults applied. The
// caller assigns ID and TabID.
func (r *Registry) NewField(t models.FieldType) (models.FormField, bool) {
	descriptor, ok := r.fields[t]
	if !ok {
		return models.FormField{}, false
	}

	field := models.FormField{
		Type:  t,
		Label: descriptor.DefaultLabel,
		Width: descriptor.DefaultWidth,
	}

	if descriptor.defaults != nil {
		descriptor.defaults(&field)
	}

	return field, true
}

// HealthCheck reports whether the palettes have anything to offer.
func (r *Registry) HealthCheck() (string, bool) {
	if len(r.nodes) == 0 || len(r.fields) == 0 {
		return "Registry has no node or field types", false
	}

	return fmt.Sprintf("Registry has %d node types and %d field types", len(r.nodes), len(r.fields)), true
}
