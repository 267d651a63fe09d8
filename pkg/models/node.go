// Package models defines the persisted records of the workflow and form builders.
package models

import (
	"encoding/json"
	"fmt"
)

// NodeType identifies the kind of a workflow node.
type NodeType string

const (
	NodeTypeTrigger      NodeType = "trigger"
	NodeTypeTask         NodeType = "task"
	NodeTypeCondition    NodeType = "condition"
	NodeTypeDelay        NodeType = "delay"
	NodeTypeNotification NodeType = "notification"
	NodeTypeApproval     NodeType = "approval"
	NodeTypeForm         NodeType = "form"
	NodeTypeWebhook      NodeType = "webhook"
	NodeTypeLoop         NodeType = "loop"
)

// NodeTypes lists every known node type in palette order.
func NodeTypes() []NodeType {
	return []NodeType{
		NodeTypeTrigger,
		NodeTypeTask,
		NodeTypeCondition,
		NodeTypeDelay,
		NodeTypeNotification,
		NodeTypeApproval,
		NodeTypeForm,
		NodeTypeWebhook,
		NodeTypeLoop,
	}
}

// Known reports whether t is one of the built-in node types.
func (t NodeType) Known() bool {
	for _, known := range NodeTypes() {
		if t == known {
			return true
		}
	}

	return false
}

// Position is the canvas coordinate of a node. It has no semantic meaning.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// WorkflowNode is a typed unit of work or control flow in a workflow graph.
type WorkflowNode struct {
	ID       string   `json:"id"       validate:"required"`
	Type     NodeType `json:"type"     validate:"required"`
	Position Position `json:"position"`
	Data     NodeData `json:"data"`
	Selected bool     `json:"selected,omitempty"`
}

type wireNode struct {
	ID       string         `json:"id"`
	Type     NodeType       `json:"type"`
	Position Position       `json:"position"`
	Data     map[string]any `json:"data"`
	Selected bool           `json:"selected,omitempty"`
}

// MarshalJSON flattens the typed data back into the editor's attribute bag.
func (n WorkflowNode) MarshalJSON() ([]byte, error) {
	data, err := DataToMap(n.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode data of node %s: %w", n.ID, err)
	}

	return json.Marshal(wireNode{
		ID:       n.ID,
		Type:     n.Type,
		Position: n.Position,
		Data:     data,
		Selected: n.Selected,
	})
}

// UnmarshalJSON decodes the attribute bag into the variant matching the node type.
func (n *WorkflowNode) UnmarshalJSON(b []byte) error {
	var wire wireNode
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}

	data, err := DataFromMap(wire.Type, wire.Data)
	if err != nil {
		return fmt.Errorf("failed to decode data of node %s: %w", wire.ID, err)
	}

	n.ID = wire.ID
	n.Type = wire.Type
	n.Position = wire.Position
	n.Data = data
	n.Selected = wire.Selected

	return nil
}

// Clone returns a deep copy of the node.
func (n WorkflowNode) Clone() WorkflowNode {
	out := n
	if n.Data != nil {
		raw, err := DataToMap(n.Data)
		if err == nil {
			data, err := DataFromMap(n.Type, raw)
			if err == nil {
				out.Data = data
			}
		}
	}

	return out
}

// Label returns the human label stored on the node, if any.
func (n WorkflowNode) Label() string {
	if n.Data == nil {
		return ""
	}

	return n.Data.DisplayLabel()
}
