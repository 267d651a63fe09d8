package models

import (
	"encoding/json"
	"time"
)

// ComplexityLevel rates how demanding a template is to adopt.
type ComplexityLevel string

const (
	ComplexityBasic        ComplexityLevel = "basic"
	ComplexityIntermediate ComplexityLevel = "intermediate"
	ComplexityAdvanced     ComplexityLevel = "advanced"
)

// WorkflowTemplate is a read-only reusable workflow definition. The definition
// is kept as raw JSON because older templates use different field names; it is
// normalized only when converted into an editable graph.
type WorkflowTemplate struct {
	ID                 string          `json:"id"                   yaml:"id"`
	Name               string          `json:"name"                 yaml:"name"`
	Description        string          `json:"description"          yaml:"description"`
	Category           string          `json:"category"             yaml:"category"`
	WorkflowType       WorkflowType    `json:"workflow_type"        yaml:"workflow_type"`
	ComplexityLevel    ComplexityLevel `json:"complexity_level"     yaml:"complexity_level"`
	Instructions       string          `json:"instructions"         yaml:"instructions"`
	Prerequisites      []string        `json:"prerequisites"        yaml:"prerequisites"`
	ExampleUsage       string          `json:"example_usage"        yaml:"example_usage"`
	EstimatedDuration  string          `json:"estimated_duration"   yaml:"estimated_duration"`
	Tags               []string        `json:"tags,omitempty"       yaml:"tags"`
	UsageCount         int             `json:"usage_count"          yaml:"-"`
	IsSystem           bool            `json:"is_system"            yaml:"-"`
	WorkflowDefinition json.RawMessage `json:"workflow_definition"  yaml:"-"`
	CreatedAt          time.Time       `json:"created_at"           yaml:"-"`
	UpdatedAt          time.Time       `json:"updated_at"           yaml:"-"`
}

func (t *WorkflowTemplate) GetID() string           { return t.ID }
func (t *WorkflowTemplate) GetName() string         { return t.Name }
func (t *WorkflowTemplate) GetCreatedAt() time.Time { return t.CreatedAt }
func (t *WorkflowTemplate) GetUpdatedAt() time.Time { return t.UpdatedAt }
func (t *WorkflowTemplate) SetID(id string)         { t.ID = id }
func (t *WorkflowTemplate) Stamp(now time.Time)     { stamp(&t.CreatedAt, &t.UpdatedAt, now) }
