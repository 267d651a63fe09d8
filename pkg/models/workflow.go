package models

import "time"

// WorkflowType classifies a workflow for listing and reporting.
type WorkflowType string

const (
	WorkflowTypeApproval    WorkflowType = "approval"
	WorkflowTypeOnboarding  WorkflowType = "onboarding"
	WorkflowTypePurchase    WorkflowType = "purchase"
	WorkflowTypeMaintenance WorkflowType = "maintenance"
	WorkflowTypeHR          WorkflowType = "hr"
	WorkflowTypeFinance     WorkflowType = "finance"
	WorkflowTypeSales       WorkflowType = "sales"
	WorkflowTypeSupport     WorkflowType = "support"
	WorkflowTypeCompliance  WorkflowType = "compliance"
	WorkflowTypeDocument    WorkflowType = "document"
	WorkflowTypeCustom      WorkflowType = "custom"
)

// Confidentiality decides whether the access lists of a record apply.
type Confidentiality string

const (
	ConfidentialityPublic  Confidentiality = "public"
	ConfidentialityPrivate Confidentiality = "private"
)

// AccessControl is shared by workflows and forms. The allowed lists are only
// consulted when the record is private.
type AccessControl struct {
	ConfidentialityLevel Confidentiality `json:"confidentiality_level"         validate:"omitempty,oneof=public private"`
	AllowedUsers         []string        `json:"allowed_users,omitempty"`
	AllowedDepartments   []string        `json:"allowed_departments,omitempty"`
	AllowedRoles         []string        `json:"allowed_roles,omitempty"`
}

// Rules returns the access rules themselves. Records embedding AccessControl
// expose it through promotion.
func (a AccessControl) Rules() AccessControl { return a }

// Definition is the graph of a workflow as persisted.
type Definition struct {
	Nodes []WorkflowNode `json:"nodes" validate:"dive"`
	Edges []WorkflowEdge `json:"edges" validate:"dive"`
}

// Workflow is the persisted workflow aggregate.
type Workflow struct {
	AccessControl

	ID                 string       `json:"id"`
	Name               string       `json:"name"                validate:"required,min=3"`
	Description        string       `json:"description"`
	WorkflowType       WorkflowType `json:"workflow_type"       validate:"omitempty,oneof=approval onboarding purchase maintenance hr finance sales support compliance document custom"`
	TriggerType        TriggerType  `json:"trigger_type"`
	Priority           Priority     `json:"priority"            validate:"omitempty,oneof=low medium high critical"`
	DepartmentIDs      []string     `json:"department_ids,omitempty"`
	Tags               []string     `json:"tags,omitempty"`
	IsActive           bool         `json:"is_active"`
	WorkflowDefinition Definition   `json:"workflow_definition"`
	TemplateID         string       `json:"template_id,omitempty"`
	Owner              string       `json:"owner"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

func (w *Workflow) GetID() string           { return w.ID }
func (w *Workflow) GetOwner() string        { return w.Owner }
func (w *Workflow) RecordType() string      { return "workflow" }
func (w *Workflow) GetName() string         { return w.Name }
func (w *Workflow) GetCreatedAt() time.Time { return w.CreatedAt }
func (w *Workflow) GetUpdatedAt() time.Time { return w.UpdatedAt }
func (w *Workflow) SetID(id string)         { w.ID = id }
func (w *Workflow) Stamp(now time.Time)     { stamp(&w.CreatedAt, &w.UpdatedAt, now) }

// TriggerNodes returns the trigger nodes of the workflow definition.
func (w *Workflow) TriggerNodes() []WorkflowNode {
	var triggers []WorkflowNode

	for _, node := range w.WorkflowDefinition.Nodes {
		if node.Type == NodeTypeTrigger {
			triggers = append(triggers, node)
		}
	}

	return triggers
}

// NormalizeTags trims, drops blanks and de-duplicates tags keeping first occurrence.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))

	for _, tag := range tags {
		tag = trimSpace(tag)
		if tag == "" {
			continue
		}

		if _, ok := seen[tag]; ok {
			continue
		}

		seen[tag] = struct{}{}
		out = append(out, tag)
	}

	return out
}
