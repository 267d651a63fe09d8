package web

import (
	"github.com/dukex/fluxo/pkg/models"
)

// AccessRequest carries the confidentiality settings shared by workflows and forms.
type AccessRequest struct {
	ConfidentialityLevel models.Confidentiality `json:"confidentiality_level" validate:"omitempty,oneof=public private"`
	AllowedUsers         []string               `json:"allowed_users"`
	AllowedDepartments   []string               `json:"allowed_departments"`
	AllowedRoles         []string               `json:"allowed_roles"`
}

func (r AccessRequest) toModel() models.AccessControl {
	level := r.ConfidentialityLevel
	if level == "" {
		level = models.ConfidentialityPublic
	}

	return models.AccessControl{
		ConfidentialityLevel: level,
		AllowedUsers:         r.AllowedUsers,
		AllowedDepartments:   r.AllowedDepartments,
		AllowedRoles:         r.AllowedRoles,
	}
}

// WorkflowRequest represents the request body for creating or replacing a workflow.
type WorkflowRequest struct {
	AccessRequest

	Name               string              `json:"name"                validate:"required,min=3"`
	Description        string              `json:"description"`
	WorkflowType       models.WorkflowType `json:"workflow_type"`
	TriggerType        models.TriggerType  `json:"trigger_type"`
	Priority           models.Priority     `json:"priority"`
	DepartmentIDs      []string            `json:"department_ids"`
	Tags               []string            `json:"tags"`
	IsActive           *bool               `json:"is_active"`
	WorkflowDefinition models.Definition   `json:"workflow_definition"`
	TemplateID         string              `json:"template_id"`
}

func (r WorkflowRequest) toModel() *models.Workflow {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}

	workflowType := r.WorkflowType
	if workflowType == "" {
		workflowType = models.WorkflowTypeCustom
	}

	return &models.Workflow{
		AccessControl:      r.AccessRequest.toModel(),
		Name:               r.Name,
		Description:        r.Description,
		WorkflowType:       workflowType,
		TriggerType:        r.TriggerType,
		Priority:           r.Priority,
		DepartmentIDs:      r.DepartmentIDs,
		Tags:               r.Tags,
		IsActive:           active,
		WorkflowDefinition: r.WorkflowDefinition,
		TemplateID:         r.TemplateID,
	}
}

// FormRequest represents the request body for creating or replacing a form.
type FormRequest struct {
	AccessRequest

	Title       string             `json:"title"        validate:"required"`
	Description string             `json:"description"`
	Fields      []models.FormField `json:"fields"`
	Tabs        []models.Tab       `json:"tabs"         validate:"required,min=1"`
	IsPublished bool               `json:"is_published"`
}

func (r FormRequest) toModel() *models.Form {
	return &models.Form{
		AccessControl: r.AccessRequest.toModel(),
		Title:         r.Title,
		Description:   r.Description,
		Fields:        r.Fields,
		Tabs:          r.Tabs,
		IsPublished:   r.IsPublished,
	}
}

// SubmissionRequest carries answers keyed by field id.
type SubmissionRequest struct {
	Values map[string]any `json:"values" validate:"required"`
}

// ValidationResponse is returned by the validation endpoints. Problems in the
// validated content are not request errors.
type ValidationResponse struct {
	Valid    bool     `json:"valid"`
	Messages []string `json:"messages"`
}

func newValidationResponse(messages []string) ValidationResponse {
	if messages == nil {
		messages = []string{}
	}

	return ValidationResponse{Valid: len(messages) == 0, Messages: messages}
}

// UseTemplateRequest optionally renames the workflow created from a template.
type UseTemplateRequest struct {
	Name        string `json:"name"        validate:"omitempty,min=3"`
	Description string `json:"description"`
}

// ProductRequest represents the request body for creating or replacing a product.
type ProductRequest struct {
	Code           string            `json:"code"`
	Names          map[string]string `json:"names"           validate:"required,min=1,dive,keys,oneof=pt en es,endkeys"`
	Descriptions   map[string]string `json:"descriptions"    validate:"omitempty,dive,keys,oneof=pt en es,endkeys"`
	ImageURL       string            `json:"image_url"       validate:"omitempty,url"`
	Active         bool              `json:"active"`
	FamilyIDs      []string          `json:"family_ids"`
	SegmentIDs     []string          `json:"segment_ids"`
	ApplicationIDs []string          `json:"application_ids"`
	GroupIDs       []string          `json:"group_ids"`

	// FillTranslationsFrom completes missing languages from this one before saving.
	FillTranslationsFrom string `json:"fill_translations_from" validate:"omitempty,oneof=pt en es"`
}

func (r ProductRequest) toModel() *models.Product {
	return &models.Product{
		Code:           r.Code,
		Names:          r.Names,
		Descriptions:   r.Descriptions,
		ImageURL:       r.ImageURL,
		Active:         r.Active,
		FamilyIDs:      r.FamilyIDs,
		SegmentIDs:     r.SegmentIDs,
		ApplicationIDs: r.ApplicationIDs,
		GroupIDs:       r.GroupIDs,
	}
}

type TaxonomyRequest struct {
	Kind models.TaxonomyKind `json:"kind" validate:"required,oneof=family segment application group"`
	Name string              `json:"name" validate:"required"`
}

type TranslateRequest struct {
	Text string `json:"text" validate:"required"`
	From string `json:"from" validate:"required,oneof=pt en es"`
	To   string `json:"to"   validate:"required,oneof=pt en es"`
}

type ImageRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}
