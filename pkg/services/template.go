package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dukex/fluxo/pkg/eventbus"
	"github.com/dukex/fluxo/pkg/events"
	"github.com/dukex/fluxo/pkg/models"
	"github.com/dukex/fluxo/pkg/otelhelper"
	"github.com/dukex/fluxo/pkg/persistence"
	"github.com/dukex/fluxo/pkg/templates"
	"go.opentelemetry.io/otel/attribute"
)

type Template struct {
	persistence persistence.Persistence
	publisher   eventbus.EventPublisher
	logger      *slog.Logger
}

// NewTemplate creates a new template service. publisher may be nil.
func NewTemplate(persistence persistence.Persistence, publisher eventbus.EventPublisher, logger *slog.Logger) *Template {
	return &Template{
		persistence: persistence,
		publisher:   publisher,
		logger:      logger.With("service", "template"),
	}
}

// ListTemplatesRequest contains options for listing templates.
type ListTemplatesRequest struct {
	ListRequest

	Category        string
	ComplexityLevel string
	WorkflowType    string
}

// List retrieves templates with filtering, sorting, and pagination.
func (t *Template) List(ctx context.Context, req ListTemplatesRequest) (*ListResponse[*models.WorkflowTemplate], error) {
	const op = "Template.List"

	err := req.normalize(op)
	if err != nil {
		return nil, err
	}

	filters := map[string]string{}
	stringFilter(filters, "category", req.Category)
	stringFilter(filters, "complexity_level", req.ComplexityLevel)
	stringFilter(filters, "workflow_type", req.WorkflowType)

	return listPage(ctx, op, t.persistence.Templates(), req.ListRequest, filters)
}

// FetchByID retrieves a template.
func (t *Template) FetchByID(ctx context.Context, id string) (*models.WorkflowTemplate, error) {
	return t.persistence.Templates().GetByID(ctx, id)
}

// TemplatePreview is a template with its definition in editor shape.
type TemplatePreview struct {
	Template   *models.WorkflowTemplate `json:"template"`
	Definition models.Definition        `json:"definition"`
	Counts     []templates.TypeCount    `json:"counts"`
}

// Preview converts a template the same way Use does, without storing anything.
func (t *Template) Preview(ctx context.Context, id string) (*TemplatePreview, error) {
	template, err := t.persistence.Templates().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	def, err := editable(template)
	if err != nil {
		return nil, err
	}

	return &TemplatePreview{
		Template:   template,
		Definition: def,
		Counts:     templates.CountByType(def.Nodes),
	}, nil
}

// UseTemplateRequest names the workflow created from a template. Blank
// values fall back to the template's.
type UseTemplateRequest struct {
	Name        string
	Description string
}

// Use materializes a template into a new inactive workflow owned by actor.
// The usage counter is bumped afterwards in a separate write; a failure there
// is logged and does not undo the workflow.
func (t *Template) Use(ctx context.Context, actor, id string, req UseTemplateRequest) (*models.Workflow, error) {
	ctx, span := otelhelper.StartSpan(ctx, tracer, "Template.Use",
		attribute.String(otelhelper.TemplateIDKey, id),
		attribute.String(otelhelper.UserIDKey, actor),
	)
	defer span.End()

	template, err := t.persistence.Templates().GetByID(ctx, id)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, err
	}

	def, err := editable(template)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, err
	}

	workflow := &models.Workflow{
		Name:               firstNonBlank(req.Name, template.Name),
		Description:        firstNonBlank(req.Description, template.Description),
		WorkflowType:       template.WorkflowType,
		Tags:               models.NormalizeTags(template.Tags),
		WorkflowDefinition: def,
		TemplateID:         template.ID,
		Owner:              actor,
		AccessControl:      models.AccessControl{ConfidentialityLevel: models.ConfidentialityPublic},
	}

	if triggers := workflow.TriggerNodes(); len(triggers) > 0 {
		if data, ok := triggers[0].Data.(*models.TriggerData); ok {
			workflow.TriggerType = data.TriggerType
		}
	}

	err = t.persistence.Workflows().Save(ctx, workflow)
	if err != nil {
		otelhelper.SetError(span, err)
		t.logger.ErrorContext(ctx, "failed to create workflow from template", "template_id", id, "error", err)

		return nil, fmt.Errorf("failed to save workflow: %w", err)
	}

	template.UsageCount++

	err = t.persistence.Templates().Save(ctx, template)
	if err != nil {
		t.logger.WarnContext(ctx, "failed to increment template usage", "template_id", id, "error", err)
	}

	publish(ctx, t.logger, t.publisher, workflow.ID, events.TemplateUsed{
		BaseEvent:    events.NewBaseEvent(events.TemplateUsedEvent, actor),
		TemplateID:   template.ID,
		TemplateName: template.Name,
		WorkflowID:   workflow.ID,
	})

	return workflow, nil
}

// SeedBuiltins stores the built-in templates that are not stored yet and
// returns how many were added. Stored copies are never overwritten.
func (t *Template) SeedBuiltins(ctx context.Context) (int, error) {
	builtin, err := templates.Builtin()
	if err != nil {
		return 0, err
	}

	added := 0

	for _, template := range builtin {
		_, err := t.persistence.Templates().GetByID(ctx, template.ID)
		if err == nil {
			continue
		}

		if !persistence.IsTemplateNotFound(err) {
			return added, fmt.Errorf("failed to look up template %s: %w", template.ID, err)
		}

		template.IsSystem = true

		err = t.persistence.Templates().Save(ctx, template)
		if err != nil {
			return added, fmt.Errorf("failed to seed template %s: %w", template.ID, err)
		}

		added++
	}

	if added > 0 {
		t.logger.InfoContext(ctx, "seeded built-in templates", "count", added)
	}

	return added, nil
}

func editable(template *models.WorkflowTemplate) (models.Definition, error) {
	def, err := templates.ToEditable(template.WorkflowDefinition)
	if errors.Is(err, templates.ErrMissingNodes) {
		return models.Definition{}, NewValidationError("Template.ToEditable", "INVALID_TEMPLATE",
			fmt.Sprintf("template %s has no node list", template.ID), ErrInvalidRequest)
	}

	if err != nil {
		return models.Definition{}, fmt.Errorf("failed to convert template %s: %w", template.ID, err)
	}

	return def, nil
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}

	return ""
}
