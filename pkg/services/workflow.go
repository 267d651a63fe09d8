package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dukex/fluxo/pkg/access"
	"github.com/dukex/fluxo/pkg/eventbus"
	"github.com/dukex/fluxo/pkg/events"
	"github.com/dukex/fluxo/pkg/graph"
	"github.com/dukex/fluxo/pkg/models"
	"github.com/dukex/fluxo/pkg/otelhelper"
	"github.com/dukex/fluxo/pkg/persistence"
	"go.opentelemetry.io/otel/attribute"
)

type Workflow struct {
	persistence persistence.Persistence
	publisher   eventbus.EventPublisher
	logger      *slog.Logger
}

// NewWorkflow creates a new workflow service. publisher may be nil.
func NewWorkflow(persistence persistence.Persistence, publisher eventbus.EventPublisher, logger *slog.Logger) *Workflow {
	return &Workflow{
		persistence: persistence,
		publisher:   publisher,
		logger:      logger.With("service", "workflow"),
	}
}

// HealthCheck checks the health of the persistence layer.
func (w *Workflow) HealthCheck(ctx context.Context) (string, bool) {
	if w.persistence == nil {
		return "Persistence layer not initialized", false
	}

	err := w.persistence.HealthCheck(ctx)
	if err != nil {
		return "Persistence layer is unhealthy: " + err.Error(), false
	}

	return "Persistence layer is healthy", true
}

// ListWorkflowsRequest contains options for listing workflows.
type ListWorkflowsRequest struct {
	ListRequest

	// Filtering
	WorkflowType string
	IsActive     *bool
	Owner        string

	// Principal limits the listing to the records it may see. Nil lists everything.
	Principal *access.Principal
}

// List retrieves workflows with filtering, sorting, and pagination.
func (w *Workflow) List(ctx context.Context, req ListWorkflowsRequest) (*ListResponse[*models.Workflow], error) {
	const op = "Workflow.List"

	err := req.normalize(op)
	if err != nil {
		return nil, err
	}

	filters := map[string]string{}
	stringFilter(filters, "workflow_type", req.WorkflowType)
	stringFilter(filters, "owner", req.Owner)
	boolFilter(filters, "is_active", req.IsActive)

	if req.Principal != nil {
		return listVisible(ctx, op, w.persistence.Workflows(), w.persistence.SharedRecords(), req.ListRequest, filters, *req.Principal)
	}

	return listPage(ctx, op, w.persistence.Workflows(), req.ListRequest, filters)
}

// FetchByID retrieves a workflow.
func (w *Workflow) FetchByID(ctx context.Context, id string) (*models.Workflow, error) {
	return w.persistence.Workflows().GetByID(ctx, id)
}

// Validate returns every problem that blocks saving the workflow, or nothing.
func (w *Workflow) Validate(workflow *models.Workflow) []string {
	messages := structMessages(workflow)

	return append(messages, graph.Validate(workflow.WorkflowDefinition)...)
}

// Create stores a new workflow owned by actor unless it names an owner.
func (w *Workflow) Create(ctx context.Context, actor string, workflow *models.Workflow) (*models.Workflow, error) {
	workflow.ID = ""

	return w.save(ctx, "Workflow.Create", actor, workflow, true)
}

// Update overwrites an existing workflow. Ownership and creation time are kept.
func (w *Workflow) Update(ctx context.Context, actor, id string, workflow *models.Workflow) (*models.Workflow, error) {
	existing, err := w.persistence.Workflows().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	workflow.ID = id
	workflow.Owner = existing.Owner
	workflow.CreatedAt = existing.CreatedAt

	return w.save(ctx, "Workflow.Update", actor, workflow, false)
}

// Save inserts the workflow when it is new and overwrites it otherwise.
func (w *Workflow) Save(ctx context.Context, actor string, workflow *models.Workflow) (*models.Workflow, error) {
	if workflow.ID == "" {
		return w.Create(ctx, actor, workflow)
	}

	_, err := w.persistence.Workflows().GetByID(ctx, workflow.ID)
	if persistence.IsWorkflowNotFound(err) {
		return w.save(ctx, "Workflow.Save", actor, workflow, true)
	}

	if err != nil {
		return nil, err
	}

	return w.Update(ctx, actor, workflow.ID, workflow)
}

func (w *Workflow) save(ctx context.Context, op, actor string, workflow *models.Workflow, created bool) (*models.Workflow, error) {
	ctx, span := otelhelper.StartSpan(ctx, tracer, op,
		attribute.String(otelhelper.WorkflowIDKey, workflow.ID),
		attribute.String(otelhelper.UserIDKey, actor),
	)
	defer span.End()

	if created && workflow.Owner == "" {
		workflow.Owner = actor
	}

	workflow.Tags = models.NormalizeTags(workflow.Tags)

	err := newValidationFailed(op, w.Validate(workflow))
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, err
	}

	err = w.persistence.Workflows().Save(ctx, workflow)
	if err != nil {
		otelhelper.SetError(span, err)
		w.logger.ErrorContext(ctx, "failed to save workflow", "workflow_id", workflow.ID, "error", err)

		return nil, fmt.Errorf("failed to save workflow: %w", err)
	}

	event := events.WorkflowSaved{
		BaseEvent:  events.NewBaseEvent(events.WorkflowSavedEvent, actor),
		WorkflowID: workflow.ID,
		Name:       workflow.Name,
		Owner:      workflow.Owner,
		Created:    created,
		NodeCount:  len(workflow.WorkflowDefinition.Nodes),
	}
	publish(ctx, w.logger, w.publisher, workflow.ID, event)

	return workflow, nil
}

// Delete removes a workflow.
func (w *Workflow) Delete(ctx context.Context, actor, id string) error {
	ctx, span := otelhelper.StartSpan(ctx, tracer, "Workflow.Delete",
		attribute.String(otelhelper.WorkflowIDKey, id),
	)
	defer span.End()

	existing, err := w.persistence.Workflows().GetByID(ctx, id)
	if err != nil {
		otelhelper.SetError(span, err)

		return err
	}

	err = w.persistence.Workflows().Delete(ctx, id)
	if err != nil {
		otelhelper.SetError(span, err)

		return fmt.Errorf("failed to delete workflow: %w", err)
	}

	publish(ctx, w.logger, w.publisher, id, events.WorkflowDeleted{
		BaseEvent:  events.NewBaseEvent(events.WorkflowDeletedEvent, actor),
		WorkflowID: id,
		Name:       existing.Name,
		Owner:      existing.Owner,
	})

	return nil
}
