package editor

import (
	"context"
	"fmt"

	"github.com/dukex/fluxo/pkg/drafts"
	"github.com/dukex/fluxo/pkg/graph"
	"github.com/dukex/fluxo/pkg/models"
)

// WorkflowService is what a workflow session needs from the workflow service.
type WorkflowService interface {
	FetchByID(ctx context.Context, id string) (*models.Workflow, error)
	Save(ctx context.Context, actor string, workflow *models.Workflow) (*models.Workflow, error)
}

// WorkflowSession edits one workflow. It is not safe for concurrent use.
type WorkflowSession struct {
	service   WorkflowService
	slot      *draftSlot
	cfg       config
	workflow  *models.Workflow
	graph     *graph.Graph
	fromDraft bool
}

// OpenWorkflow starts editing the workflow with id, or a new one when id is
// blank. A stored workflow always opens from the server copy and its leftover
// draft is dropped; a new workflow resumes from its draft when there is one.
func OpenWorkflow(ctx context.Context, service WorkflowService, store drafts.Store, id string, opts ...Option) (*WorkflowSession, error) {
	cfg := newConfig(opts)
	key := drafts.WorkflowKey(id)

	s := &WorkflowSession{
		service: service,
		slot:    newDraftSlot(store, key, cfg),
		cfg:     cfg,
	}

	var (
		workflow *models.Workflow
		exists   bool
	)

	if !key.IsNew() {
		stored, err := service.FetchByID(ctx, id)
		if err != nil {
			return nil, err
		}

		workflow = stored
		exists = true
	}

	var draft models.Workflow

	found, err := drafts.Resolve(ctx, store, s.slot.buffer.Key(), exists, &draft)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workflow draft: %w", err)
	}

	switch {
	case found:
		workflow = &draft
		s.fromDraft = true
	case workflow == nil:
		workflow = newWorkflow()
		workflow.WorkflowDefinition = graph.NewDefault().Definition()
	}

	s.workflow = workflow
	s.graph = graph.FromDefinition(workflow.WorkflowDefinition)

	return s, nil
}

func newWorkflow() *models.Workflow {
	return &models.Workflow{
		WorkflowType: models.WorkflowTypeCustom,
		TriggerType:  models.TriggerManual,
		Priority:     models.PriorityMedium,
		IsActive:     true,
		AccessControl: models.AccessControl{
			ConfidentialityLevel: models.ConfidentialityPublic,
		},
	}
}

// FromDraft reports whether the session resumed an unsaved draft.
func (s *WorkflowSession) FromDraft() bool {
	return s.fromDraft
}

// DraftKey is the slot the session currently writes its draft to.
func (s *WorkflowSession) DraftKey() drafts.Key {
	return s.slot.buffer.Key()
}

// Dirty reports whether a change has not been written to the draft yet.
func (s *WorkflowSession) Dirty() bool {
	return s.slot.buffer.Dirty()
}

// Snapshot returns the workflow as it would be saved now.
func (s *WorkflowSession) Snapshot() *models.Workflow {
	out := *s.workflow
	out.WorkflowDefinition = s.graph.Definition()

	return &out
}

// Graph exposes the graph for reads. Changes must go through Edit so they reach the draft.
func (s *WorkflowSession) Graph() *graph.Graph {
	return s.graph
}

// Edit applies fn to the workflow details and graph and marks the draft.
// Nothing is marked when fn fails.
func (s *WorkflowSession) Edit(fn func(workflow *models.Workflow, g *graph.Graph) error) error {
	err := fn(s.workflow, s.graph)
	if err != nil {
		return err
	}

	return s.slot.buffer.Mark(s.Snapshot())
}

// AddNode adds a node of type t and returns its id.
func (s *WorkflowSession) AddNode(t models.NodeType, position models.Position) (string, error) {
	var id string

	err := s.Edit(func(_ *models.Workflow, g *graph.Graph) error {
		var err error

		id, err = g.AddNode(t, position)

		return err
	})

	return id, err
}

func (s *WorkflowSession) UpdateNodeData(id string, patch map[string]any) error {
	return s.Edit(func(_ *models.Workflow, g *graph.Graph) error {
		return g.UpdateNodeData(id, patch)
	})
}

func (s *WorkflowSession) Connect(source, target, sourceHandle, targetHandle string) (string, error) {
	var id string

	err := s.Edit(func(_ *models.Workflow, g *graph.Graph) error {
		var err error

		id, err = g.Connect(source, target, sourceHandle, targetHandle)

		return err
	})

	return id, err
}

// RemoveSelected removes the selected nodes and their edges.
func (s *WorkflowSession) RemoveSelected() ([]string, error) {
	var removed []string

	err := s.Edit(func(_ *models.Workflow, g *graph.Graph) error {
		removed = g.RemoveSelected()

		return nil
	})

	return removed, err
}

// Validate returns the problems that would block saving.
func (s *WorkflowSession) Validate() []string {
	return graph.Validate(s.graph.Definition())
}

// Suspend writes any pending change to the draft right away. Call it when the
// editor is hidden or closed.
func (s *WorkflowSession) Suspend(ctx context.Context) error {
	return s.slot.buffer.Flush(ctx)
}

// Save stores the workflow through the service. On success the draft is
// cleared and later edits go to the saved workflow's slot; on failure the
// draft is kept so nothing is lost.
func (s *WorkflowSession) Save(ctx context.Context) (*models.Workflow, error) {
	saved, err := s.service.Save(ctx, s.cfg.user, s.Snapshot())
	if err != nil {
		return nil, err
	}

	err = s.slot.saved(ctx, drafts.WorkflowKey(saved.ID))
	if err != nil {
		s.cfg.logger.WarnContext(ctx, "failed to clear workflow draft", "workflow_id", saved.ID, "error", err)
	}

	current := *saved
	s.workflow = &current
	s.graph.Load(saved.WorkflowDefinition)
	s.fromDraft = false

	return saved, nil
}

// Reset drops the draft and starts over from a default workflow, keeping the
// id of a stored workflow.
func (s *WorkflowSession) Reset(ctx context.Context) error {
	err := s.slot.buffer.Discard(ctx)
	if err != nil {
		return err
	}

	fresh := newWorkflow()
	fresh.ID = s.workflow.ID
	fresh.Owner = s.workflow.Owner
	fresh.CreatedAt = s.workflow.CreatedAt

	s.workflow = fresh
	s.graph.Reset()
	s.fromDraft = false

	return nil
}
