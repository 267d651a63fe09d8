package services

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/dukex/fluxo/pkg/eventbus"
	"github.com/dukex/fluxo/pkg/models"
	"github.com/dukex/fluxo/pkg/persistence/file"
)

type recordingPublisher struct {
	mu     sync.Mutex
	keys   []string
	events []eventbus.Event
}

func (p *recordingPublisher) Publish(_ context.Context, key string, event eventbus.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.keys = append(p.keys, key)
	p.events = append(p.events, event)

	return nil
}

func (p *recordingPublisher) published() []eventbus.Event {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]eventbus.Event(nil), p.events...)
}

func newTestPersistence(t *testing.T) *file.Persistence {
	t.Helper()

	return file.NewPersistence(slog.Default(), t.TempDir())
}

func validWorkflow(name string) *models.Workflow {
	assignee := "ana"

	return &models.Workflow{
		Name:         name,
		WorkflowType: models.WorkflowTypePurchase,
		Priority:     models.PriorityMedium,
		IsActive:     true,
		AccessControl: models.AccessControl{
			ConfidentialityLevel: models.ConfidentialityPublic,
		},
		WorkflowDefinition: models.Definition{
			Nodes: []models.WorkflowNode{
				{ID: "trigger-1", Type: models.NodeTypeTrigger, Data: &models.TriggerData{Label: "Início", TriggerType: models.TriggerManual}},
				{ID: "task-1", Type: models.NodeTypeTask, Data: &models.TaskData{TaskTitle: "Cotar", AssignedTo: &assignee}},
			},
			Edges: []models.WorkflowEdge{{ID: "edge-trigger-1-task-1", Source: "trigger-1", Target: "task-1"}},
		},
	}
}

func validForm(title string) *models.Form {
	return &models.Form{
		Title: title,
		Tabs:  []models.Tab{{ID: "tab-1", Title: "Geral"}},
		Fields: []models.FormField{
			{ID: "name", Type: models.FieldText, Label: "Nome", TabID: "tab-1", Required: true},
			{ID: "s1", Type: models.FieldSection, Label: "Contato", TabID: "tab-1"},
			{ID: "email", Type: models.FieldEmail, Label: "E-mail", TabID: "tab-1"},
		},
		AccessControl: models.AccessControl{ConfidentialityLevel: models.ConfidentialityPublic},
	}
}
