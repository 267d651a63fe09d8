package graph

import (
	"strings"
	"testing"

	"github.com/dukex/fluxo/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestValidate_RequiresTrigger(t *testing.T) {
	g := New()

	messages := g.Validate()
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "trigger")

	_, err := g.AddNode(models.NodeTypeTrigger, models.Position{})
	require.NoError(t, err)
	assert.Empty(t, g.Validate())
}

func TestValidate_Rules(t *testing.T) {
	testCases := []struct {
		name     string
		nodes    []models.WorkflowNode
		contains []string
	}{
		{
			name: "task without title or assignee",
			nodes: []models.WorkflowNode{
				{ID: "t", Type: models.NodeTypeTrigger, Data: &models.TriggerData{TriggerType: models.TriggerManual}},
				{ID: "task-1", Type: models.NodeTypeTask, Data: &models.TaskData{}},
			},
			contains: []string{"título da tarefa", "responsável"},
		},
		{
			name: "notification without title and message",
			nodes: []models.WorkflowNode{
				{ID: "t", Type: models.NodeTypeTrigger, Data: &models.TriggerData{}},
				{ID: "n", Type: models.NodeTypeNotification, Data: &models.NotificationData{NotificationTitle: "  "}},
			},
			contains: []string{"informe o título", "informe a mensagem"},
		},
		{
			name: "scheduled trigger with invalid cron",
			nodes: []models.WorkflowNode{
				{ID: "t", Type: models.NodeTypeTrigger, Data: &models.TriggerData{TriggerType: models.TriggerScheduled, Schedule: "every day"}},
			},
			contains: []string{"agenda inválida"},
		},
		{
			name: "scheduled trigger without cron",
			nodes: []models.WorkflowNode{
				{ID: "t", Type: models.NodeTypeTrigger, Data: &models.TriggerData{TriggerType: models.TriggerScheduled}},
			},
			contains: []string{"informe a agenda"},
		},
		{
			name: "unknown node type",
			nodes: []models.WorkflowNode{
				{ID: "t", Type: models.NodeTypeTrigger, Data: &models.TriggerData{}},
				{ID: "legacy", Type: "mailer", Data: &models.UnknownData{NodeKind: "mailer"}},
			},
			contains: []string{"tipo desconhecido"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			messages := Validate(models.Definition{Nodes: tc.nodes})
			require.Len(t, messages, len(tc.contains))

			for i, fragment := range tc.contains {
				assert.Contains(t, messages[i], fragment)
			}
		})
	}
}

func TestValidate_ValidWorkflow(t *testing.T) {
	def := models.Definition{
		Nodes: []models.WorkflowNode{
			{ID: "t", Type: models.NodeTypeTrigger, Data: &models.TriggerData{TriggerType: models.TriggerScheduled, Schedule: "0 8 * * 1-5"}},
			{ID: "a", Type: models.NodeTypeTask, Data: &models.TaskData{TaskTitle: "Aprovar", AssignedTo: strPtr("")}},
			{ID: "n", Type: models.NodeTypeNotification, Data: &models.NotificationData{NotificationTitle: "Oi", NotificationMessage: "Feito"}},
			{ID: "d", Type: models.NodeTypeDelay, Data: &models.DelayData{Duration: 2, Unit: models.DelayHours}},
		},
	}

	assert.Empty(t, Validate(def))
}

func TestValidate_MessagesNameTheNode(t *testing.T) {
	def := models.Definition{
		Nodes: []models.WorkflowNode{
			{ID: "task-9", Type: models.NodeTypeTask, Data: &models.TaskData{Label: "Conferência", AssignedTo: strPtr("ana")}},
		},
	}

	messages := Validate(def)
	require.Len(t, messages, 2)
	assert.True(t, strings.Contains(messages[0], "trigger"))
	assert.Contains(t, messages[1], "Conferência")
}
