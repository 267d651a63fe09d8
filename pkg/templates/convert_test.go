package templates

import (
	"encoding/json"
	"testing"

	"github.com/dukex/fluxo/pkg/graph"
	"github.com/dukex/fluxo/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legacyDefinition = `{
	"nodes": [
		{"node_id": "start", "nodeType": "trigger", "position_x": 10, "position_y": 20,
		 "config": {"triggerType": "webhook", "webhookPath": "/in"}},
		{"nodeType": "task", "properties": {"taskTitle": "Revisar", "assignedTo": "ana", "color": "blue"}},
		{"id": 7, "type": "custom", "data": {"type": "notification", "notificationTitle": "Pronto", "notificationMessage": "ok"}},
		{"id": "ghost", "type": "mailer", "data": {"smtp": "mx"}}
	],
	"connections": [
		{"from": "start", "to": "task-2", "source_handle": "x"},
		{"from": "task-2", "to": "7"},
		{"from": "task-2", "to": "missing"}
	]
}`

func TestToEditable_LegacyShapes(t *testing.T) {
	def, err := ToEditable([]byte(legacyDefinition))
	require.NoError(t, err)
	require.Len(t, def.Nodes, 4)

	start := def.Nodes[0]
	assert.Equal(t, "start", start.ID)
	assert.Equal(t, models.NodeTypeTrigger, start.Type)
	assert.Equal(t, models.Position{X: 10, Y: 20}, start.Position)
	assert.Equal(t, "Gatilho", start.Label())
	assert.Equal(t, models.TriggerWebhook, start.Data.(*models.TriggerData).TriggerType)

	task := def.Nodes[1]
	assert.Equal(t, "task-2", task.ID)
	assert.Equal(t, "Revisar", task.Label())
	assert.Equal(t, "blue", task.Data.(*models.TaskData).Extra["color"])
	assert.Equal(t, models.Position{X: 350, Y: 100}, task.Position)

	notification := def.Nodes[2]
	assert.Equal(t, "7", notification.ID)
	assert.Equal(t, models.NodeTypeNotification, notification.Type)
	assert.Equal(t, "Pronto", notification.Label())

	ghost := def.Nodes[3]
	assert.Equal(t, models.NodeType("mailer"), ghost.Type)
	assert.Equal(t, "mailer", ghost.Label())
	assert.Equal(t, "mx", ghost.Data.(*models.UnknownData).Values["smtp"])

	require.Len(t, def.Edges, 2)
	assert.Equal(t, "edge-start-x-task-2", def.Edges[0].ID)
	assert.Equal(t, "x", def.Edges[0].SourceHandle)
	assert.Equal(t, "7", def.Edges[1].Target)
}

func TestToEditable_EmptyAndMissingNodes(t *testing.T) {
	def, err := ToEditable([]byte(`{"nodes": []}`))
	require.NoError(t, err)
	assert.Empty(t, def.Nodes)
	assert.Empty(t, def.Edges)

	_, err = ToEditable([]byte(`{"edges": []}`))
	require.ErrorIs(t, err, ErrMissingNodes)

	_, err = ToEditable([]byte(`{"nodes": null}`))
	require.ErrorIs(t, err, ErrMissingNodes)

	_, err = ToEditable([]byte(`{"nodes": [`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissingNodes)
}

func TestToEditable_DuplicateIDs(t *testing.T) {
	def, err := ToEditable([]byte(`{"nodes": [
		{"id": "a", "type": "trigger"},
		{"id": "a", "type": "task"},
		{"id": "a-2", "type": "delay"}
	]}`))
	require.NoError(t, err)

	ids := []string{def.Nodes[0].ID, def.Nodes[1].ID, def.Nodes[2].ID}
	assert.Equal(t, []string{"a", "a-2", "a-2-2"}, ids)
}

func TestToEditable_DerivedIDsAvoidDeclaredIDs(t *testing.T) {
	def, err := ToEditable([]byte(`{
		"nodes": [
			{"type": "trigger"},
			{"id": "trigger-1", "type": "trigger", "data": {"label": "Declarado"}},
			{"id": "task-1", "type": "task"}
		],
		"edges": [{"source": "trigger-1", "target": "task-1"}]
	}`))
	require.NoError(t, err)
	require.Len(t, def.Nodes, 3)

	assert.Equal(t, "trigger-1-2", def.Nodes[0].ID)
	assert.Equal(t, "trigger-1", def.Nodes[1].ID)
	assert.Equal(t, "Declarado", def.Nodes[1].Label())

	require.Len(t, def.Edges, 1)
	assert.Equal(t, "trigger-1", def.Edges[0].Source)
	assert.Equal(t, "task-1", def.Edges[0].Target)
}

func TestToEditable_TriggerTypeDefaultsToManual(t *testing.T) {
	def, err := ToEditable([]byte(`{"nodes": [
		{"id": "a", "type": "trigger"},
		{"id": "b", "type": "trigger", "data": {"triggerType": "webhook"}}
	]}`))
	require.NoError(t, err)

	assert.Equal(t, models.TriggerManual, def.Nodes[0].Data.(*models.TriggerData).TriggerType)
	assert.Equal(t, models.TriggerWebhook, def.Nodes[1].Data.(*models.TriggerData).TriggerType)
}

func TestToEditable_MistypedValuesSurvive(t *testing.T) {
	def, err := ToEditable([]byte(`{"nodes": [
		{"id": "start", "type": "trigger", "data": {"triggerType": "manual"}},
		{"id": "wait", "type": "delay", "data": {"duration": "5", "unit": "days"}},
		{"id": "review", "type": "task", "data": {"taskTitle": "Aprovar", "assignedTo": 42}}
	]}`))
	require.NoError(t, err)

	delay := def.Nodes[1].Data.(*models.DelayData)
	assert.Equal(t, models.DelayDays, delay.Unit)
	assert.Equal(t, "5", delay.Extra["duration"])

	task := def.Nodes[2].Data.(*models.TaskData)
	assert.Nil(t, task.AssignedTo)
	assert.Equal(t, "Aprovar", task.TaskTitle)
	assert.Equal(t, float64(42), task.Extra["assignedTo"])

	encoded, err := Marshal(FromEditable(def.Nodes, def.Edges))
	require.NoError(t, err)

	var stored struct {
		Nodes []struct {
			Data map[string]any `json:"data"`
		} `json:"nodes"`
	}
	require.NoError(t, json.Unmarshal(encoded, &stored))
	assert.Equal(t, "5", stored.Nodes[1].Data["duration"])
	assert.Equal(t, float64(42), stored.Nodes[2].Data["assignedTo"])

	messages := graph.Validate(def)
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "responsável")
}

func TestToEditable_Deterministic(t *testing.T) {
	first, err := ToEditable([]byte(legacyDefinition))
	require.NoError(t, err)

	second, err := ToEditable([]byte(legacyDefinition))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestToEditable_Idempotent(t *testing.T) {
	first, err := ToEditable([]byte(legacyDefinition))
	require.NoError(t, err)

	encoded, err := Marshal(FromEditable(first.Nodes, first.Edges))
	require.NoError(t, err)

	second, err := ToEditable(encoded)
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)

	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)

	assert.JSONEq(t, string(firstJSON), string(secondJSON))
}

func TestFromEditable_StripsSelection(t *testing.T) {
	nodes := []models.WorkflowNode{{ID: "a", Type: models.NodeTypeTrigger, Data: &models.TriggerData{}, Selected: true}}

	def := FromEditable(nodes, nil)
	assert.False(t, def.Nodes[0].Selected)
	assert.True(t, nodes[0].Selected)
	assert.NotNil(t, def.Edges)
}

func TestCountByType(t *testing.T) {
	nodes := []models.WorkflowNode{
		{ID: "1", Type: models.NodeTypeTask},
		{ID: "2", Type: models.NodeTypeTrigger},
		{ID: "3", Type: models.NodeTypeTask},
		{ID: "4", Type: models.NodeTypeApproval},
		{ID: "5", Type: models.NodeTypeTrigger},
		{ID: "6", Type: models.NodeTypeTask},
	}

	assert.Equal(t, []TypeCount{
		{Type: models.NodeTypeTask, Label: "Tarefa", Count: 3},
		{Type: models.NodeTypeTrigger, Label: "Gatilho", Count: 2},
		{Type: models.NodeTypeApproval, Label: "Aprovação", Count: 1},
	}, CountByType(nodes))

	assert.Empty(t, CountByType(nil))
}
