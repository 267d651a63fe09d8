package models

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflowNode_UnmarshalJSON_TypedData(t *testing.T) {
	raw := `{
		"id": "task-1",
		"type": "task",
		"position": {"x": 120, "y": 40},
		"data": {"taskTitle": "Revisar contrato", "assignedTo": "ana", "priority": "high", "dueInDays": 3}
	}`

	var node WorkflowNode
	require.NoError(t, json.Unmarshal([]byte(raw), &node))

	assert.Equal(t, NodeTypeTask, node.Type)
	assert.Equal(t, Position{X: 120, Y: 40}, node.Position)

	task, ok := node.Data.(*TaskData)
	require.True(t, ok)
	assert.Equal(t, "Revisar contrato", task.TaskTitle)
	require.NotNil(t, task.AssignedTo)
	assert.Equal(t, "ana", *task.AssignedTo)
	assert.Equal(t, PriorityHigh, task.Priority)
	assert.Equal(t, 3, task.DueInDays)
	assert.Equal(t, "Revisar contrato", node.Label())
}

func TestWorkflowNode_ExtraKeysSurviveRoundTrip(t *testing.T) {
	raw := `{"id":"n1","type":"approval","position":{"x":0,"y":0},
		"data":{"approvalFormat":"all","expirationHours":48,"color":"#ff0000","escalation":{"after":2}}}`

	var node WorkflowNode
	require.NoError(t, json.Unmarshal([]byte(raw), &node))

	approval, ok := node.Data.(*ApprovalData)
	require.True(t, ok)
	assert.Equal(t, ApprovalAll, approval.ApprovalFormat)
	assert.Equal(t, "#ff0000", approval.Extra["color"])

	out, err := json.Marshal(node)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))

	data := decoded["data"].(map[string]any)
	assert.Equal(t, "#ff0000", data["color"])
	assert.Equal(t, map[string]any{"after": float64(2)}, data["escalation"])
	assert.Equal(t, float64(48), data["expirationHours"])
}

func TestWorkflowNode_MistypedValueKeptAsExtra(t *testing.T) {
	raw := `{"id":"d1","type":"delay","position":{"x":0,"y":0},
		"data":{"duration":"two","unit":"hours","label":"Espera"}}`

	var node WorkflowNode
	require.NoError(t, json.Unmarshal([]byte(raw), &node))

	delay, ok := node.Data.(*DelayData)
	require.True(t, ok)
	assert.Equal(t, 0, delay.Duration)
	assert.Equal(t, DelayHours, delay.Unit)
	assert.Equal(t, "Espera", delay.Label)
	assert.Equal(t, "two", delay.Extra["duration"])
}

func TestWorkflowNode_MistypedValueSurvivesRoundTrip(t *testing.T) {
	raw := `{"id":"t1","type":"task","position":{"x":0,"y":0},
		"data":{"taskTitle":"Aprovar","assignedTo":42,"dueInDays":"3"}}`

	var node WorkflowNode
	require.NoError(t, json.Unmarshal([]byte(raw), &node))

	task := node.Data.(*TaskData)
	assert.Nil(t, task.AssignedTo)
	assert.Equal(t, 0, task.DueInDays)

	data, err := DataToMap(node.Data)
	require.NoError(t, err)
	assert.Equal(t, float64(42), data["assignedTo"])
	assert.Equal(t, "3", data["dueInDays"])

	assignee := "ana"
	task.AssignedTo = &assignee

	data, err = DataToMap(node.Data)
	require.NoError(t, err)
	assert.Equal(t, "ana", data["assignedTo"])
}

func TestWorkflowNode_UnknownTypePassthrough(t *testing.T) {
	raw := `{"id":"x1","type":"legacy_mailer","position":{"x":5,"y":6},"data":{"label":"Mailer","smtp":"mx"}}`

	var node WorkflowNode
	require.NoError(t, json.Unmarshal([]byte(raw), &node))

	assert.False(t, node.Type.Known())

	unknown, ok := node.Data.(*UnknownData)
	require.True(t, ok)
	assert.Equal(t, NodeType("legacy_mailer"), unknown.Kind())
	assert.Equal(t, "Mailer", node.Label())

	out, err := json.Marshal(node)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}

func TestWorkflowNode_Clone_IsDeep(t *testing.T) {
	node := WorkflowNode{
		ID:   "n1",
		Type: NodeTypeNotification,
		Data: &NotificationData{NotificationTitle: "Oi", Recipients: []string{"a"}},
	}

	clone := node.Clone()
	clone.Data.(*NotificationData).Recipients[0] = "b"
	clone.Data.(*NotificationData).NotificationTitle = "Tchau"

	original := node.Data.(*NotificationData)
	assert.Equal(t, "a", original.Recipients[0])
	assert.Equal(t, "Oi", original.NotificationTitle)
}

func TestNewNodeData_EveryKnownType(t *testing.T) {
	for _, nodeType := range NodeTypes() {
		t.Run(string(nodeType), func(t *testing.T) {
			data := NewNodeData(nodeType)
			assert.Equal(t, nodeType, data.Kind())

			_, unknown := data.(*UnknownData)
			assert.False(t, unknown)
		})
	}
}

func TestWorkflowEdge_Validation(t *testing.T) {
	validate := validator.New()

	testCases := []struct {
		name    string
		edge    WorkflowEdge
		wantErr bool
	}{
		{
			name: "valid edge with handle",
			edge: WorkflowEdge{ID: "e1", Source: "a", Target: "b", SourceHandle: HandleApproved},
		},
		{
			name:    "missing source",
			edge:    WorkflowEdge{ID: "e1", Target: "b"},
			wantErr: true,
		},
		{
			name:    "missing target",
			edge:    WorkflowEdge{ID: "e1", Source: "a"},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validate.Struct(tc.edge)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWorkflowEdge_Touches(t *testing.T) {
	edge := WorkflowEdge{ID: "e1", Source: "a", Target: "b"}

	assert.True(t, edge.Touches("a"))
	assert.True(t, edge.Touches("b"))
	assert.False(t, edge.Touches("c"))
}
