package registry

import (
	"log/slog"
	"testing"

	"github.com/dukex/fluxo/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterDefaultNodes(t *testing.T) {
	registry := NewRegistry(slog.Default())
	registry.RegisterDefaultNodes()

	descriptors := registry.Nodes()
	require.Len(t, descriptors, len(models.NodeTypes()))

	for i, nodeType := range models.NodeTypes() {
		assert.Equal(t, nodeType, descriptors[i].Type)
		assert.NotEmpty(t, descriptors[i].Label)

		data := registry.DefaultNodeData(nodeType)
		assert.Equal(t, nodeType, data.Kind())
	}
}

func TestDefaultNodeData_TriggerIsManual(t *testing.T) {
	data := Default().DefaultNodeData(models.NodeTypeTrigger)

	trigger, ok := data.(*models.TriggerData)
	require.True(t, ok)
	assert.Equal(t, models.TriggerManual, trigger.TriggerType)
}

func TestDefaultNodeData_ReturnsFreshValues(t *testing.T) {
	first := Default().DefaultNodeData(models.NodeTypeTask).(*models.TaskData)
	first.TaskTitle = "changed"

	second := Default().DefaultNodeData(models.NodeTypeTask).(*models.TaskData)
	assert.Empty(t, second.TaskTitle)
}

func TestDefaultNodeData_UnknownType(t *testing.T) {
	data := Default().DefaultNodeData("custom")

	_, ok := data.(*models.UnknownData)
	assert.True(t, ok)
	assert.Equal(t, "custom", Default().NodeLabel("custom"))
}

func TestNodeHandles(t *testing.T) {
	testCases := []struct {
		nodeType models.NodeType
		handles  []string
	}{
		{models.NodeTypeApproval, []string{"approved", "rejected", "needs_correction", "expired"}},
		{models.NodeTypeCondition, []string{"true", "false"}},
		{models.NodeTypeLoop, []string{"continue", "exit"}},
		{models.NodeTypeTask, nil},
	}

	for _, tc := range testCases {
		t.Run(string(tc.nodeType), func(t *testing.T) {
			descriptor, ok := Default().Node(tc.nodeType)
			require.True(t, ok)
			assert.Equal(t, tc.handles, descriptor.Handles)
		})
	}
}

func TestRegisterDefaultFields(t *testing.T) {
	registry := NewRegistry(slog.Default())
	registry.RegisterDefaultFields()

	descriptors := registry.Fields()
	require.Len(t, descriptors, len(models.FieldTypes()))

	for i, fieldType := range models.FieldTypes() {
		assert.Equal(t, fieldType, descriptors[i].Type)
	}
}

func TestNewField_Defaults(t *testing.T) {
	field, ok := Default().NewField(models.FieldSelect)
	require.True(t, ok)
	assert.Equal(t, "Seleção", field.Label)
	assert.Equal(t, []string{"Opção 1", "Opção 2"}, field.Options)
	assert.Equal(t, models.WidthFull, field.Width)
	assert.Empty(t, field.ID)

	aiField, ok := Default().NewField(models.FieldAISuggest)
	require.True(t, ok)
	require.NotNil(t, aiField.AIConfig)
	assert.Equal(t, models.AITriggerManual, aiField.AIConfig.Trigger)

	_, ok = Default().NewField("hologram")
	assert.False(t, ok)
}

func TestRegisterNode_Replaces(t *testing.T) {
	registry := NewRegistry(slog.Default())
	registry.RegisterNode(NodeDescriptor{Type: models.NodeTypeTask, Label: "A"})
	registry.RegisterNode(NodeDescriptor{Type: models.NodeTypeTask, Label: "B"})

	require.Len(t, registry.Nodes(), 1)
	assert.Equal(t, "B", registry.NodeLabel(models.NodeTypeTask))
}

func TestHealthCheck(t *testing.T) {
	message, ok := NewRegistry(slog.Default()).HealthCheck()
	assert.False(t, ok)
	assert.Equal(t, "Registry has no node or field types", message)

	message, ok = Default().HealthCheck()
	assert.True(t, ok)
	assert.Equal(t, "Registry has 9 node types and 18 field types", message)
}
