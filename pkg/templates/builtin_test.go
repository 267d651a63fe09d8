package templates

import (
	"testing"
	"testing/fstest"

	"github.com/dukex/fluxo/pkg/graph"
	"github.com/dukex/fluxo/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin_LoadAndValidate(t *testing.T) {
	builtins, err := Builtin()
	require.NoError(t, err)
	require.Len(t, builtins, 3)

	ids := map[string]bool{}

	for _, template := range builtins {
		t.Run(template.Name, func(t *testing.T) {
			assert.True(t, template.IsSystem)
			assert.NotEmpty(t, template.Category)
			assert.False(t, ids[template.ID], "duplicate id")
			ids[template.ID] = true

			def, err := ToEditable(template.WorkflowDefinition)
			require.NoError(t, err)
			assert.NotEmpty(t, def.Nodes)
			assert.Empty(t, graph.Validate(def))
		})
	}
}

func TestBuiltin_LegacyTemplateConverts(t *testing.T) {
	builtins, err := Builtin()
	require.NoError(t, err)

	var legacy *models.WorkflowTemplate

	for _, template := range builtins {
		if template.WorkflowType == models.WorkflowTypeMaintenance {
			legacy = template
		}
	}

	require.NotNil(t, legacy)

	def, err := ToEditable(legacy.WorkflowDefinition)
	require.NoError(t, err)
	require.Len(t, def.Nodes, 5)
	assert.Len(t, def.Edges, 5)
	assert.Equal(t, "Chamado crítico?", def.Nodes[1].Label())
	assert.Equal(t, models.HandleTrue, def.Edges[1].SourceHandle)
}

func TestLoadBuiltin_RejectsMissingNodes(t *testing.T) {
	fsys := fstest.MapFS{
		"tpl/broken.yaml": {Data: []byte("id: x\nname: Broken\nworkflow_definition:\n  edges: []\n")},
	}

	_, err := loadBuiltin(fsys, "tpl")
	require.ErrorIs(t, err, ErrMissingNodes)
}

func TestLoadBuiltin_RequiresID(t *testing.T) {
	fsys := fstest.MapFS{
		"tpl/noid.yaml": {Data: []byte("name: No id\nworkflow_definition:\n  nodes: []\n")},
	}

	_, err := loadBuiltin(fsys, "tpl")
	require.Error(t, err)
}
