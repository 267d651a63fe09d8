package models

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflow_Validation(t *testing.T) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	testCases := []struct {
		name     string
		workflow Workflow
		wantErr  bool
	}{
		{
			name:     "valid",
			workflow: Workflow{Name: "Compras", WorkflowType: WorkflowTypePurchase, Priority: PriorityHigh},
		},
		{
			name:     "name too short",
			workflow: Workflow{Name: "ab"},
			wantErr:  true,
		},
		{
			name:     "unknown workflow type",
			workflow: Workflow{Name: "Compras", WorkflowType: "other"},
			wantErr:  true,
		},
		{
			name: "unknown confidentiality",
			workflow: Workflow{
				Name:          "Compras",
				AccessControl: AccessControl{ConfidentialityLevel: "secret"},
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validate.Struct(&tc.workflow)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWorkflow_JSONShape(t *testing.T) {
	workflow := Workflow{
		ID:   "wf-1",
		Name: "Onboarding",
		AccessControl: AccessControl{
			ConfidentialityLevel: ConfidentialityPrivate,
			AllowedUsers:         []string{"u1"},
		},
		WorkflowDefinition: Definition{
			Nodes: []WorkflowNode{{ID: "t1", Type: NodeTypeTrigger, Data: &TriggerData{TriggerType: TriggerManual}}},
			Edges: []WorkflowEdge{},
		},
	}

	out, err := json.Marshal(workflow)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))

	assert.Equal(t, "private", decoded["confidentiality_level"])
	assert.Equal(t, []any{"u1"}, decoded["allowed_users"])

	definition := decoded["workflow_definition"].(map[string]any)
	nodes := definition["nodes"].([]any)
	require.Len(t, nodes, 1)
	assert.Equal(t, "manual", nodes[0].(map[string]any)["data"].(map[string]any)["triggerType"])

	var back Workflow
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Len(t, back.TriggerNodes(), 1)
}

func TestNormalizeTags(t *testing.T) {
	assert.Equal(t, []string{"rh", "financeiro"}, NormalizeTags([]string{" rh", "", "financeiro", "rh ", "  "}))
	assert.Empty(t, NormalizeTags(nil))
}

func TestFormField_Clone_IsDeep(t *testing.T) {
	maxFiles := 2
	field := FormField{
		ID:         "f1",
		Type:       FieldFile,
		Options:    []string{"a"},
		Validation: &ValidationRules{MaxFiles: &maxFiles, AllowedFileTypes: []string{"pdf"}},
		AIConfig:   &AIConfig{SourceFieldIDs: []string{"x"}},
	}

	clone := field.Clone()
	clone.Options[0] = "b"
	clone.Validation.AllowedFileTypes[0] = "png"
	clone.AIConfig.SourceFieldIDs[0] = "y"

	assert.Equal(t, "a", field.Options[0])
	assert.Equal(t, "pdf", field.Validation.AllowedFileTypes[0])
	assert.Equal(t, "x", field.AIConfig.SourceFieldIDs[0])
}

func TestForm_Lookups(t *testing.T) {
	form := &Form{
		Tabs:   []Tab{{ID: "t1"}, {ID: "t2"}},
		Fields: []FormField{{ID: "a"}, {ID: "b"}},
	}

	assert.Equal(t, 1, form.TabByID("t2"))
	assert.Equal(t, -1, form.TabByID("t3"))
	assert.Equal(t, 0, form.FieldByID("a"))
	assert.Equal(t, -1, form.FieldByID("z"))
}

func TestFieldType_HasOptions(t *testing.T) {
	for _, fieldType := range FieldTypes() {
		want := fieldType == FieldSelect || fieldType == FieldRadio || fieldType == FieldCheckbox
		assert.Equal(t, want, fieldType.HasOptions(), fieldType)
	}

	assert.Len(t, FieldTypes(), 18)
}

func TestCurrencyFormat_Presets(t *testing.T) {
	brl := CurrencyFormat("BRL")
	assert.Equal(t, "R$", brl.CurrencySymbol)
	assert.Equal(t, ",", brl.DecimalSeparator)
	assert.Equal(t, ".", brl.ThousandsSeparator)
	assert.Equal(t, 2, brl.Decimals)
	assert.Equal(t, SymbolBefore, brl.SymbolPosition)

	usd := CurrencyFormat("USD")
	assert.Equal(t, "$", usd.CurrencySymbol)
	assert.Equal(t, ".", usd.DecimalSeparator)

	other := CurrencyFormat("ARS")
	assert.Equal(t, "ARS", other.CurrencySymbol)
	assert.Equal(t, ",", other.DecimalSeparator)
}

func TestDefaultNumericFormat_Masks(t *testing.T) {
	testCases := map[NumericSubtype]string{
		SubtypeCPF:   "000.000.000-00",
		SubtypeCNPJ:  "00.000.000/0000-00",
		SubtypeCEP:   "00000-000",
		SubtypePhone: "(00) 00000-0000",
	}

	for subtype, mask := range testCases {
		cfg := DefaultNumericFormat(subtype)
		assert.True(t, subtype.IsMasked())
		assert.Equal(t, mask, cfg.Mask)
	}

	assert.False(t, SubtypeDecimal.IsMasked())
	assert.Equal(t, 0, DefaultNumericFormat(SubtypeInteger).Decimals)
}

func TestProduct_TaxonomyIDs(t *testing.T) {
	product := &Product{Names: map[string]string{"en": "Valve"}}

	for _, kind := range TaxonomyKinds() {
		product.SetTaxonomyIDs(kind, []string{string(kind) + "-1"})
	}

	assert.Equal(t, []string{"family-1"}, product.TaxonomyIDs(TaxonomyFamily))
	assert.Equal(t, []string{"group-1"}, product.TaxonomyIDs(TaxonomyGroup))
	assert.Equal(t, "Valve", product.GetName())
}
