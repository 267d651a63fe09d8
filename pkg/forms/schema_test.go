package forms

import (
	"testing"

	"github.com/dukex/fluxo/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func submissionForm() *models.Form {
	return &models.Form{
		Title: "Contato",
		Tabs:  []models.Tab{{ID: "t1"}},
		Fields: []models.FormField{
			{ID: "name", Type: models.FieldText, Label: "Nome", Required: true, TabID: "t1",
				Validation: &models.ValidationRules{MaxLength: intPtr(10)}},
			{ID: "email", Type: models.FieldEmail, Label: "E-mail", Required: true, TabID: "t1",
				Validation: &models.ValidationRules{AllowedDomains: []string{"empresa.com.br"}, BlockedDomains: []string{"ext.empresa.com.br"}}},
			{ID: "age", Type: models.FieldNumber, Label: "Idade", TabID: "t1",
				Validation: &models.ValidationRules{Min: floatPtr(18), Max: floatPtr(99)}},
			{ID: "color", Type: models.FieldSelect, Label: "Cor", Options: []string{"Azul", "Verde"}, TabID: "t1"},
			{ID: "code", Type: models.FieldText, Label: "Código", TabID: "t1",
				Validation: &models.ValidationRules{Pattern: `^[A-Z]{3}$`, PatternMessage: "use três letras maiúsculas"}},
			{ID: "docs", Type: models.FieldFile, Label: "Documentos", TabID: "t1",
				Validation: &models.ValidationRules{MaxFiles: intPtr(2), MaxFileSizeMB: floatPtr(1), AllowedFileTypes: []string{"pdf", "image/*"}}},
			{ID: "intro", Type: models.FieldSection, Label: "Intro", TabID: "t1"},
			{ID: "files", Type: models.FieldDownload, Label: "Modelos", TabID: "t1"},
		},
	}
}

func TestJSONSchema(t *testing.T) {
	schema := JSONSchema(submissionForm())

	properties := schema["properties"].(map[string]any)
	assert.Len(t, properties, 6)
	assert.NotContains(t, properties, "intro")
	assert.NotContains(t, properties, "files")
	assert.Equal(t, []string{"name", "email"}, schema["required"])

	email := properties["email"].(map[string]any)
	assert.Equal(t, "email", email["format"])
	assert.Equal(t, 1, email["minLength"])

	docs := properties["docs"].(map[string]any)
	assert.Equal(t, "array", docs["type"])
	assert.Equal(t, 2, docs["maxItems"])
}

func TestValidateSubmission_Valid(t *testing.T) {
	messages, err := ValidateSubmission(submissionForm(), map[string]any{
		"name":  "Ana",
		"email": "ana@empresa.com.br",
		"age":   float64(30),
		"color": "Azul",
		"code":  "",
		"docs": []any{
			map[string]any{"name": "rg.pdf", "size": float64(1000), "type": "application/pdf"},
			map[string]any{"name": "foto", "size": float64(2000), "type": "image/png"},
		},
	})
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestValidateSubmission_Problems(t *testing.T) {
	testCases := []struct {
		name   string
		values map[string]any
		want   string
	}{
		{
			name:   "missing required",
			values: map[string]any{"email": "ana@empresa.com.br"},
			want:   "Nome: campo obrigatório",
		},
		{
			name:   "blank required",
			values: map[string]any{"name": "", "email": "ana@empresa.com.br"},
			want:   "Nome:",
		},
		{
			name:   "too long",
			values: map[string]any{"name": "Maria Aparecida", "email": "m@empresa.com.br"},
			want:   "Nome:",
		},
		{
			name:   "domain not allowed",
			values: map[string]any{"name": "Ana", "email": "ana@gmail.com"},
			want:   `E-mail: domínio "gmail.com" não permitido`,
		},
		{
			name:   "domain blocked",
			values: map[string]any{"name": "Ana", "email": "ana@ext.empresa.com.br"},
			want:   `E-mail: domínio "ext.empresa.com.br" bloqueado`,
		},
		{
			name:   "out of range",
			values: map[string]any{"name": "Ana", "email": "ana@empresa.com.br", "age": float64(12)},
			want:   "Idade:",
		},
		{
			name:   "not an option",
			values: map[string]any{"name": "Ana", "email": "ana@empresa.com.br", "color": "Roxo"},
			want:   "Cor:",
		},
		{
			name:   "pattern message",
			values: map[string]any{"name": "Ana", "email": "ana@empresa.com.br", "code": "ab1"},
			want:   "Código: use três letras maiúsculas",
		},
		{
			name: "too many files",
			values: map[string]any{"name": "Ana", "email": "ana@empresa.com.br", "docs": []any{
				map[string]any{"name": "a.pdf"}, map[string]any{"name": "b.pdf"}, map[string]any{"name": "c.pdf"},
			}},
			want: "Documentos:",
		},
		{
			name: "file too large",
			values: map[string]any{"name": "Ana", "email": "ana@empresa.com.br", "docs": []any{
				map[string]any{"name": "a.pdf", "size": float64(5 * bytesPerMB)},
			}},
			want: `Documentos: arquivo "a.pdf" excede 1 MB`,
		},
		{
			name: "file type",
			values: map[string]any{"name": "Ana", "email": "ana@empresa.com.br", "docs": []any{
				map[string]any{"name": "a.exe", "type": "application/octet-stream"},
			}},
			want: `Documentos: tipo do arquivo "a.exe" não permitido`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			messages, err := ValidateSubmission(submissionForm(), tc.values)
			require.NoError(t, err)
			require.Len(t, messages, 1, messages)
			assert.Contains(t, messages[0], tc.want)
		})
	}
}
