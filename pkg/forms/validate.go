package forms

import (
	"fmt"
	"regexp"

	"github.com/dukex/fluxo/pkg/models"
)

// ValidateField returns the problems of a field's configuration. Section
// fields are dividers and are never reported.
func ValidateField(field models.FormField) []string {
	if field.Type == models.FieldSection {
		return nil
	}

	var messages []string

	if !models.HasText(field.Label) {
		messages = append(messages, "O rótulo do campo é obrigatório")
	}

	if !field.Type.Known() {
		messages = append(messages, fmt.Sprintf("Tipo de campo desconhecido: %q", field.Type))
	}

	if field.Type.HasOptions() && !hasOption(field.Options) {
		messages = append(messages, "Adicione pelo menos uma opção")
	}

	if field.Type == models.FieldDownload && !hasDownload(field.Downloads) {
		messages = append(messages, "Anexe pelo menos um arquivo para download")
	}

	if field.Type == models.FieldAISuggest && (field.AIConfig == nil || field.AIConfig.Task == "") {
		messages = append(messages, "Configure a tarefa da sugestão por IA")
	}

	if rules := field.Validation; rules != nil {
		if rules.Min != nil && rules.Max != nil && *rules.Min > *rules.Max {
			messages = append(messages, "O valor mínimo não pode ser maior que o máximo")
		}

		if rules.MinLength != nil && rules.MaxLength != nil && *rules.MinLength > *rules.MaxLength {
			messages = append(messages, "O tamanho mínimo não pode ser maior que o máximo")
		}

		if rules.Pattern != "" {
			if _, err := regexp.Compile(rules.Pattern); err != nil {
				messages = append(messages, fmt.Sprintf("Expressão regular inválida: %q", rules.Pattern))
			}
		}
	}

	return messages
}

// Validate returns the problems of a whole form. Field messages are prefixed
// with the field label or id.
func Validate(form *models.Form) []string {
	var messages []string

	if !models.HasText(form.Title) {
		messages = append(messages, "O título do formulário é obrigatório")
	}

	if len(form.Tabs) == 0 {
		messages = append(messages, "O formulário precisa de pelo menos uma aba")
	}

	for _, field := range form.Fields {
		name := field.Label
		if !models.HasText(name) {
			name = field.ID
		}

		for _, message := range ValidateField(field) {
			messages = append(messages, fmt.Sprintf("Campo %q: %s", name, message))
		}

		if len(form.Tabs) > 0 && form.TabByID(field.TabID) < 0 {
			messages = append(messages, fmt.Sprintf("Campo %q: aba inexistente %q", name, field.TabID))
		}

		if field.AIConfig != nil {
			for _, source := range field.AIConfig.SourceFieldIDs {
				if form.FieldByID(source) < 0 {
					messages = append(messages, fmt.Sprintf("Campo %q: campo de origem inexistente %q", name, source))
				}
			}
		}
	}

	return messages
}

func hasOption(options []string) bool {
	for _, option := range options {
		if models.HasText(option) {
			return true
		}
	}

	return false
}

func hasDownload(files []models.DownloadFile) bool {
	for _, file := range files {
		if models.HasText(file.URL) {
			return true
		}
	}

	return false
}
