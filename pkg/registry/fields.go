package registry

import "github.com/dukex/fluxo/pkg/models"

func withOptions(field *models.FormField) {
	field.Options = []string{"Opção 1", "Opção 2"}
}

// RegisterDefaultFields registers the built-in field types in palette order.
func (r *Registry) RegisterDefaultFields() {
	basic := []struct {
		fieldType models.FieldType
		label     string
		icon      string
	}{
		{models.FieldText, "Texto", "type"},
		{models.FieldEmail, "E-mail", "mail"},
		{models.FieldNumber, "Número", "hash"},
		{models.FieldDate, "Data", "calendar"},
		{models.FieldDateTime, "Data e hora", "calendar-clock"},
		{models.FieldTime, "Hora", "clock"},
		{models.FieldTel, "Telefone", "phone"},
		{models.FieldURL, "URL", "link"},
	}

	for _, b := range basic {
		r.RegisterField(FieldDescriptor{
			Type:         b.fieldType,
			Label:        b.label,
			Icon:         b.icon,
			Category:     FieldCategoryBasic,
			DefaultLabel: b.label,
			DefaultWidth: models.WidthFull,
		})
	}

	r.RegisterField(FieldDescriptor{
		Type:         models.FieldTextarea,
		Label:        "Texto longo",
		Icon:         "align-left",
		Category:     FieldCategoryBasic,
		DefaultLabel: "Texto longo",
		DefaultWidth: models.WidthFull,
	})

	r.RegisterField(FieldDescriptor{
		Type:         models.FieldSelect,
		Label:        "Lista de seleção",
		Icon:         "chevron-down",
		Category:     FieldCategoryChoice,
		DefaultLabel: "Seleção",
		DefaultWidth: models.WidthFull,
		defaults:     withOptions,
	})

	r.RegisterField(FieldDescriptor{
		Type:         models.FieldRadio,
		Label:        "Escolha única",
		Icon:         "circle-dot",
		Category:     FieldCategoryChoice,
		DefaultLabel: "Escolha única",
		DefaultWidth: models.WidthFull,
		defaults:     withOptions,
	})

	r.RegisterField(FieldDescriptor{
		Type:         models.FieldCheckbox,
		Label:        "Múltipla escolha",
		Icon:         "check-square",
		Category:     FieldCategoryChoice,
		DefaultLabel: "Múltipla escolha",
		DefaultWidth: models.WidthFull,
		defaults:     withOptions,
	})

	r.RegisterField(FieldDescriptor{
		Type:         models.FieldFile,
		Label:        "Arquivo",
		Icon:         "paperclip",
		Category:     FieldCategoryAdvanced,
		DefaultLabel: "Anexo",
		DefaultWidth: models.WidthFull,
		defaults: func(field *models.FormField) {
			maxFiles := 1
			maxSize := 10.0
			field.Validation = &models.ValidationRules{MaxFiles: &maxFiles, MaxFileSizeMB: &maxSize}
		},
	})

	r.RegisterField(FieldDescriptor{
		Type:         models.FieldDownload,
		Label:        "Download",
		Icon:         "download",
		Category:     FieldCategoryAdvanced,
		DefaultLabel: "Arquivos para download",
		DefaultWidth: models.WidthFull,
	})

	r.RegisterField(FieldDescriptor{
		Type:         models.FieldSignature,
		Label:        "Assinatura",
		Icon:         "pen-tool",
		Category:     FieldCategoryAdvanced,
		DefaultLabel: "Assinatura",
		DefaultWidth: models.WidthFull,
	})

	r.RegisterField(FieldDescriptor{
		Type:         models.FieldRichText,
		Label:        "Texto formatado",
		Icon:         "bold",
		Category:     FieldCategoryAdvanced,
		DefaultLabel: "Texto formatado",
		DefaultWidth: models.WidthFull,
	})

	r.RegisterField(FieldDescriptor{
		Type:         models.FieldAISuggest,
		Label:        "Sugestão por IA",
		Icon:         "sparkles",
		Category:     FieldCategoryAdvanced,
		DefaultLabel: "Sugestão",
		DefaultWidth: models.WidthFull,
		defaults: func(field *models.FormField) {
			field.AIConfig = &models.AIConfig{
				Task:       models.AITaskSuggest,
				OutputType: models.AIOutputText,
				Trigger:    models.AITriggerManual,
				Visible:    true,
			}
		},
	})

	r.RegisterField(FieldDescriptor{
		Type:         models.FieldSection,
		Label:        "Seção",
		Icon:         "minus",
		Category:     FieldCategoryLayout,
		DefaultLabel: "Nova seção",
		DefaultWidth: models.WidthFull,
	})
}
