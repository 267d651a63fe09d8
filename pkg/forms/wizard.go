package forms

import (
	"fmt"

	"github.com/dukex/fluxo/pkg/models"
)

const (
	LeadingStepTitle = "Início"
	SingleStepTitle  = "Formulário"
)

// WizardStep is one screen of a sequential fill-in.
type WizardStep struct {
	Title  string             `json:"title"`
	Fields []models.FormField `json:"fields"`
}

// GroupIntoWizardSteps splits fields into steps at every section field. The
// section's label titles its step and the section itself is never part of a
// step. Fields before the first section form a leading step; steps left
// without fields are dropped. Without any section the whole list is a single
// step.
func GroupIntoWizardSteps(fields []models.FormField) []WizardStep {
	hasSection := false

	for _, field := range fields {
		if field.Type == models.FieldSection {
			hasSection = true

			break
		}
	}

	if !hasSection {
		return []WizardStep{{Title: SingleStepTitle, Fields: append([]models.FormField{}, fields...)}}
	}

	steps := []WizardStep{{Title: LeadingStepTitle}}

	for _, field := range fields {
		if field.Type == models.FieldSection {
			title := field.Label
			if !models.HasText(title) {
				title = fmt.Sprintf("Etapa %d", len(steps)+1)
			}

			steps = append(steps, WizardStep{Title: title})

			continue
		}

		last := &steps[len(steps)-1]
		last.Fields = append(last.Fields, field)
	}

	nonEmpty := steps[:0]
	for _, step := range steps {
		if len(step.Fields) > 0 {
			nonEmpty = append(nonEmpty, step)
		}
	}

	if len(nonEmpty) == 0 {
		return []WizardStep{{Title: SingleStepTitle, Fields: []models.FormField{}}}
	}

	return nonEmpty
}
