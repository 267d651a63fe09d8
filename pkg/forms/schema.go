package forms

import (
	"fmt"
	"net/url"
	"path"
	"slices"
	"strings"

	"github.com/dukex/fluxo/pkg/models"
	"github.com/xeipuuv/gojsonschema"
)

const bytesPerMB = 1024 * 1024

// inputFields returns the fields that collect a value on submission.
func inputFields(form *models.Form) []models.FormField {
	var fields []models.FormField

	for _, field := range form.Fields {
		switch field.Type {
		case models.FieldSection, models.FieldDownload:
			continue
		default:
			fields = append(fields, field)
		}
	}

	return fields
}

// JSONSchema describes the submission payload of a form: an object keyed by
// field id.
func JSONSchema(form *models.Form) map[string]any {
	properties := map[string]any{}
	required := []string{}

	for _, field := range inputFields(form) {
		properties[field.ID] = fieldSchema(field)

		if field.Required && field.Type != models.FieldAISuggest {
			required = append(required, field.ID)
		}
	}

	return map[string]any{
		"$schema":    "http://json-schema.org/draft-07/schema#",
		"title":      form.Title,
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

func fieldSchema(field models.FormField) map[string]any {
	schema := map[string]any{"title": field.Label}
	rules := field.Validation

	switch field.Type {
	case models.FieldNumber:
		schema["type"] = "number"

		if rules != nil && rules.Min != nil {
			schema["minimum"] = *rules.Min
		}

		if rules != nil && rules.Max != nil {
			schema["maximum"] = *rules.Max
		}

		return schema
	case models.FieldSelect, models.FieldRadio:
		schema["type"] = "string"
		if hasOption(field.Options) {
			schema["enum"] = field.Options
		}

		return schema
	case models.FieldCheckbox:
		items := map[string]any{"type": "string"}
		if hasOption(field.Options) {
			items["enum"] = field.Options
		}

		schema["type"] = "array"
		schema["items"] = items
		schema["uniqueItems"] = true

		if field.Required {
			schema["minItems"] = 1
		}

		return schema
	case models.FieldFile:
		schema["type"] = "array"
		schema["items"] = map[string]any{
			"type":     "object",
			"required": []string{"name"},
			"properties": map[string]any{
				"name": map[string]any{"type": "string"},
				"size": map[string]any{"type": "number", "minimum": 0},
				"type": map[string]any{"type": "string"},
				"url":  map[string]any{"type": "string"},
			},
		}

		if field.Required {
			schema["minItems"] = 1
		}

		if rules != nil && rules.MaxFiles != nil {
			schema["maxItems"] = *rules.MaxFiles
		}

		return schema
	case models.FieldEmail:
		schema["format"] = "email"
	case models.FieldURL:
		schema["format"] = "uri"
	case models.FieldDate:
		schema["format"] = "date"
	case models.FieldDateTime:
		schema["format"] = "date-time"
	case models.FieldTime:
		schema["pattern"] = `^([01]\d|2[0-3]):[0-5]\d(:[0-5]\d)?$`
	}

	schema["type"] = "string"

	if field.Required {
		schema["minLength"] = 1
	}

	if rules != nil {
		if rules.MinLength != nil {
			schema["minLength"] = *rules.MinLength
		}

		if rules.MaxLength != nil {
			schema["maxLength"] = *rules.MaxLength
		}

		if rules.Pattern != "" {
			schema["pattern"] = rules.Pattern
		}
	}

	return schema
}

// ValidateSubmission checks submitted values against the form's schema and
// the rules JSON Schema cannot express (domain lists, file size and type).
// It returns one message per problem, prefixed with the field label.
func ValidateSubmission(form *models.Form, values map[string]any) ([]string, error) {
	fields := inputFields(form)
	byID := make(map[string]models.FormField, len(fields))

	for _, field := range fields {
		byID[field.ID] = field
	}

	payload := make(map[string]any, len(values))
	for key, value := range values {
		field, known := byID[key]

		// Blank optional answers are treated as not given.
		if s, ok := value.(string); ok && known && !field.Required && strings.TrimSpace(s) == "" {
			continue
		}

		payload[key] = value
	}

	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(JSONSchema(form)), gojsonschema.NewGoLoader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to validate submission: %w", err)
	}

	var messages []string

	for _, desc := range result.Errors() {
		messages = append(messages, describe(byID, desc))
	}

	for _, field := range fields {
		value, ok := payload[field.ID]
		if !ok || field.Validation == nil {
			continue
		}

		for _, problem := range ruleProblems(field, value) {
			messages = append(messages, fmt.Sprintf("%s: %s", labelOf(field), problem))
		}
	}

	return messages, nil
}

func describe(fields map[string]models.FormField, desc gojsonschema.ResultError) string {
	fieldID := desc.Field()
	if desc.Type() == "required" {
		if property, ok := desc.Details()["property"].(string); ok {
			fieldID = property
		}
	}

	fieldID, _, _ = strings.Cut(fieldID, ".")

	field, ok := fields[fieldID]
	if !ok {
		return desc.String()
	}

	if desc.Type() == "required" {
		return fmt.Sprintf("%s: campo obrigatório", labelOf(field))
	}

	if desc.Type() == "pattern" && field.Validation != nil && field.Validation.PatternMessage != "" {
		return fmt.Sprintf("%s: %s", labelOf(field), field.Validation.PatternMessage)
	}

	return fmt.Sprintf("%s: %s", labelOf(field), desc.Description())
}

func ruleProblems(field models.FormField, value any) []string {
	rules := field.Validation

	var problems []string

	switch field.Type {
	case models.FieldEmail, models.FieldURL:
		s, ok := value.(string)
		if !ok {
			return nil
		}

		domain := domainOf(field.Type, s)
		if domain == "" {
			return nil
		}

		if len(rules.AllowedDomains) > 0 && !matchesDomain(domain, rules.AllowedDomains) {
			problems = append(problems, fmt.Sprintf("domínio %q não permitido", domain))
		}

		if matchesDomain(domain, rules.BlockedDomains) {
			problems = append(problems, fmt.Sprintf("domínio %q bloqueado", domain))
		}
	case models.FieldFile:
		files, ok := value.([]any)
		if !ok {
			return nil
		}

		for _, item := range files {
			file, ok := item.(map[string]any)
			if !ok {
				continue
			}

			name, _ := file["name"].(string)

			if rules.MaxFileSizeMB != nil {
				if size, ok := file["size"].(float64); ok && size > *rules.MaxFileSizeMB*bytesPerMB {
					problems = append(problems, fmt.Sprintf("arquivo %q excede %.0f MB", name, *rules.MaxFileSizeMB))
				}
			}

			if len(rules.AllowedFileTypes) > 0 && !allowedFile(name, file["type"], rules.AllowedFileTypes) {
				problems = append(problems, fmt.Sprintf("tipo do arquivo %q não permitido", name))
			}
		}
	}

	return problems
}

func domainOf(fieldType models.FieldType, value string) string {
	if fieldType == models.FieldEmail {
		_, domain, ok := strings.Cut(value, "@")
		if !ok {
			return ""
		}

		return strings.ToLower(strings.TrimSpace(domain))
	}

	parsed, err := url.Parse(value)
	if err != nil {
		return ""
	}

	return strings.ToLower(parsed.Hostname())
}

// matchesDomain accepts the domain itself and its subdomains.
func matchesDomain(domain string, list []string) bool {
	for _, entry := range list {
		entry = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(entry), "@"))
		if entry == "" {
			continue
		}

		if domain == entry || strings.HasSuffix(domain, "."+entry) {
			return true
		}
	}

	return false
}

func allowedFile(name string, mime any, allowed []string) bool {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	mimeType, _ := mime.(string)

	return slices.ContainsFunc(allowed, func(entry string) bool {
		entry = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(entry), "."))

		if strings.Contains(entry, "/") {
			if base, ok := strings.CutSuffix(entry, "/*"); ok {
				return strings.HasPrefix(strings.ToLower(mimeType), base+"/")
			}

			return strings.EqualFold(mimeType, entry)
		}

		return entry == ext
	})
}

func labelOf(field models.FormField) string {
	if models.HasText(field.Label) {
		return field.Label
	}

	return field.ID
}
