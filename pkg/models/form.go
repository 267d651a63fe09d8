package models

import "time"

// FieldType identifies the kind of a form field.
type FieldType string

const (
	FieldText      FieldType = "text"
	FieldEmail     FieldType = "email"
	FieldNumber    FieldType = "number"
	FieldDate      FieldType = "date"
	FieldDateTime  FieldType = "datetime"
	FieldTime      FieldType = "time"
	FieldTel       FieldType = "tel"
	FieldURL       FieldType = "url"
	FieldTextarea  FieldType = "textarea"
	FieldSelect    FieldType = "select"
	FieldRadio     FieldType = "radio"
	FieldCheckbox  FieldType = "checkbox"
	FieldFile      FieldType = "file"
	FieldDownload  FieldType = "download"
	FieldSignature FieldType = "signature"
	FieldRichText  FieldType = "richtext"
	FieldAISuggest FieldType = "ai-suggest"
	FieldSection   FieldType = "section"
)

// FieldTypes lists every field type in palette order.
func FieldTypes() []FieldType {
	return []FieldType{
		FieldText, FieldEmail, FieldNumber, FieldDate, FieldDateTime, FieldTime,
		FieldTel, FieldURL, FieldTextarea, FieldSelect, FieldRadio, FieldCheckbox,
		FieldFile, FieldDownload, FieldSignature, FieldRichText, FieldAISuggest,
		FieldSection,
	}
}

// Known reports whether t is one of the built-in field types.
func (t FieldType) Known() bool {
	for _, known := range FieldTypes() {
		if t == known {
			return true
		}
	}

	return false
}

// HasOptions reports whether the field type picks from a list of options.
func (t FieldType) HasOptions() bool {
	return t == FieldSelect || t == FieldRadio || t == FieldCheckbox
}

// Width is the horizontal share of a row a field takes.
type Width string

const (
	WidthQuarter Width = "quarter"
	WidthHalf    Width = "half"
	WidthFull    Width = "full"
)

// ValidationRules hold the per-field input constraints. Only the rules that
// make sense for the field type are consulted.
type ValidationRules struct {
	Min              *float64 `json:"min,omitempty"`
	Max              *float64 `json:"max,omitempty"`
	MinLength        *int     `json:"minLength,omitempty"`
	MaxLength        *int     `json:"maxLength,omitempty"`
	Pattern          string   `json:"pattern,omitempty"`
	PatternMessage   string   `json:"patternMessage,omitempty"`
	AllowedFileTypes []string `json:"allowedFileTypes,omitempty"`
	MaxFileSizeMB    *float64 `json:"maxFileSizeMb,omitempty"`
	MaxFiles         *int     `json:"maxFiles,omitempty"`
	AllowedDomains   []string `json:"allowedDomains,omitempty"`
	BlockedDomains   []string `json:"blockedDomains,omitempty"`
	Unique           bool     `json:"unique,omitempty"`
}

// AITask is what an ai-suggest field asks the model to do.
type AITask string

const (
	AITaskSummarize AITask = "summarize"
	AITaskClassify  AITask = "classify"
	AITaskExtract   AITask = "extract"
	AITaskTranslate AITask = "translate"
	AITaskSuggest   AITask = "suggest"
)

type AIOutputType string

const (
	AIOutputText   AIOutputType = "text"
	AIOutputList   AIOutputType = "list"
	AIOutputNumber AIOutputType = "number"
)

type AITrigger string

const (
	AITriggerManual   AITrigger = "manual"
	AITriggerOnChange AITrigger = "on_change"
	AITriggerOnSubmit AITrigger = "on_submit"
)

// AIConfig configures an ai-suggest field.
type AIConfig struct {
	SourceFieldIDs []string     `json:"sourceFieldIds"`
	Task           AITask       `json:"task"`
	Instructions   string       `json:"instructions,omitempty"`
	OutputType     AIOutputType `json:"outputType"`
	Trigger        AITrigger    `json:"trigger"`
	Visible        bool         `json:"visible"`
}

// DownloadFile is a file offered by a download field.
type DownloadFile struct {
	URL  string `json:"url"`
	Name string `json:"name"`
	Note string `json:"note,omitempty"`
}

// FormField is a typed input unit of a form.
type FormField struct {
	ID          string           `json:"id"`
	Type        FieldType        `json:"type"`
	Label       string           `json:"label"`
	TabID       string           `json:"tabId,omitempty"`
	Required    bool             `json:"required"`
	Width       Width            `json:"width,omitempty"`
	Placeholder string           `json:"placeholder,omitempty"`
	HelpText    string           `json:"helpText,omitempty"`
	Options     []string         `json:"options,omitempty"`
	Validation  *ValidationRules `json:"validation,omitempty"`
	Formatting  *NumericFormat   `json:"formatting,omitempty"`
	AIConfig    *AIConfig        `json:"aiConfig,omitempty"`
	Downloads   []DownloadFile   `json:"downloads,omitempty"`
}

// Clone returns a deep copy of the field.
func (f FormField) Clone() FormField {
	out := f

	if f.Options != nil {
		out.Options = append([]string(nil), f.Options...)
	}

	if f.Validation != nil {
		v := *f.Validation
		v.AllowedFileTypes = append([]string(nil), f.Validation.AllowedFileTypes...)
		v.AllowedDomains = append([]string(nil), f.Validation.AllowedDomains...)
		v.BlockedDomains = append([]string(nil), f.Validation.BlockedDomains...)
		out.Validation = &v
	}

	if f.Formatting != nil {
		v := *f.Formatting
		out.Formatting = &v
	}

	if f.AIConfig != nil {
		v := *f.AIConfig
		v.SourceFieldIDs = append([]string(nil), f.AIConfig.SourceFieldIDs...)
		out.AIConfig = &v
	}

	if f.Downloads != nil {
		out.Downloads = append([]DownloadFile(nil), f.Downloads...)
	}

	return out
}

// Tab is a named partition of a form's fields.
type Tab struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Form is the persisted form aggregate. Fields are kept in one flat list and
// assigned to tabs by TabID.
type Form struct {
	AccessControl

	ID          string      `json:"id"`
	Title       string      `json:"title"        validate:"required"`
	Description string      `json:"description"`
	Fields      []FormField `json:"fields"`
	Tabs        []Tab       `json:"tabs"         validate:"min=1"`
	IsPublished bool        `json:"is_published"`
	Owner       string      `json:"owner"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (f *Form) GetID() string           { return f.ID }
func (f *Form) GetOwner() string        { return f.Owner }
func (f *Form) RecordType() string      { return "form" }
func (f *Form) GetName() string         { return f.Title }
func (f *Form) GetCreatedAt() time.Time { return f.CreatedAt }
func (f *Form) GetUpdatedAt() time.Time { return f.UpdatedAt }
func (f *Form) SetID(id string)         { f.ID = id }
func (f *Form) Stamp(now time.Time)     { stamp(&f.CreatedAt, &f.UpdatedAt, now) }

// FieldByID returns the index of the field with id, or -1.
func (f *Form) FieldByID(id string) int {
	for i := range f.Fields {
		if f.Fields[i].ID == id {
			return i
		}
	}

	return -1
}

// TabByID returns the index of the tab with id, or -1.
func (f *Form) TabByID(id string) int {
	for i := range f.Tabs {
		if f.Tabs[i].ID == id {
			return i
		}
	}

	return -1
}

// Clone returns a deep copy of the form.
func (f *Form) Clone() *Form {
	out := *f
	out.Tabs = append([]Tab(nil), f.Tabs...)
	out.Fields = make([]FormField, len(f.Fields))

	for i, field := range f.Fields {
		out.Fields[i] = field.Clone()
	}

	out.AllowedUsers = append([]string(nil), f.AllowedUsers...)
	out.AllowedDepartments = append([]string(nil), f.AllowedDepartments...)
	out.AllowedRoles = append([]string(nil), f.AllowedRoles...)

	return &out
}
