// Package forms edits the field and tab layout of a form.
package forms

import (
	"errors"
	"fmt"
	"slices"

	"github.com/dukex/fluxo/pkg/models"
	"github.com/dukex/fluxo/pkg/registry"
	"github.com/google/uuid"
)

var (
	ErrLastTab          = errors.New("cannot delete the last tab")
	ErrUnknownTab       = errors.New("unknown tab")
	ErrUnknownField     = errors.New("unknown field")
	ErrUnknownFieldType = errors.New("unknown field type")
	ErrIndexOutOfRange  = errors.New("index out of range")
)

const (
	DefaultTabTitle = "Geral"
	copySuffix      = " (cópia)"
)

// Builder owns the in-memory form being edited together with the active
// tab and the selected field. It is not safe for concurrent use.
type Builder struct {
	registry  *registry.Registry
	newID     func() string
	form      *models.Form
	activeTab string
	selected  string
}

type Option func(*Builder)

// WithIDGenerator overrides how field and tab ids are generated.
func WithIDGenerator(newID func() string) Option {
	return func(b *Builder) {
		b.newID = newID
	}
}

func WithRegistry(r *registry.Registry) Option {
	return func(b *Builder) {
		b.registry = r
	}
}

// NewBuilder edits form in place. A form without tabs gets a default tab and
// fields without a known tab are assigned to the first tab.
func NewBuilder(form *models.Form, opts ...Option) *Builder {
	b := &Builder{
		registry: registry.Default(),
		newID:    uuid.NewString,
		form:     form,
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.form == nil {
		b.form = &models.Form{}
	}

	b.normalize()

	return b
}

// NewForm returns an empty form with a single default tab.
func NewForm(opts ...Option) *models.Form {
	return NewBuilder(nil, opts...).Form()
}

func (b *Builder) normalize() {
	if len(b.form.Tabs) == 0 {
		b.form.Tabs = []models.Tab{{ID: b.newID(), Title: DefaultTabTitle}}
	}

	first := b.form.Tabs[0].ID
	for i := range b.form.Fields {
		if b.form.TabByID(b.form.Fields[i].TabID) < 0 {
			b.form.Fields[i].TabID = first
		}
	}

	if b.form.Fields == nil {
		b.form.Fields = []models.FormField{}
	}

	b.activeTab = first
}

func (b *Builder) Form() *models.Form {
	return b.form
}

func (b *Builder) ActiveTab() string {
	return b.activeTab
}

func (b *Builder) SetActiveTab(tabID string) error {
	if b.form.TabByID(tabID) < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownTab, tabID)
	}

	b.activeTab = tabID

	return nil
}

// Selected returns the id of the selected field, or "".
func (b *Builder) Selected() string {
	return b.selected
}

func (b *Builder) SelectField(fieldID string) error {
	if fieldID != "" && b.form.FieldByID(fieldID) < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownField, fieldID)
	}

	b.selected = fieldID

	return nil
}

// TabFields returns the fields of a tab in display order.
func (b *Builder) TabFields(tabID string) []models.FormField {
	var fields []models.FormField

	for _, field := range b.form.Fields {
		if field.TabID == tabID {
			fields = append(fields, field)
		}
	}

	return fields
}

// AddField appends a field of type t with its type defaults to the active tab
// and selects it.
func (b *Builder) AddField(t models.FieldType) (*models.FormField, error) {
	field, ok := b.registry.NewField(t)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFieldType, t)
	}

	field.ID = b.newID()
	field.TabID = b.activeTab

	b.form.Fields = append(b.form.Fields, field)
	b.selected = field.ID

	return &b.form.Fields[len(b.form.Fields)-1], nil
}

// UpdateField replaces a field's attributes, keeping its id.
func (b *Builder) UpdateField(field models.FormField) error {
	i := b.form.FieldByID(field.ID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownField, field.ID)
	}

	if b.form.TabByID(field.TabID) < 0 {
		field.TabID = b.form.Fields[i].TabID
	}

	b.form.Fields[i] = field

	return nil
}

// DuplicateField inserts a copy of a field right after it. The copy gets a new
// id and a label marked as a copy; every other attribute is cloned.
func (b *Builder) DuplicateField(fieldID string) (*models.FormField, error) {
	i := b.form.FieldByID(fieldID)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, fieldID)
	}

	duplicate := b.form.Fields[i].Clone()
	duplicate.ID = b.newID()
	duplicate.Label = b.form.Fields[i].Label + copySuffix

	b.form.Fields = slices.Insert(b.form.Fields, i+1, duplicate)
	b.selected = duplicate.ID

	return &b.form.Fields[i+1], nil
}

// RemoveField deletes a field, clearing the selection if it pointed at it.
func (b *Builder) RemoveField(fieldID string) error {
	i := b.form.FieldByID(fieldID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownField, fieldID)
	}

	b.form.Fields = slices.Delete(b.form.Fields, i, i+1)

	if b.selected == fieldID {
		b.selected = ""
	}

	return nil
}

// ReorderWithinTab moves the field at index from to index to inside the tab's
// own sublist. Fields of other tabs keep their positions in the flat list.
func (b *Builder) ReorderWithinTab(tabID string, from, to int) error {
	if b.form.TabByID(tabID) < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownTab, tabID)
	}

	var positions []int

	for i, field := range b.form.Fields {
		if field.TabID == tabID {
			positions = append(positions, i)
		}
	}

	if from < 0 || from >= len(positions) || to < 0 || to >= len(positions) {
		return fmt.Errorf("%w: move %d to %d in a tab of %d fields", ErrIndexOutOfRange, from, to, len(positions))
	}

	if from == to {
		return nil
	}

	sub := make([]models.FormField, len(positions))
	for i, pos := range positions {
		sub[i] = b.form.Fields[pos]
	}

	moved := sub[from]
	sub = slices.Delete(sub, from, from+1)
	sub = slices.Insert(sub, to, moved)

	for i, pos := range positions {
		b.form.Fields[pos] = sub[i]
	}

	return nil
}

// MoveFieldToTab reassigns a field to another tab without changing its
// position in the flat list.
func (b *Builder) MoveFieldToTab(fieldID, tabID string) error {
	i := b.form.FieldByID(fieldID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownField, fieldID)
	}

	if b.form.TabByID(tabID) < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownTab, tabID)
	}

	b.form.Fields[i].TabID = tabID

	return nil
}

// AddTab appends a tab and makes it active.
func (b *Builder) AddTab(title string) models.Tab {
	if !models.HasText(title) {
		title = fmt.Sprintf("Aba %d", len(b.form.Tabs)+1)
	}

	tab := models.Tab{ID: b.newID(), Title: title}
	b.form.Tabs = append(b.form.Tabs, tab)
	b.activeTab = tab.ID

	return tab
}

func (b *Builder) RenameTab(tabID, title string) error {
	i := b.form.TabByID(tabID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownTab, tabID)
	}

	b.form.Tabs[i].Title = title

	return nil
}

// DeleteTab removes a tab after moving its fields to the first remaining tab.
// The last tab cannot be deleted.
func (b *Builder) DeleteTab(tabID string) error {
	i := b.form.TabByID(tabID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownTab, tabID)
	}

	if len(b.form.Tabs) <= 1 {
		return ErrLastTab
	}

	b.form.Tabs = slices.Delete(b.form.Tabs, i, i+1)
	target := b.form.Tabs[0].ID

	for j := range b.form.Fields {
		if b.form.Fields[j].TabID == tabID {
			b.form.Fields[j].TabID = target
		}
	}

	if b.activeTab == tabID {
		b.activeTab = target
	}

	return nil
}
