package editor

import (
	"context"
	"fmt"

	"github.com/dukex/fluxo/pkg/drafts"
	"github.com/dukex/fluxo/pkg/forms"
	"github.com/dukex/fluxo/pkg/models"
)

// FormService is what a form session needs from the form service.
type FormService interface {
	FetchByID(ctx context.Context, id string) (*models.Form, error)
	Save(ctx context.Context, actor string, form *models.Form) (*models.Form, error)
}

// FormSession edits one form. It is not safe for concurrent use.
type FormSession struct {
	service   FormService
	slot      *draftSlot
	cfg       config
	builder   *forms.Builder
	builderOp []forms.Option
	fromDraft bool
}

// OpenForm starts editing the form with id, or a new one when id is blank,
// with the same draft precedence as OpenWorkflow.
func OpenForm(ctx context.Context, service FormService, store drafts.Store, id string, opts ...Option) (*FormSession, error) {
	return OpenFormWith(ctx, service, store, id, nil, opts...)
}

// OpenFormWith is OpenForm with builder options, such as a fixed id generator.
func OpenFormWith(
	ctx context.Context,
	service FormService,
	store drafts.Store,
	id string,
	builderOpts []forms.Option,
	opts ...Option,
) (*FormSession, error) {
	cfg := newConfig(opts)
	key := drafts.FormKey(id)

	s := &FormSession{
		service:   service,
		slot:      newDraftSlot(store, key, cfg),
		cfg:       cfg,
		builderOp: builderOpts,
	}

	var (
		form   *models.Form
		exists bool
	)

	if !key.IsNew() {
		stored, err := service.FetchByID(ctx, id)
		if err != nil {
			return nil, err
		}

		form = stored
		exists = true
	}

	var draft models.Form

	found, err := drafts.Resolve(ctx, store, s.slot.buffer.Key(), exists, &draft)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve form draft: %w", err)
	}

	if found {
		form = &draft
		s.fromDraft = true
	}

	s.builder = forms.NewBuilder(form, builderOpts...)

	return s, nil
}

func (s *FormSession) FromDraft() bool {
	return s.fromDraft
}

func (s *FormSession) DraftKey() drafts.Key {
	return s.slot.buffer.Key()
}

func (s *FormSession) Dirty() bool {
	return s.slot.buffer.Dirty()
}

// Builder exposes the builder for reads and editor-only state such as the
// active tab and selection. Changes to the form must go through the session.
func (s *FormSession) Builder() *forms.Builder {
	return s.builder
}

// Snapshot returns a copy of the form as it would be saved now.
func (s *FormSession) Snapshot() *models.Form {
	return s.builder.Form().Clone()
}

func (s *FormSession) mark() error {
	return s.slot.buffer.Mark(s.builder.Form())
}

// Edit applies fn to the form details and marks the draft.
func (s *FormSession) Edit(fn func(form *models.Form) error) error {
	err := fn(s.builder.Form())
	if err != nil {
		return err
	}

	return s.mark()
}

func (s *FormSession) AddField(t models.FieldType) (*models.FormField, error) {
	field, err := s.builder.AddField(t)
	if err != nil {
		return nil, err
	}

	return field, s.mark()
}

func (s *FormSession) UpdateField(field models.FormField) error {
	err := s.builder.UpdateField(field)
	if err != nil {
		return err
	}

	return s.mark()
}

func (s *FormSession) DuplicateField(fieldID string) (*models.FormField, error) {
	field, err := s.builder.DuplicateField(fieldID)
	if err != nil {
		return nil, err
	}

	return field, s.mark()
}

func (s *FormSession) RemoveField(fieldID string) error {
	err := s.builder.RemoveField(fieldID)
	if err != nil {
		return err
	}

	return s.mark()
}

func (s *FormSession) ReorderWithinTab(tabID string, from, to int) error {
	err := s.builder.ReorderWithinTab(tabID, from, to)
	if err != nil {
		return err
	}

	return s.mark()
}

func (s *FormSession) MoveFieldToTab(fieldID, tabID string) error {
	err := s.builder.MoveFieldToTab(fieldID, tabID)
	if err != nil {
		return err
	}

	return s.mark()
}

func (s *FormSession) AddTab(title string) (models.Tab, error) {
	return s.builder.AddTab(title), s.mark()
}

func (s *FormSession) RenameTab(tabID, title string) error {
	err := s.builder.RenameTab(tabID, title)
	if err != nil {
		return err
	}

	return s.mark()
}

func (s *FormSession) DeleteTab(tabID string) error {
	err := s.builder.DeleteTab(tabID)
	if err != nil {
		return err
	}

	return s.mark()
}

// Validate returns the problems that would block saving.
func (s *FormSession) Validate() []string {
	return forms.Validate(s.builder.Form())
}

// WizardSteps previews the current fields as fill-in steps.
func (s *FormSession) WizardSteps() []forms.WizardStep {
	return forms.GroupIntoWizardSteps(s.builder.Form().Fields)
}

// Suspend writes any pending change to the draft right away.
func (s *FormSession) Suspend(ctx context.Context) error {
	return s.slot.buffer.Flush(ctx)
}

// Save stores the form through the service, then clears the draft. The draft
// is kept when the save fails.
func (s *FormSession) Save(ctx context.Context) (*models.Form, error) {
	saved, err := s.service.Save(ctx, s.cfg.user, s.Snapshot())
	if err != nil {
		return nil, err
	}

	err = s.slot.saved(ctx, drafts.FormKey(saved.ID))
	if err != nil {
		s.cfg.logger.WarnContext(ctx, "failed to clear form draft", "form_id", saved.ID, "error", err)
	}

	activeTab := s.builder.ActiveTab()
	s.builder = forms.NewBuilder(saved.Clone(), s.builderOp...)
	_ = s.builder.SetActiveTab(activeTab)
	s.fromDraft = false

	return saved, nil
}

// Reset drops the draft and starts over from an empty form, keeping the id
// of a stored form.
func (s *FormSession) Reset(ctx context.Context) error {
	err := s.slot.buffer.Discard(ctx)
	if err != nil {
		return err
	}

	current := s.builder.Form()
	fresh := forms.NewForm(s.builderOp...)
	fresh.ID = current.ID
	fresh.Owner = current.Owner
	fresh.CreatedAt = current.CreatedAt
	fresh.AccessControl = models.AccessControl{ConfidentialityLevel: models.ConfidentialityPublic}

	s.builder = forms.NewBuilder(fresh, s.builderOp...)
	s.fromDraft = false

	return nil
}
