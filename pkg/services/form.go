package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dukex/fluxo/pkg/access"
	"github.com/dukex/fluxo/pkg/eventbus"
	"github.com/dukex/fluxo/pkg/events"
	"github.com/dukex/fluxo/pkg/forms"
	"github.com/dukex/fluxo/pkg/models"
	"github.com/dukex/fluxo/pkg/otelhelper"
	"github.com/dukex/fluxo/pkg/persistence"
	"go.opentelemetry.io/otel/attribute"
)

type Form struct {
	persistence persistence.Persistence
	publisher   eventbus.EventPublisher
	logger      *slog.Logger
}

// NewForm creates a new form service. publisher may be nil.
func NewForm(persistence persistence.Persistence, publisher eventbus.EventPublisher, logger *slog.Logger) *Form {
	return &Form{
		persistence: persistence,
		publisher:   publisher,
		logger:      logger.With("service", "form"),
	}
}

// ListFormsRequest contains options for listing forms.
type ListFormsRequest struct {
	ListRequest

	IsPublished *bool
	Owner       string

	// Principal limits the listing to the records it may see. Nil lists everything.
	Principal *access.Principal
}

func (f *Form) List(ctx context.Context, req ListFormsRequest) (*ListResponse[*models.Form], error) {
	const op = "Form.List"

	err := req.normalize(op)
	if err != nil {
		return nil, err
	}

	filters := map[string]string{}
	stringFilter(filters, "owner", req.Owner)
	boolFilter(filters, "is_published", req.IsPublished)

	if req.Principal != nil {
		return listVisible(ctx, op, f.persistence.Forms(), f.persistence.SharedRecords(), req.ListRequest, filters, *req.Principal)
	}

	return listPage(ctx, op, f.persistence.Forms(), req.ListRequest, filters)
}

func (f *Form) FetchByID(ctx context.Context, id string) (*models.Form, error) {
	return f.persistence.Forms().GetByID(ctx, id)
}

// Validate returns every problem that blocks saving the form, or nothing.
func (f *Form) Validate(form *models.Form) []string {
	return append(forms.Validate(form), structMessages(form.AccessControl)...)
}

// ValidateField checks a single field configuration.
func (f *Form) ValidateField(field models.FormField) []string {
	return forms.ValidateField(field)
}

// Create stores a new form owned by actor unless it names an owner.
func (f *Form) Create(ctx context.Context, actor string, form *models.Form) (*models.Form, error) {
	form.ID = ""

	return f.save(ctx, "Form.Create", actor, form, true)
}

// Update replaces the stored form wholesale. Ownership and creation time are kept.
func (f *Form) Update(ctx context.Context, actor, id string, form *models.Form) (*models.Form, error) {
	existing, err := f.persistence.Forms().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	form.ID = id
	form.Owner = existing.Owner
	form.CreatedAt = existing.CreatedAt

	return f.save(ctx, "Form.Update", actor, form, false)
}

// Save inserts the form when it is new and overwrites it otherwise.
func (f *Form) Save(ctx context.Context, actor string, form *models.Form) (*models.Form, error) {
	if form.ID == "" {
		return f.Create(ctx, actor, form)
	}

	_, err := f.persistence.Forms().GetByID(ctx, form.ID)
	if persistence.IsFormNotFound(err) {
		return f.save(ctx, "Form.Save", actor, form, true)
	}

	if err != nil {
		return nil, err
	}

	return f.Update(ctx, actor, form.ID, form)
}

func (f *Form) save(ctx context.Context, op, actor string, form *models.Form, created bool) (*models.Form, error) {
	ctx, span := otelhelper.StartSpan(ctx, tracer, op,
		attribute.String(otelhelper.FormIDKey, form.ID),
		attribute.String(otelhelper.UserIDKey, actor),
	)
	defer span.End()

	if created && form.Owner == "" {
		form.Owner = actor
	}

	if form.Fields == nil {
		form.Fields = []models.FormField{}
	}

	err := newValidationFailed(op, f.Validate(form))
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, err
	}

	err = f.persistence.Forms().Save(ctx, form)
	if err != nil {
		otelhelper.SetError(span, err)
		f.logger.ErrorContext(ctx, "failed to save form", "form_id", form.ID, "error", err)

		return nil, fmt.Errorf("failed to save form: %w", err)
	}

	publish(ctx, f.logger, f.publisher, form.ID, events.FormSaved{
		BaseEvent: events.NewBaseEvent(events.FormSavedEvent, actor),
		FormID:    form.ID,
		Title:     form.Title,
		Owner:     form.Owner,
		Created:   created,
		Published: form.IsPublished,
	})

	return form, nil
}

func (f *Form) Delete(ctx context.Context, id string) error {
	_, err := f.persistence.Forms().GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = f.persistence.Forms().Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete form: %w", err)
	}

	return nil
}

// WizardSteps groups the stored form's fields for sequential fill-in.
func (f *Form) WizardSteps(ctx context.Context, id string) ([]forms.WizardStep, error) {
	form, err := f.persistence.Forms().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return forms.GroupIntoWizardSteps(form.Fields), nil
}

// ValidateSubmission checks answers against the stored form. An empty result
// means the submission is acceptable.
func (f *Form) ValidateSubmission(ctx context.Context, id string, values map[string]any) ([]string, error) {
	form, err := f.persistence.Forms().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return forms.ValidateSubmission(form, values)
}
