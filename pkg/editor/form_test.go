package editor

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/dukex/fluxo/pkg/drafts"
	"github.com/dukex/fluxo/pkg/forms"
	"github.com/dukex/fluxo/pkg/models"
	"github.com/dukex/fluxo/pkg/persistence/file"
	"github.com/dukex/fluxo/pkg/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFormService(t *testing.T) *services.Form {
	t.Helper()

	return services.NewForm(file.NewPersistence(slog.Default(), t.TempDir()), nil, slog.Default())
}

func sequentialIDs() []forms.Option {
	next := 0

	return []forms.Option{forms.WithIDGenerator(func() string {
		next++

		return fmt.Sprintf("id-%d", next)
	})}
}

func TestFormSession_EditAndResumeDraft(t *testing.T) {
	ctx := context.Background()
	service := newFormService(t)
	store := drafts.NewMemoryStore()

	session, err := OpenFormWith(ctx, service, store, "", sequentialIDs(), WithUser("u1"), WithDebounce(time.Hour))
	require.NoError(t, err)
	assert.False(t, session.FromDraft())
	require.Len(t, session.Snapshot().Tabs, 1)

	require.NoError(t, session.Edit(func(f *models.Form) error {
		f.Title = "Cadastro"

		return nil
	}))

	name, err := session.AddField(models.FieldText)
	require.NoError(t, err)

	second, err := session.AddTab("Contato")
	require.NoError(t, err)
	require.NoError(t, session.Builder().SetActiveTab(second.ID))

	email, err := session.AddField(models.FieldEmail)
	require.NoError(t, err)
	assert.Equal(t, second.ID, email.TabID)

	copied, err := session.DuplicateField(name.ID)
	require.NoError(t, err)
	require.NoError(t, session.MoveFieldToTab(copied.ID, second.ID))
	require.NoError(t, session.ReorderWithinTab(second.ID, 1, 0))

	assert.Equal(t, []string{email.ID, copied.ID}, fieldIDs(session.Builder().TabFields(second.ID)))

	require.NoError(t, session.Suspend(ctx))

	reopened, err := OpenForm(ctx, service, store, "", WithUser("u1"))
	require.NoError(t, err)
	assert.True(t, reopened.FromDraft())
	assert.Equal(t, "Cadastro", reopened.Snapshot().Title)
	assert.Len(t, reopened.Snapshot().Fields, 3)
	assert.Len(t, reopened.Snapshot().Tabs, 2)
}

func TestFormSession_DeleteTab(t *testing.T) {
	ctx := context.Background()

	session, err := OpenFormWith(ctx, newFormService(t), drafts.NewMemoryStore(), "", sequentialIDs(), WithDebounce(time.Hour))
	require.NoError(t, err)

	first := session.Snapshot().Tabs[0]

	assert.ErrorIs(t, session.DeleteTab(first.ID), forms.ErrLastTab)
	assert.False(t, session.Dirty())

	second, err := session.AddTab("Extra")
	require.NoError(t, err)
	require.NoError(t, session.Builder().SetActiveTab(second.ID))

	field, err := session.AddField(models.FieldNumber)
	require.NoError(t, err)

	require.NoError(t, session.DeleteTab(second.ID))

	snapshot := session.Snapshot()
	require.Len(t, snapshot.Tabs, 1)
	assert.Equal(t, first.ID, snapshot.Fields[snapshot.FieldByID(field.ID)].TabID)
	assert.True(t, session.Dirty())
}

func TestFormSession_SaveAndReopen(t *testing.T) {
	ctx := context.Background()
	service := newFormService(t)
	store := drafts.NewMemoryStore()

	session, err := OpenForm(ctx, service, store, "", WithUser("u1"), WithDebounce(time.Hour))
	require.NoError(t, err)

	_, err = session.AddField(models.FieldSelect)
	require.NoError(t, err)
	require.NoError(t, session.Suspend(ctx))

	_, err = session.Save(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrValidationFailed)
	assert.NotEmpty(t, session.Validate())

	require.NoError(t, session.Edit(func(f *models.Form) error {
		f.Title = "Pedido"
		f.Fields[0].Options = []string{"A", "B"}

		return nil
	}))
	assert.Empty(t, session.Validate())

	saved, err := session.Save(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)

	_, err = store.Get(ctx, drafts.FormKey("").ForUser("u1"))
	assert.ErrorIs(t, err, drafts.ErrNotFound)

	// edits after saving target the stored form's slot
	require.NoError(t, session.RenameTab(saved.Tabs[0].ID, "Dados"))
	require.NoError(t, session.Suspend(ctx))

	_, err = store.Get(ctx, drafts.FormKey(saved.ID).ForUser("u1"))
	require.NoError(t, err)

	// and the server copy wins on reopen
	reopened, err := OpenForm(ctx, service, store, saved.ID, WithUser("u1"))
	require.NoError(t, err)
	assert.False(t, reopened.FromDraft())
	assert.Equal(t, saved.Tabs[0].Title, reopened.Snapshot().Tabs[0].Title)
	assert.Len(t, reopened.WizardSteps(), 1)
}

func TestFormSession_Reset(t *testing.T) {
	ctx := context.Background()
	store := drafts.NewMemoryStore()

	session, err := OpenForm(ctx, newFormService(t), store, "", WithDebounce(time.Hour))
	require.NoError(t, err)

	_, err = session.AddField(models.FieldText)
	require.NoError(t, err)
	require.NoError(t, session.Suspend(ctx))

	require.NoError(t, session.Reset(ctx))
	assert.Empty(t, session.Snapshot().Fields)
	assert.Len(t, session.Snapshot().Tabs, 1)

	_, err = store.Get(ctx, session.DraftKey())
	assert.ErrorIs(t, err, drafts.ErrNotFound)
}

func fieldIDs(fields []models.FormField) []string {
	ids := make([]string, 0, len(fields))
	for _, field := range fields {
		ids = append(ids, field.ID)
	}

	return ids
}
