package forms

import (
	"strconv"
	"testing"

	"github.com/dukex/fluxo/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs() Option {
	n := 0

	return WithIDGenerator(func() string {
		n++

		return "id-" + strconv.Itoa(n)
	})
}

func fieldIDs(fields []models.FormField) []string {
	ids := make([]string, len(fields))
	for i, field := range fields {
		ids[i] = field.ID
	}

	return ids
}

func threeTabForm() *models.Form {
	return &models.Form{
		Title: "Cadastro",
		Tabs:  []models.Tab{{ID: "t1", Title: "Dados"}, {ID: "t2", Title: "Endereço"}, {ID: "t3", Title: "Anexos"}},
		Fields: []models.FormField{
			{ID: "a", Type: models.FieldText, Label: "A", TabID: "t1"},
			{ID: "b", Type: models.FieldText, Label: "B", TabID: "t2"},
			{ID: "c", Type: models.FieldText, Label: "C", TabID: "t1"},
			{ID: "d", Type: models.FieldText, Label: "D", TabID: "t2"},
			{ID: "e", Type: models.FieldText, Label: "E", TabID: "t1"},
			{ID: "f", Type: models.FieldFile, Label: "F", TabID: "t3"},
		},
	}
}

func TestNewForm_HasOneTab(t *testing.T) {
	form := NewForm(sequentialIDs())

	require.Len(t, form.Tabs, 1)
	assert.Equal(t, DefaultTabTitle, form.Tabs[0].Title)
	assert.NotNil(t, form.Fields)
}

func TestNewBuilder_AssignsOrphanFields(t *testing.T) {
	form := &models.Form{
		Tabs:   []models.Tab{{ID: "t1"}},
		Fields: []models.FormField{{ID: "a", TabID: "gone"}, {ID: "b"}},
	}

	NewBuilder(form)

	assert.Equal(t, "t1", form.Fields[0].TabID)
	assert.Equal(t, "t1", form.Fields[1].TabID)
}

func TestAddField_AppendsToActiveTab(t *testing.T) {
	b := NewBuilder(threeTabForm(), sequentialIDs())
	require.NoError(t, b.SetActiveTab("t2"))

	field, err := b.AddField(models.FieldSelect)
	require.NoError(t, err)

	assert.Equal(t, "id-1", field.ID)
	assert.Equal(t, "t2", field.TabID)
	assert.Equal(t, []string{"Opção 1", "Opção 2"}, field.Options)
	assert.Equal(t, "id-1", b.Selected())

	assert.Equal(t, []string{"b", "d", "id-1"}, fieldIDs(b.TabFields("t2")))
	assert.Equal(t, []string{"a", "c", "e"}, fieldIDs(b.TabFields("t1")))

	_, err = b.AddField("hologram")
	require.ErrorIs(t, err, ErrUnknownFieldType)
}

func TestDuplicateField(t *testing.T) {
	form := threeTabForm()
	maxLength := 20
	form.Fields[0].Validation = &models.ValidationRules{MaxLength: &maxLength}
	form.Fields[0].Required = true

	b := NewBuilder(form, sequentialIDs())

	copied, err := b.DuplicateField("a")
	require.NoError(t, err)

	assert.Equal(t, "id-1", copied.ID)
	assert.Equal(t, "A (cópia)", copied.Label)
	assert.True(t, copied.Required)
	assert.Equal(t, "t1", copied.TabID)
	require.NotNil(t, copied.Validation)
	assert.Equal(t, 20, *copied.Validation.MaxLength)
	assert.NotSame(t, form.Fields[0].Validation, copied.Validation)

	assert.Equal(t, []string{"a", "id-1", "b", "c", "d", "e", "f"}, fieldIDs(b.Form().Fields))

	_, err = b.DuplicateField("zzz")
	require.ErrorIs(t, err, ErrUnknownField)
}

func TestRemoveField_ClearsSelection(t *testing.T) {
	b := NewBuilder(threeTabForm())
	require.NoError(t, b.SelectField("c"))

	require.NoError(t, b.RemoveField("a"))
	assert.Equal(t, "c", b.Selected())

	require.NoError(t, b.RemoveField("c"))
	assert.Empty(t, b.Selected())
	assert.Equal(t, []string{"b", "d", "e", "f"}, fieldIDs(b.Form().Fields))

	require.ErrorIs(t, b.RemoveField("c"), ErrUnknownField)
}

func TestReorderWithinTab(t *testing.T) {
	testCases := []struct {
		name     string
		tab      string
		from, to int
		want     []string
	}{
		{name: "first to last", tab: "t1", from: 0, to: 2, want: []string{"c", "b", "e", "d", "a", "f"}},
		{name: "last to first", tab: "t1", from: 2, to: 0, want: []string{"e", "b", "a", "d", "c", "f"}},
		{name: "other tab", tab: "t2", from: 1, to: 0, want: []string{"a", "d", "c", "b", "e", "f"}},
		{name: "same index", tab: "t1", from: 1, to: 1, want: []string{"a", "b", "c", "d", "e", "f"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBuilder(threeTabForm())

			require.NoError(t, b.ReorderWithinTab(tc.tab, tc.from, tc.to))
			assert.Equal(t, tc.want, fieldIDs(b.Form().Fields))
		})
	}
}

func TestReorderWithinTab_Errors(t *testing.T) {
	b := NewBuilder(threeTabForm())

	require.ErrorIs(t, b.ReorderWithinTab("t3", 0, 1), ErrIndexOutOfRange)
	require.ErrorIs(t, b.ReorderWithinTab("t1", -1, 0), ErrIndexOutOfRange)
	require.ErrorIs(t, b.ReorderWithinTab("nope", 0, 0), ErrUnknownTab)
}

func TestMoveFieldToTab_KeepsFlatPosition(t *testing.T) {
	b := NewBuilder(threeTabForm())

	require.NoError(t, b.MoveFieldToTab("c", "t3"))

	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, fieldIDs(b.Form().Fields))
	assert.Equal(t, []string{"c", "f"}, fieldIDs(b.TabFields("t3")))

	require.ErrorIs(t, b.MoveFieldToTab("c", "t9"), ErrUnknownTab)
	require.ErrorIs(t, b.MoveFieldToTab("z", "t1"), ErrUnknownField)
}

func TestDeleteTab_ReassignsToFirstRemaining(t *testing.T) {
	testCases := []struct {
		name      string
		deleted   string
		wantFirst string
	}{
		{name: "delete first tab", deleted: "t1", wantFirst: "t2"},
		{name: "delete middle tab", deleted: "t2", wantFirst: "t1"},
		{name: "delete last tab", deleted: "t3", wantFirst: "t1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			form := threeTabForm()

			var moved []string

			for _, field := range form.Fields {
				if field.TabID == tc.deleted {
					moved = append(moved, field.ID)
				}
			}

			b := NewBuilder(form)
			require.NoError(t, b.SetActiveTab(tc.deleted))
			require.NoError(t, b.DeleteTab(tc.deleted))

			assert.Len(t, form.Tabs, 2)
			assert.Equal(t, tc.wantFirst, form.Tabs[0].ID)
			assert.Equal(t, tc.wantFirst, b.ActiveTab())

			for _, id := range moved {
				assert.Equal(t, tc.wantFirst, form.Fields[form.FieldByID(id)].TabID)
			}

			assert.Len(t, form.Fields, 6)
		})
	}
}

func TestDeleteTab_NeverBelowOne(t *testing.T) {
	b := NewBuilder(threeTabForm())

	require.NoError(t, b.DeleteTab("t1"))
	require.NoError(t, b.DeleteTab("t2"))
	require.ErrorIs(t, b.DeleteTab("t3"), ErrLastTab)

	form := b.Form()
	require.Len(t, form.Tabs, 1)

	for _, field := range form.Fields {
		assert.Equal(t, "t3", field.TabID)
	}

	require.ErrorIs(t, b.DeleteTab("t1"), ErrUnknownTab)
}

func TestAddAndRenameTab(t *testing.T) {
	b := NewBuilder(nil, sequentialIDs())

	tab := b.AddTab("")
	assert.Equal(t, "Aba 2", tab.Title)
	assert.Equal(t, tab.ID, b.ActiveTab())

	require.NoError(t, b.RenameTab(tab.ID, "Documentos"))
	assert.Equal(t, "Documentos", b.Form().Tabs[1].Title)
	require.ErrorIs(t, b.RenameTab("x", "y"), ErrUnknownTab)
}
