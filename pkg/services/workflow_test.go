package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/dukex/fluxo/pkg/access"
	"github.com/dukex/fluxo/pkg/events"
	"github.com/dukex/fluxo/pkg/mocks"
	"github.com/dukex/fluxo/pkg/models"
	"github.com/dukex/fluxo/pkg/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestWorkflowService(t *testing.T) (*Workflow, *recordingPublisher) {
	t.Helper()

	publisher := &recordingPublisher{}

	return NewWorkflow(newTestPersistence(t), publisher, slog.Default()), publisher
}

func TestWorkflow_HealthCheck(t *testing.T) {
	service, _ := newTestWorkflowService(t)

	message, healthy := service.HealthCheck(context.Background())
	assert.True(t, healthy)
	assert.Equal(t, "Persistence layer is healthy", message)

	message, healthy = NewWorkflow(nil, nil, slog.Default()).HealthCheck(context.Background())
	assert.False(t, healthy)
	assert.Equal(t, "Persistence layer not initialized", message)
}

func TestWorkflow_Create(t *testing.T) {
	ctx := context.Background()
	service, publisher := newTestWorkflowService(t)

	workflow := validWorkflow("Compras")
	workflow.ID = "ignored"
	workflow.Tags = []string{" compras ", "", "compras", "ti"}

	created, err := service.Create(ctx, "u1", workflow)
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.NotEqual(t, "ignored", created.ID)
	assert.Equal(t, "u1", created.Owner)
	assert.Equal(t, []string{"compras", "ti"}, created.Tags)
	assert.False(t, created.CreatedAt.IsZero())

	fetched, err := service.FetchByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Compras", fetched.Name)
	assert.Len(t, fetched.WorkflowDefinition.Nodes, 2)

	published := publisher.published()
	require.Len(t, published, 1)

	saved, ok := published[0].(events.WorkflowSaved)
	require.True(t, ok)
	assert.Equal(t, created.ID, saved.WorkflowID)
	assert.Equal(t, "u1", saved.ActorID)
	assert.True(t, saved.Created)
	assert.Equal(t, 2, saved.NodeCount)
}

func TestWorkflow_SaveRejectsInvalidWorkflow(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(w *models.Workflow)
		expected string
	}{
		{
			name: "no trigger",
			mutate: func(w *models.Workflow) {
				w.WorkflowDefinition.Nodes = w.WorkflowDefinition.Nodes[1:]
				w.WorkflowDefinition.Edges = nil
			},
			expected: "O fluxo precisa de pelo menos um nó de início (trigger)",
		},
		{
			name: "task without assignee",
			mutate: func(w *models.Workflow) {
				w.WorkflowDefinition.Nodes[1].Data.(*models.TaskData).AssignedTo = nil
			},
			expected: `Tarefa "Cotar": defina um responsável`,
		},
		{
			name:     "short name",
			mutate:   func(w *models.Workflow) { w.Name = "ab" },
			expected: "Campo name deve ter no mínimo 3",
		},
		{
			name:     "unknown priority",
			mutate:   func(w *models.Workflow) { w.Priority = "urgent" },
			expected: "Campo priority deve ser um de: low medium high critical",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			service, publisher := newTestWorkflowService(t)

			workflow := validWorkflow("Compras")
			tt.mutate(workflow)

			_, err := service.Create(ctx, "u1", workflow)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidationFailed)
			assert.True(t, IsValidationError(err))
			assert.Contains(t, ValidationMessages(err), tt.expected)

			listed, err := service.List(ctx, ListWorkflowsRequest{})
			require.NoError(t, err)
			assert.Empty(t, listed.Items)
			assert.Empty(t, publisher.published())
		})
	}
}

func TestWorkflow_Update(t *testing.T) {
	ctx := context.Background()
	service, publisher := newTestWorkflowService(t)

	created, err := service.Create(ctx, "u1", validWorkflow("Compras"))
	require.NoError(t, err)

	createdAt := created.CreatedAt

	changed := validWorkflow("Compras de TI")
	changed.Owner = "intruder"

	updated, err := service.Update(ctx, "u2", created.ID, changed)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "u1", updated.Owner)
	assert.True(t, createdAt.Equal(updated.CreatedAt))

	fetched, err := service.FetchByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Compras de TI", fetched.Name)

	published := publisher.published()
	require.Len(t, published, 2)
	assert.False(t, published[1].(events.WorkflowSaved).Created)

	_, err = service.Update(ctx, "u1", "missing", validWorkflow("Outro"))
	assert.True(t, IsNotFoundError(err))
	assert.ErrorIs(t, err, ErrWorkflowNotFound)
}

func TestWorkflow_Save(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestWorkflowService(t)

	created, err := service.Save(ctx, "u1", validWorkflow("Compras"))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	again := validWorkflow("Compras revisado")
	again.ID = created.ID

	updated, err := service.Save(ctx, "u2", again)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "u1", updated.Owner)

	withID := validWorkflow("Importado")
	withID.ID = "imported-1"

	imported, err := service.Save(ctx, "u3", withID)
	require.NoError(t, err)
	assert.Equal(t, "imported-1", imported.ID)
	assert.Equal(t, "u3", imported.Owner)

	listed, err := service.List(ctx, ListWorkflowsRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, listed.TotalCount)
}

func TestWorkflow_List(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestWorkflowService(t)

	hr := validWorkflow("Admissão")
	hr.WorkflowType = models.WorkflowTypeHR
	_, err := service.Create(ctx, "u1", hr)
	require.NoError(t, err)

	inactive := validWorkflow("Compras antigas")
	inactive.IsActive = false
	_, err = service.Create(ctx, "u2", inactive)
	require.NoError(t, err)

	_, err = service.Create(ctx, "u2", validWorkflow("Compras"))
	require.NoError(t, err)

	active := true

	tests := []struct {
		name     string
		req      ListWorkflowsRequest
		expected []string
	}{
		{
			name:     "all sorted by name",
			req:      ListWorkflowsRequest{ListRequest: ListRequest{SortBy: "name", SortOrder: "asc"}},
			expected: []string{"Admissão", "Compras", "Compras antigas"},
		},
		{
			name:     "by type",
			req:      ListWorkflowsRequest{WorkflowType: "hr"},
			expected: []string{"Admissão"},
		},
		{
			name:     "active by owner",
			req:      ListWorkflowsRequest{Owner: "u2", IsActive: &active},
			expected: []string{"Compras"},
		},
		{
			name:     "search",
			req:      ListWorkflowsRequest{ListRequest: ListRequest{Search: "compras", SortBy: "name", SortOrder: "asc"}},
			expected: []string{"Compras", "Compras antigas"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := service.List(ctx, tt.req)
			require.NoError(t, err)

			names := make([]string, 0, len(result.Items))
			for _, item := range result.Items {
				names = append(names, item.Name)
			}

			assert.Equal(t, tt.expected, names)
			assert.EqualValues(t, len(tt.expected), result.TotalCount)
		})
	}

	t.Run("pagination", func(t *testing.T) {
		result, err := service.List(ctx, ListWorkflowsRequest{ListRequest: ListRequest{Limit: 2, SortBy: "name", SortOrder: "asc"}})
		require.NoError(t, err)
		assert.Len(t, result.Items, 2)
		assert.True(t, result.HasNextPage)
		assert.EqualValues(t, 3, result.TotalCount)
	})

	t.Run("invalid sort", func(t *testing.T) {
		_, err := service.List(ctx, ListWorkflowsRequest{ListRequest: ListRequest{SortBy: "owner"}})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidSortField)
		assert.True(t, IsValidationError(err))

		_, err = service.List(ctx, ListWorkflowsRequest{ListRequest: ListRequest{SortOrder: "up"}})
		assert.ErrorIs(t, err, ErrInvalidSortOrder)
	})
}

func TestWorkflow_ListVisibility(t *testing.T) {
	ctx := context.Background()
	p := newTestPersistence(t)
	service := NewWorkflow(p, nil, slog.Default())

	public := validWorkflow("Público")
	_, err := service.Create(ctx, "u1", public)
	require.NoError(t, err)

	private := validWorkflow("Privado do u1")
	private.ConfidentialityLevel = models.ConfidentialityPrivate
	_, err = service.Create(ctx, "u1", private)
	require.NoError(t, err)

	finance := validWorkflow("Financeiro")
	finance.ConfidentialityLevel = models.ConfidentialityPrivate
	finance.AllowedDepartments = []string{"finance"}
	_, err = service.Create(ctx, "u2", finance)
	require.NoError(t, err)

	shared := validWorkflow("Compartilhado")
	shared.ConfidentialityLevel = models.ConfidentialityPrivate
	shared, err = service.Create(ctx, "u2", shared)
	require.NoError(t, err)

	require.NoError(t, p.SharedRecords().Save(ctx, &models.SharedRecord{
		RecordType: "workflow",
		RecordID:   shared.ID,
		UserID:     "u3",
		SharedBy:   "u2",
	}))

	tests := []struct {
		name      string
		principal access.Principal
		expected  []string
	}{
		{name: "anonymous", principal: access.Principal{}, expected: []string{"Público"}},
		{name: "owner", principal: access.Principal{UserID: "u1"}, expected: []string{"Privado do u1", "Público"}},
		{name: "department", principal: access.Principal{UserID: "u4", Departments: []string{"finance"}}, expected: []string{"Financeiro", "Público"}},
		{name: "shared", principal: access.Principal{UserID: "u3"}, expected: []string{"Compartilhado", "Público"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := service.List(ctx, ListWorkflowsRequest{
				ListRequest: ListRequest{SortBy: "name", SortOrder: "asc"},
				Principal:   &tt.principal,
			})
			require.NoError(t, err)

			names := make([]string, 0, len(result.Items))
			for _, item := range result.Items {
				names = append(names, item.Name)
			}

			assert.Equal(t, tt.expected, names)
			assert.EqualValues(t, len(tt.expected), result.TotalCount)
		})
	}
}

func TestWorkflow_Delete(t *testing.T) {
	ctx := context.Background()
	service, publisher := newTestWorkflowService(t)

	created, err := service.Create(ctx, "u1", validWorkflow("Compras"))
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, "u2", created.ID))

	_, err = service.FetchByID(ctx, created.ID)
	assert.True(t, persistence.IsWorkflowNotFound(err))

	err = service.Delete(ctx, "u2", created.ID)
	assert.True(t, IsNotFoundError(err))

	published := publisher.published()
	require.Len(t, published, 2)

	deleted, ok := published[1].(events.WorkflowDeleted)
	require.True(t, ok)
	assert.Equal(t, "Compras", deleted.Name)
	assert.Equal(t, "u1", deleted.Owner)
	assert.Equal(t, "u2", deleted.ActorID)
}

func TestWorkflow_PublishFailureDoesNotFailSave(t *testing.T) {
	ctx := context.Background()
	bus := &mocks.MockEventBus{}
	bus.On("Publish", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("events.WorkflowSaved")).
		Return(errors.New("broker down")).Once()

	service := NewWorkflow(newTestPersistence(t), bus, slog.Default())

	created, err := service.Create(ctx, "u1", validWorkflow("Compras"))
	require.NoError(t, err)

	_, err = service.FetchByID(ctx, created.ID)
	require.NoError(t, err)

	bus.AssertExpectations(t)
}
