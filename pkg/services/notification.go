package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dukex/fluxo/pkg/eventbus"
	"github.com/dukex/fluxo/pkg/events"
	"github.com/dukex/fluxo/pkg/models"
	"github.com/dukex/fluxo/pkg/persistence"
)

const (
	NotificationKindWorkflow = "workflow"
	NotificationKindForm     = "form"
	NotificationKindTemplate = "template"
)

type Notification struct {
	persistence persistence.Persistence
	logger      *slog.Logger
}

func NewNotification(persistence persistence.Persistence, logger *slog.Logger) *Notification {
	return &Notification{
		persistence: persistence,
		logger:      logger.With("service", "notification"),
	}
}

// ListNotificationsRequest contains options for listing a user's notifications.
type ListNotificationsRequest struct {
	ListRequest

	UserID     string
	UnreadOnly bool
}

func (n *Notification) List(ctx context.Context, req ListNotificationsRequest) (*ListResponse[*models.Notification], error) {
	const op = "Notification.List"

	if req.UserID == "" {
		return nil, NewValidationError(op, "EMPTY_USER_ID", "user ID cannot be empty", ErrEmptyOwnerID)
	}

	err := req.normalize(op)
	if err != nil {
		return nil, err
	}

	filters := map[string]string{"user_id": req.UserID}
	if req.UnreadOnly {
		filters["read"] = "false"
	}

	return listPage(ctx, op, n.persistence.Notifications(), req.ListRequest, filters)
}

// MarkRead marks one of userID's notifications as read. Notifications of
// other users are reported as not found.
func (n *Notification) MarkRead(ctx context.Context, userID, id string) (*models.Notification, error) {
	notification, err := n.persistence.Notifications().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if notification.UserID != userID {
		return nil, persistence.NotFound("Notification.MarkRead", persistence.NotificationsCollection, id)
	}

	if notification.Read {
		return notification, nil
	}

	notification.Read = true

	err = n.persistence.Notifications().Save(ctx, notification)
	if err != nil {
		return nil, fmt.Errorf("failed to mark notification read: %w", err)
	}

	return notification, nil
}

// MarkAllRead marks every unread notification of userID and returns how many changed.
func (n *Notification) MarkAllRead(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, NewValidationError("Notification.MarkAllRead", "EMPTY_USER_ID", "user ID cannot be empty", ErrEmptyOwnerID)
	}

	unread, err := collect(ctx, n.persistence.Notifications(), persistence.ListOptions{
		Filters:   map[string]string{"user_id": userID, "read": "false"},
		SortBy:    persistence.SortByCreatedAt,
		SortOrder: persistence.SortAsc,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to list notifications: %w", err)
	}

	for i, notification := range unread {
		notification.Read = true

		err := n.persistence.Notifications().Save(ctx, notification)
		if err != nil {
			return i, fmt.Errorf("failed to mark notification %s read: %w", notification.ID, err)
		}
	}

	return len(unread), nil
}

// Notify stores a new unread notification.
func (n *Notification) Notify(ctx context.Context, notification *models.Notification) error {
	notification.ID = ""
	notification.Read = false

	err := n.persistence.Notifications().Save(ctx, notification)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	n.logger.DebugContext(ctx, "notification created", "user_id", notification.UserID, "kind", notification.Kind)

	return nil
}

// RegisterHandlers subscribes the notification producers to the bus.
func (n *Notification) RegisterHandlers(subscriber eventbus.EventSubscriber) error {
	handlers := map[events.EventType]eventbus.EventHandler{
		events.WorkflowSavedEvent: n.onWorkflowSaved,
		events.FormSavedEvent:     n.onFormSaved,
		events.TemplateUsedEvent:  n.onTemplateUsed,
	}

	for eventType, handler := range handlers {
		err := subscriber.Handle(eventType, handler)
		if err != nil {
			return fmt.Errorf("failed to register %s handler: %w", eventType, err)
		}
	}

	return nil
}

// onWorkflowSaved tells the owner when somebody else changed their workflow.
func (n *Notification) onWorkflowSaved(ctx context.Context, event any) error {
	saved, ok := event.(*events.WorkflowSaved)
	if !ok || saved.Owner == "" || saved.Owner == saved.ActorID {
		return nil
	}

	return n.Notify(ctx, &models.Notification{
		UserID:  saved.Owner,
		Title:   "Fluxo atualizado",
		Message: fmt.Sprintf("O fluxo %q foi alterado por %s", saved.Name, actorName(saved.ActorID)),
		Kind:    NotificationKindWorkflow,
		Link:    "/workflows/" + saved.WorkflowID,
	})
}

// onFormSaved tells the owner when somebody else changed their form.
func (n *Notification) onFormSaved(ctx context.Context, event any) error {
	saved, ok := event.(*events.FormSaved)
	if !ok || saved.Owner == "" || saved.Owner == saved.ActorID {
		return nil
	}

	return n.Notify(ctx, &models.Notification{
		UserID:  saved.Owner,
		Title:   "Formulário atualizado",
		Message: fmt.Sprintf("O formulário %q foi alterado por %s", saved.Title, actorName(saved.ActorID)),
		Kind:    NotificationKindForm,
		Link:    "/forms/" + saved.FormID,
	})
}

// onTemplateUsed confirms to the actor the workflow created from a template.
func (n *Notification) onTemplateUsed(ctx context.Context, event any) error {
	used, ok := event.(*events.TemplateUsed)
	if !ok || used.ActorID == "" {
		return nil
	}

	return n.Notify(ctx, &models.Notification{
		UserID:  used.ActorID,
		Title:   "Fluxo criado a partir de modelo",
		Message: fmt.Sprintf("Um novo fluxo foi criado a partir do modelo %q", used.TemplateName),
		Kind:    NotificationKindTemplate,
		Link:    "/workflows/" + used.WorkflowID,
	})
}

func actorName(actor string) string {
	if actor == "" {
		return "outro usuário"
	}

	return actor
}
