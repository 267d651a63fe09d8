package web

import (
	"github.com/dukex/fluxo/pkg/services"
	"github.com/gofiber/fiber/v3"
)

// GetNotifications lists the caller's notifications, newest first.
func (h *APIHandlers) GetNotifications(c fiber.Ctx) error {
	list, err := parseListRequest(c)
	if err != nil {
		return badRequest(c, "Invalid query parameters: "+err.Error())
	}

	unread, err := parseBoolQuery(c, "unread")
	if err != nil {
		return badRequest(c, "Invalid query parameters: "+err.Error())
	}

	result, err := h.notificationService.List(c.Context(), services.ListNotificationsRequest{
		ListRequest: list,
		UserID:      actor(c),
		UnreadOnly:  unread != nil && *unread,
	})
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return listResponse(c, "notifications", result, list)
}

func (h *APIHandlers) MarkNotificationRead(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Notification ID is required")
	}

	userID := actor(c)
	if userID == "" {
		return badRequest(c, "X-User-ID header is required")
	}

	notification, err := h.notificationService.MarkRead(c.Context(), userID, id)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(notification)
}

func (h *APIHandlers) MarkAllNotificationsRead(c fiber.Ctx) error {
	updated, err := h.notificationService.MarkAllRead(c.Context(), actor(c))
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{"updated": updated})
}
