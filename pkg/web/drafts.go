package web

import (
	"encoding/json"
	"errors"
	"net/url"

	"github.com/dukex/fluxo/pkg/drafts"
	"github.com/gofiber/fiber/v3"
)

// draftKey reads the draft slot from the path and scopes it to the caller.
func draftKey(c fiber.Ctx) (drafts.Key, bool) {
	raw, err := url.PathUnescape(c.Params("key"))
	if err != nil {
		return "", false
	}

	key := drafts.Key(raw)
	if !key.Valid() {
		return "", false
	}

	return key.ForUser(actor(c)), true
}

func (h *APIHandlers) GetDraft(c fiber.Ctx) error {
	key, ok := draftKey(c)
	if !ok {
		return badRequest(c, "Invalid draft key")
	}

	value, err := h.drafts.Get(c.Context(), key)
	if errors.Is(err, drafts.ErrNotFound) {
		return notFound(c, "Draft not found")
	}

	if err != nil {
		h.logger.ErrorContext(c.Context(), "failed to read draft", "key", key.String(), "error", err)

		return internalError(c, err)
	}

	// Corrupt drafts are treated as absent and removed.
	if !json.Valid(value) {
		h.logger.DebugContext(c.Context(), "discarding corrupt draft", "key", key.String())

		if err := h.drafts.Delete(c.Context(), key); err != nil {
			h.logger.WarnContext(c.Context(), "failed to discard corrupt draft", "key", key.String(), "error", err)
		}

		return notFound(c, "Draft not found")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	return c.Send(value)
}

func (h *APIHandlers) PutDraft(c fiber.Ctx) error {
	key, ok := draftKey(c)
	if !ok {
		return badRequest(c, "Invalid draft key")
	}

	body := c.Body()
	if !json.Valid(body) {
		return badRequest(c, "Invalid JSON format")
	}

	// fasthttp reuses the body buffer once the handler returns.
	value := append([]byte(nil), body...)

	if err := h.drafts.Set(c.Context(), key, value); err != nil {
		h.logger.ErrorContext(c.Context(), "failed to write draft", "key", key.String(), "error", err)

		return internalError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) DeleteDraft(c fiber.Ctx) error {
	key, ok := draftKey(c)
	if !ok {
		return badRequest(c, "Invalid draft key")
	}

	if err := h.drafts.Delete(c.Context(), key); err != nil {
		h.logger.ErrorContext(c.Context(), "failed to delete draft", "key", key.String(), "error", err)

		return internalError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
