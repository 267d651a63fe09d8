package web

import (
	"github.com/dukex/fluxo/pkg/models"
	"github.com/dukex/fluxo/pkg/services"
	"github.com/gofiber/fiber/v3"
)

func (h *APIHandlers) GetForms(c fiber.Ctx) error {
	list, err := parseListRequest(c)
	if err != nil {
		return badRequest(c, "Invalid query parameters: "+err.Error())
	}

	isPublished, err := parseBoolQuery(c, "is_published")
	if err != nil {
		return badRequest(c, "Invalid query parameters: "+err.Error())
	}

	caller := principal(c)

	result, err := h.formService.List(c.Context(), services.ListFormsRequest{
		ListRequest: list,
		IsPublished: isPublished,
		Owner:       c.Query("owner"),
		Principal:   &caller,
	})
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return listResponse(c, "forms", result, list)
}

func (h *APIHandlers) GetForm(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Form ID is required")
	}

	form, err := h.formService.FetchByID(c.Context(), id)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(form)
}

func (h *APIHandlers) CreateForm(c fiber.Ctx) error {
	var req FormRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return invalidBody(c, err)
	}

	created, err := h.formService.Create(c.Context(), actor(c), req.toModel())
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateForm overwrites the stored form with the request body.
func (h *APIHandlers) UpdateForm(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Form ID is required")
	}

	var req FormRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return invalidBody(c, err)
	}

	updated, err := h.formService.Update(c.Context(), actor(c), id, req.toModel())
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(updated)
}

func (h *APIHandlers) DeleteForm(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Form ID is required")
	}

	if err := h.formService.Delete(c.Context(), id); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) GetFormWizard(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Form ID is required")
	}

	steps, err := h.formService.WizardSteps(c.Context(), id)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{"steps": steps})
}

// ValidateSubmission checks answers against the stored form.
func (h *APIHandlers) ValidateSubmission(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Form ID is required")
	}

	var req SubmissionRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return invalidBody(c, err)
	}

	messages, err := h.formService.ValidateSubmission(c.Context(), id, req.Values)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(newValidationResponse(messages))
}

// ValidateField checks a single field configuration from the field editor.
func (h *APIHandlers) ValidateField(c fiber.Ctx) error {
	var field models.FormField
	if err := c.Bind().JSON(&field); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	return c.JSON(newValidationResponse(h.formService.ValidateField(field)))
}
