package web

import (
	"github.com/dukex/fluxo/pkg/services"
	"github.com/gofiber/fiber/v3"
)

func (h *APIHandlers) GetTemplates(c fiber.Ctx) error {
	list, err := parseListRequest(c)
	if err != nil {
		return badRequest(c, "Invalid query parameters: "+err.Error())
	}

	req := services.ListTemplatesRequest{
		ListRequest:     list,
		Category:        c.Query("category"),
		ComplexityLevel: c.Query("complexity_level"),
		WorkflowType:    c.Query("workflow_type"),
	}

	result, err := h.templateService.List(c.Context(), req)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return listResponse(c, "templates", result, list)
}

func (h *APIHandlers) GetTemplate(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Template ID is required")
	}

	template, err := h.templateService.FetchByID(c.Context(), id)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(template)
}

// PreviewTemplate returns the template graph as the editor would open it.
func (h *APIHandlers) PreviewTemplate(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Template ID is required")
	}

	preview, err := h.templateService.Preview(c.Context(), id)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(preview)
}

// UseTemplate creates a workflow from the template. The body is optional.
func (h *APIHandlers) UseTemplate(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Template ID is required")
	}

	var req UseTemplateRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().JSON(&req); err != nil {
			return badRequest(c, "Invalid JSON format")
		}

		if err := h.validator.Struct(req); err != nil {
			return invalidBody(c, err)
		}
	}

	workflow, err := h.templateService.Use(c.Context(), actor(c), id, services.UseTemplateRequest{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(workflow)
}
