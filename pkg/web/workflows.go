package web

import (
	"github.com/dukex/fluxo/pkg/services"
	"github.com/gofiber/fiber/v3"
)

func (h *APIHandlers) GetWorkflows(c fiber.Ctx) error {
	req, err := h.parseListWorkflowsRequest(c)
	if err != nil {
		return badRequest(c, "Invalid query parameters: "+err.Error())
	}

	result, err := h.workflowService.List(c.Context(), *req)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return listResponse(c, "workflows", result, req.ListRequest)
}

// parseListWorkflowsRequest parses query parameters for listing workflows.
// The listing is always limited to what the caller may see.
func (h *APIHandlers) parseListWorkflowsRequest(c fiber.Ctx) (*services.ListWorkflowsRequest, error) {
	list, err := parseListRequest(c)
	if err != nil {
		return nil, err
	}

	isActive, err := parseBoolQuery(c, "is_active")
	if err != nil {
		return nil, err
	}

	caller := principal(c)

	return &services.ListWorkflowsRequest{
		ListRequest:  list,
		WorkflowType: c.Query("workflow_type"),
		IsActive:     isActive,
		Owner:        c.Query("owner"),
		Principal:    &caller,
	}, nil
}

func (h *APIHandlers) GetWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	workflow, err := h.workflowService.FetchByID(c.Context(), id)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(workflow)
}

func (h *APIHandlers) CreateWorkflow(c fiber.Ctx) error {
	var req WorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return invalidBody(c, err)
	}

	created, err := h.workflowService.Create(c.Context(), actor(c), req.toModel())
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *APIHandlers) UpdateWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	var req WorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return invalidBody(c, err)
	}

	updated, err := h.workflowService.Update(c.Context(), actor(c), id, req.toModel())
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(updated)
}

func (h *APIHandlers) DeleteWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	if err := h.workflowService.Delete(c.Context(), actor(c), id); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ValidateWorkflow runs the save-time checks without storing anything. The
// findings are advisory, so an invalid workflow is still a 200.
func (h *APIHandlers) ValidateWorkflow(c fiber.Ctx) error {
	var req WorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	return c.JSON(newValidationResponse(h.workflowService.Validate(req.toModel())))
}
