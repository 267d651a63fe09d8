package web

import (
	"errors"
	"strings"

	"github.com/dukex/fluxo/pkg/persistence"
	"github.com/dukex/fluxo/pkg/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/moogar0880/problems"
)

// validationProblem is a 400 problem listing every message an editor should show.
type validationProblem struct {
	*problems.Problem

	Messages []string `json:"messages,omitempty"`
}

func badRequest(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(400).
		WithInstance(c.Path()).
		WithType("validation_error").
		WithDetail(detail)

	return c.Status(fiber.StatusBadRequest).JSON(problem)
}

func invalid(c fiber.Ctx, detail string, messages []string) error {
	problem := validationProblem{
		Problem: problems.NewStatusProblem(400).
			WithInstance(c.Path()).
			WithType("validation_error").
			WithDetail(detail),
		Messages: messages,
	}

	return c.Status(fiber.StatusBadRequest).JSON(problem)
}

// invalidBody reports the validator failures of a request body.
func invalidBody(c fiber.Ctx, err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return badRequest(c, err.Error())
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages = append(messages, fe.Error())
	}

	return invalid(c, "Invalid request body", messages)
}

func notFound(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(404).
		WithInstance(c.Path()).
		WithType("not_found").
		WithDetail(detail)

	return c.Status(fiber.StatusNotFound).JSON(problem)
}

func internalError(c fiber.Ctx, err error) error {
	problem := problems.NewStatusProblem(500).
		WithInstance(c.Path()).
		WithType("internal_error").
		WithError(err)

	return c.Status(fiber.StatusInternalServerError).JSON(problem)
}

var notFoundErrors = []error{
	persistence.ErrWorkflowNotFound,
	persistence.ErrTemplateNotFound,
	persistence.ErrFormNotFound,
	persistence.ErrProductNotFound,
	persistence.ErrTaxonomyNotFound,
	persistence.ErrNotificationNotFound,
}

// handleServiceError provides typed error handling for service layer errors.
func (h *APIHandlers) handleServiceError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrValidationFailed):
		return invalid(c, "validation failed", services.ValidationMessages(err))

	case services.IsValidationError(err):
		return badRequest(c, err.Error())

	case services.IsNotFoundError(err):
		for _, target := range notFoundErrors {
			if errors.Is(err, target) {
				problem := problems.NewStatusProblem(404).
					WithInstance(c.Path()).
					WithType(strings.ReplaceAll(target.Error(), " ", "_")).
					WithDetail(target.Error())

				return c.Status(fiber.StatusNotFound).JSON(problem)
			}
		}

		return notFound(c, "record not found")

	case services.IsUnavailableError(err):
		problem := problems.NewStatusProblem(503).
			WithInstance(c.Path()).
			WithType("ai_unavailable").
			WithDetail("the AI helper is not available, try again later")

		return c.Status(fiber.StatusServiceUnavailable).JSON(problem)

	default:
		// Log unexpected errors but don't expose details
		h.logger.ErrorContext(c.Context(), "request failed", "path", c.Path(), "method", c.Method(), "error", err)

		return internalError(c, err)
	}
}
