// Package web provides the HTTP handlers of the workflow, form and catalog APIs.
package web

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dukex/fluxo/pkg/access"
	"github.com/dukex/fluxo/pkg/drafts"
	"github.com/dukex/fluxo/pkg/registry"
	"github.com/dukex/fluxo/pkg/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

const (
	headerUserID          = "X-User-ID"
	headerUserDepartments = "X-User-Departments"
	headerUserRoles       = "X-User-Roles"
)

// Services groups the services the handlers delegate to.
type Services struct {
	Workflows     *services.Workflow
	Templates     *services.Template
	Forms         *services.Form
	Catalog       *services.Catalog
	Notifications *services.Notification
}

type APIHandlers struct {
	workflowService     *services.Workflow
	templateService     *services.Template
	formService         *services.Form
	catalogService      *services.Catalog
	notificationService *services.Notification
	drafts              drafts.Store
	validator           *validator.Validate
	registry            *registry.Registry
	logger              *slog.Logger
}

func NewAPIHandlers(
	svc Services,
	draftStore drafts.Store,
	validator *validator.Validate,
	registry *registry.Registry,
	logger *slog.Logger,
) *APIHandlers {
	return &APIHandlers{
		workflowService:     svc.Workflows,
		templateService:     svc.Templates,
		formService:         svc.Forms,
		catalogService:      svc.Catalog,
		notificationService: svc.Notifications,
		drafts:              draftStore,
		validator:           validator,
		registry:            registry,
		logger:              logger.With("module", "web"),
	}
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	registryCheck, regOk := h.registry.HealthCheck()
	repositoryCheck, repOk := h.workflowService.HealthCheck(c.Context())

	status := "unhealthy"
	message := "Fluxo API is unhealthy"
	httpStatus := http.StatusInternalServerError

	if regOk && repOk {
		status = "healthy"
		message = "Fluxo API is healthy"
		httpStatus = http.StatusOK
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"checkers": fiber.Map{
			"registry":   registryCheck,
			"repository": repositoryCheck,
		},
		"timestamp": time.Now().UTC(),
	})
}

// GetNodeTypes returns the workflow editor palette.
func (h *APIHandlers) GetNodeTypes(c fiber.Ctx) error {
	return c.JSON(h.registry.Nodes())
}

// GetFieldTypes returns the form builder palette.
func (h *APIHandlers) GetFieldTypes(c fiber.Ctx) error {
	return c.JSON(h.registry.Fields())
}

// actor is the user the request acts on behalf of. Identity is established
// upstream; blank means anonymous.
func actor(c fiber.Ctx) string {
	return strings.TrimSpace(c.Get(headerUserID))
}

func principal(c fiber.Ctx) access.Principal {
	return access.Principal{
		UserID:      actor(c),
		Departments: splitHeader(c.Get(headerUserDepartments)),
		Roles:       splitHeader(c.Get(headerUserRoles)),
	}
}

func splitHeader(value string) []string {
	var out []string

	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}

// parseListRequest parses the pagination, sorting and search query parameters.
func parseListRequest(c fiber.Ctx) (services.ListRequest, error) {
	req := services.ListRequest{
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
		Search:    c.Query("search"),
	}

	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return req, err
		}

		req.Limit = limit
	}

	if offsetStr := c.Query("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			return req, err
		}

		req.Offset = offset
	}

	return req, nil
}

func parseBoolQuery(c fiber.Ctx, name string) (*bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err
	}

	return &value, nil
}

// listResponse renders a page with the pagination and sorting it was produced with.
func listResponse[T any](c fiber.Ctx, key string, result *services.ListResponse[T], req services.ListRequest) error {
	req = req.WithDefaults()

	return c.JSON(fiber.Map{
		key:             result.Items,
		"total_count":   result.TotalCount,
		"has_next_page": result.HasNextPage,
		"pagination": fiber.Map{
			"limit":  req.Limit,
			"offset": req.Offset,
		},
		"sorting": fiber.Map{
			"sort_by":    req.SortBy,
			"sort_order": req.SortOrder,
		},
	})
}
