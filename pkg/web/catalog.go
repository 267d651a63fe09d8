package web

import (
	"github.com/dukex/fluxo/pkg/models"
	"github.com/dukex/fluxo/pkg/services"
	"github.com/gofiber/fiber/v3"
)

func (h *APIHandlers) GetProducts(c fiber.Ctx) error {
	list, err := parseListRequest(c)
	if err != nil {
		return badRequest(c, "Invalid query parameters: "+err.Error())
	}

	active, err := parseBoolQuery(c, "active")
	if err != nil {
		return badRequest(c, "Invalid query parameters: "+err.Error())
	}

	result, err := h.catalogService.ListProducts(c.Context(), services.ListProductsRequest{
		ListRequest: list,
		Active:      active,
		Code:        c.Query("code"),
	})
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return listResponse(c, "products", result, list)
}

func (h *APIHandlers) GetProduct(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Product ID is required")
	}

	product, err := h.catalogService.FetchProduct(c.Context(), id)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(product)
}

func (h *APIHandlers) CreateProduct(c fiber.Ctx) error {
	return h.saveProduct(c, "", fiber.StatusCreated)
}

func (h *APIHandlers) UpdateProduct(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Product ID is required")
	}

	if _, err := h.catalogService.FetchProduct(c.Context(), id); err != nil {
		return h.handleServiceError(c, err)
	}

	return h.saveProduct(c, id, fiber.StatusOK)
}

func (h *APIHandlers) saveProduct(c fiber.Ctx, id string, status int) error {
	var req ProductRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return invalidBody(c, err)
	}

	product := req.toModel()
	product.ID = id

	if req.FillTranslationsFrom != "" {
		if err := h.catalogService.FillTranslations(c.Context(), product, req.FillTranslationsFrom); err != nil {
			return h.handleServiceError(c, err)
		}
	}

	saved, err := h.catalogService.SaveProduct(c.Context(), actor(c), product)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(status).JSON(saved)
}

func (h *APIHandlers) DeleteProduct(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Product ID is required")
	}

	if err := h.catalogService.DeleteProduct(c.Context(), id); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) GetTaxonomies(c fiber.Ctx) error {
	taxonomies, err := h.catalogService.ListTaxonomies(c.Context(), c.Query("kind"))
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{"taxonomies": taxonomies})
}

func (h *APIHandlers) CreateTaxonomy(c fiber.Ctx) error {
	var req TaxonomyRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return invalidBody(c, err)
	}

	taxonomy, err := h.catalogService.SaveTaxonomy(c.Context(), &models.Taxonomy{Kind: req.Kind, Name: req.Name})
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(taxonomy)
}

func (h *APIHandlers) DeleteTaxonomy(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Taxonomy ID is required")
	}

	if err := h.catalogService.DeleteTaxonomy(c.Context(), id); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) Translate(c fiber.Ctx) error {
	var req TranslateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return invalidBody(c, err)
	}

	text, err := h.catalogService.Translate(c.Context(), req.Text, req.From, req.To)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{"text": text, "from": req.From, "to": req.To})
}

func (h *APIHandlers) GenerateImage(c fiber.Ctx) error {
	var req ImageRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return invalidBody(c, err)
	}

	url, err := h.catalogService.GenerateImage(c.Context(), req.Prompt)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
}
