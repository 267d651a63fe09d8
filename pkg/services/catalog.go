package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/dukex/fluxo/pkg/ai"
	"github.com/dukex/fluxo/pkg/eventbus"
	"github.com/dukex/fluxo/pkg/events"
	"github.com/dukex/fluxo/pkg/models"
	"github.com/dukex/fluxo/pkg/otelhelper"
	"github.com/dukex/fluxo/pkg/persistence"
	"go.opentelemetry.io/otel/attribute"
)

// Languages are the catalog translation targets, Portuguese first.
var Languages = []string{"pt", "en", "es"}

type Catalog struct {
	persistence persistence.Persistence
	publisher   eventbus.EventPublisher
	helper      ai.Helper
	logger      *slog.Logger
}

// NewCatalog creates a new catalog service. publisher may be nil; a nil
// helper disables translation and image generation.
func NewCatalog(
	persistence persistence.Persistence,
	publisher eventbus.EventPublisher,
	helper ai.Helper,
	logger *slog.Logger,
) *Catalog {
	if helper == nil {
		helper = ai.Disabled{}
	}

	return &Catalog{
		persistence: persistence,
		publisher:   publisher,
		helper:      helper,
		logger:      logger.With("service", "catalog"),
	}
}

// ListProductsRequest contains options for listing products.
type ListProductsRequest struct {
	ListRequest

	Active *bool
	Code   string
}

func (c *Catalog) ListProducts(ctx context.Context, req ListProductsRequest) (*ListResponse[*models.Product], error) {
	const op = "Catalog.ListProducts"

	err := req.normalize(op)
	if err != nil {
		return nil, err
	}

	filters := map[string]string{}
	stringFilter(filters, "code", req.Code)
	boolFilter(filters, "active", req.Active)

	return listPage(ctx, op, c.persistence.Products(), req.ListRequest, filters)
}

// FetchProduct retrieves a product with its classification.
func (c *Catalog) FetchProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := c.persistence.Products().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	mappings, err := c.mappings(ctx, "product_id", id)
	if err != nil {
		return nil, err
	}

	for _, kind := range models.TaxonomyKinds() {
		product.SetTaxonomyIDs(kind, nil)
	}

	for _, mapping := range mappings {
		product.SetTaxonomyIDs(mapping.Kind, append(product.TaxonomyIDs(mapping.Kind), mapping.TaxonomyID))
	}

	return product, nil
}

// SaveProduct writes the product row and then its mapping rows one by one.
// The writes are not atomic: when a mapping write fails the product row is
// already stored and the error reports the partial save.
func (c *Catalog) SaveProduct(ctx context.Context, actor string, product *models.Product) (*models.Product, error) {
	const op = "Catalog.SaveProduct"

	ctx, span := otelhelper.StartSpan(ctx, tracer, op,
		attribute.String(otelhelper.ProductIDKey, product.ID),
		attribute.String(otelhelper.UserIDKey, actor),
	)
	defer span.End()

	messages, err := c.validateProduct(ctx, product)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, err
	}

	err = newValidationFailed(op, messages)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, err
	}

	created := product.ID == ""
	if !created {
		existing, err := c.persistence.Products().GetByID(ctx, product.ID)

		switch {
		case persistence.IsNotFound(err):
			created = true
		case err != nil:
			otelhelper.SetError(span, err)

			return nil, err
		default:
			product.CreatedAt = existing.CreatedAt
		}
	}

	// Classification lives in the mapping rows only.
	row := *product
	for _, kind := range models.TaxonomyKinds() {
		row.SetTaxonomyIDs(kind, nil)
	}

	err = c.persistence.Products().Save(ctx, &row)
	if err != nil {
		otelhelper.SetError(span, err)
		c.logger.ErrorContext(ctx, "failed to save product", "product_id", product.ID, "error", err)

		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	product.ID = row.ID
	product.CreatedAt = row.CreatedAt
	product.UpdatedAt = row.UpdatedAt

	err = c.syncMappings(ctx, product)
	if err != nil {
		otelhelper.SetError(span, err)
		c.logger.ErrorContext(ctx, "product saved without all its mappings", "product_id", product.ID, "error", err)

		return nil, fmt.Errorf("product %s saved but its classification was not: %w", product.ID, err)
	}

	publish(ctx, c.logger, c.publisher, product.ID, events.ProductSaved{
		BaseEvent: events.NewBaseEvent(events.ProductSavedEvent, actor),
		ProductID: product.ID,
		Code:      product.Code,
		Name:      product.GetName(),
		Created:   created,
	})

	return product, nil
}

func (c *Catalog) validateProduct(ctx context.Context, product *models.Product) ([]string, error) {
	messages := structMessages(product)

	for _, kind := range models.TaxonomyKinds() {
		for _, id := range product.TaxonomyIDs(kind) {
			taxonomy, err := c.persistence.Taxonomies().GetByID(ctx, id)
			if persistence.IsNotFound(err) {
				messages = append(messages, fmt.Sprintf("Classificação inexistente: %s", id))

				continue
			}

			if err != nil {
				return nil, err
			}

			if taxonomy.Kind != kind {
				messages = append(messages, fmt.Sprintf("Classificação %q não é do tipo %s", taxonomy.Name, kind))
			}
		}
	}

	return messages, nil
}

// syncMappings deletes the rows the product no longer wants and creates the
// missing ones.
func (c *Catalog) syncMappings(ctx context.Context, product *models.Product) error {
	existing, err := c.mappings(ctx, "product_id", product.ID)
	if err != nil {
		return err
	}

	have := map[string]bool{}

	for _, mapping := range existing {
		if slices.Contains(product.TaxonomyIDs(mapping.Kind), mapping.TaxonomyID) && !have[mappingKey(mapping.Kind, mapping.TaxonomyID)] {
			have[mappingKey(mapping.Kind, mapping.TaxonomyID)] = true

			continue
		}

		err := c.persistence.ProductMappings().Delete(ctx, mapping.ID)
		if err != nil {
			return fmt.Errorf("failed to delete mapping %s: %w", mapping.ID, err)
		}
	}

	for _, kind := range models.TaxonomyKinds() {
		for _, id := range product.TaxonomyIDs(kind) {
			if have[mappingKey(kind, id)] {
				continue
			}

			err := c.persistence.ProductMappings().Save(ctx, &models.ProductMapping{
				ProductID:  product.ID,
				Kind:       kind,
				TaxonomyID: id,
			})
			if err != nil {
				return fmt.Errorf("failed to save %s mapping %s: %w", kind, id, err)
			}

			have[mappingKey(kind, id)] = true
		}
	}

	return nil
}

func mappingKey(kind models.TaxonomyKind, id string) string {
	return string(kind) + ":" + id
}

func (c *Catalog) mappings(ctx context.Context, key, value string) ([]*models.ProductMapping, error) {
	mappings, err := collect(ctx, c.persistence.ProductMappings(), persistence.ListOptions{
		Filters:   map[string]string{key: value},
		SortBy:    persistence.SortByCreatedAt,
		SortOrder: persistence.SortAsc,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list product mappings: %w", err)
	}

	return mappings, nil
}

// DeleteProduct removes the product and its mapping rows.
func (c *Catalog) DeleteProduct(ctx context.Context, id string) error {
	_, err := c.persistence.Products().GetByID(ctx, id)
	if err != nil {
		return err
	}

	mappings, err := c.mappings(ctx, "product_id", id)
	if err != nil {
		return err
	}

	for _, mapping := range mappings {
		err := c.persistence.ProductMappings().Delete(ctx, mapping.ID)
		if err != nil {
			return fmt.Errorf("failed to delete mapping %s: %w", mapping.ID, err)
		}
	}

	err = c.persistence.Products().Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}

// ListTaxonomies returns every taxonomy entry of kind, or of all kinds when
// kind is blank, sorted by name.
func (c *Catalog) ListTaxonomies(ctx context.Context, kind string) ([]*models.Taxonomy, error) {
	filters := map[string]string{}
	stringFilter(filters, "kind", kind)

	taxonomies, err := collect(ctx, c.persistence.Taxonomies(), persistence.ListOptions{
		Filters:   filters,
		SortBy:    persistence.SortByName,
		SortOrder: persistence.SortAsc,
	})
	if err != nil {
		return nil, mapListError("Catalog.ListTaxonomies", err)
	}

	if taxonomies == nil {
		taxonomies = []*models.Taxonomy{}
	}

	return taxonomies, nil
}

func (c *Catalog) SaveTaxonomy(ctx context.Context, taxonomy *models.Taxonomy) (*models.Taxonomy, error) {
	const op = "Catalog.SaveTaxonomy"

	taxonomy.Name = strings.TrimSpace(taxonomy.Name)

	err := newValidationFailed(op, structMessages(taxonomy))
	if err != nil {
		return nil, err
	}

	if taxonomy.ID != "" {
		existing, err := c.persistence.Taxonomies().GetByID(ctx, taxonomy.ID)
		if err != nil && !persistence.IsNotFound(err) {
			return nil, err
		}

		if err == nil {
			taxonomy.CreatedAt = existing.CreatedAt
		}
	}

	err = c.persistence.Taxonomies().Save(ctx, taxonomy)
	if err != nil {
		return nil, fmt.Errorf("failed to save taxonomy: %w", err)
	}

	return taxonomy, nil
}

// DeleteTaxonomy removes the entry and unlinks it from every product.
func (c *Catalog) DeleteTaxonomy(ctx context.Context, id string) error {
	_, err := c.persistence.Taxonomies().GetByID(ctx, id)
	if err != nil {
		return err
	}

	mappings, err := c.mappings(ctx, "taxonomy_id", id)
	if err != nil {
		return err
	}

	for _, mapping := range mappings {
		err := c.persistence.ProductMappings().Delete(ctx, mapping.ID)
		if err != nil {
			return fmt.Errorf("failed to delete mapping %s: %w", mapping.ID, err)
		}
	}

	return c.persistence.Taxonomies().Delete(ctx, id)
}

// Translate runs text through the AI helper.
func (c *Catalog) Translate(ctx context.Context, text, from, to string) (string, error) {
	if !slices.Contains(Languages, from) || !slices.Contains(Languages, to) {
		return "", NewValidationError("Catalog.Translate", "INVALID_LANGUAGE",
			fmt.Sprintf("languages must be one of %s", strings.Join(Languages, ", ")), ErrInvalidRequest)
	}

	translated, err := c.helper.Translate(ctx, text, from, to)
	if err != nil {
		c.logger.WarnContext(ctx, "translation failed", "from", from, "to", to, "error", err)

		return "", unavailable(err)
	}

	return translated, nil
}

// FillTranslations completes the names and descriptions of product missing
// in any language from the ones written in from. Nothing is stored and the
// product is left untouched when any translation fails.
func (c *Catalog) FillTranslations(ctx context.Context, product *models.Product, from string) error {
	names := cloneText(product.Names)
	descriptions := cloneText(product.Descriptions)

	for _, lang := range Languages {
		if lang == from {
			continue
		}

		for _, texts := range []map[string]string{names, descriptions} {
			if strings.TrimSpace(texts[lang]) != "" || strings.TrimSpace(texts[from]) == "" {
				continue
			}

			translated, err := c.Translate(ctx, texts[from], from, lang)
			if err != nil {
				return err
			}

			texts[lang] = translated
		}
	}

	product.Names = names
	product.Descriptions = descriptions

	return nil
}

func cloneText(texts map[string]string) map[string]string {
	out := make(map[string]string, len(texts))
	for k, v := range texts {
		out[k] = v
	}

	return out
}

// GenerateImage asks the AI helper for a product picture and returns its URL.
func (c *Catalog) GenerateImage(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", NewValidationError("Catalog.GenerateImage", "EMPTY_PROMPT", "prompt cannot be empty", ErrInvalidRequest)
	}

	url, err := c.helper.GenerateImage(ctx, prompt)
	if err != nil {
		c.logger.WarnContext(ctx, "image generation failed", "error", err)

		return "", unavailable(err)
	}

	return url, nil
}

func unavailable(err error) error {
	if errors.Is(err, ErrAIUnavailable) {
		return err
	}

	return fmt.Errorf("%w: %w", ErrAIUnavailable, err)
}
