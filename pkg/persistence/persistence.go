// Package persistence provides the data storage abstraction for workflows,
// templates, forms and the product catalog.
package persistence

import (
	"context"

	"github.com/dukex/fluxo/pkg/models"
)

// Repository stores one collection of records.
type Repository[T models.Entity] interface {
	List(ctx context.Context, opts ListOptions) (*ListResult[T], error)
	// GetByID fails with an *EntityError wrapping the collection's not found
	// error when no record has the id.
	GetByID(ctx context.Context, id string) (T, error)
	// Save inserts or replaces the record. Records without an id get one.
	Save(ctx context.Context, entity T) error
	// Delete is a no-op for unknown ids.
	Delete(ctx context.Context, id string) error
}

type Persistence interface {
	Workflows() Repository[*models.Workflow]
	Templates() Repository[*models.WorkflowTemplate]
	Forms() Repository[*models.Form]
	Products() Repository[*models.Product]
	Taxonomies() Repository[*models.Taxonomy]
	ProductMappings() Repository[*models.ProductMapping]
	Notifications() Repository[*models.Notification]
	SharedRecords() Repository[*models.SharedRecord]

	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}

// Collection names a stored record kind and the error reported when one of
// its records is missing.
type Collection struct {
	Name     string
	NotFound error
}

var (
	WorkflowsCollection       = Collection{Name: "workflows", NotFound: ErrWorkflowNotFound}
	TemplatesCollection       = Collection{Name: "workflow_templates", NotFound: ErrTemplateNotFound}
	FormsCollection           = Collection{Name: "forms", NotFound: ErrFormNotFound}
	ProductsCollection        = Collection{Name: "products", NotFound: ErrProductNotFound}
	TaxonomiesCollection      = Collection{Name: "taxonomies", NotFound: ErrTaxonomyNotFound}
	ProductMappingsCollection = Collection{Name: "product_mappings", NotFound: ErrProductMappingNotFound}
	NotificationsCollection   = Collection{Name: "notifications", NotFound: ErrNotificationNotFound}
	SharedRecordsCollection   = Collection{Name: "shared_records", NotFound: ErrSharedRecordNotFound}
)

// Collections lists every collection in creation order.
func Collections() []Collection {
	return []Collection{
		WorkflowsCollection,
		TemplatesCollection,
		FormsCollection,
		ProductsCollection,
		TaxonomiesCollection,
		ProductMappingsCollection,
		NotificationsCollection,
		SharedRecordsCollection,
	}
}
