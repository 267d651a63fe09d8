// Package file provides file-based persistence for workflows, forms and the catalog.
package file

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/dukex/fluxo/pkg/models"
	"github.com/dukex/fluxo/pkg/persistence"
)

// Persistence implements the persistence.Persistence interface using the file system.
type Persistence struct {
	root   string
	logger *slog.Logger

	workflows       *Repository[*models.Workflow]
	templates       *Repository[*models.WorkflowTemplate]
	forms           *Repository[*models.Form]
	products        *Repository[*models.Product]
	taxonomies      *Repository[*models.Taxonomy]
	productMappings *Repository[*models.ProductMapping]
	notifications   *Repository[*models.Notification]
	sharedRecords   *Repository[*models.SharedRecord]
}

// NewPersistence creates a new instance of Persistence with the specified root directory.
func NewPersistence(logger *slog.Logger, root string) *Persistence {
	cleanRoot := strings.Replace(root, "file://", "", 1)
	logger = logger.With("module", "file_persistence")

	return &Persistence{
		root:   cleanRoot,
		logger: logger,

		workflows: NewRepository(logger, cleanRoot, persistence.WorkflowsCollection,
			func() *models.Workflow { return &models.Workflow{} }),
		templates: NewRepository(logger, cleanRoot, persistence.TemplatesCollection,
			func() *models.WorkflowTemplate { return &models.WorkflowTemplate{} }),
		forms: NewRepository(logger, cleanRoot, persistence.FormsCollection,
			func() *models.Form { return &models.Form{} }),
		products: NewRepository(logger, cleanRoot, persistence.ProductsCollection,
			func() *models.Product { return &models.Product{} }),
		taxonomies: NewRepository(logger, cleanRoot, persistence.TaxonomiesCollection,
			func() *models.Taxonomy { return &models.Taxonomy{} }),
		productMappings: NewRepository(logger, cleanRoot, persistence.ProductMappingsCollection,
			func() *models.ProductMapping { return &models.ProductMapping{} }),
		notifications: NewRepository(logger, cleanRoot, persistence.NotificationsCollection,
			func() *models.Notification { return &models.Notification{} }),
		sharedRecords: NewRepository(logger, cleanRoot, persistence.SharedRecordsCollection,
			func() *models.SharedRecord { return &models.SharedRecord{} }),
	}
}

func (fp *Persistence) Workflows() persistence.Repository[*models.Workflow] {
	return fp.workflows
}

func (fp *Persistence) Templates() persistence.Repository[*models.WorkflowTemplate] {
	return fp.templates
}

func (fp *Persistence) Forms() persistence.Repository[*models.Form] {
	return fp.forms
}

func (fp *Persistence) Products() persistence.Repository[*models.Product] {
	return fp.products
}

func (fp *Persistence) Taxonomies() persistence.Repository[*models.Taxonomy] {
	return fp.taxonomies
}

func (fp *Persistence) ProductMappings() persistence.Repository[*models.ProductMapping] {
	return fp.productMappings
}

func (fp *Persistence) Notifications() persistence.Repository[*models.Notification] {
	return fp.notifications
}

func (fp *Persistence) SharedRecords() persistence.Repository[*models.SharedRecord] {
	return fp.sharedRecords
}

// Close performs any necessary cleanup. For file-based persistence, there is nothing to clean up.
func (fp *Persistence) Close(_ context.Context) error {
	return nil
}

// HealthCheck checks if the file persistence layer is healthy by verifying the root directory exists.
func (fp *Persistence) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(fp.root); os.IsNotExist(err) {
		return os.ErrNotExist
	}

	return nil
}
