// Package postgresql provides PostgreSQL persistence for workflows, forms and the catalog.
package postgresql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/dukex/fluxo/pkg/models"
	"github.com/dukex/fluxo/pkg/persistence"
	"github.com/dukex/fluxo/pkg/persistence/sqlbase"
	_ "github.com/lib/pq"
)

// Persistence implements the persistence layer for PostgreSQL. Every
// collection is a table of JSONB documents.
type Persistence struct {
	db     *sql.DB
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

// NewPersistence creates a new PostgreSQL persistence layer.
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) (*Persistence, error) {
	database, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	err = database.PingContext(ctx)
	if err != nil {
		_ = database.Close()

		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger = logger.With("module", "postgresql_persistence")

	// Run migrations on initialization
	err = sqlbase.NewMigrationManager(logger, database, migrations()).RunMigrations(ctx)
	if err != nil {
		_ = database.Close()

		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Persistence{
		db:     database,
		logger: logger,

		workflows: NewRepository(database, logger, persistence.WorkflowsCollection,
			func() *models.Workflow { return &models.Workflow{} }),
		templates: NewRepository(database, logger, persistence.TemplatesCollection,
			func() *models.WorkflowTemplate { return &models.WorkflowTemplate{} }),
		forms: NewRepository(database, logger, persistence.FormsCollection,
			func() *models.Form { return &models.Form{} }),
		products: NewRepository(database, logger, persistence.ProductsCollection,
			func() *models.Product { return &models.Product{} }),
		taxonomies: NewRepository(database, logger, persistence.TaxonomiesCollection,
			func() *models.Taxonomy { return &models.Taxonomy{} }),
		productMappings: NewRepository(database, logger, persistence.ProductMappingsCollection,
			func() *models.ProductMapping { return &models.ProductMapping{} }),
		notifications: NewRepository(database, logger, persistence.NotificationsCollection,
			func() *models.Notification { return &models.Notification{} }),
		sharedRecords: NewRepository(database, logger, persistence.SharedRecordsCollection,
			func() *models.SharedRecord { return &models.SharedRecord{} }),
	}, nil
}

func (p *Persistence) Workflows() persistence.Repository[*models.Workflow] {
	return p.workflows
}

func (p *Persistence) Templates() persistence.Repository[*models.WorkflowTemplate] {
	return p.templates
}

func (p *Persistence) Forms() persistence.Repository[*models.Form] {
	return p.forms
}

func (p *Persistence) Products() persistence.Repository[*models.Product] {
	return p.products
}

func (p *Persistence) Taxonomies() persistence.Repository[*models.Taxonomy] {
	return p.taxonomies
}

func (p *Persistence) ProductMappings() persistence.Repository[*models.ProductMapping] {
	return p.productMappings
}

func (p *Persistence) Notifications() persistence.Repository[*models.Notification] {
	return p.notifications
}

func (p *Persistence) SharedRecords() persistence.Repository[*models.SharedRecord] {
	return p.sharedRecords
}

// Close closes the database connection.
func (p *Persistence) Close(_ context.Context) error {
	if p.db != nil {
		err := p.db.Close()
		if err != nil {
			return fmt.Errorf("failed to close database connection: %w", err)
		}
	}

	return nil
}

// HealthCheck verifies the database connection is healthy.
func (p *Persistence) HealthCheck(ctx context.Context) error {
	err := p.db.PingContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}
