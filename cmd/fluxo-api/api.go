// Package main provides the Fluxo API server implementation.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/dukex/fluxo/pkg/ai"
	"github.com/dukex/fluxo/pkg/drafts"
	"github.com/dukex/fluxo/pkg/eventbus"
	"github.com/dukex/fluxo/pkg/persistence"
	"github.com/dukex/fluxo/pkg/registry"
	"github.com/dukex/fluxo/pkg/services"
	"github.com/dukex/fluxo/pkg/web"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

type API struct {
	logger   *slog.Logger
	registry *registry.Registry
	eventBus eventbus.EventBus
	drafts   drafts.Store
	validate *validator.Validate
	services web.Services
}

func NewAPI(
	logger *slog.Logger,
	persistence persistence.Persistence,
	registry *registry.Registry,
	eventBus eventbus.EventBus,
	draftStore drafts.Store,
	helper ai.Helper,
) *API {
	return &API{
		logger:   logger,
		registry: registry,
		eventBus: eventBus,
		drafts:   draftStore,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		services: web.Services{
			Workflows:     services.NewWorkflow(persistence, eventBus, logger),
			Templates:     services.NewTemplate(persistence, eventBus, logger),
			Forms:         services.NewForm(persistence, eventBus, logger),
			Catalog:       services.NewCatalog(persistence, eventBus, helper, logger),
			Notifications: services.NewNotification(persistence, logger),
		},
	}
}

// Prepare seeds the built-in templates and starts turning saved events into
// notifications. It must run before the first request is served.
func (a *API) Prepare(ctx context.Context) error {
	if _, err := a.services.Templates.SeedBuiltins(ctx); err != nil {
		return fmt.Errorf("failed to seed templates: %w", err)
	}

	if err := a.services.Notifications.RegisterHandlers(a.eventBus); err != nil {
		return fmt.Errorf("failed to register notification handlers: %w", err)
	}

	if err := a.eventBus.Subscribe(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to events: %w", err)
	}

	return nil
}

func (a *API) App() *fiber.App {
	handlers := web.NewAPIHandlers(a.services, a.drafts, a.validate, a.registry, a.logger)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("Fluxo API")
	})

	handlers.Register(app)

	return app
}

func (a *API) Start(port int) error {
	app := a.App()

	err := app.Listen(":" + strconv.Itoa(port))

	return err
}
