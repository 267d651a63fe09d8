package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dukex/fluxo/pkg/ai"
	"github.com/dukex/fluxo/pkg/cmd"
	"github.com/dukex/fluxo/pkg/log"
	"github.com/dukex/fluxo/pkg/otelhelper"
	"github.com/dukex/fluxo/pkg/registry"
	"github.com/joho/godotenv"
	cli "github.com/urfave/cli/v3"
)

const defaultPort = 9091

func main() {
	// A missing .env is fine, the environment may be set by other means.
	_ = godotenv.Load()

	err := newCommand().Run(context.Background(), os.Args)
	if err != nil {
		panic(err)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:                  "fluxo-api",
		Usage:                 "Build workflows, forms and the product catalog",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:     "database-url",
				Usage:    "Persistence URL (file://<dir> or postgres://...)",
				Required: true,
				Sources:  cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "drafts-url",
				Usage:   "Draft store URL (memory://, file://<dir> or redis://...)",
				Value:   "memory://",
				Sources: cli.EnvVars("DRAFTS_URL"),
			},
			&cli.StringFlag{
				Name:    "event-bus",
				Usage:   "Event bus type (gochannel, kafka)",
				Value:   "gochannel",
				Sources: cli.EnvVars("EVENT_BUS_TYPE"),
			},
			&cli.StringFlag{
				Name:    "kafka-brokers",
				Usage:   "Comma separated Kafka brokers, used by the kafka event bus",
				Sources: cli.EnvVars("KAFKA_BROKERS"),
			},
			&cli.StringFlag{
				Name:    "openai-api-key",
				Usage:   "API key of the AI helper; translation and image generation are off without it",
				Sources: cli.EnvVars("OPENAI_API_KEY"),
			},
			&cli.StringFlag{
				Name:    "openai-base-url",
				Usage:   "Base URL of an OpenAI compatible API",
				Sources: cli.EnvVars("OPENAI_BASE_URL"),
			},
			&cli.BoolFlag{
				Name:    "otel-enabled",
				Usage:   "Export traces over OTLP/HTTP",
				Sources: cli.EnvVars("OTEL_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "Log format (text, json)",
				Value:   "text",
				Sources: cli.EnvVars("LOG_FORMAT"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"), command.String("log-format"))
			logger := log.WithModule("api")

			logger.InfoContext(ctx, "Initializing Fluxo API")

			if command.Bool("otel-enabled") {
				if _, err := otelhelper.NewTracer(ctx, "fluxo-api"); err != nil {
					return err
				}
			}

			persistence, err := cmd.NewPersistence(ctx, logger, command.String("database-url"))
			if err != nil {
				return err
			}

			defer func() {
				err := persistence.Close(ctx)
				if err != nil {
					logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
				}
			}()

			draftStore, err := cmd.NewDraftStore(ctx, logger, command.String("drafts-url"))
			if err != nil {
				return err
			}

			defer func() {
				if err := draftStore.Close(); err != nil {
					logger.ErrorContext(ctx, "Failed to close draft store", "error", err)
				}
			}()

			eventBus, err := cmd.NewEventBus(command.String("event-bus"), command.String("kafka-brokers"), logger)
			if err != nil {
				return err
			}

			defer func() {
				if err := eventBus.Close(); err != nil {
					logger.ErrorContext(ctx, "Failed to close event bus", "error", err)
				}
			}()

			helper := cmd.NewAIHelper(ai.Config{
				APIKey:  command.String("openai-api-key"),
				BaseURL: command.String("openai-base-url"),
			}, logger)

			api := NewAPI(
				logger,
				persistence,
				registry.Default(),
				eventBus,
				draftStore,
				helper,
			)

			if err := api.Prepare(ctx); err != nil {
				return err
			}

			if err := api.Start(command.Int("port")); err != nil {
				logger.ErrorContext(ctx, "Failed to start API server", "error", err)

				return fmt.Errorf("failed to start API server: %w", err)
			}

			return nil
		},
	}
}
