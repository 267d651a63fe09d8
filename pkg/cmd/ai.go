package cmd

import (
	"log/slog"

	"github.com/dukex/fluxo/pkg/ai"
)

// NewAIHelper returns the OpenAI helper when an api key is configured and a
// helper that always reports unavailability otherwise.
//
// nolint:ireturn // the disabled helper has no other shape
func NewAIHelper(cfg ai.Config, logger *slog.Logger) ai.Helper {
	if cfg.APIKey == "" {
		logger.Info("AI helper disabled, translation and image generation will be unavailable")

		return ai.Disabled{}
	}

	helper, err := ai.NewOpenAI(cfg, logger)
	if err != nil {
		logger.Warn("AI helper disabled", "error", err)

		return ai.Disabled{}
	}

	return helper
}
