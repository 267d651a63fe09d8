// Package ai wraps the text and image generation helpers used by the catalog.
package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// ErrUnavailable is returned when the helper is not configured or the
// provider could not produce a result.
var ErrUnavailable = errors.New("ai helper unavailable")

const (
	DefaultModel     = openai.GPT4oMini
	DefaultImageSize = openai.CreateImageSize1024x1024
)

var languageNames = map[string]string{
	"pt": "Brazilian Portuguese",
	"en": "English",
	"es": "Spanish",
}

// Helper translates text and generates images from prompts.
type Helper interface {
	Translate(ctx context.Context, text, from, to string) (string, error)
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	ImageModel string
	ImageSize  string
}

// OpenAI is a Helper backed by an OpenAI compatible API.
type OpenAI struct {
	client     *openai.Client
	model      string
	imageModel string
	imageSize  string
	logger     *slog.Logger
}

func NewOpenAI(cfg Config, logger *slog.Logger) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: missing api key", ErrUnavailable)
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	if cfg.ImageModel == "" {
		cfg.ImageModel = openai.CreateImageModelDallE3
	}

	if cfg.ImageSize == "" {
		cfg.ImageSize = DefaultImageSize
	}

	return &OpenAI{
		client:     openai.NewClientWithConfig(clientConfig),
		model:      cfg.Model,
		imageModel: cfg.ImageModel,
		imageSize:  cfg.ImageSize,
		logger:     logger.With("module", "ai"),
	}, nil
}

func languageName(code string) string {
	if name, ok := languageNames[strings.ToLower(code)]; ok {
		return name
	}

	return code
}

// Translate returns text translated from one language code to another.
func (o *OpenAI) Translate(ctx context.Context, text, from, to string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf(
					"Translate the user's product text from %s to %s. Reply with the translation only.",
					languageName(from), languageName(to),
				),
			},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: 0.2,
	})
	if err != nil {
		o.logger.ErrorContext(ctx, "translation failed", "error", err)

		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrUnavailable)
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// GenerateImage returns the URL of an image generated from prompt.
func (o *OpenAI) GenerateImage(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          o.imageModel,
		Size:           o.imageSize,
		N:              1,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		o.logger.ErrorContext(ctx, "image generation failed", "error", err)

		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", fmt.Errorf("%w: empty response", ErrUnavailable)
	}

	return resp.Data[0].URL, nil
}

// Disabled is the Helper used when no provider is configured.
type Disabled struct{}

func (Disabled) Translate(context.Context, string, string, string) (string, error) {
	return "", ErrUnavailable
}

func (Disabled) GenerateImage(context.Context, string) (string, error) {
	return "", ErrUnavailable
}
