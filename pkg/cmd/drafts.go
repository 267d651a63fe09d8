package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dukex/fluxo/pkg/drafts"
)

// DraftTTL bounds how long redis keeps an untouched draft.
const DraftTTL = 30 * 24 * time.Hour

// NewDraftStore picks the draft store from url: memory:// (or blank) keeps
// drafts in process, file://<dir> writes one file per draft and redis://
// shares them between instances.
func NewDraftStore(ctx context.Context, logger *slog.Logger, url string) (drafts.Store, error) {
	if url == "" {
		return drafts.NewMemoryStore(), nil
	}

	provider, rest := scheme(url)

	switch provider {
	case "memory":
		return drafts.NewMemoryStore(), nil
	case "file", "":
		return drafts.NewFileStore(rest, logger)
	case "redis", "rediss":
		return drafts.NewRedisStore(ctx, logger, url, DraftTTL)
	default:
		return nil, fmt.Errorf("unsupported drafts provider %q", provider)
	}
}
