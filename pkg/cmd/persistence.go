// Package cmd provides common initialization functions for command-line applications.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dukex/fluxo/pkg/persistence"
	"github.com/dukex/fluxo/pkg/persistence/file"
	"github.com/dukex/fluxo/pkg/persistence/postgresql"
)

// scheme splits url into its scheme and the rest. URLs without a scheme
// are plain paths.
func scheme(url string) (string, string) {
	provider, rest, found := strings.Cut(url, "://")
	if !found {
		return "", url
	}

	return strings.ToLower(provider), rest
}

// NewPersistence picks the storage backend from the database url:
// postgres:// and postgresql:// use PostgreSQL, file:// and bare paths store
// JSON documents on disk.
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) (persistence.Persistence, error) {
	provider, rest := scheme(databaseURL)

	switch provider {
	case "postgres", "postgresql":
		p, err := postgresql.NewPersistence(ctx, logger, databaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres persistence: %w", err)
		}

		return p, nil
	case "file", "":
		if rest == "" {
			return nil, fmt.Errorf("file persistence needs a directory, got %q", databaseURL)
		}

		return file.NewPersistence(logger, rest), nil
	default:
		return nil, fmt.Errorf("unsupported persistence provider %q", provider)
	}
}
