package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// Load decodes the draft at key into v. It reports false when the slot is
// empty. A draft that no longer decodes is deleted and reported as absent.
func Load(ctx context.Context, store Store, key Key, v any) (bool, error) {
	raw, err := store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(raw, v); err != nil {
		slog.DebugContext(ctx, "discarding unreadable draft", "key", key, "error", err)

		if err := store.Delete(ctx, key); err != nil {
			return false, err
		}

		return false, nil
	}

	return true, nil
}

// Save encodes v into the draft at key.
func Save(ctx context.Context, store Store, key Key, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode draft %s: %w", key, err)
	}

	return store.Set(ctx, key, raw)
}

// Resolve decides where an editor starts from. For a record that already
// exists on the server the server copy wins and any leftover draft is
// dropped. For a new record the draft, if any, is loaded into v.
func Resolve(ctx context.Context, store Store, key Key, exists bool, v any) (bool, error) {
	if exists {
		return false, store.Delete(ctx, key)
	}

	return Load(ctx, store, key, v)
}
