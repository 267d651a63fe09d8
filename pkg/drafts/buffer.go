package drafts

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// DefaultDebounce is the delay between the last change and the draft write.
const DefaultDebounce = 500 * time.Millisecond

// Buffer collects editor snapshots and writes the latest one to a store
// after the editor has been quiet for the debounce delay.
type Buffer struct {
	store  Store
	key    Key
	delay  time.Duration
	logger *slog.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending []byte
	gen     uint64
}

func NewBuffer(store Store, key Key, delay time.Duration, logger *slog.Logger) *Buffer {
	if delay <= 0 {
		delay = DefaultDebounce
	}

	return &Buffer{
		store:  store,
		key:    key,
		delay:  delay,
		logger: logger.With("module", "drafts_buffer", "key", string(key)),
	}
}

func (b *Buffer) Key() Key {
	return b.key
}

// Mark records snapshot as the latest state and restarts the debounce timer.
// The snapshot is encoded immediately so later mutations do not leak into it.
func (b *Buffer) Mark(snapshot any) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode draft %s: %w", b.key, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.pending = raw
	b.gen++

	if b.timer != nil {
		b.timer.Stop()
	}

	gen := b.gen
	b.timer = time.AfterFunc(b.delay, func() {
		b.fire(gen)
	})

	return nil
}

// Dirty reports whether a snapshot is waiting to be written.
func (b *Buffer) Dirty() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.pending != nil
}

func (b *Buffer) fire(gen uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if gen != b.gen || b.pending == nil {
		return
	}

	if err := b.write(context.Background()); err != nil {
		b.logger.Error("failed to write draft", "error", err)
	}
}

// Flush writes any pending snapshot right away. Editors call it when they
// are being hidden or closed.
func (b *Buffer) Flush(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stop()

	if b.pending == nil {
		return nil
	}

	return b.write(ctx)
}

// Discard drops the pending snapshot and the stored draft.
func (b *Buffer) Discard(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stop()
	b.pending = nil
	b.gen++

	return b.store.Delete(ctx, b.key)
}

func (b *Buffer) stop() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

func (b *Buffer) write(ctx context.Context) error {
	if err := b.store.Set(ctx, b.key, b.pending); err != nil {
		return err
	}

	b.logger.Debug("draft saved", "bytes", len(b.pending))
	b.pending = nil

	return nil
}
