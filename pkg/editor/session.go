// Package editor ties the builders to their draft slots and services. A
// session holds one record being edited, writes a debounced draft after every
// change and clears it once the record is saved.
package editor

import (
	"context"
	"log/slog"
	"time"

	"github.com/dukex/fluxo/pkg/drafts"
)

type config struct {
	debounce time.Duration
	logger   *slog.Logger
	user     string
}

type Option func(*config)

// WithDebounce overrides how long a session waits after a change before
// writing its draft.
func WithDebounce(d time.Duration) Option {
	return func(c *config) {
		c.debounce = d
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithUser scopes the draft slots to userID. The same user also becomes the
// actor of saves.
func WithUser(userID string) Option {
	return func(c *config) {
		c.user = userID
	}
}

func newConfig(opts []Option) config {
	c := config{
		debounce: drafts.DefaultDebounce,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(&c)
	}

	return c
}

// draftSlot is the buffer a session writes to, moved from the "new" slot to
// the record's own slot after the first save.
type draftSlot struct {
	store  drafts.Store
	cfg    config
	buffer *drafts.Buffer
}

func newDraftSlot(store drafts.Store, key drafts.Key, cfg config) *draftSlot {
	return &draftSlot{
		store:  store,
		cfg:    cfg,
		buffer: drafts.NewBuffer(store, key.ForUser(cfg.user), cfg.debounce, cfg.logger),
	}
}

// saved discards the draft of the record just stored and points the slot at
// key for further edits.
func (s *draftSlot) saved(ctx context.Context, key drafts.Key) error {
	err := s.buffer.Discard(ctx)
	if err != nil {
		return err
	}

	key = key.ForUser(s.cfg.user)
	if key != s.buffer.Key() {
		s.buffer = drafts.NewBuffer(s.store, key, s.cfg.debounce, s.cfg.logger)
	}

	return nil
}
