package config

import (
	"context"
	"errors"

	"github.com/dshills/richinput/internal/config/watcher"
)

// ReloadFunc receives the result of every reload. On failure cfg is nil and
// the previous configuration should stay in effect.
type ReloadFunc func(cfg *Config, err error)

// Watch reloads path whenever it changes and passes the result to fn. It
// blocks until ctx is done. Removal of the file is ignored; recreation
// triggers a reload.
func Watch(ctx context.Context, path string, fn ReloadFunc, opts ...LoadOption) error {
	cfg, err := Load(path, opts...)
	debounce := DefaultDebounce
	if err == nil {
		debounce = cfg.DebounceDuration()
	}

	w, err := watcher.New(
		watcher.WithDebounce(debounce),
		watcher.WithErrorHandler(func(err error) { fn(nil, err) }),
	)
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Watch(path); err != nil {
		return err
	}
	w.OnChange(func(e watcher.Event) {
		if e.Op == watcher.OpRemove {
			return
		}
		fn(Load(path, opts...))
	})

	err = w.Run(ctx)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
