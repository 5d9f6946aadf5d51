// Package watch re-sends a source file whenever it changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/uartship/pkg/log"
)

// DefaultDebounce coalesces bursts of writes from editors into one send.
const DefaultDebounce = 100 * time.Millisecond

// SendFunc performs one complete transmission.
type SendFunc func(ctx context.Context)

// Watcher monitors a single file via fsnotify. The file's directory is
// watched rather than the file itself so that atomic-rename saves are seen.
// Sends run one at a time on the goroutine that called Run.
type Watcher struct {
	path     string
	send     SendFunc
	logger   log.Logger
	debounce time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	trigger chan struct{}
}

// New creates a Watcher for path.
func New(path string, send SendFunc, logger log.Logger) *Watcher {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Watcher{
		path:     path,
		send:     send,
		logger:   logger,
		debounce: DefaultDebounce,
		trigger:  make(chan struct{}, 1),
	}
}

// Run sends once, then again after every write or create of the file,
// until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	defer w.stopTimer()

	w.logger.Info("watching for changes", log.String("file", w.path), log.Duration("debounce", w.debounce))
	w.send(ctx)

	name := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case <-w.trigger:
			if ctx.Err() != nil {
				return nil
			}
			w.logger.Info("file changed, sending again", log.String("file", w.path))
			w.send(ctx)

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.schedule()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", log.Err(err))
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case w.trigger <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}
