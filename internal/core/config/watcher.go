package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/colonyops/beacon/internal/core/logging"
)

const debounceDelay = 50 * time.Millisecond

// Watcher watches a config file for changes using fsnotify. Editors often
// replace files on save, so the parent directory is watched and events
// are filtered by name and debounced.
type Watcher struct {
	path     string
	fsw      *fsnotify.Watcher
	onChange func()
	log      zerolog.Logger

	mu       sync.Mutex
	debounce *time.Timer
	wg       sync.WaitGroup
}

// Watch starts watching path and invokes onChange after each change
// settles. The callback runs on a timer goroutine.
func Watch(path string, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	w := &Watcher{
		path:     path,
		fsw:      fsw,
		onChange: onChange,
		log:      logging.Component("config-watcher"),
	}

	w.wg.Add(1)
	go w.loop()

	return w, nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	base := filepath.Base(w.path)
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
				continue
			}
			w.log.Debug().Str("file", ev.Name).Str("op", ev.Op.String()).Msg("config file changed")
			w.mu.Lock()
			if w.debounce != nil {
				w.debounce.Stop()
			}
			w.debounce = time.AfterFunc(debounceDelay, w.onChange)
			w.mu.Unlock()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Error().Err(err).Msg("config watcher error")
		}
	}
}

// Close stops watching and cancels any pending debounce.
func (w *Watcher) Close() {
	_ = w.fsw.Close()
	w.wg.Wait()

	w.mu.Lock()
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.mu.Unlock()
}
