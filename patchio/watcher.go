package patchio

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/tactus/baton/errors"
	"github.com/tactus/baton/logger"
)

// UpdateCallback receives each freshly loaded revision of a watched patch.
type UpdateCallback func(*Document) error

// Watcher reloads a patch file whenever it changes on disk. Editors that
// save through a rename replace the inode, so the watch is on the parent
// directory with events filtered to the one file.
type Watcher struct {
	path           string
	watcher        *fsnotify.Watcher
	callbacks      []UpdateCallback
	mu             sync.RWMutex
	debounceTimer  *time.Timer
	debouncePeriod time.Duration
}

// NewWatcher creates a watcher for one patch file.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve patch path %s", path)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, errors.Wrapf(err, "failed to watch directory of %s", abs)
	}
	return &Watcher{
		path:           abs,
		watcher:        fsw,
		debouncePeriod: 300 * time.Millisecond,
	}, nil
}

// OnUpdate registers a callback for reloaded revisions.
func (w *Watcher) OnUpdate(callback UpdateCallback) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// SetDebounce overrides the default debounce period.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if d > 0 {
		w.debouncePeriod = d
	}
}

// Start begins watching in the background.
func (w *Watcher) Start() {
	go w.watchLoop()
}

// Stop ends the watch. Pending debounced reloads may still fire.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debugw("patch file changed",
				logger.FieldFile, event.Name,
				"op", event.Op.String())
			w.scheduleReload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warnw("patch watcher error",
				logger.FieldError, err)
		}
	}
}

// scheduleReload collapses bursts of events into a single reload.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debouncePeriod, w.reload)
}

// reload parses the file and hands it to every callback. A broken revision
// is logged and skipped; the watch stays alive for the next save.
func (w *Watcher) reload() {
	doc, err := Load(w.path)
	if err != nil {
		logger.Warnw("patch reload failed",
			logger.FieldFile, w.path,
			logger.FieldError, err)
		return
	}
	logger.BatonInfow("patch reloaded",
		logger.FieldFile, w.path,
		logger.FieldPatch, doc.Name)

	w.mu.RLock()
	callbacks := make([]UpdateCallback, len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.RUnlock()

	for _, callback := range callbacks {
		if err := callback(doc); err != nil {
			logger.Warnw("patch update callback error",
				logger.FieldError, err)
		}
	}
}
