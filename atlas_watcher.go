package atlas

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultReloadDebounce = 200 * time.Millisecond

// AtlasWatcher reloads an atlas descriptor whenever it or a file next to it changes.
type AtlasWatcher struct {
	watcher   *fsnotify.Watcher
	fileName  string
	loader    PageLoader
	onReload  func(atlas *TextureAtlas, err error)
	debounce  atomic.Int64
	closeOnce sync.Once
}

// NewAtlasWatcher watches fileName. onReload receives the reloaded atlas or
// the load error; it is called from Run's goroutine.
func NewAtlasWatcher(fileName string, loader PageLoader, onReload func(atlas *TextureAtlas, err error)) (*AtlasWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Editors replace files by rename, which drops a watch on the file
	// itself, so the directory is watched instead.
	if err = watcher.Add(filepath.Dir(fileName)); err != nil {
		watcher.Close()
		return nil, err
	}

	w := &AtlasWatcher{
		watcher:  watcher,
		fileName: fileName,
		loader:   loader,
		onReload: onReload,
	}
	w.debounce.Store(int64(defaultReloadDebounce))
	return w, nil
}

// SetDebounce sets how long the watcher waits for writes to settle. It may
// be called while Run is active and applies from the next change.
func (w *AtlasWatcher) SetDebounce(debounce time.Duration) {
	w.debounce.Store(int64(debounce))
}

// Run dispatches reloads until ctx is done or the watcher is closed.
func (w *AtlasWatcher) Run(ctx context.Context) error {
	log := Logger().WithField("component", "atlas-watcher").WithField("file", w.fileName)

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			log.WithField("event", event.String()).Debug("Atlas directory changed")
			timer.Reset(time.Duration(w.debounce.Load()))
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("Watcher error")
		case <-timer.C:
			atlas, err := LoadAtlas(w.fileName, w.loader)
			if err != nil {
				log.WithError(err).Warn("Atlas reload failed")
			} else {
				log.WithField("regions", atlas.Len()).Info("Atlas reloaded")
			}
			w.onReload(atlas, err)
		}
	}
}

// Close stops watching.
func (w *AtlasWatcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		err = w.watcher.Close()
	})
	return err
}
