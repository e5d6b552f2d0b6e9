package adorn

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ConfigWatcher reloads a ConfigFile whenever it changes on disk and
// delivers the parsed result on Updates. It runs its own goroutine; apply
// updates on the update thread, e.g. from the scene's update func:
//
//	select {
//	case f := <-w.Updates():
//		err := scene.ApplyConfigFile(f)
//	default:
//	}
type ConfigWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	logger  *zap.Logger

	updates chan ConfigFile
	errs    chan error

	done     chan struct{}
	exited   chan struct{}
	stopOnce sync.Once
}

// WatchConfigFile starts watching path. The directory is watched rather than
// the file so editors that replace the file on save are handled.
func WatchConfigFile(path string, logger *zap.Logger) (*ConfigWatcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	dir := filepath.Dir(path)
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch directory %s: %w", dir, err)
	}
	w := &ConfigWatcher{
		path:    filepath.Clean(path),
		watcher: fw,
		logger:  logger,
		updates: make(chan ConfigFile, 1),
		errs:    make(chan error, 1),
		done:    make(chan struct{}),
		exited:  make(chan struct{}),
	}
	logger.Info("config watcher started", zap.String("path", path))
	go w.loop()
	return w, nil
}

// Updates delivers each successfully parsed version of the file.
func (w *ConfigWatcher) Updates() <-chan ConfigFile {
	return w.updates
}

// Errors delivers read, parse and watch errors.
func (w *ConfigWatcher) Errors() <-chan error {
	return w.errs
}

// Close stops watching and waits for the watch goroutine to exit.
func (w *ConfigWatcher) Close() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.watcher.Close()
		<-w.exited
		w.logger.Info("config watcher stopped", zap.String("path", w.path))
	})
	return err
}

func (w *ConfigWatcher) loop() {
	defer close(w.exited)
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			// A file renamed over path arrives as Create. Rename on path
			// means it was moved away; the replacement brings its own Create.
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.reload()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendErr(err)
		}
	}
}

func (w *ConfigWatcher) reload() {
	f, err := LoadConfigFile(w.path)
	if err != nil {
		w.logger.Warn("config reload failed", zap.String("path", w.path), zap.Error(err))
		w.sendErr(err)
		return
	}
	w.logger.Debug("config reloaded", zap.String("path", w.path), zap.Int("adorners", len(f.Adorners)))
	select {
	case w.updates <- f:
	case <-w.done:
	}
}

func (w *ConfigWatcher) sendErr(err error) {
	select {
	case w.errs <- err:
	case <-w.done:
	}
}
