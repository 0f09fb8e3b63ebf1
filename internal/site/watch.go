package site

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/docrender/internal/config"
	derrors "git.home.luguber.info/inful/docrender/internal/errors"
	"git.home.luguber.info/inful/docrender/internal/logfields"
)

// RebuildFunc is called after the watched inputs settle.
type RebuildFunc func(ctx context.Context) error

// Watcher monitors the inputs of a site (configuration, model, templates and
// topics) and calls a rebuild function once changes stop arriving for the
// debounce interval.
type Watcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]bool
	trees    []string
	ignore   string
	debounce time.Duration
	rebuild  RebuildFunc
	logger   *slog.Logger
}

// NewWatcher watches the inputs named by cfg and the configuration file at
// configPath. The output directory is ignored.
func NewWatcher(cfg *config.Config, configPath string, rebuild RebuildFunc, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, derrors.Wrap(err, derrors.CategoryFileSystem, derrors.SeverityFatal, "create file watcher")
	}
	w := &Watcher{
		watcher:  fsw,
		files:    make(map[string]bool),
		ignore:   absPath(cfg.Resolve(cfg.Output.Directory)),
		debounce: cfg.DebounceDuration(),
		rebuild:  rebuild,
		logger:   logger,
	}

	for _, f := range []string{configPath, cfg.Resolve(cfg.Model)} {
		if f == "" {
			continue
		}
		if err := w.addFile(absPath(f)); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	for _, dir := range []string{cfg.Resolve(cfg.Templates.Dir), cfg.Resolve(cfg.Topics.Dir)} {
		if dir == "" {
			continue
		}
		if err := w.addTree(absPath(dir)); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

func absPath(p string) string {
	if p == "" {
		return ""
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// addFile watches the directory holding file, which survives editors that
// replace files on save.
func (w *Watcher) addFile(file string) error {
	w.files[file] = true
	dir := filepath.Dir(file)
	if err := w.watcher.Add(dir); err != nil {
		return derrors.Wrap(err, derrors.CategoryFileSystem, derrors.SeverityFatal, "watch directory").
			WithContext("path", dir)
	}
	return nil
}

// addTree watches root and every directory below it.
func (w *Watcher) addTree(root string) error {
	w.trees = append(w.trees, root)
	return w.addDirs(root)
}

func (w *Watcher) addDirs(root string) error {
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && (strings.HasPrefix(d.Name(), ".") || w.ignored(p)) {
			return filepath.SkipDir
		}
		return w.watcher.Add(p)
	})
	if err != nil {
		return derrors.Wrap(err, derrors.CategoryFileSystem, derrors.SeverityFatal, "watch directory").
			WithContext("path", root)
	}
	return nil
}

func (w *Watcher) ignored(p string) bool {
	return w.ignore != "" && (p == w.ignore || strings.HasPrefix(p, w.ignore+string(filepath.Separator)))
}

// relevant reports whether an event touches a watched input.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	name := absPath(ev.Name)
	base := filepath.Base(name)
	if w.ignored(name) || strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") || strings.HasSuffix(base, ".swp") {
		return false
	}
	if w.files[name] {
		return true
	}
	for _, root := range w.trees {
		if name == root || strings.HasPrefix(name, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// Run blocks until ctx is done, rebuilding after each settled burst of
// changes. It closes the underlying watcher on return.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			w.logger.Error("Error closing file watcher", logfields.Error(err))
		}
	}()

	var timer *time.Timer
	var fire <-chan time.Time
	stopTimer := func() {
		if timer != nil {
			timer.Stop()
		}
	}

	w.logger.Info("Watching for changes", slog.Int("trees", len(w.trees)), slog.Int("files", len(w.files)))
	for {
		select {
		case <-ctx.Done():
			stopTimer()
			return nil
		case ev, ok := <-w.watcher.Events:
			if !ok {
				stopTimer()
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("Change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
			if ev.Has(fsnotify.Create) {
				w.watchCreatedDir(ev.Name)
			}
			stopTimer()
			timer = time.NewTimer(w.debounce)
			fire = timer.C
		case <-fire:
			fire = nil
			if err := w.rebuild(ctx); err != nil {
				w.logger.Warn("Rebuild failed", logfields.Error(err))
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				stopTimer()
				return nil
			}
			w.logger.Error("File watcher error", logfields.Error(err))
		}
	}
}

// watchCreatedDir starts watching a directory created inside a watched tree.
func (w *Watcher) watchCreatedDir(p string) {
	abs := absPath(p)
	inTree := false
	for _, root := range w.trees {
		if strings.HasPrefix(abs, root+string(filepath.Separator)) {
			inTree = true
			break
		}
	}
	if !inTree {
		return
	}
	if err := w.addDirs(abs); err != nil {
		w.logger.Debug("Not watching created path", logfields.Path(abs), logfields.Error(err))
	}
}
