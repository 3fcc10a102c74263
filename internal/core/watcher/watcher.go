package watcher

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"

	"uilint/internal/shared/observability"
)

// Watcher re-lints component sources as they change: file system events are
// filtered by extension and exclude globs, then coalesced through a debounce
// window before the change callback fires.
type Watcher struct {
	fsWatcher    *fsnotify.Watcher
	debounce     time.Duration
	excludeDirs  []glob.Glob
	excludeFiles []glob.Glob
	extFilters   map[string]bool
	onChange     func([]string)
	callbackMu   sync.Mutex

	pending   map[string]time.Time
	pendingMu sync.Mutex
	timer     *time.Timer
}

func NewWatcher(debounce time.Duration, extensions, excludeDirs, excludeFiles []string, onChange func([]string)) (*Watcher, error) {
	if onChange == nil {
		return nil, os.ErrInvalid
	}

	compiledDirs := make([]glob.Glob, 0, len(excludeDirs))
	for _, pattern := range excludeDirs {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, err
		}
		compiledDirs = append(compiledDirs, g)
	}

	compiledFiles := make([]glob.Glob, 0, len(excludeFiles))
	for _, pattern := range excludeFiles {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, err
		}
		compiledFiles = append(compiledFiles, g)
	}

	extFilter := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		normalized := strings.ToLower(strings.TrimSpace(ext))
		if normalized == "" {
			continue
		}
		extFilter[normalized] = true
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		fsWatcher:    fsw,
		debounce:     debounce,
		excludeDirs:  compiledDirs,
		excludeFiles: compiledFiles,
		extFilters:   extFilter,
		onChange:     onChange,
		pending:      make(map[string]time.Time),
	}, nil
}

func (w *Watcher) Watch(paths []string) error {
	for _, path := range paths {
		if err := w.watchRecursive(path); err != nil {
			return err
		}
	}

	go w.run()
	return nil
}

func (w *Watcher) Close() error {
	return w.fsWatcher.Close()
}

func (w *Watcher) watchRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if w.shouldExcludeDir(path) {
				return filepath.SkipDir
			}
			return w.fsWatcher.Add(path)
		}

		return nil
	})
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			observability.WatcherEventsTotal.Inc()

			if event.Op&fsnotify.Create == fsnotify.Create {
				info, err := os.Stat(event.Name)
				if err == nil && info.IsDir() {
					if !w.shouldExcludeDir(event.Name) {
						if err := w.watchRecursive(event.Name); err != nil {
							slog.Warn("failed to watch new directory", "path", event.Name, "error", err)
						}
					}
					continue
				}
			}

			if w.shouldExcludeFile(event.Name) {
				continue
			}

			if event.Op&fsnotify.Write == fsnotify.Write ||
				event.Op&fsnotify.Create == fsnotify.Create ||
				event.Op&fsnotify.Remove == fsnotify.Remove ||
				event.Op&fsnotify.Rename == fsnotify.Rename {
				w.scheduleChange(event.Name)
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			slog.Error("watcher error", "error", err)
		}
	}
}

func (w *Watcher) scheduleChange(path string) {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	w.pending[path] = time.Now()

	if w.timer != nil {
		w.timer.Stop()
	}

	w.timer = time.AfterFunc(w.debounce, func() {
		w.flushChanges()
	})
}

func (w *Watcher) flushChanges() {
	w.pendingMu.Lock()
	paths := make([]string, 0, len(w.pending))
	for path := range w.pending {
		paths = append(paths, path)
	}
	w.pending = make(map[string]time.Time)
	w.pendingMu.Unlock()

	if len(paths) > 0 {
		w.callbackMu.Lock()
		defer w.callbackMu.Unlock()
		w.onChange(paths)
	}
}

func (w *Watcher) shouldExcludeDir(path string) bool {
	base := filepath.Base(path)
	for _, g := range w.excludeDirs {
		if g.Match(base) {
			return true
		}
	}
	return false
}

func (w *Watcher) shouldExcludeFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if len(w.extFilters) > 0 && !w.extFilters[ext] {
		return true
	}
	base := filepath.Base(path)
	for _, g := range w.excludeFiles {
		if g.Match(base) {
			return true
		}
	}
	return false
}
