package loader

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatcherConfig configures a Watcher.
type WatcherConfig struct {
	// Root is the directory to watch, recursively.
	Root string

	// DebounceInterval is the quiet period before OnChange runs
	// (default: 100ms).
	DebounceInterval time.Duration

	// Extensions limits events to these file extensions. Empty means all.
	Extensions []string

	// SkipHidden ignores dot files and dot directories.
	SkipHidden bool
}

// DefaultWatcherConfig returns the default watcher configuration for root.
func DefaultWatcherConfig(root string) WatcherConfig {
	return WatcherConfig{
		Root:             root,
		DebounceInterval: 100 * time.Millisecond,
		Extensions:       []string{".html", ".htm", ".css", ".json", ".yaml", ".yml"},
		SkipHidden:       true,
	}
}

// Watcher reports resource changes under a root directory. Bursts of file
// events are debounced into one callback carrying every changed path.
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	config   WatcherConfig
	debounce *Debouncer

	mu      sync.Mutex
	running bool
	pending map[string]struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewWatcher creates a watcher. Call Watch to start it.
func NewWatcher(config WatcherConfig, logger *slog.Logger) (*Watcher, error) {
	if config.DebounceInterval <= 0 {
		config.DebounceInterval = 100 * time.Millisecond
	}
	if logger == nil {
		logger = slog.Default().With("component", "watcher")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	return &Watcher{
		watcher:  fw,
		logger:   logger,
		config:   config,
		debounce: NewDebouncer(config.DebounceInterval),
		pending:  make(map[string]struct{}),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Watch blocks until ctx is done or Stop is called, calling onChange with
// the sorted changed paths after each burst of events.
func (w *Watcher) Watch(ctx context.Context, onChange func(paths []string) error) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer close(w.doneCh)

	if err := w.addDirectory(w.config.Root); err != nil {
		return fmt.Errorf("watch %s: %w", w.config.Root, err)
	}

	w.logger.Info("resource watcher started",
		"root", w.config.Root,
		"debounce_ms", w.config.DebounceInterval.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("resource watcher stopped")
			return nil

		case <-w.stopCh:
			w.logger.Info("resource watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			w.handle(event, onChange)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("resource watcher error", "error", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event, onChange func([]string) error) {
	// New directories are watched as they appear.
	if event.Op&fsnotify.Create == fsnotify.Create {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addDirectory(event.Name); err != nil {
				w.logger.Warn("cannot watch new directory", "path", event.Name, "error", err)
			}
			return
		}
	}

	if !w.shouldProcess(event) {
		return
	}

	w.logger.Debug("resource event", "path", event.Name, "op", event.Op.String())

	w.mu.Lock()
	w.pending[event.Name] = struct{}{}
	w.mu.Unlock()

	w.debounce.Trigger(func() {
		paths := w.drain()
		if len(paths) == 0 {
			return
		}
		w.logger.Info("resources changed", "count", len(paths))
		if err := onChange(paths); err != nil {
			w.logger.Error("resource change handler failed", "error", err)
		}
	})
}

func (w *Watcher) drain() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = make(map[string]struct{})
	sort.Strings(paths)
	return paths
}

// Stop stops the watcher and waits for Watch to return.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	running := w.running
	w.running = false
	w.mu.Unlock()

	if running {
		close(w.stopCh)
		<-w.doneCh
	}

	w.debounce.Stop()
	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("close watcher: %w", err)
	}
	return nil
}

func (w *Watcher) addDirectory(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if w.config.SkipHidden && path != dir && strings.HasPrefix(filepath.Base(path), ".") {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("watch directory %q: %w", path, err)
		}
		w.logger.Debug("watching directory", "path", path)
		return nil
	})
}

func (w *Watcher) shouldProcess(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if w.config.SkipHidden && strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}
	if len(w.config.Extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(event.Name))
	for _, valid := range w.config.Extensions {
		if ext == strings.ToLower(valid) {
			return true
		}
	}
	return false
}
