package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/margin/pkg/core"
)

// watchWorker turns fsnotify traffic into core.Events. Sidecar writes are
// reported as MODIFY of the owning note, so a comment remap shows up as
// one change even though two files moved on disk.
type watchWorker struct {
	*worker.BaseWorker
	repo      *Repository
	pattern   string
	events    chan<- core.Event
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	cancel    context.CancelFunc
}

func newWatchWorker(repo *Repository, pattern string, events chan<- core.Event) *watchWorker {
	return &watchWorker{
		BaseWorker: worker.NewBaseWorker("fs-watcher"),
		repo:       repo,
		pattern:    pattern,
		events:     events,
	}
}

// Watch observes note changes matching the glob pattern. The returned
// channel closes when ctx is done or the watcher fails.
func (r *Repository) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	events := make(chan core.Event, 16)
	w := newWatchWorker(r, pattern, events)
	if err := w.Start(ctx); err != nil {
		return nil, err
	}
	return events, nil
}

func (w *watchWorker) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	status := w.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("watcher already started (status: %s)", status)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := w.repo.recursiveAdd(watcher); err != nil {
		_ = watcher.Close()
		return err
	}

	w.watcher = watcher
	w.debouncer = newDebouncer(50 * time.Millisecond)
	w.repo.setWatcherActive(true)

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.SetStatus(worker.StatusRunning)
	return w.StartFunc(runCtx, w.run)
}

func (w *watchWorker) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}
	return w.BaseWorker.Stop(ctx)
}

func (w *watchWorker) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
		}
	})
}

// recursiveAdd registers every directory under the root except the system dir.
func (r *Repository) recursiveAdd(watcher *fsnotify.Watcher) error {
	return filepath.WalkDir(r.Path, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == r.config.SystemDir || d.Name() == ".git" {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// shouldIgnore filters watcher noise: atomic-write temp files, the system
// dir, and anything outside the caller's glob pattern.
func (r *Repository) shouldIgnore(event fsnotify.Event, pattern string) bool {
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, TempFilePrefix) {
		return true
	}

	rel, err := filepath.Rel(r.Path, event.Name)
	if err != nil {
		return true
	}
	rel = filepath.ToSlash(rel)
	if strings.HasPrefix(rel, r.config.SystemDir+"/") || rel == r.config.SystemDir {
		return true
	}

	if pattern == "" {
		return false
	}
	// Sidecar events are judged by their owning note's path.
	matchPath := rel
	if strings.HasSuffix(rel, SidecarSuffix) {
		matchPath = strings.TrimSuffix(rel, SidecarSuffix) + ".md"
	}
	ok, err := doublestar.Match(pattern, matchPath)
	if err != nil {
		// Invalid pattern: let everything through rather than going silent.
		return false
	}
	return !ok
}

// mapEventType maps fsnotify flags to vault event types. Sidecar-only
// changes never surface as CREATE or DELETE of the note.
func (r *Repository) mapEventType(event fsnotify.Event, isSidecar bool) core.EventType {
	switch {
	case isSidecar:
		if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
			event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
			return core.EventModify
		}
		return ""
	case event.Has(fsnotify.Create):
		return core.EventCreate
	case event.Has(fsnotify.Write):
		return core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	default:
		return ""
	}
}

// resolveID maps an absolute event path to a note ID.
func (r *Repository) resolveID(path string) (id string, isSidecar bool, err error) {
	rel, err := filepath.Rel(r.Path, path)
	if err != nil {
		return "", false, err
	}
	rel = filepath.ToSlash(rel)

	switch {
	case strings.HasSuffix(rel, SidecarSuffix):
		return strings.TrimSuffix(rel, SidecarSuffix), true, nil
	case strings.HasSuffix(rel, ".md"):
		return strings.TrimSuffix(rel, ".md"), false, nil
	default:
		return "", false, fmt.Errorf("not a note path: %s", rel)
	}
}

// processFilesystemEvent handles filtering, mapping, and debouncing of one
// fsnotify event. Returns true if the event was accepted.
func (w *watchWorker) processFilesystemEvent(ctx context.Context, event fsnotify.Event) bool {
	if w.repo.config.Logger != nil {
		w.repo.config.Logger.Debug("event received", "name", event.Name)
	}

	if w.repo.shouldIgnore(event, w.pattern) {
		return false
	}

	// New directories need to join the watch set.
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = w.watcher.Add(event.Name)
			return false
		}
	}

	id, isSidecar, err := w.repo.resolveID(event.Name)
	if err != nil {
		return false
	}
	eType := w.repo.mapEventType(event, isSidecar)
	if eType == "" {
		return false
	}

	w.sendEvent(ctx, core.Event{
		Type:      eType,
		ID:        id,
		Timestamp: time.Now().Unix(),
	})
	return true
}

// sendEvent enqueues an event via the debouncer, protecting against
// channel closure during shutdown.
func (w *watchWorker) sendEvent(ctx context.Context, event core.Event) {
	w.debouncer.add(event, func(e core.Event) {
		defer func() {
			// Recover from panic if channel was closed (worker stopping)
			_ = recover()
		}()
		select {
		case w.events <- e:
		case <-ctx.Done():
		}
	})
}

// run is the main event loop for the watcher worker.
func (w *watchWorker) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			panicErr := fmt.Errorf("watcher panic: %v", recovered)
			logger := w.repo.config.Logger
			if logger != nil {
				if logger.Enabled(ctx, slog.LevelDebug) {
					logger.Error("watcher panic", "error", panicErr, "stack", string(debug.Stack()))
				} else {
					logger.Error("watcher panic", "error", panicErr)
				}
			}
			if w.repo.config.ErrorHandler != nil {
				w.repo.config.ErrorHandler(panicErr)
			}
		}
	}()
	defer close(w.events)
	defer w.repo.setWatcherActive(false)
	defer w.watcher.Close()

	err = w.mainEventLoop(ctx)

	// Drain in-flight debounce timers before the events channel closes.
	w.debouncer.stopAndWait(5 * time.Second)
	return err
}

func (w *watchWorker) mainEventLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.processFilesystemEvent(ctx, event)

		case watchErr, ok := <-w.watcher.Errors:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			if w.repo.config.Logger != nil {
				w.repo.config.Logger.Error("fsnotify error", "error", watchErr)
			}
			if w.repo.config.ErrorHandler != nil {
				w.repo.config.ErrorHandler(watchErr)
			}
		}
	}
}
