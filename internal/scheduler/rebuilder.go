package scheduler

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/MrSnakeDoc/sourcepage/internal/logger"
	"github.com/MrSnakeDoc/sourcepage/internal/site"
	"github.com/MrSnakeDoc/sourcepage/internal/utils"
)

// DefaultDebounce is the quiet period after the last file event before a rebuild.
const DefaultDebounce = 300 * time.Millisecond

// BuildStatus describes the most recent build.
type BuildStatus struct {
	Builds    int
	LastBuild time.Time
	LastError error
	Report    site.Report
}

// OK reports whether the most recent build succeeded.
func (s BuildStatus) OK() bool {
	return s.Builds > 0 && s.LastError == nil
}

// Rebuilder rebuilds the page whenever a source file changes or a manual
// rebuild is requested. Builds always run on a single goroutine.
type Rebuilder struct {
	builder       *site.Builder
	logger        logger.Logger
	debounce      time.Duration
	manualTrigger chan struct{}
	stopCh        chan struct{}
	doneCh        chan struct{}
	stopOnce      sync.Once
	timeNow       func() time.Time

	mu     sync.RWMutex
	status BuildStatus
}

// NewRebuilder creates a new rebuilder. A non-positive debounce uses DefaultDebounce.
func NewRebuilder(
	builder *site.Builder,
	log logger.Logger,
	debounce time.Duration,
	manualTrigger chan struct{},
) *Rebuilder {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Rebuilder{
		builder:       builder,
		logger:        log,
		debounce:      debounce,
		manualTrigger: manualTrigger,
		stopCh:        make(chan struct{}),
		doneCh:        make(chan struct{}),
		timeNow:       time.Now,
	}
}

// Start runs an initial build, then watches the sources directory.
func (r *Rebuilder) Start(ctx context.Context) error {
	if err := r.Rebuild(); err != nil {
		return fmt.Errorf("initial build failed: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	if err := watcher.Add(r.builder.SourcesDir()); err != nil {
		utils.Close(watcher)
		return fmt.Errorf("failed to watch %s: %w", r.builder.SourcesDir(), err)
	}

	r.logger.Info("watching sources for changes",
		logger.String("dir", r.builder.SourcesDir()),
		logger.Duration("debounce", r.debounce))

	go r.loop(ctx, watcher)
	return nil
}

// Stop stops the rebuilder and waits for the watch loop to exit.
// Calling Stop before Start, or more than once, is safe.
func (r *Rebuilder) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopCh)
	})
}

// Done is closed once the watch loop has exited.
func (r *Rebuilder) Done() <-chan struct{} {
	return r.doneCh
}

func (r *Rebuilder) loop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer close(r.doneCh)
	defer utils.MustClose(watcher, r.logger, "fsnotify watcher")

	timer := time.NewTimer(r.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !isSourceEvent(ev) {
				continue
			}
			r.logger.Debug("source change detected",
				logger.String("path", ev.Name),
				logger.String("op", ev.Op.String()))
			timer.Reset(r.debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			r.logger.Warn("watcher error", logger.Error(err))
		case <-timer.C:
			r.rebuildLogged("sources changed")
		case <-r.manualTrigger:
			r.rebuildLogged("manual rebuild triggered")
		case <-r.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (r *Rebuilder) rebuildLogged(reason string) {
	r.logger.Info(reason)
	if err := r.Rebuild(); err != nil {
		r.logger.Error("failed to rebuild page", logger.Error(err))
	}
}

// Rebuild runs one full build and records its outcome.
func (r *Rebuilder) Rebuild() error {
	report, err := r.builder.Build()

	r.mu.Lock()
	r.status.Builds++
	r.status.LastBuild = r.timeNow()
	r.status.LastError = err
	if err == nil {
		r.status.Report = report
	}
	r.mu.Unlock()

	return err
}

// Status returns the outcome of the most recent build.
func (r *Rebuilder) Status() BuildStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status
}

// isSourceEvent reports whether ev concerns a category file.
// Chmod-only events and editor temp files are ignored.
func isSourceEvent(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	base := filepath.Base(ev.Name)
	if strings.HasPrefix(base, ".") || strings.HasPrefix(base, "#") || strings.HasSuffix(base, "~") {
		return false
	}
	return filepath.Ext(base) == ".md"
}
