// Package watch re-runs the post-processor whenever a version directory is
// published or retired below the site root, and optionally on a fixed
// interval.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/docversions/internal/errors"
	"git.home.luguber.info/inful/docversions/internal/logfields"
)

// Trigger names why a run started.
const (
	TriggerStartup  = "startup"
	TriggerFSEvent  = "fs_event"
	TriggerInterval = "interval"
)

// RunFunc performs one full run.
type RunFunc func(ctx context.Context, trigger string) error

// Options tunes a Watcher.
type Options struct {
	// Debounce collapses bursts of directory events into one run.
	Debounce time.Duration
	// Interval schedules periodic runs; zero disables them.
	Interval time.Duration
}

// Watcher watches the top level of a site root.
type Watcher struct {
	root     string
	run      RunFunc
	debounce time.Duration
	interval time.Duration

	watcher     *fsnotify.Watcher
	scheduler   gocron.Scheduler
	triggerChan chan struct{}
	runMu       sync.Mutex
}

// New creates a Watcher for root. Nothing is watched until Run.
func New(root string, run RunFunc, opts Options) (*Watcher, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve root").Build()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRuntime, "failed to create file watcher").Build()
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		_ = fw.Close()
		return nil, errors.WrapError(err, errors.CategoryRuntime, "failed to create gocron scheduler").Build()
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = 2 * time.Second
	}

	return &Watcher{
		root:        absRoot,
		run:         run,
		debounce:    debounce,
		interval:    opts.Interval,
		watcher:     fw,
		scheduler:   s,
		triggerChan: make(chan struct{}, 1),
	}, nil
}

// Run performs a startup run, then re-runs on directory events and on the
// interval until ctx is done. Runs never overlap.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			slog.Error("Error closing file watcher", logfields.Error(err))
		}
		if err := w.scheduler.Shutdown(); err != nil {
			slog.Error("Error stopping scheduler", logfields.Error(err))
		}
	}()

	if err := w.watcher.Add(w.root); err != nil {
		return errors.RootUnreadable(w.root, err)
	}

	if w.interval > 0 {
		_, err := w.scheduler.NewJob(
			gocron.DurationJob(w.interval),
			gocron.NewTask(func() { w.runOnce(ctx, TriggerInterval) }),
			gocron.WithName("periodic-resync"),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			return errors.WrapError(err, errors.CategoryRuntime, "failed to schedule periodic run").Build()
		}
	}

	w.runOnce(ctx, TriggerStartup)
	w.scheduler.Start()

	slog.Info("Watching site root", logfields.Root(w.root),
		slog.Duration("debounce", w.debounce),
		slog.Duration("interval", w.interval))

	go w.debounceLoop(ctx)
	return w.watchLoop(ctx)
}

func (w *Watcher) watchLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.relevant(event) {
				slog.Debug("Version directory change detected", logfields.File(event.Name), slog.String("op", event.Op.String()))
				w.trigger()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("Watcher error", logfields.Error(err))
		}
	}
}

// relevant reports whether event adds, removes or renames an entry directly
// below the root. Created plain files are ignored so the tool's own output
// never schedules another run.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Dir(event.Name) != w.root {
		return false
	}
	switch {
	case event.Has(fsnotify.Create):
		info, err := os.Stat(event.Name)
		return err == nil && info.IsDir()
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return true
	}
	return false
}

func (w *Watcher) trigger() {
	select {
	case w.triggerChan <- struct{}{}:
	default:
	}
}

func (w *Watcher) debounceLoop(ctx context.Context) {
	var timer *time.Timer
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case <-w.triggerChan:
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				w.runOnce(ctx, TriggerFSEvent)
			})
		}
	}
}

func (w *Watcher) runOnce(ctx context.Context, trigger string) {
	if ctx.Err() != nil {
		return
	}
	w.runMu.Lock()
	defer w.runMu.Unlock()

	start := time.Now()
	if err := w.run(ctx, trigger); err != nil {
		slog.Error("Run failed", slog.String("trigger", trigger), logfields.Error(err))
		return
	}
	slog.Info("Run finished", slog.String("trigger", trigger),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
}
