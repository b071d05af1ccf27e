package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type runLog struct {
	mu       sync.Mutex
	triggers []string
	notify   chan string
}

func newRunLog() *runLog {
	return &runLog{notify: make(chan string, 64)}
}

func (l *runLog) run(_ context.Context, trigger string) error {
	l.mu.Lock()
	l.triggers = append(l.triggers, trigger)
	l.mu.Unlock()
	l.notify <- trigger
	return nil
}

func (l *runLog) wait(t *testing.T, want string) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case got := <-l.notify:
			if got == want {
				return
			}
		case <-deadline:
			t.Fatalf("no %q run within timeout", want)
		}
	}
}

func start(t *testing.T, root string, l *runLog, opts Options) context.CancelFunc {
	t.Helper()
	w, err := New(root, l.run, opts)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("watcher did not stop")
		}
	})
	l.wait(t, TriggerStartup)
	return cancel
}

func TestWatcher_RunsOnNewVersionDirectory(t *testing.T) {
	root := t.TempDir()
	l := newRunLog()
	start(t, root, l, Options{Debounce: 50 * time.Millisecond})

	require.NoError(t, os.Mkdir(filepath.Join(root, "3.0"), 0o755))
	l.wait(t, TriggerFSEvent)
}

func TestWatcher_IgnoresFilesAndNestedChanges(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "1.0"), 0o755))
	l := newRunLog()
	start(t, root, l, Options{Debounce: 20 * time.Millisecond})

	require.NoError(t, os.WriteFile(filepath.Join(root, "report.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "1.0", "index.html"), []byte("x"), 0o644))

	select {
	case got := <-l.notify:
		t.Fatalf("unexpected %q run", got)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_IntervalRuns(t *testing.T) {
	root := t.TempDir()
	l := newRunLog()
	start(t, root, l, Options{Interval: 50 * time.Millisecond})

	l.wait(t, TriggerInterval)
}

func TestWatcher_MissingRoot(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "absent"), newRunLog().run, Options{})
	require.NoError(t, err)

	err = w.Run(context.Background())
	require.Error(t, err)
}

func TestRelevant(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "2.0"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "file.txt"), nil, 0o644))

	w := &Watcher{root: root}
	assert.True(t, w.relevant(fsnotify.Event{Name: filepath.Join(root, "2.0"), Op: fsnotify.Create}))
	assert.False(t, w.relevant(fsnotify.Event{Name: filepath.Join(root, "file.txt"), Op: fsnotify.Create}))
	assert.True(t, w.relevant(fsnotify.Event{Name: filepath.Join(root, "gone"), Op: fsnotify.Remove}))
	assert.True(t, w.relevant(fsnotify.Event{Name: filepath.Join(root, "old"), Op: fsnotify.Rename}))
	assert.False(t, w.relevant(fsnotify.Event{Name: filepath.Join(root, "2.0", "x.html"), Op: fsnotify.Create}))
	assert.False(t, w.relevant(fsnotify.Event{Name: filepath.Join(root, "2.0"), Op: fsnotify.Write}))
}
