package scheduler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/MrSnakeDoc/sourcepage/internal/catalog"
	"github.com/MrSnakeDoc/sourcepage/internal/logger"
	"github.com/MrSnakeDoc/sourcepage/internal/site"
)

func newTestRebuilder(t *testing.T, trigger chan struct{}) (*Rebuilder, string, string) {
	t.Helper()

	root := t.TempDir()
	sources := filepath.Join(root, "sources")
	if err := os.Mkdir(sources, 0o755); err != nil {
		t.Fatalf("Failed to create sources dir: %v", err)
	}
	output := filepath.Join(root, "index.html")

	log := logger.NewNop()
	b := site.NewBuilder(catalog.Default(), sources, output, log)
	return NewRebuilder(b, log, 20*time.Millisecond, trigger), sources, output
}

// waitForOutput polls until the output contains want or the deadline passes.
func waitForOutput(t *testing.T, output, want string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if data, err := os.ReadFile(output); err == nil && strings.Contains(string(data), want) {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("output never contained %q", want)
}

func TestRebuilderStartBuildsImmediately(t *testing.T) {
	r, sources, output := newTestRebuilder(t, make(chan struct{}, 1))
	if err := os.WriteFile(filepath.Join(sources, "software.md"), []byte("- [Sw](https://sw.example)\n"), 0o644); err != nil {
		t.Fatalf("Failed to write source: %v", err)
	}

	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer r.Stop()

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("output not written by Start(): %v", err)
	}
	if !strings.Contains(string(data), "cat-software") {
		t.Error("initial build missing software section")
	}

	status := r.Status()
	if !status.OK() || status.Builds != 1 {
		t.Errorf("Status() = %+v, want one successful build", status)
	}
	if len(status.Report.Rendered) != 1 {
		t.Errorf("Report.Rendered = %v", status.Report.Rendered)
	}
}

func TestRebuilderStartFailsWithoutSourcesDir(t *testing.T) {
	r, sources, _ := newTestRebuilder(t, make(chan struct{}, 1))
	if err := os.Remove(sources); err != nil {
		t.Fatalf("Failed to remove sources dir: %v", err)
	}

	err := r.Start(context.Background())
	if !errors.Is(err, site.ErrSourcesDirMissing) {
		t.Fatalf("Start() error = %v, want ErrSourcesDirMissing", err)
	}
	if r.Status().OK() {
		t.Error("Status() should report the failed build")
	}
}

func TestRebuilderManualTrigger(t *testing.T) {
	trigger := make(chan struct{}, 1)
	r, sources, output := newTestRebuilder(t, trigger)
	if err := r.Rebuild(); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}

	// A watcher with nothing added, so only the trigger can cause a rebuild.
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.loop(ctx, watcher)

	if err := os.WriteFile(filepath.Join(sources, "machinists.md"), []byte("- [Ma](https://ma.example)\n"), 0o644); err != nil {
		t.Fatalf("Failed to write source: %v", err)
	}
	trigger <- struct{}{}

	waitForOutput(t, output, "cat-machinists")
}

func TestRebuilderWatchesSources(t *testing.T) {
	r, sources, output := newTestRebuilder(t, make(chan struct{}, 1))
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer r.Stop()

	if err := os.WriteFile(filepath.Join(sources, "workshop.md"), []byte("- [Ws](https://ws.example)\n"), 0o644); err != nil {
		t.Fatalf("Failed to write source: %v", err)
	}

	waitForOutput(t, output, "cat-workshop")
}

func TestRebuilderStop(t *testing.T) {
	r, _, _ := newTestRebuilder(t, make(chan struct{}, 1))
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	r.Stop()
	r.Stop()

	select {
	case <-r.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("watch loop did not exit after Stop()")
	}
}

func TestRebuilderContextCancel(t *testing.T) {
	r, _, _ := newTestRebuilder(t, make(chan struct{}, 1))
	ctx, cancel := context.WithCancel(context.Background())
	if err := r.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	cancel()

	select {
	case <-r.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("watch loop did not exit after context cancel")
	}
}

func TestRebuildRecordsFailure(t *testing.T) {
	r, sources, _ := newTestRebuilder(t, make(chan struct{}, 1))
	if err := r.Rebuild(); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	if err := os.Remove(sources); err != nil {
		t.Fatalf("Failed to remove sources dir: %v", err)
	}

	if err := r.Rebuild(); err == nil {
		t.Fatal("Rebuild() should fail without sources dir")
	}

	status := r.Status()
	if status.OK() {
		t.Error("Status().OK() should be false after a failed build")
	}
	if status.Builds != 2 {
		t.Errorf("Builds = %d, want 2", status.Builds)
	}
}

func TestIsSourceEvent(t *testing.T) {
	tests := []struct {
		name     string
		ev       fsnotify.Event
		expected bool
	}{
		{"write md", fsnotify.Event{Name: "sources/software.md", Op: fsnotify.Write}, true},
		{"create md", fsnotify.Event{Name: "sources/new.md", Op: fsnotify.Create}, true},
		{"remove md", fsnotify.Event{Name: "sources/old.md", Op: fsnotify.Remove}, true},
		{"chmod only", fsnotify.Event{Name: "sources/software.md", Op: fsnotify.Chmod}, false},
		{"hidden file", fsnotify.Event{Name: "sources/.software.md", Op: fsnotify.Write}, false},
		{"emacs lock", fsnotify.Event{Name: "sources/#software.md#", Op: fsnotify.Write}, false},
		{"backup file", fsnotify.Event{Name: "sources/software.md~", Op: fsnotify.Write}, false},
		{"swap file", fsnotify.Event{Name: "sources/.software.md.swp", Op: fsnotify.Write}, false},
		{"other extension", fsnotify.Event{Name: "sources/notes.txt", Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isSourceEvent(tt.ev); got != tt.expected {
				t.Errorf("isSourceEvent(%v) = %v, want %v", tt.ev, got, tt.expected)
			}
		})
	}
}
