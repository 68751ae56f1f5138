package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchReportsWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.yaml")
	if err := os.WriteFile(path, []byte("cases: []\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	changed := make(chan struct{}, 10)
	w := New(path, func() { changed <- struct{}{} }).WithDebounce(50 * time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()

	// give the watcher time to register the directory
	time.Sleep(200 * time.Millisecond)

	// several quick writes collapse into one notification
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("cases: [1]\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-changed:
	case <-ctx.Done():
		t.Fatal("no change reported")
	}

	select {
	case <-changed:
		t.Error("burst of writes reported more than once")
	case <-time.After(300 * time.Millisecond):
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Watch() error = %v, want context.Canceled", err)
	}
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cases.yaml")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 1)
	w := New(path, func() { changed <- struct{}{} }).WithDebounce(20 * time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()
	time.Sleep(200 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changed:
		t.Error("change to another file was reported")
	case <-time.After(300 * time.Millisecond):
	}

	cancel()
	<-done
}

func TestWatchMissingDirectory(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing", "cases.yaml"), func() {})
	if err := w.Watch(context.Background()); err == nil {
		t.Fatal("Watch() should fail when the directory does not exist")
	}
}
