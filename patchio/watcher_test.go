package patchio

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writePatch(t *testing.T, path, name string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(testDocJSON(name)), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.json")
	writePatch(t, path, "first")

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Stop()

	got := make(chan *Document, 4)
	w.OnUpdate(func(d *Document) error {
		got <- d
		return nil
	})
	w.Start()

	// Let the watch loop settle before touching the file.
	time.Sleep(200 * time.Millisecond)
	writePatch(t, path, "second")

	select {
	case d := <-got:
		if d.Name != "second" {
			t.Errorf("reloaded name = %q, want second", d.Name)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcherSkipsBrokenRevision(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.json")
	writePatch(t, path, "first")

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Stop()

	got := make(chan *Document, 4)
	w.OnUpdate(func(d *Document) error {
		got <- d
		return nil
	})
	w.Start()
	time.Sleep(200 * time.Millisecond)

	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	// Past the debounce window; the broken revision must not reach callbacks.
	time.Sleep(800 * time.Millisecond)
	select {
	case d := <-got:
		t.Fatalf("broken revision delivered: %+v", d)
	default:
	}

	writePatch(t, path, "fixed")
	select {
	case d := <-got:
		if d.Name != "fixed" {
			t.Errorf("reloaded name = %q, want fixed", d.Name)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the fixed revision")
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.json")
	writePatch(t, path, "first")

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Stop()

	got := make(chan *Document, 4)
	w.OnUpdate(func(d *Document) error {
		got <- d
		return nil
	})
	w.Start()
	time.Sleep(200 * time.Millisecond)

	writePatch(t, filepath.Join(dir, "other.json"), "other")
	time.Sleep(800 * time.Millisecond)
	select {
	case d := <-got:
		t.Fatalf("sibling file triggered a reload: %+v", d)
	default:
	}
}

func TestNewWatcherMissingDirectory(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "no", "such", "dir", "x.json"))
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}
