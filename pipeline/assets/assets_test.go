package assets

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestIsMeshFile(t *testing.T) {
	testCases := []struct {
		path     string
		expected bool
	}{
		{"cube.obj", true},
		{"dir/cube.OBJ", true},
		{"cube.stl", false},
		{"cube.obj.bak", false},
		{"cube", false},
	}

	for _, tc := range testCases {
		if got := IsMeshFile(tc.path); got != tc.expected {
			t.Errorf("IsMeshFile(%q): expected %v, got %v", tc.path, tc.expected, got)
		}
	}
}

func TestMeshWatcherReportsNewMeshes(t *testing.T) {
	dir := t.TempDir()

	mw, err := NewMeshWatcher()
	if err != nil {
		t.Fatalf("NewMeshWatcher: %v", err)
	}
	defer mw.Shutdown()

	if err := mw.Initialize(dir); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	meshPath := filepath.Join(dir, "cube.obj")
	if err := os.WriteFile(meshPath, []byte("v 0 0 0\n"), 0o644); err != nil {
		t.Fatalf("writing mesh: %v", err)
	}
	// A non-mesh file must not produce an event.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("writing text file: %v", err)
	}

	select {
	case got := <-mw.Events():
		if got != meshPath {
			t.Errorf("event path: expected %s, got %s", meshPath, got)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for mesh event")
	}
}

func TestMeshWatcherShutdownClosesEvents(t *testing.T) {
	mw, err := NewMeshWatcher()
	if err != nil {
		t.Fatalf("NewMeshWatcher: %v", err)
	}
	if err := mw.Initialize(t.TempDir()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	mw.Shutdown()
	// Shutdown twice must be harmless.
	mw.Shutdown()

	select {
	case _, ok := <-mw.Events():
		if ok {
			t.Errorf("expected events channel to close")
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for events channel to close")
	}
}
