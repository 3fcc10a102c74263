// # internal/core/watcher/watcher_test.go
package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewWatcher_RejectsNilCallback(t *testing.T) {
	w, err := NewWatcher(100*time.Millisecond, nil, nil, nil, nil)
	if err == nil {
		t.Fatal("expected error for nil callback")
	}
	if !errors.Is(err, os.ErrInvalid) {
		t.Fatalf("expected os.ErrInvalid, got %v", err)
	}
	if w != nil {
		t.Fatal("expected nil watcher when callback is invalid")
	}
}

func TestWatcher(t *testing.T) {
	tmpDir := t.TempDir()

	changedFiles := make(chan []string, 1)
	w, err := NewWatcher(100*time.Millisecond,
		[]string{".jsx", ".tsx"},
		[]string{"node_modules"},
		[]string{"*.generated.jsx"},
		func(paths []string) {
			changedFiles <- paths
		})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Watch([]string{tmpDir}); err != nil {
		t.Fatal(err)
	}

	// Create a file
	testFile := filepath.Join(tmpDir, "App.jsx")
	os.WriteFile(testFile, []byte("const App = () => <div />;"), 0644)

	select {
	case paths := <-changedFiles:
		found := false
		for _, p := range paths {
			if p == testFile {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected to find %s in changed files %v", testFile, paths)
		}
	case <-time.After(2 * time.Second):
		t.Error("Timed out waiting for file change event")
	}

	// Excluded by extension filter.
	os.WriteFile(filepath.Join(tmpDir, "notes.md"), []byte("# notes"), 0644)
	// Excluded by file glob.
	os.WriteFile(filepath.Join(tmpDir, "App.generated.jsx"), []byte(""), 0644)

	select {
	case paths := <-changedFiles:
		for _, p := range paths {
			base := filepath.Base(p)
			if base == "notes.md" || base == "App.generated.jsx" {
				t.Errorf("Excluded file triggered event: %s", p)
			}
		}
	case <-time.After(500 * time.Millisecond):
		// Expected
	}

	// New directory should be recursively watched after create.
	subdir := filepath.Join(tmpDir, "components")
	if err := os.MkdirAll(subdir, 0755); err != nil {
		t.Fatal(err)
	}
	subFile := filepath.Join(subdir, "Nested.tsx")
	if err := os.WriteFile(subFile, []byte("const Nested = () => <div />;"), 0644); err != nil {
		t.Fatal(err)
	}

	foundNested := false
	timeout := time.After(2 * time.Second)
	for !foundNested {
		select {
		case paths := <-changedFiles:
			for _, p := range paths {
				if p == subFile {
					foundNested = true
					break
				}
			}
		case <-timeout:
			t.Fatal("timed out waiting for nested file event in newly created directory")
		}
	}
}

func TestWatcher_RenameTriggersChange(t *testing.T) {
	tmpDir := t.TempDir()

	changedFiles := make(chan []string, 8)
	w, err := NewWatcher(100*time.Millisecond, nil, nil, nil, func(paths []string) {
		changedFiles <- paths
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Watch([]string{tmpDir}); err != nil {
		t.Fatal(err)
	}

	oldPath := filepath.Join(tmpDir, "Old.jsx")
	newPath := filepath.Join(tmpDir, "New.jsx")
	if err := os.WriteFile(oldPath, []byte("const Old = () => <div />;"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := os.Rename(oldPath, newPath); err != nil {
		t.Fatal(err)
	}

	timeout := time.After(2 * time.Second)
	for {
		select {
		case paths := <-changedFiles:
			for _, p := range paths {
				if p == oldPath || p == newPath {
					return
				}
			}
		case <-timeout:
			t.Fatalf("timed out waiting for rename event, old=%s new=%s", oldPath, newPath)
		}
	}
}

func TestWatcher_ExtensionFilter(t *testing.T) {
	w, err := NewWatcher(10*time.Millisecond, []string{".jsx"}, nil, nil, func([]string) {})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if w.shouldExcludeFile("main.py") == false {
		t.Fatal("expected .py to be excluded when .jsx is the only enabled extension")
	}
	if w.shouldExcludeFile("App.jsx") {
		t.Fatal("expected .jsx to pass the extension filter")
	}
	if w.shouldExcludeFile("App.JSX") {
		t.Fatal("extension comparison should be case-insensitive")
	}
}
