package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	base, override := t.TempDir(), t.TempDir()
	writeFile(t, base, "scene.yaml", "base")
	writeFile(t, base, "only-base.yaml", "base only")
	writeFile(t, override, "scene.yaml", "override")

	m := NewManager()
	for _, dir := range []string{base, override} {
		if err := m.AddSearchPath(dir); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name string
		want string
	}{
		{"scene.yaml", "override"},
		{"only-base.yaml", "base only"},
		{filepath.Join(base, "scene.yaml"), "base"},
	}
	for _, tt := range tests {
		data, err := m.Load(tt.name)
		if err != nil {
			t.Fatalf("Load(%q) error = %v", tt.name, err)
		}
		if string(data) != tt.want {
			t.Errorf("Load(%q) = %q, want %q", tt.name, data, tt.want)
		}
	}
}

func TestLoadNotFound(t *testing.T) {
	m := NewManager()
	if err := m.AddSearchPath(t.TempDir()); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"missing.yaml", "/nonexistent/scene.yaml"} {
		if _, err := m.Load(name); !errors.Is(err, ErrNotFound) {
			t.Errorf("Load(%q) error = %v, want ErrNotFound", name, err)
		}
	}
}

func TestLoadCaches(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "scene.yaml", "v1")

	m := NewManager()
	if err := m.AddSearchPath(dir); err != nil {
		t.Fatal(err)
	}

	if _, err := m.Load("scene.yaml"); err != nil {
		t.Fatal(err)
	}
	writeFile(t, dir, "scene.yaml", "v2")
	data, err := m.Load("scene.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "v1" {
		t.Errorf("second Load() = %q, want cached v1", data)
	}
	if hits, misses := m.Stats(); hits != 1 || misses != 1 {
		t.Errorf("Stats() = %d hits, %d misses, want 1, 1", hits, misses)
	}

	m.Close()
	if hits, misses := m.Stats(); hits != 0 || misses != 0 {
		t.Errorf("Stats() after Close = %d, %d, want 0, 0", hits, misses)
	}
}

func TestAddSearchPathInvalid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "file.txt", "x")

	m := NewManager()
	if err := m.AddSearchPath(filepath.Join(dir, "nope")); err == nil {
		t.Error("AddSearchPath(missing) error = nil, want error")
	}
	if err := m.AddSearchPath(filepath.Join(dir, "file.txt")); err == nil {
		t.Error("AddSearchPath(file) error = nil, want error")
	}
}
