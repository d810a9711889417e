package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultDataDirXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	got := DefaultDataDir()
	want := filepath.Join("/tmp/xdg-data", "minthook")
	if got != want {
		t.Fatalf("data dir: got %q want %q", got, want)
	}
}

func TestDefaultDataDirNotEmpty(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "")
	if DefaultDataDir() == "" {
		t.Fatalf("data dir must not be empty")
	}
}
