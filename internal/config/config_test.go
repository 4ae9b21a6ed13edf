package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Highlight.ColorScheme != "default" {
		t.Errorf("ColorScheme = %q, want default", cfg.Highlight.ColorScheme)
	}
	if !cfg.Highlight.Enabled {
		t.Error("Enabled = false, want true")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("missing file loaded %+v, want defaults", cfg)
	}
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("empty path loaded %+v, want defaults", cfg)
	}
}

func TestLoadValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "[highlight]\ncolor-scheme = \"dark\"\nenabled = false\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Highlight.ColorScheme != "dark" {
		t.Errorf("ColorScheme = %q, want dark", cfg.Highlight.ColorScheme)
	}
	if cfg.Highlight.Enabled {
		t.Error("Enabled = true, want false")
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[highlight]\ncolor-scheme = \"light\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Highlight.ColorScheme != "light" {
		t.Errorf("ColorScheme = %q, want light", cfg.Highlight.ColorScheme)
	}
	if !cfg.Highlight.Enabled {
		t.Error("unset enabled flag lost the default")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[highlight\nbroken"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Load = %v, want ParseError", err)
	}
	if parseErr.Path != path {
		t.Errorf("ParseError.Path = %q, want %q", parseErr.Path, path)
	}
}

func TestWatcherReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[highlight]\ncolor-scheme = \"default\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan Config, 1)
	w := NewWatcher(path, 10*time.Millisecond, func(cfg Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	})
	w.Start()
	defer w.Stop()

	// ModTime comparison needs a later timestamp than the initial stat.
	time.Sleep(20 * time.Millisecond)
	if err := os.WriteFile(path, []byte("[highlight]\ncolor-scheme = \"dark\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	now := time.Now()
	if err := os.Chtimes(path, now, now.Add(time.Second)); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.Highlight.ColorScheme != "dark" {
			t.Errorf("reloaded ColorScheme = %q, want dark", cfg.Highlight.ColorScheme)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watcher never reloaded")
	}
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "config.toml"), time.Millisecond, nil)
	w.Start()
	w.Stop()
	w.Stop()
}
