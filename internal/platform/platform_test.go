package platform

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/notelet/notelet/pkg/adapters/memory"
)

func TestNewWiresInjectedStore(t *testing.T) {
	c, err := New("", WithStore(memory.NewStore()))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if c.Repository == nil || c.Index == nil {
		t.Fatal("components not wired")
	}
	if c.RebuildInterval != 300*time.Millisecond {
		t.Errorf("default rebuild interval = %v", c.RebuildInterval)
	}
}

func TestNewRejectsUnknownAdapter(t *testing.T) {
	if _, err := New("/tmp/x", WithAdapter("carrier-pigeon")); err == nil {
		t.Error("expected error for unknown adapter")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("Missing File Yields Zero Config", func(t *testing.T) {
		cfg, err := LoadConfig(t.TempDir())
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if cfg.Adapter != "" || len(cfg.Options()) != 0 {
			t.Errorf("expected zero config, got %+v", cfg)
		}
	})

	t.Run("Parses Adapter And Highlight", func(t *testing.T) {
		dir := t.TempDir()
		data := "adapter: sqlite\nhighlight:\n  start: '**'\n  end: '**'\n"
		if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(data), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadConfig(dir)
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if cfg.Adapter != "sqlite" || cfg.Highlight.Start != "**" {
			t.Errorf("config = %+v", cfg)
		}
		if len(cfg.Options()) != 2 {
			t.Errorf("expected 2 options, got %d", len(cfg.Options()))
		}
	})

	t.Run("Rejects Malformed Yaml", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("adapter: [broken"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfig(dir); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestFindRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ConfigFileName), []byte(""), 0644); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	got, err := FindRoot(nested)
	if err != nil {
		t.Fatalf("FindRoot failed: %v", err)
	}
	if got != root {
		t.Errorf("FindRoot = %s, want %s", got, root)
	}
}
