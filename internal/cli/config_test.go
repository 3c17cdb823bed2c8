package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sigil/pkg/cache"
	"github.com/matzehuels/sigil/pkg/pipeline"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), configFile)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadConfig("", nil)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Render.Size != pipeline.DefaultSize {
		t.Errorf("Size = %v, want %v", cfg.Render.Size, pipeline.DefaultSize)
	}
	if !slices.Equal(cfg.Render.Formats, []string{"svg"}) {
		t.Errorf("Formats = %v", cfg.Render.Formats)
	}
	if cfg.Cache.Backend != cache.BackendFile {
		t.Errorf("Backend = %q", cfg.Cache.Backend)
	}
	if cfg.Server.Addr != defaultAddr {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
[render]
size = 512
colorway = "3"
formats = ["svg", "png"]

[cache]
backend = "none"
prefix = "staging:"

[server]
addr = ":9000"
`)

	cfg, err := LoadConfig(path, nil)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Render.Size != 512 {
		t.Errorf("Size = %v, want 512", cfg.Render.Size)
	}
	if cfg.Render.Colorway != "3" {
		t.Errorf("Colorway = %q", cfg.Render.Colorway)
	}
	if !slices.Equal(cfg.Render.Formats, []string{"svg", "png"}) {
		t.Errorf("Formats = %v", cfg.Render.Formats)
	}
	if cfg.Render.Scale != pipeline.DefaultScale {
		t.Errorf("unset Scale should keep its default, got %v", cfg.Render.Scale)
	}
	if cfg.Cache.Backend != cache.BackendNone {
		t.Errorf("Backend = %q", cfg.Cache.Backend)
	}
	if cfg.Cache.Prefix != "staging:" {
		t.Errorf("Prefix = %q", cfg.Cache.Prefix)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
}

func TestLoadConfigXDG(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	dir := filepath.Join(home, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, configFile), []byte("[server]\naddr = \":1234\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig("", nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":1234" {
		t.Errorf("Addr = %q, want :1234", cfg.Server.Addr)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", "[render\nsize = 1"},
		{"negative size", "[render]\nsize = -4"},
		{"bad format", "[render]\nformats = [\"gif\"]"},
		{"bad colorway", "[render]\ncolorway = \"#zzz\""},
		{"bad backend", "[cache]\nbackend = \"memcached\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, tt.body), nil); err == nil {
				t.Error("LoadConfig() should fail")
			}
		})
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"), nil); err == nil {
		t.Error("explicit missing config should fail")
	}

	_, err := LoadConfig(writeConfig(t, "[cache]\nbackend = \"memcached\""), nil)
	if !errors.Is(err, cache.ErrUnknownBackend) {
		t.Errorf("unknown backend error = %v", err)
	}
}

func TestLoadConfigUnknownKeys(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	if _, err := LoadConfig(writeConfig(t, "[render]\nsise = 512\n"), logger); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "render.sise") {
		t.Errorf("expected a warning naming render.sise, got %q", buf.String())
	}
}
