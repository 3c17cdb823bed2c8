package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := filepath.Join(t.TempDir(), "custom-cache")
	t.Setenv("XDG_CACHE_HOME", customCache)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")

	dir, err := configDir()
	if err != nil {
		t.Fatalf("configDir() error: %v", err)
	}
	if !strings.HasSuffix(dir, filepath.Join(".config", appName)) {
		t.Errorf("configDir() = %q, should end with .config/%s", dir, appName)
	}

	custom := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", custom)
	dir, _ = configDir()
	if dir != filepath.Join(custom, appName) {
		t.Errorf("configDir() with XDG_CONFIG_HOME = %q", dir)
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		base, format, want string
	}{
		{"zod", "svg", "zod.svg"},
		{"zod.svg", "svg", "zod.svg"},
		{"zod.svg", "png", "zod.png"},
		{"out/seal.PNG", "png", "out/seal.PNG"},
		{"ridlur-figbud", "json", "ridlur-figbud.json"},
		{"my.seal", "svg", "my.seal.svg"},
	}
	for _, tt := range tests {
		if got := outputPath(tt.base, tt.format); got != tt.want {
			t.Errorf("outputPath(%q, %q) = %q, want %q", tt.base, tt.format, got, tt.want)
		}
	}
}

func TestFileStem(t *testing.T) {
	if got := fileStem(" ~ridlur-figbud "); got != "ridlur-figbud" {
		t.Errorf("fileStem = %q", got)
	}
	if got := fileStem("zod"); got != "zod" {
		t.Errorf("fileStem = %q", got)
	}
}
