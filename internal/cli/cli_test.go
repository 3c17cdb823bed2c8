package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sigil/pkg/cache"
	"github.com/matzehuels/sigil/pkg/core/seal"
)

// newTestCLI returns a CLI with isolated config and cache directories.
func newTestCLI(t *testing.T) *CLI {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	return New(io.Discard, log.InfoLevel)
}

func execute(t *testing.T, c *CLI, args ...string) error {
	t.Helper()
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces and case", " SVG , json,", []string{"svg", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseFormats(tt.input); !slices.Equal(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, log.InfoLevel).RootCommand()
	want := []string{"pour", "batch", "layout", "colorways", "tree", "serve", "cache", "completion"}
	for _, name := range want {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestOptionsMerge(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	c.Config = DefaultConfig()
	c.Config.Render.Size = 512
	c.Config.Render.Colorway = "2"

	newCmd := func() (*cobra.Command, *pourFlags) {
		var f pourFlags
		cmd := &cobra.Command{Use: "x"}
		f.register(cmd)
		return cmd, &f
	}

	// Config values apply when flags are untouched.
	cmd, f := newCmd()
	opts, err := c.options(cmd, f)
	if err != nil {
		t.Fatal(err)
	}
	if opts.Size != 512 {
		t.Errorf("Size = %v, want config value 512", opts.Size)
	}
	if !slices.Equal(opts.Colorway, []string(seal.CanonicalColorway(2))) {
		t.Errorf("Colorway = %v, want canonical 2", opts.Colorway)
	}

	// Flags override config.
	cmd, f = newCmd()
	if err := cmd.ParseFlags([]string{"--size", "128", "-c", "#000,#fff", "-f", "png,json"}); err != nil {
		t.Fatal(err)
	}
	opts, err = c.options(cmd, f)
	if err != nil {
		t.Fatal(err)
	}
	if opts.Size != 128 {
		t.Errorf("Size = %v, want flag value 128", opts.Size)
	}
	if !slices.Equal(opts.Colorway, []string{"#000", "#fff"}) {
		t.Errorf("Colorway = %v", opts.Colorway)
	}
	if !slices.Equal(opts.Formats, []string{"png", "json"}) {
		t.Errorf("Formats = %v", opts.Formats)
	}

	// Invalid flags fail before any work is done.
	for _, args := range [][]string{{"-f", "gif"}, {"-c", "99"}, {"-d", filepath.Join(t.TempDir(), "missing.json")}} {
		cmd, f = newCmd()
		if err := cmd.ParseFlags(args); err != nil {
			t.Fatal(err)
		}
		if _, err := c.options(cmd, f); err == nil {
			t.Errorf("options(%v) should fail", args)
		}
	}
}

func TestPourCommand(t *testing.T) {
	c := newTestCLI(t)
	dir := t.TempDir()
	base := filepath.Join(dir, "seal")

	if err := execute(t, c, "pour", "~marzod", "-f", "svg,json", "-o", base); err != nil {
		t.Fatalf("pour error: %v", err)
	}

	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if !bytes.HasPrefix(svg, []byte("<svg")) {
		t.Errorf("svg output starts with %q", svg[:min(16, len(svg))])
	}

	data, err := os.ReadFile(base + ".json")
	if err != nil {
		t.Fatalf("read json: %v", err)
	}
	var doc seal.Node
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if doc.Tag != seal.TagSVG || len(doc.Children) != 3 {
		t.Errorf("document = %s with %d children, want svg with background and 2 symbols", doc.Tag, len(doc.Children))
	}

	// The second run is served from the file cache.
	if err := execute(t, c, "pour", "~marzod", "-f", "svg", "-o", base+"-again.svg"); err != nil {
		t.Fatal(err)
	}
	again, _ := os.ReadFile(base + "-again.svg")
	if !bytes.Equal(svg, again) {
		t.Error("cached output differs from the first render")
	}
}

func TestPourCommandDictionary(t *testing.T) {
	c := newTestCLI(t)
	dir := t.TempDir()
	dictPath := filepath.Join(dir, "dict.json")
	dict := `{"mapping": {"zod": {"tag": "path", "attr": {"d": "c0"}, "meta": {"style": {"fill": "FG"}}}}, "refs": {"c0": "M0 0L128 128"}}`
	if err := os.WriteFile(dictPath, []byte(dict), 0o644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "zod.svg")
	if err := execute(t, c, "pour", "~zod", "-d", dictPath, "-o", out); err != nil {
		t.Fatalf("pour error: %v", err)
	}
	svg, _ := os.ReadFile(out)
	if !strings.Contains(string(svg), "M0 0L128 128") {
		t.Errorf("dictionary glyph missing from %s", svg)
	}
}

func TestPourCommandErrors(t *testing.T) {
	c := newTestCLI(t)
	out := filepath.Join(t.TempDir(), "x")
	for _, args := range [][]string{
		{"pour", "~ridlurfig", "-o", out},
		{"pour", "~zod", "-f", "gif", "-o", out},
		{"pour", "~zod", "--size", "-1", "-o", out},
		{"pour", "~zod", "-f", "svg,png", "-o", "-"},
		{"pour"},
	} {
		if err := execute(t, c, args...); err == nil {
			t.Errorf("%v should fail", args)
		}
	}
}

func TestLayoutCommand(t *testing.T) {
	c := newTestCLI(t)
	out := filepath.Join(t.TempDir(), "layout.json")
	if err := execute(t, c, "layout", "~ridlur-figbud", "-o", out); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(out)
	var l seal.Layout
	if err := json.Unmarshal(data, &l); err != nil {
		t.Fatal(err)
	}
	if len(l.Grid) != 4 || l.Size != seal.DefaultSize {
		t.Errorf("layout = %d cells at size %v", len(l.Grid), l.Size)
	}

	if err := execute(t, c, "layout", "3"); err == nil {
		t.Error("layout 3 should fail")
	}
}

func TestSymbolCount(t *testing.T) {
	tests := []struct {
		arg     string
		want    int
		wantErr bool
	}{
		{"4", 4, false},
		{"~zod", 1, false},
		{"~ridlur-figbud", 4, false},
		{"~ridlurfig", 0, true},
		{"2000000", 0, true},
		{"0", 0, true},
	}
	for _, tt := range tests {
		got, err := symbolCount(tt.arg)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("symbolCount(%q) = %d, %v; want %d, err=%v", tt.arg, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestTreeCommand(t *testing.T) {
	c := newTestCLI(t)
	out := filepath.Join(t.TempDir(), "tree.dot")
	if err := execute(t, c, "tree", "~marzod", "--detailed", "-o", out); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(out)
	if !strings.HasPrefix(string(data), "digraph") {
		t.Errorf("tree output = %q", data)
	}
	if err := execute(t, c, "tree", "~zod", "-t", "gif", "-o", out); err == nil {
		t.Error("unknown diagram format should fail")
	}
}

func TestCacheClearCommand(t *testing.T) {
	c := newTestCLI(t)
	out := filepath.Join(t.TempDir(), "zod.svg")
	if err := execute(t, c, "pour", "~zod", "-o", out); err != nil {
		t.Fatal(err)
	}

	dir, _ := cacheDir()
	entries, _ := os.ReadDir(dir)
	if len(entries) == 0 {
		t.Fatal("pour should populate the cache")
	}

	if err := execute(t, c, "cache", "clear"); err != nil {
		t.Fatal(err)
	}
	var files int
	_ = filepath.WalkDir(dir, func(_ string, d os.DirEntry, _ error) error {
		if d != nil && !d.IsDir() {
			files++
		}
		return nil
	})
	if files != 0 {
		t.Errorf("%d files left after cache clear", files)
	}
}

func TestNewRunnerCachePrefix(t *testing.T) {
	c := newTestCLI(t)
	c.Config = DefaultConfig()

	r, err := c.newRunner(context.Background(), true)
	if err != nil {
		t.Fatal(err)
	}
	plain := r.Keyer.ArtifactKey("h", cache.ArtifactKeyOpts{Format: "svg"})
	if strings.HasPrefix(plain, "staging:") {
		t.Fatalf("unprefixed key = %s", plain)
	}

	c.Config.Cache.Prefix = "staging:"
	r, err = c.newRunner(context.Background(), true)
	if err != nil {
		t.Fatal(err)
	}
	if key := r.Keyer.ArtifactKey("h", cache.ArtifactKeyOpts{Format: "svg"}); key != "staging:"+plain {
		t.Errorf("prefixed key = %s, want staging:%s", key, plain)
	}
}
