package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sigil/pkg/buildinfo"
	"github.com/matzehuels/sigil/pkg/cache"
	"github.com/matzehuels/sigil/pkg/core/seal"
	sigilio "github.com/matzehuels/sigil/pkg/io"
	"github.com/matzehuels/sigil/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "sigil"

	// defaultWorkers bounds concurrent renders in the batch command.
	defaultWorkers = 8
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *Config

	// configPath is the --config flag. Empty means the XDG default.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Sigil pours deterministic seals from identifiers",
		Long:         `Sigil turns a phonemic identifier such as ~ridlur-figbud into a seal: one glyph per syllable, laid out on a square grid and colored by a palette derived from the identifier.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(c.configPath, c.Logger)
			if err != nil {
				return err
			}
			c.Config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/sigil/config.toml)")

	// Register all subcommands
	root.AddCommand(c.pourCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.colorwaysCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. Keys carry the configured
// cache prefix, if any.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cache, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, c.config().Cache.Keyer(), c.Logger), nil
}

// newCache opens the configured cache backend. The file backend falls back
// to the XDG cache directory when no directory is configured.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	cfg := c.config().Cache
	if (cfg.Backend == "" || cfg.Backend == cache.BackendFile) && cfg.Dir == "" {
		dir, err := cacheDir()
		if err != nil {
			c.Logger.Warnf("No cache directory: %v", err)
			return cache.NewNullCache(), nil
		}
		cfg.Dir = dir
	}
	return cache.Open(ctx, cfg)
}

// loadDictionary reads the dictionary at path, a file or an http(s) URL, or
// the one named by the config file when path is empty. No dictionary at all is valid: every syllable then
// draws the default symbol.
func (c *CLI) loadDictionary(ctx context.Context, path string) (*seal.Dictionary, error) {
	if path == "" {
		path = c.config().Render.Dictionary
	}
	if path == "" {
		return nil, nil
	}
	d, err := sigilio.LoadDictionary(ctx, path)
	if err != nil {
		return nil, err
	}
	c.Logger.Debugf("Loaded dictionary %s: %d symbols", path, d.Len())
	return d, nil
}

func (c *CLI) config() *Config {
	if c.Config == nil {
		c.Config = DefaultConfig()
	}
	return c.Config
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/sigil/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/sigil/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// outputPath builds the file name for one format. A base that already
// carries the format's extension is used as is.
func outputPath(base, format string) string {
	if strings.EqualFold(filepath.Ext(base), "."+format) {
		return base
	}
	if ext := strings.TrimPrefix(filepath.Ext(base), "."); pipeline.ValidFormats[strings.ToLower(ext)] {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return base + "." + format
}

// fileStem turns an identifier into a file name stem: "~ridlur-figbud" -> "ridlur-figbud".
func fileStem(identifier string) string {
	return strings.TrimPrefix(strings.TrimSpace(identifier), "~")
}
