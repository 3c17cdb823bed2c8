package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/sigil/pkg/cache"
	"github.com/matzehuels/sigil/pkg/pipeline"
)

// configFile is the config file name inside the config directory.
const configFile = "config.toml"

// defaultAddr is the listen address for the serve command.
const defaultAddr = "127.0.0.1:8080"

// Config is the on-disk CLI configuration. Flags override config values;
// config values override built-in defaults.
//
//	[render]
//	size = 512
//	colorway = "3"
//	dictionary = "~/sigil/symbols.json"
//	formats = ["svg", "png"]
//
//	[cache]
//	backend = "redis"
//	url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":8080"
type Config struct {
	Render RenderConfig `toml:"render"`
	Cache  cache.Config `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// RenderConfig holds defaults for pour and batch.
type RenderConfig struct {
	Size       float64  `toml:"size"`
	Colorway   string   `toml:"colorway"`
	Dictionary string   `toml:"dictionary"`
	Formats    []string `toml:"formats"`
	Scale      float64  `toml:"scale"`
}

// ServerConfig holds defaults for the serve command.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Render: RenderConfig{
			Size:    pipeline.DefaultSize,
			Formats: []string{pipeline.FormatSVG},
			Scale:   pipeline.DefaultScale,
		},
		Cache:  cache.Config{Backend: cache.BackendFile},
		Server: ServerConfig{Addr: defaultAddr},
	}
}

// LoadConfig reads the config file at path on top of [DefaultConfig].
// An empty path selects $XDG_CONFIG_HOME/sigil/config.toml, which may be
// absent. An explicit path must exist.
func LoadConfig(path string, logger *log.Logger) (*Config, error) {
	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, configFile)
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if logger != nil {
		for _, key := range md.Undecoded() {
			logger.Warnf("Unknown config key %q in %s", key.String(), path)
		}
		logger.Debugf("Loaded config %s", path)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if err := pipeline.ValidateSize(c.Render.Size); err != nil {
		return err
	}
	if err := pipeline.ValidateFormats(c.Render.Formats); err != nil {
		return err
	}
	if _, err := pipeline.ParseColorway(c.Render.Colorway); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case "", cache.BackendFile, cache.BackendNone, cache.BackendRedis, cache.BackendMongo:
	default:
		return fmt.Errorf("%w: %q", cache.ErrUnknownBackend, c.Cache.Backend)
	}
	return nil
}
