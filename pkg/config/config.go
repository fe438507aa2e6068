package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/hamstercage/pkg/errors"
	"github.com/arthur-debert/hamstercage/pkg/logging"
	"github.com/arthur-debert/hamstercage/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "HAMSTERCAGE_"

// envKeys maps the environment variables read as settings to config keys
var envKeys = map[string]string{
	"HAMSTERCAGE_DIRECTORY": "directory",
	"HAMSTERCAGE_FILE":      "file",
	"HAMSTERCAGE_HOSTNAME":  "hostname",
	"HAMSTERCAGE_COLOR":     "color",
}

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds the resolved CLI settings
type Config struct {
	Directory string   `koanf:"directory"`
	File      string   `koanf:"file"`
	Repo      string   `koanf:"repo"`
	Hostname  string   `koanf:"hostname"`
	Color     string   `koanf:"color"`
	Tags      []string `koanf:"tags"`
}

// LoadOptions controls where Load looks for settings
type LoadOptions struct {
	// ConfigFile replaces the XDG user config lookup when set
	ConfigFile string
	// ConfigDir overrides the XDG config directory, mainly for tests
	ConfigDir string
	// Overrides are applied last, typically flags that were changed
	Overrides map[string]interface{}
}

// ManifestPath returns the manifest location, resolving a relative File
// against Repo
func (c *Config) ManifestPath() string {
	if filepath.IsAbs(c.File) {
		return c.File
	}
	return filepath.Join(c.Repo, c.File)
}

// Load builds the layered configuration
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Built-in defaults
	hostname, err := os.Hostname()
	if err != nil {
		logger.Debug().Err(err).Msg("Cannot determine hostname")
		hostname = ""
	}
	builtin := map[string]interface{}{
		"directory": "/",
		"file":      "hamstercage.yaml",
		"repo":      ".",
		"hostname":  hostname,
		"color":     ColorAuto,
	}
	if err := k.Load(confmap.Provider(builtin, "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load built-in defaults")
	}

	// 2. Embedded defaults.toml
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load embedded defaults")
	}

	// 3. User config file
	userConfig, err := findUserConfig(opts)
	if err != nil {
		return nil, err
	}
	if userConfig != "" {
		var parser koanf.Parser = toml.Parser()
		if ext := strings.ToLower(filepath.Ext(userConfig)); ext == ".yaml" || ext == ".yml" {
			parser = yaml.Parser()
		}
		if err := k.Load(file.Provider(userConfig), parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", userConfig)
		}
		logger.Debug().Str("path", userConfig).Msg("Loaded user config")
	}

	// 4. Environment
	err = k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return envKeys[s]
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	// 5. Explicit overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	if err := postProcessConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// findUserConfig returns the config file to load, or "" when there is none
func findUserConfig(opts LoadOptions) (string, error) {
	if opts.ConfigFile != "" {
		if _, err := os.Stat(opts.ConfigFile); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "config file %s", opts.ConfigFile)
		}
		return opts.ConfigFile, nil
	}

	dir := opts.ConfigDir
	if dir == "" {
		dir = paths.ConfigDir()
	}
	for _, name := range []string{"config.toml", "config.yaml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

func postProcessConfig(cfg *Config) error {
	cfg.Color = strings.ToLower(cfg.Color)
	switch cfg.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return errors.Newf(errors.ErrUsage, "invalid color mode %q, want auto, always or never", cfg.Color)
	}
	if cfg.Directory == "" {
		cfg.Directory = "/"
	}
	if cfg.Repo == "" {
		cfg.Repo = "."
	}
	if cfg.File == "" {
		return errors.New(errors.ErrUsage, "manifest file must not be empty")
	}
	for _, p := range []*string{&cfg.Directory, &cfg.Repo, &cfg.File} {
		expanded, err := paths.ExpandHome(*p)
		if err != nil {
			return errors.Wrap(err, errors.ErrConfigLoad, "invalid path setting")
		}
		*p = expanded
	}
	return nil
}

// String renders the settings for debug logging
func (c *Config) String() string {
	return fmt.Sprintf("directory=%s file=%s repo=%s hostname=%s color=%s tags=%v",
		c.Directory, c.File, c.Repo, c.Hostname, c.Color, c.Tags)
}
