package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/lmcintyre/AnimAssist/pkg/errors"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ANIMASSIST_"

// userConfigRelPath is the user config location relative to XDG_CONFIG_HOME
const userConfigRelPath = "animassist/config.toml"

// Config is the effective AnimAssist configuration.
type Config struct {
	Tool   ToolConfig   `koanf:"tool" toml:"tool" json:"tool" yaml:"tool"`
	Log    LogConfig    `koanf:"log" toml:"log" json:"log" yaml:"log"`
	Output OutputConfig `koanf:"output" toml:"output" json:"output" yaml:"output"`
}

// ToolConfig configures the external conversion tool.
type ToolConfig struct {
	Path     string        `koanf:"path" toml:"path" json:"path" yaml:"path"`
	Launcher string        `koanf:"launcher" toml:"launcher" json:"launcher" yaml:"launcher"`
	Timeout  time.Duration `koanf:"timeout" toml:"timeout" json:"timeout" yaml:"timeout"`
	WorkDir  string        `koanf:"workdir" toml:"workdir" json:"workdir" yaml:"workdir"`
	Keep     bool          `koanf:"keep" toml:"keep" json:"keep" yaml:"keep"`
}

// LogConfig configures logging.
type LogConfig struct {
	File bool `koanf:"file" toml:"file" json:"file" yaml:"file"`
}

// OutputConfig configures rendering of command results.
type OutputConfig struct {
	Format string `koanf:"format" toml:"format" json:"format" yaml:"format"`
}

// LoadOptions selects the optional layers.
type LoadOptions struct {
	// ConfigFile is an explicit config file; it must exist when set.
	ConfigFile string
	// SkipUserConfig ignores the XDG user config file.
	SkipUserConfig bool
	// Overrides are dotted keys applied above every other layer, such as
	// values given as command line flags.
	Overrides map[string]interface{}
}

// UserConfigPath returns the user config file location.
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, filepath.FromSlash(userConfigRelPath))
}

// Load merges every layer into a Config.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config if it exists
	if !opts.SkipUserConfig {
		path := UserConfigPath()
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load user config from %s", path).
					WithDetail("path", path)
			}
		}
	}

	// 3. Explicit config file
	if opts.ConfigFile != "" {
		if _, err := os.Stat(opts.ConfigFile); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not found", opts.ConfigFile).
				WithDetail("path", opts.ConfigFile)
		}
		if err := k.Load(file.Provider(opts.ConfigFile), parserFor(opts.ConfigFile)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", opts.ConfigFile).
				WithDetail("path", opts.ConfigFile)
		}
	}

	// 4. Environment overrides, ANIMASSIST_TOOL_PATH -> tool.path
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	// 5. Explicit overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode configuration")
	}
	return &cfg, nil
}

// parserFor picks the parser by file extension; TOML unless it is YAML.
func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

// ToTOML renders the configuration as a TOML document.
func (c *Config) ToTOML() ([]byte, error) {
	doc := map[string]interface{}{
		"tool": map[string]interface{}{
			"path":     c.Tool.Path,
			"launcher": c.Tool.Launcher,
			"timeout":  c.Tool.Timeout.String(),
			"workdir":  c.Tool.WorkDir,
			"keep":     c.Tool.Keep,
		},
		"log": map[string]interface{}{
			"file": c.Log.File,
		},
		"output": map[string]interface{}{
			"format": c.Output.Format,
		},
	}
	out, err := gotoml.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
	}
	return out, nil
}
