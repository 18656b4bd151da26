package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Config holds the optional CLI defaults. Every field maps to an extract
// flag; flags always win over config values.
type Config struct {
	// ToolPath pins an explicit unsquashfs binary instead of searching
	// PATH.
	ToolPath string `json:"toolPath" yaml:"toolPath"`

	// Processors is the default processor limit passed as -p. Zero means
	// no flag: the tool uses its own default.
	Processors int `json:"processors" yaml:"processors"`

	// Force controls whether the force/overwrite flag is passed by
	// default.
	Force bool `json:"force" yaml:"force"`
}

// candidateNames are the recognized config file names, probed in order
// inside the user config directory.
var candidateNames = []string{"config.yaml", "config.yml", "config.jsonc", "config.json"}

// Load reads the CLI config from <user config dir>/unsquash/, trying each
// recognized file name in order. A missing config is not an error — the
// zero Config is returned so the CLI runs fine without one.
func Load() (*Config, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		// No resolvable config dir (e.g. HOME unset): behave as unconfigured.
		return &Config{}, nil
	}

	for _, name := range candidateNames {
		path := filepath.Join(base, "unsquash", name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return LoadFrom(path)
	}
	return &Config{}, nil
}

// LoadFrom reads and parses the config file at path. The format is chosen
// by extension: .yaml/.yml parse as YAML, everything else as JSONC (JSON
// with comments and trailing commas stripped before decoding).
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := &Config{}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate(path string) error {
	// Zero is "unset": no -p flag is passed and the tool picks its own
	// default. Only negative values are malformed.
	if c.Processors < 0 {
		return fmt.Errorf("config %s: processors must not be negative, got %d", path, c.Processors)
	}
	return nil
}
