package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/salmonumbrella/redelim/internal/validate"
)

// Config represents the CLI configuration
type Config struct {
	// Default output format (text, json, ndjson, table, yaml)
	Output string `yaml:"output,omitempty"`

	// Default color mode (auto, always, never)
	Color string `yaml:"color,omitempty"`

	// Default input path for convert and preview
	Input string `yaml:"input,omitempty"`

	// Default source delimiter (character or name such as "semicolon")
	Delimiter string `yaml:"delimiter,omitempty"`

	// Default output delimiter
	OutDelimiter string `yaml:"out_delimiter,omitempty"`

	// Default number of preview records; nil means unset
	PreviewRows *int `yaml:"preview_rows,omitempty"`

	// Default log handler (text, json)
	LogFormat string `yaml:"log_format,omitempty"`
}

// Keys lists the settable keys in display order.
var Keys = []string{"output", "color", "input", "delimiter", "out_delimiter", "preview_rows", "log_format"}

// configPathFunc is the function used to get the default config path
// It can be overridden for testing
var configPathFunc = defaultConfigPath

// SetConfigPathFunc sets the config path function for testing.
// Returns the original function so it can be restored.
func SetConfigPathFunc(fn func() (string, error)) func() (string, error) {
	orig := configPathFunc
	configPathFunc = fn
	return orig
}

// defaultConfigPath returns ~/.config/redelim/config.yaml
func defaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "redelim", "config.yaml"), nil
}

// DefaultConfigPath returns ~/.config/redelim/config.yaml
func DefaultConfigPath() (string, error) {
	return configPathFunc()
}

// Load loads config from the default path, returns empty config if not found
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return &Config{}, nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}
	return &cfg, nil
}

// Save saves config to the default path
func (c *Config) Save() error {
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveToPath(path)
}

// SaveToPath saves config to a specific path
func (c *Config) SaveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// GetOutput returns the configured output format or empty
func (c *Config) GetOutput() string {
	return c.Output
}

// GetColor returns the configured color mode or empty
func (c *Config) GetColor() string {
	return c.Color
}

// GetPreviewRows returns the configured preview size, or def when unset.
func (c *Config) GetPreviewRows(def int) int {
	if c.PreviewRows == nil {
		return def
	}
	return *c.PreviewRows
}

// Get returns the raw value stored under key, empty when unset.
func (c *Config) Get(key string) (string, error) {
	switch normalizeKey(key) {
	case "output":
		return c.Output, nil
	case "color":
		return c.Color, nil
	case "input":
		return c.Input, nil
	case "delimiter":
		return c.Delimiter, nil
	case "out_delimiter":
		return c.OutDelimiter, nil
	case "preview_rows":
		if c.PreviewRows == nil {
			return "", nil
		}
		return strconv.Itoa(*c.PreviewRows), nil
	case "log_format":
		return c.LogFormat, nil
	default:
		return "", unknownKeyError(key)
	}
}

// Set validates value and stores it under key. An empty value clears the key.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	k := normalizeKey(key)

	if value == "" {
		return c.clear(k, key)
	}

	switch k {
	case "output":
		v := strings.ToLower(value)
		if !oneOf(v, "text", "json", "ndjson", "jsonl", "table", "yaml") {
			return fmt.Errorf("invalid output %q (expected text|json|ndjson|jsonl|table|yaml)", value)
		}
		c.Output = v
	case "color":
		v := strings.ToLower(value)
		if !oneOf(v, "auto", "always", "never") {
			return fmt.Errorf("invalid color %q (expected auto|always|never)", value)
		}
		c.Color = v
	case "input":
		c.Input = value
	case "delimiter":
		if _, err := validate.Delimiter("delimiter", value); err != nil {
			return err
		}
		c.Delimiter = value
	case "out_delimiter":
		if _, err := validate.Delimiter("out_delimiter", value); err != nil {
			return err
		}
		c.OutDelimiter = value
	case "preview_rows":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid preview_rows %q: must be an integer", value)
		}
		if err := validate.PreviewRows(n); err != nil {
			return err
		}
		c.PreviewRows = &n
	case "log_format":
		v := strings.ToLower(value)
		if !oneOf(v, "text", "json") {
			return fmt.Errorf("invalid log_format %q (expected text|json)", value)
		}
		c.LogFormat = v
	default:
		return unknownKeyError(key)
	}
	return nil
}

func (c *Config) clear(k, raw string) error {
	switch k {
	case "output":
		c.Output = ""
	case "color":
		c.Color = ""
	case "input":
		c.Input = ""
	case "delimiter":
		c.Delimiter = ""
	case "out_delimiter":
		c.OutDelimiter = ""
	case "preview_rows":
		c.PreviewRows = nil
	case "log_format":
		c.LogFormat = ""
	default:
		return unknownKeyError(raw)
	}
	return nil
}

// normalizeKey accepts dashed spellings such as "out-delimiter".
func normalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "-", "_")
}

func unknownKeyError(key string) error {
	return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(Keys, ", "))
}

func oneOf(v string, options ...string) bool {
	for _, o := range options {
		if v == o {
			return true
		}
	}
	return false
}
