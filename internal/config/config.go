// Package config reads and writes the wanddns settings file.
//
// The file is config.json in the wanddns directory under os.UserConfigDir.
// The same directory holds the default WAN endpoint list (api_urls.txt). The
// settings are defaults for the log and endpoint-list flags: a flag or a
// WANDDNS_* variable always overrides them, and a missing file is the same as
// an empty one.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	appDir   = "wanddns"
	fileName = "config.json"
)

// ErrMalformed is wrapped by Load when the file exists but is not valid JSON.
var ErrMalformed = errors.New("malformed config file")

// pathOverride replaces Path's result while non-empty.
var pathOverride string

// SetPath points Load and Save at p. Tests use it to keep off the real file.
func SetPath(p string) { pathOverride = p }

// ResetPath undoes SetPath.
func ResetPath() { pathOverride = "" }

// Config is the persisted settings. Every field maps to a key in Keys and to
// the flag of the same name.
type Config struct {
	// EndpointsFile is the WAN address endpoint list. Empty means the
	// api_urls.txt file next to config.json.
	EndpointsFile string `json:"endpoints_file,omitempty"`

	// LogFormat is human, text or json.
	LogFormat string `json:"log_format,omitempty"`

	// LogLevel is debug, info, warn or error.
	LogLevel string `json:"log_level,omitempty"`
}

// Path returns the settings file location.
func Path() (string, error) {
	if pathOverride != "" {
		return pathOverride, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: unable to determine config directory: %w", err)
	}
	return filepath.Join(base, appDir, fileName), nil
}

// Dir returns the directory holding the settings file.
func Dir() (string, error) {
	p, err := Path()
	if err != nil {
		return "", err
	}
	return filepath.Dir(p), nil
}

// Load reads the settings file. A missing file yields an empty Config; an
// unparsable one yields an error wrapping ErrMalformed.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom is Load for an explicit path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w %s: %w", ErrMalformed, path, err)
	}
	return &cfg, nil
}

// Save writes the settings file, creating the wanddns directory if needed.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo is Save for an explicit path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("config: failed to create directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("config: failed to encode settings: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: failed to write %s: %w", path, err)
	}
	return nil
}
