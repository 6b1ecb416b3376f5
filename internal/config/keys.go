package config

import (
	"fmt"
	"slices"
	"strings"

	"nathanbeddoewebdev/wanddns/internal/logging"
)

// KeySpec describes a single configuration key.
type KeySpec struct {
	// Name is the CLI-facing key name (e.g. "log-format").
	Name string

	// Description is a short human-readable explanation shown in help text.
	Description string

	// Get returns the current value for this key from a loaded Config.
	Get func(cfg *Config) string

	// Set applies a value for this key to the given Config (in memory only;
	// the caller is responsible for calling Save).
	Set func(cfg *Config, value string)

	// Normalize, if set, rewrites a user-supplied value before Validate and
	// Set. Values are only trimmed otherwise.
	Normalize func(value string) string

	// Validate, if set, rejects values before they are saved. An empty
	// value always clears the key and is never validated.
	Validate func(value string) error
}

// Keys is the authoritative list of all supported configuration keys.
// To add a new option: add a field to Config and append a KeySpec here.
var Keys = []KeySpec{
	{
		Name:        "endpoints-file",
		Description: "File listing WAN address endpoints, one URL per line",
		Get:         func(cfg *Config) string { return cfg.EndpointsFile },
		Set:         func(cfg *Config, v string) { cfg.EndpointsFile = v },
	},
	{
		Name:        "log-format",
		Description: "Log output format: " + strings.Join(logging.Formats, ", "),
		Get:         func(cfg *Config) string { return cfg.LogFormat },
		Set:         func(cfg *Config, v string) { cfg.LogFormat = v },
		Normalize:   strings.ToLower,
		Validate: func(v string) error {
			if !slices.Contains(logging.Formats, v) {
				return fmt.Errorf("unsupported log format %q (valid: %s)", v, strings.Join(logging.Formats, ", "))
			}
			return nil
		},
	},
	{
		Name:        "log-level",
		Description: "Minimum log level: debug, info, warn, error",
		Get:         func(cfg *Config) string { return cfg.LogLevel },
		Set:         func(cfg *Config, v string) { cfg.LogLevel = v },
		Normalize:   strings.ToLower,
		Validate: func(v string) error {
			_, err := logging.ParseLevel(v)
			return err
		},
	},
}

// Lookup returns the KeySpec for the given name, or nil if not found.
// The name is matched case-insensitively after trimming whitespace.
func Lookup(name string) *KeySpec {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for i := range Keys {
		if Keys[i].Name == normalized {
			return &Keys[i]
		}
	}
	return nil
}

// Apply normalizes, validates and stores value for the key in cfg.
func (k *KeySpec) Apply(cfg *Config, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value != "" && k.Normalize != nil {
		value = k.Normalize(value)
	}
	if value != "" && k.Validate != nil {
		if err := k.Validate(value); err != nil {
			return "", err
		}
	}
	k.Set(cfg, value)
	return value, nil
}

// KeyNames returns the names of all registered keys.
func KeyNames() []string {
	names := make([]string, len(Keys))
	for i, k := range Keys {
		names[i] = k.Name
	}
	return names
}

// KeysHelp builds a formatted block listing all available keys and their
// descriptions, suitable for inclusion in Cobra Long help text.
func KeysHelp() string {
	if len(Keys) == 0 {
		return ""
	}

	maxLen := 0
	for _, k := range Keys {
		maxLen = max(maxLen, len(k.Name))
	}

	var b strings.Builder
	b.WriteString("Available keys:\n")
	for _, k := range Keys {
		fmt.Fprintf(&b, "  %-*s   %s\n", maxLen, k.Name, k.Description)
	}
	return b.String()
}
