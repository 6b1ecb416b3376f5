package cli

import (
	"fmt"
	"slices"
	"strings"

	"nathanbeddoewebdev/wanddns/internal/config"

	"github.com/spf13/pflag"
)

// EnvPrefix prefixes the environment variable bound to every flag.
const EnvPrefix = "WANDDNS_"

// EnvName returns the variable bound to a flag: "update-interval" becomes
// WANDDNS_UPDATE_INTERVAL.
func EnvName(flag string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

// BindEnv sets every flag that was not given on the command line from its
// environment variable, if that is non-empty. Flags named in skip are left
// alone. Slice flags accept comma-separated values.
func BindEnv(fs *pflag.FlagSet, getenv func(string) string, skip ...string) error {
	if getenv == nil {
		return nil
	}

	var errs []error
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Changed || slices.Contains(skip, f.Name) {
			return
		}
		name := EnvName(f.Name)
		v := strings.TrimSpace(getenv(name))
		if v == "" {
			return
		}
		if err := fs.Set(f.Name, v); err != nil {
			errs = append(errs, fmt.Errorf("invalid value %q for %s: %w", v, name, err))
		}
	})
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// ApplyConfig fills flags still unset after BindEnv from persisted config
// keys of the same name.
func ApplyConfig(fs *pflag.FlagSet, cfg *config.Config) error {
	if cfg == nil {
		return nil
	}
	for _, key := range config.Keys {
		f := fs.Lookup(key.Name)
		if f == nil || f.Changed {
			continue
		}
		v := key.Get(cfg)
		if v == "" {
			continue
		}
		if err := fs.Set(key.Name, v); err != nil {
			return fmt.Errorf("invalid value %q for config key %s: %w", v, key.Name, err)
		}
	}
	return nil
}
