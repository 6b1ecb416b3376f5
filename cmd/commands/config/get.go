package config

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/wanddns/internal/config"

	"github.com/spf13/cobra"
)

// GetCommand returns the "config get" command.
func GetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get [key]",
		Short: "Get a configuration value",
		Long: "Print a persistent configuration value, or every value when no key is given.\n\n" +
			config.KeysHelp() +
			"\nExamples:\n" +
			"  wanddns config get\n" +
			"  wanddns config get log-format",
		Args:         cobra.MaximumNArgs(1),
		RunE:         runGet,
		SilenceUsage: true,
	}
}

func runGet(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if len(args) == 0 {
		for _, spec := range config.Keys {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", spec.Name, orNotSet(spec.Get(cfg)))
		}
		return nil
	}

	spec := config.Lookup(args[0])
	if spec == nil {
		return fmt.Errorf("unknown configuration key %q (valid: %s)", args[0], strings.Join(config.KeyNames(), ", "))
	}
	fmt.Fprintln(cmd.OutOrStdout(), orNotSet(spec.Get(cfg)))
	return nil
}

func orNotSet(v string) string {
	if v == "" {
		return "not set"
	}
	return v
}
