package config

import (
	"errors"
	"fmt"
	"strings"

	"nathanbeddoewebdev/wanddns/internal/config"

	"github.com/spf13/cobra"
)

// SetCommand returns the "config set" command.
func SetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: "Set a persistent configuration value. An empty value clears the key.\n" +
			"A settings file that is not valid JSON is replaced.\n\n" +
			config.KeysHelp() +
			"\nExamples:\n" +
			"  wanddns config set log-format json\n" +
			"  wanddns config set endpoints-file /etc/wanddns/api_urls.txt\n" +
			"  wanddns config set log-level \"\"",
		Args:         cobra.ExactArgs(2),
		RunE:         runSet,
		SilenceUsage: true,
	}
}

func runSet(cmd *cobra.Command, args []string) error {
	spec := config.Lookup(args[0])
	if spec == nil {
		return fmt.Errorf("unknown configuration key %q (valid: %s)", args[0], strings.Join(config.KeyNames(), ", "))
	}

	cfg, err := config.Load()
	switch {
	case errors.Is(err, config.ErrMalformed):
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v; replacing it\n", err)
		cfg = &config.Config{}
	case err != nil:
		return fmt.Errorf("failed to load config: %w", err)
	}

	value, err := spec.Apply(cfg, args[1])
	if err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return err
	}

	if value == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "%s cleared\n", spec.Name)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s set to %q\n", spec.Name, value)
	return nil
}
