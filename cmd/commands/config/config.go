package config

import (
	"nathanbeddoewebdev/wanddns/internal/cli"
	"nathanbeddoewebdev/wanddns/internal/config"

	"github.com/spf13/cobra"
)

// NewCommand returns the "config" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage wanddns configuration",
		Long: "View and modify persistent wanddns settings.\n\n" +
			"Configuration is stored at ~/.config/wanddns/config.json. Flags and\n" +
			"WANDDNS_* environment variables take precedence over these values.\n\n" +
			config.KeysHelp(),
		Annotations: map[string]string{cli.AnnotationManagesConfig: "true"},
	}

	cmd.AddCommand(SetCommand())
	cmd.AddCommand(GetCommand())

	return cmd
}
