package dns

import (
	"nathanbeddoewebdev/wanddns/internal/cli"

	"github.com/spf13/cobra"
)

// NewCommand returns the top-level "dns" Cobra command with all subcommands attached.
func NewCommand(deps *cli.Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dns",
		Short: "Inspect domains and records in the DigitalOcean account",
		Long: `List the domains and records the API key can see. Useful for finding the
record names to pass to --domain.`,
	}

	cmd.AddCommand(DomainsCommand(deps))
	cmd.AddCommand(RecordsCommand(deps))

	return cmd
}
