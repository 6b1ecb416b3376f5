package dns

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"nathanbeddoewebdev/wanddns/internal/cli"

	"github.com/spf13/cobra"
)

// DomainsCommand returns the "dns domains" subcommand.
func DomainsCommand(deps *cli.Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "domains",
		Short: "List domains in the DigitalOcean account",
		Long: `List the domains in the DigitalOcean account (up to 200).

Example:
  wanddns dns domains`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := deps.Provider(cmd)
			if err != nil {
				return err
			}
			domains, err := provider.ListDomains(cmd.Context())
			if err != nil {
				return err
			}

			if len(domains) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No domains found.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "DOMAIN\tTTL")
			fmt.Fprintln(w, "------\t---")
			for _, d := range domains {
				ttl := "-"
				if d.TTL != nil {
					ttl = strconv.Itoa(*d.TTL)
				}
				fmt.Fprintf(w, "%s\t%s\n", d.Name, ttl)
			}
			return w.Flush()
		},
	}
}
