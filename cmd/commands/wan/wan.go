package wan

import (
	"fmt"

	"nathanbeddoewebdev/wanddns/internal/cli"

	"github.com/spf13/cobra"
)

// NewCommand returns the "wan" command, which resolves and prints the WAN
// address without contacting the DNS provider.
func NewCommand(deps *cli.Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "wan",
		Short: "Print this machine's WAN address",
		Long: `Query the endpoints in the endpoint list, in order, and print the first
address returned together with its record type and the endpoint that
answered.

The list is api_urls.txt in the config directory unless --endpoints-file is
given; it is created with the built-in defaults when missing. Lines may be
http(s) URLs returning the address as text, or dns:// queries such as
  dns://resolver1.opendns.com/myip.opendns.com?type=A

Example:
  wanddns wan`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver, err := deps.Resolver(cmd)
			if err != nil {
				return err
			}
			addr, err := resolver.Resolve(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", addr, addr.Type, addr.Source)
			return nil
		},
	}
}
