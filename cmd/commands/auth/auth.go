package auth

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/wanddns/internal/cli"
	"nathanbeddoewebdev/wanddns/internal/platform/providers"

	"github.com/spf13/cobra"
)

func NewCommand(deps *cli.Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the stored DigitalOcean API key",
		Long: `Manage the API key kept in the OS keychain.

The stored key is used when neither --api-key nor WANDDNS_API_KEY /
DIGITALOCEAN_ACCESS_TOKEN is set.`,
	}

	cmd.AddCommand(LoginCommand(deps))
	cmd.AddCommand(StatusCommand(deps))
	cmd.AddCommand(LogoutCommand(deps))

	return cmd
}

// specFromArgs returns the credential spec named by the optional provider
// argument, defaulting to DigitalOcean.
func specFromArgs(args []string) (providers.CredentialSpec, error) {
	if len(args) == 0 {
		return providers.DigitalOcean, nil
	}
	spec := providers.Lookup(args[0])
	if spec == nil {
		return providers.CredentialSpec{}, fmt.Errorf("unknown provider %q (supported: %s)",
			strings.TrimSpace(args[0]), strings.Join(providers.Names(), ", "))
	}
	return *spec, nil
}
