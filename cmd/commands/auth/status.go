package auth

import (
	"errors"
	"fmt"
	"strings"

	"nathanbeddoewebdev/wanddns/internal/cli"
	"nathanbeddoewebdev/wanddns/internal/platform/providers"
	"nathanbeddoewebdev/wanddns/internal/services/auth"
	"nathanbeddoewebdev/wanddns/internal/tui/styles"

	"github.com/spf13/cobra"
)

func StatusCommand(deps *cli.Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show where the API key would come from",
		Long: `Show whether an API key is stored in the keychain and whether an
environment variable overrides it.

Example:
  wanddns auth status`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			styled := deps.Interactive(out)

			for _, name := range providers.Names() {
				spec := providers.Lookup(name)

				var state string
				_, err := deps.Store.GetToken(spec.Provider)
				switch {
				case err == nil:
					state = render(styled, true, "logged in")
				case errors.Is(err, auth.ErrTokenNotFound):
					state = render(styled, false, "not logged in")
				default:
					state = fmt.Sprintf("error (%v)", err)
				}
				fmt.Fprintf(out, "%s: %s\n", spec.Provider, state)

				var set []string
				for _, env := range spec.EnvVars {
					if strings.TrimSpace(deps.Getenv(env)) != "" {
						set = append(set, env)
					}
				}
				if len(set) > 0 {
					fmt.Fprintf(out, "  overridden by $%s\n", set[0])
				}
			}
			return nil
		},
	}
}

func render(styled, ok bool, s string) string {
	if !styled {
		return s
	}
	return styles.AuthState(ok).Render(s)
}
