package auth

import (
	"errors"
	"fmt"

	"nathanbeddoewebdev/wanddns/internal/cli"
	"nathanbeddoewebdev/wanddns/internal/services/auth"

	"github.com/spf13/cobra"
)

func LogoutCommand(deps *cli.Deps) *cobra.Command {
	return &cobra.Command{
		Use:          "logout [provider]",
		Short:        "Remove the stored API key",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := specFromArgs(args)
			if err != nil {
				return err
			}
			err = deps.Store.DeleteToken(spec.Provider)
			switch {
			case errors.Is(err, auth.ErrTokenNotFound):
				fmt.Fprintf(cmd.OutOrStdout(), "No API key stored for %s\n", spec.DisplayName)
				return nil
			case err != nil:
				return fmt.Errorf("failed to remove API key: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed API key for %s\n", spec.DisplayName)
			return nil
		},
	}
}
