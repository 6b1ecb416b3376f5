package auth

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"nathanbeddoewebdev/wanddns/internal/cli"
	"nathanbeddoewebdev/wanddns/internal/retry"
	"nathanbeddoewebdev/wanddns/internal/tui"

	"github.com/spf13/cobra"
)

func LoginCommand(deps *cli.Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login [provider]",
		Short: "Store an API key in the OS keychain",
		Long: `Store an API key using the local keychain.

Without --token the key is entered on an interactive screen, or read from
the first line of stdin when not attached to a terminal.

Examples:
  wanddns auth login
  wanddns auth login digitalocean --verify
  echo "$TOKEN" | wanddns auth login`,
		Args:         cobra.MaximumNArgs(1),
		RunE:         func(cmd *cobra.Command, args []string) error { return runLogin(cmd, deps, args) },
		SilenceUsage: true,
	}

	cmd.Flags().String("token", "", "API key (optional, overrides prompt)")
	cmd.Flags().Bool("verify", false, "Check the key against the provider API before saving it")

	return cmd
}

func runLogin(cmd *cobra.Command, deps *cli.Deps, args []string) error {
	spec, err := specFromArgs(args)
	if err != nil {
		return err
	}

	verify, _ := cmd.Flags().GetBool("verify")
	validate := func(token string) error {
		provider, err := deps.NewProvider(token)
		if err != nil {
			return err
		}
		if verify {
			err := retry.Do(cmd.Context(), retry.DefaultConfig(), retry.IsRetryable, func() error {
				_, err := provider.ListDomains(cmd.Context())
				return err
			})
			if err != nil {
				return fmt.Errorf("key rejected by %s: %w", spec.DisplayName, err)
			}
		}
		return nil
	}

	token, _ := cmd.Flags().GetString("token")
	token = strings.TrimSpace(token)

	if token == "" && deps.Interactive(os.Stdin) && deps.Interactive(cmd.OutOrStdout()) {
		result, err := tui.RunAuthLogin(spec, deps.Store, validate)
		if err != nil {
			return err
		}
		if result == nil || !result.Saved {
			fmt.Fprintln(cmd.ErrOrStderr(), "Login cancelled.")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved API key for %s\n", spec.DisplayName)
		return nil
	}

	if token == "" {
		token, err = readLine(deps.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read API key: %w", err)
		}
	}
	if token == "" {
		return errors.New("API key cannot be empty")
	}
	if err := validate(token); err != nil {
		return err
	}

	if err := deps.Store.SetToken(spec.Provider, token); err != nil {
		return fmt.Errorf("failed to save API key: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved API key for %s\n", spec.DisplayName)
	return nil
}

func readLine(r io.Reader) (string, error) {
	if r == nil {
		return "", nil
	}
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
