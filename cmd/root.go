package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"nathanbeddoewebdev/wanddns/cmd/commands/auth"
	cfgcmd "nathanbeddoewebdev/wanddns/cmd/commands/config"
	"nathanbeddoewebdev/wanddns/cmd/commands/dns"
	"nathanbeddoewebdev/wanddns/cmd/commands/wan"
	"nathanbeddoewebdev/wanddns/internal/cli"
	"nathanbeddoewebdev/wanddns/internal/logging"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
func rootCmd(deps *cli.Deps) *cobra.Command {
	opts := &updateOptions{}
	cmd := &cobra.Command{
		Use:   "wanddns",
		Short: "Keep DigitalOcean A/AAAA records pointed at this machine's WAN address",
		Long: `wanddns looks up this machine's public (WAN) address and rewrites the
matching A or AAAA records in your DigitalOcean account.

Without --apply it only reports what it would change. With --apply and
--update-interval it keeps running and re-checks every N minutes.

Every flag can also be set through WANDDNS_<FLAG> environment variables
(for example WANDDNS_DOMAIN=home.example.com,vpn.example.com) or a .env
file in the working directory. The API key falls back to
DIGITALOCEAN_ACCESS_TOKEN and then to the key saved by "wanddns auth login".

Quick start:
  wanddns auth login                           # Store your API key
  wanddns -d home.example.com                  # Preview the change
  wanddns -d home.example.com -A -m 10         # Apply, then every 10 minutes`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return deps.Setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd, deps, opts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringP("api-key", "a", "", "DigitalOcean API key")
	pf.String("endpoints-file", "", "File listing WAN address endpoints (default api_urls.txt in the config directory)")
	pf.String("log-format", logging.FormatHuman, "Log format: human, text or json")
	pf.String("log-level", "info", "Minimum log level: debug, info, warn or error")

	f := cmd.Flags()
	f.Int64VarP(&opts.interval, "update-interval", "m", 0, "Minutes between updates; 0 updates once and exits")
	f.BoolVarP(&opts.apply, "apply", "A", false, "Write changes to the records instead of only previewing them")
	f.StringSliceVarP(&opts.domains, "domain", "d", nil, "Fully qualified record name to update (repeatable, comma-separated)")
	f.BoolVarP(&opts.skipWarning, "skip-warning", "S", false, "Skip the 10 second warning before applying changes")

	cmd.AddCommand(auth.NewCommand(deps))
	cmd.AddCommand(cfgcmd.NewCommand())
	cmd.AddCommand(dns.NewCommand(deps))
	cmd.AddCommand(wan.NewCommand(deps))

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := cli.Default()
	err := rootCmd(deps).ExecuteContext(ctx)
	code := cli.ExitCode(err)
	if err != nil {
		reportError(deps, err, code)
	}
	stop()
	os.Exit(code)
}

func reportError(deps *cli.Deps, err error, code int) {
	if code == cli.ExitInterrupted {
		if deps.Logger != nil {
			deps.Logger.Info("Interrupted")
		}
		return
	}
	if deps.Logger != nil {
		deps.Logger.Error(fmt.Sprintf("A fatal error occurred: %v", err), "error", err.Error(), "exit_code", code)
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
