package cmd

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"nathanbeddoewebdev/wanddns/internal/cli"
	"nathanbeddoewebdev/wanddns/internal/tui"
	"nathanbeddoewebdev/wanddns/internal/updater"
	"nathanbeddoewebdev/wanddns/internal/util"

	"github.com/spf13/cobra"
)

// maxIntervalMinutes is the largest interval that fits in a time.Duration.
const maxIntervalMinutes = math.MaxInt64 / int64(time.Minute)

const dryRunHint = "Run with -A to apply changes to domain records. Specify -m to repeatedly update records"

type updateOptions struct {
	interval    int64
	apply       bool
	domains     []string
	skipWarning bool
}

// fqdns trims, validates and de-duplicates the --domain values, keeping the
// first occurrence's position.
func (o *updateOptions) fqdns() ([]string, error) {
	seen := make(map[string]bool, len(o.domains))
	var out []string
	for _, d := range o.domains {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		if err := util.ValidateFQDN(d); err != nil {
			return nil, err
		}
		key := util.NormalizeKey(strings.TrimSuffix(d, "."))
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, d)
	}
	if len(out) == 0 {
		return nil, errors.New("at least one --domain is required")
	}
	return out, nil
}

func runUpdate(cmd *cobra.Command, deps *cli.Deps, opts *updateOptions) error {
	if opts.interval < 0 {
		return fmt.Errorf("--update-interval must not be negative, got %d", opts.interval)
	}
	if opts.interval > maxIntervalMinutes {
		return fmt.Errorf("--update-interval must be at most %d minutes, got %d", maxIntervalMinutes, opts.interval)
	}
	fqdns, err := opts.fqdns()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	logger := deps.Logger

	provider, err := deps.Provider(cmd)
	if err != nil {
		return err
	}
	resolver, err := deps.Resolver(cmd)
	if err != nil {
		return err
	}

	if opts.apply && !opts.skipWarning {
		logger.Info(fmt.Sprintf("WARNING: Applying changes to following domain records, terminate with CTRL+C to cancel (continuing in %s):", formatDelay(deps.WarningDelay)))
		for _, d := range fqdns {
			logger.Info("- " + d)
		}
		interactive := deps.Interactive != nil && deps.Interactive(cmd.ErrOrStderr())
		title := "Applying changes in " + formatDelay(deps.WarningDelay) + " (ctrl+c to cancel)"
		if err := tui.Countdown(ctx, cmd.ErrOrStderr(), interactive, title, deps.WarningDelay); err != nil {
			return err
		}
	}

	u := updater.New(provider, resolver, updater.NewLogObserver(logger), updater.Options{
		FQDNs:      fqdns,
		Apply:      opts.apply,
		Interval:   time.Duration(opts.interval) * time.Minute,
		RetryDelay: deps.RetryDelay,
	})
	if err := u.Run(ctx); err != nil {
		return err
	}

	if !opts.apply {
		logger.Info(dryRunHint)
	}
	return nil
}

func formatDelay(d time.Duration) string {
	secs := int(d.Round(time.Second) / time.Second)
	if secs == 1 {
		return "1 second"
	}
	return fmt.Sprintf("%d seconds", secs)
}
