// Package cli holds the wiring shared by the wanddns commands: where
// credentials, loggers, resolvers and providers come from, and how flags are
// filled from the environment and the config file.
package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"nathanbeddoewebdev/wanddns/internal/config"
	dnsdomain "nathanbeddoewebdev/wanddns/internal/dns/domain"
	dnsproviders "nathanbeddoewebdev/wanddns/internal/dns/providers"
	"nathanbeddoewebdev/wanddns/internal/logging"
	"nathanbeddoewebdev/wanddns/internal/platform/providers"
	"nathanbeddoewebdev/wanddns/internal/services/auth"
	"nathanbeddoewebdev/wanddns/internal/wanip"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Deps are the process-level collaborators of every command. Tests replace
// fields; Default returns the real ones.
type Deps struct {
	Getenv func(string) string
	Stdin  io.Reader

	// DotEnvFiles are loaded into the process environment before flags are
	// resolved. Missing files are ignored.
	DotEnvFiles []string

	Store       auth.Store
	NewProvider func(apiKey string) (dnsdomain.Provider, error)

	ResolverOptions []wanip.Option

	// Interactive reports whether f is a terminal.
	Interactive func(f any) bool

	// WarningDelay is the pause before the first write in apply mode.
	WarningDelay time.Duration

	// RetryDelay is passed to the updater; zero keeps its default.
	RetryDelay time.Duration

	// Logger is set by Setup.
	Logger *slog.Logger
}

// Default returns the production dependencies.
func Default() *Deps {
	return &Deps{
		Getenv:       os.Getenv,
		Stdin:        os.Stdin,
		DotEnvFiles:  []string{".env"},
		Store:        auth.DefaultStore(),
		NewProvider:  newDigitalOcean,
		Interactive:  IsTerminal,
		WarningDelay: 10 * time.Second,
	}
}

func newDigitalOcean(apiKey string) (dnsdomain.Provider, error) {
	p, err := dnsproviders.NewDigitalOceanProvider(apiKey)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// IsTerminal reports whether v is a file attached to a terminal.
func IsTerminal(v any) bool {
	f, ok := v.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// envUnbound lists flags never read from WANDDNS_* by BindEnv. The API key
// has its own resolution order in auth.Resolve.
var envUnbound = []string{"help", "api-key"}

// Setup runs before every command: it loads .env files, fills unset flags
// from the environment and the config file, and builds the logger.
func (d *Deps) Setup(cmd *cobra.Command) error {
	if len(d.DotEnvFiles) > 0 {
		if err := godotenv.Load(d.DotEnvFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load .env: %w", err)
		}
	}

	flags := cmd.Flags()
	if err := BindEnv(flags, d.Getenv, envUnbound...); err != nil {
		return err
	}

	cfg, cfgErr := config.Load()
	switch {
	case cfgErr == nil:
	case errors.Is(cfgErr, config.ErrMalformed) && ManagesConfig(cmd):
		cfg = &config.Config{}
	default:
		return cfgErr
	}
	if err := ApplyConfig(flags, cfg); err != nil {
		return err
	}

	format, _ := flags.GetString("log-format")
	levelName, _ := flags.GetString("log-level")
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return err
	}
	logger, err := logging.New(strings.ToLower(strings.TrimSpace(format)), level, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	d.Logger = logger
	if cfgErr != nil {
		logger.Warn("Ignoring settings: "+cfgErr.Error(), "error", cfgErr.Error())
	}
	return nil
}

// AnnotationManagesConfig marks a command group that reads and writes the
// settings file itself. Setup skips a malformed file under it instead of
// failing, so the file can be inspected and repaired.
const AnnotationManagesConfig = "wanddns/manages-config"

// ManagesConfig reports whether cmd or one of its parents carries
// AnnotationManagesConfig.
func ManagesConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if _, ok := c.Annotations[AnnotationManagesConfig]; ok {
			return true
		}
	}
	return false
}

// EndpointsPath returns the --endpoints-file value, or api_urls.txt next to
// the config file.
func (d *Deps) EndpointsPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("endpoints-file"); strings.TrimSpace(p) != "" {
		return strings.TrimSpace(p), nil
	}
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, wanip.EndpointsFileName), nil
}

// Resolver builds the WAN address resolver for cmd.
func (d *Deps) Resolver(cmd *cobra.Command) (*wanip.Resolver, error) {
	path, err := d.EndpointsPath(cmd)
	if err != nil {
		return nil, err
	}
	return wanip.NewResolver(path, d.ResolverOptions...), nil
}

// Provider resolves the API key (flag, environment, keychain) and builds
// the DNS provider client.
func (d *Deps) Provider(cmd *cobra.Command) (dnsdomain.Provider, error) {
	flagValue, _ := cmd.Flags().GetString("api-key")
	resolved, err := auth.Resolve(providers.DigitalOcean, flagValue, d.Getenv, d.Store)
	if err != nil {
		return nil, err
	}
	if d.Logger != nil {
		d.Logger.Debug("Using API key from "+describeSource(resolved), "source", string(resolved.Source))
	}
	return d.NewProvider(resolved.Token)
}

func describeSource(r auth.Resolved) string {
	switch r.Source {
	case auth.SourceEnv:
		return "$" + r.Origin
	case auth.SourceKeyring:
		return "the OS keychain"
	}
	return "--api-key"
}
