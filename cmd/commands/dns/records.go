package dns

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"nathanbeddoewebdev/wanddns/internal/cli"
	dnsdomain "nathanbeddoewebdev/wanddns/internal/dns/domain"

	"github.com/spf13/cobra"
)

// RecordsCommand returns the "dns records" subcommand.
func RecordsCommand(deps *cli.Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records <domain>",
		Short: "List DNS records for a domain",
		Long: `List the DNS records of a domain in the DigitalOcean account.

The FQDN column is what --domain expects.

Examples:
  wanddns dns records example.com
  wanddns dns records example.com --type A`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecords(cmd, deps, args[0])
		},
	}

	cmd.Flags().String("type", "", "Filter records by type (A, AAAA, CNAME, MX, TXT, etc.)")

	return cmd
}

func runRecords(cmd *cobra.Command, deps *cli.Deps, domainName string) error {
	typeFilter, _ := cmd.Flags().GetString("type")
	domainName = strings.TrimSuffix(strings.TrimSpace(domainName), ".")

	provider, err := deps.Provider(cmd)
	if err != nil {
		return err
	}
	records, err := provider.ListRecords(cmd.Context(), domainName)
	if err != nil {
		return err
	}

	if typeFilter != "" {
		filtered := records[:0]
		for _, r := range records {
			if strings.EqualFold(string(r.Type), typeFilter) {
				filtered = append(filtered, r)
			}
		}
		records = filtered
	}

	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No records found.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tFQDN\tTYPE\tDATA\tTTL\tPRIORITY")
	fmt.Fprintln(w, "--\t----\t----\t----\t---\t--------")
	for _, r := range records {
		prio := ""
		if r.Priority != nil {
			prio = strconv.Itoa(*r.Priority)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n",
			r.ID,
			fqdn(r, domainName),
			string(r.Type),
			r.Data,
			r.TTL,
			prio,
		)
	}
	return w.Flush()
}

func fqdn(r dnsdomain.Record, domainName string) string {
	if r.Name == "" || r.Name == dnsdomain.ApexName {
		return domainName
	}
	return r.Name + "." + domainName
}
