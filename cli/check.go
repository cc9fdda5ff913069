package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/francescoattisano63-source/cyber-omega-guardian/server"
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run a single threat check and print the JSON report",
	}
	cmd.AddCommand(newCheckDomainCmd(opts))
	cmd.AddCommand(newCheckEmailCmd(opts))
	return cmd
}

func newCheckDomainCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "domain <domain-or-ip>",
		Short: "Check a domain or IPv4 address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			domain, err := server.ParseDomain(args[0])
			if err != nil {
				return err
			}
			cfg, log, err := opts.load()
			if err != nil {
				return err
			}
			report := newChecker(cfg, log, nil).CheckDomain(cmd.Context(), domain)
			return printJSON(cmd, report)
		},
	}
}

func newCheckEmailCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "email <address>",
		Short: "Check an email address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := server.ParseEmail(args[0])
			if err != nil {
				return err
			}
			cfg, log, err := opts.load()
			if err != nil {
				return err
			}
			report := newChecker(cfg, log, nil).CheckEmail(cmd.Context(), email)
			return printJSON(cmd, report)
		},
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
