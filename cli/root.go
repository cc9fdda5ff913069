// Package cli is the guardian command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/francescoattisano63-source/cyber-omega-guardian/config"
	"github.com/francescoattisano63-source/cyber-omega-guardian/logging"
)

var version = "dev"

type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "guardian",
		Short:         "Threat checks for domains and email addresses",
		Long:          "guardian scores domain and email risk from VirusTotal, Have I Been Pwned and EmailRep.io, as a CLI or an HTTP service.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "config file path (YAML)")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newCheckCmd(opts))
	cmd.AddCommand(newPlansCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}

// load resolves the configuration and installs the process logger.
func (o *rootOptions) load() (*config.Config, logging.Logger, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	// stdout carries command output
	if len(cfg.Log.OutputPaths) == 0 {
		cfg.Log.OutputPaths = []string{"stderr"}
	}

	log, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	logging.SetDefault(log)
	return cfg, log, nil
}
