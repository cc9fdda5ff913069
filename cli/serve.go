package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/francescoattisano63-source/cyber-omega-guardian/server"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.load()
			if err != nil {
				return err
			}

			metrics := server.NewMetrics()
			checker := newChecker(cfg, log, metrics)
			router := server.NewRouter(server.RouterConfig{
				Handler: server.NewHandler(checker, metrics, log.Named("http")),
				Metrics: metrics,
				Logger:  log.Named("http"),
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.NewServer(cfg.Server, router, log).Run(ctx)
		},
	}
}
