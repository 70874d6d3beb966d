package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/jthierer/bubblepack/internal/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		timeout time.Duration
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the rendering pipeline over HTTP",
		Long: `Start an HTTP server exposing the pipeline:

  POST /api/render   dataset + options JSON -> rendered artifact
  POST /api/layout   dataset + options JSON -> layout JSON
  GET  /healthz      liveness probe`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			runner, err := c.newRunner(cmd.Context(), cfg, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			logger := loggerFromContext(cmd.Context())
			srv := server.New(runner, logger, server.Options{Timeout: timeout})

			logger.Info("starting server", "addr", addr)
			printInfo("Listening on %s", addr)
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "address to listen on")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "per-request timeout")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable artifact caching")

	return cmd
}
