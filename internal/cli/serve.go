package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/geodraw/pkg/server"
)

// serveCommand runs the HTTP render API until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if timeout > 0 {
				cfg.Server.RenderTimeout = timeout
			}

			runner := c.newRunner(ctx, cfg, noCache)
			defer runner.Close()

			srv := server.New(runner, server.Options{
				Defaults:      cfg.PipelineOptions(),
				RenderTimeout: cfg.Server.RenderTimeout,
				MaxBodyBytes:  cfg.Server.MaxBodyBytes,
				Logger:        loggerFromContext(ctx),
			})

			p := newPrinter(cmd.OutOrStdout())
			p.keyValue("Listening", cfg.Server.Addr)
			p.keyValue("Cache", cfg.Cache.Backend)
			return srv.ListenAndServe(ctx, cfg.Server.Addr, cfg.Server.ReadTimeout, cfg.Server.WriteTimeout)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().DurationVar(&timeout, "render-timeout", 0, "per-request render timeout")
	return cmd
}
