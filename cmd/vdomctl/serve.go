package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vdom/internal/config"
	"github.com/vango-dev/vdom/internal/inspect"
)

func serveCmd(c *cli) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a live document for inspection",
		Long: `Keep one live document and render every posted tree into it.

Routes:
  GET  /         current HTML of the root
  POST /render   render a YAML tree as the next pass
  GET  /ws       stream of mutation records per pass
  GET  /metrics  Prometheus metrics

Examples:
  vdomctl serve
  vdomctl serve --addr 0.0.0.0:7070`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				c.cfg.Serve.Addr = addr
				if err := c.cfg.Validate(); err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			server := inspect.NewServer(inspect.ServerOptions{
				Config: c.cfg,
				Logger: c.logger,
			})
			return server.Start(ctx)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Address to listen on (default from "+config.ConfigFileName+")")

	return cmd
}
