package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vancomm/minefield/internal/app"
)

func newServeCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve games over websockets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			c.log.Info("starting up, development = ", c.cfg.Development)
			err := app.New(c.log, c.cfg, createRand(c.cfg.Seed)).Start(ctx)
			if err != nil {
				c.log.WithError(err).Error("exit reason")
			}
			return err
		},
	}
}
