package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/cesarberbelbr/household-finance-manager/api"
)

func newServeCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the scheduler",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, *configPath)
		},
	}
}

func runServe(ctx context.Context, configPath string) error {
	a, err := loadApp(configPath)
	if err != nil {
		return err
	}
	defer a.close()

	a.logger.WithField("driver", a.cfg.Storage.Driver).Info("household-finance-manager starting")

	rest := &api.Rest{
		Logger:    a.logger,
		Port:      a.cfg.Server.Port,
		Service:   a.service,
		Scheduler: a.scheduler,
		DB:        a.storage.DB,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return rest.Serve(gctx)
	})
	if a.cfg.Scheduler.Enabled {
		g.Go(func() error {
			return a.scheduler.Run(gctx)
		})
	}
	return g.Wait()
}
