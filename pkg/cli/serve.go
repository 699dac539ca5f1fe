package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/waterlens/tapcheck/pkg/cli/config"
	controller "github.com/waterlens/tapcheck/pkg/controller/http"
	"github.com/waterlens/tapcheck/pkg/service/render"
	"github.com/waterlens/tapcheck/pkg/usecase"
	"github.com/waterlens/tapcheck/pkg/utils/metrics"
)

func cmdServe() *cli.Command {
	var (
		serverCfg   config.Server
		providerCfg config.Provider
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start HTTP server",
		Flags: joinFlags(
			serverCfg.Flags(),
			providerCfg.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting tapcheck server",
				slog.Any("server", serverCfg),
				slog.Any("provider", providerCfg),
			)

			if err := serverCfg.Validate(); err != nil {
				return err
			}

			m := metrics.New()
			client, err := providerCfg.Configure(m)
			if err != nil {
				return err
			}

			renderer, err := render.New()
			if err != nil {
				return goerr.Wrap(err, "failed to create renderer")
			}

			server, err := controller.NewServer(ctx, serverCfg.Addr, &controller.UseCases{
				Gateway: usecase.NewGateway(client),
				Report:  usecase.NewReport(client, usecase.WithMetrics(m)),
			}, renderer, m)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "HTTP server error", goerr.V("addr", serverCfg.Addr))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			case err := <-errCh:
				return err
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
