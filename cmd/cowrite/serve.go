package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	sdk "go.opentelemetry.io/otel/sdk/metric"

	"github.com/cowrite/cowrite/conf"
	"github.com/cowrite/cowrite/internal/log"
	"github.com/cowrite/cowrite/internal/metrics"
	"github.com/cowrite/cowrite/internal/server"
)

// fxLogger sends fx lifecycle events to the debug log.
type fxLogger struct{}

func (fxLogger) LogEvent(event fxevent.Event) {
	log.Debug(context.Background(), "fx event", log.Any("event", event))
}

func serve(out io.Writer, args []string) error {
	flags := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	flags.SetOutput(out)
	file := flags.StringP("config", "c", "", "configuration file to read")

	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	server.Run(
		fx.WithLogger(func() fxevent.Logger { return fxLogger{} }),
		fx.Provide(func() (conf.Config, error) { return loadConfig(*file) }),
		fx.Provide(metrics.NewProvider),
		fx.Invoke(registerMetrics),
		fx.Invoke(registerHTTP),
	)

	return nil
}

// registerMetrics installs the meter provider on start and flushes it on stop.
// A nil provider means metrics are disabled.
func registerMetrics(lc fx.Lifecycle, provider *sdk.MeterProvider, cfg metrics.Config) {
	if provider == nil {
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return metrics.SetupMetrics(provider, cfg.ServiceName)
		},
		OnStop: provider.Shutdown,
	})
}

// registerHTTP serves in the background once every constructor succeeded. A
// listener failure ends the process.
func registerHTTP(lc fx.Lifecycle, srv *server.Server) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := srv.Run(); err != nil {
					log.Error(context.Background(), "http server stopped", log.Cause(err))
					os.Exit(1)
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := srv.Shutdown(ctx); err != nil {
				log.Error(ctx, "http server shutdown failed", log.Cause(err))
			}

			return nil
		},
	})
}
