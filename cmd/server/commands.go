package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"gopkg.in/yaml.v3"

	"github.com/jamalishaq/forecast_serve/internal/config"
)

// options holds the persistent flags shared by every command.
type options struct {
	configFile string
	envFile    string
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "forecast-serve",
		Short:         "Synthetic weather forecast API",
		Long:          "forecast-serve answers weather forecast queries and reports every failure as an RFC 7807 problem response.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "config file path")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before FORECAST_* overrides")

	root.AddCommand(newServeCommand(opts), newConfigCommand(opts))
	return root
}

func newServeCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configFile, opts.envFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return runServe(cmd.Context(), cfg)
		},
	}
}

func newConfigCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configFile, opts.envFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			out, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

// runServe listens on the configured address until SIGINT or SIGTERM.
func runServe(parent context.Context, cfg *config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(cfg, os.Stdout)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.close(context.Background()); err != nil {
			a.logger.Error("tracer shutdown failed", "error", err)
		}
	}()

	if a.tracerProvider != nil {
		otel.SetTracerProvider(a.tracerProvider)
		otel.SetTextMapPropagator(propagation.TraceContext{})
	}

	listener, err := net.Listen("tcp", cfg.Server.ListenAddress())
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	a.logger.Info("http server listening",
		"address", listener.Addr().String(),
		"tracing", cfg.Tracing.Enabled,
		"timezone", cfg.Forecast.Timezone,
	)

	runtime := newServerRuntime(listener, a.handler, a.logger, cfg.Server)
	return runtime.serve(ctx)
}
