package main

import (
	"fmt"

	editor "github.com/aretw0/turbo-editor"
	"github.com/aretw0/turbo-editor/internal/cli"
	httpAdapter "github.com/aretw0/turbo-editor/pkg/adapters/http"
	"github.com/aretw0/turbo-editor/pkg/observability"
	"github.com/spf13/cobra"
)

func newServeCommand(a *app) *cobra.Command {
	var (
		port     string
		validate bool
		metrics  bool
	)
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Exposes scene editing as a JSON API over HTTP, with a server-sent event stream
of changes per scene and optional Prometheus metrics at /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				extra []editor.Option
				hopts []httpAdapter.Option
				m     *observability.Metrics
			)
			if metrics {
				m = observability.NewMetrics(true)
				extra = append(extra, editor.WithLifecycleHooks(m.Hooks()))
			}

			s, err := a.open(extra...)
			if err != nil {
				return err
			}
			defer s.close()

			hopts = append(hopts, httpAdapter.WithLogger(s.logger))
			if validate {
				hopts = append(hopts, httpAdapter.WithRequestValidation())
			}
			if m != nil {
				hopts = append(hopts, httpAdapter.WithMetricsHandler(m.Handler()))
			}
			handler, err := httpAdapter.NewHandler(s.ed, hopts...)
			if err != nil {
				return fmt.Errorf("error initializing handler: %w", err)
			}

			sig := cli.NewSignalContext(cmd.Context())
			defer sig.Cancel()
			fmt.Fprintf(cmd.OutOrStdout(), "Starting Turbo Editor server on :%s\n", port)
			return cli.ListenAndServe(sig, ":"+port, handler, s.logger)
		},
	}
	serveCmd.Flags().StringVarP(&port, "port", "p", "8080", "Port to listen on")
	serveCmd.Flags().BoolVar(&validate, "validate", true, "Validate requests against the OpenAPI document")
	serveCmd.Flags().BoolVar(&metrics, "metrics", true, "Expose Prometheus metrics at /metrics")
	return serveCmd
}
