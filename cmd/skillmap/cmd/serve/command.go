// Package serve provides the command that runs the read-only HTTP API.
package serve

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/skillmap"
	"github.com/agentstation/skillmap/internal/server"
)

// AppContext defines the interface that the serve command needs from the app.
type AppContext interface {
	Skillmap() (skillmap.Client, error)
	Logger() *zerolog.Logger
	Registry() *prometheus.Registry
	ListenAddr() string
}

// NewCommand creates the serve command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	cfg := server.DefaultConfig()
	var noMetrics bool

	cmd := &cobra.Command{
		Use:     "serve",
		GroupID: "core",
		Short:   "Serve the catalog over HTTP",
		Long: `Serve builds the catalog and exposes it through a read-only JSON API:

  GET /health
  GET /api/v1/institutions?category=&district=&q=
  GET /api/v1/institutions/{id}
  GET /api/v1/stats
  GET /metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("addr") && app.ListenAddr() != "" {
				cfg.Addr = app.ListenAddr()
			}
			cfg.MetricsEnabled = !noMetrics

			client, err := app.Skillmap()
			if err != nil {
				return err
			}

			// Build eagerly so dataset errors surface before listening
			if _, err := client.Result(cmd.Context()); err != nil {
				return err
			}

			srv := server.New(client, cfg, app.Registry(), app.Logger())
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	cmd.Flags().StringVar(&cfg.PathPrefix, "prefix", cfg.PathPrefix, "API path prefix")
	cmd.Flags().DurationVar(&cfg.RequestTimeout, "request-timeout", 30*time.Second, "per-request timeout")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "disable the /metrics endpoint")

	return cmd
}
