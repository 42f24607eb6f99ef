package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/foreman/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var host string
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the schedule API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config.Server
			if cmd.Flags().Changed("host") {
				cfg.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.New(app.Schedules, app.Metrics, app.Logger, cfg).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Listen host (overrides server.host)")
	cmd.Flags().IntVar(&port, "port", 0, "Listen port (overrides server.port)")

	return cmd
}
