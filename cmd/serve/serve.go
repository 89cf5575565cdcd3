// Package serve handles the HTTP API command
package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"fjacquet/spend-insights/cmd/root"
	"fjacquet/spend-insights/internal/server"

	"github.com/spf13/cobra"
)

var address string

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the main page and reports over HTTP",
	Long: `Start the JSON HTTP API (main page, reports, cashback, investment and
settings endpoints). When server.report_schedule is set, the weekday report is
regenerated on that cron schedule.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		if address != "" {
			c.GetConfig().Server.Address = address
		}

		s, err := server.New(c)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		return s.Run(ctx)
	},
}

func init() {
	Cmd.Flags().StringVarP(&address, "address", "a", "", "Listen address (default: server.address)")
}
