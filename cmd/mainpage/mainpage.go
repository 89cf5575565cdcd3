// Package mainpage handles the main-page command
package mainpage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"fjacquet/spend-insights/cmd/root"
	"fjacquet/spend-insights/internal/container"
	"fjacquet/spend-insights/internal/homepage"
	"fjacquet/spend-insights/internal/models"

	"github.com/spf13/cobra"
)

// Options are the main-page flags.
type Options struct {
	Date   string
	Pretty bool
}

var opts Options

// Cmd represents the main-page command
var Cmd = &cobra.Command{
	Use:   "main-page",
	Short: "Build the main page summary",
	Long: `Build the main page summary for the month up to --date: greeting, card totals
with cashback, top transactions, currency rates and stock prices.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		return Run(cmd.Context(), c, root.SharedFlags.Input, opts, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().StringVarP(&opts.Date, "date", "d", "", "Reference instant YYYY-MM-DD HH:MM:SS (default: now)")
	Cmd.Flags().BoolVarP(&opts.Pretty, "pretty", "p", false, "Print a human-readable summary instead of JSON")
}

// Run builds the page for input and writes it to out. A failed page is still
// written, and reported as an error.
func Run(ctx context.Context, c *container.Container, input string, opts Options, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	var resp models.MainPageResponse
	if opts.Date == "" {
		resp = c.GetHomepage().BuildAt(ctx, c.GetClock()(), c.LedgerSource(input))
	} else {
		resp = c.GetHomepage().Build(ctx, opts.Date, c.LedgerSource(input))
	}

	if opts.Pretty {
		if err := homepage.Print(out, resp); err != nil {
			return err
		}
	} else {
		data, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode main page: %w", err)
		}
		if _, err := fmt.Fprintln(out, string(data)); err != nil {
			return err
		}
	}

	if resp.Failed() {
		return fmt.Errorf("main page failed: %s", resp.Error)
	}
	return nil
}
