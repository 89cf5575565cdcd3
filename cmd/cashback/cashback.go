// Package cashback handles the profitable-category cashback command
package cashback

import (
	"encoding/json"
	"fmt"
	"io"

	"fjacquet/spend-insights/cmd/root"
	"fjacquet/spend-insights/internal/container"

	"github.com/spf13/cobra"
)

var (
	year  int
	month int
)

// Cmd represents the cashback command
var Cmd = &cobra.Command{
	Use:   "cashback",
	Short: "Cashback units per category for a month",
	Long: `Sum the spending of every category in the given month and print the whole
cashback units earned (one per 100 spent), as a JSON object keyed by category.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		y, m := year, month
		if y == 0 || m == 0 {
			now := c.GetClock()()
			if y == 0 {
				y = now.Year()
			}
			if m == 0 {
				m = int(now.Month())
			}
		}
		return Run(c, root.SharedFlags.Input, y, m, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().IntVarP(&year, "year", "y", 0, "Year (default: current)")
	Cmd.Flags().IntVarP(&month, "month", "m", 0, "Month 1-12 (default: current)")
}

// Run analyzes input for year/month and prints the result as JSON.
func Run(c *container.Container, input string, year, month int, out io.Writer) error {
	table, err := c.GetLoader().Load(c.LedgerSource(input))
	if err != nil {
		return err
	}

	result := c.GetCalculator().AnalyzeProfitableCategories(table, year, month)
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode cashback: %w", err)
	}
	if _, err := fmt.Fprintln(out, string(data)); err != nil {
		return err
	}

	if result.Failed() {
		return fmt.Errorf("cashback analysis failed: %s", result.Error)
	}
	return nil
}
