// Package invest handles the round-up investment command
package invest

import (
	"fmt"
	"io"

	"fjacquet/spend-insights/cmd/root"
	"fjacquet/spend-insights/internal/container"
	"fjacquet/spend-insights/internal/dateutils"
	"fjacquet/spend-insights/internal/logging"
	"fjacquet/spend-insights/internal/models"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	month string
	limit string
)

// Cmd represents the invest command
var Cmd = &cobra.Command{
	Use:   "invest",
	Short: "Round-up savings for a month",
	Long: `Round every transaction of the month up to the next multiple of --limit and
print the accumulated difference: what an "investment bank" would have saved.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		return Run(c, root.SharedFlags.Input, month, limit, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().StringVarP(&month, "month", "m", "", "Month YYYY-MM")
	Cmd.Flags().StringVarP(&limit, "limit", "l", "50", "Rounding step")
	_ = Cmd.MarkFlagRequired("month")
}

// Run computes the round-up savings of input for month. An unparseable month
// saves nothing.
func Run(c *container.Container, input, month, limit string, out io.Writer) error {
	step, err := decimal.NewFromString(limit)
	if err != nil || !step.IsPositive() {
		return fmt.Errorf("limit must be a positive number, got: %s", limit)
	}

	result, err := c.LoadTransactions(input, models.ColumnDate, models.ColumnAmount)
	if err != nil {
		return err
	}

	savings := decimal.Zero
	if target, err := dateutils.ParseMonth(month); err != nil {
		c.GetLogger().WithError(err).Warn("Invalid investment month", logging.F(logging.FieldPeriod, month))
	} else {
		savings = c.GetCalculator().RoundUpSavings(target, result.Transactions, step)
	}

	_, err = fmt.Fprintf(out, "%s\n", savings.StringFixed(2))
	return err
}
