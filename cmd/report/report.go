// Package report handles the spending report commands
package report

import (
	"fmt"
	"io"

	"fjacquet/spend-insights/cmd/root"
	"fjacquet/spend-insights/internal/container"
	"fjacquet/spend-insights/internal/logging"
	"fjacquet/spend-insights/internal/reports"

	"github.com/spf13/cobra"
)

var (
	category string
	date     string
)

// Cmd groups the report subcommands
var Cmd = &cobra.Command{
	Use:   "report",
	Short: "Generate spending reports",
	Long: `Generate spending reports over the trailing three months and save them in the
reports directory (csv, json or xml depending on reports.format).`,
}

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Spending of one category over the last three months",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		return RunCategory(c, root.SharedFlags.Input, category, date, cmd.OutOrStdout())
	},
}

var weekdayCmd = &cobra.Command{
	Use:   "weekday",
	Short: "Average spending per weekday over the last three months",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		return RunWeekday(c, root.SharedFlags.Input, date, cmd.OutOrStdout())
	},
}

func init() {
	categoryCmd.Flags().StringVarP(&category, "category", "k", "", "Category to report on")
	_ = categoryCmd.MarkFlagRequired("category")

	Cmd.PersistentFlags().StringVarP(&date, "date", "d", "", "Window end date (default: now)")

	Cmd.AddCommand(categoryCmd)
	Cmd.AddCommand(weekdayCmd)
}

// RunCategory writes the category report for input and prints a summary.
func RunCategory(c *container.Container, input, category, date string, out io.Writer) error {
	reference, err := reports.ParseReference(date)
	if err != nil {
		return err
	}

	report, location, err := c.GetReportRunner().Category(c.LedgerSource(input), category, reference)
	if err != nil {
		return fmt.Errorf("category report failed: %w", err)
	}

	c.GetLogger().Info("Category report generated",
		logging.F(logging.FieldCategory, category),
		logging.F(logging.FieldCount, len(report.Items)))
	_, err = fmt.Fprintf(out, "%s: %d transactions from %s to %s -> %s\n",
		category, len(report.Items), report.From, report.To, location)
	return err
}

// RunWeekday writes the weekday report for input and prints each row.
func RunWeekday(c *container.Container, input, date string, out io.Writer) error {
	reference, err := reports.ParseReference(date)
	if err != nil {
		return err
	}

	report, location, err := c.GetReportRunner().Weekday(c.LedgerSource(input), reference)
	if err != nil {
		return fmt.Errorf("weekday report failed: %w", err)
	}

	for _, row := range report.Items {
		if _, err := fmt.Fprintf(out, "%-12s %10s  (%d)\n", row.Weekday, row.AverageAmount.StringFixed(2), row.Transactions); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(out, "Saved to %s\n", location)
	return err
}
