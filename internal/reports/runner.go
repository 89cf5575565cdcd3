package reports

import (
	"time"

	"fjacquet/spend-insights/internal/dateutils"
	"fjacquet/spend-insights/internal/ledger"
	"fjacquet/spend-insights/internal/logging"
	"fjacquet/spend-insights/internal/models"
)

var (
	categoryColumns = []string{models.ColumnDate, models.ColumnAmount, models.ColumnCategory}
	weekdayColumns  = []string{models.ColumnDate, models.ColumnAmount}
)

// Runner loads a ledger, computes a report and writes it through a sink.
type Runner struct {
	loader      *ledger.Loader
	reporter    *Reporter
	sink        Sink
	names       dateutils.WeekdayNames
	weekdayFile string
	logger      logging.Logger
}

// NewRunner wires a runner. The weekday report is always written to
// weekdayFile; category reports get a timestamped name.
func NewRunner(loader *ledger.Loader, reporter *Reporter, sink Sink, names dateutils.WeekdayNames, weekdayFile string, logger logging.Logger) *Runner {
	return &Runner{
		loader:      loader,
		reporter:    reporter,
		sink:        sink,
		names:       names,
		weekdayFile: weekdayFile,
		logger:      logging.OrNop(logger),
	}
}

// Category runs the category report over src. A zero reference means now.
func (r *Runner) Category(src ledger.Source, category string, reference time.Time) (*CategoryReport, string, error) {
	return Generate(r.sink, "", func() (*CategoryReport, error) {
		result, err := ledger.Prepare(r.loader, src, r.logger, categoryColumns...)
		if err != nil {
			return nil, err
		}
		return r.reporter.SpendingByCategory(result.Transactions, category, reference), nil
	})
}

// Weekday runs the weekday report over src. A zero reference means now.
func (r *Runner) Weekday(src ledger.Source, reference time.Time) (*WeekdayReport, string, error) {
	return Generate(r.sink, r.weekdayFile, func() (*WeekdayReport, error) {
		result, err := ledger.Prepare(r.loader, src, r.logger, weekdayColumns...)
		if err != nil {
			return nil, err
		}
		return r.reporter.SpendingByWeekday(result.Transactions, reference, r.names), nil
	})
}
