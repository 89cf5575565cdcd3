// Package reports computes the category and weekday spending reports and writes
// them through a Sink.
package reports

import (
	"encoding/json"
	"encoding/xml"
	"time"

	"fjacquet/spend-insights/internal/currencyutils"
	"fjacquet/spend-insights/internal/dateutils"
	"fjacquet/spend-insights/internal/logging"
	"fjacquet/spend-insights/internal/models"
	"fjacquet/spend-insights/internal/parsererror"

	"github.com/shopspring/decimal"
)

// WindowMonths is the length of the trailing report window.
const WindowMonths = 3

// Report names, used for file naming.
const (
	NameSpendingByCategory = "spending_by_category"
	NameSpendingByWeekday  = "spending_by_weekday"
)

// Artifact is a computed report ready to be persisted.
type Artifact interface {
	// Name identifies the report kind.
	Name() string
	// Rows returns the tabular body as a slice of tagged structs.
	Rows() any
}

// CategoryRow is one transaction of a category report.
type CategoryRow struct {
	Date        string          `json:"date" csv:"date" xml:"date"`
	Amount      decimal.Decimal `json:"amount" csv:"amount" xml:"amount"`
	Category    string          `json:"category" csv:"category" xml:"category"`
	Description string          `json:"description" csv:"description" xml:"description"`
}

// MarshalJSON renders the amount as a JSON number.
func (r CategoryRow) MarshalJSON() ([]byte, error) {
	type plain CategoryRow
	return json.Marshal(struct {
		plain
		Amount json.Number `json:"amount"`
	}{plain(r), models.Number(r.Amount)})
}

// CategoryReport lists the positive spending of one category over a window.
type CategoryReport struct {
	XMLName  xml.Name      `json:"-" xml:"category_report"`
	Category string        `json:"category" xml:"category,attr"`
	From     string        `json:"from" xml:"from,attr"`
	To       string        `json:"to" xml:"to,attr"`
	Items    []CategoryRow `json:"rows" xml:"row"`
}

// Name implements Artifact.
func (r *CategoryReport) Name() string { return NameSpendingByCategory }

// Rows implements Artifact.
func (r *CategoryReport) Rows() any { return r.Items }

// WeekdayRow is the average spending of one weekday.
type WeekdayRow struct {
	Weekday       string          `json:"weekday" csv:"weekday" xml:"weekday"`
	AverageAmount decimal.Decimal `json:"average_amount" csv:"average_amount" xml:"average_amount"`
	Transactions  int             `json:"transactions" csv:"transactions" xml:"transactions"`
}

// MarshalJSON renders the average as a JSON number.
func (r WeekdayRow) MarshalJSON() ([]byte, error) {
	type plain WeekdayRow
	return json.Marshal(struct {
		plain
		AverageAmount json.Number `json:"average_amount"`
	}{plain(r), models.Number(r.AverageAmount)})
}

// WeekdayReport holds the mean spending per weekday, Monday first.
type WeekdayReport struct {
	XMLName xml.Name     `json:"-" xml:"weekday_report"`
	From    string       `json:"from" xml:"from,attr"`
	To      string       `json:"to" xml:"to,attr"`
	Items   []WeekdayRow `json:"rows" xml:"row"`
}

// Name implements Artifact.
func (r *WeekdayReport) Name() string { return NameSpendingByWeekday }

// Rows implements Artifact.
func (r *WeekdayReport) Rows() any { return r.Items }

// Reporter computes reports over the trailing WindowMonths months.
type Reporter struct {
	clock  func() time.Time
	logger logging.Logger
}

// NewReporter creates a reporter. clock supplies the reference when none is
// given (time.Now when nil).
func NewReporter(clock func() time.Time, logger logging.Logger) *Reporter {
	if clock == nil {
		clock = time.Now
	}
	return &Reporter{clock: clock, logger: logging.OrNop(logger)}
}

// Window returns the report window ending at reference (now when zero).
func (r *Reporter) Window(reference time.Time) models.DateWindow {
	if reference.IsZero() {
		reference = r.clock()
	}
	return dateutils.TrailingMonths(reference, WindowMonths)
}

// SpendingByCategory keeps the transactions of category inside the window with a
// positive amount, in input order.
func (r *Reporter) SpendingByCategory(txs []models.Transaction, category string, reference time.Time) *CategoryReport {
	window := r.Window(reference)
	report := &CategoryReport{
		Category: category,
		From:     window.Start.Format(dateutils.DateLayoutFull),
		To:       window.End.Format(dateutils.DateLayoutFull),
		Items:    []CategoryRow{},
	}

	for _, tx := range window.Filter(txs) {
		if tx.Category != category || !tx.Amount.IsPositive() {
			continue
		}
		report.Items = append(report.Items, CategoryRow{
			Date:        tx.Date.Format(dateutils.DateLayoutFull),
			Amount:      tx.Amount,
			Category:    tx.Category,
			Description: tx.Description,
		})
	}

	r.logger.Info("Computed category report",
		logging.F(logging.FieldCategory, category),
		logging.F(logging.FieldCount, len(report.Items)))

	return report
}

// SpendingByWeekday averages the transactions inside the window per weekday.
// Only weekdays with at least one transaction are listed, Monday first.
func (r *Reporter) SpendingByWeekday(txs []models.Transaction, reference time.Time, names dateutils.WeekdayNames) *WeekdayReport {
	window := r.Window(reference)
	report := &WeekdayReport{
		From:  window.Start.Format(dateutils.DateLayoutFull),
		To:    window.End.Format(dateutils.DateLayoutFull),
		Items: []WeekdayRow{},
	}

	var (
		sums   [7]decimal.Decimal
		counts [7]int
	)
	for _, tx := range window.Filter(txs) {
		day := tx.Date.Weekday()
		sums[day] = sums[day].Add(tx.Amount)
		counts[day]++
	}

	for _, day := range dateutils.WeekOrder {
		if counts[day] == 0 {
			continue
		}
		report.Items = append(report.Items, WeekdayRow{
			Weekday:       names.Name(day),
			AverageAmount: currencyutils.RoundTo2(sums[day].Div(decimal.NewFromInt(int64(counts[day])))),
			Transactions:  counts[day],
		})
	}

	r.logger.Info("Computed weekday report", logging.F(logging.FieldCount, len(report.Items)))

	return report
}

// ParseReference parses an optional report reference date; "" means now.
func ParseReference(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, _, err := dateutils.ParseDate(value)
	if err != nil {
		return time.Time{}, &parsererror.DateFormatError{Value: value, Layout: "a supported date layout", Err: err}
	}
	return t, nil
}
