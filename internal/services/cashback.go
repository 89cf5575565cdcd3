package services

import (
	"fmt"
	"sort"

	"fjacquet/spend-insights/internal/currencyutils"
	"fjacquet/spend-insights/internal/ledger"
	"fjacquet/spend-insights/internal/logging"
	"fjacquet/spend-insights/internal/models"
	"fjacquet/spend-insights/internal/parsererror"

	"github.com/shopspring/decimal"
)

// CashbackUnit is the spend needed for one unit of category cashback.
var CashbackUnit = decimal.NewFromInt(100)

// AnalyzeProfitableCategories sums the spending per category for the given month
// and converts each total to whole cashback units (floor(total / 100)).
// Categories are ordered by name. Missing columns or an invalid month produce a
// result carrying an error; an empty table produces an empty mapping.
func (c *Calculator) AnalyzeProfitableCategories(table *ledger.Table, year, month int) models.CategoryCashbackResult {
	if month < 1 || month > 12 {
		return models.CategoryCashbackResult{Error: fmt.Sprintf("invalid month: %d", month)}
	}

	if table.Len() == 0 && (table == nil || len(table.Columns) == 0) {
		return models.CategoryCashbackResult{Categories: []models.CategoryCashback{}}
	}

	normalized, err := ledger.Normalize(table, models.ColumnDate, models.ColumnCategory, models.ColumnAmount)
	if err != nil {
		c.logger.WithError(err).Warn("Cannot analyze categories")
		return models.CategoryCashbackResult{Error: parsererror.Describe(err)}
	}

	totals := make(map[string]decimal.Decimal)
	for _, tx := range ledger.Coerce(normalized, c.logger).Transactions {
		if tx.Date.Year() != year || int(tx.Date.Month()) != month || tx.Category == "" {
			continue
		}
		totals[tx.Category] = totals[tx.Category].Add(tx.Amount)
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)

	result := models.CategoryCashbackResult{Categories: make([]models.CategoryCashback, 0, len(names))}
	for _, name := range names {
		result.Categories = append(result.Categories, models.CategoryCashback{
			Category: name,
			Cashback: currencyutils.FloorDiv(totals[name], CashbackUnit),
		})
	}

	c.logger.Debug("Analyzed category cashback",
		logging.F(logging.FieldPeriod, fmt.Sprintf("%04d-%02d", year, month)),
		logging.F(logging.FieldCount, len(result.Categories)))

	return result
}
