package services

import (
	"time"

	"fjacquet/spend-insights/internal/currencyutils"
	"fjacquet/spend-insights/internal/dateutils"
	"fjacquet/spend-insights/internal/ledger"
	"fjacquet/spend-insights/internal/logging"
	"fjacquet/spend-insights/internal/models"

	"github.com/shopspring/decimal"
)

// RoundUpSavings returns how much would be put aside in month if every purchase
// were rounded up to the next multiple of limit. Purchases already on a
// multiple save nothing. The result is rounded to two places; a non-positive
// limit yields zero.
func (c *Calculator) RoundUpSavings(month time.Time, txs []models.Transaction, limit decimal.Decimal) decimal.Decimal {
	if !limit.IsPositive() {
		c.logger.Warn("Round-up limit must be positive", logging.F(logging.FieldValue, limit.String()))
		return decimal.Zero
	}

	saved := decimal.Zero
	counted := 0
	for _, tx := range txs {
		if !dateutils.SameMonth(tx.Date, month) {
			continue
		}
		rounded := currencyutils.CeilToStep(tx.Amount, limit)
		saved = saved.Add(rounded.Sub(tx.Amount))
		counted++
	}

	c.logger.Debug("Computed round-up savings",
		logging.F(logging.FieldPeriod, month.Format(dateutils.DateLayoutMonth)),
		logging.F(logging.FieldCount, counted))

	return currencyutils.RoundTo2(saved)
}

// InvestmentBank is RoundUpSavings over raw row records for a "YYYY-MM" month.
// Records may use Russian or canonical column names; rows whose date or amount
// cannot be read are skipped. An unparseable month or unusable records yield
// zero, never an error.
func (c *Calculator) InvestmentBank(month string, records []ledger.Record, limit decimal.Decimal) decimal.Decimal {
	target, err := dateutils.ParseMonth(month)
	if err != nil {
		c.logger.WithError(err).Warn("Invalid investment month", logging.F(logging.FieldPeriod, month))
		return decimal.Zero
	}
	if len(records) == 0 {
		return decimal.Zero
	}

	table, err := ledger.Normalize(ledger.TableFromRecords(records), models.ColumnDate, models.ColumnAmount)
	if err != nil {
		c.logger.WithError(err).Warn("Cannot compute investment savings")
		return decimal.Zero
	}

	result := ledger.Coerce(table, c.logger)
	return c.RoundUpSavings(target, result.Transactions, limit)
}
