// Package aggregator computes the per-card totals and the top-N listing shown on
// the main page.
package aggregator

import (
	"sort"

	"fjacquet/spend-insights/internal/currencyutils"
	"fjacquet/spend-insights/internal/models"

	"github.com/shopspring/decimal"
)

// DefaultTopN is used when a non-positive N is requested.
const DefaultTopN = 5

// CashbackPercent is the flat cashback rate applied to card totals.
var CashbackPercent = decimal.NewFromInt(1)

// CardStats groups transactions by card number. Each summary carries the last four
// characters of the card, the total rounded to two places and the cashback
// (1% of the total, rounded to two places). Rows without a card number are not
// attributed to any card. Summaries are sorted by last digits, then full number.
func CardStats(txs []models.Transaction) []models.CardSummary {
	type card struct {
		number string
		total  decimal.Decimal
	}

	byNumber := make(map[string]*card)
	order := make([]*card, 0)
	for _, tx := range txs {
		if tx.CardNumber == "" {
			continue
		}
		c, ok := byNumber[tx.CardNumber]
		if !ok {
			c = &card{number: tx.CardNumber}
			byNumber[tx.CardNumber] = c
			order = append(order, c)
		}
		c.total = c.total.Add(tx.Amount)
	}

	sort.SliceStable(order, func(i, j int) bool {
		li, lj := models.LastDigits(order[i].number), models.LastDigits(order[j].number)
		if li != lj {
			return li < lj
		}
		return order[i].number < order[j].number
	})

	summaries := make([]models.CardSummary, 0, len(order))
	for _, c := range order {
		summaries = append(summaries, models.CardSummary{
			LastDigits: models.LastDigits(c.number),
			TotalSpent: currencyutils.RoundTo2(c.total),
			Cashback:   currencyutils.Percent(c.total, CashbackPercent),
		})
	}
	return summaries
}

// TopTransactions returns the n largest transactions by amount, descending. Ties
// keep input order.
func TopTransactions(txs []models.Transaction, n int) []models.TopTransaction {
	if n <= 0 {
		n = DefaultTopN
	}

	sorted := make([]models.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Amount.GreaterThan(sorted[j].Amount)
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}

	top := make([]models.TopTransaction, 0, len(sorted))
	for _, tx := range sorted {
		top = append(top, models.NewTopTransaction(tx))
	}
	return top
}

// Total sums the amounts of txs.
func Total(txs []models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(tx.Amount)
	}
	return total
}
