package homepage

import (
	"fmt"
	"io"
	"strings"

	"fjacquet/spend-insights/internal/currencyutils"
	"fjacquet/spend-insights/internal/models"
)

// Print writes a human-readable rendering of resp to w.
func Print(w io.Writer, resp models.MainPageResponse) error {
	var sb strings.Builder
	if resp.Failed() {
		sb.WriteString("Error: " + resp.Error + "\n")
		_, err := io.WriteString(w, sb.String())
		return err
	}

	page := resp.Page
	fmt.Fprintf(&sb, "%s!\n", page.Greeting)
	fmt.Fprintf(&sb, "Period: %s - %s\n", page.Period.From, page.Period.To)

	sb.WriteString("\nCards:\n")
	if len(page.Cards) == 0 {
		sb.WriteString("  (none)\n")
	}
	for _, c := range page.Cards {
		fmt.Fprintf(&sb, "  *%s  spent %s  cashback %s\n", c.LastDigits,
			currencyutils.FormatAmount(c.TotalSpent, "RUB"),
			currencyutils.FormatAmount(c.Cashback, "RUB"))
	}

	sb.WriteString("\nTop transactions:\n")
	if len(page.TopTransactions) == 0 {
		sb.WriteString("  (none)\n")
	}
	for i, tx := range page.TopTransactions {
		fmt.Fprintf(&sb, "  %d. %s  %s", i+1, tx.Date, currencyutils.FormatAmount(tx.Amount, "RUB"))
		if tx.Category != "" {
			fmt.Fprintf(&sb, "  %s", tx.Category)
		}
		if tx.Description != "" {
			fmt.Fprintf(&sb, "  %s", tx.Description)
		}
		sb.WriteString("\n")
	}

	writeQuotes(&sb, "Currency rates", page.CurrencyRates)
	writeQuotes(&sb, "Stock prices", page.StockPrices)

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeQuotes(sb *strings.Builder, title string, quotes models.Quotes) {
	if len(quotes) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n%s:\n", title)
	for _, q := range quotes {
		if q.Value == nil {
			fmt.Fprintf(sb, "  %s: n/a\n", q.Symbol)
			continue
		}
		fmt.Fprintf(sb, "  %s: %.2f\n", q.Symbol, *q.Value)
	}
}
