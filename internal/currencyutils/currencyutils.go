// Package currencyutils provides the amount parsing and money arithmetic shared by
// the ledger, the aggregator and the savings calculators.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// currency symbols, ISO codes we meet in exports, and every kind of space
	// (including NBSP and narrow NBSP used as thousand separators)
	symbolPattern = regexp.MustCompile(`(?i)руб\.?|rub|usd|eur|chf|[€$£¥₣₤₧₹₺₽₩฿₫₲₴₸₼₪\s\x{00A0}\x{202F}]`)

	hundred = decimal.NewFromInt(100)
)

// ParseAmount parses a string representation of an amount into a decimal value.
// It handles formats like "1,234.56", "1.234,56", "1 234,56", "-1234.56 ₽".
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	if strings.TrimSpace(amountStr) == "" {
		return decimal.Zero, fmt.Errorf("failed to parse amount: empty value")
	}

	standardized := StandardizeAmount(amountStr)

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}

	return amount, nil
}

// StandardizeAmount converts various currency string formats to a standard format that can be parsed by decimal.NewFromString
func StandardizeAmount(amountStr string) string {
	amountStr = symbolPattern.ReplaceAllString(amountStr, "")
	amountStr = strings.ReplaceAll(amountStr, "'", "")
	amountStr = strings.ReplaceAll(amountStr, "−", "-")

	switch {
	case strings.Contains(amountStr, ",") && strings.Contains(amountStr, "."):
		if strings.LastIndex(amountStr, ".") < strings.LastIndex(amountStr, ",") {
			// 1.234,56
			amountStr = strings.ReplaceAll(amountStr, ".", "")
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			// 1,234.56
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	case strings.Contains(amountStr, ","):
		parts := strings.Split(amountStr, ",")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	}

	return amountStr
}

// FormatAmount formats a decimal amount with two decimal places and the given currency.
func FormatAmount(amount decimal.Decimal, currency string) string {
	formattedAmount := amount.StringFixed(2)

	switch strings.ToUpper(currency) {
	case "":
		return formattedAmount
	case "RUB":
		return formattedAmount + " ₽"
	case "EUR":
		return "€" + formattedAmount
	case "USD":
		return "$" + formattedAmount
	case "GBP":
		return "£" + formattedAmount
	case "CHF":
		return "CHF " + formattedAmount
	default:
		return formattedAmount + " " + currency
	}
}

// Percent returns amount * percent / 100 rounded half away from zero to two places.
func Percent(amount, percent decimal.Decimal) decimal.Decimal {
	return amount.Mul(percent).Div(hundred).Round(2)
}

// RoundTo2 rounds an amount to two decimal places.
func RoundTo2(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// CeilToStep rounds amount up to the next multiple of step. Amounts already on a
// multiple stay unchanged. step must be positive.
func CeilToStep(amount, step decimal.Decimal) decimal.Decimal {
	return amount.Div(step).Ceil().Mul(step)
}

// FloorDiv returns floor(amount / divisor) as an integer.
func FloorDiv(amount, divisor decimal.Decimal) int64 {
	return amount.Div(divisor).Floor().IntPart()
}

// IsPositive checks if an amount is positive
func IsPositive(amount decimal.Decimal) bool {
	return amount.GreaterThan(decimal.Zero)
}
