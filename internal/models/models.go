// Package models provides the data structures shared by the ledger pipeline,
// the reporters and the main page assembly.
package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Number renders a money value as a JSON number instead of decimal's quoted
// string.
func Number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

// Canonical column names every ledger is normalized to.
const (
	ColumnDate        = "date"
	ColumnCardNumber  = "card_number"
	ColumnAmount      = "amount"
	ColumnCategory    = "category"
	ColumnDescription = "description"
)

// CanonicalColumns lists the canonical schema in its canonical order.
var CanonicalColumns = []string{
	ColumnDate,
	ColumnCardNumber,
	ColumnAmount,
	ColumnCategory,
	ColumnDescription,
}
