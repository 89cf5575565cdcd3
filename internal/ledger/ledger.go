package ledger

import (
	"fjacquet/spend-insights/internal/logging"
	"fjacquet/spend-insights/internal/models"
)

// Prepare loads src, normalizes its columns (checking required) and coerces the
// rows into transactions. An empty table has no header to check and yields no
// transactions.
func Prepare(loader *Loader, src Source, logger logging.Logger, required ...string) (CoerceResult, error) {
	table, err := loader.Load(src)
	if err != nil {
		return CoerceResult{}, err
	}
	if table.IsEmpty() {
		return CoerceResult{Transactions: []models.Transaction{}}, nil
	}

	normalized, err := Normalize(table, required...)
	if err != nil {
		return CoerceResult{}, err
	}

	return Coerce(normalized, logger), nil
}
