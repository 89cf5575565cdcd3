// Package services holds the savings and cashback calculators built on top of the
// ledger pipeline.
package services

import "fjacquet/spend-insights/internal/logging"

// Calculator runs the round-up savings and category cashback calculations.
type Calculator struct {
	logger logging.Logger
}

// NewCalculator creates a calculator logging to logger (no-op when nil).
func NewCalculator(logger logging.Logger) *Calculator {
	return &Calculator{logger: logging.OrNop(logger)}
}
