package models

import "time"

// DateWindow is an inclusive [Start, End] time range.
type DateWindow struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies inside the window, bounds included.
func (w DateWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Filter returns the transactions whose date lies inside the window,
// preserving their order.
func (w DateWindow) Filter(txs []Transaction) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if w.Contains(tx.Date) {
			out = append(out, tx)
		}
	}
	return out
}
