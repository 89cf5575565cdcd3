package models

import (
	"bytes"
	"encoding/json"
)

// Quote is a single symbol value; a nil Value means the value is unavailable.
type Quote struct {
	Symbol string
	Value  *float64
}

// Quotes is an insertion-ordered symbol -> value mapping. It marshals to a
// JSON object whose keys keep the slice order.
type Quotes []Quote

// NullQuotes returns a Quotes with every symbol present and unavailable.
func NullQuotes(symbols []string) Quotes {
	out := make(Quotes, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, Quote{Symbol: s})
	}
	return out
}

// Get returns the value for symbol and whether the symbol is present.
func (q Quotes) Get(symbol string) (*float64, bool) {
	for _, quote := range q {
		if quote.Symbol == symbol {
			return quote.Value, true
		}
	}
	return nil, false
}

// Symbols returns the symbols in order.
func (q Quotes) Symbols() []string {
	out := make([]string, len(q))
	for i, quote := range q {
		out[i] = quote.Symbol
	}
	return out
}

// MarshalJSON implements json.Marshaler.
func (q Quotes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, quote := range q {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(quote.Symbol)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if quote.Value == nil {
			buf.WriteString("null")
			continue
		}
		val, err := json.Marshal(*quote.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Float returns a pointer to v, for building quotes.
func Float(v float64) *float64 {
	return &v
}
