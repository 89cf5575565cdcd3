package models

import "strings"

// UserSettings lists the currencies and stocks shown on the main page.
type UserSettings struct {
	Currencies []string `json:"user_currencies" yaml:"user_currencies"`
	Stocks     []string `json:"user_stocks" yaml:"user_stocks"`
}

// EmptySettings returns settings with empty, non-nil lists.
func EmptySettings() UserSettings {
	return UserSettings{Currencies: []string{}, Stocks: []string{}}
}

// Normalized trims and de-duplicates both lists, keeping the first occurrence.
func (s UserSettings) Normalized() UserSettings {
	return UserSettings{
		Currencies: uniqueSymbols(s.Currencies),
		Stocks:     uniqueSymbols(s.Stocks),
	}
}

func uniqueSymbols(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
