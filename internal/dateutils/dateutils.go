// Package dateutils provides the date parsing and date-window arithmetic used by
// the ledger pipeline and the reporters.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"fjacquet/spend-insights/internal/models"
	"fjacquet/spend-insights/internal/parsererror"
)

// Common date format constants used throughout the application
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutEuropean = "02.01.2006"
	DateLayoutFull     = "2006-01-02 15:04:05"
	DateLayoutMonth    = "2006-01"
	ReportStampLayout  = "20060102_150405"
)

// ReferenceLayoutHint is the human form of DateLayoutFull used in error messages.
const ReferenceLayoutHint = "YYYY-MM-DD HH:MM:SS"

// CommonFormats lists the layouts ParseDate tries, in order. Day-first layouts
// come before month-first ones so "05/04/2025" reads as 5 April.
var CommonFormats = []string{
	DateLayoutFull,
	DateLayoutISO,
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"02.01.2006 15:04:05",
	"02.01.2006 15:04",
	DateLayoutEuropean,
	"2.1.2006",
	"02.01.06",
	"02/01/2006 15:04:05",
	"02/01/2006",
	"02-01-2006",
	"2006/01/02",
	"01/02/2006",
	"2-Jan-2006",
	"2 January 2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

var whitespace = regexp.MustCompile(`\s+`)

// CleanDateString trims and collapses whitespace.
func CleanDateString(dateStr string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// ParseDate attempts to parse a date string using multiple common formats.
// Returns the parsed time (UTC) and the matching layout.
func ParseDate(dateStr string) (time.Time, string, error) {
	dateStr = CleanDateString(dateStr)
	if dateStr == "" {
		return time.Time{}, "", fmt.Errorf("unable to parse date: empty value")
	}

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, format, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// ParseReference parses the reference instant of a main page request, which
// must use the "YYYY-MM-DD HH:MM:SS" layout.
func ParseReference(value string) (time.Time, error) {
	t, err := time.Parse(DateLayoutFull, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, &parsererror.DateFormatError{
			Value:  value,
			Layout: ReferenceLayoutHint,
		}
	}
	return t, nil
}

// ParseMonth parses a "YYYY-MM" month and returns its first instant.
func ParseMonth(value string) (time.Time, error) {
	t, err := time.Parse(DateLayoutMonth, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, &parsererror.DateFormatError{Value: value, Layout: "YYYY-MM"}
	}
	return t, nil
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// StartOfMonth returns the first day of the month for a given date, at midnight.
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// MonthToDate returns the window from the first instant of t's month up to t.
// The start drops every sub-second component; the end is t unchanged.
func MonthToDate(t time.Time) models.DateWindow {
	return models.DateWindow{Start: StartOfMonth(t), End: t}
}

// SameMonth reports whether a and b fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// AddMonths shifts t by n calendar months, clamping the day to the last day of
// the target month (31 May - 3 months = 28/29 Feb, not 2/3 March).
func AddMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	target := first.AddDate(0, n, 0)
	day := t.Day()
	if last := daysIn(target.Year(), target.Month(), t.Location()); day > last {
		day = last
	}
	return time.Date(target.Year(), target.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// TrailingMonths returns the window [end - n months, end].
func TrailingMonths(end time.Time, n int) models.DateWindow {
	return models.DateWindow{Start: AddMonths(end, -n), End: end}
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
