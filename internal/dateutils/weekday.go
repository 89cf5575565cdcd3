package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// WeekdayNames maps time.Weekday to a display name for one locale.
type WeekdayNames [7]string

var (
	// RussianWeekdays are the ru_RU day names.
	RussianWeekdays = WeekdayNames{
		time.Sunday:    "Воскресенье",
		time.Monday:    "Понедельник",
		time.Tuesday:   "Вторник",
		time.Wednesday: "Среда",
		time.Thursday:  "Четверг",
		time.Friday:    "Пятница",
		time.Saturday:  "Суббота",
	}

	// EnglishWeekdays are the en_US day names.
	EnglishWeekdays = WeekdayNames{
		time.Sunday:    "Sunday",
		time.Monday:    "Monday",
		time.Tuesday:   "Tuesday",
		time.Wednesday: "Wednesday",
		time.Thursday:  "Thursday",
		time.Friday:    "Friday",
		time.Saturday:  "Saturday",
	}
)

// Name returns the display name of d.
func (n WeekdayNames) Name(d time.Weekday) string {
	return n[d]
}

// WeekdayNamesFor returns the names for a locale code ("ru", "ru_RU", "en", ...).
func WeekdayNamesFor(locale string) (WeekdayNames, error) {
	switch strings.ToLower(strings.SplitN(strings.ReplaceAll(locale, "-", "_"), "_", 2)[0]) {
	case "", "ru":
		return RussianWeekdays, nil
	case "en":
		return EnglishWeekdays, nil
	default:
		return WeekdayNames{}, fmt.Errorf("unsupported weekday locale: %s", locale)
	}
}

// WeekOrder lists weekdays Monday first.
var WeekOrder = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}
