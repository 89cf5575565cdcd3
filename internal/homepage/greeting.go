package homepage

import "time"

// Greetings by time of day.
const (
	GreetingMorning   = "Доброе утро"
	GreetingAfternoon = "Добрый день"
	GreetingEvening   = "Добрый вечер"
	GreetingNight     = "Доброй ночи"
)

// Greeting picks the salutation for the hour of t: 05-11 morning, 12-16
// afternoon, 17-22 evening, night otherwise.
func Greeting(t time.Time) string {
	switch h := t.Hour(); {
	case h >= 5 && h < 12:
		return GreetingMorning
	case h >= 12 && h < 17:
		return GreetingAfternoon
	case h >= 17 && h < 23:
		return GreetingEvening
	default:
		return GreetingNight
	}
}
