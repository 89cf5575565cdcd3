package homepage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGreeting(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{0, GreetingNight},
		{4, GreetingNight},
		{5, GreetingMorning},
		{11, GreetingMorning},
		{12, GreetingAfternoon},
		{16, GreetingAfternoon},
		{17, GreetingEvening},
		{22, GreetingEvening},
		{23, GreetingNight},
	}

	for _, tt := range tests {
		at := time.Date(2024, 1, 1, tt.hour, 59, 0, 0, time.UTC)
		assert.Equal(t, tt.want, Greeting(at), "hour %d", tt.hour)
	}
}
