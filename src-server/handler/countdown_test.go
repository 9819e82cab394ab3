package handler_test

import (
	"testing"
	"time"

	"foxbot/src-server/handler"
)

func TestFormatCountdown(t *testing.T) {
	now := time.Date(2025, time.December, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		target time.Time
		want   string
	}{
		{
			"days out",
			time.Date(2025, time.December, 15, 8, 30, 0, 0, time.UTC),
			"**13** days, **20** hours, **30** minutes",
		},
		{
			"hours out",
			time.Date(2025, time.December, 1, 15, 45, 0, 0, time.UTC),
			"**3** hours, **45** minutes",
		},
		{
			"minutes out",
			time.Date(2025, time.December, 1, 12, 20, 0, 0, time.UTC),
			"**20** minutes",
		},
		{
			"already past",
			time.Date(2025, time.November, 30, 12, 0, 0, 0, time.UTC),
			"already happened! 🎉",
		},
		{
			"exactly now",
			now,
			"already happened! 🎉",
		},
	}
	for _, c := range cases {
		if got := handler.FormatCountdown(now, c.target); got != c.want {
			t.Errorf("%s: got %q, want %q", c.name, got, c.want)
		}
	}
}
