package scheduler

import "testing"

func TestDigestCronSpec(t *testing.T) {
	cases := []struct {
		hhmm string
		want string
	}{
		{"17:00", "0 17 * * *"},
		{"05:30", "30 5 * * *"},
		{"00:00", "0 0 * * *"},
		{"23:59", "59 23 * * *"},
		// config validates the value; the fallback still holds the line
		{"bogus", "0 17 * * *"},
		{"", "0 17 * * *"},
	}
	for _, c := range cases {
		if got := digestCronSpec(c.hhmm); got != c.want {
			t.Errorf("digestCronSpec(%q) = %q, want %q", c.hhmm, got, c.want)
		}
	}
}
