package utils_test

import (
	"strings"
	"testing"

	"foxbot/src-server/utils"
)

func TestFormatDate(t *testing.T) {
	cases := []struct {
		date string
		want string
	}{
		{"2025-12-01", "Monday, December 1st"},
		{"2025-12-02", "Tuesday, December 2nd"},
		{"2025-12-03", "Wednesday, December 3rd"},
		{"2025-12-04", "Thursday, December 4th"},
		// 11th/12th/13th break the 1-2-3 suffix rule
		{"2025-12-11", "Thursday, December 11th"},
		{"2025-12-12", "Friday, December 12th"},
		{"2025-12-13", "Saturday, December 13th"},
		{"2025-12-21", "Sunday, December 21st"},
		{"2025-12-22", "Monday, December 22nd"},
		{"2025-12-23", "Tuesday, December 23rd"},
		{"2026-05-31", "Sunday, May 31st"},
	}
	for _, c := range cases {
		if got := utils.FormatDate(c.date); got != c.want {
			t.Errorf("FormatDate(%q) = %q, want %q", c.date, got, c.want)
		}
	}
}

func TestFormatDateInvalidInputPassesThrough(t *testing.T) {
	if got := utils.FormatDate("not-a-date"); got != "not-a-date" {
		t.Errorf("got %q", got)
	}
}

func TestCleanupString(t *testing.T) {
	if got := utils.CleanupString("  hall: winter assembly.  "); got != "Hall: Winter Assembly" {
		t.Errorf("got %q", got)
	}
	if got := utils.CleanupString("Dress Day"); !strings.HasPrefix(got, "Dress") {
		t.Errorf("got %q", got)
	}
}
