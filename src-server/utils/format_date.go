package utils

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FormatDate renders a stored YYYY-MM-DD date as "Monday, December 1st".
// Returns the input unchanged if it isn't a valid date.
func FormatDate(dateStr string) string {
	day, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return dateStr
	}
	return fmt.Sprintf("%s, %s %d%s",
		day.Weekday().String(),
		day.Month().String(),
		day.Day(),
		ordinalSuffix(day.Day()))
}

// 11th, 12th and 13th break the 1st/2nd/3rd pattern.
func ordinalSuffix(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

// strips spaces, uppercase each word, remove trailing period
func CleanupString(s string) string {
	s = strings.TrimSpace(s)
	s = cases.Title(language.English).String(s)
	s = strings.TrimSuffix(s, ".")
	return s
}
