package policy

import (
	"fmt"
	"time"
)

// ordinalDay renders the day of month with its English ordinal suffix:
// 1st, 2nd, 3rd, 4th, ..., 11th, 12th, 13th, ..., 21st, 22nd, 23rd.
func ordinalDay(t time.Time) string {
	day := t.Day()
	suffix := "th"
	if day%100 < 11 || day%100 > 13 {
		switch day % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", day, suffix)
}

func monthName(t time.Time) string {
	return t.Month().String()
}

func yearString(t time.Time) string {
	return fmt.Sprintf("%d", t.Year())
}

// longDate renders "January 2, 2006".
func longDate(t time.Time) string {
	return t.Format("January 2, 2006")
}
