package booking

import (
	"time"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

func parseDay(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.Local)
}

// dayFloor truncates t to local midnight.
func dayFloor(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func maxDay(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minDay(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
