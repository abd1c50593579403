package booking

import "time"

// DateRangesOverlap reports whether the closed day intervals [aStart, aEnd]
// and [bStart, bEnd] share at least one day. Covers full containment in both
// directions.
func DateRangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aEnd.Before(bStart) && !bEnd.Before(aStart)
}

// TimeSlotsOverlap reports whether two same-date time slots overlap. Times are
// zero-padded "HH:mm" strings compared lexicographically, which matches
// chronological order. A slot ending exactly when another starts does not
// overlap, so adjacent slots stay bookable back-to-back.
func TimeSlotsOverlap(aStart, aEnd, bStart, bEnd string) bool {
	// a starts during b
	if bStart <= aStart && aStart < bEnd {
		return true
	}
	// a ends during b
	if bStart < aEnd && aEnd <= bEnd {
		return true
	}
	// a contains b
	if aStart <= bStart && aEnd >= bEnd {
		return true
	}
	return false
}
