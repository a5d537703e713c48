package scheduling

import "time"

// All interval math in this package is half-open: [start, end).

// SpansOverlap reports whether [aStart, aEnd) and [bStart, bEnd) share any instant.
func SpansOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// MinutesOverlap is SpansOverlap for minute-of-day windows.
func MinutesOverlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// MinutesContain reports whether [innerStart, innerEnd) lies entirely inside
// [outerStart, outerEnd). Containment, not overlap.
func MinutesContain(outerStart, outerEnd, innerStart, innerEnd int) bool {
	return outerStart <= innerStart && innerEnd <= outerEnd
}
