// Package cadence computes outreach due dates in business-day units.
//
// Every function takes the reference date explicitly; nothing in this package
// reads the system clock.
package cadence

import "time"

// DateOf strips the time-of-day from t. The calendar date is taken in t's own
// location and returned as midnight UTC so that dates compare and subtract
// without daylight-saving drift.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsBusinessDay reports whether date falls on Monday through Friday.
// No holiday calendar is applied.
func IsBusinessDay(date time.Time) bool {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	default:
		return true
	}
}

// NextBusinessDay returns the earliest business day strictly after date.
func NextBusinessDay(date time.Time) time.Time {
	next := DateOf(date).AddDate(0, 0, 1)
	for !IsBusinessDay(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// AddBusinessDays advances date by exactly n business days. The start date is
// never counted, so AddBusinessDays(friday, 1) is the following Monday.
// A non-positive n returns the date itself.
func AddBusinessDays(date time.Time, n int) time.Time {
	result := DateOf(date)
	if n <= 0 {
		return result
	}

	// Step onto a business day with the remainder, then each 7 calendar days adds 5.
	weeks := (n - 1) / 5
	for i := 0; i < n-weeks*5; i++ {
		result = NextBusinessDay(result)
	}
	return result.AddDate(0, 0, weeks*7)
}

// CountBusinessDays returns the number of business days strictly after start
// and up to and including end. It is 0 when end is not after start.
func CountBusinessDays(start, end time.Time) int {
	start, end = DateOf(start), DateOf(end)
	if !end.After(start) {
		return 0
	}

	days := calendarDaysBetween(start, end)
	weeks := days / 7
	count := weeks * 5

	// Any 7 consecutive days hold exactly 5 business days; walk the remainder.
	cursor := start.AddDate(0, 0, weeks*7)
	for i := 0; i < days%7; i++ {
		cursor = cursor.AddDate(0, 0, 1)
		if IsBusinessDay(cursor) {
			count++
		}
	}
	return count
}

// calendarDaysBetween returns whole calendar days from start to end.
// Both arguments must already be normalized with DateOf.
func calendarDaysBetween(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}
