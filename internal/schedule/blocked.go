package schedule

import (
	"time"

	"marketbook/internal/model"
)

// DateKey formats a calendar day as the canonical "yyyy-MM-dd" string
// used for all date comparisons. The time-of-day component is dropped.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// sameDay reports whether a and b fall on the same calendar day.
func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// IsDateBlocked reports whether any booking in the snapshot blocks the
// given calendar day: its requested date matches and its status is in
// the blocking set.
func IsDateBlocked(date time.Time, bookings []model.Booking) bool {
	key := DateKey(date)
	for _, b := range bookings {
		if b.RequestedDate == key && b.Status.Blocks() {
			return true
		}
	}
	return false
}

// IsRangeBlocked reports whether any day in the inclusive range
// [start, end] is blocked. start == end degenerates to a single-day
// check; an end before start blocks nothing.
func IsRangeBlocked(start, end time.Time, bookings []model.Booking) bool {
	last := startOfDay(end)
	for d := startOfDay(start); !d.After(last); d = d.AddDate(0, 0, 1) {
		if IsDateBlocked(d, bookings) {
			return true
		}
	}
	return false
}
