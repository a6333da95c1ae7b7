package schedule

import (
	"time"

	"marketbook/internal/model"
)

// CalendarDay is one cell of a month grid. The grid is a pure
// projection of (month, today, selection, bookings); cells are built
// fresh on every call and never mutated in place.
type CalendarDay struct {
	Date         time.Time `json:"date"`
	CurrentMonth bool      `json:"current_month"`
	Today        bool      `json:"today"`
	Selectable   bool      `json:"selectable"`
	Blocked      bool      `json:"blocked"`
	StartOfRange bool      `json:"start_of_range"`
	EndOfRange   bool      `json:"end_of_range"`
	InRange      bool      `json:"in_range"`
}

// Indicators carries the per-day status dot counts shown on the owner
// calendar.
type Indicators struct {
	Accepted int `json:"accepted"`
	Pending  int `json:"pending"`
	Denied   int `json:"denied"`
}

// HasAny reports whether any dot should be drawn.
func (i Indicators) HasAny() bool {
	return i.Accepted > 0 || i.Pending > 0 || i.Denied > 0
}

// BuildCustomerMonth builds the booking calendar a customer selects
// dates on. Days are selectable when they are neither past nor blocked
// by a confirmed booking; range highlighting follows the current
// selection. The result is row-major, Sunday-first, and always a
// multiple of seven cells.
func BuildCustomerMonth(year int, month time.Month, today time.Time, sel Selection, bookings []model.Booking) []CalendarDay {
	return buildMonth(year, month, today, func(date time.Time, past bool) (selectable, blocked bool) {
		blocked = IsDateBlocked(date, bookings)
		return !past && !blocked, blocked
	}, sel)
}

// BuildOwnerMonth builds the owner-facing calendar. Owners review
// bookings rather than place them, so days are selectable whenever
// they are not in the past regardless of blocking.
func BuildOwnerMonth(year int, month time.Month, today time.Time) []CalendarDay {
	return buildMonth(year, month, today, func(date time.Time, past bool) (selectable, blocked bool) {
		return !past, false
	}, Selection{})
}

func buildMonth(year int, month time.Month, today time.Time, judge func(date time.Time, past bool) (bool, bool), sel Selection) []CalendarDay {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	leading := int(first.Weekday()) // 0 = Sunday
	daysInMonth := first.AddDate(0, 1, -1).Day()
	todayMidnight := startOfDay(today)

	days := make([]CalendarDay, 0, 42)

	// Trailing days of the previous month pad the first week.
	for i := leading; i > 0; i-- {
		days = append(days, CalendarDay{Date: first.AddDate(0, 0, -i)})
	}

	for d := 1; d <= daysInMonth; d++ {
		date := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
		isToday := sameDay(date, today)
		past := date.Before(todayMidnight) && !isToday
		selectable, blocked := judge(date, past)

		cell := CalendarDay{
			Date:         date,
			CurrentMonth: true,
			Today:        isToday,
			Selectable:   selectable,
			Blocked:      blocked,
		}
		applySelection(&cell, sel)
		days = append(days, cell)
	}

	// Leading days of the next month fill the final week.
	next := first.AddDate(0, 1, 0)
	for d := 0; len(days)%7 != 0; d++ {
		days = append(days, CalendarDay{Date: next.AddDate(0, 0, d)})
	}

	return days
}

func applySelection(cell *CalendarDay, sel Selection) {
	if !sel.StartDate.IsZero() && sameDay(cell.Date, sel.StartDate) {
		cell.StartOfRange = true
	}
	if !sel.EndDate.IsZero() && sameDay(cell.Date, sel.EndDate) {
		cell.EndOfRange = true
	}
	if !sel.StartDate.IsZero() && !sel.EndDate.IsZero() &&
		cell.CurrentMonth && !cell.Blocked &&
		cell.Date.After(startOfDay(sel.StartDate)) && cell.Date.Before(startOfDay(sel.EndDate)) {
		cell.InRange = true
	}
}

// DayIndicators summarizes booking statuses for one calendar day of
// the owner view.
func DayIndicators(date time.Time, bookings []model.Booking) Indicators {
	key := DateKey(date)
	var ind Indicators
	for _, b := range bookings {
		if b.RequestedDate != key {
			continue
		}
		switch b.Status {
		case model.StatusAccepted:
			ind.Accepted++
		case model.StatusPending:
			ind.Pending++
		case model.StatusDenied:
			ind.Denied++
		}
	}
	return ind
}
