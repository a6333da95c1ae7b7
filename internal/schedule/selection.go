package schedule

import (
	"time"

	"marketbook/internal/model"
)

// State names the phase of the date selection flow.
type State string

const (
	StateEmpty       State = "empty"
	StateStartChosen State = "start_chosen"
	StateRangeChosen State = "range_chosen"
)

// DefaultRequestTime is used for booking requests created without an
// explicit slot choice (multi-day bookings have no discrete slot).
const DefaultRequestTime = "09:00"

// Selection is the explicit value behind the booking flow: a start
// date, an optional end date and an optional time slot. A single-day
// booking is represented by StartDate == EndDate, never by a nil end.
// The zero Selection means nothing is chosen.
type Selection struct {
	StartDate time.Time
	EndDate   time.Time
	Slot      *TimeSlot
}

// State derives the selection phase.
func (s Selection) State() State {
	switch {
	case s.StartDate.IsZero():
		return StateEmpty
	case s.EndDate.IsZero():
		return StateStartChosen
	default:
		return StateRangeChosen
	}
}

// IsSingleDay reports whether the selection is (or will become) a
// single-day booking: only a start chosen, or start and end on the
// same calendar day.
func (s Selection) IsSingleDay() bool {
	if s.StartDate.IsZero() {
		return false
	}
	if s.EndDate.IsZero() {
		return true
	}
	return sameDay(s.StartDate, s.EndDate)
}

// Event is an input to Reduce. Events come from the hosting UI: date
// clicks, slot clicks and flow resets.
type Event interface {
	apply(Selection) Selection
}

// DateClicked is the user clicking day Date on the calendar.
// AllowsMultiDay carries the service's multi-day booking eligibility.
type DateClicked struct {
	Date           time.Time
	AllowsMultiDay bool
}

func (e DateClicked) apply(s Selection) Selection {
	d := startOfDay(e.Date)

	switch s.State() {
	case StateEmpty:
		return Selection{StartDate: d}

	case StateStartChosen:
		switch {
		case sameDay(d, s.StartDate):
			// Same date again collapses into a single-day booking.
			s.EndDate = s.StartDate
			return s
		case d.After(s.StartDate) && e.AllowsMultiDay:
			return Selection{StartDate: s.StartDate, EndDate: d}
		default:
			// Earlier date, or a range on a service that only takes
			// single-day bookings: restart at the clicked day.
			return Selection{StartDate: d}
		}

	default: // StateRangeChosen
		return Selection{StartDate: d}
	}
}

// SlotClicked is the user picking (or unpicking) a time slot. It is
// only meaningful while the selection is single-day; clicking the
// already-selected slot toggles it off.
type SlotClicked struct {
	Slot TimeSlot
}

func (e SlotClicked) apply(s Selection) Selection {
	if !s.IsSingleDay() {
		return s
	}
	if s.Slot != nil && s.Slot.Time24 == e.Slot.Time24 {
		s.Slot = nil
		return s
	}
	slot := e.Slot
	s.Slot = &slot
	return s
}

// Cleared resets the flow, e.g. when a booking completes or the user
// opens a new one.
type Cleared struct{}

func (Cleared) apply(Selection) Selection { return Selection{} }

// Reduce applies one event to the selection and returns the next
// selection. It is a pure transition function; the hosting UI owns the
// single mutable copy.
func Reduce(s Selection, ev Event) Selection {
	return ev.apply(s)
}

// DateSelectionValid reports whether both dates are chosen and no day
// in the inclusive range conflicts with a confirmed booking.
func (s Selection) DateSelectionValid(bookings []model.Booking) bool {
	if s.StartDate.IsZero() || s.EndDate.IsZero() {
		return false
	}
	return !IsRangeBlocked(s.StartDate, s.EndDate, bookings)
}

// CompleteBookingValid reports whether the selection can be submitted:
// single-day bookings additionally need a time slot, multi-day
// bookings only need an unblocked range.
func (s Selection) CompleteBookingValid(bookings []model.Booking) bool {
	if !s.DateSelectionValid(bookings) {
		return false
	}
	if s.IsSingleDay() {
		return s.Slot != nil
	}
	return true
}

// RequestedDateTime returns the date and time a booking request built
// from this selection carries: the start date, and the chosen slot's
// 24-hour time or the default fallback.
func (s Selection) RequestedDateTime() (date, timeOfDay string) {
	timeOfDay = DefaultRequestTime
	if s.Slot != nil {
		timeOfDay = s.Slot.Time24
	}
	return DateKey(s.StartDate), timeOfDay
}
