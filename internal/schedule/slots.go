package schedule

import (
	"fmt"
	"time"

	"marketbook/internal/model"
)

// TimeSlot is one bookable increment of a shop's operating window,
// generated fresh per selected date and never persisted.
type TimeSlot struct {
	Label     string `json:"label"`  // "1:30 PM"
	Time24    string `json:"time24"` // "13:30"
	Available bool   `json:"available"`
	Price     string `json:"price,omitempty"`
}

const (
	// DefaultSlotDuration is used when a service has no estimated
	// duration set.
	DefaultSlotDuration = 30

	// minSlotDuration guards against degenerate durations that would
	// explode the slot count.
	minSlotDuration = 5
)

// GenerateSlots produces the ordered slot list for one day: one slot
// per duration-sized step from open to close, dropping any final
// partial increment. A slot is unavailable iff a blocking booking for
// that date has exactly its start time; this is deliberately an
// exact-time match, not an interval-overlap check, matching how the
// clients have always rendered availability.
func GenerateSlots(date time.Time, w Window, durationMin int, bookings []model.Booking) []TimeSlot {
	if durationMin <= 0 {
		durationMin = DefaultSlotDuration
	}
	if durationMin < minSlotDuration {
		durationMin = minSlotDuration
	}

	key := DateKey(date)
	booked := make(map[string]bool)
	for _, b := range bookings {
		if b.RequestedDate == key && b.Status.Blocks() {
			booked[b.RequestedTime] = true
		}
	}

	var slots []TimeSlot
	for t := w.Open; t+durationMin <= w.Close; t += durationMin {
		time24 := fmt.Sprintf("%02d:%02d", t/60, t%60)
		slots = append(slots, TimeSlot{
			Label:     Format12Hour(time24),
			Time24:    time24,
			Available: !booked[time24],
		})
	}
	return slots
}

// Format12Hour converts "HH:mm" to the "h:mm AM/PM" labels shown to
// customers. Malformed input is returned unchanged.
func Format12Hour(time24 string) string {
	h, m := splitClock(time24, -1, -1)
	if h < 0 || m < 0 {
		return time24
	}

	period := "AM"
	if h >= 12 {
		period = "PM"
	}
	display := h
	switch {
	case h == 0:
		display = 12
	case h > 12:
		display = h - 12
	}
	return fmt.Sprintf("%d:%02d %s", display, m, period)
}
