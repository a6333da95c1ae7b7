package schedule

import (
	"testing"
	"time"

	"marketbook/internal/model"
)

func click(d time.Time, multiDay bool) DateClicked {
	return DateClicked{Date: d, AllowsMultiDay: multiDay}
}

func TestSelectionFirstClick(t *testing.T) {
	sel := Reduce(Selection{}, click(day(2025, time.June, 10), true))

	if sel.State() != StateStartChosen {
		t.Fatalf("state = %s, want %s", sel.State(), StateStartChosen)
	}
	if DateKey(sel.StartDate) != "2025-06-10" || !sel.EndDate.IsZero() || sel.Slot != nil {
		t.Errorf("unexpected selection %+v", sel)
	}
}

func TestSelectionSingleDayCollapse(t *testing.T) {
	start := day(2025, time.June, 10)
	sel := Reduce(Selection{}, click(start, true))
	sel = Reduce(sel, click(start, true))

	if sel.State() != StateRangeChosen {
		t.Fatalf("state = %s, want %s", sel.State(), StateRangeChosen)
	}
	if DateKey(sel.EndDate) != "2025-06-10" {
		t.Errorf("end date = %v, want the start date itself (not nil)", sel.EndDate)
	}
	if !sel.IsSingleDay() {
		t.Error("same-day selection must be a single-day booking")
	}
}

func TestSelectionRange(t *testing.T) {
	sel := Reduce(Selection{}, click(day(2025, time.June, 10), true))
	sel = Reduce(sel, SlotClicked{Slot: TimeSlot{Time24: "10:00"}})
	sel = Reduce(sel, click(day(2025, time.June, 15), true))

	if sel.State() != StateRangeChosen {
		t.Fatalf("state = %s, want %s", sel.State(), StateRangeChosen)
	}
	if DateKey(sel.StartDate) != "2025-06-10" || DateKey(sel.EndDate) != "2025-06-15" {
		t.Errorf("range = %v..%v", sel.StartDate, sel.EndDate)
	}
	if sel.Slot != nil {
		t.Error("extending to a range must clear the chosen slot")
	}
	if sel.IsSingleDay() {
		t.Error("distinct dates are not a single-day booking")
	}
}

func TestSelectionEarlierDateRestarts(t *testing.T) {
	sel := Reduce(Selection{}, click(day(2025, time.June, 10), true))
	sel = Reduce(sel, click(day(2025, time.June, 5), true))

	if sel.State() != StateStartChosen {
		t.Fatalf("state = %s, want %s", sel.State(), StateStartChosen)
	}
	if DateKey(sel.StartDate) != "2025-06-05" || !sel.EndDate.IsZero() {
		t.Errorf("expected restart at 2025-06-05, got %+v", sel)
	}
}

func TestSelectionMultiDayGate(t *testing.T) {
	// With multi-day booking disabled, a later click never forms a
	// range; it always restarts at the new date.
	sel := Reduce(Selection{}, click(day(2025, time.June, 10), false))
	sel = Reduce(sel, click(day(2025, time.June, 15), false))

	if sel.State() != StateStartChosen {
		t.Fatalf("state = %s, want %s", sel.State(), StateStartChosen)
	}
	if DateKey(sel.StartDate) != "2025-06-15" || !sel.EndDate.IsZero() {
		t.Errorf("expected restart at 2025-06-15, got %+v", sel)
	}
}

func TestSelectionRestartAfterRange(t *testing.T) {
	sel := Reduce(Selection{}, click(day(2025, time.June, 10), true))
	sel = Reduce(sel, click(day(2025, time.June, 15), true))
	sel = Reduce(sel, click(day(2025, time.June, 20), true))

	if sel.State() != StateStartChosen {
		t.Fatalf("state = %s, want %s", sel.State(), StateStartChosen)
	}
	if DateKey(sel.StartDate) != "2025-06-20" || !sel.EndDate.IsZero() {
		t.Errorf("expected restart, got %+v", sel)
	}
}

func TestSlotToggle(t *testing.T) {
	start := day(2025, time.June, 10)
	slot := TimeSlot{Label: "10:00 AM", Time24: "10:00", Available: true}

	sel := Reduce(Selection{}, click(start, true))
	sel = Reduce(sel, SlotClicked{Slot: slot})
	if sel.Slot == nil || sel.Slot.Time24 != "10:00" {
		t.Fatalf("slot not selected: %+v", sel.Slot)
	}

	sel = Reduce(sel, SlotClicked{Slot: slot})
	if sel.Slot != nil {
		t.Error("clicking the selected slot again must toggle it off")
	}

	// Slots are meaningless for multi-day selections.
	sel = Reduce(sel, click(day(2025, time.June, 15), true))
	sel = Reduce(sel, SlotClicked{Slot: slot})
	if sel.Slot != nil {
		t.Error("slot clicks must be ignored for multi-day selections")
	}
}

func TestSelectionValidity(t *testing.T) {
	bookings := []model.Booking{booking("2025-06-12", model.StatusAccepted)}
	slot := TimeSlot{Time24: "10:00"}

	t.Run("single day needs a slot", func(t *testing.T) {
		sel := Reduce(Selection{}, click(day(2025, time.June, 10), true))
		sel = Reduce(sel, click(day(2025, time.June, 10), true))
		if sel.CompleteBookingValid(bookings) {
			t.Error("single-day booking without a slot must be invalid")
		}
		sel = Reduce(sel, SlotClicked{Slot: slot})
		if !sel.CompleteBookingValid(bookings) {
			t.Error("single-day booking with a slot must be valid")
		}
	})

	t.Run("range over a blocked day is invalid", func(t *testing.T) {
		sel := Reduce(Selection{}, click(day(2025, time.June, 11), true))
		sel = Reduce(sel, click(day(2025, time.June, 14), true))
		if sel.DateSelectionValid(bookings) || sel.CompleteBookingValid(bookings) {
			t.Error("range covering 2025-06-12 must be invalid")
		}
	})

	t.Run("free multi-day range needs no slot", func(t *testing.T) {
		sel := Reduce(Selection{}, click(day(2025, time.June, 13), true))
		sel = Reduce(sel, click(day(2025, time.June, 16), true))
		if !sel.CompleteBookingValid(bookings) {
			t.Error("unblocked multi-day range must be valid without a slot")
		}
	})

	t.Run("incomplete selection is invalid", func(t *testing.T) {
		sel := Reduce(Selection{}, click(day(2025, time.June, 13), true))
		if sel.DateSelectionValid(bookings) {
			t.Error("start-only selection is not a valid date selection")
		}
	})
}

func TestRequestedDateTime(t *testing.T) {
	sel := Reduce(Selection{}, click(day(2025, time.June, 10), true))
	sel = Reduce(sel, click(day(2025, time.June, 10), true))

	date, tm := sel.RequestedDateTime()
	if date != "2025-06-10" || tm != DefaultRequestTime {
		t.Errorf("got %s %s, want fallback time", date, tm)
	}

	sel = Reduce(sel, SlotClicked{Slot: TimeSlot{Time24: "14:30"}})
	if _, tm := sel.RequestedDateTime(); tm != "14:30" {
		t.Errorf("time = %s, want 14:30", tm)
	}
}

func TestCleared(t *testing.T) {
	sel := Reduce(Selection{}, click(day(2025, time.June, 10), true))
	sel = Reduce(sel, Cleared{})
	if sel.State() != StateEmpty {
		t.Errorf("state = %s, want %s", sel.State(), StateEmpty)
	}
}
