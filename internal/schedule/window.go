// Package schedule implements the booking availability core: operating
// windows, blocked-date evaluation, time slot generation, calendar month
// grids and the date selection state machine. Everything here is a pure
// function over an injected snapshot of confirmed bookings; callers own
// all I/O.
package schedule

import (
	"strconv"
	"strings"
	"time"
)

// Window is a shop's daily operating window in minutes since midnight.
// Close is exclusive; a full day is {0, 1439} and a "24:00" close
// normalizes to 1440.
type Window struct {
	Open  int
	Close int
}

const (
	fullDayOpen  = 0
	fullDayClose = 23*60 + 59
)

// FullDay is the window used for shops without configured hours.
var FullDay = Window{Open: fullDayOpen, Close: fullDayClose}

// ParseWindow normalizes "HH:mm" open/close strings into a Window.
// A missing open or close time means the shop never configured hours
// and is treated as always open. Malformed parts fall back to 00:00
// for open and 23:59 for close, so a broken shop record degrades to
// "open" rather than erroring out of the booking flow.
func ParseWindow(open, close string) Window {
	if open == "" || close == "" {
		return FullDay
	}

	oh, om := splitClock(open, 0, 0)
	ch, cm := splitClock(close, 23, 59)

	w := Window{Open: oh*60 + om, Close: ch*60 + cm}
	if ch == 24 && cm == 0 {
		w.Close = 24 * 60
	}
	return w
}

// splitClock parses "HH:mm" into hour and minute, substituting the
// given defaults part-by-part when the string does not parse.
func splitClock(s string, defHour, defMin int) (int, int) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return defHour, defMin
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		h = defHour
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		m = defMin
	}
	return h, m
}

// Span returns the window length in minutes. Zero or negative means
// no slot can ever fit.
func (w Window) Span() int {
	return w.Close - w.Open
}

// IsOpenAt reports whether the instant falls inside the window using a
// linear open <= t < close comparison. Overnight windows (close before
// open, e.g. a bar open 18:00-02:00) are not representable: such a
// window always reports closed after the close time.
func (w Window) IsOpenAt(t time.Time) bool {
	cur := t.Hour()*60 + t.Minute()
	return w.Open <= cur && cur < w.Close
}
