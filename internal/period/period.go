// Package period computes calendar-aligned week and month windows.
// Weeks run Sunday through Saturday in the location of the reference time.
package period

import "time"

// Clock returns the current time
type Clock func() time.Time

// SystemClock is the wall clock in the local zone
func SystemClock() time.Time {
	return time.Now()
}

// Window is an inclusive time range
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t lies within [Start, End]
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Valid reports whether the window is non-empty
func (w Window) Valid() bool {
	return !w.End.Before(w.Start)
}

// StartOfDay returns midnight of t's calendar day in t's location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59.999 of t's calendar day in t's location
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// SameDay reports whether a and b fall on the same calendar date in a's location
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// CurrentWeek returns Sunday 00:00:00.000 through Saturday 23:59:59.999 around now
func CurrentWeek(now time.Time) Window {
	start := StartOfDay(now).AddDate(0, 0, -int(now.Weekday()))
	return Window{Start: start, End: EndOfDay(start.AddDate(0, 0, 6))}
}

// CurrentMonth returns the first through last calendar day of now's month
func CurrentMonth(now time.Time) Window {
	y, m, _ := now.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
	return Window{Start: start, End: EndOfDay(start.AddDate(0, 1, -1))}
}

// PreviousWeek is the week before CurrentWeek(now)
func PreviousWeek(now time.Time) Window {
	cur := CurrentWeek(now)
	start := cur.Start.AddDate(0, 0, -7)
	return Window{Start: start, End: EndOfDay(start.AddDate(0, 0, 6))}
}

// PreviousMonth is the month before CurrentMonth(now)
func PreviousMonth(now time.Time) Window {
	cur := CurrentMonth(now)
	return CurrentMonth(cur.Start.AddDate(0, 0, -1))
}

// Weeks splits w into consecutive 7-day windows starting at w.Start. The last
// window is clipped to w.End.
func Weeks(w Window) []Window {
	var out []Window
	for start := w.Start; !start.After(w.End); start = start.AddDate(0, 0, 7) {
		end := EndOfDay(start.AddDate(0, 0, 6))
		if end.After(w.End) {
			end = w.End
		}
		out = append(out, Window{Start: start, End: end})
	}
	return out
}

// LastDays returns the start of each of the n calendar days ending on now's day, oldest first.
func LastDays(now time.Time, n int) []time.Time {
	if n <= 0 {
		return nil
	}
	today := StartOfDay(now)
	days := make([]time.Time, n)
	for i := 0; i < n; i++ {
		days[i] = today.AddDate(0, 0, i-(n-1))
	}
	return days
}

// Kind names a period length
type Kind string

const (
	Week  Kind = "week"
	Month Kind = "month"
)

// ParseKind maps "month" to Month and everything else to Week
func ParseKind(s string) Kind {
	if s == string(Month) {
		return Month
	}
	return Week
}

// Current returns the current window of the given kind
func Current(kind Kind, now time.Time) Window {
	if kind == Month {
		return CurrentMonth(now)
	}
	return CurrentWeek(now)
}

// Previous returns the previous window of the given kind
func Previous(kind Kind, now time.Time) Window {
	if kind == Month {
		return PreviousMonth(now)
	}
	return PreviousWeek(now)
}
