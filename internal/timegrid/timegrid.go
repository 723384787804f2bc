// Package timegrid maps wall-clock times onto the fixed slots of the visible
// calendar window. Every other component derives its slot math from Window.
package timegrid

import (
	"fmt"
	"strconv"
	"strings"
)

// Default window: 09:00-21:00 in 30 minute slots.
const (
	DefaultStartMinutes = 9 * 60
	DefaultEndMinutes   = 21 * 60
	DefaultSlotMinutes  = 30
)

// Window is the visible part of a day divided into equal slots.
type Window struct {
	StartMinutes int
	EndMinutes   int
	SlotMinutes  int
}

// Default returns the 09:00-21:00 / 30 minute window.
func Default() Window {
	return Window{StartMinutes: DefaultStartMinutes, EndMinutes: DefaultEndMinutes, SlotMinutes: DefaultSlotMinutes}
}

// NewWindow parses start/end clocks and validates the resulting window.
func NewWindow(start, end string, slotMinutes int) (Window, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Window{}, fmt.Errorf("window start: %w", err)
	}
	e, err := ParseClock(end)
	if err != nil {
		return Window{}, fmt.Errorf("window end: %w", err)
	}
	w := Window{StartMinutes: s, EndMinutes: e, SlotMinutes: slotMinutes}
	if err := w.Validate(); err != nil {
		return Window{}, err
	}
	return w, nil
}

// Validate rejects empty windows and windows not divisible into whole slots.
func (w Window) Validate() error {
	if w.SlotMinutes <= 0 {
		return fmt.Errorf("slot length must be positive, got %d", w.SlotMinutes)
	}
	if w.EndMinutes <= w.StartMinutes {
		return fmt.Errorf("window end %s must be after start %s", MinutesToTime(w.EndMinutes), MinutesToTime(w.StartMinutes))
	}
	if (w.EndMinutes-w.StartMinutes)%w.SlotMinutes != 0 {
		return fmt.Errorf("window %s-%s is not a multiple of %d minutes", MinutesToTime(w.StartMinutes), MinutesToTime(w.EndMinutes), w.SlotMinutes)
	}
	return nil
}

// TimeToMinutes converts "HH:MM" to minutes since midnight. Input is not
// validated; use ParseClock at trust boundaries.
func TimeToMinutes(t string) int {
	hh, mm, _ := strings.Cut(t, ":")
	h, _ := strconv.Atoi(hh)
	m, _ := strconv.Atoi(mm)
	return h*60 + m
}

// MinutesToTime is the inverse of TimeToMinutes.
func MinutesToTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseClock strictly parses a zero-padded 24h "HH:MM" value.
func ParseClock(t string) (int, error) {
	if len(t) != 5 || t[2] != ':' || !isDigits(t[:2]) || !isDigits(t[3:]) {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", t)
	}
	h, err := strconv.Atoi(t[:2])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", t)
	}
	m, err := strconv.Atoi(t[3:])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", t)
	}
	return h*60 + m, nil
}

// IsClock reports whether t is a valid "HH:MM" value.
func IsClock(t string) bool {
	_, err := ParseClock(t)
	return err == nil
}

// SlotIndex returns floor((t - start) / slot). The result is negative or
// >= TotalSlots for times outside the window; callers clamp.
func (w Window) SlotIndex(t string) int {
	return floorDiv(TimeToMinutes(t)-w.StartMinutes, w.SlotMinutes)
}

// LastSlotIndex returns the slot holding the final minute before end, so a
// lesson ending mid-slot still reserves that slot.
func (w Window) LastSlotIndex(end string) int {
	return floorDiv(TimeToMinutes(end)-1-w.StartMinutes, w.SlotMinutes)
}

// TotalSlots is the number of rows in the window.
func (w Window) TotalSlots() int {
	return (w.EndMinutes - w.StartMinutes) / w.SlotMinutes
}

// Contains reports start <= t < end.
func (w Window) Contains(t string) bool {
	m := TimeToMinutes(t)
	return m >= w.StartMinutes && m < w.EndMinutes
}

// SlotLabels returns the start time of every slot.
func (w Window) SlotLabels() []string {
	labels := make([]string, 0, w.TotalSlots())
	for m := w.StartMinutes; m < w.EndMinutes; m += w.SlotMinutes {
		labels = append(labels, MinutesToTime(m))
	}
	return labels
}

// Offset returns the fractional slot position of a minute-of-day, used for the
// current time marker. ok is false outside the window.
func (w Window) Offset(minutes int) (offset float64, ok bool) {
	if minutes < w.StartMinutes || minutes >= w.EndMinutes {
		return 0, false
	}
	return float64(minutes-w.StartMinutes) / float64(w.SlotMinutes), true
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
