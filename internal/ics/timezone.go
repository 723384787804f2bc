package ics

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
)

// epochStamp opens the observance in effect when the export window starts.
const epochStamp = "19700101T000000"

// addTimezone emits a VTIMEZONE for loc covering [from, to]. Offsets come
// from the Go zone database, one explicit observance per transition, so
// strict consumers can resolve the TZID without an IANA lookup.
func addTimezone(cal *ical.Calendar, loc *time.Location, from, to time.Time) {
	tz := cal.AddTimezone(loc.String())

	first := from.In(loc)
	_, offset := first.Zone()
	addObservance(tz, first, epochStamp, offset, offset)

	for _, at := range transitions(loc, first, to) {
		_, before := at.Add(-time.Second).Zone()
		_, after := at.Zone()
		onset := at.In(time.FixedZone("", before)).Format(localStamp)
		addObservance(tz, at, onset, before, after)
	}
}

func addObservance(tz *ical.VTimezone, at time.Time, onset string, from, to int) {
	name, _ := at.Zone()
	var obs ical.Component
	base := &ical.ComponentBase{}
	base.SetProperty(ical.ComponentPropertyDtStart, onset)
	base.SetProperty(ical.ComponentProperty(ical.PropertyTzoffsetfrom), formatOffset(from))
	base.SetProperty(ical.ComponentProperty(ical.PropertyTzoffsetto), formatOffset(to))
	base.SetProperty(ical.ComponentProperty(ical.PropertyTzname), name)
	if at.IsDST() {
		obs = &ical.Daylight{ComponentBase: *base}
	} else {
		obs = &ical.Standard{ComponentBase: *base}
	}
	tz.Components = append(tz.Components, obs)
}

// transitions returns the instants in (from, to] where loc changes offset,
// truncated to the second.
func transitions(loc *time.Location, from, to time.Time) []time.Time {
	var out []time.Time
	cursor := from.In(loc)
	_, current := cursor.Zone()
	for cursor.Before(to) {
		next := cursor.Add(24 * time.Hour)
		if _, offset := next.In(loc).Zone(); offset != current {
			at := bisect(loc, cursor, next)
			out = append(out, at)
			_, current = at.Zone()
		}
		cursor = next
	}
	return out
}

// bisect finds the first second in (lo, hi] whose offset differs from lo.
func bisect(loc *time.Location, lo, hi time.Time) time.Time {
	_, base := lo.In(loc).Zone()
	for hi.Sub(lo) > time.Second {
		mid := lo.Add(hi.Sub(lo) / 2).Truncate(time.Second)
		if !mid.After(lo) {
			break
		}
		if _, offset := mid.In(loc).Zone(); offset == base {
			lo = mid
		} else {
			hi = mid
		}
	}
	return hi.In(loc)
}

func formatOffset(seconds int) string {
	sign := '+'
	if seconds < 0 {
		sign = '-'
		seconds = -seconds
	}
	return fmt.Sprintf("%c%02d%02d", sign, seconds/3600, seconds%3600/60)
}
