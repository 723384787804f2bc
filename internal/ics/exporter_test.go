package ics

import (
	"bytes"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	ical "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lesson-calendar-api/internal/models"
)

func rome(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Rome")
	require.NoError(t, err)
	return loc
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func mondayLesson() models.Lesson {
	return models.Lesson{
		ID:        "7d7e3a4c-1111-4c1e-9a57-1f3b2f7a0001",
		Title:     "Storia dell'arte",
		StartTime: "10:00",
		EndTime:   "11:30",
		DayOfWeek: 1,
		Classroom: "Aula Magna A",
		Professor: "Bianchi",
		Course:    strPtr("PIT"),
		Year:      intPtr(2),
		Group:     strPtr("B"),
	}
}

func TestAnchor(t *testing.T) {
	loc := rome(t)
	wednesday := time.Date(2025, time.October, 15, 18, 0, 0, 0, loc)

	assert.Equal(t, time.Date(2025, time.October, 20, 0, 0, 0, 0, loc), Anchor(wednesday, 1))
	assert.Equal(t, time.Date(2025, time.October, 15, 0, 0, 0, 0, loc), Anchor(wednesday, 3))
	assert.Equal(t, time.Date(2025, time.October, 19, 0, 0, 0, 0, loc), Anchor(wednesday, 0))
}

func TestExportMondayLessonOnWednesday(t *testing.T) {
	loc := rome(t)
	now := time.Date(2025, time.October, 15, 10, 0, 0, 0, loc)
	e := NewExporter(Options{Location: loc, UIDDomain: "orario.test", CalendarName: "Orario", Now: func() time.Time { return now }})

	out := e.Export([]models.Lesson{mondayLesson()})
	assert.True(t, strings.HasPrefix(string(out), "BEGIN:VCALENDAR"))
	assert.Contains(t, string(out), "\r\n")

	cal, err := ical.ParseCalendar(bytes.NewReader(out))
	require.NoError(t, err)
	events := cal.Events()
	require.Len(t, events, 1)
	ev := events[0]

	dtstart := ev.GetProperty(ical.ComponentPropertyDtStart)
	require.NotNil(t, dtstart)
	assert.Equal(t, "20251020T100000", dtstart.Value)
	assert.Equal(t, []string{"Europe/Rome"}, dtstart.ICalParameters["TZID"])
	assert.Equal(t, "20251020T113000", ev.GetProperty(ical.ComponentPropertyDtEnd).Value)

	until := now.Add(16 * 7 * 24 * time.Hour).UTC().Format("20060102T150405Z")
	assert.Equal(t, "FREQ=WEEKLY;UNTIL="+until, ev.GetProperty(ical.ComponentPropertyRrule).Value)

	assert.Equal(t, "7d7e3a4c-1111-4c1e-9a57-1f3b2f7a0001-20251020T080000Z@orario.test", ev.Id())
	assert.Equal(t, "Storia dell'arte", ev.GetProperty(ical.ComponentPropertySummary).Value)
	assert.Equal(t, "Aula Magna A", ev.GetProperty(ical.ComponentPropertyLocation).Value)

	desc := ev.GetProperty(ical.ComponentPropertyDescription).Value
	for _, want := range []string{"Bianchi", "PIT", "2", "B"} {
		assert.Contains(t, desc, want)
	}
	assert.Equal(t, now.UTC().Format("20060102T150405Z"), ev.GetProperty(ical.ComponentPropertyDtstamp).Value)
}

func TestExportTodayIsInclusive(t *testing.T) {
	loc := rome(t)
	now := time.Date(2025, time.October, 13, 7, 30, 0, 0, loc)
	e := NewExporter(Options{Location: loc, Now: func() time.Time { return now }})

	start, end := e.FirstOccurrence(mondayLesson(), now)
	assert.Equal(t, time.Date(2025, time.October, 13, 10, 0, 0, 0, loc), start)
	assert.Equal(t, 90*time.Minute, end.Sub(start))
}

func TestUIDStableAcrossRuns(t *testing.T) {
	loc := rome(t)
	first := time.Date(2025, time.October, 15, 9, 0, 0, 0, loc)
	later := first.Add(3 * time.Hour)
	lesson := mondayLesson()

	a := NewExporter(Options{Location: loc, Now: func() time.Time { return first }})
	b := NewExporter(Options{Location: loc, Now: func() time.Time { return later }})

	sa, _ := a.FirstOccurrence(lesson, first)
	sb, _ := b.FirstOccurrence(lesson, later)
	assert.Equal(t, a.UID(lesson, sa), b.UID(lesson, sb))
}

func TestOccurrencesKeepWallClockAcrossDST(t *testing.T) {
	loc := rome(t)
	now := time.Date(2025, time.October, 15, 10, 0, 0, 0, loc)
	e := NewExporter(Options{Location: loc, Now: func() time.Time { return now }})

	occ, err := e.Occurrences(mondayLesson())
	require.NoError(t, err)
	require.Len(t, occ, 16)

	assert.Equal(t, time.Date(2025, time.October, 20, 10, 0, 0, 0, loc), occ[0].Start)
	for _, o := range occ {
		assert.Equal(t, time.Monday, o.Start.Weekday())
		assert.Equal(t, 10, o.Start.Hour())
		assert.Equal(t, 90*time.Minute, o.End.Sub(o.Start))
		assert.False(t, o.Start.After(e.Until(now)))
	}
	assert.Equal(t, time.Date(2026, time.February, 2, 10, 0, 0, 0, loc), occ[15].Start)
}

func TestExportEmptyCalendar(t *testing.T) {
	e := NewExporter(Options{})
	out := string(e.Export(nil))
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "END:VCALENDAR")
	assert.NotContains(t, out, "BEGIN:VEVENT")
}

func TestExportLinesEndInCRLF(t *testing.T) {
	loc := rome(t)
	now := time.Date(2025, time.October, 15, 10, 0, 0, 0, loc)
	e := NewExporter(Options{Location: loc, Now: func() time.Time { return now }})

	for _, lessons := range [][]models.Lesson{nil, {mondayLesson()}} {
		out := string(e.Export(lessons))
		require.True(t, strings.HasSuffix(out, "END:VCALENDAR\r\n"))
		lines := strings.Split(out, "\n")
		for i, line := range lines[:len(lines)-1] {
			assert.True(t, strings.HasSuffix(line, "\r"), "line %d %q has a bare LF", i, line)
		}
	}
}

func TestExportDefinesTimezone(t *testing.T) {
	loc := rome(t)
	now := time.Date(2025, time.October, 15, 10, 0, 0, 0, loc)
	e := NewExporter(Options{Location: loc, Now: func() time.Time { return now }})

	out := e.Export([]models.Lesson{mondayLesson()})
	assert.Contains(t, string(out), "X-WR-TIMEZONE:Europe/Rome\r\n")
	assert.Contains(t, string(out), "DTSTART;TZID=Europe/Rome:20251020T100000\r\n")

	cal, err := ical.ParseCalendar(bytes.NewReader(out))
	require.NoError(t, err)
	zones := cal.Timezones()
	require.Len(t, zones, 1)
	assert.Equal(t, "Europe/Rome", zones[0].GetProperty(ical.ComponentPropertyTzid).Value)

	obs := zones[0].SubComponents()
	require.Len(t, obs, 2)

	summer, ok := obs[0].(*ical.Daylight)
	require.True(t, ok)
	assert.Equal(t, "+0200", summer.GetProperty(ical.ComponentProperty(ical.PropertyTzoffsetto)).Value)

	winter, ok := obs[1].(*ical.Standard)
	require.True(t, ok)
	assert.Equal(t, "20251026T030000", winter.GetProperty(ical.ComponentPropertyDtStart).Value)
	assert.Equal(t, "+0200", winter.GetProperty(ical.ComponentProperty(ical.PropertyTzoffsetfrom)).Value)
	assert.Equal(t, "+0100", winter.GetProperty(ical.ComponentProperty(ical.PropertyTzoffsetto)).Value)
	assert.Equal(t, "CET", winter.GetProperty(ical.ComponentProperty(ical.PropertyTzname)).Value)
}

func TestFormatOffset(t *testing.T) {
	assert.Equal(t, "+0100", formatOffset(3600))
	assert.Equal(t, "-0330", formatOffset(-(3*3600 + 30*60)))
	assert.Equal(t, "+0000", formatOffset(0))
}

func TestDescribeSkipsMissingFields(t *testing.T) {
	lesson := models.Lesson{Professor: "Verdi"}
	assert.Equal(t, "Docente: Verdi", describe(lesson))
}
