// Package ics serializes weekly lesson templates as iCalendar recurring events
// bounded by an explicit horizon.
package ics

import (
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"github.com/noah-isme/lesson-calendar-api/internal/models"
	"github.com/noah-isme/lesson-calendar-api/internal/timegrid"
)

// DefaultHorizon is roughly one academic semester.
const DefaultHorizon = 16 * 7 * 24 * time.Hour

const (
	utcStamp   = "20060102T150405Z"
	localStamp = "20060102T150405"
)

// Options configures an Exporter. Zero values fall back to defaults.
type Options struct {
	Horizon      time.Duration
	Location     *time.Location
	ProductID    string
	UIDDomain    string
	CalendarName string
	Now          func() time.Time
}

// Exporter turns lesson templates into calendar events.
type Exporter struct {
	horizon      time.Duration
	location     *time.Location
	productID    string
	uidDomain    string
	calendarName string
	now          func() time.Time
}

// Occurrence is one concrete instance of a lesson.
type Occurrence struct {
	LessonID string    `json:"lessonId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// NewExporter builds an exporter from options.
func NewExporter(opts Options) *Exporter {
	if opts.Horizon <= 0 {
		opts.Horizon = DefaultHorizon
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.ProductID == "" {
		opts.ProductID = "-//Lesson Calendar//IT"
	}
	if opts.UIDDomain == "" {
		opts.UIDDomain = "calendar.local"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Exporter{
		horizon:      opts.Horizon,
		location:     opts.Location,
		productID:    opts.ProductID,
		uidDomain:    opts.UIDDomain,
		calendarName: opts.CalendarName,
		now:          opts.Now,
	}
}

// Export serializes lessons into a CRLF separated VCALENDAR document.
func (e *Exporter) Export(lessons []models.Lesson) []byte {
	return []byte(e.Calendar(lessons).Serialize(ical.WithNewLineWindows))
}

// Calendar builds the calendar with one recurring VEVENT per lesson. Every
// event of a run shares the same "now", so UNTIL is identical across events.
// Local DTSTART/DTEND carry the IANA TZID, defined by the VTIMEZONE emitted
// for the export window and repeated in X-WR-TIMEZONE.
func (e *Exporter) Calendar(lessons []models.Lesson) *ical.Calendar {
	now := e.now()

	cal := ical.NewCalendar()
	cal.SetProductId(e.productID)
	cal.SetMethod(ical.MethodPublish)
	cal.SetXWRTimezone(e.location.String())
	if e.calendarName != "" {
		cal.SetXWRCalName(e.calendarName)
	}

	until := e.Until(now)
	addTimezone(cal, e.location, now, until)

	rule := rrule.ROption{Freq: rrule.WEEKLY, Until: until}
	recurrence := rule.RRuleString()

	for _, lesson := range lessons {
		start, end := e.FirstOccurrence(lesson, now)

		ev := cal.AddEvent(e.UID(lesson, start))
		ev.SetDtStampTime(now.UTC())
		tzid := &ical.KeyValues{Key: string(ical.ParameterTzid), Value: []string{e.location.String()}}
		ev.SetProperty(ical.ComponentPropertyDtStart, start.Format(localStamp), tzid)
		ev.SetProperty(ical.ComponentPropertyDtEnd, end.Format(localStamp), tzid)
		ev.AddProperty(ical.ComponentPropertyRrule, recurrence)
		ev.SetSummary(lesson.Title)
		ev.SetDescription(describe(lesson))
		ev.SetLocation(lesson.Classroom)
	}

	return cal
}

// Until returns the recurrence bound for an export run at now.
func (e *Exporter) Until(now time.Time) time.Time {
	return now.Add(e.horizon).UTC()
}

// UID is stable across runs that resolve the same first occurrence.
func (e *Exporter) UID(lesson models.Lesson, firstStart time.Time) string {
	return fmt.Sprintf("%s-%s@%s", lesson.ID, firstStart.UTC().Format(utcStamp), e.uidDomain)
}

// FirstOccurrence combines the anchor date with the lesson times in the
// school timezone.
func (e *Exporter) FirstOccurrence(lesson models.Lesson, now time.Time) (time.Time, time.Time) {
	anchor := Anchor(now.In(e.location), lesson.DayOfWeek)
	return at(anchor, lesson.StartTime), at(anchor, lesson.EndTime)
}

// Occurrences expands a lesson between its first occurrence and the horizon.
func (e *Exporter) Occurrences(lesson models.Lesson) ([]Occurrence, error) {
	now := e.now()
	start, end := e.FirstOccurrence(lesson, now)
	r, err := rrule.NewRRule(rrule.ROption{Freq: rrule.WEEKLY, Dtstart: start, Until: e.Until(now)})
	if err != nil {
		return nil, fmt.Errorf("build recurrence for %s: %w", lesson.ID, err)
	}

	duration := end.Sub(start)
	starts := r.All()
	out := make([]Occurrence, 0, len(starts))
	for _, s := range starts {
		s = s.In(e.location)
		out = append(out, Occurrence{LessonID: lesson.ID, Start: s, End: s.Add(duration)})
	}
	return out, nil
}

// Anchor returns midnight of the next date on or after now falling on
// weekday (0 = Sunday), in now's location.
func Anchor(now time.Time, weekday int) time.Time {
	ahead := (weekday - int(now.Weekday()) + 7) % 7
	y, m, d := now.Date()
	return time.Date(y, m, d+ahead, 0, 0, 0, 0, now.Location())
}

func at(day time.Time, clock string) time.Time {
	m := timegrid.TimeToMinutes(clock)
	y, mo, d := day.Date()
	return time.Date(y, mo, d, m/60, m%60, 0, 0, day.Location())
}

func describe(lesson models.Lesson) string {
	parts := []string{"Docente: " + lesson.Professor}
	if lesson.Course != nil && *lesson.Course != "" {
		parts = append(parts, "Corso: "+*lesson.Course)
	}
	if lesson.Year != nil {
		parts = append(parts, fmt.Sprintf("Anno: %d", *lesson.Year))
	}
	if lesson.Group != nil && *lesson.Group != "" {
		parts = append(parts, "Gruppo: "+*lesson.Group)
	}
	return strings.Join(parts, "\n")
}
