package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lesson-calendar-api/internal/ics"
	appErrors "github.com/noah-isme/lesson-calendar-api/pkg/errors"
)

func newTestExportService(t *testing.T) (*CalendarExportService, *fakeLessonRepo) {
	t.Helper()
	lessons := dayFixture()
	days := newTestDayViewService(t, lessons, newFakeAdjustmentRepo())
	exporter := ics.NewExporter(ics.Options{
		Location: rome(t),
		Now:      func() time.Time { return time.Date(2025, 10, 1, 8, 0, 0, 0, rome(t)) },
	})
	return NewCalendarExportService(lessons, days, testCatalog(t), exporter, NewMetricsService(), nil), lessons
}

func TestCalendarExportICSFiltersLocation(t *testing.T) {
	svc, _ := newTestExportService(t)

	file, err := svc.ICS(context.Background(), ExportFilter{Location: "lungarno"})
	require.NoError(t, err)
	assert.Equal(t, "text/calendar; charset=utf-8", file.ContentType)
	assert.Equal(t, "lezioni-lungarno.ics", file.Filename)

	cal, err := ical.ParseCalendar(bytes.NewReader(file.Body))
	require.NoError(t, err)
	events := cal.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "Camera oscura", events[0].GetProperty(ical.ComponentPropertySummary).Value)
}

func TestCalendarExportICSAllLessons(t *testing.T) {
	svc, lessons := newTestExportService(t)

	file, err := svc.ICS(context.Background(), ExportFilter{})
	require.NoError(t, err)
	cal, err := ical.ParseCalendar(bytes.NewReader(file.Body))
	require.NoError(t, err)
	assert.Len(t, cal.Events(), len(lessons.lessons))
}

func TestCalendarExportICSRejectsBadFilters(t *testing.T) {
	svc, _ := newTestExportService(t)

	_, err := svc.ICS(context.Background(), ExportFilter{Location: "mars"})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
	_, err = svc.ICS(context.Background(), ExportFilter{Year: intPtr(1)})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestCalendarExportDayCSV(t *testing.T) {
	svc, _ := newTestExportService(t)

	file, err := svc.Day(context.Background(), DayViewRequest{Date: monday(t), Location: "centrale"}, "csv")
	require.NoError(t, err)
	assert.Equal(t, "orario-centrale-2025-10-13.csv", file.Filename)

	records, err := csv.NewReader(bytes.NewReader(file.Body)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 25)
	assert.Equal(t, []string{"Ora", "Aula 1", "Aula 2", "Aula Magna", "Design LAB", "Pittura", "Scultura"}, records[0])
	assert.Equal(t, "09:00", records[1][0])
	assert.Equal(t, "Disegno - Rossi - PIT 1", records[1][1])
	assert.Equal(t, "Disegno - Rossi - PIT 1", records[3][1])
	assert.Equal(t, "", records[4][1])
}

func TestCalendarExportDayPDF(t *testing.T) {
	svc, _ := newTestExportService(t)

	file, err := svc.Day(context.Background(), DayViewRequest{Date: monday(t), Location: "centrale"}, "PDF")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Body, []byte("%PDF")))
}

func TestCalendarExportDayRejectsFormat(t *testing.T) {
	svc, _ := newTestExportService(t)

	_, err := svc.Day(context.Background(), DayViewRequest{Date: monday(t), Location: "centrale"}, "xlsx")
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}
