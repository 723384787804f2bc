package service

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lesson-calendar-api/internal/grid"
	"github.com/noah-isme/lesson-calendar-api/internal/models"
	"github.com/noah-isme/lesson-calendar-api/internal/timegrid"
	appErrors "github.com/noah-isme/lesson-calendar-api/pkg/errors"
)

func rome(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Rome")
	require.NoError(t, err)
	return loc
}

func newTestDayViewService(t *testing.T, lessons *fakeLessonRepo, adj *fakeAdjustmentRepo) *DayViewService {
	t.Helper()
	cat := testCatalog(t)
	engine := grid.NewEngine(timegrid.Default(), cat.Normalizer())
	svc := NewDayViewService(lessons, adj, cat, engine, NewMetricsService(), rome(t), nil)
	svc.now = func() time.Time { return time.Date(2025, 10, 1, 8, 0, 0, 0, rome(t)) }
	return svc
}

func monday(t *testing.T) time.Time {
	return time.Date(2025, 10, 13, 0, 0, 0, 0, rome(t))
}

func dayFixture() *fakeLessonRepo {
	return newFakeLessonRepo(
		models.Lesson{ID: "a", Title: "Disegno", StartTime: "09:00", EndTime: "10:30", DayOfWeek: 1, Classroom: "Aula 1", Professor: "Rossi", Course: strPtr("PIT"), Year: intPtr(1)},
		models.Lesson{ID: "b", Title: "Modellato", StartTime: "10:00", EndTime: "12:00", DayOfWeek: 1, Classroom: "Aula Magna A", Professor: "Bianchi"},
		models.Lesson{ID: "c", Title: "Camera oscura", StartTime: "09:00", EndTime: "11:00", DayOfWeek: 1, Classroom: "Fotografia", Professor: "Gallo"},
		models.Lesson{ID: "d", Title: "Seminario", StartTime: "09:00", EndTime: "10:00", DayOfWeek: 1, Classroom: "Aula 99", Professor: "Neri"},
		models.Lesson{ID: "f", Title: "Anatomia", StartTime: "14:00", EndTime: "15:00", DayOfWeek: 1, Classroom: "Aula 2", Professor: "Verdi"},
		models.Lesson{ID: "g", Title: "Tuesday only", StartTime: "09:00", EndTime: "10:00", DayOfWeek: 2, Classroom: "Aula 1", Professor: "Rossi"},
	)
}

func TestDayViewAppliesAdjustments(t *testing.T) {
	adj := newFakeAdjustmentRepo()
	adj.forDate = &models.Adjustments{
		Absences:         []models.Absence{{ID: "x", Professor: "verdi", Date: "2025-10-13", Reason: strPtr("malattia")}},
		ClassroomChanges: []models.ClassroomChange{{ID: "y", LessonID: "a", Date: "2025-10-13", Classroom: "Aula 2"}},
		Makeups:          []models.MakeupLesson{{ID: "m1", Title: "Recupero", Date: "2025-10-13", StartTime: "16:00", EndTime: "17:00", Classroom: "Aula 1", Professor: "Verdi"}},
	}
	svc := newTestDayViewService(t, dayFixture(), adj)

	view, err := svc.DayView(context.Background(), DayViewRequest{Date: monday(t), Location: "centrale"})
	require.NoError(t, err)

	assert.Equal(t, "2025-10-13", view.Date)
	assert.Equal(t, 1, view.Weekday)
	assert.Equal(t, []string{"Aula 1", "Aula 2", "Aula Magna", "Design LAB", "Pittura", "Scultura"}, view.Classrooms)
	require.Len(t, view.Cells, 24)

	moved := view.Cells[0][1]
	require.Equal(t, grid.KindEvent, moved.Kind)
	assert.Equal(t, "a", moved.Lesson.ID)
	assert.Equal(t, 3, moved.Span)
	assert.Equal(t, grid.KindEmpty, view.Cells[0][0].Kind)

	magna := view.Cells[2][2]
	require.Equal(t, grid.KindEvent, magna.Kind)
	assert.Equal(t, "b", magna.Lesson.ID)
	assert.Equal(t, 4, magna.Span)

	makeup := view.Cells[14][0]
	require.Equal(t, grid.KindEvent, makeup.Kind)
	assert.Equal(t, models.MakeupIDPrefix+"m1", makeup.Lesson.ID)

	assert.Equal(t, grid.KindEmpty, view.Cells[10][1].Kind, "cancelled lesson must not be placed")
	require.Len(t, view.Cancelled, 1)
	assert.Equal(t, "f", view.Cancelled[0].LessonID)
	require.Len(t, view.Moved, 1)
	assert.Equal(t, MovedLesson{LessonID: "a", Title: "Disegno", From: "Aula 1", To: "Aula 2"}, view.Moved[0])

	assert.Equal(t, []grid.Skip{{LessonID: "d", Reason: grid.SkipUnknownClassroom}}, view.Skipped)
	assert.Nil(t, view.NowMarker)
}

func TestDayViewOtherLocation(t *testing.T) {
	svc := newTestDayViewService(t, dayFixture(), newFakeAdjustmentRepo())

	view, err := svc.DayView(context.Background(), DayViewRequest{Date: monday(t), Location: "lungarno", Authenticated: true})
	require.NoError(t, err)
	assert.True(t, view.Authenticated)
	assert.Equal(t, "Sede Lungarno", view.LocationName)
	assert.Equal(t, 1, countEvents(view))
	assert.Equal(t, "c", view.Cells[0][2].Lesson.ID)
}

func TestDayViewCourseFilter(t *testing.T) {
	adj := newFakeAdjustmentRepo()
	adj.forDate = &models.Adjustments{
		Makeups: []models.MakeupLesson{{ID: "m1", Title: "Recupero", Date: "2025-10-13", StartTime: "16:00", EndTime: "17:00", Classroom: "Aula 1", Professor: "Verdi"}},
	}
	svc := newTestDayViewService(t, dayFixture(), adj)

	view, err := svc.DayView(context.Background(), DayViewRequest{Date: monday(t), Location: "centrale", Course: strPtr("PIT"), Year: intPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, 1, countEvents(view))
	assert.Equal(t, "a", view.Cells[0][0].Lesson.ID)
}

func TestDayViewNowMarker(t *testing.T) {
	svc := newTestDayViewService(t, dayFixture(), newFakeAdjustmentRepo())
	svc.now = func() time.Time { return time.Date(2025, 10, 13, 11, 15, 0, 0, rome(t)) }

	view, err := svc.DayView(context.Background(), DayViewRequest{Date: monday(t), Location: "centrale"})
	require.NoError(t, err)
	require.NotNil(t, view.NowMarker)
	assert.Equal(t, NowMarker{Time: "11:15", Offset: 4.5}, *view.NowMarker)

	svc.now = func() time.Time { return time.Date(2025, 10, 13, 22, 0, 0, 0, rome(t)) }
	view, err = svc.DayView(context.Background(), DayViewRequest{Date: monday(t), Location: "centrale"})
	require.NoError(t, err)
	assert.Nil(t, view.NowMarker)
}

func TestDayViewStorageFailureReturnsEmptyGrid(t *testing.T) {
	lessons := dayFixture()
	lessons.listErr = appErrors.Wrap(errors.New("timeout"), appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list lessons")
	svc := newTestDayViewService(t, lessons, newFakeAdjustmentRepo())

	view, err := svc.DayView(context.Background(), DayViewRequest{Date: monday(t), Location: "centrale"})
	assert.True(t, errors.Is(err, appErrors.ErrInternal))
	require.NotNil(t, view)
	assert.Len(t, view.Cells, 24)
	assert.Zero(t, countEvents(view))
	assert.NotNil(t, view.Cancelled)
}

func TestDayViewRejectsUnknownLocation(t *testing.T) {
	svc := newTestDayViewService(t, dayFixture(), newFakeAdjustmentRepo())

	view, err := svc.DayView(context.Background(), DayViewRequest{Date: monday(t), Location: "mars"})
	assert.Nil(t, view)
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func countEvents(view *DayView) int {
	return grid.Grid{Cells: view.Cells}.EventCount()
}
