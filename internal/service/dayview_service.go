package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/lesson-calendar-api/internal/catalog"
	"github.com/noah-isme/lesson-calendar-api/internal/grid"
	"github.com/noah-isme/lesson-calendar-api/internal/models"
	"github.com/noah-isme/lesson-calendar-api/internal/timegrid"
	appErrors "github.com/noah-isme/lesson-calendar-api/pkg/errors"
)

type lessonLister interface {
	List(ctx context.Context, filter models.LessonFilter) ([]models.Lesson, error)
}

type dateAdjustmentReader interface {
	ForDate(ctx context.Context, date string) (*models.Adjustments, error)
}

// DayViewRequest carries every input of a day grid explicitly.
type DayViewRequest struct {
	Date          time.Time
	Location      string
	Course        *string
	Year          *int
	Authenticated bool
}

// CancelledLesson is a lesson removed from the day by an absence.
type CancelledLesson struct {
	LessonID  string  `json:"lessonId"`
	Title     string  `json:"title"`
	Professor string  `json:"professor"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Classroom string  `json:"classroom"`
	Reason    *string `json:"reason,omitempty"`
}

// MovedLesson is a lesson relocated for the day by a classroom change.
type MovedLesson struct {
	LessonID string  `json:"lessonId"`
	Title    string  `json:"title"`
	From     string  `json:"from"`
	To       string  `json:"to"`
	Reason   *string `json:"reason,omitempty"`
}

// NowMarker positions the current time on today's grid.
type NowMarker struct {
	Time   string  `json:"time"`
	Offset float64 `json:"offset"`
}

// DayView is the laid out day returned to clients.
type DayView struct {
	Date          string            `json:"date"`
	Location      string            `json:"location"`
	LocationName  string            `json:"locationName"`
	Weekday       int               `json:"weekday"`
	Slots         []string          `json:"slots"`
	Classrooms    []string          `json:"classrooms"`
	Cells         [][]grid.Cell     `json:"cells"`
	Skipped       []grid.Skip       `json:"skipped"`
	Cancelled     []CancelledLesson `json:"cancelled"`
	Moved         []MovedLesson     `json:"moved"`
	NowMarker     *NowMarker        `json:"nowMarker,omitempty"`
	Authenticated bool              `json:"authenticated"`
}

// DayViewService builds day grids from lessons and the adjustments of a date.
type DayViewService struct {
	lessons     lessonLister
	adjustments dateAdjustmentReader
	catalog     *catalog.Catalog
	engine      *grid.Engine
	metrics     *MetricsService
	location    *time.Location
	now         func() time.Time
	logger      *zap.Logger
}

// NewDayViewService constructs the day view pipeline.
func NewDayViewService(lessons lessonLister, adjustments dateAdjustmentReader, cat *catalog.Catalog, engine *grid.Engine, metrics *MetricsService, loc *time.Location, logger *zap.Logger) *DayViewService {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DayViewService{
		lessons:     lessons,
		adjustments: adjustments,
		catalog:     cat,
		engine:      engine,
		metrics:     metrics,
		location:    loc,
		now:         time.Now,
		logger:      logger,
	}
}

// Location returns the school timezone.
func (s *DayViewService) Location() *time.Location {
	return s.location
}

// Today returns the current date at midnight in the school timezone.
func (s *DayViewService) Today() time.Time {
	now := s.now().In(s.location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)
}

// DayView lays out req.Date for req.Location. When storage fails the returned
// view is an empty grid alongside the error.
func (s *DayViewService) DayView(ctx context.Context, req DayViewRequest) (*DayView, error) {
	loc, ok := s.catalog.Location(req.Location)
	if !ok {
		return nil, appErrors.Validation("invalid day request", map[string]string{"location": "unknown location"})
	}
	if req.Course != nil {
		if _, ok := s.catalog.Course(strings.ToUpper(*req.Course)); !ok {
			return nil, appErrors.Validation("invalid day request", map[string]string{"course": "unknown course"})
		}
	}

	date := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, s.location)
	weekday := int(date.Weekday())
	classrooms := s.catalog.VisibleClassrooms(loc.ID)

	view := s.emptyView(date, loc, classrooms, req.Authenticated)

	lessons, err := s.lessons.List(ctx, models.LessonFilter{Course: req.Course, Year: req.Year, DayOfWeek: &weekday})
	if err != nil {
		return view, err
	}
	start := time.Now()
	adj, err := s.adjustments.ForDate(ctx, date.Format(models.DateLayout))
	s.metrics.ObserveDBQuery("adjustments_for_date", time.Since(start))
	if err != nil {
		return view, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load adjustments")
	}

	lessons, view.Cancelled, view.Moved = applyAdjustments(lessons, adj)
	for _, m := range adj.Makeups {
		if matchesFilter(m.Course, m.Year, req.Course, req.Year) {
			lessons = append(lessons, m.AsLesson(weekday))
		}
	}

	layout := s.engine.Layout(s.atLocation(lessons, loc.ID), date, classrooms)
	view.Cells = layout.Cells
	view.Skipped = layout.Skipped
	s.metrics.RecordLayout(loc.ID, layout)
	for _, skip := range layout.Skipped {
		s.logger.Debug("lesson not placed", zap.String("lesson_id", skip.LessonID), zap.String("reason", string(skip.Reason)))
	}

	s.markNow(view, date)
	return view, nil
}

func (s *DayViewService) emptyView(date time.Time, loc catalog.Location, classrooms []string, authenticated bool) *DayView {
	layout := s.engine.Layout(nil, date, classrooms)
	return &DayView{
		Date:          date.Format(models.DateLayout),
		Location:      loc.ID,
		LocationName:  loc.Name,
		Weekday:       layout.Weekday,
		Slots:         layout.Slots,
		Classrooms:    layout.Classrooms,
		Cells:         layout.Cells,
		Skipped:       []grid.Skip{},
		Cancelled:     []CancelledLesson{},
		Moved:         []MovedLesson{},
		Authenticated: authenticated,
	}
}

// atLocation keeps lessons held at the location plus lessons in classrooms no
// location knows, so the latter surface as skipped.
func (s *DayViewService) atLocation(lessons []models.Lesson, locationID string) []models.Lesson {
	out := make([]models.Lesson, 0, len(lessons))
	for _, l := range lessons {
		site, known := s.catalog.LocationOf(l.Classroom)
		if !known || site == locationID {
			out = append(out, l)
		}
	}
	return out
}

func (s *DayViewService) markNow(view *DayView, date time.Time) {
	now := s.now().In(s.location)
	if now.Year() != date.Year() || now.YearDay() != date.YearDay() {
		return
	}
	minutes := now.Hour()*60 + now.Minute()
	offset, ok := s.engine.Window().Offset(minutes)
	if !ok {
		return
	}
	view.NowMarker = &NowMarker{Time: timegrid.MinutesToTime(minutes), Offset: offset}
}

// applyAdjustments drops lessons of absent professors and relocates lessons
// with a classroom change. Makeups are not cancelled by absences.
func applyAdjustments(lessons []models.Lesson, adj *models.Adjustments) ([]models.Lesson, []CancelledLesson, []MovedLesson) {
	cancelled := []CancelledLesson{}
	moved := []MovedLesson{}
	if adj == nil {
		return lessons, cancelled, moved
	}

	absent := make(map[string]models.Absence, len(adj.Absences))
	for _, a := range adj.Absences {
		absent[strings.ToLower(strings.TrimSpace(a.Professor))] = a
	}
	changes := make(map[string]models.ClassroomChange, len(adj.ClassroomChanges))
	for _, cc := range adj.ClassroomChanges {
		changes[cc.LessonID] = cc
	}

	kept := make([]models.Lesson, 0, len(lessons))
	for _, l := range lessons {
		if a, ok := absent[strings.ToLower(strings.TrimSpace(l.Professor))]; ok {
			cancelled = append(cancelled, CancelledLesson{
				LessonID:  l.ID,
				Title:     l.Title,
				Professor: l.Professor,
				StartTime: l.StartTime,
				EndTime:   l.EndTime,
				Classroom: l.Classroom,
				Reason:    a.Reason,
			})
			continue
		}
		if cc, ok := changes[l.ID]; ok {
			moved = append(moved, MovedLesson{LessonID: l.ID, Title: l.Title, From: l.Classroom, To: cc.Classroom, Reason: cc.Reason})
			l.Classroom = cc.Classroom
		}
		kept = append(kept, l)
	}
	return kept, cancelled, moved
}

func matchesFilter(course *string, year *int, wantCourse *string, wantYear *int) bool {
	if wantCourse != nil && (course == nil || !strings.EqualFold(*course, *wantCourse)) {
		return false
	}
	if wantYear != nil && (year == nil || *year != *wantYear) {
		return false
	}
	return true
}
