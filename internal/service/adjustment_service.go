package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/lesson-calendar-api/internal/catalog"
	"github.com/noah-isme/lesson-calendar-api/internal/models"
	"github.com/noah-isme/lesson-calendar-api/internal/repository"
	appErrors "github.com/noah-isme/lesson-calendar-api/pkg/errors"
)

type adjustmentRepository interface {
	ListAbsences(ctx context.Context, rng models.DateRange) ([]models.Absence, error)
	FindAbsence(ctx context.Context, id string) (*models.Absence, error)
	CreateAbsence(ctx context.Context, a *models.Absence) error
	UpdateAbsence(ctx context.Context, a *models.Absence) error
	DeleteAbsence(ctx context.Context, id string) error

	ListMakeups(ctx context.Context, rng models.DateRange) ([]models.MakeupLesson, error)
	FindMakeup(ctx context.Context, id string) (*models.MakeupLesson, error)
	CreateMakeup(ctx context.Context, m *models.MakeupLesson) error
	UpdateMakeup(ctx context.Context, m *models.MakeupLesson) error
	DeleteMakeup(ctx context.Context, id string) error

	ListClassroomChanges(ctx context.Context, rng models.DateRange) ([]models.ClassroomChange, error)
	FindClassroomChange(ctx context.Context, id string) (*models.ClassroomChange, error)
	CreateClassroomChange(ctx context.Context, cc *models.ClassroomChange) error
	UpdateClassroomChange(ctx context.Context, cc *models.ClassroomChange) error
	DeleteClassroomChange(ctx context.Context, id string) error
}

type lessonFinder interface {
	FindByID(ctx context.Context, id string) (*models.Lesson, error)
}

// AdjustmentService manages absences, makeup lessons and classroom changes.
type AdjustmentService struct {
	repo      adjustmentRepository
	lessons   lessonFinder
	catalog   *catalog.Catalog
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAdjustmentService constructs the adjustment service.
func NewAdjustmentService(repo adjustmentRepository, lessons lessonFinder, cat *catalog.Catalog, validate *validator.Validate, logger *zap.Logger) *AdjustmentService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdjustmentService{repo: repo, lessons: lessons, catalog: cat, validator: validate, logger: logger}
}

// CheckRange validates listing bounds.
func CheckRange(rng models.DateRange) error {
	details := map[string]string{}
	var from, to string
	if rng.From != "" {
		if d, err := ParseDate(rng.From, nil); err != nil {
			details["from"] = "must be a date formatted as YYYY-MM-DD"
		} else {
			from = d.Format(models.DateLayout)
		}
	}
	if rng.To != "" {
		if d, err := ParseDate(rng.To, nil); err != nil {
			details["to"] = "must be a date formatted as YYYY-MM-DD"
		} else {
			to = d.Format(models.DateLayout)
		}
	}
	if from != "" && to != "" && from > to {
		details["to"] = "must not be before from"
	}
	if len(details) > 0 {
		return appErrors.Validation("invalid date range", details)
	}
	return nil
}

// ListAbsences returns absences within rng.
func (s *AdjustmentService) ListAbsences(ctx context.Context, rng models.DateRange) ([]models.Absence, error) {
	if err := CheckRange(rng); err != nil {
		return nil, err
	}
	items, err := s.repo.ListAbsences(ctx, rng)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list absences")
	}
	return items, nil
}

// CreateAbsence records an absence.
func (s *AdjustmentService) CreateAbsence(ctx context.Context, req models.AbsenceRequest) (*models.Absence, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid absence payload")
	}
	absence := &models.Absence{Professor: strings.TrimSpace(req.Professor), Date: req.Date, Reason: blankToNil(req.Reason)}
	if err := s.repo.CreateAbsence(ctx, absence); err != nil {
		return nil, writeError(err, "absence", "failed to create absence")
	}
	return absence, nil
}

// UpdateAbsence replaces an absence.
func (s *AdjustmentService) UpdateAbsence(ctx context.Context, id string, req models.AbsenceRequest) (*models.Absence, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid absence payload")
	}
	absence, err := s.repo.FindAbsence(ctx, id)
	if err != nil {
		return nil, readError(err, "absence not found", "failed to load absence")
	}
	absence.Professor = strings.TrimSpace(req.Professor)
	absence.Date = req.Date
	absence.Reason = blankToNil(req.Reason)
	if err := s.repo.UpdateAbsence(ctx, absence); err != nil {
		return nil, writeError(err, "absence", "failed to update absence")
	}
	return absence, nil
}

// DeleteAbsence removes an absence.
func (s *AdjustmentService) DeleteAbsence(ctx context.Context, id string) error {
	if err := s.repo.DeleteAbsence(ctx, id); err != nil {
		return writeError(err, "absence", "failed to delete absence")
	}
	return nil
}

// ListMakeups returns makeup lessons within rng.
func (s *AdjustmentService) ListMakeups(ctx context.Context, rng models.DateRange) ([]models.MakeupLesson, error) {
	if err := CheckRange(rng); err != nil {
		return nil, err
	}
	items, err := s.repo.ListMakeups(ctx, rng)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list makeup lessons")
	}
	return items, nil
}

// CreateMakeup schedules a makeup lesson.
func (s *AdjustmentService) CreateMakeup(ctx context.Context, req models.MakeupLessonRequest) (*models.MakeupLesson, error) {
	makeup := &models.MakeupLesson{}
	if err := s.fillMakeup(ctx, makeup, req); err != nil {
		return nil, err
	}
	if err := s.repo.CreateMakeup(ctx, makeup); err != nil {
		return nil, writeError(err, "makeup lesson", "failed to create makeup lesson")
	}
	return makeup, nil
}

// UpdateMakeup replaces a makeup lesson.
func (s *AdjustmentService) UpdateMakeup(ctx context.Context, id string, req models.MakeupLessonRequest) (*models.MakeupLesson, error) {
	makeup, err := s.repo.FindMakeup(ctx, id)
	if err != nil {
		return nil, readError(err, "makeup lesson not found", "failed to load makeup lesson")
	}
	if err := s.fillMakeup(ctx, makeup, req); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateMakeup(ctx, makeup); err != nil {
		return nil, writeError(err, "makeup lesson", "failed to update makeup lesson")
	}
	return makeup, nil
}

// DeleteMakeup removes a makeup lesson.
func (s *AdjustmentService) DeleteMakeup(ctx context.Context, id string) error {
	if err := s.repo.DeleteMakeup(ctx, id); err != nil {
		return writeError(err, "makeup lesson", "failed to delete makeup lesson")
	}
	return nil
}

func (s *AdjustmentService) fillMakeup(ctx context.Context, m *models.MakeupLesson, req models.MakeupLessonRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return validationError(err, "invalid makeup lesson payload")
	}
	rules := newScheduleRules(s.catalog)
	rules.times(req.StartTime, req.EndTime)
	course := upperOrNil(req.Course)
	rules.courseYear(course, req.Year)
	if err := rules.err("invalid makeup lesson"); err != nil {
		return err
	}
	if req.LessonID != nil {
		if err := s.requireLesson(ctx, *req.LessonID); err != nil {
			return err
		}
	}

	m.LessonID = req.LessonID
	m.Title = strings.TrimSpace(req.Title)
	m.Date = req.Date
	m.StartTime = req.StartTime
	m.EndTime = req.EndTime
	m.Classroom = strings.TrimSpace(req.Classroom)
	m.Professor = strings.TrimSpace(req.Professor)
	m.Course = course
	m.Year = req.Year
	m.Group = blankToNil(req.Group)
	m.Notes = blankToNil(req.Notes)
	return nil
}

// ListClassroomChanges returns classroom changes within rng.
func (s *AdjustmentService) ListClassroomChanges(ctx context.Context, rng models.DateRange) ([]models.ClassroomChange, error) {
	if err := CheckRange(rng); err != nil {
		return nil, err
	}
	items, err := s.repo.ListClassroomChanges(ctx, rng)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classroom changes")
	}
	return items, nil
}

// CreateClassroomChange moves a lesson for one date.
func (s *AdjustmentService) CreateClassroomChange(ctx context.Context, req models.ClassroomChangeRequest) (*models.ClassroomChange, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid classroom change payload")
	}
	if err := s.requireLesson(ctx, req.LessonID); err != nil {
		return nil, err
	}
	change := &models.ClassroomChange{
		LessonID:  req.LessonID,
		Date:      req.Date,
		Classroom: strings.TrimSpace(req.Classroom),
		Reason:    blankToNil(req.Reason),
	}
	if err := s.repo.CreateClassroomChange(ctx, change); err != nil {
		return nil, writeError(err, "classroom change", "failed to create classroom change")
	}
	return change, nil
}

// UpdateClassroomChange replaces a classroom change.
func (s *AdjustmentService) UpdateClassroomChange(ctx context.Context, id string, req models.ClassroomChangeRequest) (*models.ClassroomChange, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid classroom change payload")
	}
	change, err := s.repo.FindClassroomChange(ctx, id)
	if err != nil {
		return nil, readError(err, "classroom change not found", "failed to load classroom change")
	}
	if err := s.requireLesson(ctx, req.LessonID); err != nil {
		return nil, err
	}
	change.LessonID = req.LessonID
	change.Date = req.Date
	change.Classroom = strings.TrimSpace(req.Classroom)
	change.Reason = blankToNil(req.Reason)
	if err := s.repo.UpdateClassroomChange(ctx, change); err != nil {
		return nil, writeError(err, "classroom change", "failed to update classroom change")
	}
	return change, nil
}

// DeleteClassroomChange removes a classroom change.
func (s *AdjustmentService) DeleteClassroomChange(ctx context.Context, id string) error {
	if err := s.repo.DeleteClassroomChange(ctx, id); err != nil {
		return writeError(err, "classroom change", "failed to delete classroom change")
	}
	return nil
}

func (s *AdjustmentService) requireLesson(ctx context.Context, id string) error {
	if _, err := s.lessons.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Validation("invalid lesson reference", map[string]string{"lessonId": "lesson does not exist"})
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load lesson")
	}
	return nil
}

func readError(err error, notFound, internal string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, notFound)
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, internal)
}

func writeError(err error, what, internal string) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return appErrors.Clone(appErrors.ErrNotFound, what+" not found")
	case errors.Is(err, repository.ErrDuplicate):
		return appErrors.Clone(appErrors.ErrConflict, what+" already exists for this date")
	default:
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, internal)
	}
}
