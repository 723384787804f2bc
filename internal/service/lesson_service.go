package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/lesson-calendar-api/internal/catalog"
	"github.com/noah-isme/lesson-calendar-api/internal/models"
	appErrors "github.com/noah-isme/lesson-calendar-api/pkg/errors"
)

type lessonRepository interface {
	List(ctx context.Context, filter models.LessonFilter) ([]models.Lesson, error)
	FindByID(ctx context.Context, id string) (*models.Lesson, error)
	FindSeries(ctx context.Context, lesson models.Lesson) ([]models.Lesson, error)
	Create(ctx context.Context, lessons []*models.Lesson) error
	Update(ctx context.Context, lessons []*models.Lesson) error
	Delete(ctx context.Context, id string) error
}

// LessonService manages weekly lesson templates.
type LessonService struct {
	repo      lessonRepository
	catalog   *catalog.Catalog
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewLessonService constructs the lesson service. cache may be nil.
func NewLessonService(repo lessonRepository, cat *catalog.Catalog, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *LessonService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LessonService{repo: repo, catalog: cat, cache: cache, validator: validate, logger: logger}
}

// List returns lessons matching filter, served from cache when possible.
func (s *LessonService) List(ctx context.Context, filter models.LessonFilter) ([]models.Lesson, error) {
	if filter.Course != nil {
		course := strings.ToUpper(strings.TrimSpace(*filter.Course))
		filter.Course = &course
	}

	key := LessonListKey(filter)
	var cached []models.Lesson
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	lessons, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list lessons")
	}
	s.cache.Set(ctx, key, lessons)
	return lessons, nil
}

// Get returns one lesson.
func (s *LessonService) Get(ctx context.Context, id string) (*models.Lesson, error) {
	lesson, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "lesson not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load lesson")
	}
	return lesson, nil
}

// Create stores one lesson per requested weekday. Lessons created together
// share a series id.
func (s *LessonService) Create(ctx context.Context, req models.CreateLessonRequest) ([]models.Lesson, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid lesson payload")
	}

	days := req.DaysOfWeek
	if len(days) == 0 {
		if req.DayOfWeek == nil {
			return nil, appErrors.Validation("invalid lesson payload", map[string]string{"dayOfWeek": "is required"})
		}
		days = []int{*req.DayOfWeek}
	}

	seriesID := uuid.NewString()
	lessons := make([]*models.Lesson, 0, len(days))
	for _, day := range days {
		lesson := &models.Lesson{
			SeriesID:  &seriesID,
			Title:     strings.TrimSpace(req.Title),
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			DayOfWeek: day,
			Classroom: strings.TrimSpace(req.Classroom),
			Professor: strings.TrimSpace(req.Professor),
			Course:    upperOrNil(req.Course),
			Year:      req.Year,
			Group:     blankToNil(req.Group),
			Notes:     blankToNil(req.Notes),
		}
		if err := checkLesson(s.catalog, *lesson); err != nil {
			return nil, err
		}
		lessons = append(lessons, lesson)
	}

	if err := s.repo.Create(ctx, lessons); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create lesson")
	}
	s.cache.InvalidateLessons(ctx)

	created := make([]models.Lesson, 0, len(lessons))
	for _, l := range lessons {
		created = append(created, *l)
	}
	s.logger.Info("lessons created", zap.String("series_id", seriesID), zap.Int("count", len(created)))
	return created, nil
}

// UpdateSingle patches one lesson.
func (s *LessonService) UpdateSingle(ctx context.Context, id string, req models.UpdateLessonRequest) (*models.Lesson, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid lesson payload")
	}
	lesson, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	applyLessonPatch(lesson, req, true)
	if err := checkLesson(s.catalog, *lesson); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, []*models.Lesson{lesson}); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "lesson not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update lesson")
	}
	s.cache.InvalidateLessons(ctx)
	return lesson, nil
}

// UpdateFuture patches every lesson in the series of id. A weekday change
// only moves the addressed lesson; siblings keep their own weekday.
func (s *LessonService) UpdateFuture(ctx context.Context, id string, req models.UpdateLessonRequest) (*models.BulkLessonResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid lesson payload")
	}
	target, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	series, err := s.repo.FindSeries(ctx, *target)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load lesson series")
	}

	members := make([]*models.Lesson, 0, len(series)+1)
	seen := false
	for i := range series {
		if series[i].ID == target.ID {
			seen = true
			members = append(members, target)
			continue
		}
		members = append(members, &series[i])
	}
	if !seen {
		members = append(members, target)
	}

	for _, member := range members {
		applyLessonPatch(member, req, member.ID == target.ID)
		if err := checkLesson(s.catalog, *member); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, members); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "lesson not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update lessons")
	}
	s.cache.InvalidateLessons(ctx)

	updated := make([]models.Lesson, 0, len(members))
	for _, m := range members {
		updated = append(updated, *m)
	}
	return &models.BulkLessonResult{Updated: len(updated), Lessons: updated}, nil
}

// Delete removes a lesson.
func (s *LessonService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "lesson not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete lesson")
	}
	s.cache.InvalidateLessons(ctx)
	return nil
}

func applyLessonPatch(l *models.Lesson, req models.UpdateLessonRequest, includeDay bool) {
	if req.Title != nil {
		l.Title = strings.TrimSpace(*req.Title)
	}
	if req.StartTime != nil {
		l.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		l.EndTime = *req.EndTime
	}
	if includeDay && req.DayOfWeek != nil {
		l.DayOfWeek = *req.DayOfWeek
	}
	if req.Classroom != nil {
		l.Classroom = strings.TrimSpace(*req.Classroom)
	}
	if req.Professor != nil {
		l.Professor = strings.TrimSpace(*req.Professor)
	}
	if req.Course != nil {
		l.Course = upperOrNil(req.Course)
		if l.Course == nil {
			l.Year = nil
		}
	}
	if req.Year != nil {
		if *req.Year == 0 {
			l.Year = nil
		} else {
			year := *req.Year
			l.Year = &year
		}
	}
	if req.Group != nil {
		l.Group = blankToNil(req.Group)
	}
	if req.Notes != nil {
		l.Notes = blankToNil(req.Notes)
	}
}

func upperOrNil(s *string) *string {
	v := blankToNil(s)
	if v == nil {
		return nil
	}
	upper := strings.ToUpper(*v)
	return &upper
}
