package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lesson-calendar-api/internal/models"
	appErrors "github.com/noah-isme/lesson-calendar-api/pkg/errors"
)

type lessonServiceMock struct {
	listErr    error
	lastFilter models.LessonFilter
	scope      string
	deleteErr  error
}

func (m *lessonServiceMock) List(ctx context.Context, filter models.LessonFilter) ([]models.Lesson, error) {
	m.lastFilter = filter
	if m.listErr != nil {
		return nil, m.listErr
	}
	return []models.Lesson{{ID: "l1", Title: "Anatomia"}}, nil
}

func (m *lessonServiceMock) Get(ctx context.Context, id string) (*models.Lesson, error) {
	if id != "l1" {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "lesson not found")
	}
	return &models.Lesson{ID: id}, nil
}

func (m *lessonServiceMock) Create(ctx context.Context, req models.CreateLessonRequest) ([]models.Lesson, error) {
	days := req.DaysOfWeek
	if len(days) == 0 {
		days = []int{*req.DayOfWeek}
	}
	out := make([]models.Lesson, 0, len(days))
	for _, d := range days {
		out = append(out, models.Lesson{Title: req.Title, DayOfWeek: d})
	}
	return out, nil
}

func (m *lessonServiceMock) UpdateSingle(ctx context.Context, id string, req models.UpdateLessonRequest) (*models.Lesson, error) {
	m.scope = models.UpdateScopeSingle
	return &models.Lesson{ID: id}, nil
}

func (m *lessonServiceMock) UpdateFuture(ctx context.Context, id string, req models.UpdateLessonRequest) (*models.BulkLessonResult, error) {
	m.scope = req.UpdateScope
	return &models.BulkLessonResult{Updated: 2, Lessons: []models.Lesson{{ID: id}, {ID: "l2"}}}, nil
}

func (m *lessonServiceMock) Delete(ctx context.Context, id string) error {
	return m.deleteErr
}

func TestLessonHandlerListParsesFilters(t *testing.T) {
	svc := &lessonServiceMock{}
	handler := NewLessonHandler(svc)

	c, w := testContext(http.MethodGet, "/lessons?course=pit&year=2&dayOfWeek=1", nil)
	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pit", *svc.lastFilter.Course)
	assert.Equal(t, 2, *svc.lastFilter.Year)
	assert.Equal(t, 1, *svc.lastFilter.DayOfWeek)
	assert.EqualValues(t, 1, decode(t, w).Meta["total"])

	c, w = testContext(http.MethodGet, "/lessons?year=second", nil)
	handler.List(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "must be an integer", decode(t, w).Error.Details["year"])
}

func TestLessonHandlerListStorageFailureReturnsEmptyList(t *testing.T) {
	handler := NewLessonHandler(&lessonServiceMock{listErr: appErrors.Wrap(errStorage, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list lessons")})

	c, w := testContext(http.MethodGet, "/lessons", nil)
	handler.List(c)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	env := decode(t, w)
	assert.JSONEq(t, `[]`, string(env.Data))
	assert.Equal(t, appErrors.ErrInternal.Code, env.Error.Code)
}

func TestLessonHandlerCreateSingleAndSeries(t *testing.T) {
	handler := NewLessonHandler(&lessonServiceMock{})

	c, w := testContext(http.MethodPost, "/lessons", models.CreateLessonRequest{Title: "Anatomia", DayOfWeek: intPtr(1)})
	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, string(decode(t, w).Data), `"title":"Anatomia"`)

	c, w = testContext(http.MethodPost, "/lessons", models.CreateLessonRequest{Title: "Anatomia", DaysOfWeek: []int{1, 3}})
	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, string(decode(t, w).Data), `"created":2`)

	c, w = testContext(http.MethodPost, "/lessons", `{"title": 5}`)
	handler.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLessonHandlerUpdateDispatchesOnScope(t *testing.T) {
	svc := &lessonServiceMock{}
	handler := NewLessonHandler(svc)

	c, w := testContext(http.MethodPut, "/lessons/l1", `{"title":"Nuovo","updateScope":"FUTURE"}`)
	c.Params = gin.Params{{Key: "id", Value: "l1"}}
	handler.Update(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.UpdateScopeFuture, svc.scope)
	assert.Contains(t, string(decode(t, w).Data), `"updated":2`)

	c, w = testContext(http.MethodPut, "/lessons/l1", `{"title":"Nuovo"}`)
	c.Params = gin.Params{{Key: "id", Value: "l1"}}
	handler.Update(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.UpdateScopeSingle, svc.scope)
}

func TestLessonHandlerGetAndDelete(t *testing.T) {
	handler := NewLessonHandler(&lessonServiceMock{deleteErr: appErrors.Clone(appErrors.ErrNotFound, "lesson not found")})

	c, w := testContext(http.MethodGet, "/lessons/missing", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	handler.Get(c)
	assert.Equal(t, http.StatusNotFound, w.Code)

	c, w = testContext(http.MethodDelete, "/lessons/missing", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	handler.Delete(c)
	assert.Equal(t, http.StatusNotFound, w.Code)

	handler = NewLessonHandler(&lessonServiceMock{})
	c, w = testContext(http.MethodDelete, "/lessons/l1", nil)
	c.Params = gin.Params{{Key: "id", Value: "l1"}}
	handler.Delete(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, string(decode(t, w).Data))
}
