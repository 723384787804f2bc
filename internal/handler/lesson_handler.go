package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lesson-calendar-api/internal/models"
	"github.com/noah-isme/lesson-calendar-api/pkg/response"
)

type lessonService interface {
	List(ctx context.Context, filter models.LessonFilter) ([]models.Lesson, error)
	Get(ctx context.Context, id string) (*models.Lesson, error)
	Create(ctx context.Context, req models.CreateLessonRequest) ([]models.Lesson, error)
	UpdateSingle(ctx context.Context, id string, req models.UpdateLessonRequest) (*models.Lesson, error)
	UpdateFuture(ctx context.Context, id string, req models.UpdateLessonRequest) (*models.BulkLessonResult, error)
	Delete(ctx context.Context, id string) error
}

// LessonHandler exposes the weekly lesson templates.
type LessonHandler struct {
	service lessonService
}

// NewLessonHandler constructs the handler.
func NewLessonHandler(svc lessonService) *LessonHandler {
	return &LessonHandler{service: svc}
}

// List godoc
// @Summary List lessons
// @Tags Lessons
// @Produce json
// @Param course query string false "Course code"
// @Param year query int false "Course year"
// @Param dayOfWeek query int false "Weekday, 0 is Sunday"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /lessons [get]
func (h *LessonHandler) List(c *gin.Context) {
	filter := models.LessonFilter{Course: optionalQuery(c, "course")}
	var err error
	if filter.Year, err = optionalIntQuery(c, "year"); err != nil {
		response.Error(c, err)
		return
	}
	if filter.DayOfWeek, err = optionalIntQuery(c, "dayOfWeek"); err != nil {
		response.Error(c, err)
		return
	}

	lessons, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.ErrorWithData(c, err, []models.Lesson{})
		return
	}
	response.JSON(c, http.StatusOK, lessons, map[string]interface{}{"total": len(lessons)})
}

// Get godoc
// @Summary Get lesson
// @Tags Lessons
// @Produce json
// @Param id path string true "Lesson ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /lessons/{id} [get]
func (h *LessonHandler) Get(c *gin.Context) {
	lesson, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lesson)
}

// Create godoc
// @Summary Create lesson
// @Description Creates one lesson, or one per entry of daysOfWeek sharing a series
// @Tags Lessons
// @Accept json
// @Produce json
// @Param payload body models.CreateLessonRequest true "Lesson payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /lessons [post]
func (h *LessonHandler) Create(c *gin.Context) {
	var req models.CreateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid lesson payload"))
		return
	}

	lessons, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if len(lessons) == 1 {
		response.Created(c, lessons[0])
		return
	}
	response.Created(c, models.BulkLessonResult{Created: len(lessons), Lessons: lessons})
}

// Update godoc
// @Summary Update lesson
// @Description updateScope single patches one lesson, future patches its whole series
// @Tags Lessons
// @Accept json
// @Produce json
// @Param id path string true "Lesson ID"
// @Param payload body models.UpdateLessonRequest true "Partial lesson"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /lessons/{id} [put]
func (h *LessonHandler) Update(c *gin.Context) {
	var req models.UpdateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid lesson payload"))
		return
	}

	id := c.Param("id")
	req.UpdateScope = strings.ToLower(strings.TrimSpace(req.UpdateScope))
	if req.UpdateScope == models.UpdateScopeFuture {
		result, err := h.service.UpdateFuture(c.Request.Context(), id, req)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, result)
		return
	}

	lesson, err := h.service.UpdateSingle(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lesson)
}

// Delete godoc
// @Summary Delete lesson
// @Tags Lessons
// @Produce json
// @Param id path string true "Lesson ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /lessons/{id} [delete]
func (h *LessonHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, models.DeleteResult{Success: true})
}
