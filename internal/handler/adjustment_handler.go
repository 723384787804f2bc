package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lesson-calendar-api/internal/models"
	"github.com/noah-isme/lesson-calendar-api/pkg/response"
)

type adjustmentService interface {
	ListAbsences(ctx context.Context, rng models.DateRange) ([]models.Absence, error)
	CreateAbsence(ctx context.Context, req models.AbsenceRequest) (*models.Absence, error)
	UpdateAbsence(ctx context.Context, id string, req models.AbsenceRequest) (*models.Absence, error)
	DeleteAbsence(ctx context.Context, id string) error

	ListMakeups(ctx context.Context, rng models.DateRange) ([]models.MakeupLesson, error)
	CreateMakeup(ctx context.Context, req models.MakeupLessonRequest) (*models.MakeupLesson, error)
	UpdateMakeup(ctx context.Context, id string, req models.MakeupLessonRequest) (*models.MakeupLesson, error)
	DeleteMakeup(ctx context.Context, id string) error

	ListClassroomChanges(ctx context.Context, rng models.DateRange) ([]models.ClassroomChange, error)
	CreateClassroomChange(ctx context.Context, req models.ClassroomChangeRequest) (*models.ClassroomChange, error)
	UpdateClassroomChange(ctx context.Context, id string, req models.ClassroomChangeRequest) (*models.ClassroomChange, error)
	DeleteClassroomChange(ctx context.Context, id string) error
}

// AdjustmentHandler exposes dated exceptions to the weekly schedule.
type AdjustmentHandler struct {
	service adjustmentService
}

// NewAdjustmentHandler constructs the handler.
func NewAdjustmentHandler(svc adjustmentService) *AdjustmentHandler {
	return &AdjustmentHandler{service: svc}
}

func dateRange(c *gin.Context) models.DateRange {
	return models.DateRange{From: c.Query("from"), To: c.Query("to")}
}

func deleted(c *gin.Context, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, models.DeleteResult{Success: true})
}

// ListAbsences godoc
// @Summary List absences
// @Tags Adjustments
// @Produce json
// @Param from query string false "First date (YYYY-MM-DD)"
// @Param to query string false "Last date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /absences [get]
func (h *AdjustmentHandler) ListAbsences(c *gin.Context) {
	items, err := h.service.ListAbsences(c.Request.Context(), dateRange(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// CreateAbsence godoc
// @Summary Record a professor absence
// @Tags Adjustments
// @Accept json
// @Produce json
// @Param payload body models.AbsenceRequest true "Absence"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /absences [post]
func (h *AdjustmentHandler) CreateAbsence(c *gin.Context) {
	var req models.AbsenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid absence payload"))
		return
	}
	item, err := h.service.CreateAbsence(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// UpdateAbsence godoc
// @Summary Replace an absence
// @Tags Adjustments
// @Accept json
// @Produce json
// @Param id path string true "Absence ID"
// @Param payload body models.AbsenceRequest true "Absence"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /absences/{id} [put]
func (h *AdjustmentHandler) UpdateAbsence(c *gin.Context) {
	var req models.AbsenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid absence payload"))
		return
	}
	item, err := h.service.UpdateAbsence(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}

// DeleteAbsence godoc
// @Summary Delete an absence
// @Tags Adjustments
// @Produce json
// @Param id path string true "Absence ID"
// @Success 200 {object} response.Envelope
// @Router /absences/{id} [delete]
func (h *AdjustmentHandler) DeleteAbsence(c *gin.Context) {
	deleted(c, h.service.DeleteAbsence(c.Request.Context(), c.Param("id")))
}

// ListMakeups godoc
// @Summary List makeup lessons
// @Tags Adjustments
// @Produce json
// @Param from query string false "First date (YYYY-MM-DD)"
// @Param to query string false "Last date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /makeups [get]
func (h *AdjustmentHandler) ListMakeups(c *gin.Context) {
	items, err := h.service.ListMakeups(c.Request.Context(), dateRange(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// CreateMakeup godoc
// @Summary Schedule a makeup lesson
// @Tags Adjustments
// @Accept json
// @Produce json
// @Param payload body models.MakeupLessonRequest true "Makeup lesson"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /makeups [post]
func (h *AdjustmentHandler) CreateMakeup(c *gin.Context) {
	var req models.MakeupLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid makeup payload"))
		return
	}
	item, err := h.service.CreateMakeup(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// UpdateMakeup godoc
// @Summary Replace a makeup lesson
// @Tags Adjustments
// @Accept json
// @Produce json
// @Param id path string true "Makeup ID"
// @Param payload body models.MakeupLessonRequest true "Makeup lesson"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /makeups/{id} [put]
func (h *AdjustmentHandler) UpdateMakeup(c *gin.Context) {
	var req models.MakeupLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid makeup payload"))
		return
	}
	item, err := h.service.UpdateMakeup(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}

// DeleteMakeup godoc
// @Summary Delete a makeup lesson
// @Tags Adjustments
// @Produce json
// @Param id path string true "Makeup ID"
// @Success 200 {object} response.Envelope
// @Router /makeups/{id} [delete]
func (h *AdjustmentHandler) DeleteMakeup(c *gin.Context) {
	deleted(c, h.service.DeleteMakeup(c.Request.Context(), c.Param("id")))
}

// ListClassroomChanges godoc
// @Summary List classroom changes
// @Tags Adjustments
// @Produce json
// @Param from query string false "First date (YYYY-MM-DD)"
// @Param to query string false "Last date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /classroom-changes [get]
func (h *AdjustmentHandler) ListClassroomChanges(c *gin.Context) {
	items, err := h.service.ListClassroomChanges(c.Request.Context(), dateRange(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// CreateClassroomChange godoc
// @Summary Move a lesson to another classroom for one date
// @Tags Adjustments
// @Accept json
// @Produce json
// @Param payload body models.ClassroomChangeRequest true "Classroom change"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /classroom-changes [post]
func (h *AdjustmentHandler) CreateClassroomChange(c *gin.Context) {
	var req models.ClassroomChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid classroom change payload"))
		return
	}
	item, err := h.service.CreateClassroomChange(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// UpdateClassroomChange godoc
// @Summary Replace a classroom change
// @Tags Adjustments
// @Accept json
// @Produce json
// @Param id path string true "Classroom change ID"
// @Param payload body models.ClassroomChangeRequest true "Classroom change"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /classroom-changes/{id} [put]
func (h *AdjustmentHandler) UpdateClassroomChange(c *gin.Context) {
	var req models.ClassroomChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid classroom change payload"))
		return
	}
	item, err := h.service.UpdateClassroomChange(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}

// DeleteClassroomChange godoc
// @Summary Delete a classroom change
// @Tags Adjustments
// @Produce json
// @Param id path string true "Classroom change ID"
// @Success 200 {object} response.Envelope
// @Router /classroom-changes/{id} [delete]
func (h *AdjustmentHandler) DeleteClassroomChange(c *gin.Context) {
	deleted(c, h.service.DeleteClassroomChange(c.Request.Context(), c.Param("id")))
}
