package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lesson-calendar-api/internal/middleware"
	"github.com/noah-isme/lesson-calendar-api/internal/service"
	"github.com/noah-isme/lesson-calendar-api/pkg/response"
)

type dayViewService interface {
	DayView(ctx context.Context, req service.DayViewRequest) (*service.DayView, error)
	Location() *time.Location
	Today() time.Time
}

type calendarExportService interface {
	ICS(ctx context.Context, filter service.ExportFilter) (*service.ExportFile, error)
	Day(ctx context.Context, req service.DayViewRequest, format string) (*service.ExportFile, error)
}

// CalendarHandler serves the day grid and calendar exports.
type CalendarHandler struct {
	days            dayViewService
	exports         calendarExportService
	defaultLocation string
}

// NewCalendarHandler constructs the handler. defaultLocation is used when a
// request names no location.
func NewCalendarHandler(days dayViewService, exports calendarExportService, defaultLocation string) *CalendarHandler {
	return &CalendarHandler{days: days, exports: exports, defaultLocation: defaultLocation}
}

// Day godoc
// @Summary Day grid
// @Description Lays out one date for one location, with absences, makeups and classroom changes applied
// @Tags Calendar
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Param location query string false "Location ID"
// @Param course query string false "Course code"
// @Param year query int false "Course year"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /calendar/day [get]
func (h *CalendarHandler) Day(c *gin.Context) {
	req, err := h.dayRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	view, err := h.days.DayView(c.Request.Context(), req)
	if err != nil {
		if view != nil {
			response.ErrorWithData(c, err, view)
			return
		}
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// DayExport godoc
// @Summary Export day grid
// @Description Renders the day grid as CSV or PDF
// @Tags Calendar
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf" default(csv)
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Param location query string false "Location ID"
// @Param course query string false "Course code"
// @Param year query int false "Course year"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /calendar/day/export [get]
func (h *CalendarHandler) DayExport(c *gin.Context) {
	req, err := h.dayRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	file, err := h.exports.Day(c.Request.Context(), req, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.ContentType, file.Filename, file.Body)
}

// ICS godoc
// @Summary Export recurring calendar
// @Description Weekly lessons as an iCalendar file with one recurring event per lesson
// @Tags Calendar
// @Produce text/calendar
// @Param course query string false "Course code"
// @Param year query int false "Course year"
// @Param location query string false "Location ID"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /calendar/export.ics [get]
func (h *CalendarHandler) ICS(c *gin.Context) {
	filter := service.ExportFilter{
		Course:   optionalQuery(c, "course"),
		Location: c.Query("location"),
	}
	var err error
	if filter.Year, err = optionalIntQuery(c, "year"); err != nil {
		response.Error(c, err)
		return
	}

	file, err := h.exports.ICS(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.ContentType, file.Filename, file.Body)
}

func (h *CalendarHandler) dayRequest(c *gin.Context) (service.DayViewRequest, error) {
	req := service.DayViewRequest{
		Date:          h.days.Today(),
		Location:      h.defaultLocation,
		Course:        optionalQuery(c, "course"),
		Authenticated: middleware.Claims(c) != nil,
	}
	if value := optionalQuery(c, "date"); value != nil {
		date, err := service.ParseDate(*value, h.days.Location())
		if err != nil {
			return req, err
		}
		req.Date = date
	}
	if value := optionalQuery(c, "location"); value != nil {
		req.Location = *value
	}
	year, err := optionalIntQuery(c, "year")
	if err != nil {
		return req, err
	}
	req.Year = year
	return req, nil
}
