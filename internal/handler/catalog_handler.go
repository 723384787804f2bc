package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lesson-calendar-api/internal/catalog"
	"github.com/noah-isme/lesson-calendar-api/pkg/response"
)

// CatalogLocation is a site with the classroom columns its grid shows.
type CatalogLocation struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Classrooms []string `json:"classrooms"`
	Courses    []string `json:"courses"`
}

// CatalogCourse is a course with its selectable years.
type CatalogCourse struct {
	Code      string   `json:"code"`
	Name      string   `json:"name"`
	Color     string   `json:"color"`
	Years     []int    `json:"years"`
	Locations []string `json:"locations"`
}

// CatalogResponse is the payload of GET /catalog.
type CatalogResponse struct {
	Locations []CatalogLocation `json:"locations"`
	Courses   []CatalogCourse   `json:"courses"`
}

// CatalogHandler exposes the static course and location catalog.
type CatalogHandler struct {
	payload CatalogResponse
}

// NewCatalogHandler snapshots cat; the catalog is immutable after boot.
func NewCatalogHandler(cat *catalog.Catalog) *CatalogHandler {
	payload := CatalogResponse{}
	for _, loc := range cat.Locations() {
		codes := []string{}
		for _, course := range cat.CoursesAt(loc.ID) {
			codes = append(codes, course.Code)
		}
		payload.Locations = append(payload.Locations, CatalogLocation{
			ID:         loc.ID,
			Name:       loc.Name,
			Classrooms: cat.VisibleClassrooms(loc.ID),
			Courses:    codes,
		})
	}
	for _, course := range cat.Courses() {
		payload.Courses = append(payload.Courses, CatalogCourse{
			Code:      course.Code,
			Name:      course.Name,
			Color:     cat.Color(course.Code),
			Years:     cat.ValidYears(course.Code),
			Locations: course.Locations,
		})
	}
	return &CatalogHandler{payload: payload}
}

// Get godoc
// @Summary Course and location catalog
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /catalog [get]
func (h *CatalogHandler) Get(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.payload)
}
