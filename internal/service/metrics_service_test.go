package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lesson-calendar-api/internal/grid"
	"github.com/noah-isme/lesson-calendar-api/internal/models"
)

func TestMetricsServiceRecordsLayout(t *testing.T) {
	m := NewMetricsService()
	g := grid.Grid{
		Cells: [][]grid.Cell{
			{{Kind: grid.KindEvent, Lesson: &models.Lesson{ID: "a"}, Span: 2}, {Kind: grid.KindEmpty}},
			{{Kind: grid.KindOccupied}, {Kind: grid.KindEvent, Lesson: &models.Lesson{ID: "b"}, Span: 1}},
		},
		Skipped: []grid.Skip{{LessonID: "c", Reason: grid.SkipConflict}, {LessonID: "d", Reason: grid.SkipConflict}},
	}

	m.RecordLayout("centrale", g)
	m.RecordExport(FormatICS)
	m.RecordPurge(3, 1, 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.gridPlaced.WithLabelValues("centrale")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.gridSkipped.WithLabelValues("centrale", "conflict")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.exports.WithLabelValues("ics")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.purged.WithLabelValues("absence")))
}

func TestMetricsServiceHandler(t *testing.T) {
	m := NewMetricsService()
	m.ObserveHTTPRequest(http.MethodGet, "/api/v1/lessons", http.StatusOK, 10*time.Millisecond)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `http_requests_total{method="GET",path="/api/v1/lessons",status="200"} 1`)

	var nilMetrics *MetricsService
	w = httptest.NewRecorder()
	nilMetrics.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	nilMetrics.RecordExport(FormatCSV)
}
