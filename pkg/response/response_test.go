package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/lesson-calendar-api/pkg/errors"
)

func TestErrorWithDataKeepsFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ErrorWithData(c, errors.New("db down"), []string{})

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.JSONEq(t, `[]`, string(body["data"]))
	assert.Contains(t, string(body["error"]), appErrors.ErrInternal.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestAttachmentHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Attachment(c, "text/calendar; charset=utf-8", "lezioni.ics", []byte("BEGIN:VCALENDAR"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="lezioni.ics"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/calendar; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "BEGIN:VCALENDAR", w.Body.String())
}
