package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pillpal/backend/internal/service"
)

func serveWithError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(ErrorHandler())
	router.GET("/boom", func(c *gin.Context) {
		_ = c.Error(err)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/boom", nil))
	return w
}

func TestErrorHandlerStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", service.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("medication x: %w", service.ErrNotFound), http.StatusNotFound},
		{"forbidden", service.ErrForbidden, http.StatusForbidden},
		{"unauthenticated", service.ErrUnauthenticated, http.StatusUnauthorized},
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"invalid input", service.ErrInvalidInput, http.StatusBadRequest},
		{"image host failure", &service.ImageHostError{Op: "delete", Err: assert.AnError}, http.StatusInternalServerError},
		{"unknown error", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serveWithError(t, tt.err)
			assert.Equal(t, tt.want, w.Code)

			var body ErrorBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Message)
			assert.False(t, body.Timestamp.IsZero())
		})
	}
}

func TestErrorHandlerLeavesWrittenResponses(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(ErrorHandler())
	router.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusTeapot, gin.H{"ok": true})
		_ = c.Error(service.ErrNotFound)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/ok", nil))

	// An already-written response wins over the attached error.
	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestJSONFieldName(t *testing.T) {
	tests := map[string]string{
		"Name":         "name",
		"StartDate":    "start_date",
		"MedicationID": "medication_id",
		"ImageURL":     "image_url",
		"Password":     "password",
	}
	for in, want := range tests {
		assert.Equal(t, want, jsonFieldName(in), in)
	}
}
