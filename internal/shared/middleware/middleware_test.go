package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery(), RequestID(), Logger())
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	return r
}

func TestRequestIDGenerated(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
	assert.NoError(t, err)
	assert.Equal(t, w.Header().Get(RequestIDHeader), w.Body.String())
}

func TestRequestIDPropagated(t *testing.T) {
	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(RequestIDHeader, id)

	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, req)
	assert.Equal(t, id, w.Header().Get(RequestIDHeader))
}

func TestRecovery(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}
