package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func sizeLimitRouter(maxSize int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestSizeLimiter(maxSize))
	router.POST("/echo", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestRequestSizeLimiter(t *testing.T) {
	router := sizeLimitRouter(16)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("small"))
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Small body status = %d, want %d", w.Code, http.StatusOK)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(strings.Repeat("x", 64)))
	router.ServeHTTP(w, req)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("Oversized body status = %d, want %d", w.Code, http.StatusRequestEntityTooLarge)
	}
}
