package middleware

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newBodyLimitEngine(limit int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestID(), BodyLimit(limit))
	engine.POST("/vendors", func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.String(http.StatusRequestEntityTooLarge, "cut at %d", tooLarge.Limit)
			return
		}
		c.String(http.StatusOK, "%d", len(body))
	})
	engine.GET("/vendors", func(c *gin.Context) {
		c.String(http.StatusOK, "list")
	})
	return engine
}

func TestBodyLimit(t *testing.T) {
	payload := `{"business_name":"Padma Textiles","email":"owner@padma.com.bd"}`

	tests := []struct {
		name          string
		limit         int64
		method        string
		body          string
		contentLength int64
		wantStatus    int
		wantBody      string
	}{
		{"registration within limit", 1024, http.MethodPost, payload, int64(len(payload)), http.StatusOK, "63"},
		{"declared length over limit", 32, http.MethodPost, payload, int64(len(payload)), http.StatusRequestEntityTooLarge, "ERR_REQUEST_TOO_LARGE"},
		{"chunked body cut while reading", 32, http.MethodPost, payload, -1, http.StatusRequestEntityTooLarge, "cut at 32"},
		{"bodiless GET passes", 8, http.MethodGet, "", 0, http.StatusOK, "list"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newBodyLimitEngine(tt.limit)
			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			req := httptest.NewRequest(tt.method, "/vendors", body)
			req.ContentLength = tt.contentLength
			w := httptest.NewRecorder()

			engine.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestBodyLimit_EchoesRequestID(t *testing.T) {
	engine := newBodyLimitEngine(4)
	req := httptest.NewRequest(http.MethodPost, "/vendors", strings.NewReader("0123456789"))
	req.Header.Set(HeaderRequestID, "req-kyc-42")
	w := httptest.NewRecorder()

	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "req-kyc-42")
}
