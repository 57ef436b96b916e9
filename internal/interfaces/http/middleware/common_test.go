package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/vendorhub/backend/internal/infrastructure/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func corsRouter(cfg CORSConfig) *gin.Engine {
	router := gin.New()
	router.Use(CORSWithConfig(cfg))
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func TestCORS_DefaultRejectsCrossOrigin(t *testing.T) {
	router := corsRouter(DefaultCORSConfig())

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Origin", "http://malicious.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest("OPTIONS", "/test", nil)
	req.Header.Set("Origin", "http://malicious.com")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSWithConfig(t *testing.T) {
	cfg := CORSConfig{
		AllowOrigins:     []string{"https://seller.vendorhub.com.bd"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Content-Type", HeaderUserID},
		AllowCredentials: true,
		MaxAge:           time.Hour,
	}
	router := corsRouter(cfg)

	t.Run("allows listed origin", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("Origin", "https://seller.vendorhub.com.bd")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "https://seller.vendorhub.com.bd", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		assert.Equal(t, "3600", w.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("ignores other origins", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("Origin", "https://evil.example")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("answers preflight", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/test", nil)
		req.Header.Set("Origin", "https://seller.vendorhub.com.bd")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "GET, POST", w.Header().Get("Access-Control-Allow-Methods"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), HeaderUserID)
	})

	t.Run("wildcard never sends credentials", func(t *testing.T) {
		wild := corsRouter(CORSConfig{AllowOrigins: []string{"*"}, AllowCredentials: true})
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("Origin", "https://any.example")
		w := httptest.NewRecorder()
		wild.ServeHTTP(w, req)

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})

	t.Run("generates when absent", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))

		id := w.Header().Get(HeaderRequestID)
		assert.Len(t, id, 36)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("keeps client id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(HeaderRequestID, "client-id-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "client-id-1", w.Body.String())
	})

	t.Run("truncates long ids", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(HeaderRequestID, strings.Repeat("a", 500))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Len(t, w.Body.String(), MaxRequestIDLength)
	})
}

func TestActor(t *testing.T) {
	router := gin.New()
	router.Use(Actor())
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, GetActor(c)+"|"+logger.GetActor(c.Request.Context()))
	})

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"named operator", "finance-ops", "finance-ops|finance-ops"},
		{"trimmed", "  ops  ", "ops|ops"},
		{"absent", "", "|"},
		{"too long", strings.Repeat("x", MaxActorLength+1), "|"},
		{"control characters", "ops\x07", "|"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/test", nil)
			if tt.header != "" {
				req.Header.Set(HeaderUserID, tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Body.String())
		})
	}
}

func TestSecure(t *testing.T) {
	router := gin.New()
	router.Use(Secure())
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, w.Header().Get("Content-Security-Policy"))
}
