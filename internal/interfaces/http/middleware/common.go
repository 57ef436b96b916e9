package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/infrastructure/logger"
)

// Context keys and headers shared by the middleware and the handlers
const (
	RequestIDKey    = "request_id"
	ActorKey        = "actor"
	HeaderRequestID = "X-Request-ID"
	HeaderUserID    = "X-User-ID"
)

// MaxRequestIDLength is the maximum length accepted from the X-Request-ID header
const MaxRequestIDLength = 128

// MaxActorLength is the maximum length accepted from the X-User-ID header
const MaxActorLength = 64

// CORSConfig holds CORS middleware configuration
type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAge           time.Duration
}

// DefaultCORSConfig returns default CORS configuration.
// AllowOrigins is empty, which rejects every cross-origin request until
// origins are configured.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins:     []string{},
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", HeaderRequestID, HeaderUserID, "Accept", "Origin"},
		ExposeHeaders:    []string{HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

// CORSWithConfig returns a CORS middleware with custom configuration
func CORSWithConfig(cfg CORSConfig) gin.HandlerFunc {
	allowWildcard := false
	for _, o := range cfg.AllowOrigins {
		if o == "*" {
			allowWildcard = true
			break
		}
	}

	allowed := func(origin string) string {
		if allowWildcard {
			return "*"
		}
		for _, o := range cfg.AllowOrigins {
			if o == origin {
				return origin
			}
		}
		return ""
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		allowedOrigin := ""
		if origin != "" && len(cfg.AllowOrigins) > 0 {
			allowedOrigin = allowed(origin)
		}

		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if cfg.AllowCredentials && allowedOrigin != "*" {
				c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			}
			setCORSHeaders(c, cfg)
		}

		// Preflight always ends here, with or without CORS headers
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func setCORSHeaders(c *gin.Context, cfg CORSConfig) {
	c.Writer.Header().Set("Access-Control-Allow-Headers", strings.Join(cfg.AllowHeaders, ", "))
	c.Writer.Header().Set("Access-Control-Allow-Methods", strings.Join(cfg.AllowMethods, ", "))

	if len(cfg.ExposeHeaders) > 0 {
		c.Writer.Header().Set("Access-Control-Expose-Headers", strings.Join(cfg.ExposeHeaders, ", "))
	}
	if cfg.MaxAge > 0 {
		c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(int(cfg.MaxAge.Seconds())))
	}
}

// RequestID adds a unique request ID to each request. A client supplied
// id is kept, truncated to MaxRequestIDLength.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if len(requestID) > MaxRequestIDLength {
			requestID = requestID[:MaxRequestIDLength]
		}
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDKey, requestID)
		c.Writer.Header().Set(HeaderRequestID, requestID)
		c.Next()
	}
}

// Actor records the operator named by the X-User-ID header. Payout
// generation and processing are written to the audit trail under this
// name; requests without it act as "system".
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := strings.TrimSpace(c.GetHeader(HeaderUserID))
		if !validActor(actor) {
			actor = ""
		}
		if actor != "" {
			c.Set(ActorKey, actor)
			c.Request = c.Request.WithContext(logger.WithActor(c.Request.Context(), actor))
		}
		c.Next()
	}
}

// GetActor returns the operator recorded by Actor, or ""
func GetActor(c *gin.Context) string {
	return c.GetString(ActorKey)
}

func validActor(actor string) bool {
	if actor == "" || len(actor) > MaxActorLength {
		return false
	}
	for _, r := range actor {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

// Secure adds the standard security headers to every response
func Secure() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		c.Next()
	}
}
