package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vendorhub/backend/internal/interfaces/http/dto"
)

// BodyLimit rejects requests whose declared Content-Length exceeds maxBytes
// and caps chunked bodies at the same size while they are read. KYC files
// never pass through here; clients send them straight to object storage.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeRequestTooLarge,
				"Request body exceeds maximum allowed size",
				c.GetString(RequestIDKey),
			))
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
