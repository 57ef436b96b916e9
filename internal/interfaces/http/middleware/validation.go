package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/vendorhub/backend/internal/interfaces/http/dto"
)

// SetupValidator makes binding errors name fields by their json or form tag
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
	}
}

// ValidationDetails converts binding errors into response details. It
// returns nil when err is not a validator error.
func ValidationDetails(err error) []dto.ValidationDetail {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}
	details := make([]dto.ValidationDetail, 0, len(validationErrors))
	for _, e := range validationErrors {
		details = append(details, dto.ValidationDetail{
			Field:   e.Field(),
			Code:    e.Tag(),
			Message: getValidationMessage(e),
		})
	}
	return details
}

// HandleValidationError writes the 400 response of a failed bind. Field
// failures are listed in details; a body that could not be decoded is
// reported as invalid JSON.
func HandleValidationError(c *gin.Context, err error) {
	requestID := c.GetString(RequestIDKey)
	if details := ValidationDetails(err); details != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse("Request validation failed", requestID, details))
		return
	}
	c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(dto.ErrCodeInvalidJSON, "Malformed request: "+err.Error(), requestID))
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		if e.Type().Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Type().Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "uuid":
		return "Invalid UUID format"
	case "oneof":
		return "Must be one of: " + e.Param()
	case "datetime":
		return "Must be a date in the format " + e.Param()
	case "gte":
		return "Must be greater than or equal to " + e.Param()
	case "lte":
		return "Must be less than or equal to " + e.Param()
	default:
		return "Invalid value"
	}
}
