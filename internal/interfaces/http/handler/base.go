package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/infrastructure/logger"
	"github.com/vendorhub/backend/internal/interfaces/http/dto"
	"github.com/vendorhub/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Pagination defaults applied when a list request omits them
const (
	DefaultPage     = 1
	DefaultPageSize = 20
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

func getRequestID(c *gin.Context) string {
	return c.GetString(middleware.RequestIDKey)
}

func getActor(c *gin.Context) string {
	return middleware.GetActor(c)
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BindError reports a request that failed binding or validation
func (h *BaseHandler) BindError(c *gin.Context, err error) {
	middleware.HandleValidationError(c, err)
}

// HandleError converts an error into the response envelope. Validation
// errors carry their field details; domain errors map by code; anything
// else is logged and hidden behind a 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	requestID := getRequestID(c)

	var validationErr *shared.ValidationError
	if errors.As(err, &validationErr) {
		details := make([]dto.ValidationDetail, 0, len(validationErr.Fields))
		for _, f := range validationErr.Fields {
			details = append(details, dto.ValidationDetail{Field: f.Field, Code: f.Code, Message: f.Message})
		}
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(validationErr.Message, requestID, details))
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithRequestID(code, domainErr.Message, requestID))
		return
	}

	_ = c.Error(err)
	logger.L(c.Request.Context()).Error("request failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeInternal,
		"An unexpected error occurred",
		requestID,
	))
}

// parseUUIDParam reads a UUID path parameter, answering 400 when it is malformed
func (h *BaseHandler) parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "Invalid "+name+": must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return page, pageSize
}
