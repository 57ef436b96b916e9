package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/interfaces/http/dto"
	"github.com/vendorhub/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	c.Set(middleware.RequestIDKey, "req-1")
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestBaseHandlerSuccessWithMeta(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext()

	h.SuccessWithMeta(c, []string{"a", "b"}, 41, 2, 20)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestBaseHandlerCreated(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext()

	h.Created(c, map[string]string{"id": "x"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, decode(t, w).Success)
}

func TestBaseHandlerHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", shared.NewNotFoundError("vendor", "v-1"), http.StatusNotFound, dto.ErrCodeNotFound},
		{"already exists", shared.NewDomainError(shared.CodeAlreadyExists, "taken"), http.StatusConflict, dto.ErrCodeAlreadyExists},
		{"conflict", shared.NewConflictError("payout %s is %s", "p-1", "completed"), http.StatusConflict, dto.ErrCodeConflict},
		{"invalid state", shared.NewDomainError(shared.CodeInvalidState, "nothing to pay"), http.StatusUnprocessableEntity, dto.ErrCodeInvalidState},
		{"wrapped domain error", fmt.Errorf("load: %w", shared.ErrNotFound), http.StatusNotFound, dto.ErrCodeNotFound},
		{"infrastructure error", fmt.Errorf("dial tcp: connection refused"), http.StatusInternalServerError, dto.ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			c, w := newTestContext()

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decode(t, w)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, "req-1", resp.Error.RequestID)
		})
	}
}

func TestBaseHandlerHandleError_HidesInfrastructureDetail(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext()

	h.HandleError(c, fmt.Errorf("password=secret"))

	assert.NotContains(t, w.Body.String(), "secret")
	assert.Len(t, c.Errors, 1)
}

func TestBaseHandlerHandleError_ValidationDetails(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext()

	h.HandleError(c, shared.NewValidationError("invalid payout details",
		shared.FieldError{Field: "payout_details.wallet_number", Code: "required", Message: "wallet_number is required"},
		shared.FieldError{Field: "payout_details.provider", Code: "invalid_value", Message: "provider must be one of bkash, nagad, rocket"},
	))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "invalid payout details", resp.Error.Message)
	require.Len(t, resp.Error.Details, 2)
	assert.Equal(t, "payout_details.wallet_number", resp.Error.Details[0].Field)
	assert.Equal(t, "invalid_value", resp.Error.Details[1].Code)
}

func TestBaseHandlerHandleError_Nil(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext()

	h.HandleError(c, nil)

	assert.Empty(t, w.Body.String())
}

func TestParseUUIDParam(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext()
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	_, ok := h.parseUUIDParam(c, "id")

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeInvalidInput, decode(t, w).Error.Code)
}

func TestNormalizePage(t *testing.T) {
	page, size := normalizePage(0, 0)
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, DefaultPageSize, size)

	page, size = normalizePage(3, 50)
	assert.Equal(t, 3, page)
	assert.Equal(t, 50, size)
}
