package handler

import (
	"github.com/gin-gonic/gin"
	commissionapp "github.com/vendorhub/backend/internal/application/commission"
)

// CommissionHandler handles commission recording and rate endpoints
type CommissionHandler struct {
	BaseHandler
	commissionService *commissionapp.CommissionService
}

// NewCommissionHandler creates a new CommissionHandler
func NewCommissionHandler(commissionService *commissionapp.CommissionService) *CommissionHandler {
	return &CommissionHandler{commissionService: commissionService}
}

// SetRate godoc
// @Summary      Set commission rate
// @Tags         commissions
// @Accept       json
// @Produce      json
// @Param        id path string true "Vendor ID" format(uuid)
// @Param        request body commissionapp.SetRateRequest true "New rate"
// @Success      200 {object} dto.Response{data=commissionapp.RateResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /vendors/{id}/commission-rate [put]
func (h *CommissionHandler) SetRate(c *gin.Context) {
	vendorID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req commissionapp.SetRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	rate, err := h.commissionService.SetRate(c.Request.Context(), vendorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rate)
}

// Record godoc
// @Summary      Record a sale commission
// @Description  A sale dated inside a settled payout period is a conflict.
// @Tags         commissions
// @Accept       json
// @Produce      json
// @Param        id path string true "Vendor ID" format(uuid)
// @Param        request body commissionapp.RecordCommissionRequest true "Sale"
// @Success      201 {object} dto.Response{data=commissionapp.CommissionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /vendors/{id}/commissions [post]
func (h *CommissionHandler) Record(c *gin.Context) {
	vendorID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req commissionapp.RecordCommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	cm, err := h.commissionService.Record(c.Request.Context(), vendorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, cm)
}

// List godoc
// @Summary      List commissions for a period
// @Tags         commissions
// @Produce      json
// @Param        id path string true "Vendor ID" format(uuid)
// @Param        period_start query string true "Start date (YYYY-MM-DD)"
// @Param        period_end query string true "End date (YYYY-MM-DD)"
// @Success      200 {object} dto.Response{data=commissionapp.CommissionListResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /vendors/{id}/commissions [get]
func (h *CommissionHandler) List(c *gin.Context) {
	vendorID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var query commissionapp.PeriodQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}

	list, err := h.commissionService.List(c.Request.Context(), vendorID, query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, list)
}
