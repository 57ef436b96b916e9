package handler

import (
	"github.com/gin-gonic/gin"
	payoutapp "github.com/vendorhub/backend/internal/application/payout"
)

// PayoutHandler handles payout calculation, generation and settlement
type PayoutHandler struct {
	BaseHandler
	payoutService *payoutapp.PayoutService
	processor     *payoutapp.Processor
}

// NewPayoutHandler creates a new PayoutHandler
func NewPayoutHandler(payoutService *payoutapp.PayoutService, processor *payoutapp.Processor) *PayoutHandler {
	return &PayoutHandler{payoutService: payoutService, processor: processor}
}

// Calculate godoc
// @Summary      Preview a payout
// @Description  Compute the payout for a period. Nothing is stored.
// @Tags         payouts
// @Produce      json
// @Param        id path string true "Vendor ID" format(uuid)
// @Param        period_start query string true "Start date (YYYY-MM-DD)"
// @Param        period_end query string true "End date (YYYY-MM-DD)"
// @Success      200 {object} dto.Response{data=payoutapp.CalculationResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /vendors/{id}/payouts/calculate [get]
func (h *PayoutHandler) Calculate(c *gin.Context) {
	vendorID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var query payoutapp.PeriodQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}

	calc, err := h.payoutService.Calculate(c.Request.Context(), vendorID, query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, calc)
}

// Generate godoc
// @Summary      Generate a payout
// @Tags         payouts
// @Accept       json
// @Produce      json
// @Param        id path string true "Vendor ID" format(uuid)
// @Param        X-User-ID header string false "Actor"
// @Param        request body payoutapp.GeneratePayoutRequest true "Period and destination"
// @Success      201 {object} dto.Response{data=payoutapp.PayoutResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /vendors/{id}/payouts [post]
func (h *PayoutHandler) Generate(c *gin.Context) {
	vendorID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req payoutapp.GeneratePayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	p, err := h.payoutService.Generate(c.Request.Context(), vendorID, req, getActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, p)
}

// List godoc
// @Summary      List payouts
// @Tags         payouts
// @Produce      json
// @Param        vendor_id query string false "Vendor ID" format(uuid)
// @Param        status query string false "Payout status" Enums(pending, processing, completed, failed)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]payoutapp.PayoutResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /payouts [get]
func (h *PayoutHandler) List(c *gin.Context) {
	var filter payoutapp.PayoutListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}
	filter.Page, filter.PageSize = normalizePage(filter.Page, filter.PageSize)

	payouts, total, err := h.payoutService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, payouts, total, filter.Page, filter.PageSize)
}

// GetByID godoc
// @Summary      Get payout
// @Tags         payouts
// @Produce      json
// @Param        id path string true "Payout ID" format(uuid)
// @Success      200 {object} dto.Response{data=payoutapp.PayoutResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /payouts/{id} [get]
func (h *PayoutHandler) GetByID(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	p, err := h.payoutService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// Process godoc
// @Summary      Settle a payout
// @Description  A rail failure is a successful call whose result has status failed.
// @Tags         payouts
// @Produce      json
// @Param        id path string true "Payout ID" format(uuid)
// @Param        X-User-ID header string false "Actor"
// @Success      200 {object} dto.Response{data=payoutapp.ProcessResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /payouts/{id}/process [post]
func (h *PayoutHandler) Process(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.processor.Process(c.Request.Context(), id, getActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// AuditTrail godoc
// @Summary      Get payout audit trail
// @Tags         payouts
// @Produce      json
// @Param        id path string true "Payout ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]payoutapp.AuditEntryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /payouts/{id}/audit [get]
func (h *PayoutHandler) AuditTrail(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	entries, err := h.payoutService.AuditTrail(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// AddAdjustment godoc
// @Summary      Add an earnings adjustment
// @Description  An adjustment dated inside a settled payout period is a conflict.
// @Tags         payouts
// @Accept       json
// @Produce      json
// @Param        id path string true "Vendor ID" format(uuid)
// @Param        X-User-ID header string false "Actor"
// @Param        request body payoutapp.AdjustmentRequest true "Signed adjustment"
// @Success      201 {object} dto.Response{data=payoutapp.AdjustmentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /vendors/{id}/adjustments [post]
func (h *PayoutHandler) AddAdjustment(c *gin.Context) {
	vendorID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req payoutapp.AdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	adj, err := h.payoutService.AddAdjustment(c.Request.Context(), vendorID, req, getActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, adj)
}

// ListAdjustments godoc
// @Summary      List adjustments
// @Tags         payouts
// @Produce      json
// @Param        id path string true "Vendor ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]payoutapp.AdjustmentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /vendors/{id}/adjustments [get]
func (h *PayoutHandler) ListAdjustments(c *gin.Context) {
	vendorID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	rows, err := h.payoutService.ListAdjustments(c.Request.Context(), vendorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}
