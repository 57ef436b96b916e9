package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	vendorapp "github.com/vendorhub/backend/internal/application/vendor"
)

// VendorHandler handles vendor registration and administration endpoints
type VendorHandler struct {
	BaseHandler
	vendorService *vendorapp.VendorService
}

// NewVendorHandler creates a new VendorHandler
func NewVendorHandler(vendorService *vendorapp.VendorService) *VendorHandler {
	return &VendorHandler{vendorService: vendorService}
}

// Register godoc
// @Summary      Register a vendor
// @Description  Register a vendor and its store. The vendor starts pending verification with a fresh workflow.
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Param        request body vendorapp.RegisterVendorRequest true "Vendor registration"
// @Success      201 {object} dto.Response{data=vendorapp.VendorDetailResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /vendors [post]
func (h *VendorHandler) Register(c *gin.Context) {
	var req vendorapp.RegisterVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	v, err := h.vendorService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, v)
}

// GetByID godoc
// @Summary      Get vendor
// @Tags         vendors
// @Produce      json
// @Param        id path string true "Vendor ID" format(uuid)
// @Success      200 {object} dto.Response{data=vendorapp.VendorDetailResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /vendors/{id} [get]
func (h *VendorHandler) GetByID(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	v, err := h.vendorService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, v)
}

// List godoc
// @Summary      List vendors
// @Tags         vendors
// @Produce      json
// @Param        search query string false "Name, email or store name"
// @Param        status query string false "Vendor status" Enums(pending_verification, active, suspended, rejected)
// @Param        region query string false "Region"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]vendorapp.VendorResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /vendors [get]
func (h *VendorHandler) List(c *gin.Context) {
	var filter vendorapp.VendorListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}
	filter.Page, filter.PageSize = normalizePage(filter.Page, filter.PageSize)

	vendors, total, err := h.vendorService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, vendors, total, filter.Page, filter.PageSize)
}

// Suspend godoc
// @Summary      Suspend vendor
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Param        id path string true "Vendor ID" format(uuid)
// @Param        request body vendorapp.StatusChangeRequest true "Reason"
// @Success      200 {object} dto.Response{data=vendorapp.VendorResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /vendors/{id}/suspend [post]
func (h *VendorHandler) Suspend(c *gin.Context) {
	h.statusChange(c, h.vendorService.Suspend)
}

// Reject godoc
// @Summary      Reject vendor
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Param        id path string true "Vendor ID" format(uuid)
// @Param        request body vendorapp.StatusChangeRequest true "Reason"
// @Success      200 {object} dto.Response{data=vendorapp.VendorResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /vendors/{id}/reject [post]
func (h *VendorHandler) Reject(c *gin.Context) {
	h.statusChange(c, h.vendorService.Reject)
}

// Reinstate godoc
// @Summary      Reinstate vendor
// @Description  Return a suspended vendor to active
// @Tags         vendors
// @Produce      json
// @Param        id path string true "Vendor ID" format(uuid)
// @Success      200 {object} dto.Response{data=vendorapp.VendorResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /vendors/{id}/reinstate [post]
func (h *VendorHandler) Reinstate(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	v, err := h.vendorService.Reinstate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, v)
}

func (h *VendorHandler) statusChange(c *gin.Context, apply func(context.Context, uuid.UUID, vendorapp.StatusChangeRequest) (*vendorapp.VendorResponse, error)) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req vendorapp.StatusChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	v, err := apply(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, v)
}
