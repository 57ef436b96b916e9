package handler

import (
	"github.com/gin-gonic/gin"
	kycapp "github.com/vendorhub/backend/internal/application/kyc"
)

// KYCHandler handles document upload and review endpoints
type KYCHandler struct {
	BaseHandler
	documentService *kycapp.DocumentService
}

// NewKYCHandler creates a new KYCHandler
func NewKYCHandler(documentService *kycapp.DocumentService) *KYCHandler {
	return &KYCHandler{documentService: documentService}
}

// UploadURL godoc
// @Summary      Presign a document upload
// @Tags         kyc
// @Accept       json
// @Produce      json
// @Param        id path string true "Vendor ID" format(uuid)
// @Param        request body kycapp.UploadURLRequest true "File to upload"
// @Success      200 {object} dto.Response{data=kycapp.UploadURLResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /vendors/{id}/kyc/upload-url [post]
func (h *KYCHandler) UploadURL(c *gin.Context) {
	vendorID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req kycapp.UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.documentService.PresignUpload(c.Request.Context(), vendorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Upload godoc
// @Summary      Submit a KYC document
// @Description  A document failing validation is not stored and comes back as a 400 listing each problem.
// @Tags         kyc
// @Accept       json
// @Produce      json
// @Param        id path string true "Vendor ID" format(uuid)
// @Param        request body kycapp.UploadDocumentRequest true "Uploaded document"
// @Success      201 {object} dto.Response{data=kycapp.UploadResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /vendors/{id}/kyc/documents [post]
func (h *KYCHandler) Upload(c *gin.Context) {
	vendorID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req kycapp.UploadDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.documentService.Upload(c.Request.Context(), vendorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List godoc
// @Summary      List a vendor's documents
// @Tags         kyc
// @Produce      json
// @Param        id path string true "Vendor ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]kycapp.DocumentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /vendors/{id}/kyc/documents [get]
func (h *KYCHandler) List(c *gin.Context) {
	vendorID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	docs, err := h.documentService.List(c.Request.Context(), vendorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, docs)
}

// GetByID godoc
// @Summary      Get document
// @Tags         kyc
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Success      200 {object} dto.Response{data=kycapp.DocumentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /kyc/documents/{id} [get]
func (h *KYCHandler) GetByID(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	doc, err := h.documentService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}

// Verify godoc
// @Summary      Verify document
// @Tags         kyc
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Param        X-User-ID header string false "Reviewer"
// @Success      200 {object} dto.Response{data=kycapp.ReviewResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /kyc/documents/{id}/verify [post]
func (h *KYCHandler) Verify(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.documentService.Verify(c.Request.Context(), id, getActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Reject godoc
// @Summary      Reject document
// @Tags         kyc
// @Accept       json
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Param        X-User-ID header string false "Reviewer"
// @Param        request body kycapp.ReviewRequest true "Rejection reason"
// @Success      200 {object} dto.Response{data=kycapp.ReviewResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /kyc/documents/{id}/reject [post]
func (h *KYCHandler) Reject(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req kycapp.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.documentService.Reject(c.Request.Context(), id, getActor(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
