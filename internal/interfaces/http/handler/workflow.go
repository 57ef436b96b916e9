package handler

import (
	"github.com/gin-gonic/gin"
	onboardingapp "github.com/vendorhub/backend/internal/application/onboarding"
	"github.com/vendorhub/backend/internal/domain/onboarding"
)

// WorkflowHandler exposes a vendor's verification workflow
type WorkflowHandler struct {
	BaseHandler
	tracker *onboardingapp.WorkflowTracker
}

// NewWorkflowHandler creates a new WorkflowHandler
func NewWorkflowHandler(tracker *onboardingapp.WorkflowTracker) *WorkflowHandler {
	return &WorkflowHandler{tracker: tracker}
}

// Progress godoc
// @Summary      Get verification workflow
// @Tags         workflow
// @Produce      json
// @Param        id path string true "Vendor ID" format(uuid)
// @Success      200 {object} dto.Response{data=onboardingapp.WorkflowResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /vendors/{id}/workflow [get]
func (h *WorkflowHandler) Progress(c *gin.Context) {
	vendorID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	wf, err := h.tracker.Progress(c.Request.Context(), vendorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, wf)
}

// CompleteStep godoc
// @Summary      Complete a profile step
// @Description  Only profile steps can be completed here. Document steps follow their document's verification.
// @Tags         workflow
// @Produce      json
// @Param        id path string true "Vendor ID" format(uuid)
// @Param        step path string true "Step name"
// @Success      200 {object} dto.Response{data=onboardingapp.WorkflowResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /vendors/{id}/workflow/steps/{step}/complete [post]
func (h *WorkflowHandler) CompleteStep(c *gin.Context) {
	vendorID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	wf, err := h.tracker.CompleteProfileStep(c.Request.Context(), vendorID, onboarding.StepName(c.Param("step")))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, wf)
}
