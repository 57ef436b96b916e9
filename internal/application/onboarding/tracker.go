package onboarding

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/kyc"
	"github.com/vendorhub/backend/internal/domain/onboarding"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/domain/vendor"
	"go.uber.org/zap"
)

// Approver activates a vendor whose workflow is ready for final approval
type Approver interface {
	Approve(ctx context.Context, vendorID uuid.UUID) (vendor.ActivationOutcome, error)
}

// WorkflowTracker advances a vendor's verification workflow and hands
// finished workflows to the approver
type WorkflowTracker struct {
	workflows onboarding.WorkflowRepository
	vendors   vendor.Repository
	approver  Approver
	logger    *zap.Logger
	now       func() time.Time
}

// NewWorkflowTracker creates a new WorkflowTracker
func NewWorkflowTracker(workflows onboarding.WorkflowRepository, vendors vendor.Repository, approver Approver, logger *zap.Logger) *WorkflowTracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkflowTracker{
		workflows: workflows,
		vendors:   vendors,
		approver:  approver,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Progress returns the vendor's workflow
func (t *WorkflowTracker) Progress(ctx context.Context, vendorID uuid.UUID) (*WorkflowResponse, error) {
	if _, err := t.vendors.FindByID(ctx, vendorID); err != nil {
		return nil, err
	}
	w, err := t.workflows.Load(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	resp := ToWorkflowResponse(w)
	return &resp, nil
}

// CompleteProfileStep completes basic_info or business_address
func (t *WorkflowTracker) CompleteProfileStep(ctx context.Context, vendorID uuid.UUID, step onboarding.StepName) (*WorkflowResponse, error) {
	if !step.IsProfileStep() {
		return nil, shared.NewValidationError("invalid workflow step",
			shared.FieldError{
				Field:   "step",
				Code:    "invalid_value",
				Message: "only basic_info and business_address can be completed directly",
			})
	}
	w, err := t.CompleteStep(ctx, vendorID, step)
	if err != nil {
		return nil, err
	}
	resp := ToWorkflowResponse(w)
	return &resp, nil
}

// DocumentVerified completes the workflow step a verified document satisfies
func (t *WorkflowTracker) DocumentVerified(ctx context.Context, vendorID uuid.UUID, docType kyc.DocumentType) (onboarding.Workflow, error) {
	step, ok := onboarding.StepForDocument(docType)
	if !ok {
		return onboarding.Workflow{}, shared.NewDomainError(shared.CodeInvalidInput, "document type "+string(docType)+" has no workflow step")
	}
	return t.CompleteStep(ctx, vendorID, step)
}

// CompleteStep marks a step completed, persists the changed steps and runs
// final approval once every other step is done
func (t *WorkflowTracker) CompleteStep(ctx context.Context, vendorID uuid.UUID, step onboarding.StepName) (onboarding.Workflow, error) {
	v, err := t.vendors.FindByID(ctx, vendorID)
	if err != nil {
		return onboarding.Workflow{}, err
	}
	if v.Status == vendor.StatusRejected || v.Status == vendor.StatusSuspended {
		return onboarding.Workflow{}, shared.NewConflictError("vendor %s is %s; verification is closed", v.ID, v.Status)
	}

	current, err := t.workflows.Load(ctx, vendorID)
	if err != nil {
		return onboarding.Workflow{}, err
	}
	next, err := onboarding.Advance(current, step, t.now())
	if err != nil {
		return onboarding.Workflow{}, err
	}
	written, err := t.save(ctx, current, next)
	if err != nil {
		return onboarding.Workflow{}, err
	}
	if len(onboarding.Changed(current, next)) > 0 {
		// Steps completed concurrently by other requests count toward
		// final approval, so readiness is judged on the stored state.
		if next, err = t.workflows.Load(ctx, vendorID); err != nil {
			return onboarding.Workflow{}, err
		}
	}
	if written {
		t.logger.Info("workflow step completed",
			zap.String("vendor_id", vendorID.String()),
			zap.String("step", string(step)),
			zap.Int("completed_steps", onboarding.CompletedCount(next)),
		)
	}

	if onboarding.ReadyForFinalApproval(next) && !onboarding.IsComplete(next) {
		return t.finalize(ctx, next)
	}
	return next, nil
}

// finalize approves the vendor and then completes final_approval. A crash
// between the two leaves the step open; the next call repeats the
// idempotent approval and closes it.
func (t *WorkflowTracker) finalize(ctx context.Context, w onboarding.Workflow) (onboarding.Workflow, error) {
	if _, err := t.approver.Approve(ctx, w.VendorID); err != nil {
		return w, err
	}
	done, err := onboarding.CompleteFinalApproval(w, t.now())
	if err != nil {
		return w, err
	}
	if _, err := t.save(ctx, w, done); err != nil {
		return w, err
	}
	return done, nil
}

// save reports whether any step row was written. Zero rows means another
// request already stored the same completions.
func (t *WorkflowTracker) save(ctx context.Context, prev, next onboarding.Workflow) (bool, error) {
	changed := onboarding.Changed(prev, next)
	if len(changed) == 0 {
		return false, nil
	}
	rows, err := t.workflows.SaveSteps(ctx, next.VendorID, changed)
	if err != nil || rows == 0 {
		return false, err
	}
	return true, t.vendors.UpdateRegistrationStep(ctx, next.VendorID, onboarding.CurrentStep(next).Order)
}
