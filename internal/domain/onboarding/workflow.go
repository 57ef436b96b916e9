// Package onboarding models the seven-step vendor verification workflow.
//
// A Workflow is an immutable value: every transition returns a new Workflow
// and leaves the receiver untouched, so callers can diff the before and
// after values and persist only the steps that changed.
package onboarding

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/kyc"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// StepName identifies a workflow step
type StepName string

const (
	StepBasicInfo       StepName = "basic_info"
	StepTradeLicense    StepName = "trade_license"
	StepTINCertificate  StepName = "tin_certificate"
	StepBankAccount     StepName = "bank_account"
	StepNationalID      StepName = "national_id"
	StepBusinessAddress StepName = "business_address"
	StepFinalApproval   StepName = "final_approval"
)

// Steps lists the workflow steps in order
var Steps = []StepName{
	StepBasicInfo,
	StepTradeLicense,
	StepTINCertificate,
	StepBankAccount,
	StepNationalID,
	StepBusinessAddress,
	StepFinalApproval,
}

// Order returns the 1-based position of the step, or 0 for an unknown name
func (s StepName) Order() int {
	for i, name := range Steps {
		if name == s {
			return i + 1
		}
	}
	return 0
}

// IsValid reports whether s is a known step
func (s StepName) IsValid() bool {
	return s.Order() > 0
}

// IsProfileStep reports whether the step is completed from vendor profile
// data rather than by a verified document
func (s StepName) IsProfileStep() bool {
	return s == StepBasicInfo || s == StepBusinessAddress
}

// StepStatus is the progress of a single step
type StepStatus string

const (
	StepPending    StepStatus = "pending"
	StepInProgress StepStatus = "in_progress"
	StepCompleted  StepStatus = "completed"
)

// Step is one row of the workflow
type Step struct {
	Name        StepName
	Order       int
	Status      StepStatus
	StartedAt   *time.Time
	CompletedAt *time.Time
}

// Workflow is the verification progress of one vendor
type Workflow struct {
	VendorID uuid.UUID
	Steps    []Step
}

// NewWorkflow returns a fresh workflow with the first step in progress
func NewWorkflow(vendorID uuid.UUID, now time.Time) Workflow {
	steps := make([]Step, len(Steps))
	for i, name := range Steps {
		steps[i] = Step{Name: name, Order: i + 1, Status: StepPending}
	}
	steps[0].Status = StepInProgress
	steps[0].StartedAt = &now
	return Workflow{VendorID: vendorID, Steps: steps}
}

// StepForDocument maps a document type to the step its verification completes
func StepForDocument(t kyc.DocumentType) (StepName, bool) {
	switch t {
	case kyc.DocumentTypeTradeLicense:
		return StepTradeLicense, true
	case kyc.DocumentTypeTINCertificate:
		return StepTINCertificate, true
	case kyc.DocumentTypeBankStatement:
		return StepBankAccount, true
	case kyc.DocumentTypeNationalID:
		return StepNationalID, true
	default:
		return "", false
	}
}

func (w Workflow) clone() Workflow {
	steps := make([]Step, len(w.Steps))
	copy(steps, w.Steps)
	return Workflow{VendorID: w.VendorID, Steps: steps}
}

func (w Workflow) index(name StepName) int {
	for i, s := range w.Steps {
		if s.Name == name {
			return i
		}
	}
	return -1
}

// Step returns the named step
func (w Workflow) Step(name StepName) (Step, bool) {
	i := w.index(name)
	if i < 0 {
		return Step{}, false
	}
	return w.Steps[i], true
}

// Advance completes a step and moves the first unfinished step to in
// progress. Completing an already completed step returns w unchanged.
// Steps may complete out of order because documents arrive in any order.
func Advance(w Workflow, name StepName, at time.Time) (Workflow, error) {
	if name == StepFinalApproval {
		return w, shared.NewDomainError(shared.CodeInvalidState, "final_approval is completed by vendor approval")
	}
	i := w.index(name)
	if i < 0 {
		return w, shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("unknown workflow step %q", name))
	}
	if w.Steps[i].Status == StepCompleted {
		return w, nil
	}

	next := w.clone()
	complete(&next.Steps[i], at)
	next.startFirstOpen(at)
	return next, nil
}

// ReadyForFinalApproval reports whether every step before final approval is completed
func ReadyForFinalApproval(w Workflow) bool {
	if len(w.Steps) == 0 {
		return false
	}
	for _, s := range w.Steps {
		if s.Name != StepFinalApproval && s.Status != StepCompleted {
			return false
		}
	}
	return true
}

// CompleteFinalApproval completes the last step. It fails unless every other
// step is completed, and is a no-op when already done.
func CompleteFinalApproval(w Workflow, at time.Time) (Workflow, error) {
	if !ReadyForFinalApproval(w) {
		return w, shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("vendor %s has unfinished verification steps", w.VendorID))
	}
	i := w.index(StepFinalApproval)
	if w.Steps[i].Status == StepCompleted {
		return w, nil
	}
	next := w.clone()
	complete(&next.Steps[i], at)
	return next, nil
}

// IsComplete reports whether every step is completed
func IsComplete(w Workflow) bool {
	for _, s := range w.Steps {
		if s.Status != StepCompleted {
			return false
		}
	}
	return len(w.Steps) > 0
}

// CurrentStep returns the first step that is not completed. A finished
// workflow reports its last step.
func CurrentStep(w Workflow) Step {
	for _, s := range w.Steps {
		if s.Status != StepCompleted {
			return s
		}
	}
	if len(w.Steps) == 0 {
		return Step{}
	}
	return w.Steps[len(w.Steps)-1]
}

// CompletedCount returns the number of completed steps
func CompletedCount(w Workflow) int {
	n := 0
	for _, s := range w.Steps {
		if s.Status == StepCompleted {
			n++
		}
	}
	return n
}

// Changed returns the steps of next that differ from prev
func Changed(prev, next Workflow) []Step {
	var out []Step
	for _, s := range next.Steps {
		old, ok := prev.Step(s.Name)
		if !ok || old.Status != s.Status {
			out = append(out, s)
		}
	}
	return out
}

func (w *Workflow) startFirstOpen(at time.Time) {
	for i := range w.Steps {
		s := &w.Steps[i]
		if s.Status == StepCompleted {
			continue
		}
		if s.Status == StepPending {
			s.Status = StepInProgress
			s.StartedAt = &at
		}
		return
	}
}

func complete(s *Step, at time.Time) {
	if s.StartedAt == nil {
		s.StartedAt = &at
	}
	s.Status = StepCompleted
	s.CompletedAt = &at
}
