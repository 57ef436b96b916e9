package onboarding

import (
	"time"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/onboarding"
)

// StepResponse represents one workflow step in API responses
type StepResponse struct {
	Name        string     `json:"name"`
	Order       int        `json:"order"`
	Status      string     `json:"status"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// WorkflowResponse represents a vendor's verification progress
type WorkflowResponse struct {
	VendorID       uuid.UUID      `json:"vendor_id"`
	CurrentStep    string         `json:"current_step"`
	CompletedSteps int            `json:"completed_steps"`
	TotalSteps     int            `json:"total_steps"`
	IsComplete     bool           `json:"is_complete"`
	Steps          []StepResponse `json:"steps"`
}

// ToWorkflowResponse converts a domain workflow to a response
func ToWorkflowResponse(w onboarding.Workflow) WorkflowResponse {
	steps := make([]StepResponse, len(w.Steps))
	for i, s := range w.Steps {
		steps[i] = StepResponse{
			Name:        string(s.Name),
			Order:       s.Order,
			Status:      string(s.Status),
			StartedAt:   s.StartedAt,
			CompletedAt: s.CompletedAt,
		}
	}
	return WorkflowResponse{
		VendorID:       w.VendorID,
		CurrentStep:    string(onboarding.CurrentStep(w).Name),
		CompletedSteps: onboarding.CompletedCount(w),
		TotalSteps:     len(w.Steps),
		IsComplete:     onboarding.IsComplete(w),
		Steps:          steps,
	}
}
