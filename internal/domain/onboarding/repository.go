package onboarding

import (
	"context"

	"github.com/google/uuid"
)

// WorkflowRepository persists workflow steps
type WorkflowRepository interface {
	// Load returns the workflow of a vendor with steps in order
	Load(ctx context.Context, vendorID uuid.UUID) (Workflow, error)
	// SaveSteps writes the given steps. A step already completed in storage
	// is never overwritten; it reports how many rows changed.
	SaveSteps(ctx context.Context, vendorID uuid.UUID, steps []Step) (int64, error)
}
