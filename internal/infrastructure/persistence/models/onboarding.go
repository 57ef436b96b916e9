package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/onboarding"
)

// WorkflowStepModel is one row of a vendor's verification workflow
type WorkflowStepModel struct {
	ID          uuid.UUID             `gorm:"type:uuid;primary_key"`
	VendorID    uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex:idx_workflow_vendor_step,priority:1"`
	StepName    onboarding.StepName   `gorm:"type:varchar(30);not null;uniqueIndex:idx_workflow_vendor_step,priority:2"`
	StepOrder   int                   `gorm:"not null"`
	Status      onboarding.StepStatus `gorm:"type:varchar(20);not null"`
	StartedAt   *time.Time
	CompletedAt *time.Time
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (WorkflowStepModel) TableName() string {
	return "verification_workflow_steps"
}

// ToDomain converts the persistence model to a domain Step
func (m *WorkflowStepModel) ToDomain() onboarding.Step {
	return onboarding.Step{
		Name:        m.StepName,
		Order:       m.StepOrder,
		Status:      m.Status,
		StartedAt:   m.StartedAt,
		CompletedAt: m.CompletedAt,
	}
}

// WorkflowStepModelFromDomain creates a persistence model from a domain Step
func WorkflowStepModelFromDomain(vendorID uuid.UUID, s onboarding.Step, now time.Time) *WorkflowStepModel {
	return &WorkflowStepModel{
		ID:          uuid.New(),
		VendorID:    vendorID,
		StepName:    s.Name,
		StepOrder:   s.Order,
		Status:      s.Status,
		StartedAt:   s.StartedAt,
		CompletedAt: s.CompletedAt,
		UpdatedAt:   now,
	}
}
