package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/onboarding"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormWorkflowRepository implements onboarding.WorkflowRepository using GORM
type GormWorkflowRepository struct {
	db *gorm.DB
}

// NewGormWorkflowRepository creates a new GormWorkflowRepository
func NewGormWorkflowRepository(db *gorm.DB) *GormWorkflowRepository {
	return &GormWorkflowRepository{db: db}
}

// Load returns the vendor's workflow. A vendor without rows is not found.
func (r *GormWorkflowRepository) Load(ctx context.Context, vendorID uuid.UUID) (onboarding.Workflow, error) {
	var rows []models.WorkflowStepModel
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("step_order ASC").
		Find(&rows).Error
	if err != nil {
		return onboarding.Workflow{}, err
	}
	if len(rows) == 0 {
		return onboarding.Workflow{}, translateNotFound(gorm.ErrRecordNotFound, "workflow", vendorID)
	}
	w := onboarding.Workflow{VendorID: vendorID, Steps: make([]onboarding.Step, len(rows))}
	for i := range rows {
		w.Steps[i] = rows[i].ToDomain()
	}
	return w, nil
}

// SaveSteps writes each step unless its stored row is already completed.
// The returned count lets callers detect that a concurrent writer won.
func (r *GormWorkflowRepository) SaveSteps(ctx context.Context, vendorID uuid.UUID, steps []onboarding.Step) (int64, error) {
	var changed int64
	now := time.Now().UTC()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, s := range steps {
			res := tx.Model(&models.WorkflowStepModel{}).
				Where("vendor_id = ? AND step_name = ? AND status <> ?", vendorID, s.Name, onboarding.StepCompleted).
				Updates(map[string]any{
					"status":       s.Status,
					"started_at":   s.StartedAt,
					"completed_at": s.CompletedAt,
					"updated_at":   now,
				})
			if res.Error != nil {
				return res.Error
			}
			changed += res.RowsAffected
		}
		return nil
	})
	return changed, err
}

var _ onboarding.WorkflowRepository = (*GormWorkflowRepository)(nil)
