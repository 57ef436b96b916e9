package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/onboarding"
	"github.com/vendorhub/backend/internal/domain/vendor"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormApprovalRepository implements vendor.ApprovalRepository using GORM
type GormApprovalRepository struct {
	db *gorm.DB
}

// NewGormApprovalRepository creates a new GormApprovalRepository
func NewGormApprovalRepository(db *gorm.DB) *GormApprovalRepository {
	return &GormApprovalRepository{db: db}
}

// ApplyActivation runs the three approval writes in one transaction. Every
// write is conditional on its target state not holding yet.
func (r *GormApprovalRepository) ApplyActivation(ctx context.Context, vendorID uuid.UUID, perf vendor.Performance, at time.Time) (vendor.ActivationOutcome, error) {
	var outcome vendor.ActivationOutcome
	at = at.UTC()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.VendorModel{}).
			Where("id = ? AND status = ?", vendorID, vendor.StatusPendingVerification).
			Updates(map[string]any{
				"status":            vendor.StatusActive,
				"verified_at":       at,
				"registration_step": onboarding.StepFinalApproval.Order(),
				"updated_at":        at,
				"version":           gorm.Expr("version + 1"),
			})
		if res.Error != nil {
			return res.Error
		}
		outcome.VendorActivated = res.RowsAffected > 0

		res = tx.Model(&models.StoreModel{}).
			Where("vendor_id = ? AND is_default = ? AND is_active = ?", vendorID, true, false).
			Updates(map[string]any{"is_active": true, "updated_at": at})
		if res.Error != nil {
			return res.Error
		}
		outcome.StoreActivated = res.RowsAffected > 0

		res = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "vendor_id"}},
			DoNothing: true,
		}).Create(models.VendorPerformanceModelFromDomain(perf))
		if res.Error != nil {
			return res.Error
		}
		outcome.TierAssigned = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return vendor.ActivationOutcome{}, err
	}
	return outcome, nil
}

var _ vendor.ApprovalRepository = (*GormApprovalRepository)(nil)
