package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/onboarding"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/domain/vendor"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormVendorRepository implements vendor.Repository and
// vendor.RegistrationRepository using GORM
type GormVendorRepository struct {
	db *gorm.DB
}

// NewGormVendorRepository creates a new GormVendorRepository
func NewGormVendorRepository(db *gorm.DB) *GormVendorRepository {
	return &GormVendorRepository{db: db}
}

// FindByID finds a vendor by ID
func (r *GormVendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*vendor.Vendor, error) {
	var model models.VendorModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translateNotFound(err, "vendor", id)
	}
	return model.ToDomain(), nil
}

// FindAll lists vendors. Supported filters: status, region.
func (r *GormVendorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]vendor.Vendor, int64, error) {
	filter = filter.Normalize()
	query := r.db.WithContext(ctx).Model(&models.VendorModel{})

	if status, ok := filter.Filters["status"]; ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if region, ok := filter.Filters["region"]; ok && region != "" {
		query = query.Where("region = ?", region)
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(business_name) LIKE ? OR email LIKE ? OR phone LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.VendorModel
	err := query.Order(orderClause(filter, vendorSortColumns)).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	vendors := make([]vendor.Vendor, len(rows))
	for i := range rows {
		vendors[i] = *rows[i].ToDomain()
	}
	return vendors, total, nil
}

// ExistsByEmail reports whether a vendor already uses the email
func (r *GormVendorRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.VendorModel{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error
	return count > 0, err
}

// UpdateStatus saves the status fields when the stored status is still expected
func (r *GormVendorRepository) UpdateStatus(ctx context.Context, v *vendor.Vendor, expected vendor.Status) error {
	result := r.db.WithContext(ctx).Model(&models.VendorModel{}).
		Where("id = ? AND status = ?", v.ID, expected).
		Updates(map[string]any{
			"status":        v.Status,
			"status_reason": v.StatusReason,
			"verified_at":   v.VerifiedAt,
			"updated_at":    v.UpdatedAt,
			"version":       gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewConflictError("vendor %s is no longer %s", v.ID, expected)
	}
	v.IncrementVersion()
	return nil
}

// UpdateRegistrationStep records the furthest workflow step reached
func (r *GormVendorRepository) UpdateRegistrationStep(ctx context.Context, id uuid.UUID, step int) error {
	return r.db.WithContext(ctx).Model(&models.VendorModel{}).
		Where("id = ? AND registration_step < ?", id, step).
		Update("registration_step", step).Error
}

// FindDefaultStore returns the vendor's default store
func (r *GormVendorRepository) FindDefaultStore(ctx context.Context, vendorID uuid.UUID) (*vendor.Store, error) {
	var model models.StoreModel
	err := r.db.WithContext(ctx).
		Where("vendor_id = ? AND is_default = ?", vendorID, true).
		First(&model).Error
	if err != nil {
		return nil, translateNotFound(err, "store", vendorID)
	}
	return model.ToDomain(), nil
}

// FindPerformance returns the vendor's tier record
func (r *GormVendorRepository) FindPerformance(ctx context.Context, vendorID uuid.UUID) (*vendor.Performance, error) {
	var model models.VendorPerformanceModel
	if err := r.db.WithContext(ctx).Where("vendor_id = ?", vendorID).First(&model).Error; err != nil {
		return nil, translateNotFound(err, "vendor performance", vendorID)
	}
	return model.ToDomain(), nil
}

// Register stores the vendor, its default store and workflow atomically
func (r *GormVendorRepository) Register(ctx context.Context, v *vendor.Vendor, store *vendor.Store, workflow onboarding.Workflow) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(models.VendorModelFromDomain(v)).Error; err != nil {
			if isDuplicate(err) {
				return shared.NewDomainError(shared.CodeAlreadyExists, "a vendor with this email already exists")
			}
			return err
		}
		if err := tx.Create(models.StoreModelFromDomain(store)).Error; err != nil {
			return err
		}
		steps := make([]*models.WorkflowStepModel, 0, len(workflow.Steps))
		for _, s := range workflow.Steps {
			steps = append(steps, models.WorkflowStepModelFromDomain(v.ID, s, v.CreatedAt))
		}
		return tx.Create(&steps).Error
	})
}

// Ensure interfaces are implemented
var (
	_ vendor.Repository             = (*GormVendorRepository)(nil)
	_ vendor.RegistrationRepository = (*GormVendorRepository)(nil)
)
