package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorhub/backend/internal/domain/payout"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPayoutRepository implements payout.Repository using GORM
type GormPayoutRepository struct {
	db *gorm.DB
}

// NewGormPayoutRepository creates a new GormPayoutRepository
func NewGormPayoutRepository(db *gorm.DB) *GormPayoutRepository {
	return &GormPayoutRepository{db: db}
}

// Create inserts a pending payout and its generation audit entry
func (r *GormPayoutRepository) Create(ctx context.Context, p *payout.Payout, entry payout.AuditEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(models.PayoutModelFromDomain(p)).Error; err != nil {
			if isDuplicate(err) {
				return shared.NewConflictError("a payout for vendor %s and period %s already exists", p.VendorID, p.Period)
			}
			return err
		}
		return tx.Create(models.PayoutAuditModelFromDomain(entry)).Error
	})
}

// FindByID finds a payout by ID
func (r *GormPayoutRepository) FindByID(ctx context.Context, id uuid.UUID) (*payout.Payout, error) {
	var model models.PayoutModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translateNotFound(err, "payout", id)
	}
	return model.ToDomain(), nil
}

// FindActiveForPeriod returns the non-failed payout for exactly the period
func (r *GormPayoutRepository) FindActiveForPeriod(ctx context.Context, vendorID uuid.UUID, period payout.Period) (*payout.Payout, error) {
	var model models.PayoutModel
	err := r.db.WithContext(ctx).
		Where("vendor_id = ? AND period_start = ? AND period_end = ? AND status <> ?",
			vendorID, period.Start, period.End, payout.StatusFailed).
		First(&model).Error
	if err != nil {
		return nil, translateNotFound(err, "payout", period.String())
	}
	return model.ToDomain(), nil
}

// FindCovering returns the earliest non-failed payout whose period includes
// the calendar day of at
func (r *GormPayoutRepository) FindCovering(ctx context.Context, vendorID uuid.UUID, at time.Time) (*payout.Payout, error) {
	at = at.UTC()
	day := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
	var model models.PayoutModel
	err := r.db.WithContext(ctx).
		Where("vendor_id = ? AND period_start <= ? AND period_end >= ? AND status <> ?",
			vendorID, day, day, payout.StatusFailed).
		Order("period_start").
		First(&model).Error
	if err != nil {
		return nil, translateNotFound(err, "payout", day.Format(payout.DateLayout))
	}
	return model.ToDomain(), nil
}

// FindAll lists payouts. Supported filters: vendor_id, status.
func (r *GormPayoutRepository) FindAll(ctx context.Context, filter shared.Filter) ([]payout.Payout, int64, error) {
	filter = filter.Normalize()
	query := r.db.WithContext(ctx).Model(&models.PayoutModel{})

	if vendorID, ok := filter.Filters["vendor_id"]; ok && vendorID != "" {
		query = query.Where("vendor_id = ?", vendorID)
	}
	if status, ok := filter.Filters["status"]; ok && status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.PayoutModel
	err := query.Order(orderClause(filter, payoutSortColumns)).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	payouts := make([]payout.Payout, len(rows))
	for i := range rows {
		payouts[i] = *rows[i].ToDomain()
	}
	return payouts, total, nil
}

// Transition saves p when its stored status still equals from and appends
// the audit entry in the same transaction
func (r *GormPayoutRepository) Transition(ctx context.Context, p *payout.Payout, from payout.Status, entry payout.AuditEntry) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.PayoutModel{}).
			Where("id = ? AND status = ?", p.ID, from).
			Updates(map[string]any{
				"status":                    p.Status,
				"settlement_reference":      p.SettlementReference,
				"estimated_processing_time": p.EstimatedProcessingTime,
				"processing_started_at":     p.ProcessingStartedAt,
				"completed_at":              p.CompletedAt,
				"failed_at":                 p.FailedAt,
				"failure_reason":            p.FailureReason,
				"updated_at":                p.UpdatedAt,
				"version":                   gorm.Expr("version + 1"),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return shared.NewConflictError("payout %s is no longer %s", p.ID, from)
		}
		return tx.Create(models.PayoutAuditModelFromDomain(entry)).Error
	})
	if err != nil {
		return err
	}
	p.IncrementVersion()
	return nil
}

// AuditTrail returns a payout's audit entries, oldest first
func (r *GormPayoutRepository) AuditTrail(ctx context.Context, payoutID uuid.UUID) ([]payout.AuditEntry, error) {
	var rows []models.PayoutAuditModel
	err := r.db.WithContext(ctx).
		Where("payout_id = ?", payoutID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	entries := make([]payout.AuditEntry, len(rows))
	for i := range rows {
		entries[i] = rows[i].ToDomain()
	}
	return entries, nil
}

// GormAdjustmentRepository implements payout.AdjustmentRepository using GORM
type GormAdjustmentRepository struct {
	db *gorm.DB
}

// NewGormAdjustmentRepository creates a new GormAdjustmentRepository
func NewGormAdjustmentRepository(db *gorm.DB) *GormAdjustmentRepository {
	return &GormAdjustmentRepository{db: db}
}

// Create inserts an adjustment
func (r *GormAdjustmentRepository) Create(ctx context.Context, a *payout.Adjustment) error {
	return r.db.WithContext(ctx).Create(models.PayoutAdjustmentModelFromDomain(a)).Error
}

// SumInPeriod totals adjustments dated in [from, to)
func (r *GormAdjustmentRepository) SumInPeriod(ctx context.Context, vendorID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&models.PayoutAdjustmentModel{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("vendor_id = ? AND adjustment_date >= ? AND adjustment_date < ?", vendorID, from.UTC(), to.UTC()).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Total.Round(sumScale), nil
}

// FindByVendor lists a vendor's adjustments, newest first
func (r *GormAdjustmentRepository) FindByVendor(ctx context.Context, vendorID uuid.UUID) ([]payout.Adjustment, error) {
	var rows []models.PayoutAdjustmentModel
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("adjustment_date DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]payout.Adjustment, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

var (
	_ payout.Repository           = (*GormPayoutRepository)(nil)
	_ payout.AdjustmentRepository = (*GormAdjustmentRepository)(nil)
)
