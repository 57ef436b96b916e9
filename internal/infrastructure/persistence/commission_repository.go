package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorhub/backend/internal/domain/commission"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// sumScale is the storage scale of money columns. Drivers that return
// floating point sums are rounded back to it.
const sumScale = 4

// GormCommissionRepository implements commission.Repository using GORM
type GormCommissionRepository struct {
	db *gorm.DB
}

// NewGormCommissionRepository creates a new GormCommissionRepository
func NewGormCommissionRepository(db *gorm.DB) *GormCommissionRepository {
	return &GormCommissionRepository{db: db}
}

// Create inserts a commission
func (r *GormCommissionRepository) Create(ctx context.Context, c *commission.Commission) error {
	err := r.db.WithContext(ctx).Create(models.CommissionModelFromDomain(c)).Error
	if isDuplicate(err) {
		return shared.NewDomainError(shared.CodeAlreadyExists,
			"commission for transaction "+c.TransactionID+" has already been recorded")
	}
	return err
}

// FindByTransactionID finds the commission recorded for a sale
func (r *GormCommissionRepository) FindByTransactionID(ctx context.Context, transactionID string) (*commission.Commission, error) {
	var model models.CommissionModel
	if err := r.db.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&model).Error; err != nil {
		return nil, translateNotFound(err, "commission", transactionID)
	}
	return model.ToDomain(), nil
}

// FindInPeriod lists commissions with transaction_date in [from, to)
func (r *GormCommissionRepository) FindInPeriod(ctx context.Context, vendorID uuid.UUID, from, to time.Time) ([]commission.Commission, error) {
	var rows []models.CommissionModel
	err := r.db.WithContext(ctx).
		Where("vendor_id = ? AND transaction_date >= ? AND transaction_date < ?", vendorID, from.UTC(), to.UTC()).
		Order("transaction_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]commission.Commission, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

type commissionTotalsRow struct {
	Count           int64
	GrossAmount     decimal.Decimal
	CommissionTotal decimal.Decimal
	PlatformFees    decimal.Decimal
	NetCommissions  decimal.Decimal
}

// SumInPeriod totals commissions with transaction_date in [from, to)
func (r *GormCommissionRepository) SumInPeriod(ctx context.Context, vendorID uuid.UUID, from, to time.Time) (commission.Totals, error) {
	var row commissionTotalsRow
	err := r.db.WithContext(ctx).Model(&models.CommissionModel{}).
		Select(`COUNT(*) AS count,
			COALESCE(SUM(gross_amount), 0) AS gross_amount,
			COALESCE(SUM(commission_amount), 0) AS commission_total,
			COALESCE(SUM(platform_fee), 0) AS platform_fees,
			COALESCE(SUM(net_commission), 0) AS net_commissions`).
		Where("vendor_id = ? AND transaction_date >= ? AND transaction_date < ?", vendorID, from.UTC(), to.UTC()).
		Scan(&row).Error
	if err != nil {
		return commission.Totals{}, err
	}
	return commission.Totals{
		Count:           row.Count,
		GrossAmount:     row.GrossAmount.Round(sumScale),
		CommissionTotal: row.CommissionTotal.Round(sumScale),
		PlatformFees:    row.PlatformFees.Round(sumScale),
		NetCommissions:  row.NetCommissions.Round(sumScale),
	}, nil
}

// GormCommissionRateRepository implements commission.RateRepository using GORM
type GormCommissionRateRepository struct {
	db *gorm.DB
}

// NewGormCommissionRateRepository creates a new GormCommissionRateRepository
func NewGormCommissionRateRepository(db *gorm.DB) *GormCommissionRateRepository {
	return &GormCommissionRateRepository{db: db}
}

// FindActive returns the vendor's active rate
func (r *GormCommissionRateRepository) FindActive(ctx context.Context, vendorID uuid.UUID) (*commission.Rate, error) {
	var model models.CommissionRateModel
	err := r.db.WithContext(ctx).
		Where("vendor_id = ? AND is_active = ?", vendorID, true).
		Order("effective_from DESC").
		First(&model).Error
	if err != nil {
		return nil, translateNotFound(err, "commission rate", vendorID)
	}
	return model.ToDomain(), nil
}

// Activate deactivates the current rate and stores rate as active
func (r *GormCommissionRateRepository) Activate(ctx context.Context, rate *commission.Rate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.CommissionRateModel{}).
			Where("vendor_id = ? AND is_active = ?", rate.VendorID, true).
			Update("is_active", false).Error
		if err != nil {
			return err
		}
		return tx.Create(models.CommissionRateModelFromDomain(rate)).Error
	})
}

var (
	_ commission.Repository     = (*GormCommissionRepository)(nil)
	_ commission.RateRepository = (*GormCommissionRateRepository)(nil)
)
