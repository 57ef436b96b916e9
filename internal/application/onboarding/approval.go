package onboarding

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/domain/vendor"
	"go.uber.org/zap"
)

// ApprovalCoordinator activates a vendor once verification is finished.
// The activation writes are idempotent, so the coordinator can be called
// again after a partial failure or a concurrent approval.
type ApprovalCoordinator struct {
	vendors        vendor.Repository
	approvals      vendor.ApprovalRepository
	eventPublisher shared.EventPublisher
	startingTier   vendor.Tier
	startingScore  int
	logger         *zap.Logger
	now            func() time.Time
}

// ApprovalCoordinatorConfig holds the coordinator's dependencies
type ApprovalCoordinatorConfig struct {
	Vendors        vendor.Repository
	Approvals      vendor.ApprovalRepository
	EventPublisher shared.EventPublisher
	StartingTier   vendor.Tier
	StartingScore  int
	Logger         *zap.Logger
}

// NewApprovalCoordinator creates a new ApprovalCoordinator
func NewApprovalCoordinator(cfg ApprovalCoordinatorConfig) *ApprovalCoordinator {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	tier := cfg.StartingTier
	if !tier.IsValid() {
		tier = vendor.TierBronze
	}
	score := cfg.StartingScore
	if score <= 0 {
		score = vendor.DefaultStartingScore
	}
	return &ApprovalCoordinator{
		vendors:        cfg.Vendors,
		approvals:      cfg.Approvals,
		eventPublisher: cfg.EventPublisher,
		startingTier:   tier,
		startingScore:  score,
		logger:         logger,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Approve activates the vendor, its default store and its tier record.
// Rejected and suspended vendors are refused.
func (c *ApprovalCoordinator) Approve(ctx context.Context, vendorID uuid.UUID) (vendor.ActivationOutcome, error) {
	v, err := c.vendors.FindByID(ctx, vendorID)
	if err != nil {
		return vendor.ActivationOutcome{}, err
	}
	if v.Status == vendor.StatusRejected || v.Status == vendor.StatusSuspended {
		return vendor.ActivationOutcome{}, shared.NewConflictError("vendor %s is %s and cannot be approved", v.ID, v.Status)
	}

	now := c.now()
	perf := vendor.NewInitialPerformance(vendorID, c.startingTier, c.startingScore, now)
	outcome, err := c.approvals.ApplyActivation(ctx, vendorID, perf, now)
	if err != nil {
		return vendor.ActivationOutcome{}, err
	}

	c.logger.Info("vendor approval applied",
		zap.String("vendor_id", vendorID.String()),
		zap.Bool("vendor_activated", outcome.VendorActivated),
		zap.Bool("store_activated", outcome.StoreActivated),
		zap.Bool("tier_assigned", outcome.TierAssigned),
	)

	if outcome.VendorActivated && c.eventPublisher != nil {
		v.Status = vendor.StatusActive
		v.VerifiedAt = &now
		if err := c.eventPublisher.Publish(ctx, vendor.NewVendorActivatedEvent(v, c.startingTier)); err != nil {
			c.logger.Warn("failed to publish vendor activated event",
				zap.String("vendor_id", vendorID.String()),
				zap.Error(err))
		}
	}
	return outcome, nil
}
