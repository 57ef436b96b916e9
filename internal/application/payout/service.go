package payout

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendorhub/backend/internal/domain/commission"
	"github.com/vendorhub/backend/internal/domain/payout"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/domain/vendor"
	"go.uber.org/zap"
)

// PayoutService aggregates commissions into payouts and exposes their history
type PayoutService struct {
	payouts        payout.Repository
	adjustments    payout.AdjustmentRepository
	commissions    commission.Repository
	vendors        vendor.Repository
	eventPublisher shared.EventPublisher
	taxRate        decimal.Decimal
	logger         *zap.Logger
	now            func() time.Time
}

// PayoutServiceConfig holds the service's dependencies
type PayoutServiceConfig struct {
	Payouts        payout.Repository
	Adjustments    payout.AdjustmentRepository
	Commissions    commission.Repository
	Vendors        vendor.Repository
	EventPublisher shared.EventPublisher
	// WithholdingTaxRate is withheld from net commissions; nil uses
	// payout.DefaultWithholdingTaxRate
	WithholdingTaxRate *decimal.Decimal
	Logger             *zap.Logger
}

// NewPayoutService creates a new PayoutService
func NewPayoutService(cfg PayoutServiceConfig) *PayoutService {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	taxRate := payout.DefaultWithholdingTaxRate
	if cfg.WithholdingTaxRate != nil {
		taxRate = *cfg.WithholdingTaxRate
	}
	return &PayoutService{
		payouts:        cfg.Payouts,
		adjustments:    cfg.Adjustments,
		commissions:    cfg.Commissions,
		vendors:        cfg.Vendors,
		eventPublisher: cfg.EventPublisher,
		taxRate:        taxRate,
		logger:         logger,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Calculate previews the payout of a period without writing anything
func (s *PayoutService) Calculate(ctx context.Context, vendorID uuid.UUID, query PeriodQuery) (*CalculationResponse, error) {
	period, err := payout.ParsePeriod(query.PeriodStart, query.PeriodEnd)
	if err != nil {
		return nil, err
	}
	if _, err := s.vendors.FindByID(ctx, vendorID); err != nil {
		return nil, err
	}
	calc, err := s.calculate(ctx, vendorID, period)
	if err != nil {
		return nil, err
	}
	resp := ToCalculationResponse(calc)
	return &resp, nil
}

// Generate freezes the period's figures into a pending payout. At most one
// non-failed payout exists per vendor and period.
func (s *PayoutService) Generate(ctx context.Context, vendorID uuid.UUID, req GeneratePayoutRequest, actor string) (*PayoutResponse, error) {
	period, err := payout.ParsePeriod(req.PeriodStart, req.PeriodEnd)
	if err != nil {
		return nil, err
	}
	method := payout.Method(req.PayoutMethod)
	details := payout.Details(req.PayoutDetails)
	if err := payout.ValidateDetails(method, details); err != nil {
		return nil, err
	}

	v, err := s.vendors.FindByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if !v.IsActive() || v.VerifiedAt == nil {
		return nil, shared.NewConflictError("vendor %s is %s; payouts require a verified active vendor", v.ID, v.Status)
	}

	existing, err := s.payouts.FindActiveForPeriod(ctx, vendorID, period)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewConflictError("payout %s (%s) already covers %s for vendor %s",
			existing.ID, existing.Status, period, vendorID)
	}

	calc, err := s.calculate(ctx, vendorID, period)
	if err != nil {
		return nil, err
	}
	p, err := payout.NewPayout(calc, method, details)
	if err != nil {
		return nil, err
	}
	entry := payout.NewAuditEntry(p, payout.AuditGenerated, actor, "", map[string]any{
		"net_payout_amount": p.NetPayoutAmount.String(),
		"commission_count":  p.CommissionCount,
		"payout_method":     string(p.Method),
	}, s.now())
	if err := s.payouts.Create(ctx, p, entry); err != nil {
		return nil, err
	}

	s.logger.Info("payout generated",
		zap.String("payout_id", p.ID.String()),
		zap.String("vendor_id", vendorID.String()),
		zap.String("period", period.String()),
		zap.String("amount", p.NetPayoutAmount.String()),
	)
	publishEvents(ctx, s.eventPublisher, s.logger, p)

	resp := ToPayoutResponse(p)
	return &resp, nil
}

// GetByID returns a payout
func (s *PayoutService) GetByID(ctx context.Context, id uuid.UUID) (*PayoutResponse, error) {
	p, err := s.payouts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToPayoutResponse(p)
	return &resp, nil
}

// List returns payout history, newest first by default
func (s *PayoutService) List(ctx context.Context, filter PayoutListFilter) ([]PayoutResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  make(map[string]any),
	}
	if domainFilter.OrderBy == "" {
		domainFilter.OrderBy = "created_at"
	}
	if filter.VendorID != "" {
		domainFilter.Filters["vendor_id"] = filter.VendorID
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	payouts, total, err := s.payouts.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]PayoutResponse, len(payouts))
	for i := range payouts {
		out[i] = ToPayoutResponse(&payouts[i])
	}
	return out, total, nil
}

// AuditTrail returns a payout's transitions in the order they happened
func (s *PayoutService) AuditTrail(ctx context.Context, id uuid.UUID) ([]AuditEntryResponse, error) {
	if _, err := s.payouts.FindByID(ctx, id); err != nil {
		return nil, err
	}
	entries, err := s.payouts.AuditTrail(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToAuditEntryResponses(entries), nil
}

// AddAdjustment records a correction counted in the period containing its
// date. Without a date it is dated today. A date inside a period that a
// non-failed payout already covers is a conflict.
func (s *PayoutService) AddAdjustment(ctx context.Context, vendorID uuid.UUID, req AdjustmentRequest, actor string) (*AdjustmentResponse, error) {
	if _, err := s.vendors.FindByID(ctx, vendorID); err != nil {
		return nil, err
	}
	date := s.now()
	if req.AdjustmentDate != "" {
		parsed, err := time.Parse(payout.DateLayout, req.AdjustmentDate)
		if err != nil {
			return nil, shared.NewValidationError("invalid adjustment",
				shared.FieldError{Field: "adjustment_date", Code: "invalid_date", Message: "adjustment_date must be YYYY-MM-DD"})
		}
		date = parsed
	}
	a, err := payout.NewAdjustment(vendorID, req.Amount, req.Reason, date, actorOrSystem(actor))
	if err != nil {
		return nil, err
	}
	if err := payout.EnsureUnsettled(ctx, s.payouts, vendorID, a.AdjustmentDate); err != nil {
		return nil, err
	}
	if err := s.adjustments.Create(ctx, a); err != nil {
		return nil, err
	}
	s.logger.Info("payout adjustment recorded",
		zap.String("vendor_id", vendorID.String()),
		zap.String("amount", a.Amount.String()),
		zap.String("created_by", a.CreatedBy))

	resp := ToAdjustmentResponse(a)
	return &resp, nil
}

// ListAdjustments returns a vendor's adjustments, newest first
func (s *PayoutService) ListAdjustments(ctx context.Context, vendorID uuid.UUID) ([]AdjustmentResponse, error) {
	if _, err := s.vendors.FindByID(ctx, vendorID); err != nil {
		return nil, err
	}
	rows, err := s.adjustments.FindByVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	out := make([]AdjustmentResponse, len(rows))
	for i := range rows {
		out[i] = ToAdjustmentResponse(&rows[i])
	}
	return out, nil
}

func (s *PayoutService) calculate(ctx context.Context, vendorID uuid.UUID, period payout.Period) (payout.Calculation, error) {
	from, to := period.QueryBounds()
	totals, err := s.commissions.SumInPeriod(ctx, vendorID, from, to)
	if err != nil {
		return payout.Calculation{}, err
	}
	adjustments, err := s.adjustments.SumInPeriod(ctx, vendorID, from, to)
	if err != nil {
		return payout.Calculation{}, err
	}
	return payout.Aggregate(vendorID, period, totals, adjustments, s.taxRate), nil
}

func publishEvents(ctx context.Context, publisher shared.EventPublisher, logger *zap.Logger, p *payout.Payout) {
	events := p.PendingEvents()
	p.ClearEvents()
	if publisher == nil || len(events) == 0 {
		return
	}
	if err := publisher.Publish(ctx, events...); err != nil {
		logger.Warn("failed to publish payout events",
			zap.String("payout_id", p.ID.String()),
			zap.Error(err))
	}
}

func actorOrSystem(actor string) string {
	if actor == "" {
		return "system"
	}
	return actor
}
