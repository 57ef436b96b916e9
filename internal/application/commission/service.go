package commission

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

// CommissionService records sale commissions and manages vendor rates
type CommissionService struct {
	commissions commission.Repository
	rates       commission.RateRepository
	vendors     vendor.Repository
	payouts     payout.Repository
	calculator  commission.Calculator
	logger      *zap.Logger
}

// CommissionServiceConfig holds the service's dependencies
type CommissionServiceConfig struct {
	Commissions commission.Repository
	Rates       commission.RateRepository
	Vendors     vendor.Repository
	Payouts     payout.Repository
	Calculator  *commission.Calculator // nil uses commission.DefaultCalculator
	Logger      *zap.Logger
}

// NewCommissionService creates a new CommissionService
func NewCommissionService(cfg CommissionServiceConfig) *CommissionService {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	calc := commission.DefaultCalculator()
	if cfg.Calculator != nil {
		calc = *cfg.Calculator
	}
	return &CommissionService{
		commissions: cfg.Commissions,
		rates:       cfg.Rates,
		vendors:     cfg.Vendors,
		payouts:     cfg.Payouts,
		calculator:  calc,
		logger:      logger,
	}
}

// Record computes and stores the commission of one sale at the vendor's
// current rate. The stored row is never recomputed. Sales dated inside an
// already settled payout period are refused.
func (s *CommissionService) Record(ctx context.Context, vendorID uuid.UUID, req RecordCommissionRequest) (*CommissionResponse, error) {
	v, err := s.vendors.FindByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if v.Status == vendor.StatusPendingVerification || v.Status == vendor.StatusRejected {
		return nil, shared.NewConflictError("vendor %s is %s and has no sales", v.ID, v.Status)
	}

	rate, err := s.resolveRate(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	breakdown, err := s.calculator.Calculate(req.GrossAmount, rate)
	if err != nil {
		return nil, err
	}
	c, err := commission.NewCommission(vendorID, req.TransactionID, breakdown, req.TransactionDate)
	if err != nil {
		return nil, err
	}
	if err := payout.EnsureUnsettled(ctx, s.payouts, vendorID, c.TransactionDate); err != nil {
		return nil, err
	}
	if err := s.commissions.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("commission recorded",
		zap.String("vendor_id", vendorID.String()),
		zap.String("transaction_id", c.TransactionID),
		zap.String("gross", c.GrossAmount.String()),
		zap.String("rate", c.CommissionRate.String()),
	)
	resp := ToCommissionResponse(c)
	return &resp, nil
}

// List returns a vendor's commissions in a period with their totals
func (s *CommissionService) List(ctx context.Context, vendorID uuid.UUID, query PeriodQuery) (*CommissionListResponse, error) {
	period, err := payout.ParsePeriod(query.PeriodStart, query.PeriodEnd)
	if err != nil {
		return nil, err
	}
	if _, err := s.vendors.FindByID(ctx, vendorID); err != nil {
		return nil, err
	}

	from, to := period.QueryBounds()
	rows, err := s.commissions.FindInPeriod(ctx, vendorID, from, to)
	if err != nil {
		return nil, err
	}
	totals, err := s.commissions.SumInPeriod(ctx, vendorID, from, to)
	if err != nil {
		return nil, err
	}

	items := make([]CommissionResponse, len(rows))
	for i := range rows {
		items[i] = ToCommissionResponse(&rows[i])
	}
	return &CommissionListResponse{
		PeriodStart: period.Start.Format(payout.DateLayout),
		PeriodEnd:   period.End.Format(payout.DateLayout),
		Items:       items,
		Totals:      toTotalsResponse(totals),
	}, nil
}

// SetRate makes rate the vendor's only active commission rate. Commissions
// already recorded keep the rate they were computed with.
func (s *CommissionService) SetRate(ctx context.Context, vendorID uuid.UUID, req SetRateRequest) (*RateResponse, error) {
	if _, err := s.vendors.FindByID(ctx, vendorID); err != nil {
		return nil, err
	}
	if req.Rate == nil {
		return nil, shared.NewValidationError("invalid commission rate",
			shared.FieldError{Field: "rate", Code: "required", Message: "rate is required"})
	}
	var effective time.Time
	if req.EffectiveFrom != nil {
		effective = req.EffectiveFrom.UTC()
	}
	r, err := commission.NewRate(vendorID, *req.Rate, effective)
	if err != nil {
		return nil, err
	}
	if err := s.rates.Activate(ctx, r); err != nil {
		return nil, err
	}
	s.logger.Info("commission rate set",
		zap.String("vendor_id", vendorID.String()),
		zap.String("rate", r.Rate.String()))

	resp := ToRateResponse(r)
	return &resp, nil
}

func (s *CommissionService) resolveRate(ctx context.Context, vendorID uuid.UUID) (decimal.Decimal, error) {
	active, err := s.rates.FindActive(ctx, vendorID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return decimal.Decimal{}, err
	}
	return s.calculator.ResolveRate(active), nil
}
