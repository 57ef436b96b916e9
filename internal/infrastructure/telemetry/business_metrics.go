package telemetry

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics counts settled payouts and KYC document outcomes
type BusinessMetrics struct {
	logger *zap.Logger

	payoutsTotal       *Counter
	payoutAmountTotal  *Counter
	settlementDuration *Histogram
	kycDocumentsTotal  *Counter
}

// BusinessMetricsConfig holds the meter business instruments are created on
type BusinessMetricsConfig struct {
	Meter  metric.Meter
	Logger *zap.Logger
}

// NewBusinessMetrics creates the business instruments
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	bm := &BusinessMetrics{logger: logger}

	var err error
	if bm.payoutsTotal, err = NewCounter(cfg.Meter,
		"vendorhub_payouts_total",
		"Payouts that reached a terminal settlement status",
		"{payouts}"); err != nil {
		return nil, err
	}
	if bm.payoutAmountTotal, err = NewCounter(cfg.Meter,
		"vendorhub_payout_amount_total",
		"Amount paid out to vendors in poisha",
		"{poisha}"); err != nil {
		return nil, err
	}
	if bm.settlementDuration, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "vendorhub_settlement_duration_seconds",
		Description: "Time spent in the settlement rail per payout",
		Unit:        "s",
		Boundaries:  SettlementDurationBuckets,
	}); err != nil {
		return nil, err
	}
	if bm.kycDocumentsTotal, err = NewCounter(cfg.Meter,
		"vendorhub_kyc_documents_total",
		"KYC documents by verification outcome",
		"{documents}"); err != nil {
		return nil, err
	}
	return bm, nil
}

// RecordPayout records one settlement attempt. Only completed payouts add
// to the paid amount.
func (bm *BusinessMetrics) RecordPayout(ctx context.Context, method, status string, amount decimal.Decimal, took time.Duration) {
	attrs := []attribute.KeyValue{AttrPayoutMethod.String(method), AttrPayoutStatus.String(status)}
	bm.payoutsTotal.Inc(ctx, attrs...)
	bm.settlementDuration.RecordDuration(ctx, took, attrs...)
	if status == PayoutStatusCompleted {
		bm.payoutAmountTotal.Add(ctx, ToPoisha(amount), AttrPayoutMethod.String(method))
	}
}

// RecordKYCDocument records a document reaching a verification status
func (bm *BusinessMetrics) RecordKYCDocument(ctx context.Context, docType, status string) {
	bm.kycDocumentsTotal.Inc(ctx, AttrDocumentType.String(docType), AttrDocumentStatus.String(status))
}

// PayoutStatusCompleted is the status value whose amount is counted as paid
const PayoutStatusCompleted = "completed"

// ToPoisha converts taka to whole poisha, truncating anything finer
func ToPoisha(amount decimal.Decimal) int64 {
	return amount.Shift(2).IntPart()
}

// ErrMeterNil is returned when no meter is supplied
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError reports a failed metrics operation
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
