// Package testutil provides shared test doubles for the vendorhub backend:
// testify mocks for the domain repositories, event helpers and HTTP helpers.
package testutil

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/vendorhub/backend/internal/domain/commission"
	"github.com/vendorhub/backend/internal/domain/kyc"
	"github.com/vendorhub/backend/internal/domain/onboarding"
	"github.com/vendorhub/backend/internal/domain/payout"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/domain/vendor"
)

// MockVendorRepository is a mock implementation of vendor.Repository
type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*vendor.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vendor.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]vendor.Vendor, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]vendor.Vendor), args.Get(1).(int64), args.Error(2)
}

func (m *MockVendorRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockVendorRepository) UpdateStatus(ctx context.Context, v *vendor.Vendor, expected vendor.Status) error {
	args := m.Called(ctx, v, expected)
	return args.Error(0)
}

func (m *MockVendorRepository) UpdateRegistrationStep(ctx context.Context, id uuid.UUID, step int) error {
	args := m.Called(ctx, id, step)
	return args.Error(0)
}

func (m *MockVendorRepository) FindDefaultStore(ctx context.Context, vendorID uuid.UUID) (*vendor.Store, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vendor.Store), args.Error(1)
}

func (m *MockVendorRepository) FindPerformance(ctx context.Context, vendorID uuid.UUID) (*vendor.Performance, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vendor.Performance), args.Error(1)
}

// MockRegistrationRepository is a mock implementation of vendor.RegistrationRepository
type MockRegistrationRepository struct {
	mock.Mock
}

func (m *MockRegistrationRepository) Register(ctx context.Context, v *vendor.Vendor, store *vendor.Store, workflow onboarding.Workflow) error {
	args := m.Called(ctx, v, store, workflow)
	return args.Error(0)
}

// MockApprovalRepository is a mock implementation of vendor.ApprovalRepository
type MockApprovalRepository struct {
	mock.Mock
}

func (m *MockApprovalRepository) ApplyActivation(ctx context.Context, vendorID uuid.UUID, perf vendor.Performance, at time.Time) (vendor.ActivationOutcome, error) {
	args := m.Called(ctx, vendorID, perf, at)
	return args.Get(0).(vendor.ActivationOutcome), args.Error(1)
}

// MockWorkflowRepository is a mock implementation of onboarding.WorkflowRepository
type MockWorkflowRepository struct {
	mock.Mock
}

func (m *MockWorkflowRepository) Load(ctx context.Context, vendorID uuid.UUID) (onboarding.Workflow, error) {
	args := m.Called(ctx, vendorID)
	return args.Get(0).(onboarding.Workflow), args.Error(1)
}

func (m *MockWorkflowRepository) SaveSteps(ctx context.Context, vendorID uuid.UUID, steps []onboarding.Step) (int64, error) {
	args := m.Called(ctx, vendorID, steps)
	return args.Get(0).(int64), args.Error(1)
}

// MockDocumentRepository is a mock implementation of kyc.DocumentRepository
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) Create(ctx context.Context, doc *kyc.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*kyc.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kyc.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindByVendor(ctx context.Context, vendorID uuid.UUID) ([]kyc.Document, error) {
	args := m.Called(ctx, vendorID)
	return args.Get(0).([]kyc.Document), args.Error(1)
}

func (m *MockDocumentRepository) UpdateReview(ctx context.Context, doc *kyc.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

// MockCommissionRepository is a mock implementation of commission.Repository
type MockCommissionRepository struct {
	mock.Mock
}

func (m *MockCommissionRepository) Create(ctx context.Context, c *commission.Commission) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCommissionRepository) FindByTransactionID(ctx context.Context, transactionID string) (*commission.Commission, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commission.Commission), args.Error(1)
}

func (m *MockCommissionRepository) FindInPeriod(ctx context.Context, vendorID uuid.UUID, from, to time.Time) ([]commission.Commission, error) {
	args := m.Called(ctx, vendorID, from, to)
	return args.Get(0).([]commission.Commission), args.Error(1)
}

func (m *MockCommissionRepository) SumInPeriod(ctx context.Context, vendorID uuid.UUID, from, to time.Time) (commission.Totals, error) {
	args := m.Called(ctx, vendorID, from, to)
	return args.Get(0).(commission.Totals), args.Error(1)
}

// MockCommissionRateRepository is a mock implementation of commission.RateRepository
type MockCommissionRateRepository struct {
	mock.Mock
}

func (m *MockCommissionRateRepository) FindActive(ctx context.Context, vendorID uuid.UUID) (*commission.Rate, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commission.Rate), args.Error(1)
}

func (m *MockCommissionRateRepository) Activate(ctx context.Context, r *commission.Rate) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

// MockPayoutRepository is a mock implementation of payout.Repository
type MockPayoutRepository struct {
	mock.Mock
}

func (m *MockPayoutRepository) Create(ctx context.Context, p *payout.Payout, entry payout.AuditEntry) error {
	args := m.Called(ctx, p, entry)
	return args.Error(0)
}

func (m *MockPayoutRepository) FindByID(ctx context.Context, id uuid.UUID) (*payout.Payout, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payout.Payout), args.Error(1)
}

func (m *MockPayoutRepository) FindActiveForPeriod(ctx context.Context, vendorID uuid.UUID, period payout.Period) (*payout.Payout, error) {
	args := m.Called(ctx, vendorID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payout.Payout), args.Error(1)
}

func (m *MockPayoutRepository) FindCovering(ctx context.Context, vendorID uuid.UUID, at time.Time) (*payout.Payout, error) {
	args := m.Called(ctx, vendorID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payout.Payout), args.Error(1)
}

func (m *MockPayoutRepository) FindAll(ctx context.Context, filter shared.Filter) ([]payout.Payout, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]payout.Payout), args.Get(1).(int64), args.Error(2)
}

func (m *MockPayoutRepository) Transition(ctx context.Context, p *payout.Payout, from payout.Status, entry payout.AuditEntry) error {
	args := m.Called(ctx, p, from, entry)
	return args.Error(0)
}

func (m *MockPayoutRepository) AuditTrail(ctx context.Context, payoutID uuid.UUID) ([]payout.AuditEntry, error) {
	args := m.Called(ctx, payoutID)
	return args.Get(0).([]payout.AuditEntry), args.Error(1)
}

// MockAdjustmentRepository is a mock implementation of payout.AdjustmentRepository
type MockAdjustmentRepository struct {
	mock.Mock
}

func (m *MockAdjustmentRepository) Create(ctx context.Context, a *payout.Adjustment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAdjustmentRepository) SumInPeriod(ctx context.Context, vendorID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, vendorID, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAdjustmentRepository) FindByVendor(ctx context.Context, vendorID uuid.UUID) ([]payout.Adjustment, error) {
	args := m.Called(ctx, vendorID)
	return args.Get(0).([]payout.Adjustment), args.Error(1)
}

// MockSettlementStrategy is a mock implementation of payout.SettlementStrategy
type MockSettlementStrategy struct {
	mock.Mock
	method payout.Method
}

// NewMockSettlementStrategy creates a mock strategy for method
func NewMockSettlementStrategy(method payout.Method) *MockSettlementStrategy {
	return &MockSettlementStrategy{method: method}
}

func (m *MockSettlementStrategy) Method() payout.Method {
	return m.method
}

func (m *MockSettlementStrategy) Settle(ctx context.Context, req payout.SettlementRequest) (payout.SettlementResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(payout.SettlementResult), args.Error(1)
}

// Ensure mocks implement their interfaces
var (
	_ vendor.Repository             = (*MockVendorRepository)(nil)
	_ vendor.RegistrationRepository = (*MockRegistrationRepository)(nil)
	_ vendor.ApprovalRepository     = (*MockApprovalRepository)(nil)
	_ onboarding.WorkflowRepository = (*MockWorkflowRepository)(nil)
	_ kyc.DocumentRepository        = (*MockDocumentRepository)(nil)
	_ commission.Repository         = (*MockCommissionRepository)(nil)
	_ commission.RateRepository     = (*MockCommissionRateRepository)(nil)
	_ payout.Repository             = (*MockPayoutRepository)(nil)
	_ payout.AdjustmentRepository   = (*MockAdjustmentRepository)(nil)
	_ payout.SettlementStrategy     = (*MockSettlementStrategy)(nil)
)
