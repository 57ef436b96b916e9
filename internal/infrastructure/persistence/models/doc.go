// Package models contains GORM persistence models that map to database tables.
// They are separate from the domain entities so the domain layer stays free of
// ORM tags; repositories convert with the ToDomain/FromDomain pairs on each model.
//
// Structure:
// - base.go: shared columns (UUID primary key, timestamps, version)
// - vendor.go: vendors, stores and performance snapshots
// - onboarding.go: verification workflow steps
// - kyc.go: KYC documents
// - commission.go: commissions and commission rates
// - payout.go: payouts, adjustments and the payout audit log
// - registry.go: the model list used by AutoMigrate in tests
package models
