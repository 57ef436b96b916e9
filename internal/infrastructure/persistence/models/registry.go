package models

// All returns every persistence model, in dependency order, for AutoMigrate
// in tests and local tooling. Production schemas come from SQL migrations.
func All() []any {
	return []any{
		&VendorModel{},
		&StoreModel{},
		&VendorPerformanceModel{},
		&WorkflowStepModel{},
		&KYCDocumentModel{},
		&CommissionRateModel{},
		&CommissionModel{},
		&PayoutModel{},
		&PayoutAdjustmentModel{},
		&PayoutAuditModel{},
	}
}
