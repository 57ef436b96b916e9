package router

import (
	"github.com/vendorhub/backend/internal/interfaces/http/handler"
)

// APIHandlers are the handlers served under the versioned API prefix
type APIHandlers struct {
	Vendor     *handler.VendorHandler
	Workflow   *handler.WorkflowHandler
	KYC        *handler.KYCHandler
	Commission *handler.CommissionHandler
	Payout     *handler.PayoutHandler
	System     *handler.SystemHandler
}

// APIGroups lays out the vendor API routes
func APIGroups(h APIHandlers) []RouteRegistrar {
	vendors := NewRouteGroup("/vendors")
	vendors.POST("", h.Vendor.Register)
	vendors.GET("", h.Vendor.List)
	vendors.GET("/:id", h.Vendor.GetByID)
	vendors.POST("/:id/suspend", h.Vendor.Suspend)
	vendors.POST("/:id/reinstate", h.Vendor.Reinstate)
	vendors.POST("/:id/reject", h.Vendor.Reject)

	vendors.GET("/:id/workflow", h.Workflow.Progress)
	vendors.POST("/:id/workflow/steps/:step/complete", h.Workflow.CompleteStep)

	vendors.POST("/:id/kyc/upload-url", h.KYC.UploadURL)
	vendors.POST("/:id/kyc/documents", h.KYC.Upload)
	vendors.GET("/:id/kyc/documents", h.KYC.List)

	vendors.PUT("/:id/commission-rate", h.Commission.SetRate)
	vendors.POST("/:id/commissions", h.Commission.Record)
	vendors.GET("/:id/commissions", h.Commission.List)

	vendors.POST("/:id/adjustments", h.Payout.AddAdjustment)
	vendors.GET("/:id/adjustments", h.Payout.ListAdjustments)
	vendors.GET("/:id/payouts/calculate", h.Payout.Calculate)
	vendors.POST("/:id/payouts", h.Payout.Generate)

	kyc := NewRouteGroup("/kyc")
	kyc.GET("/documents/:id", h.KYC.GetByID)
	kyc.POST("/documents/:id/verify", h.KYC.Verify)
	kyc.POST("/documents/:id/reject", h.KYC.Reject)

	payouts := NewRouteGroup("/payouts")
	payouts.GET("", h.Payout.List)
	payouts.GET("/:id", h.Payout.GetByID)
	payouts.POST("/:id/process", h.Payout.Process)
	payouts.GET("/:id/audit", h.Payout.AuditTrail)

	system := NewRouteGroup("")
	system.GET("/health", h.System.Health)
	system.GET("/system/info", h.System.GetSystemInfo)

	return []RouteRegistrar{vendors, kyc, payouts, system}
}
