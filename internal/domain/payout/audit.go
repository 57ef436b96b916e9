package payout

import (
	"time"

	"github.com/google/uuid"
)

// Audit actions
const (
	AuditGenerated           = "payout_generated"
	AuditProcessingStarted   = "processing_started"
	AuditSettlementCompleted = "settlement_completed"
	AuditSettlementFailed    = "settlement_failed"
)

// AuditEntry is an immutable record of one payout state change
type AuditEntry struct {
	ID         uuid.UUID
	PayoutID   uuid.UUID
	VendorID   uuid.UUID
	Action     string
	Actor      string
	FromStatus Status
	ToStatus   Status
	Details    map[string]any
	CreatedAt  time.Time
}

// NewAuditEntry records a transition of p from one status to its current one
func NewAuditEntry(p *Payout, action, actor string, from Status, details map[string]any, now time.Time) AuditEntry {
	if actor == "" {
		actor = "system"
	}
	return AuditEntry{
		ID:         uuid.New(),
		PayoutID:   p.ID,
		VendorID:   p.VendorID,
		Action:     action,
		Actor:      actor,
		FromStatus: from,
		ToStatus:   p.Status,
		Details:    details,
		CreatedAt:  now.UTC(),
	}
}
