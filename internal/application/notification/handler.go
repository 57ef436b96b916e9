package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/payout"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/domain/vendor"
	"go.uber.org/zap"
)

// Kind identifies a vendor notification
type Kind string

const (
	KindWelcome       Kind = "vendor_welcome"
	KindActivated     Kind = "vendor_activated"
	KindSuspended     Kind = "vendor_suspended"
	KindReinstated    Kind = "vendor_reinstated"
	KindRejected      Kind = "vendor_rejected"
	KindPayoutSettled Kind = "payout_settled"
	KindPayoutFailed  Kind = "payout_failed"
)

// Message is one notification addressed to a vendor's phone
type Message struct {
	VendorID uuid.UUID `json:"vendor_id"`
	Phone    string    `json:"phone"`
	Locale   string    `json:"locale"`
	Kind     Kind      `json:"kind"`
	Text     string    `json:"text"`
}

// Notifier delivers messages over a channel such as SMS or WhatsApp
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// VendorNotificationHandler turns onboarding and payout events into vendor
// messages. Payout events carry no contact details, so the vendor is loaded.
type VendorNotificationHandler struct {
	vendors  vendor.Repository
	notifier Notifier
	logger   *zap.Logger
}

// NewVendorNotificationHandler creates the handler
func NewVendorNotificationHandler(vendors vendor.Repository, notifier Notifier, logger *zap.Logger) *VendorNotificationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VendorNotificationHandler{vendors: vendors, notifier: notifier, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *VendorNotificationHandler) EventTypes() []string {
	return []string{
		vendor.EventTypeVendorRegistered,
		vendor.EventTypeVendorActivated,
		vendor.EventTypeVendorStatusChanged,
		payout.EventTypePayoutSettled,
		payout.EventTypePayoutFailed,
	}
}

// Handle builds and sends the message for event
func (h *VendorNotificationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	msg, ok, err := h.compose(ctx, event)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if msg.Phone == "" {
		h.logger.Warn("vendor has no phone, notification dropped",
			zap.String("vendor_id", msg.VendorID.String()),
			zap.String("kind", string(msg.Kind)))
		return nil
	}
	if err := h.notifier.Send(ctx, msg); err != nil {
		return fmt.Errorf("send %s to vendor %s: %w", msg.Kind, msg.VendorID, err)
	}
	h.logger.Info("vendor notified",
		zap.String("vendor_id", msg.VendorID.String()),
		zap.String("kind", string(msg.Kind)),
		zap.String("event_id", event.EventID().String()),
		zap.Duration("lag", time.Since(event.OccurredAt())))
	return nil
}

func (h *VendorNotificationHandler) compose(ctx context.Context, event shared.DomainEvent) (Message, bool, error) {
	switch e := event.(type) {
	case *vendor.VendorRegisteredEvent:
		return newMessage(e.VendorID, e.Phone, e.Locale, KindWelcome, e.BusinessName), true, nil
	case *vendor.VendorActivatedEvent:
		return newMessage(e.VendorID, e.Phone, e.Locale, KindActivated, e.BusinessName, strings.ToUpper(string(e.Tier))), true, nil
	case *vendor.VendorStatusChangedEvent:
		kind, ok := statusKind(e.ToStatus, e.FromStatus)
		if !ok {
			return Message{}, false, nil
		}
		return newMessage(e.VendorID, e.Phone, e.Locale, kind, reasonOrDash(e.Reason)), true, nil
	case *payout.PayoutEvent:
		var kind Kind
		var args []any
		switch e.EventType() {
		case payout.EventTypePayoutSettled:
			kind, args = KindPayoutSettled, []any{e.Amount.StringFixed(2), e.Period, e.Reference}
		case payout.EventTypePayoutFailed:
			kind, args = KindPayoutFailed, []any{e.Amount.StringFixed(2), e.Period}
		default:
			return Message{}, false, nil
		}
		v, err := h.vendors.FindByID(ctx, e.VendorID)
		if err != nil {
			return Message{}, false, fmt.Errorf("load vendor %s for %s: %w", e.VendorID, kind, err)
		}
		return newMessage(v.ID, v.Phone, v.Locale, kind, args...), true, nil
	}
	return Message{}, false, fmt.Errorf("unexpected event %T (%s)", event, event.EventType())
}

func statusKind(to, from vendor.Status) (Kind, bool) {
	switch {
	case to == vendor.StatusSuspended:
		return KindSuspended, true
	case to == vendor.StatusRejected:
		return KindRejected, true
	case to == vendor.StatusActive && from == vendor.StatusSuspended:
		return KindReinstated, true
	}
	return "", false
}

func reasonOrDash(reason string) string {
	if strings.TrimSpace(reason) == "" {
		return "-"
	}
	return reason
}

func newMessage(vendorID uuid.UUID, phone, locale string, kind Kind, args ...any) Message {
	return Message{
		VendorID: vendorID,
		Phone:    phone,
		Locale:   locale,
		Kind:     kind,
		Text:     Render(kind, locale, args...),
	}
}

var _ shared.EventHandler = (*VendorNotificationHandler)(nil)
