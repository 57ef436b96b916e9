package notification

import (
	"context"
	"strings"

	"github.com/vendorhub/backend/internal/application/notification"
	"go.uber.org/zap"
)

// LoggingNotifier writes vendor messages to the log instead of sending them.
// It stands in for the SMS gateway in development and sandbox deployments.
type LoggingNotifier struct {
	logger *zap.Logger
}

// NewLoggingNotifier creates a new logging notifier
func NewLoggingNotifier(logger *zap.Logger) *LoggingNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingNotifier{logger: logger.Named("sms")}
}

// Send logs msg with the recipient's number masked
func (n *LoggingNotifier) Send(_ context.Context, msg notification.Message) error {
	n.logger.Info("SMS",
		zap.String("vendor_id", msg.VendorID.String()),
		zap.String("to", maskPhone(msg.Phone)),
		zap.String("locale", msg.Locale),
		zap.String("kind", string(msg.Kind)),
		zap.String("text", msg.Text),
	)
	return nil
}

func maskPhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if len(phone) <= 3 {
		return phone
	}
	return strings.Repeat("*", len(phone)-3) + phone[len(phone)-3:]
}

var _ notification.Notifier = (*LoggingNotifier)(nil)
