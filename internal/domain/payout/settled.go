package payout

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// EnsureUnsettled rejects money movements dated inside a period that a
// non-failed payout already covers. Such a payout has fixed its totals, so
// a later commission or adjustment there would never be paid out.
func EnsureUnsettled(ctx context.Context, payouts Repository, vendorID uuid.UUID, at time.Time) error {
	p, err := payouts.FindCovering(ctx, vendorID, at)
	if errors.Is(err, shared.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return shared.NewConflictError("payout %s (%s) already covers %s; %s is settled for vendor %s",
		p.ID, p.Status, p.Period, truncateDate(at).Format(DateLayout), vendorID)
}
