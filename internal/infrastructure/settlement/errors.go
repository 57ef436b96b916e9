package settlement

import "errors"

var (
	// ErrGatewayUnavailable means the gateway could not be reached
	ErrGatewayUnavailable = errors.New("settlement: gateway unavailable")
	// ErrGatewayRejected means the gateway refused the transfer
	ErrGatewayRejected = errors.New("settlement: transfer rejected")
	// ErrLimitExceeded means the amount is above the rail's per-transfer ceiling
	ErrLimitExceeded = errors.New("settlement: amount exceeds rail limit")
	// ErrUnsupportedMethod means no rail serves the payout method
	ErrUnsupportedMethod = errors.New("settlement: unsupported payout method")
)
