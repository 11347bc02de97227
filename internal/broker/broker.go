// Package broker defines the Broker interface and the Tradier implementation
// used for executing orders and reading account state.
package broker

import (
	"context"
	"time"

	"tradier/internal/domain"
)

// Broker abstracts brokerage operations for order execution and account management.
type Broker interface {
	// Name returns the broker identifier (e.g. "tradier").
	Name() string

	// SubmitOrder sends an order to the brokerage for execution.
	SubmitOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)

	// CancelOrder requests cancellation of an open order by its ID.
	CancelOrder(ctx context.Context, orderID string) error

	// GetPositions returns all current positions held at the brokerage.
	GetPositions(ctx context.Context) ([]domain.Position, error)

	// GetAccount returns a snapshot of the account's financial metrics.
	GetAccount(ctx context.Context) (*domain.AccountInfo, error)

	// GetBars returns intraday bars for symbol between start and end. A zero
	// start or end leaves that bound to the brokerage's default.
	GetBars(ctx context.Context, symbol string, interval time.Duration, start, end time.Time) ([]domain.Bar, error)
}
