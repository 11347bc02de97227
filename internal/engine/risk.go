package engine

import (
	"context"
	"errors"
	"fmt"

	"tradier/internal/domain"
)

// ErrRiskLimit is wrapped by every rejection from RiskManager.
var ErrRiskLimit = errors.New("risk limit exceeded")

// optionMultiplier is the share count behind one listed option contract.
const optionMultiplier = 100

// RiskManager enforces pre-trade risk rules such as position sizing limits
// and maximum daily loss constraints. A zero limit disables that rule.
// Orders that reduce exposure (sell, buy_to_cover) are never blocked.
type RiskManager struct {
	maxPositionPct  float64
	maxDailyLossPct float64
}

// NewRiskManager creates a RiskManager with the specified risk thresholds.
//
//   - maxPositionPct: maximum fraction of equity a single opening order may
//     commit (e.g. 0.10 for 10%).
//   - maxDailyLossPct: once the day's realized loss reaches this fraction of
//     equity (e.g. 0.02 for 2%), opening orders are refused.
func NewRiskManager(maxPositionPct, maxDailyLossPct float64) *RiskManager {
	return &RiskManager{
		maxPositionPct:  maxPositionPct,
		maxDailyLossPct: maxDailyLossPct,
	}
}

// Enabled reports whether any rule is active.
func (rm *RiskManager) Enabled() bool {
	return rm != nil && (rm.maxPositionPct > 0 || rm.maxDailyLossPct > 0)
}

// CheckOrder evaluates whether the proposed order complies with the
// configured risk limits given the current account state. price is the
// per-unit reference price used to value the order.
func (rm *RiskManager) CheckOrder(_ context.Context, order *domain.Order, account *domain.AccountInfo, price float64) error {
	if !rm.Enabled() || !opening(order.Side) {
		return nil
	}
	if account.Equity <= 0 {
		return fmt.Errorf("account has no equity: %w", ErrRiskLimit)
	}

	if rm.maxDailyLossPct > 0 && account.ClosedPL < 0 {
		if loss := -account.ClosedPL; loss >= rm.maxDailyLossPct*account.Equity {
			return fmt.Errorf("daily loss %.2f has reached %.1f%% of equity: %w", loss, rm.maxDailyLossPct*100, ErrRiskLimit)
		}
	}

	if rm.maxPositionPct > 0 {
		notional := Notional(order, price)
		if limit := rm.maxPositionPct * account.Equity; notional > limit {
			return fmt.Errorf("%s order value %.2f exceeds %.2f (%.1f%% of equity): %w",
				order.Symbol, notional, limit, rm.maxPositionPct*100, ErrRiskLimit)
		}
	}
	return nil
}

// Notional is the value committed by order at price.
func Notional(order *domain.Order, price float64) float64 {
	v := order.Qty * price
	if order.Class == domain.AssetClassOption {
		v *= optionMultiplier
	}
	return v
}

func opening(side domain.OrderSide) bool {
	return side == domain.OrderSideBuy || side == domain.OrderSideSellShort
}
