// Package engine puts pre-trade risk checks in front of a broker.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tradier/internal/broker"
	"tradier/internal/domain"
)

// PriceSource supplies a reference price for market orders.
type PriceSource interface {
	LastPrice(ctx context.Context, symbol string) (float64, error)
}

// Engine orchestrates order entry by checking orders against the risk
// manager and delegating execution to a broker.
type Engine struct {
	broker      broker.Broker
	prices      PriceSource
	riskChecker *RiskManager
	log         *slog.Logger
}

// NewEngine creates a new Engine wired with the given dependencies. prices
// and riskChecker may be nil; without a risk checker orders go straight to
// the broker.
func NewEngine(b broker.Broker, prices PriceSource, riskChecker *RiskManager, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		broker:      b,
		prices:      prices,
		riskChecker: riskChecker,
		log:         log.With("component", "engine"),
	}
}

// SubmitOrder validates the order against risk rules and then forwards it to
// the broker for execution.
func (e *Engine) SubmitOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if e.riskChecker.Enabled() {
		if err := e.checkRisk(ctx, order); err != nil {
			e.log.Warn("order rejected by risk check", "symbol", order.Symbol, "side", order.Side, "err", err)
			return nil, err
		}
	}
	return e.broker.SubmitOrder(ctx, order)
}

func (e *Engine) checkRisk(ctx context.Context, order *domain.Order) error {
	account, err := e.broker.GetAccount(ctx)
	if err != nil {
		return fmt.Errorf("loading account for risk check: %w", err)
	}
	price, err := e.referencePrice(ctx, order)
	if err != nil {
		return err
	}
	return e.riskChecker.CheckOrder(ctx, order, account, price)
}

// referencePrice uses the order's own limit or stop price, falling back to
// the last trade for market orders.
func (e *Engine) referencePrice(ctx context.Context, order *domain.Order) (float64, error) {
	switch {
	case order.LimitPrice > 0:
		return order.LimitPrice, nil
	case order.StopPrice > 0:
		return order.StopPrice, nil
	case e.prices == nil:
		return 0, errors.New("market order needs a price source for the risk check")
	}
	symbol := order.Symbol
	if order.Class == domain.AssetClassOption && order.OptionSymbol != "" {
		symbol = order.OptionSymbol
	}
	price, err := e.prices.LastPrice(ctx, symbol)
	if err != nil {
		return 0, fmt.Errorf("pricing %s for risk check: %w", symbol, err)
	}
	return price, nil
}

// CancelOrder requests cancellation of an open order.
func (e *Engine) CancelOrder(ctx context.Context, orderID string) error {
	return e.broker.CancelOrder(ctx, orderID)
}

// GetPositions returns all currently open positions.
func (e *Engine) GetPositions(ctx context.Context) ([]domain.Position, error) {
	return e.broker.GetPositions(ctx)
}
