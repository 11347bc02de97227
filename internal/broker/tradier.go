package broker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"tradier/internal/domain"
	"tradier/pkg/tradier"
)

// Compile-time interface check.
var _ Broker = (*TradierBroker)(nil)

// tagPrefix marks orders placed through TradierBroker.
const tagPrefix = "tb-"

// TradierBroker implements the Broker interface for a single Tradier
// account.
type TradierBroker struct {
	client    *tradier.Client
	accountID string
	log       *slog.Logger
	newTag    func() string
}

// NewTradierBroker creates a TradierBroker trading accountID through client.
func NewTradierBroker(client *tradier.Client, accountID string, log *slog.Logger) *TradierBroker {
	if log == nil {
		log = slog.Default()
	}
	return &TradierBroker{
		client:    client,
		accountID: accountID,
		log:       log.With("broker", "tradier", "account", accountID),
		newTag:    func() string { return tagPrefix + uuid.NewString() },
	}
}

// Name returns "tradier".
func (b *TradierBroker) Name() string {
	return "tradier"
}

// SubmitOrder places order and returns a copy carrying the broker-assigned
// ID. Orders without a tag get a generated one so they can be matched in
// later order listings.
func (b *TradierBroker) SubmitOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	req, err := orderRequest(order)
	if err != nil {
		return nil, err
	}
	if req.Tag == "" {
		req.Tag = b.newTag()
	}

	ack, err := b.client.PlaceOrder(ctx, b.accountID, req)
	if err != nil {
		return nil, fmt.Errorf("submitting %s %s order: %w", order.Side, order.Symbol, err)
	}

	placed := *order
	placed.ID = strconv.FormatInt(ack.ID, 10)
	placed.Tag = req.Tag
	placed.Status = domain.OrderStatusNew
	placed.CreatedAt = time.Now().UTC()
	placed.UpdatedAt = placed.CreatedAt

	b.log.Info("order submitted", "order_id", placed.ID, "symbol", placed.Symbol, "tag", placed.Tag)
	return &placed, nil
}

// CancelOrder cancels the order with the given broker ID.
func (b *TradierBroker) CancelOrder(ctx context.Context, orderID string) error {
	id, err := strconv.ParseInt(strings.TrimSpace(orderID), 10, 64)
	if err != nil {
		return fmt.Errorf("order id %q is not numeric", orderID)
	}
	if _, err := b.client.CancelOrder(ctx, b.accountID, id); err != nil {
		return fmt.Errorf("cancelling order %s: %w", orderID, err)
	}
	return nil
}

// GetPositions returns all open positions in the account.
func (b *TradierBroker) GetPositions(ctx context.Context) ([]domain.Position, error) {
	raw, err := b.client.GetPositions(ctx, b.accountID)
	if err != nil {
		return nil, err
	}
	positions := make([]domain.Position, 0, len(raw))
	for _, p := range raw {
		positions = append(positions, toPosition(p))
	}
	return positions, nil
}

// GetAccount returns the account balances.
func (b *TradierBroker) GetAccount(ctx context.Context) (*domain.AccountInfo, error) {
	bal, err := b.client.GetBalances(ctx, b.accountID)
	if err != nil {
		return nil, err
	}
	return &domain.AccountInfo{
		AccountID:   bal.AccountNumber,
		Type:        string(bal.AccountType),
		Equity:      bal.TotalEquity,
		Cash:        bal.TotalCash,
		BuyingPower: bal.BuyingPower(),
		MarketValue: bal.MarketValue,
		OpenPL:      bal.OpenPL,
		ClosedPL:    bal.ClosePL,
	}, nil
}

// GetBars returns time and sales bars. interval must be one of 1, 5 or 15
// minutes; zero requests ticks, which come back as single-price bars.
func (b *TradierBroker) GetBars(ctx context.Context, symbol string, interval time.Duration, start, end time.Time) ([]domain.Bar, error) {
	iv, err := tradierInterval(interval)
	if err != nil {
		return nil, err
	}
	series, err := b.client.GetTimeAndSales(ctx, tradier.TimeSalesQuery{
		Symbol:   symbol,
		Interval: iv,
		Start:    start,
		End:      end,
	})
	if err != nil {
		return nil, err
	}

	bars := make([]domain.Bar, 0, len(series))
	for _, s := range series {
		bars = append(bars, toBar(symbol, s))
	}
	b.log.Debug("fetched bars", "symbol", symbol, "interval", iv, "count", len(bars))
	return bars, nil
}

// LastPrice returns the last trade price of symbol, or the bid/ask midpoint
// when it has not traded. Symbols are matched case-insensitively; the API
// reports them upper-cased.
func (b *TradierBroker) LastPrice(ctx context.Context, symbol string) (float64, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	quotes, err := b.client.GetQuotes(ctx, []string{symbol}, false)
	if err != nil {
		return 0, err
	}
	q, ok := quotes.Get(symbol)
	if !ok && len(quotes.Quotes) == 1 && strings.EqualFold(quotes.Quotes[0].Symbol, symbol) {
		q, ok = quotes.Quotes[0], true
	}
	if !ok {
		return 0, fmt.Errorf("no quote for %s", symbol)
	}
	switch {
	case q.Last != nil && *q.Last > 0:
		return *q.Last, nil
	case q.Bid > 0 && q.Ask > 0:
		return q.Mid(), nil
	}
	return 0, fmt.Errorf("quote for %s has no price", symbol)
}

// ---------------------------------------------------------------------------
// Conversions
// ---------------------------------------------------------------------------

func orderRequest(o *domain.Order) (tradier.OrderRequest, error) {
	if o == nil {
		return tradier.OrderRequest{}, errors.New("nil order")
	}
	if o.Qty != math.Trunc(o.Qty) {
		return tradier.OrderRequest{}, fmt.Errorf("quantity %v is not a whole number", o.Qty)
	}

	req := tradier.OrderRequest{
		Class:        tradier.ClassEquity,
		Symbol:       o.Symbol,
		OptionSymbol: o.OptionSymbol,
		Side:         tradier.Side(o.Side),
		Quantity:     int64(o.Qty),
		Type:         tradier.OrderType(o.Type),
		Duration:     tradier.DurationDay,
		Tag:          o.Tag,
	}
	if o.Class == domain.AssetClassOption {
		req.Class = tradier.ClassOption
		req.Side = optionSide(o.Side)
	}
	if o.TimeInForce != "" {
		req.Duration = tradier.Duration(o.TimeInForce)
	}
	if o.LimitPrice != 0 {
		req.Price = tradier.Float64(o.LimitPrice)
	}
	if o.StopPrice != 0 {
		req.Stop = tradier.Float64(o.StopPrice)
	}
	return req, nil
}

// optionSide maps equity-style sides onto option open/close sides: buys and
// short sells open, sells and covers close.
func optionSide(s domain.OrderSide) tradier.Side {
	switch s {
	case domain.OrderSideBuy:
		return tradier.SideBuyToOpen
	case domain.OrderSideSell:
		return tradier.SideSellToClose
	case domain.OrderSideSellShort:
		return tradier.SideSellToOpen
	case domain.OrderSideBuyToCover:
		return tradier.SideBuyToClose
	}
	return tradier.Side(s)
}

func toPosition(p tradier.Position) domain.Position {
	pos := domain.Position{
		Symbol:     p.Symbol,
		Qty:        math.Abs(p.Quantity),
		Side:       domain.PositionSideLong,
		CostBasis:  p.CostBasis,
		AcquiredAt: p.DateAcquired,
	}
	if p.Short() {
		pos.Side = domain.PositionSideShort
	}
	if pos.Qty != 0 {
		pos.AvgCost = math.Abs(p.CostBasis) / pos.Qty
	}
	return pos
}

func toBar(symbol string, s tradier.TimeSale) domain.Bar {
	bar := domain.Bar{
		Symbol:    symbol,
		Timestamp: s.Time,
		Open:      s.Open,
		High:      s.High,
		Low:       s.Low,
		Close:     s.Close,
		Volume:    s.Volume,
		VWAP:      s.VWAP,
	}
	// Ticks carry only a price.
	if bar.Open == 0 && bar.Close == 0 && s.Price != 0 {
		bar.Open, bar.High, bar.Low, bar.Close = s.Price, s.Price, s.Price, s.Price
	}
	return bar
}

func tradierInterval(d time.Duration) (tradier.Interval, error) {
	switch d {
	case 0:
		return tradier.IntervalTick, nil
	case time.Minute:
		return tradier.Interval1Min, nil
	case 5 * time.Minute:
		return tradier.Interval5Min, nil
	case 15 * time.Minute:
		return tradier.Interval15Min, nil
	}
	return "", fmt.Errorf("unsupported bar interval %s", d)
}
