// Package domain holds broker-neutral trading types shared by the broker
// adapters, the exporter and the CLI.
package domain

import "time"

// ---------------------------------------------------------------------------
// Enumerations
// ---------------------------------------------------------------------------

// OrderSide is the direction of an order.
type OrderSide string

const (
	OrderSideBuy        OrderSide = "buy"
	OrderSideSell       OrderSide = "sell"
	OrderSideSellShort  OrderSide = "sell_short"
	OrderSideBuyToCover OrderSide = "buy_to_cover"
)

// OrderType is the pricing type of an order.
type OrderType string

const (
	OrderTypeMarket    OrderType = "market"
	OrderTypeLimit     OrderType = "limit"
	OrderTypeStop      OrderType = "stop"
	OrderTypeStopLimit OrderType = "stop_limit"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusNew             OrderStatus = "new"
	OrderStatusPartiallyFilled OrderStatus = "partially_filled"
	OrderStatusFilled          OrderStatus = "filled"
	OrderStatusCancelled       OrderStatus = "cancelled"
	OrderStatusRejected        OrderStatus = "rejected"
	OrderStatusExpired         OrderStatus = "expired"
)

// TimeInForce says how long an order stays working.
type TimeInForce string

const (
	TimeInForceDay  TimeInForce = "day"
	TimeInForceGTC  TimeInForce = "gtc"
	TimeInForcePre  TimeInForce = "pre"
	TimeInForcePost TimeInForce = "post"
)

// AssetClass distinguishes stock orders from single-leg option orders.
type AssetClass string

const (
	AssetClassEquity AssetClass = "equity"
	AssetClassOption AssetClass = "option"
)

// PositionSide is long or short.
type PositionSide string

const (
	PositionSideLong  PositionSide = "long"
	PositionSideShort PositionSide = "short"
)

// ---------------------------------------------------------------------------
// Market data
// ---------------------------------------------------------------------------

// Bar is one OHLCV interval. Timestamp is the UTC start of the interval.
type Bar struct {
	Symbol     string
	Timestamp  time.Time
	Open       float64
	High       float64
	Low        float64
	Close      float64
	Volume     int64
	TradeCount int64
	VWAP       float64
}

// ---------------------------------------------------------------------------
// Trading
// ---------------------------------------------------------------------------

// Order is an order as submitted to or reported by a broker. LimitPrice and
// StopPrice are zero when unused. ID is assigned by the broker.
type Order struct {
	ID             string
	Symbol         string
	OptionSymbol   string
	Class          AssetClass
	Side           OrderSide
	Type           OrderType
	TimeInForce    TimeInForce
	Qty            float64
	LimitPrice     float64
	StopPrice      float64
	Status         OrderStatus
	FilledQty      float64
	FilledAvgPrice float64
	Tag            string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Position is a holding in one symbol. Qty is always positive; Side carries
// the direction.
type Position struct {
	Symbol     string
	Qty        float64
	Side       PositionSide
	CostBasis  float64
	AvgCost    float64
	AcquiredAt time.Time
}

// AccountInfo is a snapshot of account balances.
type AccountInfo struct {
	AccountID   string
	Type        string
	Equity      float64
	Cash        float64
	BuyingPower float64
	MarketValue float64
	OpenPL      float64
	ClosedPL    float64
}
