package tradier

// Enumerations mirror the string values used on the wire. Decoding never
// rejects an unknown value; Valid is only consulted for outgoing requests.

// OrderType is the pricing type of an order.
type OrderType string

const (
	OrderTypeMarket    OrderType = "market"
	OrderTypeLimit     OrderType = "limit"
	OrderTypeStop      OrderType = "stop"
	OrderTypeStopLimit OrderType = "stop_limit"
	OrderTypeDebit     OrderType = "debit"
	OrderTypeCredit    OrderType = "credit"
	OrderTypeEven      OrderType = "even"
)

func (t OrderType) Valid() bool {
	switch t {
	case OrderTypeMarket, OrderTypeLimit, OrderTypeStop, OrderTypeStopLimit,
		OrderTypeDebit, OrderTypeCredit, OrderTypeEven:
		return true
	}
	return false
}

// needsPrice reports whether orders of this type must carry a limit price.
func (t OrderType) needsPrice() bool {
	switch t {
	case OrderTypeLimit, OrderTypeStopLimit, OrderTypeDebit, OrderTypeCredit:
		return true
	}
	return false
}

// needsStop reports whether orders of this type must carry a stop price.
func (t OrderType) needsStop() bool {
	return t == OrderTypeStop || t == OrderTypeStopLimit
}

// Class is the asset class of an order.
type Class string

const (
	ClassEquity   Class = "equity"
	ClassOption   Class = "option"
	ClassMultileg Class = "multileg"
	ClassCombo    Class = "combo"
)

func (c Class) Valid() bool {
	switch c {
	case ClassEquity, ClassOption, ClassMultileg, ClassCombo:
		return true
	}
	return false
}

// Side is the direction of an order.
type Side string

const (
	SideBuy         Side = "buy"
	SideBuyToCover  Side = "buy_to_cover"
	SideSell        Side = "sell"
	SideSellShort   Side = "sell_short"
	SideBuyToOpen   Side = "buy_to_open"
	SideBuyToClose  Side = "buy_to_close"
	SideSellToOpen  Side = "sell_to_open"
	SideSellToClose Side = "sell_to_close"
)

func (s Side) Valid() bool {
	switch s {
	case SideBuy, SideBuyToCover, SideSell, SideSellShort,
		SideBuyToOpen, SideBuyToClose, SideSellToOpen, SideSellToClose:
		return true
	}
	return false
}

// optionSide reports whether s is only meaningful for option orders.
func (s Side) optionSide() bool {
	switch s {
	case SideBuyToOpen, SideBuyToClose, SideSellToOpen, SideSellToClose:
		return true
	}
	return false
}

// Duration is the time in force of an order.
type Duration string

const (
	DurationDay  Duration = "day"
	DurationGTC  Duration = "gtc"
	DurationPre  Duration = "pre"
	DurationPost Duration = "post"
)

func (d Duration) Valid() bool {
	switch d {
	case DurationDay, DurationGTC, DurationPre, DurationPost:
		return true
	}
	return false
}

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusOpen               OrderStatus = "open"
	OrderStatusPartiallyFilled    OrderStatus = "partially_filled"
	OrderStatusFilled             OrderStatus = "filled"
	OrderStatusExpired            OrderStatus = "expired"
	OrderStatusCanceled           OrderStatus = "canceled"
	OrderStatusPending            OrderStatus = "pending"
	OrderStatusRejected           OrderStatus = "rejected"
	OrderStatusCalculated         OrderStatus = "calculated"
	OrderStatusAcceptedForBidding OrderStatus = "accepted_for_bidding"
	OrderStatusError              OrderStatus = "error"
	OrderStatusHeld               OrderStatus = "held"
)

// Final reports whether no further fills can happen in this state.
func (s OrderStatus) Final() bool {
	switch s {
	case OrderStatusFilled, OrderStatusExpired, OrderStatusCanceled,
		OrderStatusRejected, OrderStatusError:
		return true
	}
	return false
}

// Classification is the legal registration of an account.
type Classification string

const (
	ClassificationIndividual     Classification = "individual"
	ClassificationEntity         Classification = "entity"
	ClassificationJointSurvivor  Classification = "joint_survivor"
	ClassificationTraditionalIRA Classification = "traditional_ira"
	ClassificationRothIRA        Classification = "roth_ira"
	ClassificationRolloverIRA    Classification = "rollover_ira"
	ClassificationSEPIRA         Classification = "sep_ira"
)

// AccountType distinguishes cash from margin accounts.
type AccountType string

const (
	AccountTypeCash   AccountType = "cash"
	AccountTypeMargin AccountType = "margin"
)

// AccountStatus is whether an account is still open.
type AccountStatus string

const (
	AccountStatusActive AccountStatus = "active"
	AccountStatusClosed AccountStatus = "closed"
)

// QuoteType is the kind of security a quote describes.
type QuoteType string

const (
	QuoteTypeStock      QuoteType = "stock"
	QuoteTypeOption     QuoteType = "option"
	QuoteTypeETF        QuoteType = "etf"
	QuoteTypeIndex      QuoteType = "index"
	QuoteTypeMutualFund QuoteType = "mutual_fund"
)

// OptionType is put or call.
type OptionType string

const (
	OptionTypePut  OptionType = "put"
	OptionTypeCall OptionType = "call"
)

// SessionFilter restricts time and sales to the regular session or not.
type SessionFilter string

const (
	SessionAll  SessionFilter = "all"
	SessionOpen SessionFilter = "open"
)

func (s SessionFilter) Valid() bool { return s == SessionAll || s == SessionOpen }

// Interval is the bar width for time and sales.
type Interval string

const (
	IntervalTick  Interval = "tick"
	Interval1Min  Interval = "1min"
	Interval5Min  Interval = "5min"
	Interval15Min Interval = "15min"
)

func (i Interval) Valid() bool {
	switch i {
	case IntervalTick, Interval1Min, Interval5Min, Interval15Min:
		return true
	}
	return false
}

// EventType tags the payload of an account history event.
type EventType string

const (
	EventTrade      EventType = "trade"
	EventOption     EventType = "option"
	EventACH        EventType = "ach"
	EventWire       EventType = "wire"
	EventDividend   EventType = "dividend"
	EventFee        EventType = "fee"
	EventTax        EventType = "tax"
	EventJournal    EventType = "journal"
	EventCheck      EventType = "check"
	EventTransfer   EventType = "transfer"
	EventAdjustment EventType = "adjustment"
	EventInterest   EventType = "interest"
)

func (t EventType) Valid() bool {
	switch t {
	case EventTrade, EventOption, EventACH, EventWire, EventDividend, EventFee,
		EventTax, EventJournal, EventCheck, EventTransfer, EventAdjustment, EventInterest:
		return true
	}
	return false
}

// TradeType is the asset class of a trade history event.
type TradeType string

const (
	TradeTypeEquity TradeType = "Equity"
	TradeTypeOption TradeType = "Option"
)
