package tradier

import (
	"context"
	"net/http"
	"time"
)

// Event is one entry of the account ledger. Type says which of the payload
// fields is set; Detail returns it.
type Event struct {
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
	Type   EventType `json:"type"`

	Trade      *TradeActivity  `json:"trade,omitempty"`
	Option     *OptionActivity `json:"option,omitempty"`
	Dividend   *Activity       `json:"dividend,omitempty"`
	Journal    *Activity       `json:"journal,omitempty"`
	Transfer   *Activity       `json:"transfer,omitempty"`
	Adjustment *Activity       `json:"adjustment,omitempty"`
	ACH        *Activity       `json:"ach,omitempty"`
	Wire       *Activity       `json:"wire,omitempty"`
	Fee        *Activity       `json:"fee,omitempty"`
	Tax        *Activity       `json:"tax,omitempty"`
	Check      *Activity       `json:"check,omitempty"`
	Interest   *Activity       `json:"interest,omitempty"`
}

// Activity is the payload shared by cash-movement events.
type Activity struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
}

// TradeActivity is the payload of a trade event.
type TradeActivity struct {
	Commission  float64   `json:"commission"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Quantity    float64   `json:"quantity"`
	Symbol      string    `json:"symbol"`
	TradeType   TradeType `json:"trade_type"`
}

// OptionActivity is the payload of an option event such as an expiration or
// assignment.
type OptionActivity struct {
	OptionType  string  `json:"option_type"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
}

// Detail returns the payload selected by Type: a *TradeActivity, an
// *OptionActivity or an *Activity. It returns nil when the payload is missing
// or Type is unknown. Dividend events fall back to the adjustment payload,
// which is where some accounts report them.
func (e *Event) Detail() any {
	switch e.Type {
	case EventTrade:
		if e.Trade != nil {
			return e.Trade
		}
	case EventOption:
		if e.Option != nil {
			return e.Option
		}
	default:
		if a := e.activity(); a != nil {
			return a
		}
	}
	return nil
}

func (e *Event) activity() *Activity {
	switch e.Type {
	case EventDividend:
		if e.Dividend != nil {
			return e.Dividend
		}
		return e.Adjustment
	case EventJournal:
		return e.Journal
	case EventTransfer:
		return e.Transfer
	case EventAdjustment:
		return e.Adjustment
	case EventACH:
		return e.ACH
	case EventWire:
		return e.Wire
	case EventFee:
		return e.Fee
	case EventTax:
		return e.Tax
	case EventCheck:
		return e.Check
	case EventInterest:
		return e.Interest
	}
	return nil
}

// HistoryQuery filters the account ledger. Zero fields are omitted from the
// request.
type HistoryQuery struct {
	Page         int
	Limit        int
	ActivityType EventType
	Start        time.Time // date only
	End          time.Time // date only
	Symbol       string
}

type historyParams struct {
	Page         int       `url:"page,omitempty"`
	Limit        int       `url:"limit,omitempty"`
	ActivityType EventType `url:"activity_type,omitempty"`
	Start        string    `url:"start,omitempty"`
	End          string    `url:"end,omitempty"`
	Symbol       string    `url:"symbol,omitempty"`
}

func (q *HistoryQuery) params() (*historyParams, error) {
	if q == nil {
		return nil, nil
	}
	if q.Page < 0 || q.Limit < 0 {
		return nil, invalidf("history page and limit must not be negative")
	}
	if q.ActivityType != "" && !q.ActivityType.Valid() {
		return nil, invalidf("unknown history activity type %q", q.ActivityType)
	}
	if !q.Start.IsZero() && !q.End.IsZero() && q.End.Before(q.Start) {
		return nil, invalidf("history end %s is before start %s",
			q.End.Format(DateLayout), q.Start.Format(DateLayout))
	}
	return &historyParams{
		Page:         q.Page,
		Limit:        q.Limit,
		ActivityType: q.ActivityType,
		Start:        formatDate(q.Start),
		End:          formatDate(q.End),
		Symbol:       q.Symbol,
	}, nil
}

// GetHistory fetches GET /v1/accounts/{accountID}/history. q may be nil. The
// result is in the order the API returned it and is empty, not nil, when the
// account has no matching events.
func (c *Client) GetHistory(ctx context.Context, accountID string, q *HistoryQuery) ([]Event, error) {
	params, err := q.params()
	if err != nil {
		return nil, err
	}

	var resp struct {
		History nullable[struct {
			Event List[Event] `json:"event"`
		}] `json:"history"`
	}
	path := "accounts/" + escape(accountID) + "/history"
	if err := c.call(ctx, "get history", http.MethodGet, path, params, &resp); err != nil {
		return nil, err
	}
	return resp.History.get().Event.Slice(), nil
}
