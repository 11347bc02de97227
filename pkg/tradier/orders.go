package tradier

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// Order is an order as reported by the account orders endpoints. Multileg and
// combo orders carry their child orders in Legs.
type Order struct {
	ID                int64       `json:"id"`
	Type              OrderType   `json:"type"`
	Symbol            string      `json:"symbol"`
	OptionSymbol      string      `json:"option_symbol,omitempty"`
	Side              Side        `json:"side"`
	Quantity          float64     `json:"quantity"`
	Status            OrderStatus `json:"status"`
	Duration          Duration    `json:"duration"`
	Price             *float64    `json:"price,omitempty"`
	StopPrice         *float64    `json:"stop_price,omitempty"`
	AvgFillPrice      float64     `json:"avg_fill_price"`
	ExecQuantity      float64     `json:"exec_quantity"`
	LastFillPrice     float64     `json:"last_fill_price"`
	LastFillQuantity  float64     `json:"last_fill_quantity"`
	RemainingQuantity float64     `json:"remaining_quantity"`
	CreateDate        time.Time   `json:"create_date"`
	TransactionDate   time.Time   `json:"transaction_date"`
	Class             Class       `json:"class"`
	NumLegs           int         `json:"num_legs,omitempty"`
	Strategy          string      `json:"strategy,omitempty"`
	Tag               string      `json:"tag,omitempty"`
	ReasonDescription string      `json:"reason_description,omitempty"`
	Legs              []Order     `json:"leg,omitempty"`
}

// UnmarshalJSON normalizes the leg field, which the API sends as an object
// for a single leg and an array otherwise.
func (o *Order) UnmarshalJSON(b []byte) error {
	type order Order
	var wire struct {
		order
		Legs List[Order] `json:"leg"`
	}
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}
	*o = Order(wire.order)
	o.Legs = wire.Legs.Slice()
	return nil
}

type ordersParams struct {
	IncludeTags bool `url:"includeTags"`
}

// GetOrders fetches GET /v1/accounts/{accountID}/orders. includeTags asks the
// API to return each order's tag. The result is empty, not nil, when the
// account has no orders.
func (c *Client) GetOrders(ctx context.Context, accountID string, includeTags bool) ([]Order, error) {
	var resp struct {
		Orders nullable[struct {
			Order List[Order] `json:"order"`
		}] `json:"orders"`
	}
	path := "accounts/" + escape(accountID) + "/orders"
	params := &ordersParams{IncludeTags: includeTags}
	if err := c.call(ctx, "get orders", http.MethodGet, path, params, &resp); err != nil {
		return nil, err
	}
	return resp.Orders.get().Order.Slice(), nil
}

// GetOrder fetches a single order by ID.
func (c *Client) GetOrder(ctx context.Context, accountID string, orderID int64, includeTags bool) (*Order, error) {
	var resp struct {
		Order *Order `json:"order"`
	}
	path := "accounts/" + escape(accountID) + "/orders/" + strconv.FormatInt(orderID, 10)
	params := &ordersParams{IncludeTags: includeTags}
	if err := c.call(ctx, "get order", http.MethodGet, path, params, &resp); err != nil {
		return nil, err
	}
	if resp.Order == nil {
		return nil, errors.New("get order: response has no order object")
	}
	return resp.Order, nil
}
