package tradier

import (
	"context"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// OrderRequest is a single-leg equity or option order. Price and Stop are
// optional; which of them is required depends on Type.
type OrderRequest struct {
	Class        Class
	Symbol       string
	OptionSymbol string // OCC symbol, required for ClassOption
	Side         Side
	Quantity     int64
	Type         OrderType
	Duration     Duration
	Price        *float64
	Stop         *float64
	Tag          string
}

// OrderAck is the API's acknowledgement of an order placement or
// cancellation.
type OrderAck struct {
	ID        int64  `json:"id"`
	Status    string `json:"status"`
	PartnerID string `json:"partner_id,omitempty"`
}

// Float64 returns a pointer to v, for OrderRequest.Price and Stop.
func Float64(v float64) *float64 { return &v }

var tagPattern = regexp.MustCompile(`^[A-Za-z0-9-]{1,255}$`)

type orderForm struct {
	Class        Class     `url:"class"`
	Symbol       string    `url:"symbol"`
	OptionSymbol string    `url:"option_symbol,omitempty"`
	Side         Side      `url:"side"`
	Quantity     int64     `url:"quantity"`
	Type         OrderType `url:"type"`
	Duration     Duration  `url:"duration"`
	Price        string    `url:"price,omitempty"`
	Stop         string    `url:"stop,omitempty"`
	Tag          string    `url:"tag,omitempty"`
}

// Validate checks r without contacting the API.
func (r *OrderRequest) Validate() error {
	switch {
	case r.Class == ClassMultileg || r.Class == ClassCombo:
		return invalidf("class %q orders are not supported, only single-leg orders", r.Class)
	case !r.Class.Valid():
		return invalidf("unknown order class %q", r.Class)
	case strings.TrimSpace(r.Symbol) == "":
		return invalidf("order symbol is required")
	case r.Quantity <= 0:
		return invalidf("order quantity must be positive, got %d", r.Quantity)
	case !r.Side.Valid():
		return invalidf("unknown order side %q", r.Side)
	case !r.Type.Valid():
		return invalidf("unknown order type %q", r.Type)
	case !r.Duration.Valid():
		return invalidf("unknown order duration %q", r.Duration)
	}

	if r.Class == ClassOption && strings.TrimSpace(r.OptionSymbol) == "" {
		return invalidf("option orders need an option symbol")
	}
	if r.Class == ClassEquity && r.Side.optionSide() {
		return invalidf("side %q is only valid for option orders", r.Side)
	}
	if r.Type.needsPrice() && r.Price == nil {
		return invalidf("%s orders need a price", r.Type)
	}
	if r.Type.needsStop() && r.Stop == nil {
		return invalidf("%s orders need a stop price", r.Type)
	}
	if r.Price != nil && *r.Price <= 0 {
		return invalidf("order price must be positive")
	}
	if r.Stop != nil && *r.Stop <= 0 {
		return invalidf("order stop price must be positive")
	}
	if r.Tag != "" && !tagPattern.MatchString(r.Tag) {
		return invalidf("order tag %q must be 1-255 letters, digits or dashes", r.Tag)
	}
	return nil
}

func (r *OrderRequest) form() *orderForm {
	return &orderForm{
		Class:        r.Class,
		Symbol:       strings.TrimSpace(r.Symbol),
		OptionSymbol: strings.TrimSpace(r.OptionSymbol),
		Side:         r.Side,
		Quantity:     r.Quantity,
		Type:         r.Type,
		Duration:     r.Duration,
		Price:        formatPrice(r.Price),
		Stop:         formatPrice(r.Stop),
		Tag:          r.Tag,
	}
}

// formatPrice renders p as the shortest exact decimal, so 0.1 is sent as
// "0.1" rather than a binary float expansion.
func formatPrice(p *float64) string {
	if p == nil {
		return ""
	}
	return decimal.NewFromFloat(*p).String()
}

// PlaceOrder submits r with POST /v1/accounts/{accountID}/orders. r is
// validated first; invalid requests wrap ErrInvalidRequest and are never sent.
func (c *Client) PlaceOrder(ctx context.Context, accountID string, r OrderRequest) (*OrderAck, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	var resp struct {
		Order *OrderAck `json:"order"`
	}
	path := "accounts/" + escape(accountID) + "/orders"
	if err := c.call(ctx, "place order", http.MethodPost, path, r.form(), &resp); err != nil {
		return nil, err
	}
	if resp.Order == nil {
		return nil, errors.New("place order: response has no order object")
	}

	c.log.Info("order placed",
		"account", accountID,
		"symbol", r.Symbol,
		"side", r.Side,
		"quantity", r.Quantity,
		"order_id", resp.Order.ID,
		"status", resp.Order.Status,
	)
	return resp.Order, nil
}

// CancelOrder cancels an open order with DELETE
// /v1/accounts/{accountID}/orders/{orderID}. Only a 200 response counts as
// success; any other status returns an *APIError whose text is the response
// body.
func (c *Client) CancelOrder(ctx context.Context, accountID string, orderID int64) (*OrderAck, error) {
	const op = "cancel order"

	path := "accounts/" + escape(accountID) + "/orders/" + strconv.FormatInt(orderID, 10)
	req, err := c.newRequest(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return nil, err
	}
	status, body, err := c.roundTrip(op, req)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, newAPIError(req, status, body)
	}

	var resp struct {
		Order *OrderAck `json:"order"`
	}
	if err := decode(op, body, &resp); err != nil {
		return nil, err
	}
	if resp.Order == nil {
		return nil, errors.New("cancel order: response has no order object")
	}

	c.log.Info("order canceled", "account", accountID, "order_id", orderID, "status", resp.Order.Status)
	return resp.Order, nil
}
