package broker

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tradier/internal/domain"
	"tradier/pkg/tradier"
)

// newTestBroker returns a broker for account VA1 talking to a server that
// runs h.
func newTestBroker(t *testing.T, h http.HandlerFunc) *TradierBroker {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	client := tradier.NewClient(tradier.Config{Token: "tok", Endpoint: srv.URL}, tradier.WithRegisterer(nil))
	return NewTradierBroker(client, "VA1", nil)
}

func TestTradierBrokerName(t *testing.T) {
	b := NewTradierBroker(tradier.NewClient(tradier.Config{Token: "x"}, tradier.WithRegisterer(nil)), "VA1", nil)
	if got := b.Name(); got != "tradier" {
		t.Errorf("TradierBroker.Name() = %q, want %q", got, "tradier")
	}
}

func TestSubmitOrderGeneratesTag(t *testing.T) {
	var form map[string]string
	b := newTestBroker(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/accounts/VA1/orders" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		_ = r.ParseForm()
		form = map[string]string{}
		for k := range r.PostForm {
			form[k] = r.PostForm.Get(k)
		}
		_, _ = w.Write([]byte(`{"order":{"id":257459,"status":"ok"}}`))
	})
	b.newTag = func() string { return tagPrefix + "fixed" }

	in := &domain.Order{
		Symbol:     "AAPL",
		Side:       domain.OrderSideBuy,
		Type:       domain.OrderTypeLimit,
		Qty:        10,
		LimitPrice: 150.5,
	}
	got, err := b.SubmitOrder(context.Background(), in)
	if err != nil {
		t.Fatalf("SubmitOrder: %v", err)
	}
	if got.ID != "257459" || got.Status != domain.OrderStatusNew {
		t.Errorf("order = %+v", got)
	}
	if got.Tag != "tb-fixed" || form["tag"] != "tb-fixed" {
		t.Errorf("tag = %q, form tag = %q", got.Tag, form["tag"])
	}
	if in.ID != "" {
		t.Error("SubmitOrder modified its input")
	}

	want := map[string]string{
		"class":    "equity",
		"symbol":   "AAPL",
		"side":     "buy",
		"quantity": "10",
		"type":     "limit",
		"duration": "day",
		"price":    "150.5",
	}
	for k, v := range want {
		if form[k] != v {
			t.Errorf("form %s = %q, want %q", k, form[k], v)
		}
	}
}

func TestDefaultTagIsValid(t *testing.T) {
	b := NewTradierBroker(tradier.NewClient(tradier.Config{Token: "x"}, tradier.WithRegisterer(nil)), "VA1", nil)
	tag := b.newTag()
	if !strings.HasPrefix(tag, tagPrefix) {
		t.Errorf("tag %q lacks prefix %q", tag, tagPrefix)
	}
	req := tradier.OrderRequest{
		Class: tradier.ClassEquity, Symbol: "AAPL", Side: tradier.SideBuy, Quantity: 1,
		Type: tradier.OrderTypeMarket, Duration: tradier.DurationDay, Tag: tag,
	}
	if err := req.Validate(); err != nil {
		t.Errorf("generated tag rejected: %v", err)
	}
	if b.newTag() == tag {
		t.Error("generated tags repeat")
	}
}

func TestSubmitOptionOrderMapsSide(t *testing.T) {
	var side, optionSymbol string
	b := newTestBroker(t, func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		side = r.PostForm.Get("side")
		optionSymbol = r.PostForm.Get("option_symbol")
		_, _ = w.Write([]byte(`{"order":{"id":1,"status":"ok"}}`))
	})

	_, err := b.SubmitOrder(context.Background(), &domain.Order{
		Symbol:       "SPY",
		OptionSymbol: "SPY190605C00282000",
		Class:        domain.AssetClassOption,
		Side:         domain.OrderSideSellShort,
		Type:         domain.OrderTypeMarket,
		Qty:          2,
		Tag:          "mine",
	})
	if err != nil {
		t.Fatalf("SubmitOrder: %v", err)
	}
	if side != "sell_to_open" || optionSymbol != "SPY190605C00282000" {
		t.Errorf("side = %q, option_symbol = %q", side, optionSymbol)
	}
}

func TestSubmitOrderRejectsFractionalQty(t *testing.T) {
	b := newTestBroker(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be sent")
	})
	_, err := b.SubmitOrder(context.Background(), &domain.Order{
		Symbol: "AAPL", Side: domain.OrderSideBuy, Type: domain.OrderTypeMarket, Qty: 1.5,
	})
	if err == nil {
		t.Fatal("expected an error for a fractional quantity")
	}
}

func TestCancelOrder(t *testing.T) {
	b := newTestBroker(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/v1/accounts/VA1/orders/42" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"order":{"id":42,"status":"ok"}}`))
	})
	if err := b.CancelOrder(context.Background(), "42"); err != nil {
		t.Fatalf("CancelOrder: %v", err)
	}
	if err := b.CancelOrder(context.Background(), "abc"); err == nil {
		t.Error("expected an error for a non-numeric order id")
	}
}

func TestCancelOrderFailure(t *testing.T) {
	b := newTestBroker(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("order already filled"))
	})
	err := b.CancelOrder(context.Background(), "42")
	if tradier.StatusCode(err) != http.StatusBadRequest {
		t.Fatalf("err = %v, want a 400 APIError", err)
	}
	if !strings.Contains(err.Error(), "order already filled") {
		t.Errorf("error %q lacks the response body", err)
	}
}

func TestGetPositions(t *testing.T) {
	b := newTestBroker(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"positions":{"position":[
			{"cost_basis":207.01,"date_acquired":"2018-08-08T14:41:11.405Z","id":1,"quantity":1,"symbol":"AAPL"},
			{"cost_basis":-1985.0,"date_acquired":"2018-08-09T13:25:03.062Z","id":2,"quantity":-10,"symbol":"SPY"}
		]}}`))
	})
	got, err := b.GetPositions(context.Background())
	if err != nil {
		t.Fatalf("GetPositions: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Side != domain.PositionSideLong || got[0].AvgCost != 207.01 {
		t.Errorf("long = %+v", got[0])
	}
	if got[1].Side != domain.PositionSideShort || got[1].Qty != 10 || got[1].AvgCost != 198.5 {
		t.Errorf("short = %+v", got[1])
	}
}

func TestGetPositionsEmpty(t *testing.T) {
	b := newTestBroker(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"positions":"null"}`))
	})
	got, err := b.GetPositions(context.Background())
	if err != nil {
		t.Fatalf("GetPositions: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("positions = %v, want empty non-nil", got)
	}
}

func TestGetAccount(t *testing.T) {
	b := newTestBroker(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/accounts/VA1/balances" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"balances":{"account_number":"VA1","account_type":"margin",
			"total_equity":17798.36,"total_cash":12684.36,"market_value":5114,"open_pl":-25,"close_pl":-48,
			"margin":{"stock_buying_power":13092}}}`))
	})
	got, err := b.GetAccount(context.Background())
	if err != nil {
		t.Fatalf("GetAccount: %v", err)
	}
	want := domain.AccountInfo{
		AccountID:   "VA1",
		Type:        "margin",
		Equity:      17798.36,
		Cash:        12684.36,
		BuyingPower: 13092,
		MarketValue: 5114,
		OpenPL:      -25,
		ClosedPL:    -48,
	}
	if *got != want {
		t.Errorf("GetAccount() = %+v, want %+v", *got, want)
	}
}

func TestGetBars(t *testing.T) {
	var interval, start string
	b := newTestBroker(t, func(w http.ResponseWriter, r *http.Request) {
		interval = r.URL.Query().Get("interval")
		start = r.URL.Query().Get("start")
		_, _ = w.Write([]byte(`{"series":{"data":{"time":"2019-05-09T09:30:00","timestamp":1557408600,
			"price":200.24,"open":200.29,"high":200.35,"low":200.2,"close":200.22,"volume":35240,"vwap":200.27}}}`))
	})

	bars, err := b.GetBars(context.Background(), "AAPL", 5*time.Minute,
		time.Date(2019, 5, 9, 13, 30, 0, 0, time.UTC), time.Time{})
	if err != nil {
		t.Fatalf("GetBars: %v", err)
	}
	if interval != "5min" || start != "2019-05-09 09:30" {
		t.Errorf("interval = %q, start = %q", interval, start)
	}
	if len(bars) != 1 {
		t.Fatalf("len = %d, want 1", len(bars))
	}
	want := domain.Bar{
		Symbol:    "AAPL",
		Timestamp: time.Date(2019, 5, 9, 13, 30, 0, 0, time.UTC),
		Open:      200.29,
		High:      200.35,
		Low:       200.2,
		Close:     200.22,
		Volume:    35240,
		VWAP:      200.27,
	}
	if bars[0] != want {
		t.Errorf("bar = %+v, want %+v", bars[0], want)
	}
}

func TestGetBarsTicks(t *testing.T) {
	b := newTestBroker(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("interval"); got != "tick" {
			t.Errorf("interval = %q, want tick", got)
		}
		_, _ = w.Write([]byte(`{"series":{"data":[{"time":"2019-05-09T09:30:00","price":200.24,"volume":100}]}}`))
	})
	bars, err := b.GetBars(context.Background(), "AAPL", 0, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("GetBars: %v", err)
	}
	if bars[0].Open != 200.24 || bars[0].Close != 200.24 || bars[0].High != 200.24 {
		t.Errorf("tick bar = %+v", bars[0])
	}
}

func TestGetBarsUnsupportedInterval(t *testing.T) {
	b := newTestBroker(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be sent")
	})
	if _, err := b.GetBars(context.Background(), "AAPL", time.Hour, time.Time{}, time.Time{}); err == nil {
		t.Error("expected an error for an hourly interval")
	}
}

func TestLastPrice(t *testing.T) {
	b := newTestBroker(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("symbols") {
		case "AAPL":
			_, _ = w.Write([]byte(`{"quotes":{"quote":{"symbol":"AAPL","last":208.21,"bid":208.14,"ask":208.21}}}`))
		case "OPT":
			_, _ = w.Write([]byte(`{"quotes":{"quote":{"symbol":"OPT","last":null,"bid":1.0,"ask":1.5}}}`))
		default:
			_, _ = w.Write([]byte(`{"quotes":{"unmatched_symbols":{"symbol":"NOPE"}}}`))
		}
	})

	if p, err := b.LastPrice(context.Background(), "AAPL"); err != nil || p != 208.21 {
		t.Errorf("LastPrice(AAPL) = %v, %v", p, err)
	}
	if p, err := b.LastPrice(context.Background(), "OPT"); err != nil || p != 1.25 {
		t.Errorf("LastPrice(OPT) = %v, %v; want the midpoint", p, err)
	}
	if _, err := b.LastPrice(context.Background(), "NOPE"); err == nil {
		t.Error("expected an error for an unknown symbol")
	}
}

func TestLastPriceLowercaseSymbol(t *testing.T) {
	var requested string
	b := newTestBroker(t, func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Query().Get("symbols")
		_, _ = w.Write([]byte(`{"quotes":{"quote":{"symbol":"` + strings.ToUpper(requested) + `","last":208.21}}}`))
	})

	p, err := b.LastPrice(context.Background(), " aapl ")
	if err != nil || p != 208.21 {
		t.Fatalf("LastPrice(aapl) = %v, %v", p, err)
	}
	if requested != "AAPL" {
		t.Errorf("symbols = %q, want %q", requested, "AAPL")
	}
}
