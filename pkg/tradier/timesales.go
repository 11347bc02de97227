package tradier

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"tradier/internal/util"
)

// TimeSale is one bar (or tick) of a time and sales series. Time is UTC; the
// API sends it as exchange-local wall time.
type TimeSale struct {
	Time      time.Time `json:"time"`
	Timestamp int64     `json:"timestamp"`
	Price     float64   `json:"price"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    int64     `json:"volume"`
	VWAP      float64   `json:"vwap"`
}

// UnmarshalJSON reads the exchange-local time field and converts it to UTC.
func (s *TimeSale) UnmarshalJSON(b []byte) error {
	type timeSale TimeSale
	var wire struct {
		timeSale
		Time string `json:"time"`
	}
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}
	*s = TimeSale(wire.timeSale)
	s.Time = time.Time{}
	if wire.Time == "" {
		return nil
	}
	t, err := util.ParseExchange(timeSalesWireLayout, wire.Time)
	if err != nil {
		// Values this package marshalled itself carry a zone.
		zoned, zerr := time.Parse(time.RFC3339Nano, wire.Time)
		if zerr != nil {
			return errors.Wrapf(err, "time and sales: parsing time %q", wire.Time)
		}
		t = zoned.UTC()
	}
	s.Time = t
	return nil
}

// TimeSalesQuery selects a time and sales series. Start and End are instants
// in any location; they are sent as exchange-local wall time. Zero values
// are omitted and the API applies its defaults.
type TimeSalesQuery struct {
	Symbol        string
	Interval      Interval
	Start         time.Time
	End           time.Time
	SessionFilter SessionFilter
}

type timeSalesParams struct {
	Symbol        string        `url:"symbol"`
	Interval      Interval      `url:"interval,omitempty"`
	Start         string        `url:"start,omitempty"`
	End           string        `url:"end,omitempty"`
	SessionFilter SessionFilter `url:"session_filter,omitempty"`
}

func (q TimeSalesQuery) params() (*timeSalesParams, error) {
	symbol := strings.TrimSpace(q.Symbol)
	if symbol == "" {
		return nil, invalidf("time and sales need a symbol")
	}
	if q.Interval != "" && !q.Interval.Valid() {
		return nil, invalidf("unknown time and sales interval %q", q.Interval)
	}
	if q.SessionFilter != "" && !q.SessionFilter.Valid() {
		return nil, invalidf("unknown session filter %q", q.SessionFilter)
	}
	if !q.Start.IsZero() && !q.End.IsZero() && q.End.Before(q.Start) {
		return nil, invalidf("time and sales end is before start")
	}
	return &timeSalesParams{
		Symbol:        symbol,
		Interval:      q.Interval,
		Start:         exchangeWall(q.Start),
		End:           exchangeWall(q.End),
		SessionFilter: q.SessionFilter,
	}, nil
}

func exchangeWall(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return util.ToExchange(t).Format(timeSalesQueryLayout)
}

// GetTimeAndSales fetches GET /v1/markets/timesales. Bars are returned in API
// order with UTC times; the result is empty, not nil, when there is no data.
func (c *Client) GetTimeAndSales(ctx context.Context, q TimeSalesQuery) ([]TimeSale, error) {
	params, err := q.params()
	if err != nil {
		return nil, err
	}

	var resp struct {
		Series nullable[struct {
			Data List[TimeSale] `json:"data"`
		}] `json:"series"`
	}
	if err := c.call(ctx, "get time and sales", http.MethodGet, "markets/timesales", params, &resp); err != nil {
		return nil, err
	}
	return resp.Series.get().Data.Slice(), nil
}
