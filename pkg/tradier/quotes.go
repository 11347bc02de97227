package tradier

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Quote is a market snapshot for one symbol. Fields the API reports as null
// for a security type (e.g. strike for a stock) are nil pointers or zero.
type Quote struct {
	Symbol           string     `json:"symbol"`
	Description      string     `json:"description"`
	Exch             string     `json:"exch"`
	Type             QuoteType  `json:"type"`
	Last             *float64   `json:"last"`
	Change           *float64   `json:"change"`
	Volume           int64      `json:"volume"`
	Open             *float64   `json:"open"`
	High             *float64   `json:"high"`
	Low              *float64   `json:"low"`
	Close            *float64   `json:"close"`
	Bid              float64    `json:"bid"`
	Ask              float64    `json:"ask"`
	Underlying       string     `json:"underlying,omitempty"`
	Strike           *float64   `json:"strike,omitempty"`
	ChangePercentage *float64   `json:"change_percentage"`
	AverageVolume    int64      `json:"average_volume"`
	LastVolume       int64      `json:"last_volume"`
	TradeDate        int64      `json:"trade_date"`
	PrevClose        *float64   `json:"prevclose"`
	Week52High       float64    `json:"week_52_high"`
	Week52Low        float64    `json:"week_52_low"`
	BidSize          int64      `json:"bidsize"`
	BidExch          string     `json:"bidexch"`
	BidDate          int64      `json:"bid_date"`
	AskSize          int64      `json:"asksize"`
	AskExch          string     `json:"askexch"`
	AskDate          int64      `json:"ask_date"`
	OpenInterest     *int64     `json:"open_interest,omitempty"`
	ContractSize     *int64     `json:"contract_size,omitempty"`
	ExpirationDate   Date       `json:"expiration_date,omitzero"`
	ExpirationType   string     `json:"expiration_type,omitempty"`
	OptionType       OptionType `json:"option_type,omitempty"`
	RootSymbol       string     `json:"root_symbol,omitempty"`
	RootSymbols      string     `json:"root_symbols,omitempty"`
	Greeks           *Greeks    `json:"greeks,omitempty"`
}

// Greeks is present on option quotes when requested.
type Greeks struct {
	Delta     float64 `json:"delta"`
	Gamma     float64 `json:"gamma"`
	Theta     float64 `json:"theta"`
	Vega      float64 `json:"vega"`
	Rho       float64 `json:"rho"`
	Phi       float64 `json:"phi"`
	BidIV     float64 `json:"bid_iv"`
	MidIV     float64 `json:"mid_iv"`
	AskIV     float64 `json:"ask_iv"`
	SmvVol    float64 `json:"smv_vol"`
	UpdatedAt string  `json:"updated_at"`
}

// TradeTime is the time of the last trade.
func (q *Quote) TradeTime() time.Time { return unixMillis(q.TradeDate) }

// BidTime is the time of the current bid.
func (q *Quote) BidTime() time.Time { return unixMillis(q.BidDate) }

// AskTime is the time of the current ask.
func (q *Quote) AskTime() time.Time { return unixMillis(q.AskDate) }

// Mid is the midpoint of bid and ask.
func (q *Quote) Mid() float64 { return (q.Bid + q.Ask) / 2 }

// Quotes is the result of a quotes request. Unmatched lists requested symbols
// the API did not recognise.
type Quotes struct {
	Quotes    []Quote  `json:"quotes"`
	Unmatched []string `json:"unmatched_symbols,omitempty"`
}

// Get returns the quote for symbol.
func (q *Quotes) Get(symbol string) (Quote, bool) {
	for _, quote := range q.Quotes {
		if quote.Symbol == symbol {
			return quote, true
		}
	}
	return Quote{}, false
}

type quotesParams struct {
	Symbols []string `url:"symbols,comma"`
	Greeks  bool     `url:"greeks"`
}

// GetQuotes fetches GET /v1/markets/quotes for symbols (equity or OCC option
// symbols). greeks requests option greeks. Quotes are returned in API order.
func (c *Client) GetQuotes(ctx context.Context, symbols []string, greeks bool) (*Quotes, error) {
	cleaned := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if s = strings.TrimSpace(s); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	if len(cleaned) == 0 {
		return nil, invalidf("quotes need at least one symbol")
	}

	var resp struct {
		Quotes nullable[struct {
			Quote     List[Quote] `json:"quote"`
			Unmatched nullable[struct {
				Symbol List[string] `json:"symbol"`
			}] `json:"unmatched_symbols"`
		}] `json:"quotes"`
	}
	params := &quotesParams{Symbols: cleaned, Greeks: greeks}
	if err := c.call(ctx, "get quotes", http.MethodGet, "markets/quotes", params, &resp); err != nil {
		return nil, err
	}

	body := resp.Quotes.get()
	return &Quotes{
		Quotes:    body.Quote.Slice(),
		Unmatched: body.Unmatched.get().Symbol.Slice(),
	}, nil
}
