package tradier

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
)

// Balances is the equity, cash and margin breakdown of one account. Exactly
// one of Margin, Cash or PDT is populated, depending on the account type.
type Balances struct {
	OptionShortValue   float64     `json:"option_short_value"`
	TotalEquity        float64     `json:"total_equity"`
	AccountNumber      string      `json:"account_number"`
	AccountType        AccountType `json:"account_type"`
	ClosePL            float64     `json:"close_pl"`
	CurrentRequirement float64     `json:"current_requirement"`
	Equity             float64     `json:"equity"`
	LongMarketValue    float64     `json:"long_market_value"`
	MarketValue        float64     `json:"market_value"`
	OpenPL             float64     `json:"open_pl"`
	OptionLongValue    float64     `json:"option_long_value"`
	OptionRequirement  float64     `json:"option_requirement"`
	PendingOrdersCount int64       `json:"pending_orders_count"`
	ShortMarketValue   float64     `json:"short_market_value"`
	StockLongValue     float64     `json:"stock_long_value"`
	TotalCash          float64     `json:"total_cash"`
	UnclearedFunds     float64     `json:"uncleared_funds"`
	PendingCash        float64     `json:"pending_cash"`

	Margin *MarginBalances `json:"margin,omitempty"`
	Cash   *CashBalances   `json:"cash,omitempty"`
	PDT    *PDTBalances    `json:"pdt,omitempty"`
}

// MarginBalances is present on margin accounts.
type MarginBalances struct {
	FedCall           float64 `json:"fed_call"`
	MaintenanceCall   float64 `json:"maintenance_call"`
	OptionBuyingPower float64 `json:"option_buying_power"`
	StockBuyingPower  float64 `json:"stock_buying_power"`
	StockShortValue   float64 `json:"stock_short_value"`
	Sweep             float64 `json:"sweep"`
}

// CashBalances is present on cash accounts.
type CashBalances struct {
	CashAvailable  float64 `json:"cash_available"`
	Sweep          float64 `json:"sweep"`
	UnsettledFunds float64 `json:"unsettled_funds"`
}

// PDTBalances is present on accounts flagged as pattern day traders.
type PDTBalances struct {
	FedCall           float64 `json:"fed_call"`
	MaintenanceCall   float64 `json:"maintenance_call"`
	OptionBuyingPower float64 `json:"option_buying_power"`
	StockBuyingPower  float64 `json:"stock_buying_power"`
	StockShortValue   float64 `json:"stock_short_value"`
}

// BuyingPower returns the stock buying power of whichever section the account
// reports, or total cash for cash accounts.
func (b *Balances) BuyingPower() float64 {
	switch {
	case b.Margin != nil:
		return b.Margin.StockBuyingPower
	case b.PDT != nil:
		return b.PDT.StockBuyingPower
	case b.Cash != nil:
		return b.Cash.CashAvailable
	}
	return b.TotalCash
}

// GetBalances fetches GET /v1/accounts/{accountID}/balances.
func (c *Client) GetBalances(ctx context.Context, accountID string) (*Balances, error) {
	var resp struct {
		Balances *Balances `json:"balances"`
	}
	path := "accounts/" + escape(accountID) + "/balances"
	if err := c.call(ctx, "get balances", http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Balances == nil {
		return nil, errors.New("get balances: response has no balances object")
	}
	return resp.Balances, nil
}
