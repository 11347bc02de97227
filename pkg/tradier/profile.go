package tradier

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// Profile is the authenticated user and the accounts linked to them.
type Profile struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Accounts []Account `json:"account"`
}

// UnmarshalJSON normalizes the account field, which is an object for users
// with a single account.
func (p *Profile) UnmarshalJSON(b []byte) error {
	type profile Profile
	var wire struct {
		profile
		Accounts List[Account] `json:"account"`
	}
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}
	*p = Profile(wire.profile)
	p.Accounts = wire.Accounts.Slice()
	return nil
}

// Account is one brokerage account on a profile.
type Account struct {
	AccountNumber  string         `json:"account_number"`
	Classification Classification `json:"classification"`
	DateCreated    time.Time      `json:"date_created"`
	DayTrader      bool           `json:"day_trader"`
	OptionLevel    int            `json:"option_level"`
	Status         AccountStatus  `json:"status"`
	Type           AccountType    `json:"type"`
	LastUpdateDate time.Time      `json:"last_update_date"`
}

// Account returns the account with the given number.
func (p *Profile) Account(number string) (Account, bool) {
	for _, a := range p.Accounts {
		if a.AccountNumber == number {
			return a, true
		}
	}
	return Account{}, false
}

// GetUserProfile fetches GET /v1/user/profile.
func (c *Client) GetUserProfile(ctx context.Context) (*Profile, error) {
	var resp struct {
		Profile *Profile `json:"profile"`
	}
	if err := c.call(ctx, "get user profile", http.MethodGet, "user/profile", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Profile == nil {
		return nil, errors.New("get user profile: response has no profile object")
	}
	return resp.Profile, nil
}
