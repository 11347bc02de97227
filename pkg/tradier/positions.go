package tradier

import (
	"context"
	"net/http"
	"time"
)

// Position is an open position in one symbol.
type Position struct {
	CostBasis    float64   `json:"cost_basis"`
	DateAcquired time.Time `json:"date_acquired"`
	ID           int64     `json:"id"`
	Quantity     float64   `json:"quantity"`
	Symbol       string    `json:"symbol"`
}

// Short reports whether the position is short.
func (p Position) Short() bool { return p.Quantity < 0 }

// GetPositions fetches GET /v1/accounts/{accountID}/positions. The result is
// empty, not nil, when the account is flat.
func (c *Client) GetPositions(ctx context.Context, accountID string) ([]Position, error) {
	var resp struct {
		Positions nullable[struct {
			Position List[Position] `json:"position"`
		}] `json:"positions"`
	}
	path := "accounts/" + escape(accountID) + "/positions"
	if err := c.call(ctx, "get positions", http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Positions.get().Position.Slice(), nil
}
